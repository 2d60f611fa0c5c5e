// Package stub is a self-contained development backend implementing the REST
// surface the client consumes: auth, users, projects, phases and reference
// data over in-memory fixtures. Integration tests mount it on httptest;
// cmd/stubserver runs it standalone.
package stub

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

// account pairs a user record with its password hash.
type account struct {
	user domain.User
	hash []byte
}

// Store holds all stub data behind one mutex. Ids are allocated from a single
// counter so tests get stable, predictable values.
type Store struct {
	mu       sync.Mutex
	users    map[int]*account
	projects map[int]*domain.Project
	phases   map[int]*domain.Phase
	refs     map[string][]domain.Reference
	nextID   int
}

// NewStore builds a store pre-seeded with the standard fixtures.
func NewStore() *Store {
	s := &Store{
		users:    make(map[int]*account),
		projects: make(map[int]*domain.Project),
		phases:   make(map[int]*domain.Phase),
		refs:     make(map[string][]domain.Reference),
		nextID:   100,
	}
	s.seed()
	return s
}

// hashPassword uses the minimum bcrypt cost: the stub exists for tests and
// local development, not for guarding real credentials.
func hashPassword(pw string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}

func (s *Store) seed() {
	accounts := []struct {
		user     domain.User
		password string
	}{
		{domain.User{ID: 1, Nom: "Admin", Email: "admin@entreprise.fr", RoleID: 1, RoleNom: domain.RoleAdmin, DirectionID: 1, DirectionNom: "Direction des Systèmes d'Information"}, "admin123"},
		{domain.User{ID: 2, Nom: "Marie Dupont", Email: "pmo@entreprise.fr", RoleID: 2, RoleNom: domain.RolePMO, DirectionID: 1, DirectionNom: "Direction des Systèmes d'Information"}, "pmo123"},
		{domain.User{ID: 3, Nom: "Jean Martin", Email: "chef@entreprise.fr", RoleID: 3, RoleNom: domain.RoleChefProjet, DirectionID: 2, DirectionNom: "Direction Financière"}, "chef123"},
	}
	for _, a := range accounts {
		s.users[a.user.ID] = &account{user: a.user, hash: hashPassword(a.password)}
	}

	projects := []domain.Project{
		{ID: 7, Nom: "Refonte du portail RH", Code: "PRJ-007", Statut: "En cours", Priorite: "Haute", ChefProjetID: 3, ChefProjetNom: "Jean Martin", DirectionID: 1, DirectionNom: "Direction des Systèmes d'Information", BudgetPrevu: 120000, DateDebut: "2026-01-15", Avancement: 40},
		{ID: 8, Nom: "Migration ERP", Code: "PRJ-008", Statut: "Cadrage", Priorite: "Critique", ChefProjetID: 2, ChefProjetNom: "Marie Dupont", DirectionID: 2, DirectionNom: "Direction Financière", BudgetPrevu: 450000, DateDebut: "2026-03-01", Avancement: 10},
	}
	for i := range projects {
		p := projects[i]
		s.projects[p.ID] = &p
	}

	phases := []domain.Phase{
		{ID: 70, ProjetID: 7, Nom: "Cadrage", Statut: "Terminée", Ordre: 1, Avancement: 100},
		{ID: 71, ProjetID: 7, Nom: "Conception", Statut: "En cours", Ordre: 2, Avancement: 60},
		{ID: 80, ProjetID: 8, Nom: "Étude d'opportunité", Statut: "En cours", Ordre: 1, Avancement: 30},
	}
	for i := range phases {
		ph := phases[i]
		s.phases[ph.ID] = &ph
	}

	s.refs["directions"] = []domain.Reference{
		{ID: 1, Nom: "Direction des Systèmes d'Information"},
		{ID: 2, Nom: "Direction Financière"},
		{ID: 3, Nom: "Direction des Ressources Humaines"},
	}
	s.refs["roles"] = []domain.Reference{
		{ID: 1, Nom: domain.RoleAdmin},
		{ID: 2, Nom: domain.RolePMO},
		{ID: 3, Nom: domain.RoleChefProjet},
	}
	s.refs["statuts"] = []domain.Reference{
		{ID: 1, Nom: "Cadrage"},
		{ID: 2, Nom: "En cours"},
		{ID: 3, Nom: "Suspendu"},
		{ID: 4, Nom: "Terminé"},
	}
	s.refs["priorites"] = []domain.Reference{
		{ID: 1, Nom: "Basse"},
		{ID: 2, Nom: "Moyenne"},
		{ID: 3, Nom: "Haute"},
		{ID: 4, Nom: "Critique"},
	}
}

func (s *Store) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// --- users ---

func (s *Store) Authenticate(email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.users {
		if strings.EqualFold(a.user.Email, email) {
			if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
				return nil, domain.ErrInvalidCredentials
			}
			u := a.user
			return &u, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (s *Store) UserByID(id int) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := a.user
	return &u, nil
}

func (s *Store) ListUsers() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, a := range s.users {
		out = append(out, a.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) CreateUser(d domain.UserDraft) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.users {
		if strings.EqualFold(a.user.Email, d.Email) {
			return nil, domain.ErrUserExists
		}
	}
	u := domain.User{
		ID:      s.allocID(),
		Nom:     d.Nom,
		Email:   d.Email,
		RoleID:  d.RoleID,
		RoleNom: s.refName("roles", d.RoleID),
	}
	if d.DirectionID != 0 {
		u.DirectionID = d.DirectionID
		u.DirectionNom = s.refName("directions", d.DirectionID)
	}
	pw := d.Password
	if pw == "" {
		pw = "changeme"
	}
	s.users[u.ID] = &account{user: u, hash: hashPassword(pw)}
	return &u, nil
}

func (s *Store) UpdateUser(id int, d domain.UserDraft) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && strings.EqualFold(other.user.Email, d.Email) {
			return nil, domain.ErrUserExists
		}
	}
	a.user.Nom = d.Nom
	a.user.Email = d.Email
	if d.RoleID != 0 {
		a.user.RoleID = d.RoleID
		a.user.RoleNom = s.refName("roles", d.RoleID)
	}
	if d.DirectionID != 0 {
		a.user.DirectionID = d.DirectionID
		a.user.DirectionNom = s.refName("directions", d.DirectionID)
	}
	if d.Password != "" {
		a.hash = hashPassword(d.Password)
	}
	u := a.user
	return &u, nil
}

func (s *Store) DeleteUser(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// --- projects ---

// ProjectFilter narrows ListProjects. OwnerID limits results to one chef's
// projects, matching the restricted view of the Chef de Projet role.
type ProjectFilter struct {
	Statut  string
	Search  string
	OwnerID int
}

func (s *Store) ListProjects(f ProjectFilter) []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if f.OwnerID != 0 && p.ChefProjetID != f.OwnerID {
			continue
		}
		if f.Statut != "" && !strings.EqualFold(p.Statut, f.Statut) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Nom), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ProjectByID(id int) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) CreateProject(d domain.ProjectDraft) *domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	p := domain.Project{
		ID:            id,
		Nom:           d.Nom,
		Code:          "PRJ-" + strconv.Itoa(id),
		Description:   d.Description,
		ChefProjetID:  d.ChefProjetID,
		DirectionID:   d.DirectionID,
		BudgetPrevu:   d.BudgetPrevu,
		DateDebut:     d.DateDebut,
		DateFinPrevue: d.DateFinPrevue,
		Statut:        s.refName("statuts", d.StatutID),
		Priorite:      s.refName("priorites", d.PrioriteID),
	}
	if a, ok := s.users[d.ChefProjetID]; ok {
		p.ChefProjetNom = a.user.Nom
	}
	p.DirectionNom = s.refName("directions", d.DirectionID)
	s.projects[id] = &p
	cp := p
	return &cp
}

func (s *Store) UpdateProject(id int, d domain.ProjectDraft) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	p.Nom = d.Nom
	p.Description = d.Description
	if d.ChefProjetID != 0 {
		p.ChefProjetID = d.ChefProjetID
		if a, ok := s.users[d.ChefProjetID]; ok {
			p.ChefProjetNom = a.user.Nom
		}
	}
	if d.DirectionID != 0 {
		p.DirectionID = d.DirectionID
		p.DirectionNom = s.refName("directions", d.DirectionID)
	}
	if d.StatutID != 0 {
		p.Statut = s.refName("statuts", d.StatutID)
	}
	if d.PrioriteID != 0 {
		p.Priorite = s.refName("priorites", d.PrioriteID)
	}
	if d.BudgetPrevu != 0 {
		p.BudgetPrevu = d.BudgetPrevu
	}
	if d.DateDebut != "" {
		p.DateDebut = d.DateDebut
	}
	if d.DateFinPrevue != "" {
		p.DateFinPrevue = d.DateFinPrevue
	}
	cp := *p
	return &cp, nil
}

func (s *Store) DeleteProject(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(s.projects, id)
	for phID, ph := range s.phases {
		if ph.ProjetID == id {
			delete(s.phases, phID)
		}
	}
	return nil
}

// --- phases ---

func (s *Store) ListPhases(projectID int) ([]domain.Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		return nil, domain.ErrProjectNotFound
	}
	out := make([]domain.Phase, 0)
	for _, ph := range s.phases {
		if ph.ProjetID == projectID {
			out = append(out, *ph)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordre < out[j].Ordre })
	return out, nil
}

func (s *Store) PhaseByID(id int) (*domain.Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ph, ok := s.phases[id]
	if !ok {
		return nil, domain.ErrPhaseNotFound
	}
	cp := *ph
	return &cp, nil
}

func (s *Store) CreatePhase(projectID int, d domain.PhaseDraft) (*domain.Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		return nil, domain.ErrProjectNotFound
	}
	ph := domain.Phase{
		ID:         s.allocID(),
		ProjetID:   projectID,
		Nom:        d.Nom,
		Statut:     d.Statut,
		Ordre:      d.Ordre,
		DateDebut:  d.DateDebut,
		DateFin:    d.DateFin,
		Avancement: d.Avancement,
	}
	s.phases[ph.ID] = &ph
	cp := ph
	return &cp, nil
}

func (s *Store) UpdatePhase(id int, d domain.PhaseDraft) (*domain.Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ph, ok := s.phases[id]
	if !ok {
		return nil, domain.ErrPhaseNotFound
	}
	ph.Nom = d.Nom
	ph.Statut = d.Statut
	ph.Ordre = d.Ordre
	ph.DateDebut = d.DateDebut
	ph.DateFin = d.DateFin
	ph.Avancement = d.Avancement
	cp := *ph
	return &cp, nil
}

func (s *Store) DeletePhase(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.phases[id]; !ok {
		return domain.ErrPhaseNotFound
	}
	delete(s.phases, id)
	return nil
}

// --- reference ---

func (s *Store) References(table string) ([]domain.Reference, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	refs, ok := s.refs[table]
	if !ok {
		return nil, false
	}
	out := make([]domain.Reference, len(refs))
	copy(out, refs)
	return out, true
}

// refName resolves an id in a reference table to its display name. Callers
// hold s.mu.
func (s *Store) refName(table string, id int) string {
	for _, r := range s.refs[table] {
		if r.ID == id {
			return r.Nom
		}
	}
	return ""
}
