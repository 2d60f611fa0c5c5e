package domain

// Role display names as returned by the backend. Permission derivation keys
// on these exact strings.
const (
	RoleAdmin      = "Administrateur fonctionnel"
	RolePMO        = "PMO / Directeur de projets"
	RoleChefProjet = "Chef de Projet"
)

// User is the authenticated actor as reported by the backend. It is rebuilt
// wholesale on every login or session replay and never partially mutated.
type User struct {
	ID           int    `json:"id"`
	Nom          string `json:"nom"`
	Email        string `json:"email,omitempty"`
	RoleID       int    `json:"role_id,omitempty"`
	RoleNom      string `json:"role_nom"`
	DirectionID  int    `json:"direction_id,omitempty"`
	DirectionNom string `json:"direction_nom,omitempty"`
}

// UserDraft carries the fields accepted by user create/update calls.
type UserDraft struct {
	Nom         string `json:"nom" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password,omitempty" validate:"omitempty,min=6"`
	RoleID      int    `json:"role_id" validate:"required,gt=0"`
	DirectionID int    `json:"direction_id,omitempty"`
}
