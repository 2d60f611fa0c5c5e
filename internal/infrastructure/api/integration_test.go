package api_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/service"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/infrastructure/api"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/infrastructure/store"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/infrastructure/stub"
)

// harness wires the real client stack against the stub backend, the same
// graph the CLI builds.
type harness struct {
	store   *store.MemoryStore
	client  *api.Client
	session *service.SessionService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := httptest.NewServer(stub.New(stub.Config{JWTSecret: "it-secret", Logger: zerolog.Nop()}).Handler())
	t.Cleanup(backend.Close)

	st := store.NewMemoryStore()
	client := api.NewClient(backend.URL, st, zerolog.Nop())
	session := service.NewSessionService(api.NewAuthClient(client), st, zerolog.Nop())
	client.OnAuthLost(session.Invalidate)

	return &harness{store: st, client: client, session: session}
}

func TestEndToEnd_LoginGrantsAdminSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.session.Bootstrap(ctx))
	require.Equal(t, service.StateAnonymous, h.session.State())

	user, err := h.session.Login(ctx, "admin@entreprise.fr", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.Nom)
	assert.Equal(t, service.StateAuthenticated, h.session.State())

	sess, ok, _ := h.store.Read()
	require.True(t, ok)
	assert.NotEmpty(t, sess.Token)

	perms := h.session.Permissions()
	assert.True(t, perms.CanManageUsers)
	assert.True(t, perms.CanCreateProject)
}

func TestEndToEnd_RejectedLoginCarriesBackendMessage(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.session.Bootstrap(ctx))

	_, err := h.session.Login(ctx, "admin@entreprise.fr", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, "email ou mot de passe incorrect", domain.FailureMessage(err))
	assert.Equal(t, service.StateAnonymous, h.session.State())
}

func TestEndToEnd_SessionReplayAcrossRestart(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.session.Bootstrap(ctx))
	_, err := h.session.Login(ctx, "chef@entreprise.fr", "chef123")
	require.NoError(t, err)

	// A second service over the same store stands in for a process restart.
	session2 := service.NewSessionService(api.NewAuthClient(h.client), h.store, zerolog.Nop())
	require.NoError(t, session2.Bootstrap(ctx))
	assert.Equal(t, service.StateAuthenticated, session2.State())
	require.NotNil(t, session2.CurrentUser())
	assert.Equal(t, "Jean Martin", session2.CurrentUser().Nom)
}

func TestEndToEnd_RevokedTokenTearsDownSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.session.Bootstrap(ctx))
	_, err := h.session.Login(ctx, "pmo@entreprise.fr", "pmo123")
	require.NoError(t, err)

	var lostReasons []string
	h.session.OnSessionLost(func(reason string) { lostReasons = append(lostReasons, reason) })

	// Revoke the token server-side, then hit a protected endpoint: the 401
	// funnels through the client into the session service.
	auth := api.NewAuthClient(h.client)
	require.NoError(t, auth.Logout(ctx))

	projects := api.NewProjectsClient(h.client)
	_, err = projects.List(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindAuth, domain.FailureKindOf(err))

	assert.Equal(t, service.StateAnonymous, h.session.State())
	require.Len(t, lostReasons, 1)
	if _, ok, _ := h.store.Read(); ok {
		t.Fatalf("store must be cleared after session loss")
	}
}

func TestEndToEnd_ProjectListAndDeleteRoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.session.Bootstrap(ctx))
	_, err := h.session.Login(ctx, "admin@entreprise.fr", "admin123")
	require.NoError(t, err)

	col := service.NewCollection[domain.Project, domain.ProjectDraft](api.NewProjectsClient(h.client))
	require.NoError(t, col.Load(ctx, nil))
	require.Len(t, col.Items(), 2)

	require.NoError(t, col.Delete(ctx, 7))
	items := col.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 8, items[0].ID)
}

func TestEndToEnd_ChefSeesFilteredProjects(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.session.Bootstrap(ctx))
	_, err := h.session.Login(ctx, "chef@entreprise.fr", "chef123")
	require.NoError(t, err)

	col := service.NewCollection[domain.Project, domain.ProjectDraft](api.NewProjectsClient(h.client))
	require.NoError(t, col.Load(ctx, nil))
	items := col.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Refonte du portail RH", items[0].Nom)

	perms := h.session.Permissions()
	assert.False(t, perms.CanCreateProject)
	assert.True(t, perms.CanEditProject(3))
	assert.False(t, perms.CanEditProject(2))
}

func TestEndToEnd_CreateProjectWithReferenceIDs(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.session.Bootstrap(ctx))
	_, err := h.session.Login(ctx, "pmo@entreprise.fr", "pmo123")
	require.NoError(t, err)

	refs := api.NewReferenceClient(h.client)
	statuts, err := refs.Statuts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, statuts)

	col := service.NewCollection[domain.Project, domain.ProjectDraft](api.NewProjectsClient(h.client))
	require.NoError(t, col.Load(ctx, nil))

	draft := domain.ProjectDraft{
		Nom:          "Portail fournisseurs",
		ChefProjetID: 3,
		DirectionID:  1,
		StatutID:     statuts[0].ID,
	}
	require.NoError(t, col.Create(ctx, draft))

	var created *domain.Project
	for _, p := range col.Items() {
		if p.Nom == "Portail fournisseurs" {
			created = &p
			break
		}
	}
	require.NotNil(t, created, "created project must appear after the awaited refetch")
	assert.Equal(t, statuts[0].Nom, created.Statut)
	assert.Equal(t, "Jean Martin", created.ChefProjetNom)
}

func TestEndToEnd_PhasesLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.session.Bootstrap(ctx))
	_, err := h.session.Login(ctx, "chef@entreprise.fr", "chef123")
	require.NoError(t, err)

	phases := api.NewPhasesClient(h.client, 7)
	col := service.NewCollection[domain.Phase, domain.PhaseDraft](phases)
	require.NoError(t, col.Load(ctx, nil))
	require.Len(t, col.Items(), 2)

	require.NoError(t, col.Create(ctx, domain.PhaseDraft{Nom: "Recette", Statut: "À venir", Ordre: 3}))
	require.Len(t, col.Items(), 3)

	// Out-of-bounds progress is rejected client-side, before the network.
	err = col.Update(ctx, col.Items()[0].ID, domain.PhaseDraft{Nom: "Cadrage", Ordre: 1, Avancement: 120})
	assert.Equal(t, domain.KindValidation, domain.FailureKindOf(err))
}
