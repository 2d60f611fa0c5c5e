package stub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(Config{JWTSecret: "test-secret", Logger: zerolog.Nop()}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
	Token   string          `json:"token"`
	User    *domain.User    `json:"user"`
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, testEnvelope) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func loginAs(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, env.Token)
	return env.Token
}

func TestLogin_Success(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email": "admin@entreprise.fr", "password": "admin123",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Token)
	require.NotNil(t, env.User)
	assert.Equal(t, 1, env.User.ID)
	assert.Equal(t, domain.RoleAdmin, env.User.RoleNom)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email": "admin@entreprise.fr", "password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "email ou mot de passe incorrect", env.Message)
}

func TestLogin_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestMe_ResolvesFullUser(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "chef@entreprise.fr", "chef123")

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/auth/me", token, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.User)
	assert.Equal(t, 3, env.User.ID)
	assert.Equal(t, "Jean Martin", env.User.Nom)
	assert.Equal(t, domain.RoleChefProjet, env.User.RoleNom)
}

func TestMe_WithoutToken(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/auth/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestLogout_RevokesToken(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "admin@entreprise.fr", "admin123")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "token revoked", env.Message)
}

func TestProjects_ChefSeesOnlyOwnProjects(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "chef@entreprise.fr", "chef123")

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/projects", token, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var projects []domain.Project
	require.NoError(t, json.Unmarshal(env.Data, &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, 7, projects[0].ID)
	assert.Equal(t, 1, env.Count)
}

func TestProjects_AdminSeesAll(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "admin@entreprise.fr", "admin123")

	_, env := doJSON(t, http.MethodGet, srv.URL+"/projects", token, nil)

	var projects []domain.Project
	require.NoError(t, json.Unmarshal(env.Data, &projects))
	assert.Len(t, projects, 2)
}

func TestProjects_SearchFilter(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "pmo@entreprise.fr", "pmo123")

	_, env := doJSON(t, http.MethodGet, srv.URL+"/projects?search=erp", token, nil)

	var projects []domain.Project
	require.NoError(t, json.Unmarshal(env.Data, &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "Migration ERP", projects[0].Nom)
}

func TestProjects_ChefCannotCreate(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "chef@entreprise.fr", "chef123")

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/projects", token, domain.ProjectDraft{Nom: "Projet interdit"})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "accès refusé", env.Message)
}

func TestProjects_CreateValidation(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "pmo@entreprise.fr", "pmo123")

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/projects", token, domain.ProjectDraft{Nom: "ab"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestProjects_ChefEditsOwnProjectOnly(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "chef@entreprise.fr", "chef123")

	// Own project: allowed.
	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/projects/7", token, domain.ProjectDraft{Nom: "Refonte du portail RH v2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Someone else's project: refused.
	resp, env := doJSON(t, http.MethodPut, srv.URL+"/projects/8", token, domain.ProjectDraft{Nom: "Migration ERP v2"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "accès refusé", env.Message)
}

func TestProjects_DeleteCascadesPhases(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "admin@entreprise.fr", "admin123")

	resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/projects/7", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/projects/7/phases", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "projet introuvable", env.Message)
}

func TestUsers_AdminOnly(t *testing.T) {
	srv := newTestServer(t)

	for _, creds := range []struct{ email, password string }{
		{"pmo@entreprise.fr", "pmo123"},
		{"chef@entreprise.fr", "chef123"},
	} {
		token := loginAs(t, srv, creds.email, creds.password)
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/users", token, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "role %s", creds.email)
	}

	token := loginAs(t, srv, "admin@entreprise.fr", "admin123")
	resp, env := doJSON(t, http.MethodGet, srv.URL+"/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []domain.User
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 3)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "admin@entreprise.fr", "admin123")

	draft := domain.UserDraft{Nom: "Double", Email: "chef@entreprise.fr", Password: "secret1", RoleID: 3}
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/users", token, draft)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "un utilisateur avec cet email existe déjà", env.Message)
}

func TestUsers_CreateThenLogin(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "admin@entreprise.fr", "admin123")

	draft := domain.UserDraft{Nom: "Sophie Bernard", Email: "sophie@entreprise.fr", Password: "sophie1", RoleID: 3, DirectionID: 3}
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/users", token, draft)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.User
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, domain.RoleChefProjet, created.RoleNom)

	// The new account can authenticate right away.
	loginAs(t, srv, "sophie@entreprise.fr", "sophie1")
}

func TestPhases_FollowProjectOwnership(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "chef@entreprise.fr", "chef123")

	// Phases of the chef's own project.
	resp, env := doJSON(t, http.MethodGet, srv.URL+"/projects/7/phases", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var phases []domain.Phase
	require.NoError(t, json.Unmarshal(env.Data, &phases))
	require.Len(t, phases, 2)
	assert.Equal(t, "Cadrage", phases[0].Nom)

	// Creating a phase under another chef's project is refused.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/projects/8/phases", token, domain.PhaseDraft{Nom: "Sabotage", Ordre: 9})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPhases_AvancementBounds(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "admin@entreprise.fr", "admin123")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/projects/7/phases", token, domain.PhaseDraft{Nom: "Recette", Ordre: 3, Avancement: 150})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReference_Tables(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "chef@entreprise.fr", "chef123")

	for table, wantLen := range map[string]int{
		"directions": 3,
		"roles":      3,
		"statuts":    4,
		"priorites":  4,
	} {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/reference/"+table, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, table)
		var refs []domain.Reference
		require.NoError(t, json.Unmarshal(env.Data, &refs))
		assert.Len(t, refs, wantLen, table)
	}

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/reference/inconnu", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth_Public(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
