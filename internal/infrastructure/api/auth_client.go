package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/ports"
)

// AuthClient implements ports.AuthAPI over the shared transport.
type AuthClient struct {
	c *Client
}

var _ ports.AuthAPI = (*AuthClient)(nil)

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts credentials. Any backend rejection is mapped to a single
// terminal InvalidCredentials failure carrying the backend message verbatim.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	env, err := a.c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		var re *domain.RequestError
		if errors.As(err, &re) && re.Kind != domain.KindNetwork {
			return nil, &domain.RequestError{
				Kind:    domain.KindAuth,
				Status:  re.Status,
				Message: re.Message,
				Err:     domain.ErrInvalidCredentials,
			}
		}
		return nil, err
	}

	user, err := decodeUser(env.User)
	if err != nil {
		return nil, err
	}
	if user == nil || env.Token == "" {
		return nil, &domain.RequestError{
			Kind:    domain.KindAuth,
			Message: "réponse de connexion incomplète",
			Err:     domain.ErrInvalidCredentials,
		}
	}
	return &ports.LoginResult{User: user, Token: env.Token}, nil
}

// Me validates the stored token. Any failure means the session is invalid.
func (a *AuthClient) Me(ctx context.Context) (*domain.User, error) {
	env, err := a.c.do(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	user, err := decodeUser(env.User)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}

// Logout notifies the backend. Errors are returned for logging only; the
// caller tears the session down regardless.
func (a *AuthClient) Logout(ctx context.Context) error {
	return a.c.post(ctx, "/auth/logout", nil)
}

func decodeUser(raw json.RawMessage) (*domain.User, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}
