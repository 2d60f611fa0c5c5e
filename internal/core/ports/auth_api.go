package ports

import (
	"context"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

// LoginResult is returned by a successful login call.
type LoginResult struct {
	User  *domain.User
	Token string
}

// AuthAPI wraps the three backend authentication calls behind a uniform
// result shape.
type AuthAPI interface {
	// Login posts credentials. A rejected login returns a RequestError
	// wrapping domain.ErrInvalidCredentials with the backend's message
	// verbatim; there is no retry.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Me validates the stored token and returns the current user. Any
	// non-2xx answer means the session is invalid, not that the network
	// hiccuped.
	Me(ctx context.Context) (*domain.User, error)

	// Logout notifies the backend. Best effort: client-side teardown must
	// proceed regardless of the outcome.
	Logout(ctx context.Context) error
}
