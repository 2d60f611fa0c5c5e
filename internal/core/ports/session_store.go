package ports

import (
	"time"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

// SessionStore persists the bearer token and its absolute expiry. Token and
// expiry are written and cleared as one unit: a reader never observes one
// without the other.
type SessionStore interface {
	// Save replaces any stored session with the given token and expiry.
	Save(token string, expiry time.Time) error

	// Read returns the stored session. The boolean is false when no session
	// is stored.
	Read() (domain.Session, bool, error)

	// Clear removes the stored session. Clearing an empty store is a no-op.
	Clear() error
}
