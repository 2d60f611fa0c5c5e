package store

import (
	"sync"
	"time"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

// MemoryStore keeps the session in memory only. The session does not survive
// process restart.
type MemoryStore struct {
	mu      sync.Mutex
	session domain.Session
	present bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{Token: token, Expiry: expiry}
	s.present = true
	return nil
}

func (s *MemoryStore) Read() (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.present, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
	s.present = false
	return nil
}
