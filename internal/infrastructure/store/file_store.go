// Package store provides SessionStore implementations. The file store is the
// durable default; the memory store backs tests and ephemeral sessions.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

// sessionFile is the on-disk layout: one document holding both keys, so token
// and expiry can only ever be written or removed together.
type sessionFile struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"`
}

// FileStore persists the session as a single JSON file. Writes go through a
// temp file and an atomic rename so a concurrent read sees either the old
// session or the new one, never a torn mix.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	raw, err := json.Marshal(sessionFile{Token: token, Expiry: expiry.UnixMilli()})
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

func (s *FileStore) Read() (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("session store: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(raw, &f); err != nil || f.Token == "" {
		// A corrupt file is treated as absent rather than wedging startup.
		return domain.Session{}, false, nil
	}
	return domain.Session{Token: f.Token, Expiry: time.UnixMilli(f.Expiry)}, true, nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}
