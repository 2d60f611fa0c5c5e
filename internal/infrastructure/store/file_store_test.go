package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psim", "session.json")
	s := NewFileStore(path)

	expiry := time.Now().Add(8 * time.Hour).Truncate(time.Millisecond)
	if err := s.Save("tok-123", expiry); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	sess, ok, err := s.Read()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected a stored session")
	}
	if sess.Token != "tok-123" {
		t.Fatalf("token = %q, want tok-123", sess.Token)
	}
	if !sess.Expiry.Equal(expiry) {
		t.Fatalf("expiry = %v, want %v", sess.Expiry, expiry)
	}
}

func TestFileStore_ReadAbsent(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	_, ok, err := s.Read()
	if err != nil {
		t.Fatalf("read of absent file errored: %v", err)
	}
	if ok {
		t.Fatalf("absent file should report no session")
	}
}

func TestFileStore_ClearRemovesBothKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path)

	if err := s.Save("tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok, _ := s.Read(); ok {
		t.Fatalf("session survived clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file should be gone after clear")
	}
	// Clearing twice must stay silent.
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear errored: %v", err)
	}
}

func TestFileStore_CorruptFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	s := NewFileStore(path)
	_, ok, err := s.Read()
	if err != nil {
		t.Fatalf("corrupt file should not error: %v", err)
	}
	if ok {
		t.Fatalf("corrupt file should report no session")
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, ok, _ := s.Read(); ok {
		t.Fatalf("fresh store should be empty")
	}
	expiry := time.Now().Add(time.Hour)
	if err := s.Save("tok", expiry); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	sess, ok, err := s.Read()
	if err != nil || !ok {
		t.Fatalf("read failed: ok=%v err=%v", ok, err)
	}
	if sess.Token != "tok" || !sess.Expiry.Equal(expiry) {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok, _ := s.Read(); ok {
		t.Fatalf("session survived clear")
	}
}
