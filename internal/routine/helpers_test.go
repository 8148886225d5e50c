package routine

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/myroutine/internal/storage"
	"github.com/julianstephens/myroutine/internal/storage/sqlite"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func setupTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	base := []Option{WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC)}
	return New(storage.NewRepository(store), append(base, opts...)...)
}

// memSecrets is an in-memory SecretStore.
type memSecrets struct {
	m       map[string]string
	failSet bool
}

func newMemSecrets() *memSecrets { return &memSecrets{m: make(map[string]string)} }

func (s *memSecrets) Get(id string) (string, error) {
	v, ok := s.m[id]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (s *memSecrets) Set(id, secret string) error {
	if s.failSet {
		return errors.New("keyring locked")
	}
	s.m[id] = secret
	return nil
}

func (s *memSecrets) Delete(id string) error {
	delete(s.m, id)
	return nil
}

func ptr[T any](v T) *T { return &v }
