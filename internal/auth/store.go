package auth

import (
	"sync"

	"github.com/desertthunder/jukebox/internal/shared"
)

// TokenStore holds the single bearer token.
//
// Load returns [shared.ErrNotAuthenticated] when no token has been saved.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// MemoryStore is a process-local [TokenStore].
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns a [MemoryStore], optionally seeded with token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", shared.ErrNotAuthenticated
	}
	return s.token, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
