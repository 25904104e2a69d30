package memory

import (
	"context"
	"sync"
	"time"

	"github.com/connectk/backend/internal/domain"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Store is an in-process CacheRepository with per-key TTL. It backs tests
// and deployments without Redis.
type Store struct {
	entries map[string]entry
	mu      sync.RWMutex
}

func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return domain.Error("memory store expects string or []byte values")
	}

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: str, expiresAt: expiresAt}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	e, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		return "", domain.ErrSessionNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return "", domain.ErrSessionNotFound
	}
	return e.value, nil
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}
