package http

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/connectk/backend/internal/service/game"
	"github.com/connectk/backend/pkg/auth"
	"github.com/connectk/backend/pkg/httputil"
	"github.com/connectk/backend/pkg/uid"
)

const identityKeyPrefix = "identity:"

// IdentityStore maps a browser identity to its single live game handle.
// Per-browser identity is an explicit keyed store with a create/evict
// lifecycle, never ambient state: a new game supersedes the old binding
// and a reset removes it. Bindings write through to the optional store
// so a restored session stays reachable after a process restart.
type IdentityStore struct {
	games map[string]string // identityID → gameID
	mu    sync.RWMutex
	cache game.CacheRepository // optional, can be nil
	ttl   time.Duration
}

func NewIdentityStore(cache game.CacheRepository, ttl time.Duration) *IdentityStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdentityStore{
		games: make(map[string]string),
		cache: cache,
		ttl:   ttl,
	}
}

func (s *IdentityStore) Bind(identityID, gameID string) {
	s.mu.Lock()
	s.games[identityID] = gameID
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Set(context.Background(), identityKeyPrefix+identityID, gameID, s.ttl); err != nil {
			log.Printf("[HTTP] Warning: failed to store binding for identity %s: %v", identityID, err)
		}
	}
}

func (s *IdentityStore) Lookup(identityID string) (string, bool) {
	s.mu.RLock()
	gameID, exists := s.games[identityID]
	s.mu.RUnlock()
	if exists {
		return gameID, true
	}

	// restore the binding after a process restart
	if s.cache != nil {
		gameID, err := s.cache.Get(context.Background(), identityKeyPrefix+identityID)
		if err == nil && gameID != "" {
			s.mu.Lock()
			s.games[identityID] = gameID
			s.mu.Unlock()
			return gameID, true
		}
	}

	return "", false
}

func (s *IdentityStore) Unbind(identityID string) {
	s.mu.Lock()
	delete(s.games, identityID)
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Del(context.Background(), identityKeyPrefix+identityID); err != nil {
			log.Printf("[HTTP] Warning: failed to delete binding for identity %s: %v", identityID, err)
		}
	}
}

// identityFromRequest returns the caller's identity, or "" if the request
// carries no valid identity cookie.
func identityFromRequest(r *http.Request) string {
	token, err := httputil.GetTokenFromCookie(r)
	if err != nil {
		return ""
	}
	claims, err := auth.ValidateIdentityToken(token)
	if err != nil {
		return ""
	}
	return claims.IdentityID
}

// ensureIdentity returns the caller's identity, minting and setting a new
// cookie when the request has none.
func ensureIdentity(w http.ResponseWriter, r *http.Request) (string, error) {
	if identityID := identityFromRequest(r); identityID != "" {
		return identityID, nil
	}

	identityID := uid.GenerateIdentityID()
	token, err := auth.GenerateIdentityToken(identityID)
	if err != nil {
		return "", err
	}
	httputil.SetIdentityCookie(w, token)
	return identityID, nil
}
