package game

import (
	"log"
	"sync"
	"time"

	"github.com/connectk/backend/internal/domain"
)

// Session pairs one live game with its handle. Each session carries its
// own mutex: the engine serializes every call for a given handle, so two
// requests for the same browser cannot interleave inside a move.
type Session struct {
	GameID     string       `json:"game_id"`
	Game       *domain.Game `json:"game"`
	CreatedAt  time.Time    `json:"created_at"`
	LastActive time.Time    `json:"last_active"`

	mu sync.Mutex
}

func (s *Session) touch() {
	s.LastActive = time.Now()
}

// SessionManager is the keyed store of live sessions: handle → Session.
// Sessions for different handles are independent and may be served in
// parallel; the RWMutex only guards the map itself.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

func (sm *SessionManager) Put(session *Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[session.GameID] = session
}

func (sm *SessionManager) Get(gameID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, exists := sm.sessions[gameID]
	return session, exists
}

func (sm *SessionManager) Remove(gameID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, exists := sm.sessions[gameID]; exists {
		log.Printf("[SESSION] Removing session %s", gameID)
		delete(sm.sessions, gameID)
	}
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// EvictIdle removes sessions whose last activity is older than ttl and
// returns the evicted handles.
func (sm *SessionManager) EvictIdle(ttl time.Duration) []string {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	evicted := []string{}
	for gameID, session := range sm.sessions {
		if session.LastActive.Before(cutoff) {
			delete(sm.sessions, gameID)
			evicted = append(evicted, gameID)
		}
	}
	return evicted
}
