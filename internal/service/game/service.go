package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/connectk/backend/internal/domain"
	"github.com/connectk/backend/internal/service/bot"
	"github.com/connectk/backend/pkg/uid"
)

const gameKeyPrefix = "game:"

// CacheRepository is the optional backing store for live sessions. A
// session written here survives a process restart for as long as the
// session itself lives; nothing outlasts the TTL.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// Notifier pushes updated state to anyone watching a game.
type Notifier interface {
	Broadcast(gameID string, state *State)
}

// Config carries the engine tunables. Zero values fall back to defaults.
type Config struct {
	Bounds      domain.Bounds
	SearchDepth int           // minimax depth for the hard policy
	SessionTTL  time.Duration // idle lifetime of a session
}

// Engine is the rules authority the web layer talks to. It owns the keyed
// session store and is the only mutator of game state.
type Engine struct {
	cfg      Config
	sessions *SessionManager
	cache    CacheRepository // optional, can be nil
	notifier Notifier        // optional, can be nil
}

func NewEngine(cfg Config, cache CacheRepository, notifier Notifier) *Engine {
	if cfg.Bounds == (domain.Bounds{}) {
		cfg.Bounds = domain.DefaultBounds()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return &Engine{
		cfg:      cfg,
		sessions: NewSessionManager(),
		cache:    cache,
		notifier: notifier,
	}
}

// CreateParams fixes one game's configuration at creation time.
type CreateParams struct {
	K             int
	PlayerColor   domain.Color
	OpponentColor domain.Color
	FirstMover    domain.Color
	Opponent      domain.OpponentMode
}

// CreateSession validates the configuration and opens a new game, returning
// its handle inside the initial state.
func (e *Engine) CreateSession(params CreateParams) (*State, error) {
	g, err := domain.NewGame(params.K, params.PlayerColor, params.OpponentColor,
		params.FirstMover, params.Opponent, e.cfg.Bounds)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		GameID:     uid.GenerateGameID(),
		Game:       g,
		CreatedAt:  now,
		LastActive: now,
	}
	e.sessions.Put(session)
	e.persist(session)

	log.Printf("[ENGINE] Created session %s: k=%d, %s vs %s (%s), %s first",
		session.GameID, g.K, g.PlayerColor, g.OpponentColor, g.Opponent, g.FirstMover)
	return newState(session.GameID, g), nil
}

// GetState returns the current state without mutating it. Two calls with
// no move in between return identical state.
func (e *Engine) GetState(gameID string) (*State, error) {
	session, err := e.getSession(gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()
	return newState(session.GameID, session.Game), nil
}

// SubmitMove applies the human player's move. It fails with
// ErrNotPlayerTurn when the computer side is to move.
func (e *Engine) SubmitMove(gameID string, column int) (*State, error) {
	session, err := e.getSession(gameID)
	if err != nil {
		return nil, err
	}

	state, err := e.applyPlayerMove(session, column)
	if err != nil {
		return nil, err
	}

	// broadcast outside the session lock so a slow watcher cannot stall moves
	e.notify(session.GameID, state)
	return state, nil
}

func (e *Engine) applyPlayerMove(session *Session, column int) (*State, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Game.ComputerToMove() {
		return nil, domain.ErrNotPlayerTurn
	}
	if _, err := session.Game.MakeMove(column); err != nil {
		return nil, err
	}

	session.touch()
	e.persist(session)
	return newState(session.GameID, session.Game), nil
}

// RequestComputerMove asks the opponent policy for a move and applies it.
// It fails with ErrNotComputerTurn unless the computer side is to move.
func (e *Engine) RequestComputerMove(gameID string) (*State, error) {
	session, err := e.getSession(gameID)
	if err != nil {
		return nil, err
	}

	state, err := e.applyComputerMove(session)
	if err != nil {
		return nil, err
	}

	e.notify(session.GameID, state)
	return state, nil
}

func (e *Engine) applyComputerMove(session *Session) (*State, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Game.IsFinished() {
		return nil, domain.ErrGameOver
	}
	if !session.Game.ComputerToMove() {
		return nil, domain.ErrNotComputerTurn
	}

	column, err := bot.ChooseMove(session.Game.Snapshot(), e.cfg.SearchDepth)
	if err != nil {
		// the policy contract guarantees a legal move on a non-terminal
		// board; reaching this is a bug, not a user error
		log.Printf("[ENGINE] BUG: move selection failed for session %s: %v", session.GameID, err)
		return nil, fmt.Errorf("computer move selection: %w", err)
	}
	if _, err := session.Game.MakeMove(column); err != nil {
		log.Printf("[ENGINE] BUG: selected move %d rejected for session %s: %v", column, session.GameID, err)
		return nil, fmt.Errorf("applying computer move: %w", err)
	}

	session.touch()
	e.persist(session)
	return newState(session.GameID, session.Game), nil
}

// EndSession discards a game. Ending an unknown handle is not an error so
// the reset flow stays idempotent.
func (e *Engine) EndSession(gameID string) {
	e.sessions.Remove(gameID)
	if e.cache != nil {
		if err := e.cache.Del(context.Background(), gameKeyPrefix+gameID); err != nil {
			log.Printf("[ENGINE] Warning: failed to delete session %s from store: %v", gameID, err)
		}
	}
}

// EvictIdle drops sessions idle past the configured TTL and returns how
// many were removed.
func (e *Engine) EvictIdle() int {
	evicted := e.sessions.EvictIdle(e.cfg.SessionTTL)
	if e.cache != nil {
		for _, gameID := range evicted {
			if err := e.cache.Del(context.Background(), gameKeyPrefix+gameID); err != nil {
				log.Printf("[ENGINE] Warning: failed to delete evicted session %s from store: %v", gameID, err)
			}
		}
	}
	return len(evicted)
}

func (e *Engine) getSession(gameID string) (*Session, error) {
	if session, exists := e.sessions.Get(gameID); exists {
		return session, nil
	}

	// cache-aside restore after a process restart
	if e.cache != nil {
		data, err := e.cache.Get(context.Background(), gameKeyPrefix+gameID)
		if err == nil && data != "" {
			var session Session
			if err := json.Unmarshal([]byte(data), &session); err == nil {
				e.sessions.Put(&session)
				log.Printf("[ENGINE] Restored session %s from store", gameID)
				return &session, nil
			}
		}
	}

	return nil, domain.ErrSessionNotFound
}

// persist writes the session through to the optional store. Store failures
// only cost restart recovery, so they log and move on.
func (e *Engine) persist(session *Session) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(session)
	if err != nil {
		log.Printf("[ENGINE] Warning: failed to encode session %s: %v", session.GameID, err)
		return
	}
	if err := e.cache.Set(context.Background(), gameKeyPrefix+session.GameID, data, e.cfg.SessionTTL); err != nil {
		log.Printf("[ENGINE] Warning: failed to store session %s: %v", session.GameID, err)
	}
}

func (e *Engine) notify(gameID string, state *State) {
	if e.notifier != nil {
		e.notifier.Broadcast(gameID, state)
	}
}
