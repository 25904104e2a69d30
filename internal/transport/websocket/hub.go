package websocket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/connectk/backend/internal/service/game"
)

// Hub tracks who is watching which game and pushes state updates to them.
// It implements the engine's Notifier.
type Hub struct {
	// per-connection write locks: concurrent WriteJSON on one socket is
	// not safe
	watchers map[string]map[*websocket.Conn]*sync.Mutex
	mu       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		watchers: make(map[string]map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *Hub) AddWatcher(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.watchers[gameID] == nil {
		h.watchers[gameID] = make(map[*websocket.Conn]*sync.Mutex)
	}
	h.watchers[gameID][conn] = &sync.Mutex{}
}

func (h *Hub) RemoveWatcher(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, exists := h.watchers[gameID]; exists {
		if _, watching := conns[conn]; watching {
			conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(h.watchers, gameID)
		}
	}
}

// Broadcast pushes the state to every watcher of the game. Delivery is
// best-effort: a failed write drops that connection.
func (h *Hub) Broadcast(gameID string, state *game.State) {
	h.mu.RLock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.watchers[gameID]))
	for conn, mu := range h.watchers[gameID] {
		conns[conn] = mu
	}
	h.mu.RUnlock()

	for conn, mu := range conns {
		mu.Lock()
		err := conn.WriteJSON(state)
		mu.Unlock()
		if err != nil {
			log.Printf("[WS] Dropping watcher of game %s: %v", gameID, err)
			h.RemoveWatcher(gameID, conn)
		}
	}
}
