package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/connectk/backend/internal/service/game"
	"github.com/connectk/backend/pkg/auth"
	"github.com/connectk/backend/pkg/httputil"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// GameResolver maps a browser identity to its current game handle.
type GameResolver interface {
	Lookup(identityID string) (string, bool)
}

// Handler upgrades watch requests and streams state updates for the
// caller's game.
type Handler struct {
	Hub      *Hub
	Engine   *game.Engine
	Resolver GameResolver
	Upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, engine *game.Engine, resolver GameResolver) *Handler {
	return &Handler{
		Hub:      hub,
		Engine:   engine,
		Resolver: resolver,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWatch is the HTTP handler that upgrades the connection.
func (h *Handler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.resolveGame(r)
	if !ok {
		http.Error(w, "no game in progress", http.StatusNotFound)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.watch(gameID, conn)
}

func (h *Handler) resolveGame(r *http.Request) (string, bool) {
	token, err := httputil.GetTokenFromCookie(r)
	if err != nil {
		return "", false
	}
	claims, err := auth.ValidateIdentityToken(token)
	if err != nil {
		return "", false
	}
	return h.Resolver.Lookup(claims.IdentityID)
}

func (h *Handler) watch(gameID string, conn *websocket.Conn) {
	h.Hub.AddWatcher(gameID, conn)
	log.Printf("[WS] Watcher joined game %s", gameID)

	// send the current state immediately so the client has a baseline
	if state, err := h.Engine.GetState(gameID); err == nil {
		if err := conn.WriteJSON(state); err != nil {
			h.Hub.RemoveWatcher(gameID, conn)
			return
		}
	}

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})

	// keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// the watch channel is one-way; the read loop only detects closure
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	close(done)
	h.Hub.RemoveWatcher(gameID, conn)
	log.Printf("[WS] Watcher left game %s", gameID)
}
