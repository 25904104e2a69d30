package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/connectk/backend/internal/domain"
	"github.com/connectk/backend/internal/service/game"
)

// GameHandler exposes the engine contract over JSON. It owns the
// identity → game mapping; the engine knows nothing about cookies.
type GameHandler struct {
	Engine     *game.Engine
	Identities *IdentityStore
}

func NewGameHandler(engine *game.Engine, identities *IdentityStore) *GameHandler {
	return &GameHandler{Engine: engine, Identities: identities}
}

type createGameRequest struct {
	K          int    `json:"k"`
	Color      string `json:"color"`
	FirstMover string `json:"first_mover"`
	Opponent   string `json:"opponent"`
}

type moveRequest struct {
	Column int `json:"column"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleGame dispatches /api/game by method: create, state, reset.
func (h *GameHandler) HandleGame(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createGame(w, r)
	case http.MethodGet:
		h.getState(w, r)
	case http.MethodDelete:
		h.resetGame(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *GameHandler) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playerColor, ok := domain.ParseColor(req.Color)
	if !ok {
		writeError(w, http.StatusBadRequest, "color must be red or blue")
		return
	}
	firstMover, ok := domain.ParseColor(req.FirstMover)
	if !ok {
		writeError(w, http.StatusBadRequest, "first_mover must be red or blue")
		return
	}
	opponent, ok := domain.ParseOpponentMode(req.Opponent)
	if !ok {
		writeError(w, http.StatusBadRequest, "opponent must be human, easy, or hard")
		return
	}

	identityID, err := ensureIdentity(w, r)
	if err != nil {
		log.Printf("[HTTP] Failed to issue identity: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// one live game per identity: a new game supersedes the old one
	if oldGameID, exists := h.Identities.Lookup(identityID); exists {
		h.Engine.EndSession(oldGameID)
	}

	state, err := h.Engine.CreateSession(game.CreateParams{
		K:             req.K,
		PlayerColor:   playerColor,
		OpponentColor: playerColor.Opponent(),
		FirstMover:    firstMover,
		Opponent:      opponent,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.Identities.Bind(identityID, state.GameID)
	writeJSON(w, http.StatusCreated, state)
}

func (h *GameHandler) getState(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.gameForRequest(w, r)
	if !ok {
		return
	}
	state, err := h.Engine.GetState(gameID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *GameHandler) resetGame(w http.ResponseWriter, r *http.Request) {
	identityID := identityFromRequest(r)
	if identityID == "" {
		writeError(w, http.StatusNotFound, "no game in progress")
		return
	}
	if gameID, exists := h.Identities.Lookup(identityID); exists {
		h.Engine.EndSession(gameID)
		h.Identities.Unbind(identityID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMove applies the human player's move.
func (h *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	gameID, ok := h.gameForRequest(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.Engine.SubmitMove(gameID, req.Column)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleComputerMove asks the engine for the computer side's move. The
// client calls this after seeing computer_to_move in the state.
func (h *GameHandler) HandleComputerMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	gameID, ok := h.gameForRequest(w, r)
	if !ok {
		return
	}

	state, err := h.Engine.RequestComputerMove(gameID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// gameForRequest resolves the caller's identity to its game handle.
func (h *GameHandler) gameForRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	identityID := identityFromRequest(r)
	if identityID == "" {
		writeError(w, http.StatusNotFound, "no game in progress")
		return "", false
	}
	gameID, exists := h.Identities.Lookup(identityID)
	if !exists {
		writeError(w, http.StatusNotFound, "no game in progress")
		return "", false
	}
	return gameID, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeEngineError maps engine errors to HTTP statuses. Every engine
// error is recoverable at the client: re-render state and re-prompt.
func writeEngineError(w http.ResponseWriter, err error) {
	var gameErr domain.Error
	if !errors.As(err, &gameErr) {
		log.Printf("[HTTP] Internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	switch gameErr {
	case domain.ErrInvalidConfig:
		writeError(w, http.StatusBadRequest, gameErr.Error())
	case domain.ErrIllegalMove, domain.ErrColumnFull:
		writeError(w, http.StatusBadRequest, gameErr.Error())
	case domain.ErrNotPlayerTurn, domain.ErrNotComputerTurn, domain.ErrGameOver:
		writeError(w, http.StatusConflict, gameErr.Error())
	case domain.ErrSessionNotFound:
		writeError(w, http.StatusNotFound, gameErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, gameErr.Error())
	}
}
