package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectk/backend/internal/config"
	"github.com/connectk/backend/internal/domain"
	"github.com/connectk/backend/internal/repository/memory"
	"github.com/connectk/backend/internal/service/game"
)

func init() {
	config.LoadConfig()
}

func newTestHandler() *GameHandler {
	return newTestHandlerWithStore(nil)
}

func newTestHandlerWithStore(store game.CacheRepository) *GameHandler {
	engine := game.NewEngine(game.Config{
		Bounds:      domain.Bounds{MinCol: -3, MaxCol: 3, MaxHeight: 4},
		SearchDepth: 3,
		SessionTTL:  time.Hour,
	}, store, nil)
	return NewGameHandler(engine, NewIdentityStore(store, time.Hour))
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) *game.State {
	t.Helper()
	var state game.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return &state
}

func createGame(t *testing.T, h *GameHandler, opponent, firstMover string) (*game.State, []*http.Cookie) {
	t.Helper()
	rec := doJSON(t, h.HandleGame, http.MethodPost, "/api/game", createGameRequest{
		K:          3,
		Color:      "red",
		FirstMover: firstMover,
		Opponent:   opponent,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeState(t, rec), rec.Result().Cookies()
}

func TestCreateGameSetsIdentityCookie(t *testing.T) {
	h := newTestHandler()
	state, cookies := createGame(t, h, "human", "red")

	assert.NotEmpty(t, state.GameID)
	assert.Equal(t, "red", state.CurrentTurn)

	found := false
	for _, c := range cookies {
		if c.Name == "ck_identity" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "create must set the identity cookie")
}

func TestCreateGameRejectsBadInput(t *testing.T) {
	h := newTestHandler()

	rec := doJSON(t, h.HandleGame, http.MethodPost, "/api/game", createGameRequest{
		K: 3, Color: "green", FirstMover: "red", Opponent: "easy",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h.HandleGame, http.MethodPost, "/api/game", createGameRequest{
		K: 1, Color: "red", FirstMover: "red", Opponent: "easy",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h.HandleGame, http.MethodPost, "/api/game", createGameRequest{
		K: 3, Color: "red", FirstMover: "red", Opponent: "medium",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStateRequiresIdentity(t *testing.T) {
	h := newTestHandler()
	rec := doJSON(t, h.HandleGame, http.MethodGet, "/api/game", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlayHumanGame(t *testing.T) {
	h := newTestHandler()
	_, cookies := createGame(t, h, "human", "red")

	rec := doJSON(t, h.HandleMove, http.MethodPost, "/api/game/move", moveRequest{Column: 0}, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state := decodeState(t, rec)
	assert.Equal(t, "blue", state.CurrentTurn)
	assert.Equal(t, []int{0}, state.Moves)

	// out of bounds
	rec = doJSON(t, h.HandleMove, http.MethodPost, "/api/game/move", moveRequest{Column: 99}, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// human mode never has a computer turn
	rec = doJSON(t, h.HandleComputerMove, http.MethodPost, "/api/game/computer-move", nil, cookies)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestComputerOpponentFlow(t *testing.T) {
	h := newTestHandler()
	state, cookies := createGame(t, h, "easy", "blue")
	require.True(t, state.ComputerToMove)

	// the player may not move on the computer's turn
	rec := doJSON(t, h.HandleMove, http.MethodPost, "/api/game/move", moveRequest{Column: 0}, cookies)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, h.HandleComputerMove, http.MethodPost, "/api/game/computer-move", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state = decodeState(t, rec)
	assert.Equal(t, "red", state.CurrentTurn)
	assert.Len(t, state.Moves, 1)
}

func TestResetGame(t *testing.T) {
	h := newTestHandler()
	_, cookies := createGame(t, h, "human", "red")

	rec := doJSON(t, h.HandleGame, http.MethodDelete, "/api/game", nil, cookies)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h.HandleGame, http.MethodGet, "/api/game", nil, cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewGameSupersedesOld(t *testing.T) {
	h := newTestHandler()
	first, cookies := createGame(t, h, "human", "red")

	rec := doJSON(t, h.HandleGame, http.MethodPost, "/api/game", createGameRequest{
		K: 4, Color: "blue", FirstMover: "blue", Opponent: "hard",
	}, cookies)
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decodeState(t, rec)
	assert.NotEqual(t, first.GameID, second.GameID)

	rec = doJSON(t, h.HandleGame, http.MethodGet, "/api/game", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, second.GameID, decodeState(t, rec).GameID)
}

func TestGameSurvivesRestart(t *testing.T) {
	store := memory.NewStore()
	h := newTestHandlerWithStore(store)
	created, cookies := createGame(t, h, "human", "red")

	rec := doJSON(t, h.HandleMove, http.MethodPost, "/api/game/move", moveRequest{Column: 0}, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// a fresh handler over the same store stands in for a restarted process
	h2 := newTestHandlerWithStore(store)
	rec = doJSON(t, h2.HandleGame, http.MethodGet, "/api/game", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state := decodeState(t, rec)
	assert.Equal(t, created.GameID, state.GameID)
	assert.Equal(t, []int{0}, state.Moves)

	// play continues on the restored session
	rec = doJSON(t, h2.HandleMove, http.MethodPost, "/api/game/move", moveRequest{Column: 1}, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []int{1, 0}, decodeState(t, rec).Moves)
}

func TestResetDoesNotSurviveRestart(t *testing.T) {
	store := memory.NewStore()
	h := newTestHandlerWithStore(store)
	_, cookies := createGame(t, h, "human", "red")

	rec := doJSON(t, h.HandleGame, http.MethodDelete, "/api/game", nil, cookies)
	require.Equal(t, http.StatusNoContent, rec.Code)

	h2 := newTestHandlerWithStore(store)
	rec = doJSON(t, h2.HandleGame, http.MethodGet, "/api/game", nil, cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIdentityStoreLifecycle(t *testing.T) {
	s := NewIdentityStore(nil, time.Hour)

	_, exists := s.Lookup("id1")
	assert.False(t, exists)

	s.Bind("id1", "game1")
	gameID, exists := s.Lookup("id1")
	require.True(t, exists)
	assert.Equal(t, "game1", gameID)

	s.Bind("id1", "game2")
	gameID, _ = s.Lookup("id1")
	assert.Equal(t, "game2", gameID)

	s.Unbind("id1")
	_, exists = s.Lookup("id1")
	assert.False(t, exists)
}
