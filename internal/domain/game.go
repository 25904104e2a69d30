package domain

// Game is the state machine for one match. Configuration is fixed at
// creation; the board mutates only through MakeMove. A Game is owned by
// exactly one session and is not safe for concurrent use — callers
// serialize access per session.
type Game struct {
	Board         *Board       `json:"board"`
	K             int          `json:"k"`
	PlayerColor   Color        `json:"player_color"`
	OpponentColor Color        `json:"opponent_color"`
	Opponent      OpponentMode `json:"opponent"`
	FirstMover    Color        `json:"first_mover"`
	CurrentTurn   Color        `json:"current_turn"`
	Status        GameStatus   `json:"status"`
	Winner        Color        `json:"winner"`
	Moves         []Move       `json:"moves"` // newest first
}

// NewGame validates the configuration and returns a fresh game with an
// empty board and the first mover to play.
func NewGame(k int, playerColor, opponentColor, firstMover Color, opponent OpponentMode, bounds Bounds) (*Game, error) {
	if k < 2 {
		return nil, ErrInvalidConfig
	}
	if playerColor != Red && playerColor != Blue {
		return nil, ErrInvalidConfig
	}
	if opponentColor != Red && opponentColor != Blue {
		return nil, ErrInvalidConfig
	}
	if playerColor == opponentColor {
		return nil, ErrInvalidConfig
	}
	if firstMover != playerColor && firstMover != opponentColor {
		return nil, ErrInvalidConfig
	}
	if _, ok := ParseOpponentMode(string(opponent)); !ok {
		return nil, ErrInvalidConfig
	}
	if bounds.MinCol > bounds.MaxCol || bounds.MaxHeight < 1 {
		return nil, ErrInvalidConfig
	}
	return &Game{
		Board:         NewBoard(bounds),
		K:             k,
		PlayerColor:   playerColor,
		OpponentColor: opponentColor,
		Opponent:      opponent,
		FirstMover:    firstMover,
		CurrentTurn:   firstMover,
		Status:        StatusActive,
		Winner:        Empty,
	}, nil
}

// MakeMove places a piece for the side to move, re-evaluates the outcome,
// and flips the turn. Board, status, and turn update as one step: on any
// error nothing has changed.
func (g *Game) MakeMove(column int) (int, error) {
	if g.IsFinished() {
		return -1, ErrGameOver
	}
	if !g.Board.InBounds(column) {
		return -1, ErrIllegalMove
	}

	height, err := g.Board.Place(column, g.CurrentTurn)
	if err != nil {
		return -1, err
	}

	g.Moves = append([]Move{{Column: column, Color: g.CurrentTurn}}, g.Moves...)
	g.Status, g.Winner = EvaluateMove(g.Board, column, height, g.CurrentTurn, g.K)
	g.CurrentTurn = g.CurrentTurn.Opponent()
	return height, nil
}

// UnplayMove reverts the most recent move: board, history, status, and
// turn. Used by move search on a snapshot; a no-op with no history.
func (g *Game) UnplayMove() {
	if len(g.Moves) == 0 {
		return
	}
	last := g.Moves[0]
	g.Moves = g.Moves[1:]
	g.Board.Unplace(last.Column)
	g.CurrentTurn = last.Color
	g.Status = StatusActive
	g.Winner = Empty
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// ComputerToMove reports whether the engine-controlled side is to move.
func (g *Game) ComputerToMove() bool {
	return !g.IsFinished() && g.Opponent.IsComputer() && g.CurrentTurn == g.OpponentColor
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (Move, bool) {
	if len(g.Moves) == 0 {
		return Move{}, false
	}
	return g.Moves[0], true
}

// Snapshot deep-copies the game for read-only callers and move search.
func (g *Game) Snapshot() *Game {
	ng := *g
	ng.Board = g.Board.Snapshot()
	ng.Moves = make([]Move, len(g.Moves))
	copy(ng.Moves, g.Moves)
	return &ng
}
