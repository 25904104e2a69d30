package domain

// Color identifies a piece or a side. The zero value marks an empty cell.
type Color int

const (
	Empty Color = 0
	Red   Color = 1
	Blue  Color = 2
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return ""
	}
}

// ParseColor maps a wire value to a Color.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "red":
		return Red, true
	case "blue":
		return Blue, true
	}
	return Empty, false
}

// Opponent returns the other side's color.
func (c Color) Opponent() Color {
	if c == Red {
		return Blue
	}
	return Red
}

// OpponentMode selects who plays the second side.
type OpponentMode string

const (
	OpponentHuman OpponentMode = "human"
	OpponentEasy  OpponentMode = "easy"
	OpponentHard  OpponentMode = "hard"
)

func ParseOpponentMode(s string) (OpponentMode, bool) {
	switch OpponentMode(s) {
	case OpponentHuman, OpponentEasy, OpponentHard:
		return OpponentMode(s), true
	}
	return "", false
}

// IsComputer reports whether the second side is engine-controlled.
func (m OpponentMode) IsComputer() bool {
	return m == OpponentEasy || m == OpponentHard
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Move is one committed placement.
type Move struct {
	Column int   `json:"column"`
	Color  Color `json:"color"`
}

// basic errors that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidConfig   Error = "invalid configuration"
	ErrIllegalMove     Error = "illegal move"
	ErrColumnFull      Error = "column is full"
	ErrGameOver        Error = "game is already over"
	ErrNotPlayerTurn   Error = "not the player's turn"
	ErrNotComputerTurn Error = "not the computer's turn"
	ErrSessionNotFound Error = "session not found"
)
