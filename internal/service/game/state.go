package game

import (
	"github.com/connectk/backend/internal/domain"
)

// State is the outward-facing snapshot of one session, safe to hand to
// transports and render as JSON. Columns map column index to the
// bottom-up stack of colors; Moves lists played columns newest first so a
// client can center its viewport on the last move.
type State struct {
	GameID         string           `json:"game_id"`
	K              int              `json:"k"`
	PlayerColor    string           `json:"player_color"`
	OpponentColor  string           `json:"opponent_color"`
	Opponent       string           `json:"opponent"`
	CurrentTurn    string           `json:"current_turn"`
	Status         string           `json:"status"`
	Winner         string           `json:"winner,omitempty"`
	ComputerToMove bool             `json:"computer_to_move"`
	Bounds         domain.Bounds    `json:"bounds"`
	Columns        map[int][]string `json:"columns"`
	Moves          []int            `json:"moves"`
}

func newState(gameID string, g *domain.Game) *State {
	columns := make(map[int][]string, len(g.Board.Columns))
	for col, stack := range g.Board.Columns {
		cells := make([]string, len(stack))
		for i, c := range stack {
			cells[i] = c.String()
		}
		columns[col] = cells
	}

	moves := make([]int, len(g.Moves))
	for i, m := range g.Moves {
		moves[i] = m.Column
	}

	return &State{
		GameID:         gameID,
		K:              g.K,
		PlayerColor:    g.PlayerColor.String(),
		OpponentColor:  g.OpponentColor.String(),
		Opponent:       string(g.Opponent),
		CurrentTurn:    g.CurrentTurn.String(),
		Status:         string(g.Status),
		Winner:         g.Winner.String(),
		ComputerToMove: g.ComputerToMove(),
		Bounds:         g.Board.Bounds,
		Columns:        columns,
		Moves:          moves,
	}
}
