package bot

import (
	"fmt"

	"github.com/connectk/backend/internal/domain"
)

// ChooseMove selects a column for the engine-controlled side based on the
// game's difficulty. The game must be a snapshot: both policies mutate the
// board while exploring and restore it before returning. The returned
// column is always legal; an error here is an engine invariant violation,
// not a user-facing condition.
func ChooseMove(g *domain.Game, searchDepth int) (int, error) {
	board := g.Board
	me := g.OpponentColor

	if len(candidateColumns(board)) == 0 {
		return 0, fmt.Errorf("no legal moves for %s on a non-terminal board", me)
	}

	var col int
	switch g.Opponent {
	case domain.OpponentHard:
		col = ChooseMoveHard(board, me, g.K, searchDepth)
	case domain.OpponentEasy:
		col = ChooseMoveEasy(board, me, g.K)
	default:
		return 0, fmt.Errorf("opponent mode %q is not computer-controlled", g.Opponent)
	}

	if !board.IsValidMove(col) {
		return 0, fmt.Errorf("bot selected illegal column %d", col)
	}
	return col, nil
}

// candidateColumns lists the legal columns worth considering: the window
// one beyond the occupied range, since a move further out cannot touch any
// existing line. On an empty board only the window center is proposed.
func candidateColumns(b *domain.Board) []int {
	lo, hi, used := b.UsedRange()
	if !used {
		center := (b.Bounds.MinCol + b.Bounds.MaxCol) / 2
		if b.IsValidMove(center) {
			return []int{center}
		}
		return nil
	}

	lo--
	hi++
	if lo < b.Bounds.MinCol {
		lo = b.Bounds.MinCol
	}
	if hi > b.Bounds.MaxCol {
		hi = b.Bounds.MaxCol
	}

	cols := []int{}
	for c := lo; c <= hi; c++ {
		if b.IsValidMove(c) {
			cols = append(cols, c)
		}
	}

	// full window: fall back to anything still legal
	if len(cols) == 0 {
		cols = b.LegalColumns()
	}
	return cols
}
