package bot

import (
	"github.com/connectk/backend/internal/domain"
)

// Evaluation weights for non-terminal positions, highest priority first.
// Runs are scored relative to k so the evaluation adapts to any line
// length, not just connect-4.
const (
	nearWinWeight = 500 // open run one short of k
	buildWeight   = 60  // open run two short of k
	runWeight     = 6   // per piece of any shorter open run
	pieceWeight   = 4   // any placed piece
	centerWeight  = 3   // per step of closeness to the window center
	centerReach   = 4   // columns from center that still earn a bonus
)

// evaluateBoard scores a position from me's perspective: positive favors
// me, negative favors the opponent.
func evaluateBoard(b *domain.Board, me, opponent domain.Color, k int) int {
	score := 0
	for col, stack := range b.Columns {
		for h, color := range stack {
			v := evaluatePosition(b, col, h, color, k)
			if color == me {
				score += v
			} else {
				score -= v
			}
		}
	}
	return score
}

// evaluatePosition scores one piece by the open runs through it on the two
// winning axes plus a center-proximity bonus.
func evaluatePosition(b *domain.Board, col, height int, color domain.Color, k int) int {
	score := pieceWeight

	center := (b.Bounds.MinCol + b.Bounds.MaxCol) / 2
	dist := col - center
	if dist < 0 {
		dist = -dist
	}
	if dist < centerReach {
		score += centerWeight * (centerReach - dist)
	}

	axes := [2][2]int{
		{1, 0}, // horizontal
		{0, 1}, // vertical
	}
	for _, axis := range axes {
		dCol, dH := axis[0], axis[1]
		run := domain.RunLength(b, col, height, dCol, dH, color)
		if !extendable(b, col, height, dCol, dH, color) {
			continue // a dead run can never reach k
		}
		switch {
		case run >= k-1:
			score += nearWinWeight
		case run == k-2:
			score += buildWeight
		default:
			score += run * runWeight
		}
	}

	return score
}

// extendable reports whether the run through (col, height) along the axis
// has at least one end that a future piece can still occupy.
func extendable(b *domain.Board, col, height, dCol, dH int, color domain.Color) bool {
	// walk to one step past each end of the run
	eCol, eH := col, height
	for {
		next, nextH := eCol+dCol, eH+dH
		if c, ok := b.ColorAt(next, nextH); !ok || c != color {
			eCol, eH = next, nextH
			break
		}
		eCol, eH = next, nextH
	}
	if fillable(b, eCol, eH) {
		return true
	}

	eCol, eH = col, height
	for {
		next, nextH := eCol-dCol, eH-dH
		if c, ok := b.ColorAt(next, nextH); !ok || c != color {
			eCol, eH = next, nextH
			break
		}
		eCol, eH = next, nextH
	}
	return fillable(b, eCol, eH)
}

// fillable reports whether a cell is empty and can eventually hold a piece
// under the board's bounds and gravity.
func fillable(b *domain.Board, col, height int) bool {
	if !b.InBounds(col) || height < 0 || height >= b.Bounds.MaxHeight {
		return false
	}
	return b.Height(col) <= height
}
