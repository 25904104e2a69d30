package bot

import (
	"math"

	"github.com/connectk/backend/internal/domain"
)

// Tunables for the hard policy. DefaultSearchDepth bounds latency on wide
// boards; the engine overrides it from BOT_SEARCH_DEPTH.
const (
	DefaultSearchDepth = 6
	winScore           = 1000000
)

// ChooseMoveHard runs a bounded-depth minimax with alpha-beta pruning over
// the candidate window and returns the best-scoring column.
func ChooseMoveHard(b *domain.Board, me domain.Color, k, depth int) int {
	if depth <= 0 {
		depth = DefaultSearchDepth
	}

	candidates := candidateColumns(b)
	if len(candidates) == 0 {
		return -1
	}

	opponent := me.Opponent()
	bestCol := candidates[0]
	bestScore := math.MinInt32
	alpha := math.MinInt32
	beta := math.MaxInt32

	for _, col := range candidates {
		height, _ := b.Place(col, me)
		if domain.CheckWin(b, col, height, me, k) {
			b.Unplace(col)
			return col
		}

		score := minimax(b, depth-1, alpha, beta, false, me, opponent, k)
		b.Unplace(col)

		if score > bestScore {
			bestScore = score
			bestCol = col
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}

	return bestCol
}

func minimax(b *domain.Board, depth, alpha, beta int, maximizing bool, me, opponent domain.Color, k int) int {
	candidates := candidateColumns(b)
	if depth == 0 || len(candidates) == 0 {
		return evaluateBoard(b, me, opponent, k)
	}

	if maximizing {
		maxEval := math.MinInt32
		for _, col := range candidates {
			height, _ := b.Place(col, me)
			if domain.CheckWin(b, col, height, me, k) {
				b.Unplace(col)
				return winScore + depth // prefer quicker wins
			}
			eval := minimax(b, depth-1, alpha, beta, false, me, opponent, k)
			b.Unplace(col)

			if eval > maxEval {
				maxEval = eval
			}
			if eval > alpha {
				alpha = eval
			}
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.MaxInt32
	for _, col := range candidates {
		height, _ := b.Place(col, opponent)
		if domain.CheckWin(b, col, height, opponent, k) {
			b.Unplace(col)
			return -winScore - depth // prefer delaying losses
		}
		eval := minimax(b, depth-1, alpha, beta, true, me, opponent, k)
		b.Unplace(col)

		if eval < minEval {
			minEval = eval
		}
		if eval < beta {
			beta = eval
		}
		if beta <= alpha {
			break
		}
	}
	return minEval
}
