package bot

import (
	"math/rand"

	"github.com/connectk/backend/internal/domain"
)

// ChooseMoveEasy is the one-ply policy: take an immediate win, otherwise
// block the opponent's immediate win (lowest column when several block),
// otherwise pick among the remaining candidates preferring columns that
// extend our own runs, with a random tie-break.
func ChooseMoveEasy(b *domain.Board, me domain.Color, k int) int {
	candidates := candidateColumns(b)
	if len(candidates) == 0 {
		return -1
	}

	opponent := me.Opponent()

	for _, col := range candidates {
		height, _ := b.Place(col, me)
		won := domain.CheckWin(b, col, height, me, k)
		b.Unplace(col)
		if won {
			return col
		}
	}

	for _, col := range candidates {
		height, _ := b.Place(col, opponent)
		wouldWin := domain.CheckWin(b, col, height, opponent, k)
		b.Unplace(col)
		if wouldWin {
			return col
		}
	}

	best := []int{}
	bestScore := -1
	for _, col := range candidates {
		height, _ := b.Place(col, me)
		score := domain.RunLength(b, col, height, 1, 0, me) +
			domain.RunLength(b, col, height, 0, 1, me)
		b.Unplace(col)

		if score > bestScore {
			bestScore = score
			best = best[:0]
		}
		if score == bestScore {
			best = append(best, col)
		}
	}

	return best[rand.Intn(len(best))]
}
