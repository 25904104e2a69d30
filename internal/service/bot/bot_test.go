package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectk/backend/internal/domain"
)

func testBoard(t *testing.T, moves []domain.Move) *domain.Board {
	t.Helper()
	b := domain.NewBoard(domain.Bounds{MinCol: -5, MaxCol: 5, MaxHeight: 6})
	for _, m := range moves {
		_, err := b.Place(m.Column, m.Color)
		require.NoError(t, err)
	}
	return b
}

func TestEasyTakesImmediateWin(t *testing.T) {
	b := testBoard(t, []domain.Move{
		{Column: 0, Color: domain.Red},
		{Column: 1, Color: domain.Red},
		{Column: 2, Color: domain.Red},
		{Column: 0, Color: domain.Blue},
		{Column: 1, Color: domain.Blue},
	})

	col := ChooseMoveEasy(b, domain.Red, 4)
	assert.Contains(t, []int{-1, 3}, col, "either end completes the red line")
}

func TestEasyBlocksUniqueThreat(t *testing.T) {
	// blue threatens 0,1,2 at the bottom; only -1 and 3 complete it, but
	// -1 is occupied by red, so 3 is the unique blocking column
	b := testBoard(t, []domain.Move{
		{Column: 0, Color: domain.Blue},
		{Column: 1, Color: domain.Blue},
		{Column: 2, Color: domain.Blue},
		{Column: -1, Color: domain.Red},
		{Column: 5, Color: domain.Red},
	})

	for i := 0; i < 20; i++ {
		col := ChooseMoveEasy(b, domain.Red, 4)
		assert.Equal(t, 3, col, "the unique block must be chosen deterministically")
	}
}

func TestEasyBlocksVerticalThreat(t *testing.T) {
	b := testBoard(t, []domain.Move{
		{Column: 2, Color: domain.Blue},
		{Column: 2, Color: domain.Blue},
		{Column: 2, Color: domain.Blue},
		{Column: 0, Color: domain.Red},
	})

	col := ChooseMoveEasy(b, domain.Red, 4)
	assert.Equal(t, 2, col, "stacking on top is the only block")
}

func TestEasyPrefersWinOverBlock(t *testing.T) {
	b := testBoard(t, []domain.Move{
		{Column: 0, Color: domain.Red},
		{Column: 0, Color: domain.Red},
		{Column: 0, Color: domain.Red},
		{Column: 3, Color: domain.Blue},
		{Column: 3, Color: domain.Blue},
		{Column: 3, Color: domain.Blue},
	})

	col := ChooseMoveEasy(b, domain.Red, 4)
	assert.Equal(t, 0, col, "winning beats blocking")
}

func TestEasyAlwaysLegal(t *testing.T) {
	b := domain.NewBoard(domain.Bounds{MinCol: -2, MaxCol: 2, MaxHeight: 3})
	me := domain.Red

	for !b.IsFull() {
		col := ChooseMoveEasy(b, me, 4)
		require.True(t, b.IsValidMove(col), "easy chose full or out-of-bounds column %d", col)
		_, err := b.Place(col, me)
		require.NoError(t, err)
		me = me.Opponent()
	}
}

func TestHardTakesImmediateWin(t *testing.T) {
	b := testBoard(t, []domain.Move{
		{Column: 1, Color: domain.Blue},
		{Column: 1, Color: domain.Blue},
		{Column: 1, Color: domain.Blue},
		{Column: 0, Color: domain.Red},
		{Column: 2, Color: domain.Red},
	})

	col := ChooseMoveHard(b, domain.Blue, 4, 4)
	assert.Equal(t, 1, col)
}

func TestHardBlocksImmediateLoss(t *testing.T) {
	b := testBoard(t, []domain.Move{
		{Column: 0, Color: domain.Red},
		{Column: 1, Color: domain.Red},
		{Column: 2, Color: domain.Red},
		{Column: -1, Color: domain.Blue},
		{Column: 0, Color: domain.Blue},
	})

	// red threatens at 3 only (-1 is taken at height 0 by blue)
	col := ChooseMoveHard(b, domain.Blue, 4, 4)
	assert.Equal(t, 3, col)
}

func TestHardAlwaysLegal(t *testing.T) {
	b := domain.NewBoard(domain.Bounds{MinCol: -2, MaxCol: 2, MaxHeight: 2})
	me := domain.Red

	for !b.IsFull() {
		col := ChooseMoveHard(b, me, 3, 3)
		require.True(t, b.IsValidMove(col), "hard chose full or out-of-bounds column %d", col)
		_, err := b.Place(col, me)
		require.NoError(t, err)
		me = me.Opponent()
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	b := testBoard(t, []domain.Move{
		{Column: 0, Color: domain.Red},
		{Column: 1, Color: domain.Blue},
	})
	before := b.Snapshot()

	ChooseMoveHard(b, domain.Red, 4, 5)
	assert.Equal(t, before.Columns, b.Columns, "search must back out every simulated move")

	ChooseMoveEasy(b, domain.Red, 4)
	assert.Equal(t, before.Columns, b.Columns)
}

func TestCandidateColumnsWindow(t *testing.T) {
	b := domain.NewBoard(domain.Bounds{MinCol: -8, MaxCol: 8, MaxHeight: 6})

	assert.Equal(t, []int{0}, candidateColumns(b), "empty board proposes the center")

	b.Place(2, domain.Red)
	b.Place(4, domain.Blue)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, candidateColumns(b))
}

func TestChooseMoveVerifiesLegality(t *testing.T) {
	g, err := domain.NewGame(4, domain.Red, domain.Blue, domain.Blue, domain.OpponentEasy, domain.DefaultBounds())
	require.NoError(t, err)

	col, err := ChooseMove(g.Snapshot(), 0)
	require.NoError(t, err)
	assert.True(t, g.Board.IsValidMove(col))

	human, err := domain.NewGame(4, domain.Red, domain.Blue, domain.Blue, domain.OpponentHuman, domain.DefaultBounds())
	require.NoError(t, err)
	_, err = ChooseMove(human.Snapshot(), 0)
	assert.Error(t, err, "human mode has no computer policy")
}
