package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(t *testing.T, b *Board, column int, color Color) int {
	t.Helper()
	h, err := b.Place(column, color)
	require.NoError(t, err)
	return h
}

func TestHorizontalWinExactlyK(t *testing.T) {
	b := NewBoard(Bounds{MinCol: -5, MaxCol: 5, MaxHeight: 6})

	place(t, b, 0, Red)
	place(t, b, 1, Red)
	h := place(t, b, 2, Red)

	assert.False(t, CheckWin(b, 2, h, Red, 4), "k-1 pieces is not a win")

	h = place(t, b, 3, Red)
	assert.True(t, CheckWin(b, 3, h, Red, 4))
}

func TestHorizontalWinFromTheMiddle(t *testing.T) {
	b := NewBoard(Bounds{MinCol: -5, MaxCol: 5, MaxHeight: 6})

	place(t, b, -1, Red)
	place(t, b, 0, Red)
	place(t, b, 2, Red)
	h := place(t, b, 1, Red)

	assert.True(t, CheckWin(b, 1, h, Red, 4), "the gap fill completes the line")
}

func TestHorizontalRequiresSameHeight(t *testing.T) {
	b := NewBoard(Bounds{MinCol: -5, MaxCol: 5, MaxHeight: 6})

	// three red at height 0, the fourth lands at height 1
	place(t, b, 0, Red)
	place(t, b, 1, Red)
	place(t, b, 2, Red)
	place(t, b, 3, Blue)
	h := place(t, b, 3, Red)

	assert.False(t, CheckWin(b, 3, h, Red, 4))
}

func TestVerticalWin(t *testing.T) {
	b := NewBoard(Bounds{MinCol: -5, MaxCol: 5, MaxHeight: 6})

	var h int
	for i := 0; i < 3; i++ {
		h = place(t, b, -2, Blue)
	}
	assert.False(t, CheckWin(b, -2, h, Blue, 4))

	h = place(t, b, -2, Blue)
	assert.True(t, CheckWin(b, -2, h, Blue, 4))
}

func TestVerticalRunBrokenByOpponent(t *testing.T) {
	b := NewBoard(Bounds{MinCol: -5, MaxCol: 5, MaxHeight: 6})

	place(t, b, 0, Blue)
	place(t, b, 0, Blue)
	place(t, b, 0, Red)
	place(t, b, 0, Blue)
	h := place(t, b, 0, Blue)

	assert.False(t, CheckWin(b, 0, h, Blue, 4))
}

func TestNoDiagonalWin(t *testing.T) {
	b := NewBoard(Bounds{MinCol: -5, MaxCol: 5, MaxHeight: 6})

	// red on an ascending staircase
	place(t, b, 0, Red)
	place(t, b, 1, Blue)
	place(t, b, 1, Red)
	place(t, b, 2, Blue)
	place(t, b, 2, Blue)
	place(t, b, 2, Red)
	place(t, b, 3, Blue)
	place(t, b, 3, Blue)
	place(t, b, 3, Blue)
	h := place(t, b, 3, Red)

	assert.False(t, CheckWin(b, 3, h, Red, 4), "diagonal lines do not win")
}

func TestWinWithK2(t *testing.T) {
	b := NewBoard(Bounds{MinCol: -5, MaxCol: 5, MaxHeight: 6})

	place(t, b, 0, Red)
	h := place(t, b, 1, Red)
	assert.True(t, CheckWin(b, 1, h, Red, 2))
}

func TestEvaluateMoveDrawOnFullBoard(t *testing.T) {
	b := NewBoard(Bounds{MinCol: 0, MaxCol: 1, MaxHeight: 1})

	h := place(t, b, 0, Red)
	status, winner := EvaluateMove(b, 0, h, Red, 3)
	assert.Equal(t, StatusActive, status)
	assert.Equal(t, Empty, winner)

	h = place(t, b, 1, Blue)
	status, winner = EvaluateMove(b, 1, h, Blue, 3)
	assert.Equal(t, StatusDraw, status)
	assert.Equal(t, Empty, winner)
}

func TestEvaluateMoveWinBeatsFullBoard(t *testing.T) {
	b := NewBoard(Bounds{MinCol: 0, MaxCol: 1, MaxHeight: 1})

	place(t, b, 0, Red)
	h := place(t, b, 1, Red)
	status, winner := EvaluateMove(b, 1, h, Red, 2)
	assert.Equal(t, StatusWon, status)
	assert.Equal(t, Red, winner)
}

func TestRunLength(t *testing.T) {
	b := NewBoard(Bounds{MinCol: -5, MaxCol: 5, MaxHeight: 6})

	place(t, b, 0, Red)
	place(t, b, 1, Red)
	place(t, b, 2, Red)

	assert.Equal(t, 3, RunLength(b, 1, 0, 1, 0, Red))
	assert.Equal(t, 3, RunLength(b, 0, 0, 1, 0, Red))
	assert.Equal(t, 1, RunLength(b, 0, 0, 0, 1, Red))
}
