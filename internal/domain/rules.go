package domain

// CheckWin reports whether the piece at (column, height) completes a
// contiguous line of at least k same-colored pieces. Only the lines
// passing through that cell are scanned, and only the horizontal and
// vertical axes count: pieces stack from the bottom row, so there are no
// diagonal lines in this game.
func CheckWin(b *Board, column, height int, color Color, k int) bool {
	// vertical (the placed piece is the top of its stack, so only the
	// run below it matters)
	count := 1
	for h := height - 1; h >= 0; h-- {
		if c, ok := b.ColorAt(column, h); !ok || c != color {
			break
		}
		count++
	}
	if count >= k {
		return true
	}

	// horizontal, at the landing height
	count = 1
	for col := column - 1; ; col-- {
		if c, ok := b.ColorAt(col, height); !ok || c != color {
			break
		}
		count++
	}
	for col := column + 1; ; col++ {
		if c, ok := b.ColorAt(col, height); !ok || c != color {
			break
		}
		count++
	}
	return count >= k
}

// RunLength counts contiguous same-colored pieces through (column, height)
// along the axis (dCol, dH), including the cell itself.
func RunLength(b *Board, column, height, dCol, dH int, color Color) int {
	count := 1
	col, h := column+dCol, height+dH
	for {
		if c, ok := b.ColorAt(col, h); !ok || c != color {
			break
		}
		count++
		col += dCol
		h += dH
	}
	col, h = column-dCol, height-dH
	for {
		if c, ok := b.ColorAt(col, h); !ok || c != color {
			break
		}
		count++
		col -= dCol
		h -= dH
	}
	return count
}

// EvaluateMove classifies the board after a placement at (column, height):
// a win for the placed color, a draw on a full board, or still active.
func EvaluateMove(b *Board, column, height int, color Color, k int) (GameStatus, Color) {
	if CheckWin(b, column, height, color, k) {
		return StatusWon, color
	}
	if b.IsFull() {
		return StatusDraw, Empty
	}
	return StatusActive, Empty
}
