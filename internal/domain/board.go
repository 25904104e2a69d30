package domain

// Bounds fixes the playable window of the conceptually unbounded grid.
// Columns outside [MinCol, MaxCol] and stacks at MaxHeight reject moves.
type Bounds struct {
	MinCol    int `json:"min_col"`
	MaxCol    int `json:"max_col"`
	MaxHeight int `json:"max_height"`
}

// DefaultBounds mirrors the classic play window centered on column 0.
func DefaultBounds() Bounds {
	return Bounds{MinCol: -8, MaxCol: 8, MaxHeight: 8}
}

func (b Bounds) Width() int {
	return b.MaxCol - b.MinCol + 1
}

// Board holds per-column stacks of pieces, bottom-up. Columns may be
// negative; only occupied columns have an entry.
type Board struct {
	Columns map[int][]Color `json:"columns"`
	Bounds  Bounds          `json:"bounds"`
}

func NewBoard(bounds Bounds) *Board {
	return &Board{
		Columns: make(map[int][]Color),
		Bounds:  bounds,
	}
}

// Height returns the number of stacked pieces in a column.
func (b *Board) Height(column int) int {
	return len(b.Columns[column])
}

// ColorAt returns the piece at (column, height), height 0 being the bottom.
func (b *Board) ColorAt(column, height int) (Color, bool) {
	stack := b.Columns[column]
	if height < 0 || height >= len(stack) {
		return Empty, false
	}
	return stack[height], true
}

func (b *Board) InBounds(column int) bool {
	return column >= b.Bounds.MinCol && column <= b.Bounds.MaxCol
}

// IsValidMove reports whether a piece can be placed in the column.
func (b *Board) IsValidMove(column int) bool {
	return b.InBounds(column) && b.Height(column) < b.Bounds.MaxHeight
}

// Place drops a piece onto the top of the column's stack and returns the
// height it landed at.
func (b *Board) Place(column int, color Color) (int, error) {
	if !b.InBounds(column) {
		return -1, ErrIllegalMove
	}
	if b.Height(column) >= b.Bounds.MaxHeight {
		return -1, ErrColumnFull
	}
	b.Columns[column] = append(b.Columns[column], color)
	return len(b.Columns[column]) - 1, nil
}

// Unplace removes the top piece of a column. Used to back out simulated
// moves during search.
func (b *Board) Unplace(column int) {
	stack := b.Columns[column]
	if len(stack) == 0 {
		return
	}
	if len(stack) == 1 {
		delete(b.Columns, column)
		return
	}
	b.Columns[column] = stack[:len(stack)-1]
}

// LegalColumns lists every playable column in ascending order.
func (b *Board) LegalColumns() []int {
	cols := []int{}
	for c := b.Bounds.MinCol; c <= b.Bounds.MaxCol; c++ {
		if b.Height(c) < b.Bounds.MaxHeight {
			cols = append(cols, c)
		}
	}
	return cols
}

// IsFull reports whether every column has reached max height.
func (b *Board) IsFull() bool {
	for c := b.Bounds.MinCol; c <= b.Bounds.MaxCol; c++ {
		if b.Height(c) < b.Bounds.MaxHeight {
			return false
		}
	}
	return true
}

// UsedRange returns the lowest and highest occupied columns. ok is false
// on an empty board.
func (b *Board) UsedRange() (lo, hi int, ok bool) {
	first := true
	for c := range b.Columns {
		if first {
			lo, hi = c, c
			first = false
			continue
		}
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi, !first
}

// PieceCount returns the total number of placed pieces.
func (b *Board) PieceCount() int {
	n := 0
	for _, stack := range b.Columns {
		n += len(stack)
	}
	return n
}

// Snapshot creates a deep copy safe to mutate independently.
func (b *Board) Snapshot() *Board {
	nb := NewBoard(b.Bounds)
	for col, stack := range b.Columns {
		cp := make([]Color, len(stack))
		copy(cp, stack)
		nb.Columns[col] = cp
	}
	return nb
}
