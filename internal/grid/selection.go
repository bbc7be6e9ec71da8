package grid

import "fmt"

// Selection is an inclusive rectangular range of cells.
type Selection struct {
	Top, Left, Bottom, Right int
}

// NewSelection builds a normalized selection spanning two corner cells in
// any order.
func NewSelection(row1, col1, row2, col2 int) Selection {
	return Selection{
		Top:    min(row1, row2),
		Left:   min(col1, col2),
		Bottom: max(row1, row2),
		Right:  max(col1, col2),
	}
}

// Single selects one cell.
func Single(row, col int) Selection {
	return Selection{Top: row, Left: col, Bottom: row, Right: col}
}

// Contains reports whether (row, col) lies inside the selection.
func (s Selection) Contains(row, col int) bool {
	return row >= s.Top && row <= s.Bottom && col >= s.Left && col <= s.Right
}

// Rows returns the number of rows spanned.
func (s Selection) Rows() int { return s.Bottom - s.Top + 1 }

// Cols returns the number of columns spanned.
func (s Selection) Cols() int { return s.Right - s.Left + 1 }

func (s Selection) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", s.Top, s.Left, s.Bottom, s.Right)
}

// clamp restricts the selection to the grid bounds. ok is false when
// nothing of the selection remains.
func (s Selection) clamp(rows, cols int) (Selection, bool) {
	s.Top = max(s.Top, 0)
	s.Left = max(s.Left, 0)
	s.Bottom = min(s.Bottom, rows-1)
	s.Right = min(s.Right, cols-1)
	return s, s.Top <= s.Bottom && s.Left <= s.Right
}
