// Package grid implements the cell store behind the spreadsheet-like
// load-case table: a fixed set of named columns, a mutable number of rows,
// clipboard paste and delete over a rectangular selection, and numeric
// extraction of the whole table.
package grid

type cell struct {
	text string
	set  bool
}

// Grid is a rectangular array of optional text cells. Column headers are
// fixed at construction; the row count is mutable.
type Grid struct {
	headers []string
	rows    [][]cell
}

// New creates a grid with the given column headers and nrows empty rows.
// The headers slice is copied.
func New(headers []string, nrows int) *Grid {
	g := &Grid{headers: append([]string(nil), headers...)}
	g.resize(nrows)
	return g
}

// Headers returns a copy of the column headers in display order.
func (g *Grid) Headers() []string {
	return append([]string(nil), g.headers...)
}

// RowCount returns the current number of rows.
func (g *Grid) RowCount() int {
	return len(g.rows)
}

// ColumnCount returns the number of columns.
func (g *Grid) ColumnCount() int {
	return len(g.headers)
}

// InBounds reports whether (row, col) addresses an existing cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g.rows) && col >= 0 && col < len(g.headers)
}

// Cell returns the text of a cell and whether it holds a value. Cells
// outside the grid are reported as absent.
func (g *Grid) Cell(row, col int) (string, bool) {
	if !g.InBounds(row, col) {
		return "", false
	}
	c := g.rows[row][col]
	return c.text, c.set
}

// SetCell stores text at (row, col). It reports false, leaving the grid
// untouched, when the address is out of bounds.
func (g *Grid) SetCell(row, col int, text string) bool {
	if !g.InBounds(row, col) {
		return false
	}
	g.rows[row][col] = cell{text: text, set: true}
	return true
}

// ClearCell makes a cell absent again.
func (g *Grid) ClearCell(row, col int) {
	if g.InBounds(row, col) {
		g.rows[row][col] = cell{}
	}
}

// Snapshot returns the cell texts row by row. Absent cells are returned as
// empty strings.
func (g *Grid) Snapshot() [][]string {
	out := make([][]string, len(g.rows))
	for r, row := range g.rows {
		out[r] = make([]string, len(row))
		for c, v := range row {
			out[r][c] = v.text
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cp := &Grid{headers: g.Headers(), rows: make([][]cell, len(g.rows))}
	for r, row := range g.rows {
		cp.rows[r] = append([]cell(nil), row...)
	}
	return cp
}

// Equal reports whether two grids have the same headers and cells.
func (g *Grid) Equal(o *Grid) bool {
	if len(g.headers) != len(o.headers) || len(g.rows) != len(o.rows) {
		return false
	}
	for i := range g.headers {
		if g.headers[i] != o.headers[i] {
			return false
		}
	}
	for r := range g.rows {
		for c := range g.rows[r] {
			if g.rows[r][c] != o.rows[r][c] {
				return false
			}
		}
	}
	return true
}

// resize only ever removes or appends at the end.
func (g *Grid) resize(n int) {
	if n < 0 {
		n = 0
	}
	for len(g.rows) > n {
		g.rows = g.rows[:len(g.rows)-1]
	}
	for len(g.rows) < n {
		g.rows = append(g.rows, make([]cell, len(g.headers)))
	}
}
