package grid

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Values maps a column header to the numeric value of every row of that
// column. Blank cells are NaN.
type Values map[string]map[int]float64

// Editor exposes the bulk editing operations of the load-case table on top
// of a Grid. It is not safe for concurrent use; callers run it on the UI
// event thread.
type Editor struct {
	*Grid
}

// NewEditor creates an editor over a new grid.
func NewEditor(headers []string, nrows int) *Editor {
	return &Editor{Grid: New(headers, nrows)}
}

// UpdateRowCount appends empty rows or removes rows from the end until the
// grid has exactly n rows. Negative n is treated as zero.
func (e *Editor) UpdateRowCount(n int) {
	e.resize(n)
}

// Paste writes clipboard text into the grid starting at the top-left cell
// of the first selected range. Cells that would land outside the grid are
// dropped. It returns the region actually written and false when nothing
// was written (no selection, empty text, or a region entirely out of
// bounds).
func (e *Editor) Paste(ranges []Selection, text string) (Selection, bool) {
	if len(ranges) == 0 || text == "" {
		return Selection{}, false
	}
	return e.SetBlock(ranges[0].Top, ranges[0].Left, ParseClipboard(text))
}

// SetBlock writes rows of cell text with its first cell at (top, left).
// Cell text is stored as is, tabs and newlines included. Cells outside the
// grid are dropped; the result is the region written.
func (e *Editor) SetBlock(top, left int, block [][]string) (Selection, bool) {
	written := Selection{Top: -1}
	for r, row := range block {
		for c, v := range row {
			if !e.SetCell(top+r, left+c, v) {
				continue
			}
			if written.Top < 0 {
				written = Single(top+r, left+c)
				continue
			}
			written.Bottom = max(written.Bottom, top+r)
			written.Right = max(written.Right, left+c)
		}
	}
	if written.Top < 0 {
		return Selection{}, false
	}
	return written, true
}

// Delete sets every cell of the first selected range to the empty string.
func (e *Editor) Delete(ranges []Selection) {
	if len(ranges) == 0 {
		return
	}
	sel, ok := ranges[0].clamp(e.RowCount(), e.ColumnCount())
	if !ok {
		return
	}
	for r := sel.Top; r <= sel.Bottom; r++ {
		for c := sel.Left; c <= sel.Right; c++ {
			e.SetCell(r, c, "")
		}
	}
}

// Copy renders the first selected range as clipboard text.
func (e *Editor) Copy(ranges []Selection) string {
	if len(ranges) == 0 {
		return ""
	}
	sel, ok := ranges[0].clamp(e.RowCount(), e.ColumnCount())
	if !ok {
		return ""
	}
	block := make([][]string, 0, sel.Rows())
	for r := sel.Top; r <= sel.Bottom; r++ {
		row := make([]string, 0, sel.Cols())
		for c := sel.Left; c <= sel.Right; c++ {
			text, _ := e.Cell(r, c)
			row = append(row, text)
		}
		block = append(block, row)
	}
	return FormatClipboard(block)
}

// Values converts the grid to numbers, column by column. Absent and blank
// cells become NaN. The first cell holding anything else aborts the
// extraction with a *CellError wrapping ErrNotNumeric.
func (e *Editor) Values() (Values, error) {
	out := make(Values, e.ColumnCount())
	for c, name := range e.headers {
		col := make(map[int]float64, e.RowCount())
		for r := range e.rows {
			v, err := parseCell(e.rows[r][c])
			if err != nil {
				return nil, &CellError{Row: r, Column: name, Text: e.rows[r][c].text}
			}
			col[r] = v
		}
		out[name] = col
	}
	return out, nil
}

func parseCell(c cell) (float64, error) {
	s := strings.TrimSpace(c.text)
	if !c.set || s == "" {
		return math.NaN(), nil
	}
	if digits := strings.TrimLeft(s, "+-"); len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, ErrNotNumeric
	}
	v, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		// Overflow reads as ±Inf and is left to range validation.
		return v, nil
	}
	return v, err
}
