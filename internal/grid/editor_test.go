package grid

import (
	"errors"
	"math"
	"strings"
	"testing"
)

var testHeaders = []string{"A", "B", "C"}

func cellText(t *testing.T, e *Editor, row, col int) string {
	t.Helper()
	text, ok := e.Cell(row, col)
	if !ok {
		t.Fatalf("cell (%d,%d) is absent", row, col)
	}
	return text
}

func TestUpdateRowCount(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		n       int
		want    int
	}{
		{"grow", 2, 5, 5},
		{"shrink", 10, 3, 3},
		{"same", 4, 4, 4},
		{"to zero", 4, 0, 0},
		{"negative", 4, -2, 0},
		{"from zero", 0, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditor(testHeaders, tt.initial)
			e.UpdateRowCount(tt.n)
			if got := e.RowCount(); got != tt.want {
				t.Errorf("RowCount() = %d, want %d", got, tt.want)
			}
			if got := e.ColumnCount(); got != len(testHeaders) {
				t.Errorf("ColumnCount() = %d, want %d", got, len(testHeaders))
			}
		})
	}
}

func TestUpdateRowCount_Idempotent(t *testing.T) {
	once := NewEditor(testHeaders, 3)
	once.SetCell(1, 1, "2.5")
	twice := &Editor{Grid: once.Clone()}

	once.UpdateRowCount(6)
	twice.UpdateRowCount(6)
	twice.UpdateRowCount(6)

	if !once.Equal(twice.Grid) {
		t.Error("calling UpdateRowCount twice changed the grid")
	}
}

func TestUpdateRowCount_RemovesOnlyLastRows(t *testing.T) {
	e := NewEditor(testHeaders, 4)
	e.SetCell(0, 0, "first")
	e.SetCell(3, 0, "last")

	e.UpdateRowCount(2)
	if got := cellText(t, e, 0, 0); got != "first" {
		t.Errorf("row 0 = %q, want first", got)
	}

	e.UpdateRowCount(4)
	if _, ok := e.Cell(3, 0); ok {
		t.Error("re-added row should be empty")
	}
}

func TestPaste_Block(t *testing.T) {
	e := NewEditor(testHeaders, 3)
	before := e.Clone()

	written, ok := e.Paste([]Selection{Single(0, 0)}, "1\t2\n3\t4")
	if !ok {
		t.Fatal("Paste() reported nothing written")
	}
	if written != NewSelection(0, 0, 1, 1) {
		t.Errorf("written = %v, want (0,0)-(1,1)", written)
	}

	want := map[[2]int]string{{0, 0}: "1", {0, 1}: "2", {1, 0}: "3", {1, 1}: "4"}
	for r := 0; r < e.RowCount(); r++ {
		for c := 0; c < e.ColumnCount(); c++ {
			got, gotOK := e.Cell(r, c)
			if w, ok := want[[2]int{r, c}]; ok {
				if !gotOK || got != w {
					t.Errorf("cell (%d,%d) = %q, want %q", r, c, got, w)
				}
				continue
			}
			old, oldOK := before.Cell(r, c)
			if got != old || gotOK != oldOK {
				t.Errorf("cell (%d,%d) changed to %q", r, c, got)
			}
		}
	}
}

func TestPaste_UsesFirstRangeTopLeft(t *testing.T) {
	e := NewEditor(testHeaders, 5)
	e.Paste([]Selection{NewSelection(3, 2, 1, 1), Single(0, 0)}, "x")

	if got := cellText(t, e, 1, 1); got != "x" {
		t.Errorf("cell (1,1) = %q, want x", got)
	}
	if _, ok := e.Cell(0, 0); ok {
		t.Error("second range should be ignored")
	}
}

func TestPaste_RaggedRows(t *testing.T) {
	e := NewEditor(testHeaders, 3)
	e.Paste([]Selection{Single(0, 0)}, "1\t2\t3\n4")

	if got := cellText(t, e, 0, 2); got != "3" {
		t.Errorf("cell (0,2) = %q, want 3", got)
	}
	if got := cellText(t, e, 1, 0); got != "4" {
		t.Errorf("cell (1,0) = %q, want 4", got)
	}
	if _, ok := e.Cell(1, 1); ok {
		t.Error("short row should not write cell (1,1)")
	}
}

func TestPaste_Overwrites(t *testing.T) {
	e := NewEditor(testHeaders, 2)
	e.SetCell(0, 0, "old")
	e.Paste([]Selection{Single(0, 0)}, "new")

	if got := cellText(t, e, 0, 0); got != "new" {
		t.Errorf("cell (0,0) = %q, want new", got)
	}
}

func TestPaste_ClampsToBounds(t *testing.T) {
	e := NewEditor(testHeaders, 2)

	written, ok := e.Paste([]Selection{Single(1, 2)}, "1\t2\n3\t4")
	if !ok {
		t.Fatal("Paste() reported nothing written")
	}
	if written != Single(1, 2) {
		t.Errorf("written = %v, want (1,2)-(1,2)", written)
	}
	if got := cellText(t, e, 1, 2); got != "1" {
		t.Errorf("cell (1,2) = %q, want 1", got)
	}
	if e.RowCount() != 2 || e.ColumnCount() != 3 {
		t.Errorf("grid resized to %dx%d", e.RowCount(), e.ColumnCount())
	}
}

func TestPaste_EntirelyOutOfBounds(t *testing.T) {
	e := NewEditor(testHeaders, 2)
	before := e.Clone()

	if _, ok := e.Paste([]Selection{Single(5, 0)}, "1"); ok {
		t.Error("Paste() outside the grid should report nothing written")
	}
	if !e.Equal(before) {
		t.Error("grid changed")
	}
}

func TestPaste_TrailingNewline(t *testing.T) {
	e := NewEditor(testHeaders, 3)
	e.Paste([]Selection{Single(0, 0)}, "1\t2\r\n3\t4\r\n")

	if got := cellText(t, e, 1, 1); got != "4" {
		t.Errorf("cell (1,1) = %q, want 4", got)
	}
	if _, ok := e.Cell(2, 0); ok {
		t.Error("trailing newline should not write an extra row")
	}
}

func TestPaste_NoOp(t *testing.T) {
	tests := []struct {
		name   string
		ranges []Selection
		text   string
	}{
		{"empty text", []Selection{Single(0, 0)}, ""},
		{"no selection", nil, "1\t2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditor(testHeaders, 2)
			e.SetCell(0, 0, "keep")
			before := e.Clone()

			if _, ok := e.Paste(tt.ranges, tt.text); ok {
				t.Error("Paste() reported a write")
			}
			if !e.Equal(before) {
				t.Error("grid changed")
			}
		})
	}
}

func TestDelete(t *testing.T) {
	e := NewEditor(testHeaders, 3)
	e.Paste([]Selection{Single(0, 0)}, "1\t2\t3\n4\t5\t6\n7\t8\t9")

	e.Delete([]Selection{NewSelection(0, 0, 1, 1)})

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			got := cellText(t, e, r, c)
			inside := r <= 1 && c <= 1
			if inside && got != "" {
				t.Errorf("cell (%d,%d) = %q, want empty", r, c, got)
			}
			if !inside && got == "" {
				t.Errorf("cell (%d,%d) was cleared", r, c)
			}
		}
	}
}

func TestDelete_SetsEmptyNotAbsent(t *testing.T) {
	e := NewEditor(testHeaders, 1)
	e.Delete([]Selection{Single(0, 0)})

	text, ok := e.Cell(0, 0)
	if !ok || text != "" {
		t.Errorf("Cell() = %q, %v; want empty present cell", text, ok)
	}
}

func TestDelete_NoSelection(t *testing.T) {
	e := NewEditor(testHeaders, 2)
	e.SetCell(0, 0, "1")
	before := e.Clone()

	e.Delete(nil)
	if !e.Equal(before) {
		t.Error("Delete(nil) changed the grid")
	}
}

func TestDelete_ClampsToBounds(t *testing.T) {
	e := NewEditor(testHeaders, 2)
	e.Delete([]Selection{NewSelection(1, 1, 9, 9)})

	if _, ok := e.Cell(1, 2); !ok {
		t.Error("cell (1,2) inside the clamped range should be set")
	}
	if e.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", e.RowCount())
	}
}

func TestValues(t *testing.T) {
	e := NewEditor([]string{"A", "B"}, 2)
	e.SetCell(0, 0, "3.5")

	vals, err := e.Values()
	if err != nil {
		t.Fatalf("Values() error: %v", err)
	}
	if got := vals["A"][0]; got != 3.5 {
		t.Errorf("A[0] = %v, want 3.5", got)
	}
	for _, k := range []struct {
		col string
		row int
	}{{"A", 1}, {"B", 0}, {"B", 1}} {
		v, ok := vals[k.col][k.row]
		if !ok {
			t.Errorf("%s[%d] missing", k.col, k.row)
			continue
		}
		if !math.IsNaN(v) {
			t.Errorf("%s[%d] = %v, want NaN", k.col, k.row, v)
		}
	}
}

func TestValues_EveryRowPresent(t *testing.T) {
	e := NewEditor(testHeaders, 0)
	e.UpdateRowCount(12)

	vals, err := e.Values()
	if err != nil {
		t.Fatalf("Values() error: %v", err)
	}
	for _, h := range testHeaders {
		if len(vals[h]) != 12 {
			t.Errorf("column %s has %d rows, want 12", h, len(vals[h]))
		}
	}
}

func TestValues_BlankCells(t *testing.T) {
	e := NewEditor(testHeaders, 1)
	e.Paste([]Selection{Single(0, 0)}, " 1.25 \t\t  ")

	vals, err := e.Values()
	if err != nil {
		t.Fatalf("Values() error: %v", err)
	}
	if vals["A"][0] != 1.25 {
		t.Errorf("A[0] = %v, want 1.25", vals["A"][0])
	}
	if !math.IsNaN(vals["B"][0]) || !math.IsNaN(vals["C"][0]) {
		t.Errorf("blank cells should be NaN, got B=%v C=%v", vals["B"][0], vals["C"][0])
	}
}

func TestValues_NotNumeric(t *testing.T) {
	e := NewEditor(testHeaders, 3)
	e.SetCell(0, 0, "1")
	e.SetCell(2, 1, "abc")

	vals, err := e.Values()
	if err == nil {
		t.Fatal("Values() should fail on non-numeric cell")
	}
	if vals != nil {
		t.Errorf("Values() returned partial result %v", vals)
	}
	if !errors.Is(err, ErrNotNumeric) {
		t.Errorf("error %v should wrap ErrNotNumeric", err)
	}
	var cellErr *CellError
	if !errors.As(err, &cellErr) {
		t.Fatalf("error %T is not a *CellError", err)
	}
	if cellErr.Row != 2 || cellErr.Column != "B" || cellErr.Text != "abc" {
		t.Errorf("CellError = %+v, want row 2 column B text abc", cellErr)
	}
	if !strings.Contains(err.Error(), "must be numeric") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestCopy(t *testing.T) {
	e := NewEditor(testHeaders, 3)
	e.Paste([]Selection{Single(0, 0)}, "1\t2\t3\n4\t5\t6")

	got := e.Copy([]Selection{NewSelection(1, 2, 0, 1)})
	if want := "2\t3\n5\t6\n"; got != want {
		t.Errorf("Copy() = %q, want %q", got, want)
	}

	other := NewEditor(testHeaders, 3)
	other.Paste([]Selection{Single(1, 0)}, got)
	if text := cellText(t, other, 2, 1); text != "6" {
		t.Errorf("round trip cell (2,1) = %q, want 6", text)
	}
	if _, ok := other.Cell(0, 0); ok {
		t.Error("round trip wrote outside the pasted block")
	}
}

func TestCopy_NoSelection(t *testing.T) {
	e := NewEditor(testHeaders, 1)
	if got := e.Copy(nil); got != "" {
		t.Errorf("Copy(nil) = %q, want empty", got)
	}
}

func TestSetBlock_KeepsSeparatorsInCells(t *testing.T) {
	e := NewEditor(testHeaders, 1)
	written, ok := e.SetBlock(0, 0, [][]string{{"1\t2", "3", "4"}})
	if !ok || written != NewSelection(0, 0, 0, 2) {
		t.Fatalf("SetBlock() = %v, %v", written, ok)
	}
	for c, want := range []string{"1\t2", "3", "4"} {
		if got := cellText(t, e, 0, c); got != want {
			t.Errorf("cell (0,%d) = %q, want %q", c, got, want)
		}
	}

	_, err := e.Values()
	var cellErr *CellError
	if !errors.As(err, &cellErr) || cellErr.Column != "A" {
		t.Errorf("Values() error = %v, want a CellError in column A", err)
	}
}

func TestSetBlock_OutOfBounds(t *testing.T) {
	e := NewEditor(testHeaders, 2)
	written, ok := e.SetBlock(1, 2, [][]string{{"1", "2"}, {"3"}})
	if !ok || written != Single(1, 2) {
		t.Errorf("SetBlock() = %v, %v, want only the corner", written, ok)
	}
	if _, ok := e.SetBlock(5, 0, [][]string{{"1"}}); ok {
		t.Error("SetBlock() outside the grid should report nothing written")
	}
}

func TestValues_NumberForms(t *testing.T) {
	tests := []struct {
		text    string
		want    float64
		wantErr bool
	}{
		{"1e400", math.Inf(1), false},
		{"-1e400", math.Inf(-1), false},
		{"1e-400", 0, false},
		{"0x1p4", 0, true},
		{"-0X1p4", 0, true},
		{"0.5", 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			e := NewEditor(testHeaders, 1)
			e.SetCell(0, 0, tt.text)
			vals, err := e.Values()
			if tt.wantErr {
				if !errors.Is(err, ErrNotNumeric) {
					t.Errorf("Values() error = %v, want ErrNotNumeric", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Values() error: %v", err)
			}
			if got := vals["A"][0]; got != tt.want {
				t.Errorf("A[0] = %v, want %v", got, tt.want)
			}
		})
	}
}
