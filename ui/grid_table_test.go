package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"vessel-sim/internal/cases"
	"vessel-sim/internal/grid"
)

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) Content() string     { return c.text }
func (c *fakeClipboard) SetContent(s string) { c.text = s }

func newTestTable(t *testing.T, rows int) (*GridTable, *fakeClipboard) {
	t.Helper()
	test.NewTempApp(t)
	cb := &fakeClipboard{}
	return NewGridTable(grid.NewEditor(cases.Columns, rows), cb), cb
}

func cellText(g *GridTable, row, col int) string {
	s, _ := g.Editor().Cell(row, col)
	return s
}

func TestGridTable_Paste(t *testing.T) {
	g, cb := newTestTable(t, 3)
	changed := 0
	g.OnChanged = func() { changed++ }

	g.SelectRange(grid.Single(1, 1))
	cb.text = "1\t2\n3\t4\n"
	g.TypedShortcut(&fyne.ShortcutPaste{})

	want := map[[2]int]string{{1, 1}: "1", {1, 2}: "2", {2, 1}: "3", {2, 2}: "4"}
	for rc, v := range want {
		if got := cellText(g, rc[0], rc[1]); got != v {
			t.Errorf("cell %v = %q, want %q", rc, got, v)
		}
	}
	if _, ok := g.Editor().Cell(0, 0); ok {
		t.Error("cell (0,0) should be untouched")
	}
	sel, ok := g.Selection()
	if !ok || sel != grid.NewSelection(1, 1, 2, 2) {
		t.Errorf("selection = %v, want the pasted region", sel)
	}
	if changed != 1 {
		t.Errorf("OnChanged called %d times, want 1", changed)
	}
}

func TestGridTable_PasteWithoutSelection(t *testing.T) {
	g, cb := newTestTable(t, 2)
	cb.text = "9"
	g.OnChanged = func() { t.Error("OnChanged should not be called") }

	g.Paste()
	if _, ok := g.Editor().Cell(0, 0); ok {
		t.Error("paste without selection should not write")
	}
}

func TestGridTable_PasteClampsToBounds(t *testing.T) {
	g, cb := newTestTable(t, 2)
	g.SelectRange(grid.Single(1, len(cases.Columns)-1))
	cb.text = "1\t2\n3\t4"

	g.Paste()
	if got := cellText(g, 1, len(cases.Columns)-1); got != "1" {
		t.Errorf("corner cell = %q, want 1", got)
	}
	if g.Editor().RowCount() != 2 {
		t.Errorf("RowCount() = %d, paste must not grow the grid", g.Editor().RowCount())
	}
}

func TestGridTable_Copy(t *testing.T) {
	g, cb := newTestTable(t, 2)
	g.Editor().SetCell(0, 0, "2")
	g.Editor().SetCell(0, 1, "8")
	g.Editor().SetCell(1, 0, "3")

	g.SelectRange(grid.NewSelection(0, 0, 1, 1))
	g.TypedShortcut(&fyne.ShortcutCopy{})

	if want := "2\t8\n3\t\n"; cb.text != want {
		t.Errorf("clipboard = %q, want %q", cb.text, want)
	}
}

func TestGridTable_Cut(t *testing.T) {
	g, cb := newTestTable(t, 1)
	g.Editor().SetCell(0, 0, "5")
	g.SelectRange(grid.Single(0, 0))

	g.TypedShortcut(&fyne.ShortcutCut{})
	if cb.text != "5\n" {
		t.Errorf("clipboard = %q, want %q", cb.text, "5\n")
	}
	if got := cellText(g, 0, 0); got != "" {
		t.Errorf("cell = %q, want empty", got)
	}
}

func TestGridTable_DeleteKeys(t *testing.T) {
	for _, key := range []fyne.KeyName{fyne.KeyDelete, fyne.KeyBackspace} {
		t.Run(string(key), func(t *testing.T) {
			g, _ := newTestTable(t, 3)
			for r := 0; r < 3; r++ {
				g.Editor().SetCell(r, 0, "1")
			}
			g.SelectRange(grid.NewSelection(0, 0, 1, 0))

			g.TypedKey(&fyne.KeyEvent{Name: key})

			if got := cellText(g, 0, 0); got != "" {
				t.Errorf("cell (0,0) = %q, want empty", got)
			}
			if got := cellText(g, 2, 0); got != "1" {
				t.Errorf("cell (2,0) = %q, outside the selection", got)
			}
		})
	}
}

func TestGridTable_ShiftClick(t *testing.T) {
	g, _ := newTestTable(t, 5)

	g.OnSelected(widget.TableCellID{Row: 3, Col: 4})
	g.KeyDown(&fyne.KeyEvent{Name: desktop.KeyShiftLeft})
	g.OnSelected(widget.TableCellID{Row: 1, Col: 2})
	g.KeyUp(&fyne.KeyEvent{Name: desktop.KeyShiftLeft})

	sel, ok := g.Selection()
	if !ok || sel != grid.NewSelection(1, 2, 3, 4) {
		t.Fatalf("selection = %v, want rows 1-3 cols 2-4", sel)
	}

	g.OnSelected(widget.TableCellID{Row: 0, Col: 0})
	if sel, _ := g.Selection(); sel != grid.Single(0, 0) {
		t.Errorf("click without shift should start a new selection, got %v", sel)
	}
}

func TestGridTable_Escape(t *testing.T) {
	g, _ := newTestTable(t, 2)
	g.SelectRange(grid.Single(0, 0))
	g.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	if _, ok := g.Selection(); ok {
		t.Error("Escape should clear the selection")
	}
}

func TestGridTable_SetRowCount(t *testing.T) {
	g, _ := newTestTable(t, 5)
	g.SelectRange(grid.Single(4, 0))

	g.SetRowCount(3)
	if g.Editor().RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", g.Editor().RowCount())
	}
	if _, ok := g.Selection(); ok {
		t.Error("selection beyond the last row should be dropped")
	}
	rows, cols := g.Length()
	if rows != 3 || cols != len(cases.Columns) {
		t.Errorf("Length() = %d, %d", rows, cols)
	}
}

func TestGridTable_SetCell(t *testing.T) {
	g, _ := newTestTable(t, 1)
	changed := false
	g.OnChanged = func() { changed = true }

	g.SetCell(0, 2, "3.3")
	if got := cellText(g, 0, 2); got != "3.3" || !changed {
		t.Errorf("cell = %q, changed = %v", got, changed)
	}

	changed = false
	g.SetCell(5, 0, "x")
	if changed {
		t.Error("out of range cell should not report a change")
	}
}
