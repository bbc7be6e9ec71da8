package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"vessel-sim/internal/grid"
)

// Clipboard is the part of fyne.Clipboard the table uses.
type Clipboard interface {
	Content() string
	SetContent(string)
}

// GridTable is a spreadsheet-like table over a grid.Editor. Click selects a
// cell, shift-click extends the selection to a rectangle. Ctrl+V pastes
// tab/newline separated text at the top-left selected cell, Ctrl+C copies
// the selection and Delete or Backspace clears it.
type GridTable struct {
	widget.Table

	editor    *grid.Editor
	clipboard Clipboard

	anchor, cursor widget.TableCellID
	selected       bool
	shift          bool

	// OnChanged is called after cell content was changed from the table.
	OnChanged func()
	// OnSelectionChanged is called with the new selection.
	OnSelectionChanged func(grid.Selection)
}

// NewGridTable creates a table editing e. A nil clipboard means the
// application clipboard.
func NewGridTable(e *grid.Editor, cb Clipboard) *GridTable {
	g := &GridTable{editor: e, clipboard: cb}

	g.Length = func() (int, int) { return g.editor.RowCount(), g.editor.ColumnCount() }
	g.CreateCell = g.createCell
	g.UpdateCell = g.updateCell
	g.ShowHeaderRow = true
	g.ShowHeaderColumn = true
	g.CreateHeader = func() fyne.CanvasObject {
		l := widget.NewLabel("")
		l.TextStyle = fyne.TextStyle{Bold: true}
		return l
	}
	g.UpdateHeader = g.updateHeader
	g.OnSelected = g.onSelected

	g.ExtendBaseWidget(g)

	for c := range e.Headers() {
		g.SetColumnWidth(c, GridColumnWidth)
	}
	return g
}

// Editor returns the edited grid.
func (g *GridTable) Editor() *grid.Editor {
	return g.editor
}

func (g *GridTable) createCell() fyne.CanvasObject {
	bg := canvas.NewRectangle(color.Transparent)
	return container.NewStack(bg, widget.NewLabel(""))
}

func (g *GridTable) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	stack := obj.(*fyne.Container)
	bg := stack.Objects[0].(*canvas.Rectangle)
	label := stack.Objects[1].(*widget.Label)

	text, _ := g.editor.Cell(id.Row, id.Col)
	label.SetText(text)

	if sel, ok := g.Selection(); ok && sel.Contains(id.Row, id.Col) {
		bg.FillColor = theme.Color(theme.ColorNameSelection)
	} else {
		bg.FillColor = color.Transparent
	}
	bg.Refresh()
}

func (g *GridTable) updateHeader(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)
	switch {
	case id.Row < 0 && id.Col >= 0 && id.Col < g.editor.ColumnCount():
		label.SetText(g.editor.Headers()[id.Col])
	case id.Col < 0 && id.Row >= 0:
		label.SetText(strconv.Itoa(id.Row + 1))
	default:
		label.SetText("")
	}
}

func (g *GridTable) onSelected(id widget.TableCellID) {
	if g.shift && g.selected {
		g.cursor = id
	} else {
		g.anchor, g.cursor = id, id
	}
	g.selected = true
	g.selectionChanged()
}

func (g *GridTable) selectionChanged() {
	g.Refresh()
	if sel, ok := g.Selection(); ok && g.OnSelectionChanged != nil {
		g.OnSelectionChanged(sel)
	}
}

// Selection returns the selected rectangle.
func (g *GridTable) Selection() (grid.Selection, bool) {
	if !g.selected {
		return grid.Selection{}, false
	}
	return grid.NewSelection(g.anchor.Row, g.anchor.Col, g.cursor.Row, g.cursor.Col), true
}

// SelectRange selects a rectangle of cells.
func (g *GridTable) SelectRange(s grid.Selection) {
	g.anchor = widget.TableCellID{Row: s.Top, Col: s.Left}
	g.cursor = widget.TableCellID{Row: s.Bottom, Col: s.Right}
	g.selected = true
	g.selectionChanged()
}

// ClearSelection removes the selection.
func (g *GridTable) ClearSelection() {
	g.selected = false
	g.UnselectAll()
	g.Refresh()
}

func (g *GridTable) ranges() []grid.Selection {
	sel, ok := g.Selection()
	if !ok {
		return nil
	}
	return []grid.Selection{sel}
}

func (g *GridTable) getClipboard() Clipboard {
	if g.clipboard != nil {
		return g.clipboard
	}
	return fyne.CurrentApp().Clipboard()
}

// Paste writes the clipboard text at the selection and selects the
// written region.
func (g *GridTable) Paste() {
	region, ok := g.editor.Paste(g.ranges(), g.getClipboard().Content())
	if !ok {
		return
	}
	g.SelectRange(region)
	g.changed()
}

// Copy puts the selected cells on the clipboard.
func (g *GridTable) Copy() {
	if text := g.editor.Copy(g.ranges()); text != "" {
		g.getClipboard().SetContent(text)
	}
}

// DeleteSelection clears the selected cells.
func (g *GridTable) DeleteSelection() {
	if !g.selected {
		return
	}
	g.editor.Delete(g.ranges())
	g.Refresh()
	g.changed()
}

// SetCell stores text in one cell, as typed in the edit bar.
func (g *GridTable) SetCell(row, col int, text string) {
	if !g.editor.SetCell(row, col, text) {
		return
	}
	g.Refresh()
	g.changed()
}

// SetRowCount resizes the grid. The selection is dropped when it no
// longer fits.
func (g *GridTable) SetRowCount(n int) {
	g.editor.UpdateRowCount(n)
	if sel, ok := g.Selection(); ok && sel.Bottom >= g.editor.RowCount() {
		g.ClearSelection()
	}
	g.Refresh()
}

func (g *GridTable) changed() {
	if g.OnChanged != nil {
		g.OnChanged()
	}
}

// TypedShortcut handles paste and copy.
func (g *GridTable) TypedShortcut(s fyne.Shortcut) {
	switch s.(type) {
	case *fyne.ShortcutPaste:
		g.Paste()
	case *fyne.ShortcutCopy:
		g.Copy()
	case *fyne.ShortcutCut:
		g.Copy()
		g.DeleteSelection()
	}
}

// TypedKey clears the selection on Delete and Backspace and passes other
// keys to the table for navigation.
func (g *GridTable) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		g.DeleteSelection()
		return
	case fyne.KeyEscape:
		g.ClearSelection()
		return
	}
	g.Table.TypedKey(ev)
}

// KeyDown tracks the shift key for range selection.
func (g *GridTable) KeyDown(ev *fyne.KeyEvent) {
	if ev.Name == desktop.KeyShiftLeft || ev.Name == desktop.KeyShiftRight {
		g.shift = true
	}
}

// KeyUp tracks the shift key for range selection.
func (g *GridTable) KeyUp(ev *fyne.KeyEvent) {
	if ev.Name == desktop.KeyShiftLeft || ev.Name == desktop.KeyShiftRight {
		g.shift = false
	}
}

var (
	_ fyne.Shortcutable = (*GridTable)(nil)
	_ desktop.Keyable   = (*GridTable)(nil)
)
