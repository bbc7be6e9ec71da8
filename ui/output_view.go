package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// MaxOutputLines bounds the message log; older lines are dropped first.
const MaxOutputLines = 2000

// OutputView is the read-only message log shared by all screens. Reports
// are kept as typed so they can be selected and copied into other tools.
type OutputView struct {
	lines     []string
	entry     *reportEntry
	scrollBox *container.Scroll
}

// NewOutputView creates a new scrollable output view.
func NewOutputView() *OutputView {
	ov := &OutputView{entry: newReportEntry()}

	ov.scrollBox = container.NewVScroll(ov.entry)
	ov.scrollBox.SetMinSize(NewOutputViewMinSize())

	return ov
}

// Container returns the output view's container.
func (ov *OutputView) Container() *container.Scroll {
	return ov.scrollBox
}

// AppendLine adds a message, possibly spanning several lines. Safe to call
// from any goroutine.
func (ov *OutputView) AppendLine(msg string) {
	fyne.Do(func() {
		ov.lines = append(ov.lines, strings.Split(strings.TrimRight(msg, "\n"), "\n")...)
		if n := len(ov.lines) - MaxOutputLines; n > 0 {
			ov.lines = append(ov.lines[:0], ov.lines[n:]...)
		}
		ov.entry.SetText(strings.Join(ov.lines, "\n"))
		ov.scrollBox.ScrollToBottom()
	})
}

// Clear empties the output view, safe to call from any goroutine.
func (ov *OutputView) Clear() {
	fyne.Do(func() {
		ov.lines = ov.lines[:0]
		ov.entry.SetText("")
	})
}

// Text returns the logged text. Call it on the UI goroutine.
func (ov *OutputView) Text() string {
	return ov.entry.Text
}

// reportEntry is a monospace multi-line entry whose text can be selected
// and copied but not edited.
type reportEntry struct {
	widget.Entry
}

func newReportEntry() *reportEntry {
	e := &reportEntry{}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapOff
	e.TextStyle = fyne.TextStyle{Monospace: true}
	e.ExtendBaseWidget(e)
	return e
}

func (e *reportEntry) TypedRune(rune) {}

func (e *reportEntry) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyBackspace, fyne.KeyDelete, fyne.KeyReturn, fyne.KeyEnter, fyne.KeyTab:
		return
	}
	e.Entry.TypedKey(ev)
}

func (e *reportEntry) TypedShortcut(s fyne.Shortcut) {
	switch s.(type) {
	case *fyne.ShortcutCopy, *fyne.ShortcutSelectAll, *desktop.CustomShortcut:
		e.Entry.TypedShortcut(s)
	}
}
