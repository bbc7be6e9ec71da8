package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Action is a named command bound to a toolbar or switcher button.
type Action struct {
	Name string
	Icon fyne.Resource
	Run  func()
}

// NewActionToolbar builds a horizontal toolbar from actions. Actions with
// an empty name become separators.
func NewActionToolbar(actions []Action) *widget.Toolbar {
	items := make([]widget.ToolbarItem, 0, len(actions))
	for _, a := range actions {
		if a.Name == "" {
			items = append(items, widget.NewToolbarSeparator())
			continue
		}
		items = append(items, widget.NewToolbarAction(a.Icon, a.Run))
	}
	return widget.NewToolbar(items...)
}

// Panel is one page of the main window.
type Panel struct {
	Name    string
	Icon    fyne.Resource
	Content fyne.CanvasObject
}

// PanelSwitcher shows exactly one of its panels, selected by a vertical
// column of exclusive buttons.
type PanelSwitcher struct {
	panels  []Panel
	buttons []*PanelButton
	current int

	// OnChanged is called with the index of the newly shown panel.
	OnChanged func(int)

	bar   *fyne.Container
	stack *fyne.Container
}

// NewPanelSwitcher creates a switcher showing the first panel.
func NewPanelSwitcher(panels []Panel) *PanelSwitcher {
	ps := &PanelSwitcher{panels: panels, current: -1}

	bar := container.NewVBox()
	stack := container.NewStack()
	for i, p := range panels {
		idx := i
		btn := NewPanelButton(p.Name, p.Icon, func() { ps.Show(idx) })
		ps.buttons = append(ps.buttons, btn)
		bar.Add(btn)

		p.Content.Hide()
		stack.Add(p.Content)
	}
	ps.bar = container.NewStack(canvas.NewRectangle(PanelColor), bar)
	ps.stack = stack

	if len(panels) > 0 {
		ps.Show(0)
	}
	return ps
}

// Show switches to panel i. Out-of-range indexes are ignored.
func (ps *PanelSwitcher) Show(i int) {
	if i < 0 || i >= len(ps.panels) || i == ps.current {
		return
	}
	for j, p := range ps.panels {
		ps.buttons[j].SetChecked(j == i)
		if j == i {
			p.Content.Show()
		} else {
			p.Content.Hide()
		}
	}
	ps.current = i
	if ps.OnChanged != nil {
		ps.OnChanged(i)
	}
}

// Current returns the index of the shown panel.
func (ps *PanelSwitcher) Current() int {
	return ps.current
}

// Bar returns the button column.
func (ps *PanelSwitcher) Bar() fyne.CanvasObject {
	return ps.bar
}

// Content returns the stack holding the panels.
func (ps *PanelSwitcher) Content() fyne.CanvasObject {
	return ps.stack
}
