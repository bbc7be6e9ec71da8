package ui

import "fyne.io/fyne/v2"

// Window dimensions
const (
	WindowWidth  = 1100
	WindowHeight = 760
)

// Split ratios
const (
	MainSplitRatio  = 0.7  // 70% top (screen), 30% bottom (output)
	InputSplitRatio = 0.35 // input area left of graphs or table
)

// OutputView dimensions
const (
	OutputViewMinWidth  = 200
	OutputViewMinHeight = 100
)

// Load-case table
const (
	GridColumnWidth = 90
)

// Colors of the panel switcher
var (
	PanelColor        = rgb(0x3A, 0x3D, 0x40)
	PanelCheckedColor = rgb(0x26, 0x28, 0x2A)
	PanelTextColor    = rgb(0xFF, 0xFF, 0xFF)
)

// NewWindowSize returns the default window size
func NewWindowSize() fyne.Size {
	return fyne.NewSize(WindowWidth, WindowHeight)
}

// NewOutputViewMinSize returns the minimum size for the output view
func NewOutputViewMinSize() fyne.Size {
	return fyne.NewSize(OutputViewMinWidth, OutputViewMinHeight)
}
