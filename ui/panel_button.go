package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// PanelButton is a checkable tool button of the panel switcher: an icon
// with its label underneath, drawn darker while checked.
type PanelButton struct {
	widget.Button
	checked bool
}

// NewPanelButton creates an unchecked panel button.
func NewPanelButton(label string, icon fyne.Resource, tapped func()) *PanelButton {
	btn := &PanelButton{}
	btn.Text = label
	btn.Icon = icon
	btn.OnTapped = tapped
	btn.ExtendBaseWidget(btn)
	return btn
}

// SetChecked marks the button as the selected panel.
func (b *PanelButton) SetChecked(checked bool) {
	if b.checked == checked {
		return
	}
	b.checked = checked
	b.Refresh()
}

// Checked reports whether the button is checked.
func (b *PanelButton) Checked() bool {
	return b.checked
}

// CreateRenderer returns a custom renderer.
func (b *PanelButton) CreateRenderer() fyne.WidgetRenderer {
	b.ExtendBaseWidget(b)

	bg := canvas.NewRectangle(PanelColor)

	icon := canvas.NewImageFromResource(b.Icon)
	icon.FillMode = canvas.ImageFillContain

	label := canvas.NewText(b.Text, PanelTextColor)
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = theme.CaptionTextSize()

	r := &panelBtnRenderer{
		btn:     b,
		bg:      bg,
		icon:    icon,
		label:   label,
		objects: []fyne.CanvasObject{bg, icon, label},
	}
	r.Refresh()
	return r
}

type panelBtnRenderer struct {
	btn     *PanelButton
	bg      *canvas.Rectangle
	icon    *canvas.Image
	label   *canvas.Text
	objects []fyne.CanvasObject
}

func (r *panelBtnRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)

	pad := theme.InnerPadding()
	iconSize := theme.IconInlineSize() * 1.5
	labelMin := r.label.MinSize()
	top := (size.Height - iconSize - labelMin.Height - pad/2) / 2

	r.icon.Resize(fyne.NewSquareSize(iconSize))
	r.icon.Move(fyne.NewPos((size.Width-iconSize)/2, top))

	r.label.Resize(fyne.NewSize(size.Width, labelMin.Height))
	r.label.Move(fyne.NewPos(0, top+iconSize+pad/2))
}

func (r *panelBtnRenderer) MinSize() fyne.Size {
	labelMin := r.label.MinSize()
	pad := theme.InnerPadding()
	iconSize := theme.IconInlineSize() * 1.5
	return fyne.NewSize(
		fyne.Max(labelMin.Width, iconSize)+pad*2,
		iconSize+labelMin.Height+pad*2,
	)
}

func (r *panelBtnRenderer) Refresh() {
	r.label.Text = r.btn.Text
	r.icon.Resource = r.btn.Icon

	switch {
	case r.btn.Disabled():
		r.bg.FillColor = PanelColor
		r.label.Color = rgb(100, 100, 100)
	case r.btn.checked:
		r.bg.FillColor = PanelCheckedColor
		r.label.Color = PanelTextColor
	default:
		r.bg.FillColor = PanelColor
		r.label.Color = PanelTextColor
	}

	r.bg.Refresh()
	r.icon.Refresh()
	r.label.Refresh()
}

func (r *panelBtnRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *panelBtnRenderer) Destroy()                     {}
