package ui

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"vessel-sim/internal/export"
	"vessel-sim/internal/format"
	"vessel-sim/internal/params"
	"vessel-sim/internal/project"
)

// CapabilityScreen is the capability plot screen: the plot request form,
// the graph tabs and the Start / Save Fig / Export TXT buttons.
type CapabilityScreen struct {
	params *params.CapabilityParams
	prefs  *Preferences

	form     *FieldForm
	graphs   *container.AppTabs
	captions map[string]*widget.Label
	controls *Controls

	mu      sync.Mutex
	summary string

	outputView *OutputView
	win        fyne.Window
	logger     *slog.Logger
	now        func() time.Time

	container fyne.CanvasObject
}

// Graph tab names.
const (
	PolarPlot  = "Polar Plot"
	VectorPlot = "Vector Plot"
)

// NewCapabilityScreen creates the screen editing p.
func NewCapabilityScreen(p *params.CapabilityParams, prefs *Preferences, win fyne.Window, ov *OutputView, logger *slog.Logger) *CapabilityScreen {
	c := &CapabilityScreen{
		params:     p,
		prefs:      prefs,
		captions:   make(map[string]*widget.Label),
		outputView: ov,
		win:        win,
		logger:     logger,
		now:        time.Now,
	}

	c.form = NewFieldForm(p.Fields(), win, logger)
	c.controls = NewControls(c.Start, ov, logger)

	c.graphs = container.NewAppTabs(
		container.NewTabItem(PolarPlot, c.newGraphArea(PolarPlot)),
		container.NewTabItem(VectorPlot, c.newGraphArea(VectorPlot)),
	)

	saveFig := widget.NewButtonWithIcon("Save Fig", theme.DocumentSaveIcon(), c.onSaveFig)
	exportTXT := widget.NewButtonWithIcon("Export TXT", theme.DocumentIcon(), c.onExportTXT)
	buttons := container.NewHBox(c.controls.StartButton(), c.controls.StopButton(), saveFig, exportTXT)

	input := container.NewVScroll(c.form.Container())
	split := container.NewHSplit(input, c.graphs)
	split.SetOffset(InputSplitRatio)

	c.container = container.NewBorder(nil, container.NewVBox(buttons, c.controls.StatusBar()), nil, nil, split)
	return c
}

func (c *CapabilityScreen) newGraphArea(name string) fyne.CanvasObject {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	caption := widget.NewLabel("No " + name + " yet")
	caption.Alignment = fyne.TextAlignCenter
	c.captions[name] = caption
	return container.NewStack(bg, container.NewCenter(caption))
}

// Container returns the screen content.
func (c *CapabilityScreen) Container() fyne.CanvasObject {
	return c.container
}

// Form returns the parameter form.
func (c *CapabilityScreen) Form() *FieldForm {
	return c.form
}

// Controls returns the run controls.
func (c *CapabilityScreen) Controls() *Controls {
	return c.controls
}

// Refresh reloads the form after the parameters were replaced.
func (c *CapabilityScreen) Refresh() {
	c.form.Refresh()
}

// Summary returns the summary of the last finished run.
func (c *CapabilityScreen) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

// Start validates the plot request and prepares it in the background.
// The request summary is logged and shown in the graph tabs.
func (c *CapabilityScreen) Start() {
	if c.controls.Running() {
		return
	}
	err := c.form.Validate()
	if err == nil {
		err = c.params.Validate()
	}
	if err != nil {
		c.outputView.AppendLine(fmt.Sprintf("Input error: %v", err))
		return
	}

	p := *c.params
	c.outputView.Clear()
	c.controls.Run(string(p.Simulation), func(ctx context.Context, progress func(done, total int)) error {
		digest, err := project.ModelDigest(p.Vessel)
		if err != nil {
			return err
		}
		progress(1, 2)
		if err := ctx.Err(); err != nil {
			return err
		}

		summary := format.FormatCapability(&p, digest)
		c.mu.Lock()
		c.summary = summary
		c.mu.Unlock()

		c.outputView.AppendLine(summary)
		caption := fmt.Sprintf("%s\n%s", p.Simulation, filepath.Base(p.Vessel))
		fyne.Do(func() {
			for _, l := range c.captions {
				l.SetText(caption)
			}
		})
		progress(2, 2)
		return nil
	})
}

// Stop cancels a running request.
func (c *CapabilityScreen) Stop() {
	c.controls.Stop()
}

// CaptureGraph returns the pixels of the visible graph tab.
func (c *CapabilityScreen) CaptureGraph() image.Image {
	img := c.win.Canvas().Capture()

	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(c.graphs)
	size := c.graphs.Size()
	scale := c.win.Canvas().Scale()
	rect := image.Rect(
		int(pos.X*scale), int(pos.Y*scale),
		int((pos.X+size.Width)*scale), int((pos.Y+size.Height)*scale),
	).Intersect(img.Bounds())

	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok && !rect.Empty() {
		return sub.SubImage(rect)
	}
	return img
}

func (c *CapabilityScreen) onSaveFig() {
	tab := PolarPlot
	if sel := c.graphs.Selected(); sel != nil {
		tab = sel.Text
	}
	img := c.CaptureGraph()
	base := filepath.Join(c.prefs.ExportDir, "capability")
	showSaveDialog(c.win, export.BuildPath(base, "_"+fileSlug(tab), ".png", c.now()), []string{".png"}, func(path string) {
		if err := export.WritePNG(path, img); err != nil {
			c.outputView.AppendLine(fmt.Sprintf("Save error: %v", err))
			return
		}
		c.outputView.AppendLine("Figure saved to " + path)
	})
}

func (c *CapabilityScreen) onExportTXT() {
	base := filepath.Join(c.prefs.ExportDir, "capability")
	showSaveDialog(c.win, export.BuildPath(base, "", ".txt", c.now()), []string{".txt"}, func(path string) {
		if err := c.ExportTXT(path); err != nil {
			c.outputView.AppendLine(fmt.Sprintf("Export error: %v", err))
		}
	})
}

// ExportTXT writes the summary of the last run, or of the current
// parameters when nothing was run yet.
func (c *CapabilityScreen) ExportTXT(path string) error {
	summary := c.Summary()
	if summary == "" {
		digest, _ := project.ModelDigest(c.params.Vessel)
		summary = format.FormatCapability(c.params, digest)
	}
	if err := export.EnsureDir(path); err != nil {
		return err
	}
	if err := export.WriteTXT(path, summary); err != nil {
		return err
	}
	c.outputView.AppendLine("Summary exported to " + path)
	return nil
}

func fileSlug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+'a'-'A')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			if n := len(out); n > 0 && out[n-1] != '_' {
				out = append(out, '_')
			}
		}
	}
	return string(out)
}
