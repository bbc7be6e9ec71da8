package ui

import (
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"vessel-sim/internal/params"
)

// SettingsScreen edits the application preferences and lists the saved
// files of the export directory.
type SettingsScreen struct {
	prefs *Preferences

	exportDir *widget.Entry
	charset   *widget.Select
	rows      *widget.Entry
	vessel    *widget.Entry

	saved *SavedFilesList

	// OnVessel is called when the default vessel is applied to the screens.
	OnVessel func(path string)
	// OnSave is called after the preferences were changed.
	OnSave func(Preferences)

	win       fyne.Window
	output    *OutputView
	container fyne.CanvasObject
}

// NewSettingsScreen creates the settings panel editing prefs.
func NewSettingsScreen(prefs *Preferences, win fyne.Window, ov *OutputView, logger *slog.Logger) *SettingsScreen {
	s := &SettingsScreen{prefs: prefs, win: win, output: ov}

	s.exportDir = widget.NewEntry()
	s.exportDir.SetText(prefs.ExportDir)
	browseDir := widget.NewButton("...", s.chooseExportDir)

	s.charset = widget.NewSelect(Charsets, nil)
	s.charset.SetSelected(prefs.Charset)

	s.rows = widget.NewEntry()
	s.rows.SetText(strconv.Itoa(prefs.Rows))
	s.rows.Validator = func(text string) error {
		_, err := parseIntInRange(text, 1, params.MaxSimulations, "Initial rows")
		return err
	}

	s.vessel = widget.NewEntry()
	s.vessel.SetText(prefs.Vessel)
	s.vessel.SetPlaceHolder("vessel.yml")
	browseVessel := widget.NewButton("...", s.chooseVessel)
	applyVessel := widget.NewButton("Use in all screens", s.ApplyVessel)

	form := widget.NewForm(
		widget.NewFormItem("Export folder", container.NewBorder(nil, nil, nil, browseDir, s.exportDir)),
		widget.NewFormItem("CSV charset", s.charset),
		widget.NewFormItem("Initial rows", s.rows),
		widget.NewFormItem("Default vessel", container.NewBorder(nil, nil, nil,
			container.NewHBox(browseVessel, applyVessel), s.vessel)),
	)
	save := widget.NewButton("Save", func() {
		if err := s.Save(); err != nil {
			dialog.ShowError(err, s.win)
		}
	})
	save.Importance = widget.HighImportance

	s.saved = NewSavedFilesList(prefs.ExportDir, logger)

	top := container.NewVBox(
		widget.NewLabelWithStyle("Settings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		container.NewHBox(save),
		widget.NewSeparator(),
	)
	s.container = container.NewBorder(top, nil, nil, nil, s.saved.Container())
	return s
}

// Container returns the screen content.
func (s *SettingsScreen) Container() fyne.CanvasObject {
	return s.container
}

// Saved returns the list of saved files.
func (s *SettingsScreen) Saved() *SavedFilesList {
	return s.saved
}

// Save copies the widget values into the preferences.
func (s *SettingsScreen) Save() error {
	rows, err := parseIntInRange(s.rows.Text, 1, params.MaxSimulations, "Initial rows")
	if err != nil {
		return err
	}
	if s.exportDir.Text == "" {
		return fmt.Errorf("export folder cannot be empty")
	}

	s.prefs.ExportDir = s.exportDir.Text
	s.prefs.Charset = s.charset.Selected
	s.prefs.Rows = rows
	s.prefs.Vessel = s.vessel.Text

	s.saved.SetDir(s.prefs.ExportDir)
	if s.OnSave != nil {
		s.OnSave(*s.prefs)
	}
	return nil
}

// ApplyVessel stores the default vessel and selects it in every screen.
func (s *SettingsScreen) ApplyVessel() {
	path := s.vessel.Text
	if path == "" {
		return
	}
	s.prefs.Vessel = path
	if s.OnVessel != nil {
		s.OnVessel(path)
	}
	s.output.AppendLine("Vessel model set to " + path)
}

func (s *SettingsScreen) chooseExportDir() {
	dialog.ShowFolderOpen(func(l fyne.ListableURI, err error) {
		if err != nil || l == nil {
			return
		}
		s.exportDir.SetText(l.Path())
	}, s.win)
}

func (s *SettingsScreen) chooseVessel() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		s.vessel.SetText(r.URI().Path())
		r.Close()
	}, s.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".yml", ".yaml"}))
	d.Show()
}
