package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"vessel-sim/internal/export"
	"vessel-sim/internal/params"
	"vessel-sim/internal/project"
)

// Indexes of the main window panels.
const (
	PanelCapability = iota
	PanelBatch
	PanelSettings
)

// MainWindow holds the screens of the application window.
type MainWindow struct {
	Window     fyne.Window
	Settings   *params.Settings
	Prefs      *Preferences
	Capability *CapabilityScreen
	Batch      *BatchScreen
	SettingsUI *SettingsScreen
	Switcher   *PanelSwitcher
	Output     *OutputView
	History    *HistoryView

	logger *slog.Logger
}

// BuildMainWindow creates and configures the main application window.
func BuildMainWindow(app fyne.App, logger *slog.Logger) fyne.Window {
	return NewMainWindow(app, logger).Window
}

// NewMainWindow creates the window and its screens.
func NewMainWindow(app fyne.App, logger *slog.Logger) *MainWindow {
	win := app.NewWindow("Vessel Simulation Tool")
	win.Resize(NewWindowSize())

	appPrefs := app.Preferences()
	prefs := LoadPreferences(appPrefs)

	settings := params.Default()
	if prefs.Vessel != "" {
		settings.SetVessel(prefs.Vessel)
	}
	settings.Batch.Simulations = prefs.Rows

	mw := &MainWindow{
		Window:   win,
		Settings: settings,
		Prefs:    &prefs,
		Output:   NewOutputView(),
		History:  NewHistoryView(),
		logger:   logger,
	}

	mw.Capability = NewCapabilityScreen(&settings.Capability, mw.Prefs, win, mw.Output, logger)
	mw.Batch = NewBatchScreen(&settings.Batch, mw.Prefs, win, mw.Output, mw.History, logger)
	mw.SettingsUI = NewSettingsScreen(mw.Prefs, win, mw.Output, logger)
	mw.SettingsUI.OnVessel = mw.SetVessel
	mw.SettingsUI.OnSave = func(p Preferences) { p.Save(appPrefs) }
	mw.SettingsUI.Saved().OnOpenProject = mw.openProjectFile

	mw.Capability.Form().LoadPreferences(appPrefs, "capability")
	mw.Batch.Form().LoadPreferences(appPrefs, "batch")

	mw.Switcher = NewPanelSwitcher([]Panel{
		{Name: "Capability Plots", Icon: theme.HomeIcon(), Content: mw.Capability.Container()},
		{Name: "Quasi-Static", Icon: theme.GridIcon(), Content: mw.Batch.Container()},
		{Name: "Settings", Icon: theme.SettingsIcon(), Content: mw.SettingsUI.Container()},
	})
	mw.Switcher.OnChanged = func(i int) {
		if i == PanelSettings {
			mw.SettingsUI.Saved().Refresh()
		}
	}

	toolbar := NewActionToolbar(mw.Actions())

	outputTab := container.NewTabItem("Output", mw.Output.Container())
	historyTab := container.NewTabItem("History", mw.History.Container())
	tabs := container.NewAppTabs(outputTab, historyTab)

	split := container.NewVSplit(mw.Switcher.Content(), tabs)
	split.SetOffset(MainSplitRatio)

	win.SetContent(container.NewBorder(toolbar, nil, mw.Switcher.Bar(), nil, split))

	win.SetCloseIntercept(func() {
		mw.Stop()
		mw.Prefs.Save(appPrefs)
		mw.Capability.Form().SavePreferences(appPrefs, "capability")
		mw.Batch.Form().SavePreferences(appPrefs, "batch")
		win.Close()
	})

	return mw
}

// Actions returns the toolbar commands.
func (mw *MainWindow) Actions() []Action {
	return []Action{
		{Name: "Run", Icon: theme.MediaPlayIcon(), Run: mw.Start},
		{Name: "Stop", Icon: theme.MediaStopIcon(), Run: mw.Stop},
		{},
		{Name: "Open Project", Icon: theme.FolderOpenIcon(), Run: mw.onOpenProject},
		{Name: "Save Project", Icon: theme.DocumentSaveIcon(), Run: mw.onSaveProject},
	}
}

// Start runs the shown screen.
func (mw *MainWindow) Start() {
	switch mw.Switcher.Current() {
	case PanelCapability:
		mw.Capability.Start()
	case PanelBatch:
		mw.Batch.Start()
	}
}

// Stop cancels every running screen.
func (mw *MainWindow) Stop() {
	mw.Capability.Stop()
	mw.Batch.Stop()
}

// SetVessel selects the vessel model in every screen.
func (mw *MainWindow) SetVessel(path string) {
	mw.Settings.SetVessel(path)
	mw.Capability.Refresh()
	mw.Batch.Form().Refresh()
}

// SaveProject writes the parameters and the load-case table to path.
func (mw *MainWindow) SaveProject(path string) error {
	p := project.New(mw.Settings, mw.Batch.Editor())
	if digest, err := project.ModelDigest(mw.Settings.Batch.Vessel); err == nil {
		p.ModelDigest = digest
	}
	if err := export.EnsureDir(path); err != nil {
		return err
	}
	if err := project.Save(path, p); err != nil {
		return err
	}
	mw.Output.AppendLine("Project saved to " + path)
	mw.logger.Info("project saved", "path", path)
	return nil
}

// OpenProject replaces the parameters and the load-case table with the
// content of a project file.
func (mw *MainWindow) OpenProject(path string) error {
	p, err := project.Load(path)
	if err != nil {
		return err
	}
	mw.Stop()

	// Forms hold pointers into the settings sections, so copy in place.
	*mw.Settings = p.Settings
	p.Apply(mw.Batch.Editor())
	mw.Capability.Refresh()
	mw.Batch.Refresh()

	mw.Output.AppendLine("Project opened from " + path)
	if p.ModelDigest != "" {
		if digest, err := project.ModelDigest(mw.Settings.Batch.Vessel); err == nil && digest != p.ModelDigest {
			mw.Output.AppendLine(fmt.Sprintf("Warning: %s changed since the project was saved", mw.Settings.Batch.Vessel))
		}
	}
	mw.logger.Info("project opened", "path", path)
	return nil
}

func (mw *MainWindow) onOpenProject() {
	showOpenDialog(mw.Window, []string{".yml", ".yaml"}, mw.openProjectFile)
}

func (mw *MainWindow) openProjectFile(path string) {
	if err := mw.OpenProject(path); err != nil {
		mw.Output.AppendLine(fmt.Sprintf("Open error: %v", err))
		return
	}
	mw.Switcher.Show(PanelBatch)
}

func (mw *MainWindow) onSaveProject() {
	base := filepath.Join(mw.Prefs.ExportDir, "project")
	showSaveDialog(mw.Window, base+".yml", []string{".yml", ".yaml"}, func(path string) {
		if err := mw.SaveProject(path); err != nil {
			mw.Output.AppendLine(fmt.Sprintf("Save error: %v", err))
		}
	})
}
