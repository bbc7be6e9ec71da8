package ui

import (
	"fyne.io/fyne/v2"

	"vessel-sim/internal/params"
)

const (
	prefExportDir = "settings.export_dir"
	prefCharset   = "settings.charset"
	prefRows      = "settings.rows"
	prefVessel    = "settings.vessel"
)

// Charsets offered for importing delimited tables.
var Charsets = []string{"utf-8", "windows-1252", "iso-8859-1", "iso-8859-2", "windows-1250"}

// Preferences are the application settings kept between sessions.
type Preferences struct {
	ExportDir string
	Charset   string
	Rows      int
	Vessel    string
}

// DefaultPreferences returns the settings of a first start.
func DefaultPreferences() Preferences {
	return Preferences{
		ExportDir: "results",
		Charset:   "utf-8",
		Rows:      params.DefaultSimulations,
	}
}

// LoadPreferences reads the stored settings, falling back to defaults.
func LoadPreferences(p fyne.Preferences) Preferences {
	d := DefaultPreferences()
	return Preferences{
		ExportDir: p.StringWithFallback(prefExportDir, d.ExportDir),
		Charset:   p.StringWithFallback(prefCharset, d.Charset),
		Rows:      clampInt(p.IntWithFallback(prefRows, d.Rows), 1, params.MaxSimulations),
		Vessel:    p.String(prefVessel),
	}
}

// Save persists the settings.
func (s Preferences) Save(p fyne.Preferences) {
	p.SetString(prefExportDir, s.ExportDir)
	p.SetString(prefCharset, s.Charset)
	p.SetInt(prefRows, s.Rows)
	p.SetString(prefVessel, s.Vessel)
}
