package ui

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"vessel-sim/internal/export"
)

// showSaveDialog asks for a destination, proposing defaultPath, and calls
// save with the chosen path. The empty file created by the dialog is
// removed first so that appending writers start a new file with headers.
func showSaveDialog(win fyne.Window, defaultPath string, exts []string, save func(path string)) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		path := w.URI().Path()
		w.Close()
		if fi, err := os.Stat(path); err == nil && fi.Size() == 0 {
			os.Remove(path)
		}
		save(path)
	}, win)

	d.SetFileName(filepath.Base(defaultPath))
	if len(exts) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(exts))
	}
	if err := export.EnsureDir(defaultPath); err == nil {
		if abs, err := filepath.Abs(filepath.Dir(defaultPath)); err == nil {
			if l, err := storage.ListerForURI(storage.NewFileURI(abs)); err == nil {
				d.SetLocation(l)
			}
		}
	}
	d.Show()
}

// showOpenDialog asks for a file with one of exts and calls open with its
// path.
func showOpenDialog(win fyne.Window, exts []string, open func(path string)) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		open(path)
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter(exts))
	d.Show()
}
