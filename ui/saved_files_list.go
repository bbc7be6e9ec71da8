package ui

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// FileKind groups saved files by what wrote them.
type FileKind string

const (
	KindProject FileKind = "Project"
	KindTable   FileKind = "Table"
	KindReport  FileKind = "Report"
	KindFigure  FileKind = "Figure"
)

// savedKinds maps the extensions written by exports and project saves.
var savedKinds = map[string]FileKind{
	".yml":  KindProject,
	".csv":  KindTable,
	".xlsx": KindTable,
	".txt":  KindReport,
	".pdf":  KindReport,
	".png":  KindFigure,
}

// SavedFilesList lists the exported files of the export directory.
type SavedFilesList struct {
	mu        sync.Mutex
	dir       string
	files     []FileInfo
	list      *widget.List
	logger    *slog.Logger
	container *fyne.Container

	// OnOpenProject, when set, receives project files instead of the
	// system viewer.
	OnOpenProject func(path string)
}

// FileInfo holds metadata about a saved file
type FileInfo struct {
	Name     string
	Path     string
	Kind     FileKind
	Size     int64
	Modified time.Time
}

// NewSavedFilesList creates a list of the files under dir.
func NewSavedFilesList(dir string, logger *slog.Logger) *SavedFilesList {
	sfl := &SavedFilesList{dir: dir, logger: logger}

	sfl.list = widget.NewList(
		func() int {
			sfl.mu.Lock()
			defer sfl.mu.Unlock()
			return len(sfl.files)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			sfl.mu.Lock()
			defer sfl.mu.Unlock()
			if id >= len(sfl.files) {
				return
			}
			obj.(*widget.Label).SetText(formatFileItem(sfl.files[id], time.Now()))
		},
	)

	sfl.list.OnSelected = func(id widget.ListItemID) {
		sfl.mu.Lock()
		if id >= len(sfl.files) {
			sfl.mu.Unlock()
			return
		}
		fi := sfl.files[id]
		sfl.mu.Unlock()

		if fi.Kind == KindProject && sfl.OnOpenProject != nil {
			sfl.OnOpenProject(fi.Path)
		} else {
			go sfl.openFile(fi.Path)
		}

		// Deselect immediately to allow re-selection
		sfl.list.UnselectAll()
	}

	header := widget.NewLabel("Saved Files")
	header.TextStyle = fyne.TextStyle{Bold: true}
	refresh := widget.NewButton("Refresh", sfl.Refresh)

	sfl.container = container.NewBorder(
		container.NewVBox(container.NewBorder(nil, nil, header, refresh), widget.NewSeparator()),
		nil, nil, nil,
		sfl.list,
	)

	sfl.Refresh()
	return sfl
}

// Container returns the container widget
func (sfl *SavedFilesList) Container() *fyne.Container {
	return sfl.container
}

// SetDir updates the directory to scan and refreshes the list.
func (sfl *SavedFilesList) SetDir(dir string) {
	sfl.mu.Lock()
	sfl.dir = dir
	sfl.mu.Unlock()
	sfl.Refresh()
}

// Files returns a copy of the listed files, newest first.
func (sfl *SavedFilesList) Files() []FileInfo {
	sfl.mu.Lock()
	defer sfl.mu.Unlock()
	return append([]FileInfo(nil), sfl.files...)
}

// Refresh rescans the directory and updates the file list
func (sfl *SavedFilesList) Refresh() {
	sfl.mu.Lock()
	dir := sfl.dir
	sfl.mu.Unlock()

	files, err := scanFiles(dir)
	if err != nil && !os.IsNotExist(err) {
		sfl.logger.Warn("scan saved files", "dir", dir, "error", err)
		return
	}

	sfl.mu.Lock()
	sfl.files = files
	sfl.mu.Unlock()

	sfl.list.Refresh()
}

// scanFiles discovers all saved files under dir (recursive), newest first.
func scanFiles(dir string) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		kind, ok := savedKinds[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		files = append(files, FileInfo{
			Name:     rel,
			Path:     path,
			Kind:     kind,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})

	return files, nil
}

// formatFileItem formats a file entry for display
func formatFileItem(fi FileInfo, now time.Time) string {
	var sizeStr string
	switch {
	case fi.Size < 1024:
		sizeStr = fmt.Sprintf("%d B", fi.Size)
	case fi.Size < 1024*1024:
		sizeStr = fmt.Sprintf("%.1f KB", float64(fi.Size)/1024)
	default:
		sizeStr = fmt.Sprintf("%.1f MB", float64(fi.Size)/(1024*1024))
	}

	// Show the time for files of today, the date otherwise
	var timeStr string
	if fi.Modified.Year() == now.Year() && fi.Modified.YearDay() == now.YearDay() {
		timeStr = fi.Modified.Format("15:04:05")
	} else {
		timeStr = fi.Modified.Format("2006-01-02")
	}

	return fmt.Sprintf("[%s] %s  (%s, %s)", fi.Kind, fi.Name, sizeStr, timeStr)
}

// openFile opens a file with the system default application
func (sfl *SavedFilesList) openFile(path string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	default:
		sfl.logger.Warn("opening files is not supported", "os", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		sfl.logger.Error("open file", "path", path, "error", err)
	}
}
