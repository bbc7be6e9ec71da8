package ui

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"vessel-sim/internal/cases"
)

var historyColumns = []string{"Time", "Vessel", "Cases", "Valid", "Probability", "Status"}

// RunRecord is one finished load-case check.
type RunRecord struct {
	Time   time.Time
	Vessel string
	Report cases.Report
}

// Status summarizes the outcome of the check.
func (r RunRecord) Status() string {
	switch {
	case r.Report.Canceled:
		return "Cancelled"
	case len(r.Report.Errors) > 0:
		return fmt.Sprintf("%d invalid", len(r.Report.Errors))
	default:
		return "OK"
	}
}

// HistoryView displays a table of past load-case checks.
type HistoryView struct {
	mu      sync.Mutex
	records []RunRecord
	table   *widget.Table
}

// NewHistoryView creates a new history table view.
func NewHistoryView() *HistoryView {
	hv := &HistoryView{}

	hv.table = widget.NewTable(
		hv.tableSize,
		hv.createCell,
		hv.updateCell,
	)

	hv.table.SetColumnWidth(0, 160) // Time
	hv.table.SetColumnWidth(1, 180) // Vessel
	hv.table.SetColumnWidth(2, 70)  // Cases
	hv.table.SetColumnWidth(3, 70)  // Valid
	hv.table.SetColumnWidth(4, 100) // Probability
	hv.table.SetColumnWidth(5, 120) // Status

	return hv
}

// Container returns the table widget.
func (hv *HistoryView) Container() *widget.Table {
	return hv.table
}

// AddRecord appends a check to the history, safe to call from any goroutine.
func (hv *HistoryView) AddRecord(r RunRecord) {
	hv.mu.Lock()
	hv.records = append(hv.records, r)
	hv.mu.Unlock()
	fyne.Do(hv.table.Refresh)
}

// Records returns a copy of all stored records.
func (hv *HistoryView) Records() []RunRecord {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	out := make([]RunRecord, len(hv.records))
	copy(out, hv.records)
	return out
}

func (hv *HistoryView) tableSize() (rows int, cols int) {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	return len(hv.records) + 1, len(historyColumns) // +1 for header
}

func (hv *HistoryView) createCell() fyne.CanvasObject {
	return widget.NewLabel("")
}

func (hv *HistoryView) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)

	if id.Row == 0 {
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.SetText(historyColumns[id.Col])
		return
	}

	hv.mu.Lock()
	defer hv.mu.Unlock()

	idx := id.Row - 1
	if idx >= len(hv.records) {
		label.SetText("")
		return
	}

	r := hv.records[idx]
	label.TextStyle = fyne.TextStyle{}

	switch id.Col {
	case 0:
		label.SetText(r.Time.Format("2006-01-02 15:04:05"))
	case 1:
		label.SetText(filepath.Base(r.Vessel))
	case 2:
		label.SetText(fmt.Sprintf("%d", r.Report.Total))
	case 3:
		label.SetText(fmt.Sprintf("%d", r.Report.Valid))
	case 4:
		label.SetText(fmt.Sprintf("%.4f", r.Report.TotalProbability))
	case 5:
		label.SetText(r.Status())
	}
}
