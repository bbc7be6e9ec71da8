package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"vessel-sim/internal/cases"
	"vessel-sim/internal/export"
	"vessel-sim/internal/format"
	"vessel-sim/internal/grid"
	"vessel-sim/internal/params"
	"vessel-sim/internal/project"
)

// Export kinds of the batch screen.
const (
	ExportCSV  = ".csv"
	ExportXLSX = ".xlsx"
	ExportPDF  = ".pdf"
	ExportTXT  = ".txt"
)

var importExtensions = []string{".csv", ".tsv", ".txt", ".xlsx"}

// BatchScreen is the quasi-static analysis screen: batch parameters, the
// number of simulations and the load-case table.
type BatchScreen struct {
	params *params.BatchParams
	prefs  *Preferences

	form       *FieldForm
	countEntry *widget.Entry
	table      *GridTable
	cellLabel  *widget.Label
	editBar    *widget.Entry
	controls   *Controls

	outputView  *OutputView
	historyView *HistoryView
	win         fyne.Window
	logger      *slog.Logger
	now         func() time.Time

	container fyne.CanvasObject
}

// NewBatchScreen creates the screen editing p. The table starts with
// p.Simulations rows.
func NewBatchScreen(p *params.BatchParams, prefs *Preferences, win fyne.Window, ov *OutputView, hv *HistoryView, logger *slog.Logger) *BatchScreen {
	b := &BatchScreen{
		params:      p,
		prefs:       prefs,
		outputView:  ov,
		historyView: hv,
		win:         win,
		logger:      logger,
		now:         time.Now,
	}

	b.form = NewFieldForm(p.Fields(), win, logger)
	b.controls = NewControls(b.Start, ov, logger)

	rows := clampInt(p.Simulations, 1, params.MaxSimulations)
	p.Simulations = rows
	b.table = NewGridTable(grid.NewEditor(cases.Columns, rows), nil)
	b.table.OnSelectionChanged = b.onSelectionChanged

	b.countEntry = widget.NewEntry()
	b.countEntry.SetText(strconv.Itoa(rows))
	b.countEntry.Validator = func(text string) error {
		_, err := parseIntInRange(text, 1, params.MaxSimulations, "Number of simulations")
		return err
	}
	b.countEntry.OnChanged = func(text string) {
		if n, err := parseIntInRange(text, 1, params.MaxSimulations, "Number of simulations"); err == nil {
			b.SetSimulations(n)
		}
	}
	dec := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() { b.stepSimulations(-1) })
	inc := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() { b.stepSimulations(1) })
	count := widget.NewForm(widget.NewFormItem("Number of Simulations",
		container.NewBorder(nil, nil, nil, container.NewHBox(dec, inc), b.countEntry)))

	b.cellLabel = widget.NewLabel("")
	b.editBar = widget.NewEntry()
	b.editBar.SetPlaceHolder("Select a cell")
	b.editBar.Disable()
	b.editBar.OnSubmitted = b.submitCell
	editRow := container.NewBorder(nil, nil, b.cellLabel, nil, b.editBar)

	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		showOpenDialog(b.win, importExtensions, func(path string) {
			if err := b.ImportTable(path); err != nil {
				b.outputView.AppendLine(fmt.Sprintf("Import error: %v", err))
			}
		})
	})
	exportBtns := container.NewHBox()
	for _, kind := range []string{ExportCSV, ExportXLSX, ExportPDF, ExportTXT} {
		k := kind
		exportBtns.Add(widget.NewButton("Export "+k[1:], func() { b.onExport(k) }))
	}

	buttons := container.NewHBox(b.controls.StartButton(), b.controls.StopButton(), widget.NewSeparator(), importBtn, exportBtns)

	input := container.NewVScroll(container.NewVBox(b.form.Container(), count))
	tableArea := container.NewBorder(editRow, nil, nil, nil, b.table)
	split := container.NewHSplit(input, tableArea)
	split.SetOffset(InputSplitRatio)

	b.container = container.NewBorder(nil, container.NewVBox(buttons, b.controls.StatusBar()), nil, nil, split)
	return b
}

// Container returns the screen content.
func (b *BatchScreen) Container() fyne.CanvasObject {
	return b.container
}

// Form returns the parameter form.
func (b *BatchScreen) Form() *FieldForm {
	return b.form
}

// Table returns the load-case table.
func (b *BatchScreen) Table() *GridTable {
	return b.table
}

// Editor returns the load-case grid.
func (b *BatchScreen) Editor() *grid.Editor {
	return b.table.Editor()
}

// Controls returns the run controls.
func (b *BatchScreen) Controls() *Controls {
	return b.controls
}

// SetSimulations resizes the table to n rows.
func (b *BatchScreen) SetSimulations(n int) {
	b.params.Simulations = n
	if n != b.Editor().RowCount() {
		b.table.SetRowCount(n)
	}
	if b.countEntry.Text != strconv.Itoa(n) {
		b.countEntry.SetText(strconv.Itoa(n))
	}
}

func (b *BatchScreen) stepSimulations(delta int) {
	n := parseIntOrDefault(b.countEntry.Text, b.params.Simulations)
	b.SetSimulations(clampInt(n+delta, 1, params.MaxSimulations))
}

// Refresh reloads the widgets after the parameters or the grid were
// replaced, e.g. by opening a project.
func (b *BatchScreen) Refresh() {
	b.form.Refresh()
	b.table.ClearSelection()
	b.SetSimulations(clampInt(b.Editor().RowCount(), 1, params.MaxSimulations))
	b.table.Refresh()
}

func (b *BatchScreen) onSelectionChanged(sel grid.Selection) {
	if sel.Rows() != 1 || sel.Cols() != 1 {
		b.cellLabel.SetText(sel.String())
		b.editBar.SetText("")
		b.editBar.Disable()
		return
	}
	b.cellLabel.SetText(fmt.Sprintf("%s %d", b.Editor().Headers()[sel.Left], sel.Top+1))
	text, _ := b.Editor().Cell(sel.Top, sel.Left)
	b.editBar.Enable()
	b.editBar.SetText(text)
}

// submitCell stores the edit bar text and moves down one row.
func (b *BatchScreen) submitCell(text string) {
	sel, ok := b.table.Selection()
	if !ok || sel.Rows() != 1 || sel.Cols() != 1 {
		return
	}
	b.table.SetCell(sel.Top, sel.Left, text)
	if next := sel.Top + 1; next < b.Editor().RowCount() {
		b.table.SelectRange(grid.Single(next, sel.Left))
	}
}

// ImportTable replaces the table content with a spreadsheet file.
func (b *BatchScreen) ImportTable(path string) error {
	tbl, err := export.ReadTable(path, b.prefs.Charset)
	if err != nil {
		return err
	}
	block, err := tbl.Block(cases.Columns)
	if err != nil {
		return err
	}
	if len(block) == 0 {
		return fmt.Errorf("%s has no rows", filepath.Base(path))
	}
	if len(block) > params.MaxSimulations {
		return fmt.Errorf("%s has %d rows, at most %d are supported", filepath.Base(path), len(block), params.MaxSimulations)
	}

	e := b.Editor()
	b.SetSimulations(len(block))
	e.Delete([]grid.Selection{grid.NewSelection(0, 0, e.RowCount()-1, e.ColumnCount()-1)})
	e.SetBlock(0, 0, block)
	b.table.ClearSelection()
	b.table.Refresh()

	b.outputView.AppendLine(fmt.Sprintf("Imported %d rows from %s", len(block), path))
	b.logger.Info("table imported", "path", path, "rows", len(block))
	return nil
}

// readCases validates the inputs and extracts the load cases. A
// non-numeric cell is selected in the table.
func (b *BatchScreen) readCases() ([]cases.Case, error) {
	if err := b.form.Validate(); err != nil {
		return nil, err
	}
	cs, err := cases.FromEditor(b.Editor())
	if err != nil {
		var ce *grid.CellError
		if errors.As(err, &ce) {
			for c, h := range b.Editor().Headers() {
				if h == ce.Column {
					b.table.SelectRange(grid.Single(ce.Row, c))
				}
			}
		}
		return nil, err
	}
	return cs, nil
}

// Start checks the load cases in the background.
func (b *BatchScreen) Start() {
	if b.controls.Running() {
		return
	}
	cs, err := b.readCases()
	if err == nil {
		err = b.params.Validate()
	}
	if err != nil {
		b.outputView.AppendLine(fmt.Sprintf("Input error: %v", err))
		return
	}

	p := *b.params
	started := b.now()
	b.outputView.Clear()
	b.controls.Run("Load-case check", func(ctx context.Context, progress func(done, total int)) error {
		digest, err := project.ModelDigest(p.Vessel)
		if err != nil {
			b.logger.Warn("vessel model not readable", "vessel", p.Vessel, "error", err)
			digest = ""
		}
		rep := cases.Check(ctx, cs, progress)
		b.outputView.AppendLine(format.FormatBatch(&p, digest, cs, &rep))
		b.historyView.AddRecord(RunRecord{Time: started, Vessel: p.Vessel, Report: rep})
		if rep.Canceled {
			return context.Canceled
		}
		return nil
	})
}

// Stop cancels a running check.
func (b *BatchScreen) Stop() {
	b.controls.Stop()
}

func (b *BatchScreen) onExport(kind string) {
	base := filepath.Join(b.prefs.ExportDir, "load_cases")
	showSaveDialog(b.win, export.BuildPath(base, "", kind, b.now()), []string{kind}, func(path string) {
		if err := b.Export(kind, path); err != nil {
			b.outputView.AppendLine(fmt.Sprintf("Export error: %v", err))
		}
	})
}

// Export writes the current load cases to path in the given format.
func (b *BatchScreen) Export(kind, path string) error {
	cs, err := b.readCases()
	if err != nil {
		return err
	}
	if err := export.EnsureDir(path); err != nil {
		return err
	}

	switch kind {
	case ExportCSV:
		err = export.WriteCSV(path, b.params.Vessel, cs, b.now())
	case ExportXLSX:
		err = export.WriteXLSX(path, b.params, cs)
	case ExportPDF:
		err = export.WritePDF(path, "Quasi-Static Load Cases", cs)
	case ExportTXT:
		digest, _ := project.ModelDigest(b.params.Vessel)
		err = export.WriteTXT(path, format.FormatBatch(b.params, digest, cs, nil))
	default:
		err = fmt.Errorf("unknown export format %q", kind)
	}
	if err != nil {
		return err
	}

	b.outputView.AppendLine(fmt.Sprintf("Exported %d load cases to %s", len(cs), path))
	b.logger.Info("exported", "path", path, "cases", len(cs))
	return nil
}
