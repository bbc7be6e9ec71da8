package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/UNO-SOFT/zlog/v2"

	"vessel-sim/internal/cases"
	"vessel-sim/internal/export"
	"vessel-sim/internal/format"
	"vessel-sim/internal/grid"
	"vessel-sim/internal/params"
	"vessel-sim/internal/project"
)

// ErrInvalidCases is returned by Run when at least one load case fails
// validation. Outputs are still written.
var ErrInvalidCases = errors.New("invalid load cases")

// RunnerConfig holds all CLI options for a conversion run.
type RunnerConfig struct {
	// Input
	Input   string
	Charset string
	Project string
	Vessel  string

	// Output
	OutputCSV  string
	OutputXLSX string
	OutputPDF  string
	OutputTXT  string
	Verbose    zlog.VerboseVar
}

// Runner reads a load-case table, checks it and writes the requested
// outputs.
type Runner struct {
	cfg    *RunnerConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewRunner creates a runner. A nil logger discards log records.
func NewRunner(cfg *RunnerConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{cfg: cfg, logger: logger, now: time.Now}
}

// Run executes the conversion and prints the summary to w.
func (r *Runner) Run(ctx context.Context, w io.Writer) (*cases.Report, error) {
	settings, proj, err := r.loadSettings()
	if err != nil {
		return nil, err
	}
	batch := &settings.Batch

	editor := grid.NewEditor(cases.Columns, 0)
	switch {
	case r.cfg.Input != "":
		if err := r.loadTable(editor); err != nil {
			return nil, err
		}
	case proj != nil:
		proj.Apply(editor)
	}
	batch.Simulations = editor.RowCount()

	if err := batch.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	digest, err := project.ModelDigest(batch.Vessel)
	if err != nil {
		r.logger.Warn("vessel model not readable", "vessel", batch.Vessel, "error", err)
		digest = ""
	} else if proj != nil && proj.ModelDigest != "" && proj.ModelDigest != digest {
		r.logger.Warn("vessel model changed since the project was saved", "vessel", batch.Vessel)
	}

	cs, err := cases.FromEditor(editor)
	if err != nil {
		return nil, fmt.Errorf("read load cases: %w", err)
	}
	r.logger.Info("load cases read", "count", len(cs), "rows", editor.RowCount())

	rep := cases.Check(ctx, cs, func(done, total int) {
		r.logger.Debug("checked", "done", done, "total", total)
	})
	summary := format.FormatBatch(batch, digest, cs, &rep)
	fmt.Fprintln(w, summary)

	if err := r.writeOutputs(batch, cs, summary); err != nil {
		return &rep, err
	}
	if rep.Canceled {
		return &rep, ctx.Err()
	}
	if len(rep.Errors) > 0 {
		return &rep, fmt.Errorf("%d of %d: %w", len(rep.Errors), rep.Total, ErrInvalidCases)
	}
	return &rep, nil
}

func (r *Runner) loadSettings() (*params.Settings, *project.Project, error) {
	settings := params.Default()
	var proj *project.Project
	if r.cfg.Project != "" {
		p, err := project.Load(r.cfg.Project)
		if err != nil {
			return nil, nil, err
		}
		r.logger.Info("project loaded", "path", r.cfg.Project)
		settings = &p.Settings
		proj = p
	}
	if r.cfg.Vessel != "" {
		settings.SetVessel(r.cfg.Vessel)
	}
	return settings, proj, nil
}

func (r *Runner) loadTable(editor *grid.Editor) error {
	tbl, err := export.ReadTable(r.cfg.Input, r.cfg.Charset)
	if err != nil {
		return fmt.Errorf("read %s: %w", r.cfg.Input, err)
	}
	block, err := tbl.Block(cases.Columns)
	if err != nil {
		return fmt.Errorf("read %s: %w", r.cfg.Input, err)
	}
	if len(block) > params.MaxSimulations {
		return fmt.Errorf("table has %d rows, at most %d are supported", len(block), params.MaxSimulations)
	}
	editor.UpdateRowCount(len(block))
	editor.SetBlock(0, 0, block)
	r.logger.Debug("table loaded", "path", r.cfg.Input, "rows", len(block))
	return nil
}

func (r *Runner) writeOutputs(batch *params.BatchParams, cs []cases.Case, summary string) error {
	outputs := []struct {
		path  string
		write func(string) error
	}{
		{r.cfg.OutputCSV, func(p string) error { return export.WriteCSV(p, batch.Vessel, cs, r.now()) }},
		{r.cfg.OutputXLSX, func(p string) error { return export.WriteXLSX(p, batch, cs) }},
		{r.cfg.OutputPDF, func(p string) error { return export.WritePDF(p, "Quasi-Static Load Cases", cs) }},
		{r.cfg.OutputTXT, func(p string) error { return export.WriteTXT(p, summary) }},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := export.EnsureDir(o.path); err != nil {
			return err
		}
		if err := o.write(o.path); err != nil {
			return fmt.Errorf("save %s: %w", o.path, err)
		}
		r.logger.Info("saved", "path", o.path)
	}
	return nil
}
