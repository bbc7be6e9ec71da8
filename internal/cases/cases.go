// Package cases turns the numeric content of the load-case table into
// validated quasi-static load cases.
package cases

import (
	"context"
	"errors"
	"fmt"
	"math"

	"vessel-sim/internal/grid"
)

// Column headers of the load-case table, in display order.
const (
	ColHs          = "Hs"
	ColTp          = "Tp"
	ColGamma       = "Gamma"
	ColHeading     = "Heading"
	ColCurrentVel  = "Curr. vel."
	ColCurrentDir  = "Curr. Dir."
	ColWindVel     = "Wind Vel."
	ColWindDir     = "Wind Dir."
	ColProbability = "Probability"
)

// Columns lists the load-case table headers in display order.
var Columns = []string{
	ColHs, ColTp, ColGamma, ColHeading, ColCurrentVel, ColCurrentDir,
	ColWindVel, ColWindDir, ColProbability,
}

// ErrNoCases is returned when every row of the table is blank.
var ErrNoCases = errors.New("load-case table is empty")

// Case is one row of the load-case table.
type Case struct {
	Row         int // zero-based table row
	Hs          float64
	Tp          float64
	Gamma       float64
	Heading     float64
	CurrentVel  float64
	CurrentDir  float64
	WindVel     float64
	WindDir     float64
	Probability float64
}

// Values returns the case values in column order.
func (c Case) Values() []float64 {
	return []float64{c.Hs, c.Tp, c.Gamma, c.Heading, c.CurrentVel, c.CurrentDir, c.WindVel, c.WindDir, c.Probability}
}

// FromValues builds cases from extracted table values. Rows where every
// column is blank are skipped; a row with only some columns filled is an
// error.
func FromValues(v grid.Values, rows int) ([]Case, error) {
	for _, col := range Columns {
		if _, ok := v[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var out []Case
	for r := 0; r < rows; r++ {
		vals := make([]float64, len(Columns))
		blank := 0
		var missing string
		for i, col := range Columns {
			vals[i] = v[col][r]
			if math.IsNaN(vals[i]) {
				blank++
				if missing == "" {
					missing = col
				}
			}
		}
		if blank == len(Columns) {
			continue
		}
		if blank > 0 {
			return nil, fmt.Errorf("row %d: %s is missing", r+1, missing)
		}
		out = append(out, Case{
			Row: r, Hs: vals[0], Tp: vals[1], Gamma: vals[2], Heading: vals[3],
			CurrentVel: vals[4], CurrentDir: vals[5], WindVel: vals[6], WindDir: vals[7],
			Probability: vals[8],
		})
	}
	if len(out) == 0 {
		return nil, ErrNoCases
	}
	return out, nil
}

// Validate checks the physical ranges of a case.
func (c Case) Validate() error {
	for _, d := range []struct {
		name string
		val  float64
	}{
		{"Hs", c.Hs}, {"Tp", c.Tp}, {"Gamma", c.Gamma},
		{"current velocity", c.CurrentVel}, {"wind velocity", c.WindVel}, {"probability", c.Probability},
	} {
		if math.IsInf(d.val, 0) {
			return fmt.Errorf("row %d: %s is out of range, got %g", c.Row+1, d.name, d.val)
		}
	}
	switch {
	case c.Hs < 0:
		return fmt.Errorf("row %d: Hs must be non-negative, got %g", c.Row+1, c.Hs)
	case c.Tp < 0 || (c.Hs > 0 && c.Tp == 0):
		return fmt.Errorf("row %d: Tp must be positive when Hs is set, got %g", c.Row+1, c.Tp)
	case c.Gamma < 0:
		return fmt.Errorf("row %d: Gamma must be non-negative, got %g", c.Row+1, c.Gamma)
	case c.CurrentVel < 0:
		return fmt.Errorf("row %d: current velocity must be non-negative, got %g", c.Row+1, c.CurrentVel)
	case c.WindVel < 0:
		return fmt.Errorf("row %d: wind velocity must be non-negative, got %g", c.Row+1, c.WindVel)
	case c.Probability < 0 || c.Probability > 1:
		return fmt.Errorf("row %d: probability must be between 0 and 1, got %g", c.Row+1, c.Probability)
	}
	for _, d := range []struct {
		name string
		val  float64
	}{{"heading", c.Heading}, {"current direction", c.CurrentDir}, {"wind direction", c.WindDir}} {
		if d.val < 0 || d.val >= 360 || math.IsInf(d.val, 0) {
			return fmt.Errorf("row %d: %s must be in [0, 360) degrees, got %g", c.Row+1, d.name, d.val)
		}
	}
	return nil
}

// TotalProbability sums the probabilities of all cases.
func TotalProbability(cs []Case) float64 {
	var sum float64
	for _, c := range cs {
		sum += c.Probability
	}
	return sum
}

// Report summarizes a Check run.
type Report struct {
	Total            int
	Valid            int
	Errors           []error
	TotalProbability float64
	Canceled         bool
}

// Check validates every case, calling progress after each one. It stops
// early, marking the report canceled, when ctx is done.
func Check(ctx context.Context, cs []Case, progress func(done, total int)) Report {
	rep := Report{Total: len(cs), TotalProbability: TotalProbability(cs)}
	for i, c := range cs {
		if ctx.Err() != nil {
			rep.Canceled = true
			return rep
		}
		if err := c.Validate(); err != nil {
			rep.Errors = append(rep.Errors, err)
		} else {
			rep.Valid++
		}
		if progress != nil {
			progress(i+1, len(cs))
		}
	}
	return rep
}

// FromEditor extracts the editor's values and builds cases from them.
func FromEditor(e *grid.Editor) ([]Case, error) {
	v, err := e.Values()
	if err != nil {
		return nil, err
	}
	return FromValues(v, e.RowCount())
}
