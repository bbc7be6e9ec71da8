package format

import (
	"errors"
	"strings"
	"testing"

	"vessel-sim/internal/cases"
	"vessel-sim/internal/params"
)

func TestFormatCapability(t *testing.T) {
	p := params.DefaultCapability()
	p.Vessel = "pls.yml"
	p.Simulation = params.SimWindSpeedCP
	p.Environment.WaveHs = 2.5
	p.Loads.X = 150

	out := FormatCapability(&p, "abc123")

	for _, want := range []string{
		"=== Capability Plot ===",
		"Vessel:          pls.yml",
		"Model digest:    abc123",
		"Simulation:      Wind Speed CP",
		"Hs 2.50 m",
		"Load X:          150.00 kN",
		"Thrust loss:     on",
		"Symmetrize:      off",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCapability_NoDigest(t *testing.T) {
	p := params.DefaultCapability()
	out := FormatCapability(&p, "")
	if strings.Contains(out, "Model digest") {
		t.Error("empty digest should be omitted")
	}
}

func TestFormatBatch(t *testing.T) {
	p := params.DefaultBatch()
	p.Vessel = "pls.yml"
	cs := []cases.Case{
		{Row: 0, Hs: 2, Tp: 8, Gamma: 3.3, Heading: 90, Probability: 0.5},
		{Row: 3, Hs: 3, Tp: 9, Gamma: 3.3, Heading: 180, Probability: 0.5},
	}
	rep := &cases.Report{Total: 2, Valid: 1, TotalProbability: 1, Errors: []error{errors.New("row 4: bad")}}

	out := FormatBatch(&p, "", cs, rep)

	lines := strings.Split(out, "\n")
	if lines[0] != "=== Quasi-Static Analysis ===" {
		t.Errorf("unexpected header %q", lines[0])
	}
	for _, want := range []string{
		"Simulations:     10",
		FormatCaseHeader(),
		FormatCase(cs[1]),
		"Valid cases:     1/2",
		"Probability sum: 1.0000",
		"Error: row 4: bad",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCase(t *testing.T) {
	line := FormatCase(cases.Case{Row: 4, Hs: 1.5, Tp: 7, Probability: 0.125})
	if !strings.HasPrefix(line, "5 ") {
		t.Errorf("case number should be one-based: %q", line)
	}
	if !strings.Contains(line, "0.1250") {
		t.Errorf("missing probability: %q", line)
	}
}
