package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

// EnvPrefix is the prefix of environment variables that set flags, e.g.
// VESSELSIM_VESSEL.
const EnvPrefix = "VESSELSIM"

// ParseArgs parses command-line arguments, without the program name, and
// returns a RunnerConfig. Returns nil config without arguments (GUI mode).
// Help prints the usage and returns flag.ErrHelp.
func ParseArgs(args []string, stderr io.Writer) (*RunnerConfig, error) {
	if len(args) == 0 {
		return nil, nil // No args = use GUI
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		PrintUsage(stderr)
		return nil, flag.ErrHelp
	}

	cfg := &RunnerConfig{}

	fs := flag.NewFlagSet("vessel-sim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.Input, "i", "", "Load-case table (.csv, .tsv, .txt or .xlsx)")
	fs.StringVar(&cfg.Input, "input", "", "Load-case table (.csv, .tsv, .txt or .xlsx)")
	fs.StringVar(&cfg.Charset, "charset", "utf-8", "Charset of a delimited input table")
	fs.StringVar(&cfg.Project, "project", "", "Project file with parameters and table")
	fs.StringVar(&cfg.Vessel, "vessel", "", "Vessel model file (overrides the project)")

	fs.StringVar(&cfg.OutputCSV, "o", "", "Output CSV file")
	fs.StringVar(&cfg.OutputCSV, "output", "", "Output CSV file")
	fs.StringVar(&cfg.OutputXLSX, "xlsx", "", "Output Excel workbook")
	fs.StringVar(&cfg.OutputPDF, "pdf", "", "Output PDF table")
	fs.StringVar(&cfg.OutputTXT, "txt", "", "Output text summary")
	fs.Var(&cfg.Verbose, "v", "Logging verbosity")
	_ = fs.String("config", "", "Config file (one 'flag value' per line)")

	var rest []string
	cmd := ffcli.Command{
		Name:    "vessel-sim",
		FlagSet: fs,
		Options: []ff.Option{
			ff.WithEnvVarPrefix(EnvPrefix),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithAllowMissingConfigFile(true),
		},
		UsageFunc: func(*ffcli.Command) string {
			var b strings.Builder
			PrintUsage(&b)
			return b.String()
		},
		Exec: func(_ context.Context, positional []string) error {
			rest = positional
			return nil
		},
	}
	if err := cmd.ParseAndRun(context.Background(), args); err != nil {
		return nil, err
	}

	if cfg.Input == "" && len(rest) > 0 {
		cfg.Input = rest[0]
	}

	// Validate: need something to read cases from
	if cfg.Input == "" && cfg.Project == "" {
		PrintUsage(stderr)
		return nil, errors.New("must provide -i <table> or -project <file>")
	}

	return cfg, nil
}

// PrintUsage prints the help message.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, `Vessel Simulation Tool

Usage: vessel-sim [flags] [table]
       vessel-sim help    (show this message)

Without arguments the graphical interface starts.

INPUT:
  -i, -input <file>        Load-case table (.csv, .tsv, .txt or .xlsx)
  -charset <name>          Charset of a delimited table (default: utf-8)
  -project <file>          Project file with parameters (and table)
  -vessel <file>           Vessel model file, overrides the project

OUTPUT:
  -o, -output <file>       Append load cases to a CSV file
  -xlsx <file>             Write cases and parameters to an Excel workbook
  -pdf <file>              Write the case table as PDF
  -txt <file>              Write the summary as text
  -v                       Verbose logging (repeat for more)

CONFIGURATION:
  -config <file>           Read flags from a file, one "name value" per line
  Every flag can also be set from the environment as %s_<NAME>,
  e.g. %s_VESSEL=pls.yml.

EXAMPLES:
  # Check a table exported from a spreadsheet
  vessel-sim -vessel pls.yml -i cases.csv

  # Latin-1 table, write workbook and PDF
  vessel-sim -vessel pls.yml -i cases.csv -charset windows-1252 -xlsx cases.xlsx -pdf cases.pdf

  # Re-run a saved project
  vessel-sim -project session.yml -txt summary.txt

`, EnvPrefix, EnvPrefix)
}
