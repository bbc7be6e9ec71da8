package cli

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestParseArgs_NoArgs(t *testing.T) {
	cfg, err := ParseArgs(nil, &bytes.Buffer{})
	if err != nil {
		t.Errorf("ParseArgs() error = %v, want nil", err)
	}
	if cfg != nil {
		t.Errorf("ParseArgs() with no args should return nil config for GUI mode, got %v", cfg)
	}
}

func TestParseArgs_HelpFlag(t *testing.T) {
	for _, arg := range []string{"help", "--help", "-h"} {
		t.Run(arg, func(t *testing.T) {
			var stderr bytes.Buffer
			cfg, err := ParseArgs([]string{arg}, &stderr)
			if !errors.Is(err, flag.ErrHelp) {
				t.Errorf("ParseArgs() error = %v, want flag.ErrHelp", err)
			}
			if cfg != nil {
				t.Errorf("ParseArgs() with %s should return nil config, got %v", arg, cfg)
			}
			if !bytes.Contains(stderr.Bytes(), []byte("Usage: vessel-sim")) {
				t.Error("usage was not printed")
			}
		})
	}
}

func TestParseArgs_Conversion(t *testing.T) {
	args := []string{"-i", "cases.csv", "-charset", "windows-1252", "-vessel", "pls.yml",
		"-o", "out.csv", "-xlsx", "out.xlsx", "-pdf", "out.pdf", "-txt", "out.txt"}

	cfg, err := ParseArgs(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v, want nil", err)
	}
	if cfg == nil {
		t.Fatal("ParseArgs() returned nil, want config")
	}

	checks := []struct {
		name, got, want string
	}{
		{"Input", cfg.Input, "cases.csv"},
		{"Charset", cfg.Charset, "windows-1252"},
		{"Vessel", cfg.Vessel, "pls.yml"},
		{"OutputCSV", cfg.OutputCSV, "out.csv"},
		{"OutputXLSX", cfg.OutputXLSX, "out.xlsx"},
		{"OutputPDF", cfg.OutputPDF, "out.pdf"},
		{"OutputTXT", cfg.OutputTXT, "out.txt"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := ParseArgs([]string{"-input", "cases.xlsx"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Charset != "utf-8" {
		t.Errorf("Charset = %q, want utf-8", cfg.Charset)
	}
	if cfg.OutputCSV != "" || cfg.Project != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseArgs_PositionalInput(t *testing.T) {
	cfg, err := ParseArgs([]string{"-vessel", "pls.yml", "cases.csv"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Input != "cases.csv" {
		t.Errorf("Input = %q, want cases.csv", cfg.Input)
	}
}

func TestParseArgs_MissingInput(t *testing.T) {
	var stderr bytes.Buffer
	cfg, err := ParseArgs([]string{"-vessel", "pls.yml"}, &stderr)
	if err == nil {
		t.Error("ParseArgs() without -i or -project should return error")
	}
	if cfg != nil {
		t.Errorf("cfg = %v, want nil", cfg)
	}
}

func TestParseArgs_UnknownFlag(t *testing.T) {
	if _, err := ParseArgs([]string{"-bogus"}, &bytes.Buffer{}); err == nil {
		t.Error("unknown flag should return error")
	}
}

func TestParseArgs_Env(t *testing.T) {
	t.Setenv(EnvPrefix+"_VESSEL", "env.yml")

	cfg, err := ParseArgs([]string{"-i", "cases.csv"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Vessel != "env.yml" {
		t.Errorf("Vessel = %q, want env.yml", cfg.Vessel)
	}
}

func TestParseArgs_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vessel-sim.conf")
	if err := os.WriteFile(path, []byte("vessel conf.yml\nxlsx out.xlsx\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseArgs([]string{"-config", path, "-i", "cases.csv"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Vessel != "conf.yml" || cfg.OutputXLSX != "out.xlsx" {
		t.Errorf("config file not applied: %+v", cfg)
	}
}

func TestParseArgs_CommandLineBeatsEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"_VESSEL", "env.yml")

	cfg, err := ParseArgs([]string{"-vessel", "flag.yml", "-i", "cases.csv"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Vessel != "flag.yml" {
		t.Errorf("Vessel = %q, want flag.yml", cfg.Vessel)
	}
}

func TestParseArgs_HelpAfterFlags(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := ParseArgs([]string{"-i", "cases.csv", "-h"}, &stderr); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("ParseArgs() error = %v, want flag.ErrHelp", err)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("Usage: vessel-sim")) {
		t.Errorf("usage was not printed:\n%s", stderr.String())
	}
}

func TestParseArgs_FlagBeatsPositional(t *testing.T) {
	cfg, err := ParseArgs([]string{"-i", "a.csv", "b.csv"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Input != "a.csv" {
		t.Errorf("Input = %q, want a.csv", cfg.Input)
	}
}
