// Package project saves and loads the screen inputs (parameters and the
// load-case table text) as a YAML project file.
package project

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"vessel-sim/internal/grid"
	"vessel-sim/internal/params"
)

// FormatVersion is written to every project file.
const FormatVersion = 1

// Project is the on-disk form of a session.
type Project struct {
	Version     int             `yaml:"version"`
	ModelDigest string          `yaml:"model_digest,omitempty"`
	Settings    params.Settings `yaml:"settings"`
	Table       Table           `yaml:"table"`
}

// Table holds the load-case table text. Rows may be shorter than Columns;
// missing cells are absent.
type Table struct {
	Columns []string   `yaml:"columns"`
	Rows    [][]string `yaml:"rows"`
}

// New captures the current settings and editor content.
func New(s *params.Settings, e *grid.Editor) *Project {
	p := &Project{
		Version:  FormatVersion,
		Settings: *s,
		Table:    Table{Columns: e.Headers(), Rows: e.Snapshot()},
	}
	for i, row := range p.Table.Rows {
		p.Table.Rows[i] = trimRow(row)
	}
	return p
}

func trimRow(row []string) []string {
	n := len(row)
	for n > 0 && row[n-1] == "" {
		n--
	}
	return row[:n]
}

// Apply restores the table into e, matching columns by name, and resizes
// e to the saved row count. Saved columns unknown to e are ignored.
func (p *Project) Apply(e *grid.Editor) {
	e.UpdateRowCount(len(p.Table.Rows))
	idx := make(map[string]int, e.ColumnCount())
	for i, h := range e.Headers() {
		idx[h] = i
	}
	for r := 0; r < e.RowCount(); r++ {
		for c := 0; c < e.ColumnCount(); c++ {
			e.ClearCell(r, c)
		}
	}
	for r, row := range p.Table.Rows {
		for i, text := range row {
			if i >= len(p.Table.Columns) || text == "" {
				continue
			}
			if c, ok := idx[p.Table.Columns[i]]; ok {
				e.SetCell(r, c, text)
			}
		}
	}
}

// Save writes the project as YAML.
func Save(path string, p *Project) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create project file: %w", err)
	}
	if err := Encode(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes the project as YAML to w.
func Encode(w io.Writer, p *Project) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	return enc.Close()
}

// Load reads a project file. Sections missing from the file keep their
// defaults.
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a project from r.
func Decode(r io.Reader) (*Project, error) {
	p := &Project{Settings: *params.Default()}
	if err := yaml.NewDecoder(r).Decode(p); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	if p.Version > FormatVersion {
		return nil, fmt.Errorf("project format version %d is newer than supported version %d", p.Version, FormatVersion)
	}
	return p, nil
}

// ModelDigest returns the hex BLAKE2b-256 digest of a vessel model file.
// The content is hashed, not parsed.
func ModelDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open vessel model: %w", err)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read vessel model: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
