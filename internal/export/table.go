package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Table is a header row plus text rows read from a spreadsheet file.
type Table struct {
	Headers []string
	Rows    [][]string
}

// GetEncoding resolves a charset name. UTF-8 (or an empty name) resolves
// to nil, meaning no decoding is needed.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(strings.TrimSpace(encName))
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// ReadCSV reads a delimited text table. The separator is sniffed from the
// first non-quote, non-alphanumeric character of the input, so comma,
// semicolon and tab separated files all work.
func ReadCSV(r io.Reader, encName string) (*Table, error) {
	enc, err := GetEncoding(encName)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<16)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty table")
		}
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffSeparator(string(b))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return newTable(records)
}

// sniffSeparator returns the first of , ; TAB or | found outside quotes on
// the header line.
func sniffSeparator(s string) rune {
	quoted := false
	for _, r := range s {
		switch r {
		case '"':
			quoted = !quoted
		case '\n', '\r':
			if !quoted {
				return ','
			}
		case ',', ';', '\t', '|':
			if !quoted {
				return r
			}
		}
	}
	return ','
}

// ReadXLSX reads the first sheet of an Excel workbook, or the sheet named
// "Cases" when present.
func ReadXLSX(path string) (*Table, error) {
	xl, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer xl.Close()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if s == casesSheet {
			sheet = s
		}
	}
	rows, err := xl.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return newTable(rows)
}

// ReadTable reads a .xlsx workbook or a delimited text file, picked by
// extension.
func ReadTable(path, encName string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, encName)
}

func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	t := &Table{Headers: make([]string, len(records[0]))}
	for i, h := range records[0] {
		t.Headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	t.Rows = records[1:]
	return t, nil
}

// Block rearranges the table into the given column order, matching
// headers case-insensitively. Columns of the table not listed are
// ignored; a listed column missing from the table is an error.
func (t *Table) Block(columns []string) ([][]string, error) {
	idx := make([]int, len(columns))
	for i, col := range columns {
		idx[i] = -1
		for j, h := range t.Headers {
			if strings.EqualFold(h, col) {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return nil, fmt.Errorf("column %q not found in table", col)
		}
	}

	out := make([][]string, len(t.Rows))
	for r, rec := range t.Rows {
		row := make([]string, len(columns))
		for i, j := range idx {
			if j < len(rec) {
				row[i] = strings.TrimSpace(rec[j])
			}
		}
		out[r] = row
	}
	return out, nil
}
