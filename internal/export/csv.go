package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"vessel-sim/internal/cases"
)

var csvMetaHeaders = []string{
	"date",
	"time",
	"vessel",
	"case",
}

func csvHeaders() []string {
	return append(append([]string(nil), csvMetaHeaders...), cases.Columns...)
}

// WriteCSV writes load cases to a CSV file (semicolon-separated), creating
// it with headers if it doesn't exist, or appending rows if it does. Every
// row is stamped with the export time and vessel so appended case sets stay
// distinguishable.
func WriteCSV(path, vessel string, cs []cases.Case, ts time.Time) error {
	exists := fileExists(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if !exists {
		if err := w.Write(csvHeaders()); err != nil {
			return fmt.Errorf("write csv headers: %w", err)
		}
	}

	for _, c := range cs {
		row := []string{
			ts.Format("02.01.2006"),
			ts.Format("15:04:05"),
			vessel,
			strconv.Itoa(c.Row + 1),
		}
		for _, v := range c.Values() {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
