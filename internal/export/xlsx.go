package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"vessel-sim/internal/cases"
	"vessel-sim/internal/params"
)

const (
	casesSheet  = "Cases"
	paramsSheet = "Parameters"
)

// WriteXLSX writes the load cases and the batch parameters to an Excel
// workbook with a "Cases" and a "Parameters" sheet. The file is
// overwritten.
func WriteXLSX(path string, p *params.BatchParams, cs []cases.Case) error {
	xl := excelize.NewFile()
	defer xl.Close()

	if err := xl.SetSheetName("Sheet1", casesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	headers := append([]string{"Case"}, cases.Columns...)
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := xl.SetCellStr(casesSheet, cell, h); err != nil {
			return fmt.Errorf("write header %q: %w", h, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := xl.SetCellStyle(casesSheet, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for r, c := range cs {
		row := append([]any{c.Row + 1}, toAny(c.Values())...)
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := xl.SetSheetRow(casesSheet, cell, &row); err != nil {
			return fmt.Errorf("write case %d: %w", c.Row+1, err)
		}
	}

	if _, err := xl.NewSheet(paramsSheet); err != nil {
		return fmt.Errorf("create parameters sheet: %w", err)
	}
	for i, f := range p.Fields() {
		row := []any{f.Label, f.Value(), f.Unit}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := xl.SetSheetRow(paramsSheet, cell, &row); err != nil {
			return fmt.Errorf("write parameter %q: %w", f.Key, err)
		}
	}

	if err := xl.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func toAny(vs []float64) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
