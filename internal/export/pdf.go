package export

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"vessel-sim/internal/cases"
)

const pdfFontSize = 8

// WritePDF renders the load cases as a landscape table, one column per
// case parameter plus the case number.
func WritePDF(path, title string, cs []cases.Case) error {
	headers := append([]string{"Case"}, cases.Columns...)

	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(len(headers)).
		Build()
	m := maroto.New(cfg)

	m.AddRows(text.NewRow(12, title, props.Text{
		Size:  pdfFontSize * 1.75,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))

	headerProp := props.Text{Size: pdfFontSize * 1.2, Style: fontstyle.Bold, Align: align.Center}
	cols := make([]core.Col, len(headers))
	for i, h := range headers {
		cols[i] = text.NewCol(1, h, headerProp)
	}
	m.AddRow(8, cols...)

	cellProp := props.Text{Size: pdfFontSize, Align: align.Center}
	for _, c := range cs {
		cols := []core.Col{text.NewCol(1, strconv.Itoa(c.Row+1), cellProp)}
		for _, v := range c.Values() {
			cols = append(cols, text.NewCol(1, strconv.FormatFloat(v, 'g', 6, 64), cellProp))
		}
		m.AddRow(6, cols...)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := doc.Save(path); err != nil {
		return fmt.Errorf("save pdf: %w", err)
	}
	return nil
}
