package excel

import (
	"context"
	"fmt"
	"strings"

	"stokreport/domain/sheet"
	"stokreport/internal/report"

	"github.com/xuri/excelize/v2"
)

// Summary sheet layout
const (
	summaryBreakdownTitleRow  = 15
	summaryBreakdownHeaderRow = 17
)

// WorkbookWriter renders a report into an xlsx workbook
type WorkbookWriter struct{}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

type summaryStyles struct {
	h1, h2, label, number, percent, input int
}

// Emit writes the sold-products, all-products and summary sheets and
// returns the workbook bytes
func (w *WorkbookWriter) Emit(ctx context.Context, rep *report.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), report.SheetSoldProducts); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeDetailSheet(f, report.SheetSoldProducts, rep.SoldProducts); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(report.SheetAllProducts); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := writeDetailSheet(f, report.SheetAllProducts, rep.AllProducts); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(report.SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := writeSummarySheet(f, rep.Summary); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDetailSheet(f *excelize.File, name string, table *report.OutputTable) error {
	if len(table.Columns) == 0 {
		return nil
	}
	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i, row := range table.Rows {
		if err := writeRow(f, name, 1, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, name string, col, row int, values []sheet.Value) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = cellValue(v)
	}
	if err := f.SetSheetRow(name, cell, &out); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", name, row, err)
	}
	return nil
}

func cellValue(v sheet.Value) interface{} {
	switch v.Kind {
	case sheet.KindNumber:
		return v.Num
	case sheet.KindText:
		return v.Text
	default:
		return nil
	}
}

func newSummaryStyles(f *excelize.File) (summaryStyles, error) {
	border := func(style int) []excelize.Border {
		return []excelize.Border{
			{Type: "left", Color: "000000", Style: style},
			{Type: "top", Color: "000000", Style: style},
			{Type: "right", Color: "000000", Style: style},
			{Type: "bottom", Color: "000000", Style: style},
		}
	}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
	}

	var s summaryStyles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.h1, &excelize.Style{Font: &excelize.Font{Bold: true, Color: "FFFFFF"}, Fill: fill("1F4E78"), Border: border(1)}},
		{&s.h2, &excelize.Style{Font: &excelize.Font{Bold: true}, Fill: fill("D7E4BC"), Border: border(1)}},
		{&s.label, &excelize.Style{Font: &excelize.Font{Bold: true}, Fill: fill("F2F2F2"), Border: border(1)}},
		{&s.number, &excelize.Style{NumFmt: 3, Border: border(1)}},
		{&s.percent, &excelize.Style{NumFmt: 10, Border: border(1)}},
		{&s.input, &excelize.Style{Font: &excelize.Font{Bold: true}, Fill: fill("FFF2CC"), Border: border(2)}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("failed to create style: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}

type summaryCell struct {
	ref     string
	value   interface{}
	formula string
	style   int
}

func writeSummarySheet(f *excelize.File, sum report.Summary) error {
	const name = report.SheetSummary

	st, err := newSummaryStyles(f)
	if err != nil {
		return err
	}

	cells := []summaryCell{
		// whole catalog ratio
		{ref: "A1", value: "Full Ratio", style: st.h1},
		{ref: "A2", value: "Metric", style: st.h2},
		{ref: "B2", value: "Total Value", style: st.h2},
		{ref: "A3", value: "Total Sale Count (Col M)"},
		{ref: "B3", value: sum.Static.TotalSaleCount, style: st.number},
		{ref: "A4", value: "Total Q Order (Col L)"},
		{ref: "B4", value: sum.Static.TotalQOrder, style: st.number},
		{ref: "A5", value: "Efficiency Ratio %"},
		{ref: "B5", formula: "=IF(B4=0, 0, B3/B4)", style: st.percent},

		// ratio for the line typed into the filter cell
		{ref: "D1", value: "Line Based Ratio", style: st.h1},
		{ref: "D2", value: "Metric", style: st.h2},
		{ref: "E2", value: "Dynamic Value", style: st.h2},
		{ref: "D3", value: "Line Sale Count"},
		{ref: "E3", formula: sum.Dynamic.SaleCountFormula, style: st.number},
		{ref: "D4", value: "Line Q Order"},
		{ref: "E4", formula: sum.Dynamic.QOrderFormula, style: st.number},
		{ref: "D5", value: "Efficiency Ratio %"},
		{ref: "E5", formula: sum.Dynamic.RatioFormula, style: st.percent},

		{ref: "A11", value: "Table Control", style: st.label},
		{ref: "A12", value: "Selected Line:", style: st.label},
		{ref: report.FilterCell, value: "(Type Line)", style: st.input},

		{ref: fmt.Sprintf("A%d", summaryBreakdownTitleRow), value: "Full Summary", style: st.h1},
	}

	for _, c := range cells {
		if c.formula != "" {
			if err := f.SetCellFormula(name, c.ref, strings.TrimPrefix(c.formula, "=")); err != nil {
				return fmt.Errorf("failed to write formula %s: %w", c.ref, err)
			}
		} else if err := f.SetCellValue(name, c.ref, c.value); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.ref, err)
		}
		if c.style != 0 {
			if err := f.SetCellStyle(name, c.ref, c.ref, c.style); err != nil {
				return fmt.Errorf("failed to style %s: %w", c.ref, err)
			}
		}
	}

	header := report.BreakdownHeader()
	headerCells := make([]sheet.Value, len(header))
	for i, h := range header {
		headerCells[i] = sheet.Text(h)
	}
	if err := writeRow(f, name, 1, summaryBreakdownHeaderRow, headerCells); err != nil {
		return err
	}
	for i, r := range sum.Breakdown {
		if err := writeRow(f, name, 1, summaryBreakdownHeaderRow+1+i, r.Cells()); err != nil {
			return err
		}
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 25},
		{"B", "E", 20},
		{"F", "Z", 15},
	}
	for _, w := range widths {
		if err := f.SetColWidth(name, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("failed to size columns %s:%s: %w", w.from, w.to, err)
		}
	}
	return nil
}
