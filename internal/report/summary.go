package report

import (
	"fmt"
	"strings"

	"stokreport/internal/schema"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/floats"
)

// Sheet names of the output workbook
const (
	SheetSoldProducts = "Satılmış Ürün Raporu"
	SheetAllProducts  = "Tüm Ürün Raporu"
	SheetSummary      = "Özet"
)

// FilterCell is the summary cell holding the free-text line filter
const FilterCell = "B12"

// Column letters the dynamic ratio falls back to when the template does not
// declare the field
const (
	defaultSaleCountColumn = "M"
	defaultQOrderColumn    = "L"
	defaultLineColumn      = "Q"
)

// StaticRatio holds the whole-catalog totals of the summary sheet
type StaticRatio struct {
	TotalSaleCount float64
	TotalQOrder    float64
}

// Ratio returns sale count over ordered quantity, zero when nothing was ordered
func (r StaticRatio) Ratio() float64 {
	if r.TotalQOrder == 0 {
		return 0
	}
	return r.TotalSaleCount / r.TotalQOrder
}

// DynamicRatio holds the formula text of the line-filtered ratio block. The
// formulas are written verbatim and evaluated by the spreadsheet.
type DynamicRatio struct {
	SaleCountFormula string
	QOrderFormula    string
	RatioFormula     string
}

// Summary is everything the summary sheet shows
type Summary struct {
	Static    StaticRatio
	Dynamic   DynamicRatio
	Breakdown []BreakdownRow
}

// ComputeStaticRatio totals SaleCount and Q Order over the all-products
// report. Cells that are not numbers are skipped.
func ComputeStaticRatio(all *OutputTable) StaticRatio {
	return StaticRatio{
		TotalSaleCount: floats.Sum(numericValues(all, schema.FieldSaleCount)),
		TotalQOrder:    floats.Sum(numericValues(all, schema.FieldQOrder)),
	}
}

func numericValues(t *OutputTable, field string) []float64 {
	var out []float64
	for _, v := range t.Column(field) {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// DynamicRatioFormulas builds the SUMIFS formulas over sheetName. Column
// letters follow the position of SaleCount, Q Order and Line in columns.
func DynamicRatioFormulas(sheetName string, columns []string, filterCell string) DynamicRatio {
	ref := func(col string) string {
		return fmt.Sprintf("'%s'!%s:%s", strings.ReplaceAll(sheetName, "'", "''"), col, col)
	}
	sale := columnLetter(columns, schema.FieldSaleCount, defaultSaleCountColumn)
	qOrder := columnLetter(columns, schema.FieldQOrder, defaultQOrderColumn)
	line := columnLetter(columns, schema.FieldLine, defaultLineColumn)

	return DynamicRatio{
		SaleCountFormula: fmt.Sprintf("=SUMIFS(%s, %s, %s)", ref(sale), ref(line), filterCell),
		QOrderFormula:    fmt.Sprintf("=SUMIFS(%s, %s, %s)", ref(qOrder), ref(line), filterCell),
		RatioFormula:     "=IF(E4=0, 0, E3/E4)",
	}
}

func columnLetter(columns []string, field, fallback string) string {
	for i, c := range columns {
		if c != field {
			continue
		}
		if name, err := excelize.ColumnNumberToName(i + 1); err == nil {
			return name
		}
	}
	return fallback
}

// BuildSummary assembles the summary sheet content
func BuildSummary(sold, all *OutputTable) Summary {
	return Summary{
		Static:    ComputeStaticRatio(all),
		Dynamic:   DynamicRatioFormulas(SheetAllProducts, all.Columns, FilterCell),
		Breakdown: BuildBreakdown(sold, all),
	}
}

// Report is the complete content of one output workbook
type Report struct {
	SoldProducts *OutputTable
	AllProducts  *OutputTable
	Summary      Summary
}

// Build runs the projections, breakdown and summary over in
func Build(in Inputs, s schema.Schema) *Report {
	lk := BuildLookups(in, s)
	sold := SoldProducts(in, lk, s)
	all := AllProducts(in, lk, s)
	return &Report{
		SoldProducts: sold,
		AllProducts:  all,
		Summary:      BuildSummary(sold, all),
	}
}
