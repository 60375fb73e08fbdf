package report

import (
	"stokreport/domain/sheet"
	"stokreport/internal/schema"
)

// BreakdownRow is one (type, line, gender, code) group of the summary
type BreakdownRow struct {
	ProductType sheet.Value
	Line        sheet.Value
	Gender      sheet.Value
	Code        sheet.Value

	QOrder        float64
	SaleCount     float64
	MPSaleCount   float64
	EcomSaleCount float64
	Stock         float64
}

// BreakdownHeader returns the breakdown column names in output order
func BreakdownHeader() []string {
	h := make([]string, 0, len(schema.BreakdownKeys)+len(schema.BreakdownMeasures))
	h = append(h, schema.BreakdownKeys...)
	return append(h, schema.BreakdownMeasures...)
}

// Cells returns the row in BreakdownHeader order
func (r BreakdownRow) Cells() []sheet.Value {
	return []sheet.Value{
		r.ProductType, r.Line, r.Gender, r.Code,
		sheet.Number(r.QOrder),
		sheet.Number(r.SaleCount),
		sheet.Number(r.MPSaleCount),
		sheet.Number(r.EcomSaleCount),
		sheet.Number(r.Stock),
	}
}

func (r *BreakdownRow) add(m measures) {
	r.QOrder += m[0]
	r.SaleCount += m[1]
	r.MPSaleCount += m[2]
	r.EcomSaleCount += m[3]
	r.Stock += m[4]
}

type measures [5]float64

// identity is (code, type, line, gender), the deduplication key
type identity [4]sheet.Value

// groupKey is (type, line, gender, code), the grouping key
type groupKey [4]sheet.Value

type combinedRow struct {
	id       identity
	measures measures
}

// BuildBreakdown unions sold then all, keeps the first row of every
// (code, type, line, gender), coerces the five measures to numbers (zero on
// failure), and sums them per (type, line, gender, code) group. Groups with
// an empty key component are not emitted. Groups appear in first-seen order.
//
// The grouping step repeats the deduplication key in a different order, so
// every group holds a single row once deduplication has run; both steps are
// kept so that diverging key sets stay visible here.
func BuildBreakdown(sold, all *OutputTable) []BreakdownRow {
	deduped := dedupe(combine(sold, all))

	index := make(map[groupKey]int)
	var rows []BreakdownRow
	for _, r := range deduped {
		code, typ, line, gender := r.id[0], r.id[1], r.id[2], r.id[3]
		if typ.IsEmpty() || line.IsEmpty() || gender.IsEmpty() || code.IsEmpty() {
			continue
		}
		key := groupKey{typ, line, gender, code}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, BreakdownRow{ProductType: typ, Line: line, Gender: gender, Code: code})
		}
		rows[i].add(r.measures)
	}
	return rows
}

func combine(tables ...*OutputTable) []combinedRow {
	var out []combinedRow
	for _, t := range tables {
		if t == nil {
			continue
		}
		for row := 0; row < t.RowCount(); row++ {
			var c combinedRow
			c.id = identity{
				t.Get(row, schema.FieldGuessCode).Canonical(),
				t.Get(row, schema.FieldProductType).Canonical(),
				t.Get(row, schema.FieldLine).Canonical(),
				t.Get(row, schema.FieldGender).Canonical(),
			}
			for i, f := range schema.BreakdownMeasures {
				c.measures[i] = t.Get(row, f).FloatOrZero()
			}
			out = append(out, c)
		}
	}
	return out
}

func dedupe(rows []combinedRow) []combinedRow {
	seen := make(map[identity]struct{}, len(rows))
	out := make([]combinedRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.id]; ok {
			continue
		}
		seen[r.id] = struct{}{}
		out = append(out, r)
	}
	return out
}
