package report

import (
	"stokreport/domain/sheet"
	"stokreport/internal/join"
)

// FieldSource produces one output column, row-aligned with the driving table
type FieldSource interface {
	resolve(src *sheet.Table, keys []string) []sheet.Value
}

// Direct copies column col of the driving table verbatim
func Direct(col sheet.Letter) FieldSource {
	return directSource{col: col}
}

// LookedUp resolves each row's key in lk and takes column col of the match
func LookedUp(lk *join.LookupTable, col sheet.Letter) FieldSource {
	return lookupSource{lk: lk, col: col}
}

// Aggregated resolves each row's key in agg and takes its i-th sum
func Aggregated(agg *join.AggregateTable, i int) FieldSource {
	return aggregateSource{agg: agg, i: i}
}

type directSource struct {
	col sheet.Letter
}

func (d directSource) resolve(src *sheet.Table, _ []string) []sheet.Value {
	return src.Column(d.col)
}

type lookupSource struct {
	lk  *join.LookupTable
	col sheet.Letter
}

func (l lookupSource) resolve(_ *sheet.Table, keys []string) []sheet.Value {
	out := make([]sheet.Value, len(keys))
	for i, k := range keys {
		out[i] = l.lk.Value(k, l.col)
	}
	return out
}

type aggregateSource struct {
	agg *join.AggregateTable
	i   int
}

func (a aggregateSource) resolve(_ *sheet.Table, keys []string) []sheet.Value {
	out := make([]sheet.Value, len(keys))
	for i, k := range keys {
		out[i] = a.agg.Value(k, a.i)
	}
	return out
}

// FieldMapping binds an output field name to its source
type FieldMapping struct {
	Field  string
	Source FieldSource
}

// Projection drives one output table from a source table. KeyColumn is
// normalized per row and used by looked-up and aggregated fields.
type Projection struct {
	Source    *sheet.Table
	KeyColumn sheet.Letter
	Fields    []FieldMapping
}

// Project builds an output table over columns with one row per source row.
// Every mapped field is resolved; those missing from columns stay hidden.
func Project(columns []string, p Projection) *OutputTable {
	out := NewOutputTable(columns, p.Source.RowCount())
	keys := sheet.NormalizeColumn(p.Source.Column(p.KeyColumn))
	for _, m := range p.Fields {
		for row, v := range m.Source.resolve(p.Source, keys) {
			out.Set(row, m.Field, v)
		}
	}
	return out
}
