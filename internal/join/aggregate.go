package join

import (
	"stokreport/domain/sheet"
)

// AggregateTable holds per-key sums of a fixed list of source columns
type AggregateTable struct {
	columns []sheet.Letter
	sums    map[string][]float64
	keys    []string
}

// Aggregate groups table by the normalized values of keyColumn and sums each
// of sumColumns per group. Cells that do not coerce to a number count as zero.
func Aggregate(table *sheet.Table, keyColumn sheet.Letter, sumColumns ...sheet.Letter) *AggregateTable {
	keys := sheet.NormalizeColumn(table.Column(keyColumn))
	cols := make([][]sheet.Value, len(sumColumns))
	for i, l := range sumColumns {
		cols[i] = table.Column(l)
	}

	agg := &AggregateTable{
		columns: sumColumns,
		sums:    make(map[string][]float64),
	}
	for row, key := range keys {
		acc, ok := agg.sums[key]
		if !ok {
			acc = make([]float64, len(sumColumns))
			agg.sums[key] = acc
			agg.keys = append(agg.keys, key)
		}
		for i := range cols {
			acc[i] += cols[i][row].FloatOrZero()
		}
	}
	return agg
}

// Len returns the number of groups
func (a *AggregateTable) Len() int {
	return len(a.keys)
}

// Keys returns the group keys in first-seen order
func (a *AggregateTable) Keys() []string {
	return a.keys
}

// Sum returns the i-th summed column for key. An unknown key or column
// index reports false.
func (a *AggregateTable) Sum(key string, i int) (float64, bool) {
	acc, ok := a.sums[key]
	if !ok || i < 0 || i >= len(acc) {
		return 0, false
	}
	return acc[i], true
}

// Value is Sum as a cell: unknown keys yield an empty cell
func (a *AggregateTable) Value(key string, i int) sheet.Value {
	f, ok := a.Sum(key, i)
	if !ok {
		return sheet.Empty()
	}
	return sheet.Number(f)
}
