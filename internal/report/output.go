// Package report builds the tables of the stock report workbook: the two
// product detail reports and the summary breakdown.
package report

import (
	"stokreport/domain/sheet"
)

// OutputTable is a projected report. Its columns are the template header in
// template order; cells never assigned stay empty. Fields assigned outside
// the header are still held for the summary but never appear in Rows.
type OutputTable struct {
	Columns []string
	Rows    [][]sheet.Value
	index   map[string][]int
	hidden  map[string][]sheet.Value
}

// NewOutputTable allocates rowCount empty rows over columns. A header with no
// columns still carries the row count.
func NewOutputTable(columns []string, rowCount int) *OutputTable {
	t := &OutputTable{
		Columns: columns,
		Rows:    make([][]sheet.Value, rowCount),
		index:   make(map[string][]int, len(columns)),
		hidden:  make(map[string][]sheet.Value),
	}
	for i, c := range columns {
		t.index[c] = append(t.index[c], i)
	}
	for i := range t.Rows {
		t.Rows[i] = make([]sheet.Value, len(columns))
	}
	return t
}

// RowCount returns the number of rows
func (t *OutputTable) RowCount() int {
	return len(t.Rows)
}

// Set assigns v to field in row. A header that repeats a name gets the value
// in every repeated column; a field outside the header is kept hidden.
func (t *OutputTable) Set(row int, field string, v sheet.Value) {
	cols, ok := t.index[field]
	if !ok {
		col, seen := t.hidden[field]
		if !seen {
			col = make([]sheet.Value, len(t.Rows))
			t.hidden[field] = col
		}
		col[row] = v
		return
	}
	for _, c := range cols {
		t.Rows[row][c] = v
	}
}

// Get returns field of row, whether it is a column or hidden. A field never
// assigned yields an empty cell.
func (t *OutputTable) Get(row int, field string) sheet.Value {
	if cols, ok := t.index[field]; ok {
		return t.Rows[row][cols[0]]
	}
	if col, ok := t.hidden[field]; ok {
		return col[row]
	}
	return sheet.Empty()
}

// Column returns every row's value for field
func (t *OutputTable) Column(field string) []sheet.Value {
	col := make([]sheet.Value, len(t.Rows))
	for i := range t.Rows {
		col[i] = t.Get(i, field)
	}
	return col
}
