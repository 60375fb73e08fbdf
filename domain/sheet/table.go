package sheet

import (
	"fmt"
	"strings"

	"stokreport/domain/core"
)

// Letter is a spreadsheet column label. Only single letters A-Z are used.
type Letter string

// Index returns the zero-based column position of the letter
func (l Letter) Index() (int, error) {
	s := strings.ToUpper(strings.TrimSpace(string(l)))
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidLetter, string(l))
	}
	return int(s[0] - 'A'), nil
}

// Valid reports whether the letter names a column A-Z
func (l Letter) Valid() bool {
	_, err := l.Index()
	return err == nil
}

// LetterAt returns the letter for a zero-based position below 26
func LetterAt(idx int) Letter {
	return Letter(rune('A' + idx))
}

// Table is an ordered sequence of rows with a header. Every row has exactly
// ColumnCount cells.
type Table struct {
	Header []string
	Rows   [][]Value
	width  int
}

// NewTable builds a table, padding ragged rows with empty cells to the
// widest of the header and the rows.
func NewTable(header []string, rows [][]Value) *Table {
	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]Value, len(rows))
	for i, row := range rows {
		if len(row) == width {
			padded[i] = row
			continue
		}
		r := make([]Value, width)
		copy(r, row)
		padded[i] = r
	}
	return &Table{Header: header, Rows: padded, width: width}
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnCount returns the table width
func (t *Table) ColumnCount() int {
	if t == nil {
		return 0
	}
	return t.width
}

// Cell returns the value at (row, col). Positions outside the table width
// yield a zero, matching Column.
func (t *Table) Cell(row, col int) Value {
	if col < 0 || col >= t.width {
		return Number(0)
	}
	return t.Rows[row][col]
}

// Column returns the column addressed by letter, row-aligned with the table.
// A letter beyond the table width, or one that is not A-Z, yields a column
// of zeros of the same length; it is never an error.
func (t *Table) Column(l Letter) []Value {
	n := t.RowCount()
	col := make([]Value, n)
	idx, err := l.Index()
	if err != nil || idx >= t.ColumnCount() {
		for i := range col {
			col[i] = Number(0)
		}
		return col
	}
	for i := 0; i < n; i++ {
		col[i] = t.Rows[i][idx]
	}
	return col
}
