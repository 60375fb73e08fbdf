package sheet

import (
	"errors"
	"testing"

	"stokreport/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(ss ...string) []Value {
	row := make([]Value, len(ss))
	for i, s := range ss {
		row[i] = ParseCell(s)
	}
	return row
}

func TestLetterIndex(t *testing.T) {
	tests := []struct {
		letter Letter
		want   int
	}{
		{"A", 0},
		{"b", 1},
		{"M", 12},
		{" x ", 23},
		{"Z", 25},
	}
	for _, tt := range tests {
		idx, err := tt.letter.Index()
		require.NoError(t, err, "letter %q", tt.letter)
		assert.Equal(t, tt.want, idx, "letter %q", tt.letter)
	}

	for _, bad := range []Letter{"", "AA", "1", "Ä"} {
		_, err := bad.Index()
		assert.True(t, errors.Is(err, core.ErrInvalidLetter), "letter %q", bad)
		assert.False(t, bad.Valid())
	}
	assert.Equal(t, Letter("W"), LetterAt(22))
}

func TestNewTablePadsRaggedRows(t *testing.T) {
	tbl := NewTable([]string{"a", "b"}, [][]Value{texts("1"), texts("1", "2", "3")})

	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, 3, tbl.ColumnCount())
	for _, row := range tbl.Rows {
		assert.Len(t, row, 3)
	}
	assert.True(t, tbl.Rows[0][2].IsEmpty())
}

func TestColumnInRange(t *testing.T) {
	tbl := NewTable([]string{"code", "qty"}, [][]Value{texts("X1", "4"), texts("X2", "")})

	col := tbl.Column("b")
	require.Len(t, col, 2)
	assert.Equal(t, 4.0, col[0].Num)
	assert.True(t, col[1].IsEmpty())
}

func TestColumnBeyondWidthIsZeroFilled(t *testing.T) {
	tbl := NewTable([]string{"code"}, [][]Value{texts("X1"), texts("X2"), texts("X3")})

	for _, l := range []Letter{"W", "Z", "??"} {
		col := tbl.Column(l)
		require.Len(t, col, tbl.RowCount(), "letter %q", l)
		for _, v := range col {
			assert.Equal(t, KindNumber, v.Kind)
			assert.Equal(t, 0.0, v.Num)
		}
	}
}

func TestColumnOnEmptyTable(t *testing.T) {
	tbl := NewTable(nil, nil)
	assert.Empty(t, tbl.Column("A"))
	assert.Equal(t, 0, tbl.ColumnCount())
}

func TestCellOutOfWidth(t *testing.T) {
	tbl := NewTable([]string{"a"}, [][]Value{texts("v")})
	assert.Equal(t, "v", tbl.Cell(0, 0).String())
	assert.Equal(t, 0.0, tbl.Cell(0, 9).FloatOrZero())
	assert.Equal(t, KindNumber, tbl.Cell(0, 9).Kind)
}
