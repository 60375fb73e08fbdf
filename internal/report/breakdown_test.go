package report

import (
	"math/rand"
	"testing"

	"stokreport/domain/sheet"
	"stokreport/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var breakdownColumns = []string{
	schema.FieldGuessCode, schema.FieldProductType, schema.FieldLine, schema.FieldGender,
	schema.FieldQOrder, schema.FieldSaleCount, schema.FieldMPSaleCount, schema.FieldEcomSaleCount, schema.FieldStock,
}

// detail builds an output table from rows in breakdownColumns order
func detail(rows ...[]string) *OutputTable {
	t := NewOutputTable(breakdownColumns, len(rows))
	for i, r := range rows {
		for j, raw := range r {
			t.Set(i, breakdownColumns[j], sheet.ParseCell(raw))
		}
	}
	return t
}

func TestBuildBreakdownDedupesAcrossReports(t *testing.T) {
	sold := detail(
		[]string{"C1", "T1", "L1", "M", "5", "10", "1", "2", "50"},
		[]string{"C1", "T1", "L1", "M", "7", "10", "1", "2", "50"},
	)
	all := detail(
		[]string{"C1", "T1", "L1", "M", "12", "10", "1", "2", "50"},
		[]string{"C2", "T1", "L1", "F", "", "3", "", "x", "8"},
	)

	rows := BuildBreakdown(sold, all)

	require.Len(t, rows, 2)
	assert.Equal(t, "C1", rows[0].Code.String())
	assert.Equal(t, 5.0, rows[0].QOrder)
	assert.Equal(t, 10.0, rows[0].SaleCount)
	assert.Equal(t, 50.0, rows[0].Stock)

	assert.Equal(t, "C2", rows[1].Code.String())
	assert.Equal(t, 0.0, rows[1].QOrder)
	assert.Equal(t, 0.0, rows[1].MPSaleCount)
	assert.Equal(t, 0.0, rows[1].EcomSaleCount)
	assert.Equal(t, 3.0, rows[1].SaleCount)
	assert.Equal(t, 8.0, rows[1].Stock)
}

func TestBuildBreakdownNumericIdentity(t *testing.T) {
	// codes read as "5" and "5.0" are the same product
	sold := detail([]string{"5", "T", "L", "G", "1", "1", "1", "1", "1"})
	all := detail([]string{"5.0", "T", "L", "G", "9", "9", "9", "9", "9"})

	rows := BuildBreakdown(sold, all)
	require.Len(t, rows, 1)
	assert.Equal(t, 1.0, rows[0].QOrder)
}

func TestBuildBreakdownSkipsEmptyKeys(t *testing.T) {
	sold := detail(
		[]string{"C1", "", "L1", "M", "1", "1", "1", "1", "1"},
		[]string{"", "T1", "L1", "M", "1", "1", "1", "1", "1"},
		[]string{"C3", "T1", "L1", "M", "1", "1", "1", "1", "1"},
	)
	rows := BuildBreakdown(sold, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, "C3", rows[0].Code.String())
}

func TestBuildBreakdownMissingColumns(t *testing.T) {
	sold := NewOutputTable([]string{"Other"}, 2)
	assert.Empty(t, BuildBreakdown(sold, sold))
}

func TestBuildBreakdownOrderStableUnderPermutation(t *testing.T) {
	base := [][]string{
		{"C1", "T1", "L1", "M", "1", "2", "3", "4", "5"},
		{"C2", "T1", "L2", "F", "6", "7", "8", "9", "10"},
		{"C3", "T2", "L1", "M", "11", "12", "13", "14", "15"},
		{"C4", "T2", "L2", "U", "0", "1", "0", "1", "0"},
	}
	totals := func(rows []BreakdownRow) map[string]BreakdownRow {
		out := map[string]BreakdownRow{}
		for _, r := range rows {
			out[r.ProductType.String()+"|"+r.Line.String()+"|"+r.Gender.String()+"|"+r.Code.String()] = r
		}
		return out
	}

	want := totals(BuildBreakdown(detail(base...), nil))
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([][]string(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, totals(BuildBreakdown(detail(shuffled...), nil)))
	}
}

func TestBuildBreakdownFirstSeenOrder(t *testing.T) {
	sold := detail(
		[]string{"B", "T", "L", "G", "1", "1", "1", "1", "1"},
		[]string{"A", "T", "L", "G", "1", "1", "1", "1", "1"},
	)
	rows := BuildBreakdown(sold, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].Code.String())
	assert.Equal(t, "A", rows[1].Code.String())
}

func TestBreakdownCells(t *testing.T) {
	r := BreakdownRow{
		ProductType: sheet.Text("T"), Line: sheet.Text("L"), Gender: sheet.Text("G"), Code: sheet.Text("C"),
		QOrder: 1, SaleCount: 2, MPSaleCount: 3, EcomSaleCount: 4, Stock: 5,
	}
	cells := r.Cells()
	require.Len(t, cells, len(BreakdownHeader()))
	assert.Equal(t, "T", cells[0].String())
	assert.Equal(t, 1.0, cells[4].Num)
	assert.Equal(t, 5.0, cells[8].Num)
	assert.Equal(t, []string{"UrunTipi", "Line", "Cinsiyet", "Guess Code", "Q Order", "SaleCount", "MPSaleCount", "EcomSaleCount", "Stock"}, BreakdownHeader())
}
