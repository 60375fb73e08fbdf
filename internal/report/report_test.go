package report

import (
	"testing"

	"stokreport/domain/sheet"
	"stokreport/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioInputs() Inputs {
	return Inputs{
		Barcode:  tableOf(barcodeRow("ABC123", "T1", "L1", "M", "50")),
		Sales:    tableOf(salesRow("abc123", "10", "4", "6")),
		Orders:   tableOf(orderRow("INV-1", "ABC123", "1", "250", "5")),
		Template: fullTemplate(),
	}
}

func TestBuildEndToEndScenario(t *testing.T) {
	rep := Build(scenarioInputs(), schema.Default())

	all := rep.AllProducts
	require.Equal(t, 1, all.RowCount())
	assert.Equal(t, "ABC123", all.Get(0, schema.FieldGuessCode).String())
	assert.Equal(t, 50.0, all.Get(0, schema.FieldStock).Num)
	assert.Equal(t, 10.0, all.Get(0, schema.FieldSaleCount).Num)
	assert.Equal(t, 1.0, all.Get(0, schema.FieldNOrder).Num)
	assert.Equal(t, 250.0, all.Get(0, schema.FieldVNetOrder).Num)
	assert.Equal(t, 5.0, all.Get(0, schema.FieldQOrder).Num)

	sold := rep.SoldProducts
	require.Equal(t, 1, sold.RowCount())
	assert.Equal(t, "INV-1", sold.Get(0, schema.FieldCustomerInvoice).String())
	assert.Equal(t, "T1", sold.Get(0, schema.FieldProductType).String())
	assert.Equal(t, "L1", sold.Get(0, schema.FieldLine).String())
	assert.Equal(t, "M", sold.Get(0, schema.FieldGender).String())
	assert.Equal(t, "Group", sold.Get(0, schema.FieldProductGroup).String())
	assert.Equal(t, 50.0, sold.Get(0, schema.FieldStock).Num)
	assert.Equal(t, 4.0, sold.Get(0, schema.FieldEcomSaleCount).Num)
	assert.Equal(t, 6.0, sold.Get(0, schema.FieldMPSaleCount).Num)

	bd := rep.Summary.Breakdown
	require.Len(t, bd, 1)
	assert.Equal(t, "T1", bd[0].ProductType.String())
	assert.Equal(t, "L1", bd[0].Line.String())
	assert.Equal(t, "M", bd[0].Gender.String())
	assert.Equal(t, "ABC123", bd[0].Code.String())
	assert.Equal(t, 50.0, bd[0].Stock)
	assert.Equal(t, 10.0, bd[0].SaleCount)
	assert.Equal(t, 5.0, bd[0].QOrder)

	assert.Equal(t, 10.0, rep.Summary.Static.TotalSaleCount)
	assert.Equal(t, 5.0, rep.Summary.Static.TotalQOrder)
	assert.Equal(t, 2.0, rep.Summary.Static.Ratio())
}

func TestDuplicateBarcodeKeyResolvesToFirstRow(t *testing.T) {
	in := Inputs{
		Barcode: tableOf(
			barcodeRow("XYZ", "FIRST", "L-A", "F", "7"),
			barcodeRow(" xyz ", "SECOND", "L-B", "M", "99"),
		),
		Sales:    tableOf(),
		Orders:   tableOf(orderRow("INV-9", "xyz", "1", "10", "2")),
		Template: fullTemplate(),
	}
	rep := Build(in, schema.Default())

	sold := rep.SoldProducts
	require.Equal(t, 1, sold.RowCount())
	assert.Equal(t, "FIRST", sold.Get(0, schema.FieldProductType).String())
	assert.Equal(t, "L-A", sold.Get(0, schema.FieldLine).String())
	assert.Equal(t, "F", sold.Get(0, schema.FieldGender).String())
	assert.Equal(t, 7.0, sold.Get(0, schema.FieldStock).Num)

	// both catalog rows are listed, and both receive the same per-code order sums
	all := rep.AllProducts
	require.Equal(t, 2, all.RowCount())
	assert.Equal(t, 2.0, all.Get(0, schema.FieldQOrder).Num)
	assert.Equal(t, 2.0, all.Get(1, schema.FieldQOrder).Num)
}

func TestEmptyTemplateKeepsRowCounts(t *testing.T) {
	in := scenarioInputs()
	in.Orders = tableOf(
		orderRow("INV-1", "ABC123", "1", "1", "1"),
		orderRow("INV-2", "ABC123", "1", "1", "1"),
		orderRow("INV-3", "OTHER", "1", "1", "1"),
	)
	in.Template = sheet.NewTable(nil, nil)

	rep := Build(in, schema.Default())

	assert.Empty(t, rep.SoldProducts.Columns)
	assert.Equal(t, 3, rep.SoldProducts.RowCount())
	assert.Empty(t, rep.AllProducts.Columns)
	assert.Equal(t, 1, rep.AllProducts.RowCount())

	// the summary still sees every mapped field
	require.Len(t, rep.Summary.Breakdown, 1)
	assert.Equal(t, "ABC123", rep.Summary.Breakdown[0].Code.String())
	assert.Equal(t, 1.0, rep.Summary.Breakdown[0].QOrder)
	assert.Equal(t, 50.0, rep.Summary.Breakdown[0].Stock)
	assert.Equal(t, 2.0, rep.Summary.Static.TotalQOrder)
	assert.Equal(t, 10.0, rep.Summary.Static.TotalSaleCount)
}

func TestTemplateWithoutGroupingFields(t *testing.T) {
	in := scenarioInputs()
	in.Template = sheet.NewTable([]string{schema.FieldGuessCode, schema.FieldStock}, nil)

	rep := Build(in, schema.Default())

	assert.Equal(t, []string{schema.FieldGuessCode, schema.FieldStock}, rep.AllProducts.Columns)
	require.Len(t, rep.AllProducts.Rows, 1)
	assert.Len(t, rep.AllProducts.Rows[0], 2)

	require.Len(t, rep.Summary.Breakdown, 1)
	row := rep.Summary.Breakdown[0]
	assert.Equal(t, "T1", row.ProductType.String())
	assert.Equal(t, "L1", row.Line.String())
	assert.Equal(t, "M", row.Gender.String())
	assert.Equal(t, 5.0, row.QOrder)
	assert.Equal(t, 10.0, row.SaleCount)
	assert.Equal(t, 2.0, rep.Summary.Static.Ratio())
}

func TestNilTemplateHasNoColumns(t *testing.T) {
	assert.Nil(t, Inputs{}.Columns())
}

func TestUnmatchedLookupsStayEmpty(t *testing.T) {
	in := scenarioInputs()
	in.Orders = tableOf(orderRow("INV-7", "UNKNOWN", "1", "5", "3"))
	rep := Build(in, schema.Default())

	sold := rep.SoldProducts
	assert.True(t, sold.Get(0, schema.FieldProductType).IsEmpty())
	assert.True(t, sold.Get(0, schema.FieldStock).IsEmpty())
	assert.True(t, sold.Get(0, schema.FieldSaleCount).IsEmpty())

	// the catalog product has no orders now
	all := rep.AllProducts
	assert.True(t, all.Get(0, schema.FieldQOrder).IsEmpty())

	// the unmatched order has no type, so only the catalog group remains
	require.Len(t, rep.Summary.Breakdown, 1)
	assert.Equal(t, "ABC123", rep.Summary.Breakdown[0].Code.String())
	assert.Equal(t, 0.0, rep.Summary.Breakdown[0].QOrder)
}

func TestColumnsSkipBlankHeaders(t *testing.T) {
	in := Inputs{Template: sheet.NewTable([]string{"Guess Code", "", "Stock"}, nil)}
	assert.Equal(t, []string{"Guess Code", "Stock"}, in.Columns())
}
