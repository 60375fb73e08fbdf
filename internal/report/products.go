package report

import (
	"stokreport/domain/sheet"
	"stokreport/internal/join"
	"stokreport/internal/schema"
)

// Inputs are the four source tables of one run. Only the template's header
// is used.
type Inputs struct {
	Barcode  *sheet.Table
	Sales    *sheet.Table
	Orders   *sheet.Table
	Template *sheet.Table
}

// Columns returns the output header declared by the template, skipping
// blank header cells
func (in Inputs) Columns() []string {
	if in.Template == nil {
		return nil
	}
	columns := make([]string, 0, len(in.Template.Header))
	for _, h := range in.Template.Header {
		if h != "" {
			columns = append(columns, h)
		}
	}
	return columns
}

// Lookups are the key-indexed views shared by both product reports
type Lookups struct {
	Barcode *join.LookupTable
	Sales   *join.LookupTable
	Orders  *join.AggregateTable
}

// Order aggregate sum positions
const (
	sumOrderCount = iota
	sumNetValue
	sumQuantity
)

// BuildLookups indexes the barcode table by product code, the sales table by
// its key, and sums the orders per product code.
func BuildLookups(in Inputs, s schema.Schema) Lookups {
	return Lookups{
		Barcode: join.BuildLookup(in.Barcode, s.Barcode.Code),
		Sales:   join.BuildLookup(in.Sales, s.Sales.Key),
		Orders:  join.Aggregate(in.Orders, s.Orders.Code, s.Orders.SumOrderCount, s.Orders.SumNetValue, s.Orders.SumQuantity),
	}
}

func salesFields(lk Lookups, s schema.Schema) []FieldMapping {
	return []FieldMapping{
		{schema.FieldSaleCount, LookedUp(lk.Sales, s.Sales.SaleCount)},
		{schema.FieldEcomSaleCount, LookedUp(lk.Sales, s.Sales.EcomSaleCount)},
		{schema.FieldMPSaleCount, LookedUp(lk.Sales, s.Sales.MPSaleCount)},
	}
}

// SoldProducts projects one row per order line, enriched with catalog
// attributes and sale counts looked up by product code.
func SoldProducts(in Inputs, lk Lookups, s schema.Schema) *OutputTable {
	o, b := s.Orders, s.Barcode
	fields := []FieldMapping{
		{schema.FieldCustomerInvoice, Direct(o.Invoice)},
		{schema.FieldGuessCode, Direct(o.Code)},
		{schema.FieldTitle, Direct(o.Title)},
		{schema.FieldSeason, Direct(o.Season)},
		{schema.FieldModel, Direct(o.Model)},
		{schema.FieldPart, Direct(o.Part)},
		{schema.FieldNOrder, Direct(o.OrderCount)},
		{schema.FieldColorByStyle, Direct(o.Color)},
		{schema.FieldVNetOrder, Direct(o.NetValue)},
		{schema.FieldQOrder, Direct(o.Quantity)},
		{schema.FieldProductType, LookedUp(lk.Barcode, b.ProductType)},
		{schema.FieldLine, LookedUp(lk.Barcode, b.Line)},
		{schema.FieldStock, LookedUp(lk.Barcode, b.Stock)},
		{schema.FieldGender, LookedUp(lk.Barcode, b.Gender)},
		{schema.FieldProductGroup, LookedUp(lk.Barcode, b.ProductGroup)},
	}
	fields = append(fields, salesFields(lk, s)...)

	return Project(in.Columns(), Projection{
		Source:    in.Orders,
		KeyColumn: o.Code,
		Fields:    fields,
	})
}

// AllProducts projects one row per catalog entry with sale counts and the
// per-code order sums.
func AllProducts(in Inputs, lk Lookups, s schema.Schema) *OutputTable {
	b := s.Barcode
	fields := []FieldMapping{
		{schema.FieldGuessCode, Direct(b.Code)},
		{schema.FieldTitle, Direct(b.Title)},
		{schema.FieldProductType, Direct(b.ProductType)},
		{schema.FieldLine, Direct(b.Line)},
		{schema.FieldStock, Direct(b.Stock)},
		{schema.FieldGender, Direct(b.Gender)},
		{schema.FieldProductGroup, Direct(b.ProductGroup)},
		{schema.FieldSeason, Direct(b.Season)},
		{schema.FieldColorByStyle, Direct(b.Color)},
	}
	fields = append(fields, salesFields(lk, s)...)
	fields = append(fields,
		FieldMapping{schema.FieldNOrder, Aggregated(lk.Orders, sumOrderCount)},
		FieldMapping{schema.FieldVNetOrder, Aggregated(lk.Orders, sumNetValue)},
		FieldMapping{schema.FieldQOrder, Aggregated(lk.Orders, sumQuantity)},
	)

	return Project(in.Columns(), Projection{
		Source:    in.Barcode,
		KeyColumn: b.Code,
		Fields:    fields,
	})
}
