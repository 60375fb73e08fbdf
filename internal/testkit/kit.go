// Package testkit builds in-memory source workbooks for tests and demos.
package testkit

import (
	"fmt"

	"stokreport/domain/sheet"
	"stokreport/internal/schema"

	"github.com/xuri/excelize/v2"
)

// Product is one catalog row
type Product struct {
	Code   string
	Title  string
	Type   string
	Line   string
	Gender string
	Stock  float64
	Season string
	Color  string
	Group  string
}

// Sale is one net-sales row
type Sale struct {
	Key       string
	SaleCount float64
	Ecom      float64
	MP        float64
}

// Order is one order line
type Order struct {
	Invoice  string
	Code     string
	Count    float64
	NetValue float64
	Quantity float64
}

// Fixtures describes the four inputs of a run
type Fixtures struct {
	Schema   schema.Schema
	Products []Product
	Sales    []Sale
	Orders   []Order
	Template []string
}

// DefaultTemplate returns the template header used by the stock report
func DefaultTemplate() []string {
	return []string{
		schema.FieldCustomerInvoice, schema.FieldGuessCode, schema.FieldTitle, schema.FieldSeason,
		schema.FieldModel, schema.FieldPart, schema.FieldNOrder, schema.FieldColorByStyle,
		schema.FieldVNetOrder, schema.FieldQOrder, schema.FieldProductType, schema.FieldLine,
		schema.FieldStock, schema.FieldGender, schema.FieldProductGroup, schema.FieldSaleCount,
		schema.FieldEcomSaleCount, schema.FieldMPSaleCount,
	}
}

// NewFixtures returns the single-product scenario: ABC123 with stock 50,
// ten sales recorded under a lower-case key and one order of five units.
func NewFixtures() Fixtures {
	return Fixtures{
		Schema: schema.Default(),
		Products: []Product{
			{Code: "ABC123", Title: "Basic Tee", Type: "T1", Line: "L1", Gender: "M", Stock: 50, Season: "SS24", Color: "Black", Group: "Tops"},
		},
		Sales: []Sale{
			{Key: "abc123", SaleCount: 10, Ecom: 4, MP: 6},
		},
		Orders: []Order{
			{Invoice: "INV-1", Code: "ABC123", Count: 1, NetValue: 250, Quantity: 5},
		},
		Template: DefaultTemplate(),
	}
}

// BarcodeWorkbook renders the catalog
func (fx Fixtures) BarcodeWorkbook() ([]byte, error) {
	b := fx.Schema.Barcode
	rows := make([]map[sheet.Letter]interface{}, len(fx.Products))
	for i, p := range fx.Products {
		rows[i] = map[sheet.Letter]interface{}{
			b.Title: p.Title, b.Code: p.Code, b.Color: p.Color, b.ProductType: p.Type,
			b.Line: p.Line, b.Season: p.Season, b.Gender: p.Gender, b.Stock: p.Stock,
			b.ProductGroup: p.Group,
		}
	}
	return Workbook(rows)
}

// SalesWorkbook renders the net-sales report
func (fx Fixtures) SalesWorkbook() ([]byte, error) {
	s := fx.Schema.Sales
	rows := make([]map[sheet.Letter]interface{}, len(fx.Sales))
	for i, sl := range fx.Sales {
		rows[i] = map[sheet.Letter]interface{}{
			s.Key: sl.Key, s.SaleCount: sl.SaleCount, s.EcomSaleCount: sl.Ecom, s.MPSaleCount: sl.MP,
		}
	}
	return Workbook(rows)
}

// OrdersWorkbook renders the orders export
func (fx Fixtures) OrdersWorkbook() ([]byte, error) {
	o := fx.Schema.Orders
	rows := make([]map[sheet.Letter]interface{}, len(fx.Orders))
	for i, ord := range fx.Orders {
		rows[i] = map[sheet.Letter]interface{}{
			o.Invoice: ord.Invoice, o.Season: "SS24", o.Model: "M-" + ord.Code, o.Part: "P1",
			o.Title: "Title " + ord.Code, o.OrderCount: ord.Count, o.Color: "Black",
			o.Code: ord.Code, o.NetValue: ord.NetValue, o.Quantity: ord.Quantity,
		}
	}
	return Workbook(rows)
}

// TemplateWorkbook renders a header-only template
func (fx Fixtures) TemplateWorkbook() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	header := make([]interface{}, len(fx.Template))
	for i, h := range fx.Template {
		header[i] = h
	}
	if len(header) > 0 {
		if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
			return nil, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Workbook writes rows addressed by column letter under a generated
// "Col A", "Col B", ... header wide enough for every row
func Workbook(rows []map[sheet.Letter]interface{}) ([]byte, error) {
	width := 1
	for _, r := range rows {
		for l := range r {
			idx, err := l.Index()
			if err != nil {
				return nil, err
			}
			if idx+1 > width {
				width = idx + 1
			}
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, width)
	for i := range header {
		header[i] = fmt.Sprintf("Col %s", sheet.LetterAt(i))
	}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		return nil, err
	}
	for i, r := range rows {
		out := make([]interface{}, width)
		for l, v := range r {
			idx, _ := l.Index()
			out[idx] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow("Sheet1", cell, &out); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
