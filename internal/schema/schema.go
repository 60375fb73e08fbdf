// Package schema names which logical field lives at which column of each
// source workbook. The positions are configuration: Default mirrors the
// exports the report was built against and Load overlays a YAML file.
package schema

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"stokreport/domain/core"
	"stokreport/domain/sheet"

	"gopkg.in/yaml.v3"
)

// CurrentVersion identifies the default position table
const CurrentVersion = "2024.1"

// BarcodeSchema locates fields in the barcoded-product catalog
type BarcodeSchema struct {
	Title        sheet.Letter `yaml:"title"`
	Code         sheet.Letter `yaml:"code"`
	Color        sheet.Letter `yaml:"color"`
	ProductType  sheet.Letter `yaml:"product_type"`
	Line         sheet.Letter `yaml:"line"`
	Season       sheet.Letter `yaml:"season"`
	Gender       sheet.Letter `yaml:"gender"`
	Stock        sheet.Letter `yaml:"stock"`
	ProductGroup sheet.Letter `yaml:"product_group"`
}

// SalesSchema locates fields in the net-sales report
type SalesSchema struct {
	Key           sheet.Letter `yaml:"key"`
	SaleCount     sheet.Letter `yaml:"sale_count"`
	EcomSaleCount sheet.Letter `yaml:"ecom_sale_count"`
	MPSaleCount   sheet.Letter `yaml:"mp_sale_count"`
}

// OrdersSchema locates fields in the orders export
type OrdersSchema struct {
	Invoice    sheet.Letter `yaml:"invoice"`
	Season     sheet.Letter `yaml:"season"`
	Model      sheet.Letter `yaml:"model"`
	Part       sheet.Letter `yaml:"part"`
	Title      sheet.Letter `yaml:"title"`
	OrderCount sheet.Letter `yaml:"order_count"`
	Color      sheet.Letter `yaml:"color"`
	Code       sheet.Letter `yaml:"code"`
	NetValue   sheet.Letter `yaml:"net_value"`
	Quantity   sheet.Letter `yaml:"quantity"`

	// Columns summed per product code for the all-products report
	SumOrderCount sheet.Letter `yaml:"sum_order_count"`
	SumNetValue   sheet.Letter `yaml:"sum_net_value"`
	SumQuantity   sheet.Letter `yaml:"sum_quantity"`
}

// Schema is the full positional contract for one report run
type Schema struct {
	Version string        `yaml:"version"`
	Barcode BarcodeSchema `yaml:"barcode"`
	Sales   SalesSchema   `yaml:"sales"`
	Orders  OrdersSchema  `yaml:"orders"`
}

// Default returns the position table of the stock report exports
func Default() Schema {
	return Schema{
		Version: CurrentVersion,
		Barcode: BarcodeSchema{
			Title:        "A",
			Code:         "D",
			Color:        "J",
			ProductType:  "M",
			Line:         "N",
			Season:       "O",
			Gender:       "R",
			Stock:        "W",
			ProductGroup: "X",
		},
		Sales: SalesSchema{
			Key:           "A",
			SaleCount:     "J",
			EcomSaleCount: "K",
			MPSaleCount:   "L",
		},
		Orders: OrdersSchema{
			Invoice:       "A",
			Season:        "D",
			Model:         "G",
			Part:          "H",
			Title:         "I",
			OrderCount:    "J",
			Color:         "L",
			Code:          "M",
			NetValue:      "N",
			Quantity:      "O",
			SumOrderCount: "J",
			SumNetValue:   "N",
			SumQuantity:   "O",
		},
	}
}

// Load reads a YAML override from path on top of Default. An empty path
// returns Default unchanged.
func Load(path string) (Schema, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to read schema file: %w", err)
	}
	return Parse(data)
}

// Parse overlays YAML data on Default and validates the result. Fields
// absent from the document keep their default letters.
func Parse(data []byte) (Schema, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("%w: %v", core.ErrInvalidSchema, err)
	}
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// Validate checks that every position is a single column letter
func (s Schema) Validate() error {
	var bad []string
	for name, l := range s.letters() {
		if !l.Valid() {
			bad = append(bad, fmt.Sprintf("%s=%q", name, string(l)))
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("%w: %s", core.ErrInvalidSchema, strings.Join(bad, ", "))
	}
	return nil
}

func (s Schema) letters() map[string]sheet.Letter {
	b, sl, o := s.Barcode, s.Sales, s.Orders
	return map[string]sheet.Letter{
		"barcode.title":          b.Title,
		"barcode.code":           b.Code,
		"barcode.color":          b.Color,
		"barcode.product_type":   b.ProductType,
		"barcode.line":           b.Line,
		"barcode.season":         b.Season,
		"barcode.gender":         b.Gender,
		"barcode.stock":          b.Stock,
		"barcode.product_group":  b.ProductGroup,
		"sales.key":              sl.Key,
		"sales.sale_count":       sl.SaleCount,
		"sales.ecom_sale_count":  sl.EcomSaleCount,
		"sales.mp_sale_count":    sl.MPSaleCount,
		"orders.invoice":         o.Invoice,
		"orders.season":          o.Season,
		"orders.model":           o.Model,
		"orders.part":            o.Part,
		"orders.title":           o.Title,
		"orders.order_count":     o.OrderCount,
		"orders.color":           o.Color,
		"orders.code":            o.Code,
		"orders.net_value":       o.NetValue,
		"orders.quantity":        o.Quantity,
		"orders.sum_order_count": o.SumOrderCount,
		"orders.sum_net_value":   o.SumNetValue,
		"orders.sum_quantity":    o.SumQuantity,
	}
}
