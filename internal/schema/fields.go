package schema

// Output field names as they appear in the template header row
const (
	FieldCustomerInvoice = "Customer Invoice"
	FieldGuessCode       = "Guess Code"
	FieldTitle           = "Title"
	FieldSeason          = "Season"
	FieldModel           = "Model"
	FieldPart            = "Part"
	FieldNOrder          = "N Order"
	FieldColorByStyle    = "Color By Style"
	FieldVNetOrder       = "V Net Order"
	FieldQOrder          = "Q Order"
	FieldProductType     = "UrunTipi"
	FieldLine            = "Line"
	FieldStock           = "Stock"
	FieldGender          = "Cinsiyet"
	FieldProductGroup    = "Ürün Grubu"
	FieldSaleCount       = "SaleCount"
	FieldEcomSaleCount   = "EcomSaleCount"
	FieldMPSaleCount     = "MPSaleCount"
)

// BreakdownKeys are the grouping dimensions of the summary breakdown, in output order
var BreakdownKeys = []string{FieldProductType, FieldLine, FieldGender, FieldGuessCode}

// BreakdownMeasures are the summed measures of the summary breakdown, in output order
var BreakdownMeasures = []string{FieldQOrder, FieldSaleCount, FieldMPSaleCount, FieldEcomSaleCount, FieldStock}
