package report

import (
	"stokreport/domain/sheet"
	"stokreport/internal/schema"
)

// cells builds a row from letter-addressed raw cell text
func cells(byLetter map[sheet.Letter]string) []sheet.Value {
	width := 0
	for l := range byLetter {
		idx, _ := l.Index()
		if idx+1 > width {
			width = idx + 1
		}
	}
	row := make([]sheet.Value, width)
	for l, raw := range byLetter {
		idx, _ := l.Index()
		row[idx] = sheet.ParseCell(raw)
	}
	return row
}

func tableOf(rows ...map[sheet.Letter]string) *sheet.Table {
	vals := make([][]sheet.Value, len(rows))
	for i, r := range rows {
		vals[i] = cells(r)
	}
	return sheet.NewTable(nil, vals)
}

func fullTemplate() *sheet.Table {
	return sheet.NewTable([]string{
		schema.FieldCustomerInvoice, schema.FieldGuessCode, schema.FieldTitle, schema.FieldSeason,
		schema.FieldModel, schema.FieldPart, schema.FieldNOrder, schema.FieldColorByStyle,
		schema.FieldVNetOrder, schema.FieldQOrder, schema.FieldProductType, schema.FieldLine,
		schema.FieldStock, schema.FieldGender, schema.FieldProductGroup, schema.FieldSaleCount,
		schema.FieldEcomSaleCount, schema.FieldMPSaleCount,
	}, nil)
}

func barcodeRow(code, typ, line, gender, stock string) map[sheet.Letter]string {
	return map[sheet.Letter]string{
		"A": "Title " + code, "D": code, "J": "Black", "M": typ, "N": line,
		"O": "SS24", "R": gender, "W": stock, "X": "Group",
	}
}

func salesRow(key, sale, ecom, mp string) map[sheet.Letter]string {
	return map[sheet.Letter]string{"A": key, "J": sale, "K": ecom, "L": mp}
}

func orderRow(invoice, code, count, net, qty string) map[sheet.Letter]string {
	return map[sheet.Letter]string{
		"A": invoice, "D": "SS24", "G": "Model", "H": "Part", "I": "Title " + code,
		"J": count, "L": "Black", "M": code, "N": net, "O": qty,
	}
}
