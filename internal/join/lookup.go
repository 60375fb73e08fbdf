// Package join builds the key-indexed views the report projections read from.
package join

import (
	"stokreport/domain/sheet"
)

// LookupTable maps a normalized key to exactly one source row. When several
// rows share a key the first one in source order is kept.
type LookupTable struct {
	source *sheet.Table
	index  map[string]int
	keys   []string
}

// BuildLookup indexes table by the normalized values of keyColumn
func BuildLookup(table *sheet.Table, keyColumn sheet.Letter) *LookupTable {
	keys := sheet.NormalizeColumn(table.Column(keyColumn))
	lk := &LookupTable{
		source: table,
		index:  make(map[string]int, len(keys)),
	}
	for row, key := range keys {
		if _, seen := lk.index[key]; seen {
			continue
		}
		lk.index[key] = row
		lk.keys = append(lk.keys, key)
	}
	return lk
}

// Len returns the number of distinct keys
func (lk *LookupTable) Len() int {
	return len(lk.keys)
}

// Keys returns the distinct keys in first-seen order
func (lk *LookupTable) Keys() []string {
	return lk.keys
}

// Row returns the source row index held for key
func (lk *LookupTable) Row(key string) (int, bool) {
	row, ok := lk.index[key]
	return row, ok
}

// Value returns column col of the row held for key. An unmatched key yields
// an empty cell; a column beyond the source width yields zero.
func (lk *LookupTable) Value(key string, col sheet.Letter) sheet.Value {
	row, ok := lk.index[key]
	if !ok {
		return sheet.Empty()
	}
	idx, err := col.Index()
	if err != nil {
		return sheet.Number(0)
	}
	return lk.source.Cell(row, idx)
}
