package sheet

import "strings"

// NormalizeKey canonicalizes a join key: text form, surrounding whitespace
// removed, upper-cased. It is total and idempotent.
func NormalizeKey(v Value) string {
	return strings.ToUpper(strings.TrimSpace(v.String()))
}

// NormalizeColumn applies NormalizeKey to every cell of a column
func NormalizeColumn(col []Value) []string {
	keys := make([]string, len(col))
	for i, v := range col {
		keys[i] = NormalizeKey(v)
	}
	return keys
}
