// Package sheet models the loosely-typed tabular inputs the report is built from.
package sheet

import (
	"math"
	"strconv"
	"strings"
)

// Kind distinguishes the three shapes a cell can take
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
)

// Value is a single cell. Numeric cells keep the text they were read from so
// that keys such as "00123" survive normalization unchanged.
type Value struct {
	Kind Kind
	Text string
	Num  float64
}

// Empty returns the missing-cell value
func Empty() Value { return Value{} }

// Text returns a text cell
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Number returns a numeric cell rendered in its shortest form
func Number(f float64) Value {
	return Value{Kind: KindNumber, Text: strconv.FormatFloat(f, 'f', -1, 64), Num: f}
}

// ParseCell classifies raw cell text as read from a workbook or CSV file
func ParseCell(raw string) Value {
	if raw == "" {
		return Empty()
	}
	if f, ok := parseNumber(raw); ok {
		return Value{Kind: KindNumber, Text: raw, Num: f}
	}
	return Text(raw)
}

// IsEmpty reports whether the cell is missing
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// String returns the cell's text representation; empty cells render as ""
func (v Value) String() string { return v.Text }

// Float coerces the cell to a number. Empty cells and text that does not
// parse report false.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindText:
		return parseNumber(v.Text)
	default:
		return 0, false
	}
}

// FloatOrZero coerces the cell to a number, substituting zero on failure
func (v Value) FloatOrZero() float64 {
	f, ok := v.Float()
	if !ok {
		return 0
	}
	return f
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Canonical returns the value in the form used for equality: numeric cells
// compare by number rather than by the text they were read from.
func (v Value) Canonical() Value {
	if v.Kind == KindNumber {
		return Number(v.Num)
	}
	return v
}
