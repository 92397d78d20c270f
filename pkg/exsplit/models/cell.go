// Package models defines data structures for spreadsheet splitting.
package models

import (
	"math"
	"strconv"
	"strings"
)

// ScalarKind tags the dynamic type held by a Scalar.
type ScalarKind uint8

const (
	// KindMissing marks an empty cell.
	KindMissing ScalarKind = iota
	// KindNumber marks a numeric cell.
	KindNumber
	// KindText marks a text cell (including booleans and error literals).
	KindText
)

// Scalar is a single cell value: a number, a string, or missing.
// The zero value is Missing.
type Scalar struct {
	kind ScalarKind
	num  float64
	text string
}

// Number returns a numeric Scalar.
func Number(v float64) Scalar {
	return Scalar{kind: KindNumber, num: v}
}

// Text returns a text Scalar.
func Text(s string) Scalar {
	return Scalar{kind: KindText, text: s}
}

// Missing returns an empty Scalar.
func Missing() Scalar {
	return Scalar{}
}

// Kind reports the tag of the value.
func (s Scalar) Kind() ScalarKind {
	return s.kind
}

// IsMissing reports whether the cell is empty.
func (s Scalar) IsMissing() bool {
	return s.kind == KindMissing
}

// Float coerces the value to a float64.
// Text is parsed after trimming surrounding whitespace; Missing and
// unparsable text report ok == false.
func (s Scalar) Float() (float64, bool) {
	switch s.kind {
	case KindNumber:
		return s.num, true
	case KindText:
		v, err := strconv.ParseFloat(strings.TrimSpace(s.text), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// String stringifies the value. Missing becomes the empty string and
// integral numbers are printed without a fractional part.
func (s Scalar) String() string {
	switch s.kind {
	case KindNumber:
		return formatNumber(s.num)
	case KindText:
		return s.text
	default:
		return ""
	}
}

// Value returns the value in the form a workbook writer expects:
// float64 or int64 for numbers, string for text, nil for missing.
func (s Scalar) Value() interface{} {
	switch s.kind {
	case KindNumber:
		if isIntegral(s.num) {
			return int64(s.num)
		}
		return s.num
	case KindText:
		return s.text
	default:
		return nil
	}
}

func formatNumber(v float64) string {
	if isIntegral(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// isIntegral is limited to the range where float64 holds every integer exactly.
func isIntegral(v float64) bool {
	return v == math.Trunc(v) && math.Abs(v) < 1<<53
}
