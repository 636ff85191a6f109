// Package typer classifies raw string values into XES attribute types.
//
// Classification is total: any input maps to exactly one type, falling
// back to string when nothing more specific applies. The priority order
// is boolean, int, float, date, string — fixed for output compatibility.
// A value like "1" therefore always classifies as int, never as boolean
// or as a year.
package typer

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Kind is the XES attribute type tag. Its String form is the XES
// element name used when serializing the attribute.
type Kind int

const (
	KindString Kind = iota
	KindBoolean
	KindInt
	KindFloat
	KindDate

	// KindTotal is the number of kinds defined.
	KindTotal = int(iota)
)

// String returns the XES element name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	default:
		return "string"
	}
}

// Classify determines the type of a raw value and returns the kind along
// with the canonical rendering for that kind. It never fails; inputs
// that parse as nothing more specific come back as KindString with the
// value unchanged. The empty string is a string, never attempted as a
// number or date.
func Classify(raw string) (Kind, string) {
	if raw == "" {
		return KindString, ""
	}

	if strings.EqualFold(raw, "true") {
		return KindBoolean, "true"
	}
	if strings.EqualFold(raw, "false") {
		return KindBoolean, "false"
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return KindInt, strconv.FormatInt(n, 10)
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return KindFloat, canonicalFloat(f)
	}

	if ts, err := dateparse.ParseAny(raw); err == nil {
		return KindDate, Timestamp(ts)
	}

	return KindString, raw
}

// canonicalFloat renders f so that re-classifying the result still
// yields a float: values that would print as a bare integer get a ".0"
// suffix.
func canonicalFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEaI") {
		s += ".0"
	}

	return s
}

// Timestamp renders t in the XES timestamp form: ISO-8601 in UTC with
// exactly millisecond precision and a literal "Z" suffix. Sub-millisecond
// precision is rounded, not truncated.
func Timestamp(t time.Time) string {
	return t.UTC().Round(time.Millisecond).Format("2006-01-02T15:04:05.000") + "Z"
}
