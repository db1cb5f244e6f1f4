package table

import "strings"

// Locale describes the culture-dependent conventions used by the typed row
// getters. It is immutable after construction; the zero value is not valid,
// use InvariantLocale or build one explicitly.
type Locale struct {
	// DecimalSeparator is the rune separating the integral and fractional
	// parts of a number ("." for the invariant locale).
	DecimalSeparator string
	// ThousandsSeparator, if non-empty, is stripped from numbers before
	// parsing ("" for the invariant locale).
	ThousandsSeparator string
	// TimeLayouts are tried in order by GetTime. The first layout that
	// parses wins.
	TimeLayouts []string
	// TrueValues and FalseValues are the accepted boolean spellings,
	// matched case-insensitively.
	TrueValues  []string
	FalseValues []string
}

// InvariantLocale returns the culture-neutral default: "." decimal
// separator, no thousands separator, common unambiguous date layouts.
func InvariantLocale() Locale {
	return Locale{
		DecimalSeparator:   ".",
		ThousandsSeparator: "",
		TimeLayouts: []string{
			"2006-01-02T15:04:05Z07:00",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"01/02/2006 15:04:05",
			"01/02/2006",
		},
		TrueValues:  []string{"true", "1"},
		FalseValues: []string{"false", "0"},
	}
}

// normalizeNumber rewrites a raw value into strconv syntax: strips the
// thousands separator and replaces the locale decimal separator with ".".
func (l Locale) normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	if l.ThousandsSeparator != "" {
		s = strings.ReplaceAll(s, l.ThousandsSeparator, "")
	}
	if l.DecimalSeparator != "" && l.DecimalSeparator != "." {
		s = strings.ReplaceAll(s, l.DecimalSeparator, ".")
	}
	return s
}

// matchBool reports whether s matches one of the given spellings,
// case-insensitively.
func matchBool(s string, spellings []string) bool {
	for _, v := range spellings {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
