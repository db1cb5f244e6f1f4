// Package encoding provides shared text encoding, escaping, and name
// sanitization utilities for the format writers.
package encoding

import (
	"strings"
	"unicode"
)

// EscapeXMLText escapes only the basic XML entities for text content.
func EscapeXMLText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeXMLAttr escapes text for use in XML attributes.
// Includes quote escaping in addition to basic XML entities.
func EscapeXMLAttr(s string) string {
	s = EscapeXMLText(s)
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// SanitizeXMLName transforms an arbitrary string into a valid XML element
// name. The first character must be a letter or underscore; subsequent
// characters may be letters, digits, '-', '.', or '_'. A run of invalid
// characters is collapsed into a single '_', so "1 col name!" becomes
// "_col_name_". A blank or whitespace-only name becomes "Column".
func SanitizeXMLName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Column"
	}

	var b strings.Builder
	b.Grow(len(name))
	substituted := false
	for i, r := range name {
		var valid bool
		if i == 0 {
			valid = unicode.IsLetter(r) || r == '_'
		} else {
			valid = unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' || r == '_'
		}
		if valid {
			b.WriteRune(r)
			substituted = false
			continue
		}
		if !substituted {
			b.WriteRune('_')
			substituted = true
		}
	}
	return b.String()
}

// SanitizeXMLNames sanitizes a slice of names in one pass and returns a new
// slice. The result is meant to be computed once per write and reused for
// every row.
func SanitizeXMLNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = SanitizeXMLName(n)
	}
	return out
}
