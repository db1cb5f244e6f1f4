// Package delimited implements the reader and writer for delimited text
// (CSV and friends). The full dialect is configurable: column and row
// delimiters, quotation rune, and escape rune. The standard library's
// encoding/csv cannot honor this dialect surface (fixed quote handling,
// newline-only records), so tokenization is done here.
package delimited

import (
	"strings"
)

// Options describes a delimited-text dialect. The zero value is not useful;
// use DefaultOptions and override fields as needed. Options are read-only
// after construction.
type Options struct {
	// ColumnDelimiter separates fields within a record. Default ",".
	ColumnDelimiter string
	// RowDelimiter separates records. Default "\r\n".
	RowDelimiter string
	// Quote wraps fields containing delimiters. Default '"'.
	Quote rune
	// Escape prefixes a quote or escape rune inside a quoted field.
	// Default '\\'.
	Escape rune
}

// DefaultOptions returns the invariant CSV dialect.
func DefaultOptions() Options {
	return Options{
		ColumnDelimiter: ",",
		RowDelimiter:    "\r\n",
		Quote:           '"',
		Escape:          '\\',
	}
}

// normalized fills in defaults for unset fields so partially-populated
// option structs behave sensibly.
func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.ColumnDelimiter == "" {
		o.ColumnDelimiter = d.ColumnDelimiter
	}
	if o.RowDelimiter == "" {
		o.RowDelimiter = d.RowDelimiter
	}
	if o.Quote == 0 {
		o.Quote = d.Quote
	}
	if o.Escape == 0 {
		o.Escape = d.Escape
	}
	return o
}

// tokenize splits the whole source into records of fields honoring the
// dialect. Quoted fields may contain both delimiters; inside a quoted field
// the escape rune protects the quote and escape runes themselves. Outside
// quotes the escape rune is an ordinary character. An empty source yields
// zero records.
func tokenize(src string, o Options) [][]string {
	if src == "" {
		return nil
	}

	var (
		records  [][]string
		fields   []string
		field    strings.Builder
		inQuote  bool
		runes    = []rune(src)
		colDelim = []rune(o.ColumnDelimiter)
		rowDelim = []rune(o.RowDelimiter)
	)

	matches := func(i int, delim []rune) bool {
		if i+len(delim) > len(runes) {
			return false
		}
		for j, r := range delim {
			if runes[i+j] != r {
				return false
			}
		}
		return true
	}

	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
	}
	endRecord := func() {
		endField()
		records = append(records, fields)
		fields = nil
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case inQuote && r == o.Escape && i+1 < len(runes):
			field.WriteRune(runes[i+1])
			i += 2
		case r == o.Quote:
			inQuote = !inQuote
			i++
		case !inQuote && matches(i, rowDelim):
			endRecord()
			i += len(rowDelim)
		case !inQuote && matches(i, colDelim):
			endField()
			i += len(colDelim)
		default:
			field.WriteRune(r)
			i++
		}
	}
	endRecord()

	return records
}
