package delimited

import (
	"bufio"
	"io"
	"strings"
)

// Write streams rows as delimited text. names supplies the header record
// when includeHeader is true. valuesAt is invoked once per row index in
// order; its error aborts the write immediately (already-flushed bytes are
// not rolled back).
func Write(w io.Writer, names []string, includeHeader bool, rowCount int, valuesAt func(int) ([]string, error), opts Options) error {
	o := opts.normalized()
	bw := bufio.NewWriter(w)

	if includeHeader && len(names) > 0 {
		if err := writeRecord(bw, names, o); err != nil {
			return err
		}
	}
	for i := 0; i < rowCount; i++ {
		values, err := valuesAt(i)
		if err != nil {
			return err
		}
		if err := writeRecord(bw, values, o); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRecord(w *bufio.Writer, values []string, o Options) error {
	for i, v := range values {
		if i > 0 {
			if _, err := w.WriteString(o.ColumnDelimiter); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(encodeField(v, o)); err != nil {
			return err
		}
	}
	_, err := w.WriteString(o.RowDelimiter)
	return err
}

// encodeField quotes a field when it contains dialect runes, escaping the
// quote and escape runes themselves.
func encodeField(v string, o Options) string {
	needsQuote := strings.Contains(v, o.ColumnDelimiter) ||
		strings.Contains(v, o.RowDelimiter) ||
		strings.ContainsRune(v, o.Quote) ||
		strings.ContainsRune(v, o.Escape)
	if !needsQuote {
		return v
	}

	var b strings.Builder
	b.WriteRune(o.Quote)
	for _, r := range v {
		if r == o.Quote || r == o.Escape {
			b.WriteRune(o.Escape)
		}
		b.WriteRune(r)
	}
	b.WriteRune(o.Quote)
	return b.String()
}
