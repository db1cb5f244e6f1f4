package delimited

import (
	"context"

	"github.com/FocuswithJustin/tabular/core/table"
	"github.com/FocuswithJustin/tabular/internal/formats/base"
)

// Reader reads delimited text records against a schema inferred from the
// first physical line. It is forward-only and single-caller.
type Reader struct {
	cursor  *base.Cursor
	records [][]string
	pos     int
}

// NewReader tokenizes the source and establishes the schema synchronously.
// If hasHeader is true the first line supplies column names; otherwise
// synthetic names are generated and the first line remains a data record.
func NewReader(data []byte, hasHeader bool, opts Options, locale table.Locale, dup table.DuplicatePolicy) (*Reader, error) {
	records := tokenize(string(data), opts.normalized())

	var (
		schema *table.Schema
		err    error
		pos    int
	)
	switch {
	case len(records) == 0 || base.Empty(records[0]):
		schema, err = table.NewSchema(nil, dup)
	case hasHeader:
		schema, err = table.NewSchema(records[0], dup)
		pos = 1
	default:
		schema = table.GeneratedSchema(len(records[0]))
	}
	if err != nil {
		return nil, err
	}

	return &Reader{
		cursor:  base.NewCursor(schema, locale),
		records: records,
		pos:     pos,
	}, nil
}

// Schema returns the schema established at construction.
func (r *Reader) Schema() *table.Schema {
	return r.cursor.Schema()
}

// Read advances to the next record. It returns false when the source is
// exhausted or the next record is structurally empty. A record whose field
// count disagrees with the schema fails the read permanently.
func (r *Reader) Read(ctx context.Context) (bool, error) {
	if done, err := r.cursor.Done(); done {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if r.pos >= len(r.records) {
		r.cursor.Exhaust()
		return false, nil
	}
	rec := r.records[r.pos]
	if base.Empty(rec) {
		r.cursor.Exhaust()
		return false, nil
	}
	r.pos++
	if err := r.cursor.Advance(rec, nil); err != nil {
		return false, err
	}
	return true, nil
}

// Current returns the last successfully read row, valid until the next Read.
func (r *Reader) Current() (*table.Row, error) {
	return r.cursor.Current()
}

// Close releases the reader. Delimited sources are fully buffered, so there
// is no underlying handle to release.
func (r *Reader) Close() error {
	return nil
}
