// Package sheet implements the reader and writer for spreadsheet (XLSX)
// sources via excelize. The whole workbook is materialized; bounded-memory
// streaming of very large sheets is out of scope.
package sheet

import (
	"bytes"
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/FocuswithJustin/tabular/core/errors"
	"github.com/FocuswithJustin/tabular/core/table"
	"github.com/FocuswithJustin/tabular/internal/formats/base"
)

// Options selects the sheet to read. Immutable after construction.
type Options struct {
	// Sheet is the worksheet name. Empty selects the first sheet.
	Sheet string
}

// Reader reads worksheet rows against a schema inferred from the first
// physical row.
type Reader struct {
	cursor *base.Cursor
	file   *excelize.File
	rows   [][]string
	pos    int
}

// NewReader opens the workbook and establishes the schema synchronously
// from the first row of the selected sheet. If hasHeader is false the
// cursor stays on the first row so no data row is skipped.
func NewReader(data []byte, hasHeader bool, opts Options, locale table.Locale, dup table.DuplicatePolicy) (*Reader, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParse("XLSX", "cannot open workbook", err)
	}

	sheet := opts.Sheet
	if sheet == "" {
		names := f.GetSheetList()
		if len(names) == 0 {
			f.Close()
			return nil, errors.NewParse("XLSX", "workbook has no sheets", nil)
		}
		sheet = names[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, errors.NewParse("XLSX", "cannot read sheet "+sheet, err)
	}

	var (
		schema *table.Schema
		pos    int
	)
	switch {
	case len(rows) == 0 || base.Empty(rows[0]):
		schema, err = table.NewSchema(nil, dup)
	case hasHeader:
		schema, err = table.NewSchema(rows[0], dup)
		pos = 1
	default:
		schema = table.GeneratedSchema(len(rows[0]))
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Reader{
		cursor: base.NewCursor(schema, locale),
		file:   f,
		rows:   rows,
		pos:    pos,
	}, nil
}

// Schema returns the schema established at construction.
func (r *Reader) Schema() *table.Schema {
	return r.cursor.Schema()
}

// Read advances to the next physical row. The grid model pads rows shorter
// than the schema with empty cells (excelize trims trailing empties); a row
// wider than the schema fails the read permanently.
func (r *Reader) Read(ctx context.Context) (bool, error) {
	if done, err := r.cursor.Done(); done {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if r.pos >= len(r.rows) {
		r.cursor.Exhaust()
		return false, nil
	}
	rec := r.rows[r.pos]
	if base.Empty(rec) {
		r.cursor.Exhaust()
		return false, nil
	}
	r.pos++

	if n := r.cursor.Schema().Len(); len(rec) < n {
		padded := make([]string, n)
		copy(padded, rec)
		rec = padded
	}
	if err := r.cursor.Advance(rec, nil); err != nil {
		return false, err
	}
	return true, nil
}

// Current returns the last successfully read row, valid until the next Read.
func (r *Reader) Current() (*table.Row, error) {
	return r.cursor.Current()
}

// Close releases the workbook handle.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
