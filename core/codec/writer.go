package codec

import (
	"bytes"
	"context"
	"io"

	"github.com/FocuswithJustin/tabular/core/errors"
	"github.com/FocuswithJustin/tabular/core/table"
	"github.com/FocuswithJustin/tabular/internal/formats/delimited"
	"github.com/FocuswithJustin/tabular/internal/formats/sheet"
	"github.com/FocuswithJustin/tabular/internal/formats/sqlitedb"
	"github.com/FocuswithJustin/tabular/internal/formats/xmldoc"
)

// XMLOptions is the XML output dialect.
type XMLOptions = xmldoc.WriteOptions

// XLSXWriteOptions controls workbook output.
type XLSXWriteOptions = sheet.WriteOptions

// SQLiteWriteOptions controls database output.
type SQLiteWriteOptions = sqlitedb.WriteOptions

// WriteOptions carries writer invocation parameters shared by all formats
// plus per-format dialect configuration.
type WriteOptions struct {
	// IncludeHeader emits a header record where the format has one.
	IncludeHeader bool
	// ColumnNames supplies header names. When nil, names come from the
	// first item's extracted width as Column1..ColumnN. It also supplies
	// the column count for header-only output with zero data rows.
	ColumnNames []string
	// CSV, XML, XLSX, and SQLite carry per-format dialect configuration.
	CSV    CSVOptions
	XML    XMLOptions
	XLSX   XLSXWriteOptions
	SQLite SQLiteWriteOptions
}

// Write streams data through getColumnValues into w in the given format.
// The column count is established from the first item, or from ColumnNames
// when data is empty; every row's extracted value count must match it or
// the write aborts with a SchemaMismatchError (bytes already flushed stay
// written). Parameters are validated before any I/O.
func Write[T any](ctx context.Context, w io.Writer, format Format, data []T, getColumnValues func(T) []string, opts WriteOptions) error {
	if w == nil {
		return errors.NewValidation("w", "must not be nil")
	}
	if getColumnValues == nil {
		return errors.NewValidation("getColumnValues", "must not be nil")
	}

	// A fully-zero XML dialect means "absent": apply the documented
	// defaults (indent on, two spaces, UTF-8, declaration emitted).
	if opts.XML == (XMLOptions{}) {
		opts.XML = xmldoc.DefaultWriteOptions()
	}

	width := len(opts.ColumnNames)
	if len(data) > 0 {
		width = len(getColumnValues(data[0]))
	}

	names := opts.ColumnNames
	if names == nil {
		names = table.GeneratedNames(width)
	} else if len(names) != width {
		return errors.NewValidation("columnNames", "count disagrees with extracted column count")
	}

	valuesAt := func(i int) ([]string, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values := getColumnValues(data[i])
		if len(values) != width {
			return nil, errors.NewSchemaMismatch(i, width, len(values))
		}
		return values, nil
	}

	switch format {
	case FormatCSV:
		return delimited.Write(w, names, opts.IncludeHeader, len(data), valuesAt, opts.CSV)
	case FormatXLSX:
		return sheet.Write(w, names, opts.IncludeHeader, len(data), valuesAt, opts.XLSX)
	case FormatXML:
		return xmldoc.Write(w, names, len(data), valuesAt, opts.XML)
	case FormatSQLite:
		return sqlitedb.Write(w, names, len(data), valuesAt, opts.SQLite)
	default:
		return errors.NewUnsupportedFormat(format.String())
	}
}

// WriteBytes is Write into an in-memory buffer. It has no independent
// logic; it exists for callers that hand the whole result to blob or mail
// collaborators.
func WriteBytes[T any](ctx context.Context, format Format, data []T, getColumnValues func(T) []string, opts WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(ctx, &buf, format, data, getColumnValues, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
