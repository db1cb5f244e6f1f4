package codec

import (
	"bytes"
	"context"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/tabular/core/errors"
	"github.com/FocuswithJustin/tabular/core/table"
	"github.com/FocuswithJustin/tabular/internal/formats/delimited"
	"github.com/FocuswithJustin/tabular/internal/formats/jsondoc"
	"github.com/FocuswithJustin/tabular/internal/formats/sheet"
	"github.com/FocuswithJustin/tabular/internal/formats/sqlitedb"
	"github.com/FocuswithJustin/tabular/internal/formats/xmldoc"
)

// Reader is the uniform read cursor over one tabular source. A reader is
// forward-only and single-caller; its schema is established synchronously
// at construction. The row returned by Current is owned by the reader and
// valid only until the next Read.
type Reader interface {
	// Schema returns the column layout inferred from the source sample.
	Schema() *table.Schema
	// Read advances to the next record. It returns false exactly once the
	// source is exhausted; every later call also returns false. A record
	// that disagrees with the schema fails the read permanently.
	Read(ctx context.Context) (bool, error)
	// Current returns the last successfully read row, or ErrNoCurrentRow
	// if no read ever succeeded.
	Current() (*table.Row, error)
	// Close releases the underlying resource. It must be called on every
	// exit path, including after a failed read.
	Close() error
}

// CSVOptions is the delimited-text dialect.
type CSVOptions = delimited.Options

// XLSXOptions selects the worksheet to read.
type XLSXOptions = sheet.Options

// SQLiteOptions selects the table to read.
type SQLiteOptions = sqlitedb.Options

// ReaderOptions configures reader construction. The zero value reads a
// headered source with the invariant locale and default dialects.
type ReaderOptions struct {
	// HasHeader controls whether column names come from the first record
	// or are generated as Column1..ColumnN.
	HasHeader bool
	// Locale drives the typed getters of produced rows. Zero value means
	// the invariant locale.
	Locale *table.Locale
	// Duplicates decides how duplicate column names are treated.
	Duplicates table.DuplicatePolicy
	// CSV, XLSX, and SQLite carry per-format dialect configuration.
	CSV    CSVOptions
	XLSX   XLSXOptions
	SQLite SQLiteOptions
}

func (o ReaderOptions) locale() table.Locale {
	if o.Locale == nil {
		return table.InvariantLocale()
	}
	return *o.Locale
}

// xzMagic is the file signature of the xz container.
var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// NewBytesReader builds a format reader over byte content. Sources in an
// xz container are transparently decompressed before format decoding.
func NewBytesReader(format Format, data []byte, opts ReaderOptions) (Reader, error) {
	if data == nil {
		return nil, errors.NewValidation("data", "must not be nil")
	}

	if bytes.HasPrefix(data, xzMagic) {
		zr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.NewIO("open", "xz source", err)
		}
		data, err = io.ReadAll(zr)
		if err != nil {
			return nil, errors.NewIO("decompress", "xz source", err)
		}
	}

	switch format {
	case FormatCSV:
		return delimited.NewReader(data, opts.HasHeader, opts.CSV, opts.locale(), opts.Duplicates)
	case FormatXLSX:
		return sheet.NewReader(data, opts.HasHeader, opts.XLSX, opts.locale(), opts.Duplicates)
	case FormatXML:
		return xmldoc.NewReader(data, opts.HasHeader, opts.locale(), opts.Duplicates)
	case FormatJSON:
		return jsondoc.NewReader(data, opts.HasHeader, opts.locale(), opts.Duplicates)
	case FormatSQLite:
		return sqlitedb.NewReader(data, opts.HasHeader, opts.SQLite, opts.locale(), opts.Duplicates)
	default:
		return nil, errors.NewUnsupportedFormat(format.String())
	}
}

// NewReader builds a format reader over a stream. The stream is drained
// eagerly; schema inference needs the source sample and none of the
// supported containers are seekable-agnostic.
func NewReader(format Format, src io.Reader, opts ReaderOptions) (Reader, error) {
	if src == nil {
		return nil, errors.NewValidation("src", "must not be nil")
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.NewIO("read", "source stream", err)
	}
	return NewBytesReader(format, data, opts)
}
