// Package sqlitedb implements the reader and writer for single-table SQLite
// database files. SQLite engines operate on files, so byte content is
// staged in a temporary file for the lifetime of the reader.
package sqlitedb

import (
	"context"
	"database/sql"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/FocuswithJustin/tabular/core/errors"
	"github.com/FocuswithJustin/tabular/core/table"
	"github.com/FocuswithJustin/tabular/internal/formats/base"
)

// Options selects the table to read. Immutable after construction.
type Options struct {
	// Table is the table name. Empty selects the first table in
	// sqlite_master order.
	Table string
}

// Reader streams the rows of one table.
type Reader struct {
	cursor *base.Cursor
	db     *sql.DB
	rows   *sql.Rows
	path   string
	width  int
}

// NewReader stages the database bytes in a temporary file, opens it, and
// establishes the schema synchronously from the table's column metadata.
// If hasHeader is false the column names are ignored and synthetic names
// are generated; SQLite column metadata is not a data row, so nothing is
// re-read.
func NewReader(data []byte, hasHeader bool, opts Options, locale table.Locale, dup table.DuplicatePolicy) (*Reader, error) {
	tmp, err := os.CreateTemp("", "tabular-*.db")
	if err != nil {
		return nil, errors.NewIO("create", "temporary database", err)
	}
	path := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(path)
		return nil, errors.NewIO("write", "temporary database", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return nil, errors.NewIO("close", "temporary database", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		os.Remove(path)
		return nil, errors.NewIO("open", "sqlite database", err)
	}

	r, err := open(db, hasHeader, opts, locale, dup)
	if err != nil {
		db.Close()
		os.Remove(path)
		return nil, err
	}
	r.path = path
	return r, nil
}

func open(db *sql.DB, hasHeader bool, opts Options, locale table.Locale, dup table.DuplicatePolicy) (*Reader, error) {
	name := opts.Table
	if name == "" {
		row := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY rowid LIMIT 1`)
		if err := row.Scan(&name); err != nil {
			if err == sql.ErrNoRows {
				return nil, errors.NewParse("SQLite", "database has no tables", nil)
			}
			return nil, errors.NewIO("query", "sqlite_master", err)
		}
	}

	rows, err := db.Query(`SELECT * FROM ` + quoteIdent(name))
	if err != nil {
		return nil, errors.NewIO("query", "table "+name, err)
	}

	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, errors.NewIO("read", "column metadata", err)
	}

	var schema *table.Schema
	if hasHeader {
		schema, err = table.NewSchema(cols, dup)
		if err != nil {
			rows.Close()
			return nil, err
		}
	} else {
		schema = table.GeneratedSchema(len(cols))
	}

	return &Reader{
		cursor: base.NewCursor(schema, locale),
		db:     db,
		rows:   rows,
		width:  len(cols),
	}, nil
}

// Schema returns the schema established at construction.
func (r *Reader) Schema() *table.Schema {
	return r.cursor.Schema()
}

// Read advances the row cursor. NULLs are preserved as null cells.
func (r *Reader) Read(ctx context.Context) (bool, error) {
	if done, err := r.cursor.Done(); done {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return false, r.cursor.Fail(errors.NewIO("read", "sqlite rows", err))
		}
		r.cursor.Exhaust()
		return false, nil
	}

	cells := make([]sql.NullString, r.width)
	dest := make([]interface{}, r.width)
	for i := range cells {
		dest[i] = &cells[i]
	}
	if err := r.rows.Scan(dest...); err != nil {
		return false, r.cursor.Fail(errors.NewIO("scan", "sqlite row", err))
	}

	values := make([]string, r.width)
	nulls := make([]bool, r.width)
	for i, c := range cells {
		if !c.Valid {
			nulls[i] = true
			continue
		}
		values[i] = c.String
	}
	if err := r.cursor.Advance(values, nulls); err != nil {
		return false, err
	}
	return true, nil
}

// Current returns the last successfully read row, valid until the next Read.
func (r *Reader) Current() (*table.Row, error) {
	return r.cursor.Current()
}

// Close releases the row cursor, the database handle, and the staged file.
func (r *Reader) Close() error {
	var first error
	if r.rows != nil {
		first = r.rows.Close()
		r.rows = nil
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil && first == nil {
			first = err
		}
		r.db = nil
	}
	if r.path != "" {
		if err := os.Remove(r.path); err != nil && first == nil {
			first = err
		}
		r.path = ""
	}
	return first
}

// quoteIdent quotes an SQL identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
