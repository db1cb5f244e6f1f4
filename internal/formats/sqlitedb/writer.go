package sqlitedb

import (
	"database/sql"
	"io"
	"os"
	"strings"

	"github.com/FocuswithJustin/tabular/core/errors"
)

// WriteOptions controls database output. Immutable after construction.
type WriteOptions struct {
	// Table is the table name to create. Default "Table1".
	Table string
}

// Write builds a single-table database in a temporary file and copies its
// bytes to w. All columns are TEXT; empty extracted values are stored as
// empty strings, not NULL, mirroring the other writers. valuesAt is
// invoked once per row index in order; its error aborts the write before
// any bytes reach w.
func Write(w io.Writer, names []string, rowCount int, valuesAt func(int) ([]string, error), opts WriteOptions) error {
	name := opts.Table
	if name == "" {
		name = "Table1"
	}

	tmp, err := os.CreateTemp("", "tabular-*.db")
	if err != nil {
		return errors.NewIO("create", "temporary database", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := build(path, name, names, rowCount, valuesAt); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.NewIO("open", "temporary database", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return errors.NewIO("write", "sqlite output", err)
	}
	return nil
}

func build(path, name string, names []string, rowCount int, valuesAt func(int) ([]string, error)) error {
	// Zero columns means header-only output with no data; there is no
	// zero-column table in SQLite, so the database stays empty.
	if len(names) == 0 {
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.NewIO("open", "sqlite database", err)
	}
	defer db.Close()

	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = quoteIdent(n) + " TEXT"
	}
	ddl := `CREATE TABLE ` + quoteIdent(name) + ` (` + strings.Join(cols, ", ") + `)`
	if _, err := db.Exec(ddl); err != nil {
		return errors.NewIO("create", "table "+name, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.NewIO("begin", "sqlite transaction", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	stmt, err := tx.Prepare(`INSERT INTO ` + quoteIdent(name) + ` VALUES (` + placeholders + `)`)
	if err != nil {
		return errors.NewIO("prepare", "sqlite insert", err)
	}
	defer stmt.Close()

	for i := 0; i < rowCount; i++ {
		values, err := valuesAt(i)
		if err != nil {
			return err
		}
		args := make([]interface{}, len(values))
		for j, v := range values {
			args[j] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return errors.NewIO("insert", "sqlite row", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.NewIO("commit", "sqlite transaction", err)
	}
	return nil
}
