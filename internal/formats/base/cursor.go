// Package base provides the shared read-cursor state machine used by every
// format reader. It owns the single row advanced in place on each read and
// enforces the exhaustion and current-row contracts common to all formats.
package base

import (
	"github.com/FocuswithJustin/tabular/core/errors"
	"github.com/FocuswithJustin/tabular/core/table"
)

// Cursor tracks read progress for one reader: the schema established at
// construction, the row advanced in place, exhaustion, and any sticky
// failure. Once a read fails or the source is exhausted there is no way
// back; further reads repeat the outcome.
type Cursor struct {
	schema    *table.Schema
	row       *table.Row
	next      int
	readCount int
	exhausted bool
	err       error
}

// NewCursor creates a cursor over the given schema. The locale is fixed for
// the cursor's lifetime.
func NewCursor(schema *table.Schema, locale table.Locale) *Cursor {
	return &Cursor{
		schema: schema,
		row:    table.NewRow(schema, locale),
	}
}

// Schema returns the schema established at construction.
func (c *Cursor) Schema() *table.Schema {
	return c.schema
}

// Current returns the row last advanced by a successful read. If the cursor
// never advanced once, it returns ErrNoCurrentRow. The returned row is
// valid only until the next read.
func (c *Cursor) Current() (*table.Row, error) {
	if c.readCount == 0 {
		return nil, errors.ErrNoCurrentRow
	}
	return c.row, nil
}

// Done reports whether the cursor reached end-of-data or failed.
func (c *Cursor) Done() (bool, error) {
	if c.err != nil {
		return true, c.err
	}
	return c.exhausted, nil
}

// Exhaust marks end-of-data. Every later read observes it.
func (c *Cursor) Exhaust() {
	c.exhausted = true
}

// Fail records a fatal read error. Every later read repeats it; a malformed
// source aborts the remainder of the read operation.
func (c *Cursor) Fail(err error) error {
	c.err = err
	return err
}

// Advance validates the fetched record against the schema and moves the row
// forward. nulls may be nil for sources that cannot represent null. A
// mismatch is recorded as the cursor's sticky failure.
func (c *Cursor) Advance(values []string, nulls []bool) error {
	if err := c.row.Set(c.next, values, nulls); err != nil {
		return c.Fail(err)
	}
	c.next++
	c.readCount++
	return nil
}

// NextIndex returns the zero-based index the next successful read will get.
func (c *Cursor) NextIndex() int {
	return c.next
}

// Empty reports whether a fetched record is structurally empty: zero values,
// or exactly one value that is the empty string. Such a record signals
// end-of-data (a trailing blank line), not a zero-column row.
func Empty(values []string) bool {
	return len(values) == 0 || (len(values) == 1 && values[0] == "")
}
