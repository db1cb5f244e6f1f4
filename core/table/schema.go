package table

import (
	"github.com/FocuswithJustin/tabular/core/errors"
)

// DuplicatePolicy decides how schema construction treats two columns with
// the same name. The source formats do not define a precedence, so the
// choice is an explicit configuration knob rather than an implicit default
// of the underlying map.
type DuplicatePolicy int

const (
	// DuplicateFirst keeps the first occurrence for name lookups; later
	// columns remain addressable by index.
	DuplicateFirst DuplicatePolicy = iota
	// DuplicateReject fails schema construction on a duplicate name.
	DuplicateReject
)

// Schema is an ordered, indexable collection of Columns. It is built once
// per reader or writer invocation and never mutated afterwards; every row
// produced under it must carry exactly Len() values.
type Schema struct {
	columns []Column
	byName  map[string]int
}

// NewSchema builds a Schema from column names in source order. An empty
// name list is valid and yields an empty schema (a source with zero records
// is not an error). Duplicate names are resolved per policy.
func NewSchema(names []string, policy DuplicatePolicy) (*Schema, error) {
	s := &Schema{
		columns: make([]Column, 0, len(names)),
		byName:  make(map[string]int, len(names)),
	}
	for i, name := range names {
		if name == "" {
			name = GeneratedName(i)
		}
		if _, dup := s.byName[name]; dup {
			if policy == DuplicateReject {
				return nil, errors.NewSchema(name, "duplicate column name")
			}
		} else {
			s.byName[name] = i
		}
		s.columns = append(s.columns, Column{Index: i, Name: name, Type: TypeString})
	}
	return s, nil
}

// GeneratedSchema builds a Schema of n synthetic columns ("Column1"..."ColumnN").
// Used when the source has no header record.
func GeneratedSchema(n int) *Schema {
	s, _ := NewSchema(GeneratedNames(n), DuplicateFirst)
	return s
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Columns returns the columns in source order. The returned slice must not
// be modified.
func (s *Schema) Columns() []Column {
	return s.columns
}

// Column returns the column with the given name, or false if absent.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// ColumnAt returns the column at the given index, or false if out of range.
func (s *Schema) ColumnAt(index int) (Column, bool) {
	if index < 0 || index >= len(s.columns) {
		return Column{}, false
	}
	return s.columns[index], true
}

// RequiredColumn returns the column with the given name or a SchemaError if
// it is absent. Callers that depend on stable indices use this instead of
// Column.
func (s *Schema) RequiredColumn(name string) (Column, error) {
	c, ok := s.Column(name)
	if !ok {
		return Column{}, errors.NewSchema(name, "column not found")
	}
	return c, nil
}

// Names returns the column names in source order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}
