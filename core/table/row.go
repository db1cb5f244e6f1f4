package table

import (
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/tabular/core/errors"
)

// Row is one positional record of raw values aligned 1:1 with a Schema's
// columns. A reader owns a single Row and advances it in place on each
// read; the view returned by the reader is valid only until the next read.
// Typed getters convert at access time and never cache the result.
type Row struct {
	index  int
	values []string
	nulls  []bool
	schema *Schema
	locale Locale
}

// NewRow creates an empty row bound to a schema and locale. Readers call
// Set to advance it.
func NewRow(schema *Schema, locale Locale) *Row {
	return &Row{index: -1, schema: schema, locale: locale}
}

// Set replaces the row's contents with the fetched record and validates the
// value count against the schema. nulls may be nil when the source cannot
// represent null (e.g. delimited text). A count mismatch returns a
// SchemaMismatchError, which aborts the remainder of the read operation.
func (r *Row) Set(index int, values []string, nulls []bool) error {
	if len(values) != r.schema.Len() {
		return errors.NewSchemaMismatch(index, r.schema.Len(), len(values))
	}
	if nulls != nil && len(nulls) != len(values) {
		return errors.NewSchemaMismatch(index, len(values), len(nulls))
	}
	r.index = index
	r.values = values
	r.nulls = nulls
	return nil
}

// Index returns the zero-based index of the row within the source.
func (r *Row) Index() int {
	return r.index
}

// Len returns the number of values, which always equals the schema length.
func (r *Row) Len() int {
	return len(r.values)
}

// Schema returns the schema this row validates against.
func (r *Row) Schema() *Schema {
	return r.schema
}

// Value returns the untyped raw value at the given index without
// conversion. A null value is returned as the empty string; use IsNull to
// distinguish.
func (r *Row) Value(index int) string {
	if index < 0 || index >= len(r.values) {
		return ""
	}
	return r.values[index]
}

// Values returns the raw values in column order. The returned slice is
// owned by the row and valid only until the next read.
func (r *Row) Values() []string {
	return r.values
}

// IsNull reports whether the raw value at the given index is null or empty.
// This is distinct from a conversion failure.
func (r *Row) IsNull(index int) bool {
	if index < 0 || index >= len(r.values) {
		return true
	}
	if r.nulls != nil && r.nulls[index] {
		return true
	}
	return r.values[index] == ""
}

// GetInt32 converts the raw value at index to an int32.
func (r *Row) GetInt32(index int) (int32, error) {
	s := r.locale.normalizeNumber(r.Value(index))
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.NewConversion(index, "int32", r.Value(index), err)
	}
	return int32(v), nil
}

// GetInt64 converts the raw value at index to an int64.
func (r *Row) GetInt64(index int) (int64, error) {
	s := r.locale.normalizeNumber(r.Value(index))
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.NewConversion(index, "int64", r.Value(index), err)
	}
	return v, nil
}

// GetFloat64 converts the raw value at index to a float64 using the
// configured locale's separators.
func (r *Row) GetFloat64(index int) (float64, error) {
	s := r.locale.normalizeNumber(r.Value(index))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.NewConversion(index, "float64", r.Value(index), err)
	}
	return v, nil
}

// GetBool converts the raw value at index to a bool using the locale's
// accepted spellings.
func (r *Row) GetBool(index int) (bool, error) {
	s := strings.TrimSpace(r.Value(index))
	if matchBool(s, r.locale.TrueValues) {
		return true, nil
	}
	if matchBool(s, r.locale.FalseValues) {
		return false, nil
	}
	return false, errors.NewConversion(index, "bool", r.Value(index), nil)
}

// GetTime converts the raw value at index to a time.Time, trying the
// locale's layouts in order.
func (r *Row) GetTime(index int) (time.Time, error) {
	s := strings.TrimSpace(r.Value(index))
	for _, layout := range r.locale.TimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewConversion(index, "time", r.Value(index), nil)
}
