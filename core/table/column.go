// Package table provides the schema, column, and row abstractions shared by
// every format reader and writer. A Schema is inferred once from a source
// sample; Rows are positional records validated against it.
package table

import "fmt"

// Type is the declared type tag of a column.
type Type int

const (
	// TypeString is the default declared type for inferred columns.
	TypeString Type = iota
	// TypeInt declares an integer column.
	TypeInt
	// TypeFloat declares a floating-point column.
	TypeFloat
	// TypeBool declares a boolean column.
	TypeBool
	// TypeTime declares a date/time column.
	TypeTime
)

// String returns the lowercase name of the type tag.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeTime:
		return "time"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Column is an immutable descriptor of one slot in a Schema. Columns are
// created during schema inference and never modified afterwards.
type Column struct {
	// Index is the zero-based, dense position of the column.
	Index int
	// Name is the column name, non-empty after generation or sanitization.
	Name string
	// Type is the declared type tag. Inference always yields TypeString;
	// callers that know better may carry their own tags.
	Type Type
}

// GeneratedName returns the synthetic name for a column at the given
// zero-based index: "Column1", "Column2", ...
func GeneratedName(index int) string {
	return fmt.Sprintf("Column%d", index+1)
}

// GeneratedNames returns n synthetic column names.
func GeneratedNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = GeneratedName(i)
	}
	return names
}
