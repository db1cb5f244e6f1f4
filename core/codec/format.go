// Package codec is the entry point of the tabular codec: it selects a
// format reader for a source and dispatches writes to a format writer, so
// callers read and write "a table" without format-specific branching.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/tabular/core/errors"
)

// Format identifies one interchange format.
type Format int

const (
	// FormatUnknown is the zero value; it is not a valid format.
	FormatUnknown Format = iota
	// FormatCSV is delimited text.
	FormatCSV
	// FormatXLSX is an Excel workbook.
	FormatXLSX
	// FormatXML is the <Root><List><Item>...</Item></List></Root> shape.
	FormatXML
	// FormatJSON is a single-object document with one array property.
	// JSON is read-only.
	FormatJSON
	// FormatSQLite is a single-table SQLite database file.
	FormatSQLite
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	case FormatXML:
		return "xml"
	case FormatJSON:
		return "json"
	case FormatSQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat resolves a format from its name. It accepts the common
// aliases ("xls" for xlsx, "db" for sqlite).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "xls":
		return FormatXLSX, nil
	case "xml":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	case "sqlite", "db":
		return FormatSQLite, nil
	default:
		return FormatUnknown, errors.NewUnsupportedFormat(s)
	}
}

// FormatFromPath resolves a format from a file extension, ignoring a
// trailing ".xz" compression suffix.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xz" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	return ParseFormat(strings.TrimPrefix(ext, "."))
}
