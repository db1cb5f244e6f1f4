// Package errors provides standardized error types and helpers for the tabular codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrSchemaMismatch indicates a row disagrees with its schema
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrConversion indicates a raw value could not be coerced to a type
	ErrConversion = errors.New("conversion failed")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
	// ErrNoCurrentRow indicates a reader was exhausted before any row was read
	ErrNoCurrentRow = errors.New("no current row")
)

// ValidationError represents an input validation error with context.
// It is raised before any I/O is attempted.
type ValidationError struct {
	Field   string // Parameter name that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// SchemaError represents a schema lookup failure, e.g. a required column is absent.
type SchemaError struct {
	Column  string // Column name involved
	Message string // Error details
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema error for column %q: %s", e.Column, e.Message)
	}
	return fmt.Sprintf("schema error: %s", e.Message)
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidInput
}

// SchemaMismatchError indicates a row's value count disagrees with the
// established schema. It aborts the whole read or write operation.
type SchemaMismatchError struct {
	RowIndex int // Zero-based index of the offending row
	Want     int // Column count the schema declares
	Got      int // Value count the row carried
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("row %d has %d values, schema declares %d columns", e.RowIndex, e.Got, e.Want)
}

func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}

// ConversionError indicates a typed accessor could not coerce a raw value.
type ConversionError struct {
	ColumnIndex int    // Index of the column being converted
	TargetType  string // Type the conversion attempted (e.g. "int32", "time")
	Value       string // Raw value that failed to convert
	Err         error  // Underlying error, if any
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert column %d value %q to %s", e.ColumnIndex, e.Value, e.TargetType)
}

func (e *ConversionError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrConversion
}

// ParseError represents a malformed source document.
type ParseError struct {
	Format  string // Format being parsed (e.g. "JSON", "XML")
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedFormatError indicates an unknown reader or writer format value.
// It is raised before any I/O is attempted.
type UnsupportedFormatError struct {
	Format string // String form of the offending format value
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Format)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupported
}

// IOError represents an I/O operation error with context.
type IOError struct {
	Operation string // Operation being performed (e.g. "read", "write", "open")
	Source    string // Source/target description, if applicable
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Source, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for creating common errors

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewSchema creates a SchemaError
func NewSchema(column, message string) *SchemaError {
	return &SchemaError{
		Column:  column,
		Message: message,
	}
}

// NewSchemaMismatch creates a SchemaMismatchError
func NewSchemaMismatch(rowIndex, want, got int) *SchemaMismatchError {
	return &SchemaMismatchError{
		RowIndex: rowIndex,
		Want:     want,
		Got:      got,
	}
}

// NewConversion creates a ConversionError
func NewConversion(columnIndex int, targetType, value string, err error) *ConversionError {
	return &ConversionError{
		ColumnIndex: columnIndex,
		TargetType:  targetType,
		Value:       value,
		Err:         err,
	}
}

// NewParse creates a ParseError
func NewParse(format, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Message: message,
		Err:     err,
	}
}

// NewUnsupportedFormat creates an UnsupportedFormatError
func NewUnsupportedFormat(format string) *UnsupportedFormatError {
	return &UnsupportedFormatError{Format: format}
}

// NewIO creates an IOError
func NewIO(operation, source string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Source:    source,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
