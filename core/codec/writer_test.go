package codec

import (
	"bytes"
	"context"
	"strings"
	"testing"

	coreerrors "github.com/FocuswithJustin/tabular/core/errors"
)

type person struct {
	Name string
	Age  string
}

func personColumns(p person) []string {
	return []string{p.Name, p.Age}
}

// TestWrite_CSV tests header emission and dialect-default delimiters.
func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	data := []person{{"ann", "30"}, {"bob", "41"}}
	err := Write(context.Background(), &buf, FormatCSV, data, personColumns, WriteOptions{
		IncludeHeader: true,
		ColumnNames:   []string{"Name", "Age"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "Name,Age\r\nann,30\r\nbob,41\r\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

// TestWrite_XML_GeneratedNames tests that absent column names become
// Column1..ColumnN element names.
func TestWrite_XML_GeneratedNames(t *testing.T) {
	var buf bytes.Buffer
	data := []person{{"v1", "v2"}, {"v3", "v4"}}
	err := Write(context.Background(), &buf, FormatXML, data, personColumns, WriteOptions{
		IncludeHeader: true,
		XML:           XMLOptions{Indent: false, IndentChars: " ", Encoding: "UTF-8", OmitDeclaration: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "<Table><Row><Column1>v1</Column1><Column2>v2</Column2></Row>" +
		"<Row><Column1>v3</Column1><Column2>v4</Column2></Row></Table>"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

// TestWrite_XML_Defaults tests the defaulted dialect: indentation and the
// XML declaration.
func TestWrite_XML_Defaults(t *testing.T) {
	var buf bytes.Buffer
	err := Write(context.Background(), &buf, FormatXML, []person{{"a", "b"}}, personColumns, WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("missing declaration: %q", out)
	}
	if !strings.Contains(out, "\n  <Row>") {
		t.Errorf("missing indentation: %q", out)
	}
}

// TestWrite_XML_SanitizedNames tests that element names pass through
// sanitization.
func TestWrite_XML_SanitizedNames(t *testing.T) {
	var buf bytes.Buffer
	err := Write(context.Background(), &buf, FormatXML, []person{{"x", "y"}}, personColumns, WriteOptions{
		ColumnNames: []string{"1 col name!", "ok"},
		XML:         XMLOptions{Indent: false, IndentChars: " ", Encoding: "UTF-8", OmitDeclaration: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<_col_name_>x</_col_name_>") {
		t.Errorf("sanitized element missing: %q", buf.String())
	}
}

// TestWrite_HeaderOnly tests header-only output with zero data rows, where
// the column count comes from the supplied names.
func TestWrite_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	err := Write(context.Background(), &buf, FormatCSV, []person(nil), personColumns, WriteOptions{
		IncludeHeader: true,
		ColumnNames:   []string{"Name", "Age"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Name,Age\r\n" {
		t.Errorf("output = %q", buf.String())
	}
}

// TestWrite_RowWidthMismatchAborts tests that a row extracting the wrong
// value count aborts the write with a schema mismatch.
func TestWrite_RowWidthMismatchAborts(t *testing.T) {
	rows := [][]string{{"a", "b"}, {"only one"}}
	var buf bytes.Buffer
	err := Write(context.Background(), &buf, FormatCSV, rows,
		func(r []string) []string { return r }, WriteOptions{})
	var sme *coreerrors.SchemaMismatchError
	if !coreerrors.As(err, &sme) {
		t.Fatalf("want SchemaMismatchError, got %v", err)
	}
	if sme.RowIndex != 1 {
		t.Errorf("mismatch row = %d, want 1", sme.RowIndex)
	}
}

// TestWrite_JSONUnsupported tests that JSON stays read-only.
func TestWrite_JSONUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := Write(context.Background(), &buf, FormatJSON, []person{{"a", "b"}}, personColumns, WriteOptions{})
	if !coreerrors.Is(err, coreerrors.ErrUnsupported) {
		t.Errorf("JSON write error = %v, want ErrUnsupported", err)
	}
	if buf.Len() != 0 {
		t.Error("no bytes may be written before dispatch validation")
	}
}

// TestWrite_Validation tests parameter checks before any I/O.
func TestWrite_Validation(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(context.Background(), nil, FormatCSV, []person(nil), personColumns, WriteOptions{}); err == nil {
		t.Error("nil writer should be rejected")
	}
	if err := Write[person](context.Background(), &buf, FormatCSV, nil, nil, WriteOptions{}); err == nil {
		t.Error("nil extractor should be rejected")
	}
	err := Write(context.Background(), &buf, FormatCSV, []person{{"a", "b"}}, personColumns, WriteOptions{
		ColumnNames: []string{"just one"},
	})
	if err == nil {
		t.Error("column name count mismatch should be rejected")
	}
}

// TestWriteBytes tests the in-memory entry point matches the stream one.
func TestWriteBytes(t *testing.T) {
	data := []person{{"ann", "30"}}
	got, err := WriteBytes(context.Background(), FormatCSV, data, personColumns, WriteOptions{
		IncludeHeader: true,
		ColumnNames:   []string{"Name", "Age"},
	})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(context.Background(), &buf, FormatCSV, data, personColumns, WriteOptions{
		IncludeHeader: true,
		ColumnNames:   []string{"Name", "Age"},
	}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, buf.Bytes()) {
		t.Error("WriteBytes and Write disagree")
	}
}

// TestWriteThenRead_CSVRoundTrip tests that written CSV reads back with the
// same schema and rows.
func TestWriteThenRead_CSVRoundTrip(t *testing.T) {
	data := []person{{"ann", "30"}, {"bob", "41"}}
	out, err := WriteBytes(context.Background(), FormatCSV, data, personColumns, WriteOptions{
		IncludeHeader: true,
		ColumnNames:   []string{"Name", "Age"},
	})
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewBytesReader(FormatCSV, out, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ctx := context.Background()
	for _, want := range data {
		ok, err := r.Read(ctx)
		if !ok || err != nil {
			t.Fatal(ok, err)
		}
		row, _ := r.Current()
		if row.Value(0) != want.Name || row.Value(1) != want.Age {
			t.Errorf("row = %v, want %v", row.Values(), want)
		}
	}
	if ok, _ := r.Read(ctx); ok {
		t.Error("round trip should end after the data rows")
	}
}
