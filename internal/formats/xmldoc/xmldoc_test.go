package xmldoc

import (
	"bytes"
	"context"
	"strings"
	"testing"

	coreerrors "github.com/FocuswithJustin/tabular/core/errors"
	"github.com/FocuswithJustin/tabular/core/table"
)

const sampleDoc = `<?xml version="1.0"?>
<Export>
  <People>
    <Person><Name>ann</Name><Age>30</Age></Person>
    <Person><Name>bob</Name><Age>41</Age></Person>
  </People>
</Export>`

// TestReader_SchemaFromFirstItem tests that column names come from the
// first item's child elements.
func TestReader_SchemaFromFirstItem(t *testing.T) {
	r, err := NewReader([]byte(sampleDoc), true, table.InvariantLocale(), table.DuplicateFirst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	names := r.Schema().Names()
	if len(names) != 2 || names[0] != "Name" || names[1] != "Age" {
		t.Fatalf("schema = %v, want [Name Age]", names)
	}
}

// TestReader_RowIteration tests the first-call descent, sibling stepping,
// and end-of-data on the missing next sibling.
func TestReader_RowIteration(t *testing.T) {
	r, err := NewReader([]byte(sampleDoc), true, table.InvariantLocale(), table.DuplicateFirst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ctx := context.Background()
	want := [][]string{{"ann", "30"}, {"bob", "41"}}
	for i, w := range want {
		ok, err := r.Read(ctx)
		if !ok || err != nil {
			t.Fatalf("read %d = %v, %v", i, ok, err)
		}
		row, _ := r.Current()
		if row.Value(0) != w[0] || row.Value(1) != w[1] {
			t.Errorf("row %d = %v, want %v", i, row.Values(), w)
		}
	}
	if ok, err := r.Read(ctx); ok || err != nil {
		t.Errorf("read past last item = %v, %v", ok, err)
	}
	if ok, err := r.Read(ctx); ok || err != nil {
		t.Errorf("exhaustion not idempotent = %v, %v", ok, err)
	}
}

// TestReader_NoHeader tests generated names with the count taken from the
// first item.
func TestReader_NoHeader(t *testing.T) {
	r, err := NewReader([]byte(sampleDoc), false, table.InvariantLocale(), table.DuplicateFirst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	names := r.Schema().Names()
	if names[0] != "Column1" || names[1] != "Column2" {
		t.Errorf("schema = %v, want generated names", names)
	}

	// The first item is still the first data row.
	ok, err := r.Read(context.Background())
	if !ok || err != nil {
		t.Fatal(ok, err)
	}
	row, _ := r.Current()
	if row.Value(0) != "ann" {
		t.Errorf("first row = %v", row.Values())
	}
}

// TestReader_EmptyList tests a document whose list has no items.
func TestReader_EmptyList(t *testing.T) {
	doc := `<Export><People></People></Export>`
	r, err := NewReader([]byte(doc), true, table.InvariantLocale(), table.DuplicateFirst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.Schema().Len() != 0 {
		t.Errorf("schema len = %d, want 0", r.Schema().Len())
	}
	if ok, err := r.Read(context.Background()); ok || err != nil {
		t.Errorf("read = %v, %v, want clean end", ok, err)
	}
}

// TestReader_ItemWidthMismatch tests that an item with a different child
// count fails the read permanently.
func TestReader_ItemWidthMismatch(t *testing.T) {
	doc := `<Export><People>
	  <Person><Name>ann</Name><Age>30</Age></Person>
	  <Person><Name>bob</Name></Person>
	</People></Export>`
	r, err := NewReader([]byte(doc), true, table.InvariantLocale(), table.DuplicateFirst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ctx := context.Background()
	if ok, err := r.Read(ctx); !ok || err != nil {
		t.Fatal(ok, err)
	}
	_, err = r.Read(ctx)
	var sme *coreerrors.SchemaMismatchError
	if !coreerrors.As(err, &sme) {
		t.Fatalf("want SchemaMismatchError, got %v", err)
	}
}

// TestWrite_Shape tests the emitted element structure and escaping.
func TestWrite_Shape(t *testing.T) {
	rows := [][]string{{"a<b", "2"}}
	var buf bytes.Buffer
	err := Write(&buf, []string{"Name", "Age"}, len(rows),
		func(i int) ([]string, error) { return rows[i], nil },
		WriteOptions{Indent: false, IndentChars: " ", Encoding: "UTF-8", OmitDeclaration: true})
	if err != nil {
		t.Fatal(err)
	}
	want := "<Table><Row><Name>a&lt;b</Name><Age>2</Age></Row></Table>"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

// TestWrite_Declaration tests declaration emission and omission.
func TestWrite_Declaration(t *testing.T) {
	var with, without bytes.Buffer
	none := func(i int) ([]string, error) { return nil, nil }

	if err := Write(&with, nil, 0, none, DefaultWriteOptions()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(with.String(), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("declaration missing: %q", with.String())
	}

	opts := DefaultWriteOptions()
	opts.OmitDeclaration = true
	if err := Write(&without, nil, 0, none, opts); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(without.String(), "<?xml") {
		t.Errorf("declaration should be omitted: %q", without.String())
	}
}

// TestWrite_IndentChars tests custom indentation.
func TestWrite_IndentChars(t *testing.T) {
	rows := [][]string{{"v"}}
	var buf bytes.Buffer
	opts := DefaultWriteOptions()
	opts.IndentChars = "\t"
	err := Write(&buf, []string{"C"}, len(rows),
		func(i int) ([]string, error) { return rows[i], nil }, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n\t<Row>") || !strings.Contains(buf.String(), "\n\t\t<C>v</C>") {
		t.Errorf("output = %q", buf.String())
	}
}

// TestWriteThenRead_RoundTrip tests that a written table reads back once it
// is nested under a document root. The writer emits the table itself; the
// reader expects the table one level below the root, so the embedding
// document supplies that level.
func TestWriteThenRead_RoundTrip(t *testing.T) {
	rows := [][]string{{"ann", "30"}, {"bob", "41"}}
	var buf bytes.Buffer
	opts := DefaultWriteOptions()
	opts.OmitDeclaration = true
	err := Write(&buf, []string{"Name", "Age"}, len(rows),
		func(i int) ([]string, error) { return rows[i], nil },
		opts)
	if err != nil {
		t.Fatal(err)
	}
	doc := "<Export>" + buf.String() + "</Export>"

	r, err := NewReader([]byte(doc), true, table.InvariantLocale(), table.DuplicateFirst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ctx := context.Background()
	for i, w := range rows {
		ok, err := r.Read(ctx)
		if !ok || err != nil {
			t.Fatalf("read %d = %v, %v", i, ok, err)
		}
		row, _ := r.Current()
		if row.Value(0) != w[0] || row.Value(1) != w[1] {
			t.Errorf("row %d = %v, want %v", i, row.Values(), w)
		}
	}
}
