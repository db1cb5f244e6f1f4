package jsondoc

import (
	"context"
	"testing"

	coreerrors "github.com/FocuswithJustin/tabular/core/errors"
	"github.com/FocuswithJustin/tabular/core/table"
)

// TestReader_KeyDeclarationOrder tests that the schema preserves the first
// object's key order, which a plain map decode would lose.
func TestReader_KeyDeclarationOrder(t *testing.T) {
	doc := `{"Items":[{"Zeta":"1","Alpha":"2","Mid":"3"}]}`
	r, err := NewReader([]byte(doc), true, table.InvariantLocale(), table.DuplicateFirst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	names := r.Schema().Names()
	want := []string{"Zeta", "Alpha", "Mid"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("schema = %v, want %v", names, want)
		}
	}
}

// TestReader_ValueStringification tests numbers, booleans, nulls, and
// nested values.
func TestReader_ValueStringification(t *testing.T) {
	doc := `{"Items":[{"n":12.50,"b":true,"s":"x","z":null,"o":{"k":1}}]}`
	r, err := NewReader([]byte(doc), true, table.InvariantLocale(), table.DuplicateFirst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ok, err := r.Read(context.Background())
	if !ok || err != nil {
		t.Fatal(ok, err)
	}
	row, _ := r.Current()

	if row.Value(0) != "12.50" {
		t.Errorf("number kept literal text: %q", row.Value(0))
	}
	if row.Value(1) != "true" {
		t.Errorf("bool = %q", row.Value(1))
	}
	if row.Value(2) != "x" {
		t.Errorf("string = %q", row.Value(2))
	}
	if !row.IsNull(3) {
		t.Error("null value should report IsNull")
	}
	if row.Value(4) != `{"k":1}` {
		t.Errorf("nested value = %q", row.Value(4))
	}
}

// TestReader_NoHeader tests generated names over the first object's width.
func TestReader_NoHeader(t *testing.T) {
	doc := `{"Items":[{"a":"1","b":"2"}]}`
	r, err := NewReader([]byte(doc), false, table.InvariantLocale(), table.DuplicateFirst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	names := r.Schema().Names()
	if names[0] != "Column1" || names[1] != "Column2" {
		t.Errorf("schema = %v", names)
	}
}

// TestReader_EmptyArray tests the zero-record document.
func TestReader_EmptyArray(t *testing.T) {
	r, err := NewReader([]byte(`{"Items":[]}`), true, table.InvariantLocale(), table.DuplicateFirst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.Schema().Len() != 0 {
		t.Errorf("schema len = %d", r.Schema().Len())
	}
	if ok, err := r.Read(context.Background()); ok || err != nil {
		t.Errorf("read = %v, %v", ok, err)
	}
	if _, err := r.Current(); !coreerrors.Is(err, coreerrors.ErrNoCurrentRow) {
		t.Errorf("Current = %v, want ErrNoCurrentRow", err)
	}
}

// TestReader_KeyCountMismatch tests that an element with extra keys fails
// the read permanently.
func TestReader_KeyCountMismatch(t *testing.T) {
	doc := `{"Items":[{"a":"1"},{"a":"2","b":"3"}]}`
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
	if ok, err := r.Read(ctx); ok || err == nil {
		t.Error("failure should be sticky")
	}
}

// TestReader_MalformedDocument tests parse errors for non-conforming
// documents.
func TestReader_MalformedDocument(t *testing.T) {
	for _, doc := range []string{
		``,
		`[]`,
		`{"Items":{"not":"array"}}`,
		`{"Items":[`,
	} {
		if _, err := NewReader([]byte(doc), true, table.InvariantLocale(), table.DuplicateFirst); err == nil {
			t.Errorf("doc %q should fail to parse", doc)
		}
	}
}
