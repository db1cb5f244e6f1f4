package base

import (
	"testing"

	coreerrors "github.com/FocuswithJustin/tabular/core/errors"
	"github.com/FocuswithJustin/tabular/core/table"
)

func testCursor(t *testing.T, width int) *Cursor {
	t.Helper()
	return NewCursor(table.GeneratedSchema(width), table.InvariantLocale())
}

// TestCursor_CurrentBeforeFirstRead tests that Current is rejected until a
// read succeeds.
func TestCursor_CurrentBeforeFirstRead(t *testing.T) {
	c := testCursor(t, 2)
	if _, err := c.Current(); !coreerrors.Is(err, coreerrors.ErrNoCurrentRow) {
		t.Errorf("Current = %v, want ErrNoCurrentRow", err)
	}

	if err := c.Advance([]string{"a", "b"}, nil); err != nil {
		t.Fatal(err)
	}
	row, err := c.Current()
	if err != nil {
		t.Fatal(err)
	}
	if row.Index() != 0 || row.Value(1) != "b" {
		t.Errorf("row = %d %v", row.Index(), row.Values())
	}
}

// TestCursor_RowAdvancesInPlace tests that the same row value moves forward
// on each advance.
func TestCursor_RowAdvancesInPlace(t *testing.T) {
	c := testCursor(t, 1)
	if err := c.Advance([]string{"first"}, nil); err != nil {
		t.Fatal(err)
	}
	first, _ := c.Current()
	if err := c.Advance([]string{"second"}, nil); err != nil {
		t.Fatal(err)
	}
	second, _ := c.Current()
	if first != second {
		t.Error("cursor should reuse one row value")
	}
	if second.Index() != 1 || second.Value(0) != "second" {
		t.Errorf("row = %d %v", second.Index(), second.Values())
	}
}

// TestCursor_MismatchIsSticky tests that a width mismatch fails the advance
// and every read after it.
func TestCursor_MismatchIsSticky(t *testing.T) {
	c := testCursor(t, 2)
	err := c.Advance([]string{"only one"}, nil)
	var sme *coreerrors.SchemaMismatchError
	if !coreerrors.As(err, &sme) {
		t.Fatalf("want SchemaMismatchError, got %v", err)
	}
	done, err2 := c.Done()
	if !done || !coreerrors.As(err2, &sme) {
		t.Errorf("Done = %v, %v, failure not sticky", done, err2)
	}
}

// TestCursor_Exhaust tests idempotent end-of-data and that the last row
// stays readable afterwards.
func TestCursor_Exhaust(t *testing.T) {
	c := testCursor(t, 1)
	if err := c.Advance([]string{"v"}, nil); err != nil {
		t.Fatal(err)
	}
	c.Exhaust()
	for i := 0; i < 2; i++ {
		done, err := c.Done()
		if !done || err != nil {
			t.Fatalf("Done pass %d = %v, %v", i, done, err)
		}
	}
	row, err := c.Current()
	if err != nil || row.Value(0) != "v" {
		t.Errorf("Current after exhaustion = %v, %v", row, err)
	}
}

// TestEmpty tests the structurally-empty record rule.
func TestEmpty(t *testing.T) {
	if !Empty(nil) || !Empty([]string{""}) {
		t.Error("zero values and a lone empty string are empty")
	}
	if Empty([]string{"", ""}) || Empty([]string{"x"}) {
		t.Error("multi-field and non-blank records are not empty")
	}
}
