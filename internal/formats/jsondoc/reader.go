// Package jsondoc implements the read-only JSON tabular format. A document
// is a single top-level object whose sole property is an array of flat
// objects; the first element's keys, in declaration order, define the
// schema. encoding/json maps do not preserve declaration order, so the
// document is scanned token by token.
package jsondoc

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/FocuswithJustin/tabular/core/errors"
	"github.com/FocuswithJustin/tabular/core/table"
	"github.com/FocuswithJustin/tabular/internal/formats/base"
)

// item is one array element: its keys in declaration order and the
// stringified values by key.
type item struct {
	keys   []string
	values map[string]cell
}

type cell struct {
	text string
	null bool
}

// Reader reads array elements as rows, projecting each object's values in
// the schema's key order.
type Reader struct {
	cursor *base.Cursor
	items  []item
	pos    int
}

// NewReader parses the document and establishes the schema synchronously
// from the first array element's keys. If hasHeader is false the keys are
// ignored and synthetic names are generated.
func NewReader(data []byte, hasHeader bool, locale table.Locale, dup table.DuplicatePolicy) (*Reader, error) {
	items, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	var names []string
	if len(items) > 0 {
		names = items[0].keys
	}

	var schema *table.Schema
	if hasHeader {
		schema, err = table.NewSchema(names, dup)
		if err != nil {
			return nil, err
		}
	} else {
		schema = table.GeneratedSchema(len(names))
	}

	return &Reader{
		cursor: base.NewCursor(schema, locale),
		items:  items,
	}, nil
}

// Schema returns the schema established at construction.
func (r *Reader) Schema() *table.Schema {
	return r.cursor.Schema()
}

// Read advances to the next array element. An element whose key count
// disagrees with the schema fails the read permanently.
func (r *Reader) Read(ctx context.Context) (bool, error) {
	if done, err := r.cursor.Done(); done {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if r.pos >= len(r.items) {
		r.cursor.Exhaust()
		return false, nil
	}
	it := r.items[r.pos]
	r.pos++

	if len(it.keys) != r.cursor.Schema().Len() {
		return false, r.cursor.Fail(errors.NewSchemaMismatch(r.cursor.NextIndex(), r.cursor.Schema().Len(), len(it.keys)))
	}

	cols := r.cursor.Schema().Columns()
	values := make([]string, len(cols))
	nulls := make([]bool, len(cols))
	for i, col := range cols {
		c, ok := it.values[col.Name]
		if !ok || c.null {
			nulls[i] = true
			continue
		}
		values[i] = c.text
	}
	if err := r.cursor.Advance(values, nulls); err != nil {
		return false, err
	}
	return true, nil
}

// Current returns the last successfully read row, valid until the next Read.
func (r *Reader) Current() (*table.Row, error) {
	return r.cursor.Current()
}

// Close releases the reader.
func (r *Reader) Close() error {
	r.items = nil
	return nil
}

// parseDocument scans {"<prop>": [ {...}, ... ]} preserving each object's
// key declaration order.
func parseDocument(data []byte) ([]item, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	// The sole property name; its value must be the array.
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.NewParse("JSON", "missing list property", err)
	}
	if _, ok := tok.(string); !ok {
		return nil, errors.NewParse("JSON", "top-level object has no properties", nil)
	}
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var items []item
	for dec.More() {
		it, err := parseItem(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return items, nil
}

func parseItem(dec *json.Decoder) (item, error) {
	it := item{values: make(map[string]cell)}
	if err := expectDelim(dec, '{'); err != nil {
		return it, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return it, errors.NewParse("JSON", "malformed item", err)
		}
		key, ok := tok.(string)
		if !ok {
			return it, errors.NewParse("JSON", "item key is not a string", nil)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return it, errors.NewParse("JSON", "malformed item value", err)
		}
		it.keys = append(it.keys, key)
		it.values[key] = stringify(raw)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return it, err
	}
	return it, nil
}

// stringify renders a raw JSON value as the row's raw string: strings are
// unquoted, numbers and booleans keep their literal text, null becomes a
// null cell, and nested structures keep their compact JSON text.
func stringify(raw json.RawMessage) cell {
	s := string(bytes.TrimSpace(raw))
	switch {
	case s == "null":
		return cell{null: true}
	case len(s) > 0 && s[0] == '"':
		var u string
		if err := json.Unmarshal(raw, &u); err == nil {
			return cell{text: u}
		}
		return cell{text: s}
	default:
		return cell{text: s}
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return errors.NewParse("JSON", "unexpected end of document", err)
	}
	d, ok := tok.(json.Delim)
	if !ok || d != want {
		return errors.NewParse("JSON", "unexpected token, want "+string(rune(want)), nil)
	}
	return nil
}
