// Package xmldoc implements the reader and writer for XML tabular
// documents shaped <Root><List><Item><Col>value</Col>...</Item>...</List></Root>.
// Reading navigates a parsed document with xmlquery; writing emits elements
// directly with sanitized names.
package xmldoc

import (
	"bytes"
	"context"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/tabular/core/errors"
	"github.com/FocuswithJustin/tabular/core/table"
	"github.com/FocuswithJustin/tabular/internal/formats/base"
)

// itemListPath selects the list element: the first element child of the
// document root.
var itemListPath = xpath.MustCompile("/*/*[1]")

// cursorState makes the two navigation regimes explicit instead of
// inferring position from node names: before the first read the cursor
// still sits at the root and must descend to the first item; afterwards it
// moves between item siblings.
type cursorState int

const (
	atRoot cursorState = iota
	positioned
)

// Reader reads item elements as rows. The column layout comes from the
// child elements of the first item.
type Reader struct {
	cursor *base.Cursor
	list   *xmlquery.Node
	item   *xmlquery.Node
	state  cursorState
}

// NewReader parses the document and establishes the schema synchronously
// from the first item's child elements. If hasHeader is false, element
// names are ignored and synthetic names are generated; the first item is
// still a data row either way.
func NewReader(data []byte, hasHeader bool, locale table.Locale, dup table.DuplicatePolicy) (*Reader, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParse("XML", "malformed document", err)
	}

	list := xmlquery.QuerySelector(doc, itemListPath)
	var names []string
	if list != nil {
		if first := firstElementChild(list); first != nil {
			for _, col := range elementChildren(first) {
				names = append(names, col.Data)
			}
		}
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
		list:   list,
		state:  atRoot,
	}, nil
}

// Schema returns the schema established at construction.
func (r *Reader) Schema() *table.Schema {
	return r.cursor.Schema()
}

// Read advances the cursor to the next item element. The first read
// descends from the root to the first item; later reads move to the next
// sibling. A missing next item signals end-of-data.
func (r *Reader) Read(ctx context.Context) (bool, error) {
	if done, err := r.cursor.Done(); done {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var next *xmlquery.Node
	switch r.state {
	case atRoot:
		if r.list != nil {
			next = firstElementChild(r.list)
		}
		r.state = positioned
	case positioned:
		next = nextElementSibling(r.item)
	}
	if next == nil {
		r.cursor.Exhaust()
		return false, nil
	}
	r.item = next

	cols := elementChildren(next)
	values := make([]string, len(cols))
	for i, col := range cols {
		values[i] = col.InnerText()
	}
	if base.Empty(values) {
		r.cursor.Exhaust()
		return false, nil
	}
	if err := r.cursor.Advance(values, nil); err != nil {
		return false, err
	}
	return true, nil
}

// Current returns the last successfully read row, valid until the next Read.
func (r *Reader) Current() (*table.Row, error) {
	return r.cursor.Current()
}

// Close releases the parsed document.
func (r *Reader) Close() error {
	r.list = nil
	r.item = nil
	return nil
}

func firstElementChild(n *xmlquery.Node) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func nextElementSibling(n *xmlquery.Node) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == xmlquery.ElementNode {
			return s
		}
	}
	return nil
}

func elementChildren(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}
