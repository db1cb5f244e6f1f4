package xmldoc

import (
	"bufio"
	"io"

	"github.com/FocuswithJustin/tabular/core/encoding"
)

// WriteOptions controls XML output shape. Immutable after construction.
type WriteOptions struct {
	// Indent enables pretty-printing. Default true.
	Indent bool
	// IndentChars is the per-level indentation string. Default two spaces.
	IndentChars string
	// Encoding is the declared character encoding. Default "UTF-8".
	// Output bytes are always UTF-8; the declaration reflects this value.
	Encoding string
	// OmitDeclaration suppresses the leading <?xml ...?> declaration.
	OmitDeclaration bool
}

// DefaultWriteOptions returns the default XML dialect.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Indent:      true,
		IndentChars: "  ",
		Encoding:    "UTF-8",
	}
}

func (o WriteOptions) normalized() WriteOptions {
	if o.IndentChars == "" {
		o.IndentChars = "  "
	}
	if o.Encoding == "" {
		o.Encoding = "UTF-8"
	}
	return o
}

// Write streams rows as <Table><Row><Name>value</Name>...</Row>...</Table>.
// Element names are sanitized once up front and reused for every row.
// valuesAt is invoked once per row index in order; its error aborts the
// write immediately, leaving already-flushed bytes in place.
func Write(w io.Writer, names []string, rowCount int, valuesAt func(int) ([]string, error), opts WriteOptions) error {
	o := opts.normalized()
	elems := encoding.SanitizeXMLNames(names)

	bw := bufio.NewWriter(w)
	nl := ""
	if o.Indent {
		nl = "\n"
	}

	if !o.OmitDeclaration {
		bw.WriteString(`<?xml version="1.0" encoding="`)
		bw.WriteString(encoding.EscapeXMLAttr(o.Encoding))
		bw.WriteString(`"?>`)
		bw.WriteString(nl)
	}

	bw.WriteString("<Table>")
	bw.WriteString(nl)
	for i := 0; i < rowCount; i++ {
		values, err := valuesAt(i)
		if err != nil {
			bw.Flush()
			return err
		}
		if o.Indent {
			bw.WriteString(o.IndentChars)
		}
		bw.WriteString("<Row>")
		bw.WriteString(nl)
		for j, v := range values {
			if o.Indent {
				bw.WriteString(o.IndentChars)
				bw.WriteString(o.IndentChars)
			}
			bw.WriteString("<")
			bw.WriteString(elems[j])
			bw.WriteString(">")
			bw.WriteString(encoding.EscapeXMLText(v))
			bw.WriteString("</")
			bw.WriteString(elems[j])
			bw.WriteString(">")
			bw.WriteString(nl)
		}
		if o.Indent {
			bw.WriteString(o.IndentChars)
		}
		bw.WriteString("</Row>")
		bw.WriteString(nl)
	}
	bw.WriteString("</Table>")
	bw.WriteString(nl)

	return bw.Flush()
}
