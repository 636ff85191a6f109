package record

import (
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
)

// XMLReader reads flat records from an XML document. Event elements are
// selected with an XPath expression; each selected element is flattened
// to one record by walking its child elements in document order. A child
// <tag attr="v">text</tag> contributes the field "tag" with the child's
// text content and "tag.attr" for every attribute.
type XMLReader struct {
	selected []*xmlquery.Node
	pos      int
}

// NewXMLReader parses the document from r and selects event elements
// with the given XPath expression. Parsing and selection happen eagerly;
// an invalid document or expression is reported here, not from Next.
func NewXMLReader(r io.Reader, xpath string) (*XMLReader, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML document: %w", err)
	}

	nodes, err := xmlquery.QueryAll(doc, xpath)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression %q: %w", xpath, err)
	}

	return &XMLReader{selected: nodes}, nil
}

// Next returns the record for the next selected element, or io.EOF.
func (x *XMLReader) Next() (*Record, error) {
	if x.pos >= len(x.selected) {
		return nil, io.EOF
	}

	node := x.selected[x.pos]
	x.pos++

	return flatten(node), nil
}

func flatten(node *xmlquery.Node) *Record {
	rec := New()

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}

		rec.Add(child.Data, child.InnerText())

		for _, attr := range child.Attr {
			rec.Add(child.Data+"."+attr.Name.Local, attr.Value)
		}
	}

	return rec
}
