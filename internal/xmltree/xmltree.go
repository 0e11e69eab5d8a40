// Package xmltree parses an XML document into a tree addressable by
// qualified name, with attribute and child lookup by namespace + local
// name.
//
// Parse decodes through xmldom.Decoder for element/attribute structure —
// xmldom's Element.Children()/Attributes() resolve namespace prefixes to
// URIs (its NamespaceURI()/LocalName() pair, mirrored below by
// Element.Name), so lookups match on resolved URIs no matter which prefix
// a document binds. Raw character data is captured by a second, narrow
// encoding/xml.Decoder pass run purely for CharData and merged onto the
// xmldom-built tree in document order (both walks visit elements in the
// same depth-first order for well-formed XML, so zipping them by
// encounter order is exact).
package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/agentflare-ai/go-xmldom"
)

// Element is one node of a parsed XML document, addressable by its
// resolved namespace URI and local name.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Element
	Text     string
	Parent   *Element
}

// Parse reads a complete XML document from r and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xmltree: read failed: %w", err)
	}

	doc, err := xmldom.NewDecoderFromBytes(data).Decode()
	if err != nil {
		return nil, fmt.Errorf("xmltree: parse failed: %w", err)
	}
	root := doc.DocumentElement()
	if root == nil {
		return nil, fmt.Errorf("xmltree: document has no root element")
	}

	cur := &textCursor{texts: scanText(data)}
	return build(root, nil, cur), nil
}

// textCursor hands out each element's own character data in the same
// depth-first order build walks the xmldom tree.
type textCursor struct {
	texts []string
	idx   int
}

func (c *textCursor) next() string {
	if c == nil || c.idx >= len(c.texts) {
		return ""
	}
	s := c.texts[c.idx]
	c.idx++
	return s
}

// scanText records, for every StartElement encountered by encoding/xml in
// document order, the character data found directly inside it (not
// including descendants' text) — a flat parallel to the xmldom walk in
// build, consumed one entry per element visited.
func scanText(data []byte) []string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var stack []int

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			out = append(out, "")
			stack = append(stack, len(out)-1)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				out[stack[len(stack)-1]] += string(t)
			}
		}
	}
	return out
}

func build(n xmldom.Element, parent *Element, cur *textCursor) *Element {
	el := &Element{
		Name:   xml.Name{Space: string(n.NamespaceURI()), Local: string(n.LocalName())},
		Parent: parent,
		Text:   cur.next(),
	}

	attrs := n.Attributes()
	for i := uint(0); i < attrs.Length(); i++ {
		node := attrs.Item(i)
		if node == nil {
			continue
		}
		attr, ok := node.(xmldom.Attr)
		if !ok {
			continue
		}
		el.Attrs = append(el.Attrs, xml.Attr{
			Name:  xml.Name{Space: string(attr.NamespaceURI()), Local: string(attr.LocalName())},
			Value: string(attr.NodeValue()),
		})
	}

	children := n.Children()
	for i := uint(0); i < children.Length(); i++ {
		child := children.Item(i)
		if child == nil {
			continue
		}
		el.Children = append(el.Children, build(child, el, cur))
	}
	return el
}

// Attr returns the value of the attribute named by (namespaceURI,
// localName), or ("", false) if absent. An empty namespaceURI matches an
// unprefixed attribute.
func (e *Element) Attr(namespaceURI, localName string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name.Local == localName && a.Name.Space == namespaceURI {
			return a.Value, true
		}
	}
	return "", false
}

// AttrDefault is Attr with a fallback when the attribute is absent.
func (e *Element) AttrDefault(namespaceURI, localName, fallback string) string {
	v, ok := e.Attr(namespaceURI, localName)
	if !ok {
		return fallback
	}
	return v
}

// AttrByLocalName scans every attribute regardless of namespace/prefix and
// returns the first whose local name matches. Used for promoting
// xbrli:periodType / xbrli:balance, which taxonomies bind under varying
// prefixes.
func (e *Element) AttrByLocalName(localName string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name.Local == localName {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first direct child matching (namespaceURI, localName).
func (e *Element) Child(namespaceURI, localName string) (*Element, bool) {
	if e == nil {
		return nil, false
	}
	for _, c := range e.Children {
		if c.Name.Local == localName && c.Name.Space == namespaceURI {
			return c, true
		}
	}
	return nil, false
}

// ChildrenOf returns every direct child matching (namespaceURI, localName).
func (e *Element) ChildrenOf(namespaceURI, localName string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name.Local == localName && c.Name.Space == namespaceURI {
			out = append(out, c)
		}
	}
	return out
}

// FindAll performs a depth-first descendant search (equivalent to
// ElementTree's `.//prefix:local`) and returns every matching descendant
// of e, in document order. e itself is never included.
func (e *Element) FindAll(namespaceURI, localName string) []*Element {
	var out []*Element
	if e == nil {
		return out
	}
	var walk func(*Element)
	walk = func(n *Element) {
		for _, c := range n.Children {
			if c.Name.Local == localName && c.Name.Space == namespaceURI {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// FindFirst returns the first descendant matching (namespaceURI,
// localName) in document order, or nil.
func (e *Element) FindFirst(namespaceURI, localName string) *Element {
	all := e.FindAll(namespaceURI, localName)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// TextContent returns the element's own character data (not including
// descendants' text), trimmed of nothing — callers decide on trimming.
func (e *Element) TextContent() string {
	if e == nil {
		return ""
	}
	return e.Text
}
