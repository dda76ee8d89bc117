package harvest

import (
	"errors"

	"github.com/beevik/etree"

	"github.com/fivetwenty-io/harvest/internal/constants"
)

var errNoRootElement = errors.New("document has no root element")

// Document is a parsed XML response body.
type Document struct {
	doc *etree.Document
}

// Element is one element of a Document.
type Element struct {
	elem *etree.Element
}

// Node is a single tag of an element subtree as seen by entity construction.
type Node struct {
	Tag  string
	Type AttrType
	Text string
	Nil  bool
}

// ParseDocument parses an XML body. A body without a root element is
// rejected.
func ParseDocument(body []byte) (*Document, error) {
	doc := etree.NewDocument()

	err := doc.ReadFromBytes(body)
	if err != nil {
		return nil, err
	}

	if doc.Root() == nil {
		return nil, errNoRootElement
	}

	return &Document{doc: doc}, nil
}

// EmptyDocument returns a document without elements, used for responses that
// carry no body.
func EmptyDocument() *Document {
	return &Document{doc: etree.NewDocument()}
}

// Root returns the root element, or nil for an empty document.
func (d *Document) Root() *Element {
	root := d.doc.Root()
	if root == nil {
		return nil
	}

	return &Element{elem: root}
}

// Elements returns every element named tag anywhere in the document, in
// document order, including the root.
func (d *Document) Elements(tag string) []*Element {
	found := d.doc.FindElements("//" + tag)

	elements := make([]*Element, 0, len(found))
	for _, elem := range found {
		elements = append(elements, &Element{elem: elem})
	}

	return elements
}

// Tag returns the element's tag.
func (e *Element) Tag() string {
	return e.elem.Tag
}

// Text returns the element's character data.
func (e *Element) Text() string {
	return e.elem.Text()
}

// Nodes walks the element and its descendants in document order.
func (e *Element) Nodes() []Node {
	var nodes []Node

	var walk func(*etree.Element)

	walk = func(elem *etree.Element) {
		nodes = append(nodes, Node{
			Tag:  elem.Tag,
			Type: AttrType(elem.SelectAttrValue(constants.TypeAttr, "")),
			Text: elem.Text(),
			Nil:  elem.SelectAttrValue(constants.NilAttr, "") == "true",
		})

		for _, child := range elem.ChildElements() {
			walk(child)
		}
	}

	walk(e.elem)

	return nodes
}
