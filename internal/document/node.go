package document

import "flexmap/internal/common"

// Node is an element, a text run or a processing instruction.
type Node interface {
	node()
	// SourceLine is the 1-based line where the node starts.
	SourceLine() int
}

// Attr is a single element attribute. Name is the local part; the namespace
// (URI, or prefix when undeclared) is kept in Space.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Element is an XML element with its attributes and child nodes in document order.
// Comments are not kept; adjacent character data is merged into one Text.
type Element struct {
	Space    string
	Name     string // local part, prefix stripped
	Attrs    []Attr
	Children []Node
	Line     int
}

// Text is a run of character data.
type Text struct {
	Data string
	Line int
}

// ProcessingInstruction is a <?target data?> node.
type ProcessingInstruction struct {
	Target string
	Data   string
	Line   int
}

func (*Element) node()               {}
func (*Text) node()                  {}
func (*ProcessingInstruction) node() {}

func (e *Element) SourceLine() int               { return e.Line }
func (t *Text) SourceLine() int                  { return t.Line }
func (p *ProcessingInstruction) SourceLine() int { return p.Line }

// SingleText returns the content of the element's only child when that child is text.
func (e *Element) SingleText() (string, bool) {
	if !common.IsSingle(e.Children) {
		return "", false
	}

	first, _ := common.First(e.Children)

	t, ok := first.(*Text)
	if !ok {
		return "", false
	}

	return t.Data, true
}

// Elements returns the element children.
func (e *Element) Elements() []*Element {
	var result []*Element

	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			result = append(result, el)
		}
	}

	return result
}

// Attr returns the value of the attribute with the given local name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// Document is a parsed document: top-level processing instructions and the root element.
type Document struct {
	Nodes []Node
}

// Root returns the document element.
func (d *Document) Root() *Element {
	for _, n := range d.Nodes {
		if el, ok := n.(*Element); ok {
			return el
		}
	}

	return nil
}
