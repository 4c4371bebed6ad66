package document

// Handler receives document events in order.
type Handler interface {
	StartDocument()
	StartElement(el *Element)
	EndElement(el *Element)
	ProcessingInstruction(pi *ProcessingInstruction)
	EndDocument()
}

// Walk replays doc as a depth-first event sequence. Text nodes produce no events;
// handlers read them through Element.SingleText or Element.Children.
func Walk(doc *Document, h Handler) {
	h.StartDocument()

	for _, n := range doc.Nodes {
		walkNode(n, h)
	}

	h.EndDocument()
}

func walkNode(n Node, h Handler) {
	switch v := n.(type) {
	case *Element:
		h.StartElement(v)

		for _, c := range v.Children {
			walkNode(c, h)
		}

		h.EndElement(v)
	case *ProcessingInstruction:
		h.ProcessingInstruction(v)
	}
}
