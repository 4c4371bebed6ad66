package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Parse reads a whole document. Malformed input yields a *SyntaxError.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	doc := &Document{}

	var stack []*Element

	appendNode := func(n Node) {
		if len(stack) == 0 {
			doc.Nodes = append(doc.Nodes, n)
			return
		}

		top := stack[len(stack)-1]
		top.Children = append(top.Children, n)
	}

	for {
		line, _ := dec.InputPos()

		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, syntaxError(dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && doc.Root() != nil {
				return nil, syntaxError(dec, errors.New("unexpected element "+t.Name.Local+" after document element"))
			}

			el := &Element{
				Space: t.Name.Space,
				Name:  t.Name.Local,
				Attrs: convertAttrs(t.Attr),
				Line:  line,
			}
			appendNode(el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, syntaxError(dec, errors.New("character data outside the document element"))
				}

				continue
			}

			top := stack[len(stack)-1]
			if n := len(top.Children); n > 0 {
				if prev, ok := top.Children[n-1].(*Text); ok {
					prev.Data += string(t)
					continue
				}
			}

			appendNode(&Text{Data: string(t), Line: line})
		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}

			appendNode(&ProcessingInstruction{
				Target: t.Target,
				Data:   string(bytes.TrimSpace(t.Inst)),
				Line:   line,
			})
		}
	}

	if doc.Root() == nil {
		return nil, syntaxError(dec, errors.New("no document element"))
	}

	return doc, nil
}

// namespace declarations are not attributes of the mapped element
func convertAttrs(attrs []xml.Attr) []Attr {
	result := make([]Attr, 0, len(attrs))

	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}

		result = append(result, Attr{Space: a.Name.Space, Name: a.Name.Local, Value: a.Value})
	}

	return result
}

func syntaxError(dec *xml.Decoder, err error) *SyntaxError {
	line, col := dec.InputPos()
	msg := err.Error()

	var xerr *xml.SyntaxError
	if errors.As(err, &xerr) {
		msg = xerr.Msg
		if xerr.Line > 0 && xerr.Line != line {
			line, col = xerr.Line, 0
		}
	}

	return &SyntaxError{Line: line, Column: col, Msg: msg}
}
