package formulasnap

import (
	"encoding/xml"
	"io"
	"strings"
)

// ParseMathML reads a MathML document and returns the nodes it contains.
// The math wrapper, like any other container element, contributes a row.
// The parser is deliberately forgiving: namespace prefixes are ignored,
// unknown elements contribute their children, a truncated document simply
// ends early.
func ParseMathML(r io.Reader) ([]*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	p := &mathmlParser{dec: dec}
	return p.children()
}

// ParseMathMLString parses a MathML document held in a string.
func ParseMathMLString(doc string) ([]*Node, error) {
	return ParseMathML(strings.NewReader(doc))
}

type mathmlParser struct {
	dec *xml.Decoder
}

// children collects the nodes up to the closing tag of the enclosing
// element, or to the end of the document
func (p *mathmlParser) children() ([]*Node, error) {
	var nodes []*Node

	for {
		token, err := p.dec.Token()
		if err == io.EOF {
			return nodes, nil
		}

		if err != nil {
			return nil, &StructureError{Message: err.Error()}
		}

		switch t := token.(type) {
		case xml.StartElement:
			node, err := p.element(t)
			if err != nil {
				return nil, err
			}

			if node != nil {
				nodes = append(nodes, node)
			}
		case xml.EndElement:
			return nodes, nil
		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				nodes = append(nodes, &Node{Kind: RawKind, Data: text})
			}
		}
	}
}

func (p *mathmlParser) element(start xml.StartElement) (*Node, error) {
	switch start.Name.Local {
	case "math", "mrow", "mstyle", "mpadded", "mphantom", "menclose", "merror",
		"semantics", "annotation", "annotation-xml", "mtr", "mlabeledtr":
		children, err := p.children()
		if err != nil {
			return nil, err
		}

		return &Node{Kind: RowKind, Children: children}, nil
	case "mi":
		return p.leaf(IdentifierKind)
	case "mn":
		return p.leaf(NumberKind)
	case "mo":
		return p.leaf(OperatorKind)
	case "mtext", "ms":
		return p.leaf(TextKind)
	case "mfrac":
		return p.fixed(FractionKind, 2)
	case "msqrt":
		children, err := p.children()
		if err != nil {
			return nil, err
		}

		return &Node{Kind: SquareRootKind, Children: children}, nil
	case "mroot":
		return p.fixed(RootKind, 2)
	case "msub":
		return p.fixed(SubscriptKind, 2)
	case "msup":
		node, err := p.fixed(SuperscriptKind, 2)
		if err != nil {
			return nil, err
		}

		// a superscript wrapped around a subscript reads as one combined
		// script, x_a^b arrives in this shape after re-bracketing
		if base := node.Children[0]; base.Kind == SubscriptKind {
			return &Node{Kind: SubSuperscriptKind, Children: []*Node{
				base.Children[0],
				base.Children[1],
				node.Children[1],
			}}, nil
		}

		return node, nil
	case "msubsup":
		return p.fixed(SubSuperscriptKind, 3)
	case "mover":
		return p.fixed(OverKind, 2)
	case "munder":
		return p.fixed(UnderKind, 2)
	case "munderover":
		return p.fixed(UnderOverKind, 3)
	case "mtable":
		return p.table()
	case "mtd":
		children, err := p.children()
		if err != nil {
			return nil, err
		}

		if len(children) == 1 {
			return children[0], nil
		}

		return &Node{Kind: RowKind, Children: children}, nil
	case "mfenced":
		return p.fenced(start)
	case "mspace":
		// spacing elements carry no content worth keeping
		if _, err := p.children(); err != nil {
			return nil, err
		}

		return &Node{Kind: SpaceKind}, nil
	default:
		// an unknown element contributes whatever its children contribute
		children, err := p.children()
		if err != nil {
			return nil, err
		}

		switch len(children) {
		case 0:
			return &Node{Kind: RawKind}, nil
		case 1:
			return children[0], nil
		default:
			return &Node{Kind: RowKind, Children: children}, nil
		}
	}
}

// leaf reads the text content of a leaf element, flattening any markup
// nested inside it
func (p *mathmlParser) leaf(kind Kind) (*Node, error) {
	children, err := p.children()
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, child := range children {
		sb.WriteString(String(child))
	}

	return &Node{Kind: kind, Data: sb.String()}, nil
}

// fixed reads an element with a fixed child count, padding short content
// with empty rows and dropping extras
func (p *mathmlParser) fixed(kind Kind, arity int) (*Node, error) {
	children, err := p.children()
	if err != nil {
		return nil, err
	}

	for len(children) < arity {
		children = append(children, &Node{Kind: RowKind})
	}

	return &Node{Kind: kind, Children: children[:arity]}, nil
}

// table reads a mtable element. Row children turn into table rows cell by
// cell, any other child becomes a row of its own.
func (p *mathmlParser) table() (*Node, error) {
	children, err := p.children()
	if err != nil {
		return nil, err
	}

	var rows []*Node
	for _, child := range children {
		if child.Kind == RowKind {
			rows = append(rows, &Node{Kind: TableRowKind, Children: child.Children})
			continue
		}

		rows = append(rows, &Node{Kind: TableRowKind, Children: []*Node{child}})
	}

	return &Node{Kind: TableKind, Children: rows}, nil
}

func (p *mathmlParser) fenced(start xml.StartElement) (*Node, error) {
	opening, closing := "(", ")"
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "open":
			opening = attr.Value
		case "close":
			closing = attr.Value
		}
	}

	children, err := p.children()
	if err != nil {
		return nil, err
	}

	return &Node{
		Kind:       FencedKind,
		Parameters: map[string]string{"open": opening, "close": closing},
		Children:   children,
	}, nil
}
