package grammar

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// UnknownEnvironmentError reports a \begin block the grammar has no
// rules for.
type UnknownEnvironmentError struct {
	Name string
}

func (e *UnknownEnvironmentError) Error() string {
	return fmt.Sprintf("unknown environment %v", e.Name)
}

type Parser struct {
	tokens *Tokenizer
	buf    []any
}

// Parse reads a formula and returns its element tree.
func Parse(r io.RuneScanner) (*Node, error) {
	return NewParser(r).Parse()
}

// ParseString parses a formula held in a string.
func ParseString(formula string) (*Node, error) {
	return Parse(strings.NewReader(formula))
}

func NewParser(r io.RuneScanner) *Parser {
	return &Parser{tokens: NewTokenizer(r)}
}

func (p *Parser) Parse() (*Node, error) {
	children, _, err := p.row(func(a any, err error) bool {
		return err == io.EOF
	})

	if err != nil {
		return nil, err
	}

	return &Node{Kind: RowKind, Children: children}, nil
}

// next returns the following token, taking pushed back tokens first
func (p *Parser) next() (any, error) {
	if n := len(p.buf); n > 0 {
		t := p.buf[n-1]
		p.buf = p.buf[:n-1]
		return t, nil
	}

	return p.tokens.Token()
}

// push returns a token so the next call to next sees it again
func (p *Parser) push(t any) {
	p.buf = append(p.buf, t)
}

// row collects atoms until stop reports the token that ends it. Script
// and prime symbols attach to the atom before them as they appear.
func (p *Parser) row(stop func(any, error) bool) (children []*Node, last any, err error) {
	pop := func() *Node {
		if n := len(children); n > 0 {
			node := children[n-1]
			children = children[:n-1]
			return node
		}

		return &Node{Kind: RowKind}
	}

	for {
		t, err := p.next()
		if stop(t, err) {
			return children, t, nil
		}

		if err != nil {
			return nil, nil, err
		}

		if s, ok := t.(Symbol); ok && (s == "_" || s == "^") {
			node, err := p.script(pop(), string(s))
			if err != nil {
				return nil, nil, err
			}

			children = append(children, node)
			continue
		}

		if s, ok := t.(Symbol); ok && s == "'" {
			marks, err := p.primes()
			if err != nil {
				return nil, nil, err
			}

			base := pop()
			children = append(children, &Node{Kind: SuperscriptKind, Children: []*Node{
				base,
				{Kind: OperatorKind, Data: marks},
			}})
			continue
		}

		node, err := p.atom(t)
		if err != nil {
			return nil, nil, err
		}

		if node == nil {
			continue
		}

		children = append(children, node)
	}
}

// script attaches a subscript or superscript to base. Large operators
// and limit style functions stack their scripts under and over the sign,
// anything else keeps them beside it. A base carrying one flavour of
// script may take the other, repeating the same flavour is an error.
func (p *Parser) script(base *Node, mark string) (*Node, error) {
	arg, err := p.argument()
	if err != nil {
		return nil, err
	}

	if mark == "_" {
		switch {
		case base.Kind == SubscriptKind || base.Kind == SubSuperscriptKind || base.Kind == UnderOverKind:
			return nil, errors.New("double subscript")
		case base.Kind == UnderKind && movable(base.Children[0]):
			return nil, errors.New("double subscript")
		case base.Kind == OverKind && movable(base.Children[0]):
			return &Node{Kind: UnderOverKind, Children: []*Node{base.Children[0], arg, base.Children[1]}}, nil
		case movable(base):
			return &Node{Kind: UnderKind, Children: []*Node{base, arg}}, nil
		default:
			return &Node{Kind: SubscriptKind, Children: []*Node{base, arg}}, nil
		}
	}

	switch {
	case base.Kind == SuperscriptKind || base.Kind == SubSuperscriptKind || base.Kind == UnderOverKind:
		return nil, errors.New("double superscript")
	case base.Kind == OverKind && movable(base.Children[0]):
		return nil, errors.New("double superscript")
	case base.Kind == UnderKind && movable(base.Children[0]):
		return &Node{Kind: UnderOverKind, Children: []*Node{base.Children[0], base.Children[1], arg}}, nil
	case movable(base):
		return &Node{Kind: OverKind, Children: []*Node{base, arg}}, nil
	default:
		return &Node{Kind: SuperscriptKind, Children: []*Node{base, arg}}, nil
	}
}

// movable reports whether scripts on the node stack under and over it
func movable(node *Node) bool {
	switch node.Kind {
	case OperatorKind:
		return movableGlyphs[node.Data]
	case IdentifierKind:
		return movableNames[node.Data]
	default:
		return false
	}
}

// primes reads a run of apostrophes, the first one already consumed, and
// returns the prime mark they stand for
func (p *Parser) primes() (string, error) {
	count := 1
	for {
		t, err := p.next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return "", err
		}

		if s, ok := t.(Symbol); ok && s == "'" {
			count++
			continue
		}

		p.push(t)
		break
	}

	switch count {
	case 1:
		return "′", nil
	case 2:
		return "″", nil
	case 3:
		return "‴", nil
	case 4:
		return "⁗", nil
	default:
		return strings.Repeat("′", count), nil
	}
}

// argument reads the atom following a script or command. A brace group
// counts as one argument, a multi digit number gives up just its first
// digit, as TeX takes arguments one token at a time.
func (p *Parser) argument() (*Node, error) {
	t, err := p.next()
	if err == io.EOF {
		return nil, errors.New("formula ends where an argument is expected")
	}

	if err != nil {
		return nil, err
	}

	if num, ok := t.(Number); ok && len(num) > 1 {
		p.push(Number(num[1:]))
		return &Node{Kind: NumberKind, Data: string(num[:1])}, nil
	}

	node, err := p.atom(t)
	if err != nil || node != nil {
		return node, err
	}

	// the token dissolved into nothing, take the next one
	return p.argument()
}

func (p *Parser) atom(t any) (*Node, error) {
	switch token := t.(type) {
	case Symbol:
		return p.symbol(token), nil
	case Number:
		return &Node{Kind: NumberKind, Data: string(token)}, nil
	case Command:
		return p.command(token)
	case ParameterStart:
		return p.group()
	case OptionalStart:
		return &Node{Kind: OperatorKind, Data: "["}, nil
	case OptionalEnd:
		return &Node{Kind: OperatorKind, Data: "]"}, nil
	case EnvironmentStart:
		return p.environment(token)
	case ParameterEnd:
		return nil, errors.New("unexpected closing brace")
	case EnvironmentEnd:
		return nil, fmt.Errorf("unexpected end of environment %v", token.Name)
	default:
		return nil, fmt.Errorf("unexpected token %T", t)
	}
}

// symbol classifies a plain character: letters are identifiers, digits
// are numbers, the tie is a space and everything else is an operator
func (p *Parser) symbol(s Symbol) *Node {
	r := []rune(string(s))[0]

	switch {
	case r == '~':
		return &Node{Kind: SpaceKind}
	case unicode.IsLetter(r):
		return &Node{Kind: IdentifierKind, Data: string(s)}
	case unicode.IsDigit(r):
		return &Node{Kind: NumberKind, Data: string(s)}
	default:
		return &Node{Kind: OperatorKind, Data: string(s)}
	}
}

func (p *Parser) command(c Command) (*Node, error) {
	name := string(c)

	switch name {
	case "\\frac", "\\dfrac", "\\tfrac", "\\cfrac":
		return p.fraction()
	case "\\sqrt":
		return p.sqrt()
	case "\\text", "\\mbox", "\\hbox":
		return p.text()
	case "\\left", "\\right":
		// normalization removes these with their delimiter, a stray
		// survivor is dropped
		return nil, nil
	case "\\\\", "\\cr":
		// a row break outside an environment renders as a space
		return &Node{Kind: SpaceKind}, nil
	case "\\hline":
		return nil, nil
	}

	if a, ok := alphabets[name]; ok {
		return p.styledText(a)
	}

	if mark, ok := accents[name]; ok {
		return p.accent(OverKind, mark)
	}

	if mark, ok := underAccents[name]; ok {
		return p.accent(UnderKind, mark)
	}

	if glyph, ok := largeOperators[name]; ok {
		return &Node{Kind: OperatorKind, Data: glyph}, nil
	}

	if display, ok := functions[name]; ok {
		return &Node{Kind: IdentifierKind, Data: display}, nil
	}

	if glyph, ok := identifiers[name]; ok {
		return &Node{Kind: IdentifierKind, Data: glyph}, nil
	}

	if glyph, ok := operators[name]; ok {
		return &Node{Kind: OperatorKind, Data: glyph}, nil
	}

	if spacing[name] {
		return &Node{Kind: SpaceKind}, nil
	}

	return nil, fmt.Errorf("unknown command %v", c)
}

// group reads a braced group. A group of exactly one element stands for
// that element alone, anything else becomes a row. The end of the
// formula closes the group as well.
func (p *Parser) group() (*Node, error) {
	children, _, err := p.row(func(a any, err error) bool {
		if err == io.EOF {
			return true
		}

		_, ok := a.(ParameterEnd)
		return err == nil && ok
	})

	if err != nil {
		return nil, err
	}

	return wrap(children), nil
}

// wrap folds a child list into a single node
func wrap(children []*Node) *Node {
	if len(children) == 1 {
		return children[0]
	}

	return &Node{Kind: RowKind, Children: children}
}

// fraction reads the numerator and denominator of a fraction
func (p *Parser) fraction() (*Node, error) {
	num, err := p.argument()
	if err != nil {
		return nil, err
	}

	den, err := p.argument()
	if err != nil {
		return nil, err
	}

	return &Node{Kind: FractionKind, Children: []*Node{num, den}}, nil
}

// sqrt reads a square root, or a general root when the index option is
// present
func (p *Parser) sqrt() (*Node, error) {
	t, err := p.next()
	if err == io.EOF {
		return nil, errors.New("formula ends where an argument is expected")
	}

	if err != nil {
		return nil, err
	}

	if _, ok := t.(OptionalStart); ok {
		index, _, err := p.row(func(a any, err error) bool {
			if err == io.EOF {
				return true
			}

			_, ok := a.(OptionalEnd)
			return err == nil && ok
		})

		if err != nil {
			return nil, err
		}

		base, err := p.argument()
		if err != nil {
			return nil, err
		}

		return &Node{Kind: RootKind, Children: []*Node{base, wrap(index)}}, nil
	}

	p.push(t)

	base, err := p.argument()
	if err != nil {
		return nil, err
	}

	return &Node{Kind: SquareRootKind, Children: []*Node{base}}, nil
}

// text reads a brace delimited argument as literal text
func (p *Parser) text() (*Node, error) {
	content, err := p.textArgument()
	if err != nil {
		return nil, err
	}

	return &Node{Kind: TextKind, Data: content}, nil
}

// styledText reads a brace argument and bakes it into the alphabet, so
// the style survives consumers that only look at character data
func (p *Parser) styledText(a alphabet) (*Node, error) {
	content, err := p.textArgument()
	if err != nil {
		return nil, err
	}

	return &Node{Kind: IdentifierKind, Data: a.styled(content)}, nil
}

// textArgument reads the raw text of a brace group, nested braces and
// all. A bare symbol or number counts as a one token argument.
func (p *Parser) textArgument() (string, error) {
	t, err := p.next()
	if err == io.EOF {
		return "", errors.New("formula ends where an argument is expected")
	}

	if err != nil {
		return "", err
	}

	switch arg := t.(type) {
	case Symbol:
		return string(arg), nil
	case Number:
		return string(arg), nil
	case ParameterStart:
		depth := 0
		return p.tokens.Verbatim(func(r rune, err error) bool {
			if err == io.EOF {
				return true
			}

			if err != nil {
				return false
			}

			switch r {
			case '{':
				depth++
			case '}':
				if depth == 0 {
					return true
				}

				depth--
			}

			return false
		})
	default:
		return "", fmt.Errorf("expected parameter group beginning, but got %T instead", t)
	}
}

// accent draws a mark over or under its argument
func (p *Parser) accent(kind Kind, mark string) (*Node, error) {
	base, err := p.argument()
	if err != nil {
		return nil, err
	}

	return &Node{
		Kind:       kind,
		Parameters: map[string]string{"accent": "true"},
		Children:   []*Node{base, {Kind: OperatorKind, Data: mark}},
	}, nil
}

func (p *Parser) environment(e EnvironmentStart) (*Node, error) {
	switch e.Name {
	case "matrix", "smallmatrix", "aligned", "align", "align*", "gathered", "gather", "gather*", "split":
		return p.table(e, "", "")
	case "matrix*", "smallmatrix*":
		if err := p.alignment(); err != nil {
			return nil, err
		}

		return p.table(e, "", "")
	case "pmatrix":
		return p.table(e, "(", ")")
	case "bmatrix":
		return p.table(e, "[", "]")
	case "Bmatrix":
		return p.table(e, "{", "}")
	case "vmatrix":
		return p.table(e, "|", "|")
	case "Vmatrix":
		return p.table(e, "‖", "‖")
	case "cases":
		return p.table(e, "{", "")
	default:
		return nil, &UnknownEnvironmentError{Name: e.Name}
	}
}

// alignment skips the optional column alignment of starred matrix
// environments
func (p *Parser) alignment() error {
	t, err := p.next()
	if err == io.EOF {
		return nil
	}

	if err != nil {
		return err
	}

	if _, ok := t.(OptionalStart); !ok {
		p.push(t)
		return nil
	}

	_, _, err = p.row(func(a any, err error) bool {
		if err == io.EOF {
			return true
		}

		_, ok := a.(OptionalEnd)
		return err == nil && ok
	})

	return err
}

// table reads rows separated by \\ with cells separated by &, the shape
// shared by the matrix family, cases and the alignment environments.
// When open or close delimiters are given the table is wrapped in a
// fence.
func (p *Parser) table(e EnvironmentStart, open, close string) (*Node, error) {
	var rows []*Node
	hanging := &Node{Kind: TableRowKind}

	addCell := func(nodes []*Node) {
		hanging.Children = append(hanging.Children, &Node{Kind: CellKind, Children: nodes})
	}

	addHanging := func() {
		rows = append(rows, hanging)
		hanging = &Node{Kind: TableRowKind}
	}

	for {
		children, last, err := p.row(func(a any, err error) bool {
			if err == io.EOF {
				return true
			}

			if err != nil {
				return false
			}

			if n, ok := a.(EnvironmentEnd); ok {
				return n.Name == e.Name
			}

			if s, ok := a.(Symbol); ok {
				return s == "&"
			}

			if c, ok := a.(Command); ok {
				return c == "\\\\" || c == "\\cr" || c == "\\hline"
			}

			return false
		})

		if err != nil {
			return nil, err
		}

		if s, ok := last.(Symbol); ok && s == "&" {
			addCell(children)
			continue
		}

		if c, ok := last.(Command); ok {
			// a rule between rows adds nothing to the structure
			if c == "\\hline" {
				if len(children) > 0 {
					addCell(children)
				}

				continue
			}

			addCell(children)
			addHanging()
			continue
		}

		// environment end, or the formula ran out
		if len(children) > 0 || len(hanging.Children) > 0 {
			addCell(children)
		}

		if len(hanging.Children) > 0 {
			addHanging()
		}

		break
	}

	table := &Node{Kind: TableKind, Children: rows}
	if open == "" && close == "" {
		return table, nil
	}

	return &Node{
		Kind:       FencedKind,
		Parameters: map[string]string{"open": open, "close": close},
		Children:   []*Node{table},
	}, nil
}
