package grammar

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Namespace is the XML namespace of every MathML document the grammar
// produces.
const Namespace = "http://www.w3.org/1998/Math/MathML"

// Style selects how a formula sits in the surrounding text.
type Style int

const (
	Inline Style = iota
	Display
)

// ToMathML parses a formula and renders it as MathML in one step.
func ToMathML(formula string, style Style) (string, error) {
	node, err := ParseString(formula)
	if err != nil {
		return "", err
	}

	return MathML(node, style)
}

// MathML renders the node tree as a MathML document string.
func MathML(node *Node, style Style) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, node, style); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Render writes the node tree as a MathML document. A row at the root
// spills its children straight into the math element.
func Render(w io.Writer, node *Node, style Style) error {
	display := "inline"
	if style == Display {
		display = "block"
	}

	if _, err := fmt.Fprintf(w, `<math xmlns="%s" display="%s">`, Namespace, display); err != nil {
		return err
	}

	if node.Kind == RowKind {
		if err := renderChildren(w, node); err != nil {
			return err
		}
	} else if err := renderNode(w, node); err != nil {
		return err
	}

	_, err := fmt.Fprint(w, "</math>")
	return err
}

func renderNode(w io.Writer, node *Node) error {
	switch node.Kind {
	case IdentifierKind:
		return renderLeaf(w, "mi", node.Data)
	case NumberKind:
		return renderLeaf(w, "mn", node.Data)
	case OperatorKind:
		return renderLeaf(w, "mo", node.Data)
	case TextKind:
		return renderLeaf(w, "mtext", node.Data)
	case SpaceKind:
		_, err := fmt.Fprint(w, `<mspace width="0.167em"/>`)
		return err
	case RowKind:
		return renderElement(w, "mrow", node)
	case FractionKind:
		return renderElement(w, "mfrac", node)
	case SquareRootKind:
		return renderElement(w, "msqrt", node)
	case RootKind:
		return renderElement(w, "mroot", node)
	case SuperscriptKind:
		return renderElement(w, "msup", node)
	case SubscriptKind:
		return renderElement(w, "msub", node)
	case SubSuperscriptKind:
		return renderElement(w, "msubsup", node)
	case OverKind:
		return renderMark(w, "mover", "accent", node)
	case UnderKind:
		return renderMark(w, "munder", "accentunder", node)
	case UnderOverKind:
		return renderElement(w, "munderover", node)
	case TableKind:
		return renderElement(w, "mtable", node)
	case TableRowKind:
		return renderElement(w, "mtr", node)
	case CellKind:
		return renderElement(w, "mtd", node)
	case FencedKind:
		return renderFenced(w, node)
	default:
		return fmt.Errorf("unexpected node kind %v", node.Kind)
	}
}

func renderLeaf(w io.Writer, tag, data string) error {
	if _, err := fmt.Fprintf(w, "<%s>", tag); err != nil {
		return err
	}

	if err := escape(w, data); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

func renderElement(w io.Writer, tag string, node *Node) error {
	if _, err := fmt.Fprintf(w, "<%s>", tag); err != nil {
		return err
	}

	if err := renderChildren(w, node); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

// renderMark renders an under or over pair, flagging accent marks so the
// reader keeps them tight against the base
func renderMark(w io.Writer, tag, attr string, node *Node) error {
	if node.Parameters["accent"] != "true" {
		return renderElement(w, tag, node)
	}

	if _, err := fmt.Fprintf(w, `<%s %s="true">`, tag, attr); err != nil {
		return err
	}

	if err := renderChildren(w, node); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

func renderFenced(w io.Writer, node *Node) error {
	if _, err := fmt.Fprint(w, `<mfenced open="`); err != nil {
		return err
	}

	if err := escape(w, node.Parameters["open"]); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, `" close="`); err != nil {
		return err
	}

	if err := escape(w, node.Parameters["close"]); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, `">`); err != nil {
		return err
	}

	if err := renderChildren(w, node); err != nil {
		return err
	}

	_, err := fmt.Fprint(w, "</mfenced>")
	return err
}

func renderChildren(w io.Writer, node *Node) error {
	for _, child := range node.Children {
		if err := renderNode(w, child); err != nil {
			return err
		}
	}

	return nil
}

// escape writes text with XML special characters encoded
func escape(w io.Writer, text string) error {
	return xml.EscapeText(w, []byte(text))
}
