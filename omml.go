package formulasnap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Namespace is the Office Math namespace carried by every OMML fragment
// the serializer produces, exported for callers embedding output into
// docx packages.
const Namespace = "http://schemas.openxmlformats.org/officeDocument/2006/math"

// accentMarks lists the combining marks Word draws as accents. Anything
// else above a base becomes an upper limit.
var accentMarks = map[string]bool{
	"^":      true,
	"~":      true,
	"¯":      true,
	"˙":      true,
	"¨":      true,
	"˘":      true,
	"ˇ":      true,
	"̂": true,
	"̃": true,
	"̄": true,
	"̇": true,
	"̈": true,
	"̌": true,
	"⃗": true,
}

// naryGlyphs lists the operators rendered with Word's n-ary construct
// when they carry limits
var naryGlyphs = map[string]bool{
	"∫": true,
	"∬": true,
	"∭": true,
	"∮": true,
	"∑": true,
	"∏": true,
	"⋃": true,
	"⋂": true,
	"⋁": true,
	"⋀": true,
}

// OMML renders the nodes as an OMML math paragraph string.
func OMML(nodes []*Node) (string, error) {
	var sb strings.Builder
	if err := RenderOMML(&sb, nodes); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// RenderOMML writes the nodes as a Word math paragraph.
func RenderOMML(w io.Writer, nodes []*Node) error {
	enc := xml.NewEncoder(w)
	o := &ommlWriter{enc: enc}

	if err := o.open("m:oMathPara", xml.Attr{Name: xml.Name{Local: "xmlns:m"}, Value: Namespace}); err != nil {
		return err
	}

	if err := o.open("m:oMath"); err != nil {
		return err
	}

	if err := o.nodes(nodes); err != nil {
		return err
	}

	if err := o.close("m:oMath"); err != nil {
		return err
	}

	if err := o.close("m:oMathPara"); err != nil {
		return err
	}

	return enc.Flush()
}

// ommlWriter emits OMML through an XML token encoder. Element names are
// written with their m: prefix as literal local names, the namespace is
// declared once on the wrapper.
type ommlWriter struct {
	enc *xml.Encoder
}

func (o *ommlWriter) node(node *Node) error {
	switch node.Kind {
	case IdentifierKind, NumberKind, OperatorKind, TextKind, RawKind:
		return o.text(node.Data)
	case SpaceKind:
		return o.text(" ")
	case RowKind, TableRowKind:
		return o.nodes(node.Children)
	case FractionKind:
		return o.fraction(node)
	case SquareRootKind:
		return o.squareRoot(node)
	case RootKind:
		return o.root(node)
	case SuperscriptKind:
		return o.script(node, "m:sSup", "m:sSupPr", "m:sup")
	case SubscriptKind:
		return o.script(node, "m:sSub", "m:sSubPr", "m:sub")
	case SubSuperscriptKind:
		return o.subSuperscript(node)
	case OverKind:
		return o.over(node)
	case UnderKind:
		return o.under(node)
	case UnderOverKind:
		return o.underOver(node)
	case TableKind:
		return o.table(node)
	case FencedKind:
		return o.fenced(node)
	default:
		return fmt.Errorf("unexpected node kind %v", node.Kind)
	}
}

func (o *ommlWriter) nodes(nodes []*Node) error {
	for _, node := range nodes {
		if err := o.node(node); err != nil {
			return err
		}
	}

	return nil
}

// text writes a run, empty text writes nothing at all
func (o *ommlWriter) text(data string) error {
	if data == "" {
		return nil
	}

	if err := o.open("m:r"); err != nil {
		return err
	}

	if err := o.open("m:t"); err != nil {
		return err
	}

	if err := o.enc.EncodeToken(xml.CharData(data)); err != nil {
		return err
	}

	if err := o.close("m:t"); err != nil {
		return err
	}

	return o.close("m:r")
}

func (o *ommlWriter) fraction(node *Node) error {
	if err := o.open("m:f"); err != nil {
		return err
	}

	if err := o.open("m:fPr"); err != nil {
		return err
	}

	if err := o.value("m:type", "bar"); err != nil {
		return err
	}

	if err := o.close("m:fPr"); err != nil {
		return err
	}

	if err := o.element("m:num", node.Children[0]); err != nil {
		return err
	}

	if err := o.element("m:den", node.Children[1]); err != nil {
		return err
	}

	return o.close("m:f")
}

func (o *ommlWriter) squareRoot(node *Node) error {
	if err := o.open("m:rad"); err != nil {
		return err
	}

	if err := o.open("m:radPr"); err != nil {
		return err
	}

	if err := o.value("m:degHide", "1"); err != nil {
		return err
	}

	if err := o.close("m:radPr"); err != nil {
		return err
	}

	if err := o.empty("m:deg"); err != nil {
		return err
	}

	if err := o.element("m:e", node.Children...); err != nil {
		return err
	}

	return o.close("m:rad")
}

func (o *ommlWriter) root(node *Node) error {
	if err := o.open("m:rad"); err != nil {
		return err
	}

	if err := o.empty("m:radPr"); err != nil {
		return err
	}

	if err := o.element("m:deg", node.Children[1]); err != nil {
		return err
	}

	if err := o.element("m:e", node.Children[0]); err != nil {
		return err
	}

	return o.close("m:rad")
}

// script writes a one sided sub or superscript construct
func (o *ommlWriter) script(node *Node, tag, properties, slot string) error {
	if err := o.open(tag); err != nil {
		return err
	}

	if err := o.empty(properties); err != nil {
		return err
	}

	if err := o.element("m:e", node.Children[0]); err != nil {
		return err
	}

	if err := o.element(slot, node.Children[1]); err != nil {
		return err
	}

	return o.close(tag)
}

func (o *ommlWriter) subSuperscript(node *Node) error {
	if err := o.open("m:sSubSup"); err != nil {
		return err
	}

	if err := o.empty("m:sSubSupPr"); err != nil {
		return err
	}

	if err := o.element("m:e", node.Children[0]); err != nil {
		return err
	}

	if err := o.element("m:sub", node.Children[1]); err != nil {
		return err
	}

	if err := o.element("m:sup", node.Children[2]); err != nil {
		return err
	}

	return o.close("m:sSubSup")
}

func (o *ommlWriter) over(node *Node) error {
	if mark := String(node.Children[1]); accentMarks[mark] {
		if err := o.open("m:acc"); err != nil {
			return err
		}

		if err := o.open("m:accPr"); err != nil {
			return err
		}

		if err := o.value("m:chr", mark); err != nil {
			return err
		}

		if err := o.close("m:accPr"); err != nil {
			return err
		}

		if err := o.element("m:e", node.Children[0]); err != nil {
			return err
		}

		return o.close("m:acc")
	}

	return o.limit("m:limUpp", node.Children[0], node.Children[1])
}

func (o *ommlWriter) under(node *Node) error {
	if glyph := String(node.Children[0]); naryGlyphs[glyph] {
		if err := o.open("m:nary"); err != nil {
			return err
		}

		if err := o.open("m:naryPr"); err != nil {
			return err
		}

		if err := o.value("m:chr", glyph); err != nil {
			return err
		}

		if err := o.value("m:limLoc", "undOvr"); err != nil {
			return err
		}

		if err := o.value("m:supHide", "1"); err != nil {
			return err
		}

		if err := o.close("m:naryPr"); err != nil {
			return err
		}

		if err := o.element("m:sub", node.Children[1]); err != nil {
			return err
		}

		if err := o.empty("m:sup"); err != nil {
			return err
		}

		if err := o.empty("m:e"); err != nil {
			return err
		}

		return o.close("m:nary")
	}

	return o.limit("m:limLow", node.Children[0], node.Children[1])
}

func (o *ommlWriter) underOver(node *Node) error {
	if glyph := String(node.Children[0]); naryGlyphs[glyph] {
		if err := o.open("m:nary"); err != nil {
			return err
		}

		if err := o.open("m:naryPr"); err != nil {
			return err
		}

		if err := o.value("m:chr", glyph); err != nil {
			return err
		}

		if err := o.value("m:limLoc", "undOvr"); err != nil {
			return err
		}

		if err := o.close("m:naryPr"); err != nil {
			return err
		}

		if err := o.element("m:sub", node.Children[1]); err != nil {
			return err
		}

		if err := o.element("m:sup", node.Children[2]); err != nil {
			return err
		}

		if err := o.empty("m:e"); err != nil {
			return err
		}

		return o.close("m:nary")
	}

	// stacked limits on an ordinary base nest the upper limit inside the
	// lower one
	if err := o.open("m:limLow"); err != nil {
		return err
	}

	if err := o.empty("m:limLowPr"); err != nil {
		return err
	}

	if err := o.open("m:e"); err != nil {
		return err
	}

	if err := o.limit("m:limUpp", node.Children[0], node.Children[2]); err != nil {
		return err
	}

	if err := o.close("m:e"); err != nil {
		return err
	}

	if err := o.element("m:lim", node.Children[1]); err != nil {
		return err
	}

	return o.close("m:limLow")
}

// limit writes a limLow or limUpp construct
func (o *ommlWriter) limit(tag string, base, lim *Node) error {
	if err := o.open(tag); err != nil {
		return err
	}

	if err := o.empty(tag + "Pr"); err != nil {
		return err
	}

	if err := o.element("m:e", base); err != nil {
		return err
	}

	if err := o.element("m:lim", lim); err != nil {
		return err
	}

	return o.close(tag)
}

func (o *ommlWriter) table(node *Node) error {
	if err := o.open("m:m"); err != nil {
		return err
	}

	if err := o.empty("m:mPr"); err != nil {
		return err
	}

	for _, row := range node.Children {
		if err := o.open("m:mr"); err != nil {
			return err
		}

		for _, cell := range row.Children {
			if err := o.element("m:e", cell); err != nil {
				return err
			}
		}

		if err := o.close("m:mr"); err != nil {
			return err
		}
	}

	return o.close("m:m")
}

func (o *ommlWriter) fenced(node *Node) error {
	if err := o.open("m:d"); err != nil {
		return err
	}

	if err := o.open("m:dPr"); err != nil {
		return err
	}

	if err := o.value("m:begChr", node.Parameters["open"]); err != nil {
		return err
	}

	if err := o.value("m:endChr", node.Parameters["close"]); err != nil {
		return err
	}

	if err := o.close("m:dPr"); err != nil {
		return err
	}

	if err := o.element("m:e", node.Children...); err != nil {
		return err
	}

	return o.close("m:d")
}

// element writes the nodes wrapped in a single element
func (o *ommlWriter) element(name string, nodes ...*Node) error {
	if err := o.open(name); err != nil {
		return err
	}

	if err := o.nodes(nodes); err != nil {
		return err
	}

	return o.close(name)
}

func (o *ommlWriter) open(name string, attrs ...xml.Attr) error {
	return o.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (o *ommlWriter) close(name string) error {
	return o.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func (o *ommlWriter) empty(name string) error {
	if err := o.open(name); err != nil {
		return err
	}

	return o.close(name)
}

// value writes an element carrying a single m:val attribute
func (o *ommlWriter) value(name, val string) error {
	if err := o.open(name, xml.Attr{Name: xml.Name{Local: "m:val"}, Value: val}); err != nil {
		return err
	}

	return o.close(name)
}
