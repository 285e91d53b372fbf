package formulasnap

import (
	"encoding/xml"
	"io"
	"strings"
)

// PrettyPrint re-indents an XML document with two space steps, keeping
// element structure, attributes and trimmed text intact. Trimming takes
// ASCII whitespace only, a Unicode space such as the thin space in an
// OMML run is content and stays. The decoder resolves namespace
// prefixes away, so the printer tracks the xmlns declarations in scope
// and writes names back the way they appeared, keeping OMML in its m:
// form. Printing already pretty output changes nothing.
func PrettyPrint(w io.Writer, r io.Reader) error {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	var p prettyPrinter

	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}

		if err != nil {
			return &StructureError{Message: err.Error()}
		}

		switch t := token.(type) {
		case xml.StartElement:
			if err := enc.EncodeToken(p.start(t)); err != nil {
				return err
			}
		case xml.EndElement:
			if err := enc.EncodeToken(p.end()); err != nil {
				return err
			}
		case xml.CharData:
			text := strings.Trim(string(t), " \t\r\n")
			if text == "" {
				continue
			}

			if err := enc.EncodeToken(xml.CharData(text)); err != nil {
				return err
			}
		default:
			if err := enc.EncodeToken(token); err != nil {
				return err
			}
		}
	}

	return enc.Flush()
}

// prettyPrinter rebuilds prefixed names from namespace scopes
type prettyPrinter struct {
	scopes []map[string]string // namespace URI to declared prefix
	names  []xml.Name          // rewritten names of the open elements
}

func (p *prettyPrinter) start(t xml.StartElement) xml.StartElement {
	scope := map[string]string{}
	for _, attr := range t.Attr {
		switch {
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			scope[attr.Value] = ""
		case attr.Name.Space == "xmlns":
			scope[attr.Value] = attr.Name.Local
		}
	}

	p.scopes = append(p.scopes, scope)

	name := xml.Name{Local: p.prefixed(t.Name)}
	attrs := make([]xml.Attr, 0, len(t.Attr))
	for _, attr := range t.Attr {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: p.attribute(attr.Name)}, Value: attr.Value})
	}

	p.names = append(p.names, name)
	return xml.StartElement{Name: name, Attr: attrs}
}

func (p *prettyPrinter) end() xml.EndElement {
	if n := len(p.names); n > 0 {
		name := p.names[n-1]
		p.names = p.names[:n-1]
		p.scopes = p.scopes[:len(p.scopes)-1]
		return xml.EndElement{Name: name}
	}

	return xml.EndElement{}
}

// prefixed restores the prefix of an element name. A space the document
// never declared is a literal prefix and stays as it is.
func (p *prettyPrinter) prefixed(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}

	for i := len(p.scopes) - 1; i >= 0; i-- {
		prefix, ok := p.scopes[i][name.Space]
		if !ok {
			continue
		}

		if prefix == "" {
			return name.Local
		}

		return prefix + ":" + name.Local
	}

	return name.Space + ":" + name.Local
}

// attribute restores an attribute name, xmlns declarations included
func (p *prettyPrinter) attribute(name xml.Name) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == "xmlns":
		return "xmlns:" + name.Local
	}

	return p.prefixed(name)
}
