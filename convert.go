// Package formulasnap converts math markup between LaTeX, MathML and
// OMML, the math language of Word documents. LaTeX input is healed
// before parsing, so formulas coming out of OCR convert as well as hand
// written ones.
package formulasnap

import (
	"errors"
	"strings"
	"unicode"

	"github.com/Duang777/FormulaSnap/grammar"
)

// Engine renders normalized LaTeX as MathML. The grammar package is the
// built-in engine, callers may bind their own.
type Engine func(latex string, style grammar.Style) (string, error)

// Converter runs the conversion pipeline with a fixed engine.
type Converter struct {
	engine Engine
}

// New returns a converter bound to the built-in grammar engine.
func New() *Converter {
	return NewWithEngine(grammar.ToMathML)
}

// NewWithEngine returns a converter bound to the given engine.
func NewWithEngine(engine Engine) *Converter {
	return &Converter{engine: engine}
}

// LatexToMathML heals a LaTeX formula and renders it as inline MathML.
func (c *Converter) LatexToMathML(latex string) (string, error) {
	mathml, err := c.engine(normalize(latex), grammar.Inline)
	if err != nil {
		return "", convertError(err)
	}

	return mathml, nil
}

// MathMLToOMML rewrites a MathML document as an OMML math paragraph.
func (c *Converter) MathMLToOMML(doc string) (string, error) {
	nodes, err := ParseMathMLString(doc)
	if err != nil {
		return "", err
	}

	out, err := OMML(nodes)
	if err != nil {
		return "", &StructureError{Message: err.Error()}
	}

	return out, nil
}

// LatexToOMML runs the full pipeline from LaTeX to OMML.
func (c *Converter) LatexToOMML(latex string) (string, error) {
	mathml, err := c.LatexToMathML(latex)
	if err != nil {
		return "", err
	}

	return c.MathMLToOMML(mathml)
}

// PrettyPrintOMML re-indents an OMML fragment for human eyes.
func (c *Converter) PrettyPrintOMML(doc string) (string, error) {
	var sb strings.Builder
	if err := PrettyPrint(&sb, strings.NewReader(doc)); err != nil {
		return "", err
	}

	return sb.String(), nil
}

var converter = New()

// LatexToMathML heals a LaTeX formula and renders it as inline MathML.
func LatexToMathML(latex string) (string, error) {
	return converter.LatexToMathML(latex)
}

// MathMLToOMML rewrites a MathML document as an OMML math paragraph.
func MathMLToOMML(doc string) (string, error) {
	return converter.MathMLToOMML(doc)
}

// LatexToOMML runs the full pipeline from LaTeX to OMML.
func LatexToOMML(latex string) (string, error) {
	return converter.LatexToOMML(latex)
}

// PrettyPrintOMML re-indents an OMML fragment for human eyes.
func PrettyPrintOMML(doc string) (string, error) {
	return converter.PrettyPrintOMML(doc)
}

// convertError maps an engine failure onto the package's error types. A
// typed unknown environment carries its name directly, otherwise the
// first backslash command mentioned in the message is the culprit.
func convertError(err error) error {
	var env *grammar.UnknownEnvironmentError
	if errors.As(err, &env) {
		return &UnsupportedSymbolError{Symbol: env.Name}
	}

	if symbol, ok := extractCommand(err.Error()); ok {
		return &UnsupportedSymbolError{Symbol: symbol}
	}

	return &ConversionError{Message: err.Error()}
}

// extractCommand finds the first backslash escaped command in a message
func extractCommand(message string) (string, bool) {
	i := strings.IndexByte(message, '\\')
	if i < 0 {
		return "", false
	}

	var sb strings.Builder
	for _, r := range message[i+1:] {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		sb.WriteRune(r)
	}

	if sb.Len() == 0 {
		return "", false
	}

	return "\\" + sb.String(), true
}
