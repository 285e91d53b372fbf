package grammar_test

import (
	"testing"

	"github.com/Duang777/FormulaSnap/grammar"
)

// mathml wraps a rendered body in the math element ToMathML produces for
// inline formulas
func mathml(body string) string {
	return `<math xmlns="http://www.w3.org/1998/Math/MathML" display="inline">` + body + `</math>`
}

func TestToMathML(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "identifier",
			input:  "x",
			output: mathml("<mi>x</mi>"),
		},
		{
			name:   "expression",
			input:  "x+1",
			output: mathml("<mi>x</mi><mo>+</mo><mn>1</mn>"),
		},
		{
			name:   "fraction",
			input:  "\\frac{a}{b}",
			output: mathml("<mfrac><mi>a</mi><mi>b</mi></mfrac>"),
		},
		{
			name:   "subscript then superscript nests",
			input:  "x_i^2",
			output: mathml("<msup><msub><mi>x</mi><mi>i</mi></msub><mn>2</mn></msup>"),
		},
		{
			name:   "sum with limits",
			input:  "\\sum_{k}^{n}",
			output: mathml("<munderover><mo>∑</mo><mi>k</mi><mi>n</mi></munderover>"),
		},
		{
			name:   "accent",
			input:  "\\hat{x}",
			output: mathml(`<mover accent="true"><mi>x</mi><mo>^</mo></mover>`),
		},
		{
			name:   "underline",
			input:  "\\underline{x}",
			output: mathml(`<munder accentunder="true"><mi>x</mi><mo>_</mo></munder>`),
		},
		{
			name:   "square root",
			input:  "\\sqrt{2}",
			output: mathml("<msqrt><mn>2</mn></msqrt>"),
		},
		{
			name:   "nth root",
			input:  "\\sqrt[3]{x}",
			output: mathml("<mroot><mi>x</mi><mn>3</mn></mroot>"),
		},
		{
			name:   "text",
			input:  "\\text{iff}",
			output: mathml("<mtext>iff</mtext>"),
		},
		{
			name:   "special characters are escaped",
			input:  "a<b",
			output: mathml("<mi>a</mi><mo>&lt;</mo><mi>b</mi>"),
		},
		{
			name:   "tie renders as space",
			input:  "a~b",
			output: mathml(`<mi>a</mi><mspace width="0.167em"/><mi>b</mi>`),
		},
		{
			name:   "empty formula",
			input:  "",
			output: mathml(""),
		},
		{
			name:  "fenced matrix",
			input: "\\begin{pmatrix}a\\\\b\\end{pmatrix}",
			output: mathml(`<mfenced open="(" close=")">` +
				"<mtable>" +
				"<mtr><mtd><mi>a</mi></mtd></mtr>" +
				"<mtr><mtd><mi>b</mi></mtd></mtr>" +
				"</mtable>" +
				"</mfenced>"),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			output, err := grammar.ToMathML(tc.input, grammar.Inline)
			if err != nil {
				t.Fatalf("unable to convert formula: %v", err)
			}

			if tc.output != output {
				t.Errorf("mathml output does not match:\nwant: %s\n got: %s", tc.output, output)
			}
		})
	}
}

func TestToMathMLDisplayStyle(t *testing.T) {
	output, err := grammar.ToMathML("x", grammar.Display)
	if err != nil {
		t.Fatalf("unable to convert formula: %v", err)
	}

	expected := `<math xmlns="http://www.w3.org/1998/Math/MathML" display="block"><mi>x</mi></math>`
	if expected != output {
		t.Errorf("mathml output does not match:\nwant: %s\n got: %s", expected, output)
	}
}

func TestToMathMLError(t *testing.T) {
	if _, err := grammar.ToMathML("\\foo", grammar.Inline); err == nil {
		t.Error("expected an error for an unknown command")
	}
}
