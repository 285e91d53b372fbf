package formulasnap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMathML(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output []*Node
	}{
		{
			name:  "identifier",
			input: "<math><mi>x</mi></math>",
			output: []*Node{
				{Kind: RowKind, Children: []*Node{
					{Kind: IdentifierKind, Data: "x"},
				}},
			},
		},
		{
			name:  "row of leaves",
			input: "<mrow><mi>a</mi><mo>+</mo><mn>1</mn></mrow>",
			output: []*Node{
				{Kind: RowKind, Children: []*Node{
					{Kind: IdentifierKind, Data: "a"},
					{Kind: OperatorKind, Data: "+"},
					{Kind: NumberKind, Data: "1"},
				}},
			},
		},
		{
			name:  "fraction",
			input: "<mfrac><mi>a</mi><mi>b</mi></mfrac>",
			output: []*Node{
				{Kind: FractionKind, Children: []*Node{
					{Kind: IdentifierKind, Data: "a"},
					{Kind: IdentifierKind, Data: "b"},
				}},
			},
		},
		{
			name:  "short fraction is padded",
			input: "<mfrac><mi>a</mi></mfrac>",
			output: []*Node{
				{Kind: FractionKind, Children: []*Node{
					{Kind: IdentifierKind, Data: "a"},
					{Kind: RowKind},
				}},
			},
		},
		{
			name:  "overfull fraction drops extras",
			input: "<mfrac><mi>a</mi><mi>b</mi><mi>c</mi></mfrac>",
			output: []*Node{
				{Kind: FractionKind, Children: []*Node{
					{Kind: IdentifierKind, Data: "a"},
					{Kind: IdentifierKind, Data: "b"},
				}},
			},
		},
		{
			name:  "superscript around subscript combines",
			input: "<msup><msub><mi>X</mi><mi>a</mi></msub><mi>b</mi></msup>",
			output: []*Node{
				{Kind: SubSuperscriptKind, Children: []*Node{
					{Kind: IdentifierKind, Data: "X"},
					{Kind: IdentifierKind, Data: "a"},
					{Kind: IdentifierKind, Data: "b"},
				}},
			},
		},
		{
			name:  "plain superscript stays",
			input: "<msup><mi>x</mi><mn>2</mn></msup>",
			output: []*Node{
				{Kind: SuperscriptKind, Children: []*Node{
					{Kind: IdentifierKind, Data: "x"},
					{Kind: NumberKind, Data: "2"},
				}},
			},
		},
		{
			name:  "markup nested in a leaf flattens",
			input: "<mi><b>s</b>in</mi>",
			output: []*Node{
				{Kind: IdentifierKind, Data: "sin"},
			},
		},
		{
			name:  "namespace prefixes are ignored",
			input: `<m:math xmlns:m="http://www.w3.org/1998/Math/MathML"><m:mi>x</m:mi></m:math>`,
			output: []*Node{
				{Kind: RowKind, Children: []*Node{
					{Kind: IdentifierKind, Data: "x"},
				}},
			},
		},
		{
			name:  "table",
			input: "<mtable><mtr><mtd><mi>a</mi></mtd><mtd><mi>b</mi></mtd></mtr></mtable>",
			output: []*Node{
				{Kind: TableKind, Children: []*Node{
					{Kind: TableRowKind, Children: []*Node{
						{Kind: IdentifierKind, Data: "a"},
						{Kind: IdentifierKind, Data: "b"},
					}},
				}},
			},
		},
		{
			name:  "bare table child becomes its own row",
			input: "<mtable><mi>x</mi></mtable>",
			output: []*Node{
				{Kind: TableKind, Children: []*Node{
					{Kind: TableRowKind, Children: []*Node{
						{Kind: IdentifierKind, Data: "x"},
					}},
				}},
			},
		},
		{
			name:  "cell with several children wraps in a row",
			input: "<mtable><mtr><mtd><mi>a</mi><mo>+</mo></mtd></mtr></mtable>",
			output: []*Node{
				{Kind: TableKind, Children: []*Node{
					{Kind: TableRowKind, Children: []*Node{
						{Kind: RowKind, Children: []*Node{
							{Kind: IdentifierKind, Data: "a"},
							{Kind: OperatorKind, Data: "+"},
						}},
					}},
				}},
			},
		},
		{
			name:  "fence defaults to parentheses",
			input: "<mfenced><mi>x</mi></mfenced>",
			output: []*Node{
				{
					Kind:       FencedKind,
					Parameters: map[string]string{"open": "(", "close": ")"},
					Children:   []*Node{{Kind: IdentifierKind, Data: "x"}},
				},
			},
		},
		{
			name:  "fence keeps an empty close attribute",
			input: `<mfenced open="{" close=""><mi>x</mi></mfenced>`,
			output: []*Node{
				{
					Kind:       FencedKind,
					Parameters: map[string]string{"open": "{", "close": ""},
					Children:   []*Node{{Kind: IdentifierKind, Data: "x"}},
				},
			},
		},
		{
			name:  "unknown element contributes its child",
			input: "<unknown><mi>x</mi></unknown>",
			output: []*Node{
				{Kind: IdentifierKind, Data: "x"},
			},
		},
		{
			name:   "empty unknown element is empty raw data",
			input:  "<maligngroup/>",
			output: []*Node{{Kind: RawKind}},
		},
		{
			name:  "character data between elements",
			input: "<mrow>text</mrow>",
			output: []*Node{
				{Kind: RowKind, Children: []*Node{
					{Kind: RawKind, Data: "text"},
				}},
			},
		},
		{
			name:   "space element",
			input:  `<mspace width="1em"/>`,
			output: []*Node{{Kind: SpaceKind}},
		},
		{
			name:  "truncated document ends early",
			input: "<math><mi>x</mi>",
			output: []*Node{
				{Kind: RowKind, Children: []*Node{
					{Kind: IdentifierKind, Data: "x"},
				}},
			},
		},
		{
			name:   "empty math element",
			input:  "<math></math>",
			output: []*Node{{Kind: RowKind}},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			output, err := ParseMathMLString(tc.input)
			if err != nil {
				t.Fatalf("unable to parse mathml: %v", err)
			}

			if !cmp.Equal(tc.output, output) {
				t.Errorf("parsed nodes do not match:\n%s\n", cmp.Diff(tc.output, output))
			}
		})
	}
}

func TestParseMathMLMalformed(t *testing.T) {
	_, err := ParseMathMLString("<mrow")

	var structural *StructureError
	if !errors.As(err, &structural) {
		t.Errorf("expected a structure error, got %v", err)
	}
}
