package formulasnap

import (
	"errors"
	"strings"
	"testing"
)

func TestPrettyPrint(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "nested elements",
			input:  "<a><b>text</b></a>",
			output: "<a>\n  <b>text</b>\n</a>",
		},
		{
			name:  "omml keeps its prefixes",
			input: `<m:oMathPara xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"><m:oMath><m:r><m:t>x</m:t></m:r></m:oMath></m:oMathPara>`,
			output: `<m:oMathPara xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">` +
				"\n  <m:oMath>\n    <m:r>\n      <m:t>x</m:t>\n    </m:r>\n  </m:oMath>\n</m:oMathPara>",
		},
		{
			name:  "prefixed attributes are restored",
			input: `<m:d xmlns:m="ns"><m:begChr m:val="("></m:begChr></m:d>`,
			output: `<m:d xmlns:m="ns">` +
				"\n  " + `<m:begChr m:val="("></m:begChr>` + "\n</m:d>",
		},
		{
			name:   "default namespace stays unprefixed",
			input:  `<math xmlns="http://www.w3.org/1998/Math/MathML"><mi>x</mi></math>`,
			output: `<math xmlns="http://www.w3.org/1998/Math/MathML">` + "\n  <mi>x</mi>\n</math>",
		},
		{
			name:   "undeclared prefix stays literal",
			input:  "<m:t>x</m:t>",
			output: "<m:t>x</m:t>",
		},
		{
			name:   "whitespace between elements is dropped",
			input:  "<a>\n\t   <b></b>  \n</a>",
			output: "<a>\n  <b></b>\n</a>",
		},
		{
			name:   "thin space is content, not whitespace",
			input:  "<m:r><m:t> </m:t></m:r>",
			output: "<m:r>\n  <m:t> </m:t>\n</m:r>",
		},
		{
			name:   "empty input",
			input:  "",
			output: "",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			if err := PrettyPrint(&sb, strings.NewReader(tc.input)); err != nil {
				t.Fatalf("unable to pretty print: %v", err)
			}

			if tc.output != sb.String() {
				t.Errorf("pretty printed output does not match:\nwant: %s\n got: %s", tc.output, sb.String())
			}

			// printing a second time must change nothing
			var again strings.Builder
			if err := PrettyPrint(&again, strings.NewReader(sb.String())); err != nil {
				t.Fatalf("unable to pretty print twice: %v", err)
			}

			if sb.String() != again.String() {
				t.Errorf("pretty printing is not idempotent:\nfirst: %s\nsecond: %s", sb.String(), again.String())
			}
		})
	}
}

func TestPrettyPrintMalformed(t *testing.T) {
	var sb strings.Builder
	err := PrettyPrint(&sb, strings.NewReader("<a"))

	var structural *StructureError
	if !errors.As(err, &structural) {
		t.Errorf("expected a structure error, got %v", err)
	}
}
