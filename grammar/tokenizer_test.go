package grammar

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenizer_Token(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output []any
	}{
		{
			name:   "letters and operators",
			input:  "x+y=z",
			output: []any{Symbol("x"), Symbol("+"), Symbol("y"), Symbol("="), Symbol("z")},
		},
		{
			name:   "decimal number",
			input:  "12.5",
			output: []any{Number("12.5")},
		},
		{
			name:   "number followed by letter",
			input:  "2x",
			output: []any{Number("2"), Symbol("x")},
		},
		{
			name:   "commands",
			input:  "\\alpha+\\beta",
			output: []any{Command("\\alpha"), Symbol("+"), Command("\\beta")},
		},
		{
			name:  "scripts and groups",
			input: "x_{i}^{2}",
			output: []any{
				Symbol("x"),
				Symbol("_"), ParameterStart{}, Symbol("i"), ParameterEnd{},
				Symbol("^"), ParameterStart{}, Number("2"), ParameterEnd{},
			},
		},
		{
			name:  "optional argument",
			input: "\\sqrt[3]{8}",
			output: []any{
				Command("\\sqrt"),
				OptionalStart{}, Number("3"), OptionalEnd{},
				ParameterStart{}, Number("8"), ParameterEnd{},
			},
		},
		{
			name:   "one character commands",
			input:  "\\{x\\}",
			output: []any{Command("\\{"), Symbol("x"), Command("\\}")},
		},
		{
			name:   "row break",
			input:  "a\\\\b",
			output: []any{Symbol("a"), Command("\\\\"), Symbol("b")},
		},
		{
			name:   "starred command",
			input:  "\\operatorname*",
			output: []any{Command("\\operatorname*")},
		},
		{
			name:  "environment",
			input: "\\begin{matrix}a\\end{matrix}",
			output: []any{
				EnvironmentStart{Name: "matrix"},
				Symbol("a"),
				EnvironmentEnd{Name: "matrix"},
			},
		},
		{
			name:  "starred environment",
			input: "\\begin{align*}\\end{align*}",
			output: []any{
				EnvironmentStart{Name: "align*"},
				EnvironmentEnd{Name: "align*"},
			},
		},
		{
			name:   "comment runs to the end of line",
			input:  "a % not math\nb",
			output: []any{Symbol("a"), Symbol("b")},
		},
		{
			name:   "comment only",
			input:  "% nothing here",
			output: nil,
		},
		{
			name:   "whitespace is skipped",
			input:  "  a \t b ",
			output: []any{Symbol("a"), Symbol("b")},
		},
		{
			name:   "unicode letters",
			input:  "αβ",
			output: []any{Symbol("α"), Symbol("β")},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tokenizer := NewTokenizer(strings.NewReader(tc.input))

			var output []any
			for {
				token, err := tokenizer.Token()
				if err == io.EOF {
					break
				}

				if err != nil {
					t.Fatalf("unable to read token: %v", err)
				}

				output = append(output, token)
			}

			if !cmp.Equal(tc.output, output) {
				t.Errorf("token stream does not match:\n%s\n", cmp.Diff(tc.output, output))
			}
		})
	}
}

func TestTokenizer_TokenTrailingBackslash(t *testing.T) {
	tokenizer := NewTokenizer(strings.NewReader("\\"))

	if _, err := tokenizer.Token(); err == nil || err.Error() != "formula ends right after \\" {
		t.Errorf("expected trailing backslash error, got %v", err)
	}
}

func TestTokenizer_Verbatim(t *testing.T) {
	tokenizer := NewTokenizer(strings.NewReader("hello} world"))

	text, err := tokenizer.Verbatim(func(r rune, err error) bool {
		return err == io.EOF || r == '}'
	})

	if err != nil {
		t.Fatalf("unable to read verbatim text: %v", err)
	}

	if text != "hello" {
		t.Errorf("verbatim text does not match: want %q, got %q", "hello", text)
	}

	// the stopping rune is consumed, reading resumes after it
	token, err := tokenizer.Token()
	if err != nil {
		t.Fatalf("unable to read token: %v", err)
	}

	if !cmp.Equal(any(Symbol("w")), token) {
		t.Errorf("token after verbatim text does not match: %s", cmp.Diff(any(Symbol("w")), token))
	}
}

func TestTokenizer_VerbatimRunsToEOF(t *testing.T) {
	tokenizer := NewTokenizer(strings.NewReader("tail"))

	text, err := tokenizer.Verbatim(func(r rune, err error) bool {
		return err == io.EOF
	})

	if err != nil {
		t.Fatalf("unable to read verbatim text: %v", err)
	}

	if text != "tail" {
		t.Errorf("verbatim text does not match: want %q, got %q", "tail", text)
	}
}
