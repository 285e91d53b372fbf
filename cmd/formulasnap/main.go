package main

import (
	"fmt"
	"io"
	"log"
	"os"

	arg "github.com/alexflint/go-arg"

	formulasnap "github.com/Duang777/FormulaSnap"
)

type args struct {
	Formula string `arg:"positional" help:"latex formula, read from --input or stdin when omitted"`
	Input   string `arg:"-i,--input" help:"read the formula from a file"`
	Output  string `arg:"-o,--output" help:"write the result to a file instead of stdout"`
	Format  string `arg:"-f,--format" default:"omml" help:"output format: mathml or omml"`
	Pretty  bool   `arg:"-p,--pretty" help:"indent the output"`
}

func (args) Description() string {
	return "formulasnap converts LaTeX math, OCR noise and all, into MathML or Word OMML"
}

func main() {
	var a args
	arg.MustParse(&a)

	formula, err := input(a)
	if err != nil {
		fail("unable to read input: %v", err)
	}

	var result string
	switch a.Format {
	case "omml":
		result, err = formulasnap.LatexToOMML(formula)
	case "mathml":
		result, err = formulasnap.LatexToMathML(formula)
	default:
		fail("unknown format %q, want mathml or omml", a.Format)
	}

	if err != nil {
		fail("unable to convert formula: %v", err)
	}

	if a.Pretty {
		if result, err = formulasnap.PrettyPrintOMML(result); err != nil {
			fail("unable to pretty print: %v", err)
		}
	}

	if err := output(a, result); err != nil {
		fail("unable to write output: %v", err)
	}
}

// input takes the formula from the argument, the input file or stdin
func input(a args) (string, error) {
	if a.Formula != "" {
		return a.Formula, nil
	}

	if a.Input != "" {
		data, err := os.ReadFile(a.Input)
		if err != nil {
			return "", err
		}

		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func output(a args, result string) error {
	if a.Output != "" {
		return os.WriteFile(a.Output, []byte(result+"\n"), 0644)
	}

	_, err := fmt.Println(result)
	return err
}

func fail(format string, args ...any) {
	log.Fatalf(format, args...)
}
