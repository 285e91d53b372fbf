// Package grammar parses LaTeX math notation and renders it as MathML.
package grammar

type Kind int

const (
	IdentifierKind = iota
	NumberKind
	OperatorKind
	TextKind
	SpaceKind
	RowKind
	FractionKind
	SquareRootKind
	RootKind
	SuperscriptKind
	SubscriptKind
	SubSuperscriptKind
	OverKind
	UnderKind
	UnderOverKind
	TableKind
	TableRowKind
	CellKind
	FencedKind
)

// Node is one element of a parsed formula.
//
// Kinds with a fixed child layout: FractionKind holds [numerator,
// denominator], RootKind holds [base, index], SuperscriptKind holds
// [base, superscript], SubscriptKind holds [base, subscript],
// SubSuperscriptKind holds [base, subscript, superscript], OverKind
// holds [base, mark], UnderKind holds [base, mark] and UnderOverKind
// holds [base, under, over]. TableKind children are TableRowKind nodes
// whose children are CellKind nodes. FencedKind keeps its delimiters in
// Parameters under "open" and "close".
type Node struct {
	Kind       Kind
	Parameters map[string]string
	Data       string
	Children   []*Node
}
