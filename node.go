package formulasnap

type Kind int

const (
	IdentifierKind = iota
	NumberKind
	OperatorKind
	TextKind
	RawKind
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
	FencedKind
	SpaceKind
)

// Node is one box of presentation math: a leaf carrying text in Data, or a
// layout construct carrying children. Fixed-arity kinds always have all their
// children, the parser pads missing ones with empty Row nodes:
//
//	FractionKind       [numerator, denominator]
//	RootKind           [base, index]
//	SuperscriptKind    [base, superscript]
//	SubscriptKind      [base, subscript]
//	SubSuperscriptKind [base, subscript, superscript]
//	OverKind           [base, mark]
//	UnderKind          [base, mark]
//	UnderOverKind      [base, under, over]
//
// TableKind children are TableRowKind nodes, their children are the cells.
// FencedKind keeps its delimiters in Parameters under "open" and "close".
type Node struct {
	Kind       Kind
	Parameters map[string]string
	Data       string
	Children   []*Node
}
