package formulasnap

// String flattens the character content of a node: leaf text plus the text of
// Row children. Other layout constructs contribute nothing.
func String(node *Node) (out string) {
	switch node.Kind {
	case IdentifierKind, NumberKind, OperatorKind, TextKind, RawKind:
		return node.Data
	case RowKind:
		for _, child := range node.Children {
			out += String(child)
		}
	}

	return
}
