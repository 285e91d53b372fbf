package formulasnap

import "fmt"

// UnsupportedSymbolError reports a LaTeX command or environment the
// grammar engine has no rendering for. Symbol keeps the offending name,
// backslash included for commands, so callers can show it to the user.
type UnsupportedSymbolError struct {
	Symbol string
}

func (e *UnsupportedSymbolError) Error() string {
	return fmt.Sprintf("unsupported latex symbol: %v", e.Symbol)
}

// ConversionError reports a formula the grammar engine rejected without
// naming a symbol the caller could act on.
type ConversionError struct {
	Message string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed: %v", e.Message)
}

// StructureError reports malformed MathML or OMML markup.
type StructureError struct {
	Message string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("malformed markup: %v", e.Message)
}
