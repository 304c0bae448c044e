// Package models defines the result structures produced by evaluation.
package models

// CellData represents one evaluated cell.
type CellData struct {
	// Cell is the A1-style label of the cell.
	Cell string `json:"cell"`
	// Row is the zero-based row index.
	Row int `json:"row"`
	// Col is the zero-based column index.
	Col int `json:"col"`
	// Raw is the value stored in the cell, formulas included.
	Raw string `json:"raw"`
	// Value is the display value, or an error marker such as "#DIV/0!".
	Value string `json:"value"`
	// Error describes why evaluation failed (empty on success).
	Error string `json:"error,omitempty"`
	// References lists the cells a formula refers to (optional).
	References []string `json:"references,omitempty"`
}

// IsFormula reports whether the cell holds a formula.
func (c CellData) IsFormula() bool {
	return len(c.Raw) > 0 && c.Raw[0] == '='
}
