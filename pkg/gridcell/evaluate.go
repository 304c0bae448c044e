package gridcell

import (
	"github.com/ukaji3/gridcell-go/pkg/gridcell/address"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/formula"
)

// Evaluate returns the display value for a raw cell value, resolving cell
// references through r. Literals are returned unchanged.
func Evaluate(raw string, r formula.Resolver) (string, error) {
	return formula.Evaluate(raw, r)
}

// DisplayOrMarker evaluates raw and substitutes the error marker on failure.
func DisplayOrMarker(raw string, r formula.Resolver) string {
	value, err := formula.Evaluate(raw, r)
	if err != nil {
		return Marker(err)
	}
	return value
}

// ColumnIndexToLabel converts a zero-based column index to its label.
func ColumnIndexToLabel(index int) (string, error) {
	return address.ColumnIndexToLabel(index)
}

// LabelToColumnIndex converts a column label to its zero-based index.
func LabelToColumnIndex(label string) (int, error) {
	return address.LabelToColumnIndex(label)
}

// ParseCellLabel converts a label such as "C7" to a zero-based address.
func ParseCellLabel(label string) (address.CellAddress, error) {
	return address.ParseCellLabel(label)
}
