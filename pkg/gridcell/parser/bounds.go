package parser

import (
	"github.com/ukaji3/gridcell-go/pkg/gridcell/address"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/models"
)

// DataBounds finds the bounding box of the given cells.
// The second result is false when there are no cells.
func DataBounds(cells []address.CellAddress) (models.Area, bool) {
	if len(cells) == 0 {
		return models.Area{}, false
	}

	area := models.Area{
		R1: cells[0].Row, C1: cells[0].Col,
		R2: cells[0].Row, C2: cells[0].Col,
	}
	for _, c := range cells[1:] {
		area.R1 = min(area.R1, c.Row)
		area.R2 = max(area.R2, c.Row)
		area.C1 = min(area.C1, c.Col)
		area.C2 = max(area.C2, c.Col)
	}

	return area, true
}

// UsedRange returns the range notation (e.g. "A1:D10") of the bounding box
// of the given cells, or "" when there are none.
func UsedRange(cells []address.CellAddress) string {
	area, ok := DataBounds(cells)
	if !ok {
		return ""
	}
	rangeStr, err := FormatRange(area)
	if err != nil {
		return ""
	}
	return rangeStr
}

// Density returns the share of cells in the bounding box that are occupied.
func Density(cells []address.CellAddress) float64 {
	area, ok := DataBounds(cells)
	if !ok {
		return 0
	}
	total := (area.R2 - area.R1 + 1) * (area.C2 - area.C1 + 1)
	return float64(len(cells)) / float64(total)
}
