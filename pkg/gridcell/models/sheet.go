package models

// SheetData represents the evaluated cells of a single sheet.
type SheetData struct {
	// UsedRange is the bounding range of non-empty cells, e.g. "A1:D10".
	UsedRange string `json:"used_range,omitempty"`
	// Cells contains evaluated cells in row-major order.
	Cells []CellData `json:"cells,omitempty"`
}

// Failed returns the cells whose evaluation failed.
func (s SheetData) Failed() []CellData {
	var failed []CellData
	for _, c := range s.Cells {
		if c.Error != "" {
			failed = append(failed, c)
		}
	}
	return failed
}
