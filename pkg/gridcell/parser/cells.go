// Package parser reads raw cell values from workbooks and parses cell ranges.
package parser

import (
	"strings"

	"github.com/ukaji3/gridcell-go/pkg/gridcell/address"
	"github.com/xuri/excelize/v2"
)

// ReadRawCells reads the raw value of every non-empty cell in a sheet.
// Formula cells are returned as "=" followed by the formula text; other cells
// are returned as their unformatted stored value.
//
// Rows are read as far as their last cell with a stored value, so a formula
// with no cached result at the end of a row is not seen. Workbooks saved by
// a spreadsheet application always cache results.
func ReadRawCells(f *excelize.File, sheetName string) (map[address.CellAddress]string, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	result := make(map[address.CellAddress]string)
	for rowIdx, row := range rows {
		for colIdx, cellValue := range row {
			addr := address.CellAddress{Row: rowIdx, Col: colIdx}
			cellName, err := address.FormatCellLabel(addr)
			if err != nil {
				return nil, err
			}

			formula, err := f.GetCellFormula(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			if formula != "" {
				result[addr] = "=" + strings.TrimPrefix(formula, "=")
				continue
			}
			if cellValue != "" {
				result[addr] = cellValue
			}
		}
	}

	return result, nil
}
