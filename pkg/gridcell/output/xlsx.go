package output

import (
	"sort"
	"strconv"

	"github.com/ukaji3/gridcell-go/pkg/gridcell/models"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes the display values of a workbook to a new xlsx file, one
// sheet per evaluated sheet. Numeric display values are stored as numbers.
func WriteXLSX(path string, wb *models.WorkbookData) error {
	f := excelize.NewFile()
	defer f.Close()

	names := make([]string, 0, len(wb.Sheets))
	for name := range wb.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	defaultSheet := f.GetSheetName(0)
	keepDefault := false
	for _, name := range names {
		if name == defaultSheet {
			keepDefault = true
			continue
		}
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	for _, name := range names {
		for _, c := range wb.Sheets[name].Cells {
			if err := f.SetCellValue(name, c.Cell, typedValue(c)); err != nil {
				return err
			}
		}
	}

	if !keepDefault && len(names) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// typedValue returns a number for successfully evaluated numeric cells and
// the display string otherwise.
func typedValue(c models.CellData) any {
	if c.Error != "" {
		return c.Value
	}
	return parseValue(c.Value)
}

// parseValue attempts to parse a display value as a number.
// Returns int64 for integers, float64 for decimals, or the original string
// when the number would not print back identically (e.g. "007").
func parseValue(s string) any {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == s {
		return f
	}
	// Return as string
	return s
}
