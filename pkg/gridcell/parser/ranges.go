package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/gridcell-go/pkg/gridcell/address"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/models"
)

// ParseRange parses a range reference such as "A1:D10", "$A$1:$D$10",
// "Sheet1!A1:D10" or a single cell "C7". It returns the sheet name (empty
// when the reference has none) and the normalized area.
func ParseRange(ref string) (string, models.Area, error) {
	var sheetName string
	rangeStr := strings.TrimSpace(ref)

	// Split by ! to separate sheet name and range
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		sheetName = strings.Trim(rangeStr[:idx], "'")
		rangeStr = rangeStr[idx+1:]
	}

	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 {
		return "", models.Area{}, fmt.Errorf("%w: range %q", address.ErrMalformedLabel, ref)
	}

	start, err := address.ParseCellLabel(parts[0])
	if err != nil {
		return "", models.Area{}, err
	}
	end := start
	if len(parts) == 2 {
		end, err = address.ParseCellLabel(parts[1])
		if err != nil {
			return "", models.Area{}, err
		}
	}

	return sheetName, models.Area{
		R1: min(start.Row, end.Row),
		C1: min(start.Col, end.Col),
		R2: max(start.Row, end.Row),
		C2: max(start.Col, end.Col),
	}, nil
}

// FormatRange renders an area as "A1:D10", or "A1" for a single cell.
func FormatRange(area models.Area) (string, error) {
	start, err := address.FormatCellLabel(address.CellAddress{Row: area.R1, Col: area.C1})
	if err != nil {
		return "", err
	}
	if area.R1 == area.R2 && area.C1 == area.C2 {
		return start, nil
	}
	end, err := address.FormatCellLabel(address.CellAddress{Row: area.R2, Col: area.C2})
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}
