package gridcell

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ukaji3/gridcell-go/pkg/gridcell/formula"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/models"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/parser"
	"github.com/xuri/excelize/v2"
)

// Extract loads a workbook and evaluates the cells of its sheets.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ExtractFile(f, filepath.Base(path), opts)
}

// ExtractFile evaluates the cells of an already opened workbook.
func ExtractFile(f *excelize.File, bookName string, opts Options) (*models.WorkbookData, error) {
	log := opts.logger()

	wanted := opts.Sheets
	if opts.Range != "" {
		rangeSheet, _, err := parser.ParseRange(opts.Range)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", opts.Range, err)
		}
		if rangeSheet != "" {
			wanted = []string{rangeSheet}
		}
	}

	sheetList := f.GetSheetList()
	for _, name := range wanted {
		if !slices.Contains(sheetList, name) {
			return nil, NewExtractionError(name, "", excelize.ErrSheetNotExist{SheetName: name})
		}
	}

	sheets := make(map[string]models.SheetData)
	for _, sheetName := range sheetList {
		if len(wanted) > 0 && !slices.Contains(wanted, sheetName) {
			continue
		}

		cells, err := parser.ReadRawCells(f, sheetName)
		if err != nil {
			// Log warning and continue with an empty sheet
			log.Warn("failed to read sheet", "sheet", sheetName, "error", NewExtractionError(sheetName, "", err))
			cells = nil
		}

		sheet := NewSheetFromCells(cells)
		sheet.SetCaching(!opts.DisableCache)
		log.Debug("sheet loaded", "sheet", sheetName, "cells", sheet.Len(), "used_range", sheet.UsedRange(),
			"density", parser.Density(sheet.addresses()))

		data, err := EvaluateSheet(sheet, opts)
		if err != nil {
			return nil, NewExtractionError(sheetName, "", err)
		}
		sheets[sheetName] = data
	}

	return &models.WorkbookData{
		BookName: bookName,
		Sheets:   sheets,
	}, nil
}

// EvaluateSheet evaluates the cells of a sheet selected by opts. A sheet
// name in opts.Range is ignored here. Evaluation errors are recorded per
// cell rather than returned; the error result is reserved for invalid
// options.
func EvaluateSheet(sheet *Sheet, opts Options) (models.SheetData, error) {
	var area *models.Area
	if opts.Range != "" {
		_, a, err := parser.ParseRange(opts.Range)
		if err != nil {
			return models.SheetData{}, fmt.Errorf("invalid range %q: %w", opts.Range, err)
		}
		area = &a
	}

	data := models.SheetData{UsedRange: sheet.UsedRange()}
	for _, c := range sheet.Cells() {
		if !opts.ShouldInclude(c.Raw) {
			continue
		}
		if area != nil && !area.Contains(c.Addr.Row, c.Addr.Col) {
			continue
		}

		cell := models.CellData{
			Cell: c.Addr.Label(),
			Row:  c.Addr.Row,
			Col:  c.Addr.Col,
			Raw:  c.Raw,
		}

		value, err := sheet.Display(c.Addr)
		if err != nil {
			cell.Value = Marker(err)
			cell.Error = err.Error()
		} else {
			cell.Value = value
		}

		if opts.ShouldIncludeReferences() && cell.IsFormula() {
			refs, err := formula.References(c.Raw)
			if err == nil {
				for _, ref := range refs {
					cell.References = append(cell.References, ref.Label())
				}
			}
		}

		data.Cells = append(data.Cells, cell)
	}

	return data, nil
}
