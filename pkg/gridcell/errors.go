package gridcell

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gridcell-go/pkg/gridcell/address"
	"github.com/ukaji3/gridcell-go/pkg/gridcell/formula"
)

// ErrInvalidArgument indicates a column index or label outside the codec's domain.
var ErrInvalidArgument = address.ErrInvalidArgument

// ErrMalformedLabel indicates a cell label that cannot be parsed.
var ErrMalformedLabel = address.ErrMalformedLabel

// ErrParse indicates a formula that cannot be parsed.
var ErrParse = formula.ErrParse

// ErrCircularReference indicates a formula chain that refers back to itself.
var ErrCircularReference = formula.ErrCircularReference

// ErrDivideByZero indicates a division by zero.
var ErrDivideByZero = formula.ErrDivideByZero

// ErrValue indicates a non-numeric operand or a non-finite result.
var ErrValue = formula.ErrValue

// ErrFileNotFound indicates the input workbook does not exist.
var ErrFileNotFound = errors.New("file not found")

// Display markers for failed cells.
const (
	MarkerDiv0  = "#DIV/0!"
	MarkerCycle = "#CYCLE!"
	MarkerRef   = "#REF!"
	MarkerValue = "#VALUE!"
	MarkerError = "#ERROR!"
)

// Marker maps an evaluation error to the marker a grid would show in place
// of the value. It returns "" for a nil error.
func Marker(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDivideByZero):
		return MarkerDiv0
	case errors.Is(err, ErrCircularReference):
		return MarkerCycle
	case errors.Is(err, ErrValue):
		return MarkerValue
	case errors.Is(err, ErrParse):
		return MarkerError
	case errors.Is(err, ErrMalformedLabel), errors.Is(err, ErrInvalidArgument):
		return MarkerRef
	default:
		return MarkerError
	}
}

// ExtractionError represents an error while loading a sheet of a workbook.
type ExtractionError struct {
	SheetName string
	Cell      string
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Cell == "" {
		return fmt.Sprintf("extraction error in sheet %q: %v", e.SheetName, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q at %s: %v", e.SheetName, e.Cell, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, cell string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Cell:      cell,
		Err:       err,
	}
}
