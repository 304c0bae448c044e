package formula

import (
	"errors"
	"fmt"
)

// ErrParse indicates a formula that does not match the supported grammar.
var ErrParse = errors.New("formula parse error")

// ErrCircularReference indicates a formula that transitively depends on
// itself.
var ErrCircularReference = errors.New("circular reference")

// ErrDivideByZero indicates a division whose divisor evaluated to zero.
var ErrDivideByZero = errors.New("division by zero")

// ErrValue indicates an operand that is not a number, or a result that is
// not a finite number.
var ErrValue = errors.New("value error")

// Error records the cell at which evaluation failed.
type Error struct {
	Cell string // label of the failing cell, "" for a free-standing formula
	Err  error
}

func (e *Error) Error() string {
	if e.Cell == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("cell %s: %v", e.Cell, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error.
func NewError(cell string, err error) *Error {
	return &Error{
		Cell: cell,
		Err:  err,
	}
}

// atCell attaches a cell label to err unless an inner cell already claimed it.
func atCell(cell string, err error) error {
	var fe *Error
	if errors.As(err, &fe) && fe.Cell != "" {
		return err
	}
	if fe != nil {
		return NewError(cell, fe.Err)
	}
	return NewError(cell, err)
}
