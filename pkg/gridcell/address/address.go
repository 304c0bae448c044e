// Package address converts between A1-style cell labels and zero-based
// (row, column) indices.
package address

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidArgument indicates a column index or column label outside the
// codec's domain.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrMalformedLabel indicates a cell label that is not letters followed by a
// positive row number.
var ErrMalformedLabel = errors.New("malformed cell label")

// MaxLabelLength is the longest column label that decodes without
// overflowing int.
const MaxLabelLength = 13

var (
	lettersPattern = regexp.MustCompile(`[A-Za-z]+`)
	digitsPattern  = regexp.MustCompile(`[0-9]+`)
)

// CellAddress is the zero-based identity of a cell.
type CellAddress struct {
	Row int
	Col int
}

// Label returns the A1-style label of the address, or "" if the address has
// a negative component.
func (a CellAddress) Label() string {
	label, err := FormatCellLabel(a)
	if err != nil {
		return ""
	}
	return label
}

func (a CellAddress) String() string {
	if label := a.Label(); label != "" {
		return label
	}
	return fmt.Sprintf("R%dC%d", a.Row, a.Col)
}

// ColumnIndexToLabel converts a zero-based column index to its letters-only
// label: 0 -> "A", 25 -> "Z", 26 -> "AA".
func ColumnIndexToLabel(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: negative column index %d", ErrInvalidArgument, index)
	}

	var buf [MaxLabelLength + 1]byte
	pos := len(buf)
	for n := index; n >= 0; n = n/26 - 1 {
		pos--
		buf[pos] = byte('A' + n%26)
	}
	return string(buf[pos:]), nil
}

// LabelToColumnIndex is the inverse of ColumnIndexToLabel. Input is
// case-insensitive.
func LabelToColumnIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty column label", ErrInvalidArgument)
	}
	if len(label) > MaxLabelLength {
		return 0, fmt.Errorf("%w: column label %q too long", ErrInvalidArgument, label)
	}

	upper := strings.ToUpper(label)
	index, weight := 0, 1
	// rightmost letter is the least significant digit; every other digit
	// counts from 1 because the scheme has no zero symbol
	for i := len(upper) - 1; i >= 0; i-- {
		ch := upper[i]
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: column label %q contains %q", ErrInvalidArgument, label, ch)
		}
		digit := int(ch - 'A')
		if i != len(upper)-1 {
			digit++
		}
		index += digit * weight
		weight *= 26
	}
	return index, nil
}

// ParseCellLabel splits a label such as "AB12" into its column letters and
// 1-based row number and returns the zero-based address.
func ParseCellLabel(label string) (CellAddress, error) {
	letters := lettersPattern.FindStringIndex(label)
	digits := digitsPattern.FindStringIndex(label)
	if letters == nil || digits == nil {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrMalformedLabel, label)
	}
	// letters must open the label, digits must close it, nothing in between
	if letters[0] != 0 || letters[1] != digits[0] || digits[1] != len(label) {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrMalformedLabel, label)
	}

	col, err := LabelToColumnIndex(label[letters[0]:letters[1]])
	if err != nil {
		return CellAddress{}, fmt.Errorf("%w: %q: %v", ErrMalformedLabel, label, err)
	}

	row, err := strconv.Atoi(label[digits[0]:digits[1]])
	if err != nil || row < 1 {
		return CellAddress{}, fmt.Errorf("%w: %q: row must be a positive integer", ErrMalformedLabel, label)
	}

	return CellAddress{Row: row - 1, Col: col}, nil
}

// FormatCellLabel is the inverse of ParseCellLabel.
func FormatCellLabel(a CellAddress) (string, error) {
	if a.Row < 0 {
		return "", fmt.Errorf("%w: negative row index %d", ErrInvalidArgument, a.Row)
	}
	col, err := ColumnIndexToLabel(a.Col)
	if err != nil {
		return "", err
	}
	return col + strconv.Itoa(a.Row+1), nil
}
