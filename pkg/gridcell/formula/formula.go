// Package formula computes the display value of a cell from its raw value.
//
// A raw value starting with "=" is a formula: an arithmetic expression over
// numbers and cell references using + - * / ^, unary minus, postfix % and
// parentheses. Anything else is a literal and displays as-is. Referenced
// cells are read through a Resolver and evaluated recursively; the set of
// cells currently being evaluated is tracked so that reference cycles fail
// with ErrCircularReference instead of recursing forever.
package formula

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/gridcell-go/pkg/gridcell/address"
)

// Resolver returns the raw value stored at a cell, or "" for cells that hold
// nothing.
type Resolver interface {
	Resolve(addr address.CellAddress) string
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(addr address.CellAddress) string

// Resolve calls f(addr).
func (f ResolverFunc) Resolve(addr address.CellAddress) string {
	return f(addr)
}

var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// IsFormula reports whether raw is a formula rather than a literal.
func IsFormula(raw string) bool {
	return strings.HasPrefix(raw, "=")
}

// Evaluate returns the display value for raw.
func Evaluate(raw string, r Resolver) (string, error) {
	if !IsFormula(raw) {
		return raw, nil
	}
	e := newEvaluator(r)
	v, err := e.formula(raw)
	if err != nil {
		return "", atCell("", err)
	}
	return FormatNumber(v), nil
}

// EvaluateCell returns the display value of the cell at addr. Unlike
// Evaluate on the cell's raw value, a formula that refers to its own cell
// fails on the first re-entry.
func EvaluateCell(addr address.CellAddress, r Resolver) (string, error) {
	raw := r.Resolve(addr)
	if !IsFormula(raw) {
		return raw, nil
	}
	e := newEvaluator(r)
	e.inProgress[addr] = struct{}{}
	v, err := e.formula(raw)
	if err != nil {
		return "", atCell(addr.Label(), err)
	}
	return FormatNumber(v), nil
}

// References returns the distinct cells a formula refers to, in order of
// first appearance. Literals have no references.
func References(raw string) ([]address.CellAddress, error) {
	if !IsFormula(raw) {
		return nil, nil
	}
	n, err := parse(raw)
	if err != nil {
		return nil, NewError("", err)
	}
	return references(n, make(map[address.CellAddress]bool), nil), nil
}

// FormatNumber renders v the way formula results are displayed: shortest
// decimal form, no exponent, no negative zero.
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// evaluator carries the per-call evaluation state.
type evaluator struct {
	resolver   Resolver
	inProgress map[address.CellAddress]struct{}
}

func newEvaluator(r Resolver) *evaluator {
	return &evaluator{
		resolver:   r,
		inProgress: make(map[address.CellAddress]struct{}),
	}
}

func (e *evaluator) formula(raw string) (float64, error) {
	n, err := parse(raw)
	if err != nil {
		return 0, NewError("", err)
	}
	v, err := n.eval(e)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, NewError("", fmt.Errorf("%w: result is not a finite number", ErrValue))
	}
	return v, nil
}

// reference evaluates the cell at addr as a number.
func (e *evaluator) reference(addr address.CellAddress) (float64, error) {
	if _, busy := e.inProgress[addr]; busy {
		return 0, NewError(addr.Label(), ErrCircularReference)
	}
	e.inProgress[addr] = struct{}{}
	defer delete(e.inProgress, addr)

	v, err := e.number(e.resolver.Resolve(addr))
	if err != nil {
		return 0, atCell(addr.Label(), err)
	}
	return v, nil
}

// number converts a referenced raw value to a number. Empty cells count as
// zero.
func (e *evaluator) number(raw string) (float64, error) {
	if IsFormula(raw) {
		return e.formula(raw)
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	if !numberPattern.MatchString(trimmed) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrValue, raw)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrValue, raw)
	}
	return v, nil
}

func (n *numberNode) eval(e *evaluator) (float64, error) {
	return n.value, nil
}

func (n *refNode) eval(e *evaluator) (float64, error) {
	return e.reference(n.addr)
}

func (n *unaryNode) eval(e *evaluator) (float64, error) {
	v, err := n.operand.eval(e)
	if err != nil {
		return 0, err
	}
	if n.op == '%' {
		return v / 100, nil
	}
	return -v, nil
}

func (n *binaryNode) eval(e *evaluator) (float64, error) {
	left, err := n.left.eval(e)
	if err != nil {
		return 0, err
	}
	right, err := n.right.eval(e)
	if err != nil {
		return 0, err
	}

	switch n.op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, ErrDivideByZero
		}
		return left / right, nil
	case '^':
		return math.Pow(left, right), nil
	}
	return 0, fmt.Errorf("%w: unsupported operator %q", ErrParse, n.op)
}
