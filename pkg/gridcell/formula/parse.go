package formula

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/gridcell-go/pkg/gridcell/address"
	"github.com/xuri/efp"
)

// node is an element of a parsed formula.
type node interface {
	eval(e *evaluator) (float64, error)
}

type numberNode struct {
	value float64
}

type refNode struct {
	addr address.CellAddress
}

type unaryNode struct {
	op      byte // '-' or '%'
	operand node
}

type binaryNode struct {
	op          byte
	left, right node
}

// binary operator precedence; all operators are left-associative
var precedence = map[string]int{
	"+": 1,
	"-": 1,
	"*": 2,
	"/": 2,
	"^": 3,
}

// parser is a precedence-climbing parser over efp tokens.
type parser struct {
	tokens []efp.Token
	pos    int
}

// tokenize runs the efp tokenizer and drops tokens that carry no meaning
// for arithmetic (whitespace and unary plus, which efp marks as Noop).
func tokenize(raw string) []efp.Token {
	ps := efp.ExcelParser()
	tokens := ps.Parse(raw)

	result := make([]efp.Token, 0, len(tokens))
	for _, token := range tokens {
		if token.TType == efp.TokenTypeWhitespace || token.TType == efp.TokenTypeNoop {
			continue
		}
		result = append(result, token)
	}
	return result
}

// parse parses a formula string, including its leading "=".
func parse(raw string) (node, error) {
	p := &parser{tokens: tokenize(raw)}
	if len(p.tokens) == 0 {
		return nil, fmt.Errorf("%w: empty formula", ErrParse)
	}

	n, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, fmt.Errorf("%w: unexpected %s", ErrParse, describe(tok))
	}
	return n, nil
}

func (p *parser) peek() (efp.Token, bool) {
	if p.pos >= len(p.tokens) {
		return efp.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) parseExpr(minPrec int) (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.TType != efp.TokenTypeOperatorInfix {
			return left, nil
		}
		prec, known := precedence[tok.TValue]
		if !known {
			return nil, fmt.Errorf("%w: unsupported operator %q", ErrParse, tok.TValue)
		}
		if prec < minPrec {
			return left, nil
		}
		p.pos++

		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tok.TValue[0], left: left, right: right}
	}
}

// parseUnary handles prefix minus, which binds tighter than "^" as it does
// in Excel: =-2^2 is 4.
func (p *parser) parseUnary() (node, error) {
	tok, ok := p.peek()
	if ok && tok.TType == efp.TokenTypeOperatorPrefix {
		if tok.TValue != "-" {
			return nil, fmt.Errorf("%w: unsupported prefix %q", ErrParse, tok.TValue)
		}
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: '-', operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.TType != efp.TokenTypeOperatorPostfix {
			return n, nil
		}
		if tok.TValue != "%" {
			return nil, fmt.Errorf("%w: unsupported postfix %q", ErrParse, tok.TValue)
		}
		p.pos++
		n = &unaryNode{op: '%', operand: n}
	}
}

func (p *parser) parsePrimary() (node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of formula", ErrParse)
	}

	switch {
	case tok.TType == efp.TokenTypeOperand && tok.TSubType == efp.TokenSubTypeNumber:
		p.pos++
		v, err := strconv.ParseFloat(tok.TValue, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrParse, tok.TValue)
		}
		return &numberNode{value: v}, nil

	case tok.TType == efp.TokenTypeOperand && tok.TSubType == efp.TokenSubTypeRange:
		p.pos++
		ref := strings.ReplaceAll(tok.TValue, "$", "")
		if strings.ContainsAny(ref, ":!") {
			return nil, fmt.Errorf("%w: ranges and sheet references are not supported: %q", ErrParse, tok.TValue)
		}
		addr, err := address.ParseCellLabel(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return &refNode{addr: addr}, nil

	case tok.TType == efp.TokenTypeSubexpression && tok.TSubType == efp.TokenSubTypeStart:
		p.pos++
		inner, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok || closing.TType != efp.TokenTypeSubexpression || closing.TSubType != efp.TokenSubTypeStop {
			return nil, fmt.Errorf("%w: missing closing parenthesis", ErrParse)
		}
		p.pos++
		return inner, nil
	}

	return nil, fmt.Errorf("%w: unexpected %s", ErrParse, describe(tok))
}

func describe(tok efp.Token) string {
	if tok.TValue == "" {
		return strings.ToLower(tok.TType)
	}
	return fmt.Sprintf("%s %q", strings.ToLower(tok.TType), tok.TValue)
}

// references collects the cell references of a parsed formula in the order
// they appear, without duplicates.
func references(n node, seen map[address.CellAddress]bool, out []address.CellAddress) []address.CellAddress {
	switch n := n.(type) {
	case *refNode:
		if !seen[n.addr] {
			seen[n.addr] = true
			out = append(out, n.addr)
		}
	case *unaryNode:
		out = references(n.operand, seen, out)
	case *binaryNode:
		out = references(n.left, seen, out)
		out = references(n.right, seen, out)
	}
	return out
}
