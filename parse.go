package mathsolve

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// Parser
// ============================================================

// Binding powers. Unary minus binds tighter than * and / but looser than
// ^, so -x^2 is -(x^2) and 2^-1 is 2^(-1).
const (
	bpAdd   = 10
	bpMul   = 20
	bpUnary = 30
	bpPow   = 40
)

var variableNames = map[string]bool{"x": true, "y": true, "z": true}

var constantNames = map[string]ConstKind{
	"pi": Pi,
	"e":  E,
	"i":  ImaginaryUnit,
	"I":  ImaginaryUnit,
}

// unsupportedFunctions are recognized names the solver does not handle.
var unsupportedFunctions = map[string]bool{
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true,
	"floor": true, "ceil": true,
}

type parser struct {
	toks []token
	i    int
}

// Parse turns canonical text into an expression tree. It returns a
// *ParseError for malformed input and an *UnsupportedEquationError for
// recognized but unsupported functions.
func Parse(canonical string) (Expr, error) {
	return parseAt(canonical, 0)
}

// ParseEquation splits canonical text on its single '=' and parses both
// sides.
func ParseEquation(canonical string) (Equation, error) {
	idx := strings.IndexByte(canonical, '=')
	if idx < 0 {
		return Equation{}, &ParseError{Reason: "missing '='", Position: len(canonical)}
	}
	if second := strings.IndexByte(canonical[idx+1:], '='); second >= 0 {
		return Equation{}, &ParseError{Reason: "more than one '='", Position: idx + 1 + second}
	}
	left, err := parseAt(canonical[:idx], 0)
	if err != nil {
		return Equation{}, err
	}
	right, err := parseAt(canonical[idx+1:], idx+1)
	if err != nil {
		return Equation{}, err
	}
	return Eq(left, right), nil
}

func parseAt(src string, offset int) (Expr, error) {
	toks, err := lex(src, offset)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, &ParseError{Reason: "empty expression", Position: p.peek().pos}
	}
	e, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		reason := "unexpected " + t.describe()
		switch t.kind {
		case tokRParen:
			reason = "unbalanced parentheses: unexpected ')'"
		case tokEquals:
			reason = "unexpected '=' in expression"
		}
		return nil, &ParseError{Reason: reason, Position: t.pos}
	}
	return e, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) need(kind tokenKind, msg string) error {
	t := p.peek()
	if t.kind != kind {
		return &ParseError{Reason: fmt.Sprintf("%s, found %s", msg, t.describe()), Position: t.pos}
	}
	p.i++
	return nil
}

// lbp returns the left binding power of an infix token.
func lbp(kind tokenKind) (Op, int, bool) {
	switch kind {
	case tokPlus:
		return OpAdd, bpAdd, true
	case tokMinus:
		return OpSub, bpAdd, true
	case tokStar:
		return OpMul, bpMul, true
	case tokSlash:
		return OpDiv, bpMul, true
	case tokCaret:
		return OpPow, bpPow, true
	}
	return 0, 0, false
}

func (p *parser) expr(minBP int) (Expr, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		op, bp, ok := lbp(t.kind)
		if !ok || bp <= minBP {
			return left, nil
		}
		p.i++
		if p.peek().kind == tokEOF {
			return nil, &ParseError{Reason: fmt.Sprintf("dangling operator '%s'", t.text), Position: t.pos}
		}
		rbp := bp
		if op == OpPow {
			rbp = bp - 1
		}
		right, err := p.expr(rbp)
		if err != nil {
			return nil, err
		}
		left = binary(op, left, right)
	}
}

func (p *parser) prefix() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return parseNumber(t)
	case tokIdent:
		return p.identifier(t)
	case tokMinus:
		x, err := p.operand(t)
		if err != nil {
			return nil, err
		}
		return NegOf(x), nil
	case tokPlus:
		return p.operand(t)
	case tokRadical:
		x, err := p.operand(t)
		if err != nil {
			return nil, err
		}
		return SqrtOf(x), nil
	case tokLParen:
		inner, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if err := p.need(tokRParen, "unbalanced parentheses: expected ')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokEOF:
		return nil, &ParseError{Reason: "unexpected end of input", Position: t.pos}
	case tokRParen:
		return nil, &ParseError{Reason: "unbalanced parentheses: unexpected ')'", Position: t.pos}
	}
	return nil, &ParseError{Reason: "unexpected " + t.describe(), Position: t.pos}
}

// operand parses the argument of a prefix operator.
func (p *parser) operand(op token) (Expr, error) {
	if p.peek().kind == tokEOF {
		return nil, &ParseError{Reason: fmt.Sprintf("dangling operator '%s'", op.text), Position: op.pos}
	}
	return p.expr(bpUnary)
}

func parseNumber(t token) (Expr, error) {
	text := t.text
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return nil, &ParseError{Reason: fmt.Sprintf("malformed number %q", t.text), Position: t.pos}
	}
	return &Num{val: r}, nil
}

func (p *parser) identifier(t token) (Expr, error) {
	name := t.text
	if fn, ok := functionsByName[name]; ok {
		if err := p.need(tokLParen, fmt.Sprintf("function '%s' needs a parenthesized argument", name)); err != nil {
			return nil, err
		}
		arg, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if err := p.need(tokRParen, "unbalanced parentheses: expected ')'"); err != nil {
			return nil, err
		}
		return CallOf(fn, arg), nil
	}
	if unsupportedFunctions[name] {
		return nil, unsupported("function '%s' is not supported", name)
	}
	if kind, ok := constantNames[name]; ok {
		return C(kind), nil
	}
	if variableNames[name] {
		return S(name), nil
	}
	if len(name) == 1 {
		return nil, &ParseError{Reason: fmt.Sprintf("unsupported variable '%s' (use x, y or z)", name), Position: t.pos}
	}
	return nil, &ParseError{Reason: fmt.Sprintf("unknown identifier '%s'", name), Position: t.pos}
}
