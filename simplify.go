package mathsolve

import (
	"errors"
)

// ============================================================
// Simplification
// ============================================================

// Simplify returns a canonical form of e. Univariate rational expressions
// are rewritten as a reduced quotient of polynomials in descending powers;
// anything else gets exact constant folding and identity removal. When e
// cannot be simplified (for example it divides by zero) it is returned
// unchanged.
func Simplify(e Expr) Expr {
	s, err := simplify(e)
	if err != nil {
		return e
	}
	return s
}

func simplify(e Expr) (Expr, error) {
	vars := FreeVariables(e)
	switch len(vars) {
	case 0:
		v, err := EvalExact(e, nil)
		if err == nil {
			return NRat(v), nil
		}
		if errors.Is(err, ErrDivisionByZero) {
			return nil, err
		}
	case 1:
		rf, err := toRatFunc(e, vars[0])
		if err == nil {
			return rf.Expr(vars[0]), nil
		}
		if errors.Is(err, ErrDivisionByZero) {
			return nil, err
		}
	}
	return fold(e)
}

// fold evaluates exact constant subtrees and strips additive and
// multiplicative identities, bottom-up.
func fold(e Expr) (Expr, error) {
	switch v := e.(type) {
	case *Neg:
		x, err := fold(v.x)
		if err != nil {
			return nil, err
		}
		switch inner := x.(type) {
		case *Num:
			return inner.negated(), nil
		case *Neg:
			return inner.x, nil
		}
		return NegOf(x), nil
	case *Binary:
		l, err := fold(v.left)
		if err != nil {
			return nil, err
		}
		r, err := fold(v.right)
		if err != nil {
			return nil, err
		}
		ln, lok := l.(*Num)
		rn, rok := r.(*Num)
		if lok && rok {
			val, err := exactBinary(v.op, ln.val, rn.val)
			if err == nil {
				return NRat(val), nil
			}
			if errors.Is(err, ErrDivisionByZero) {
				return nil, err
			}
		}
		return foldIdentities(v.op, l, r)
	case *Call:
		x, err := fold(v.arg)
		if err != nil {
			return nil, err
		}
		if n, ok := x.(*Num); ok {
			if val, err := exactCall(v.fn, n.val); err == nil {
				return NRat(val), nil
			}
		}
		return CallOf(v.fn, x), nil
	}
	return e, nil
}

func foldIdentities(op Op, l, r Expr) (Expr, error) {
	ln, lok := l.(*Num)
	rn, rok := r.(*Num)
	switch op {
	case OpAdd:
		if lok && ln.IsZero() {
			return r, nil
		}
		if rok && rn.IsZero() {
			return l, nil
		}
	case OpSub:
		if rok && rn.IsZero() {
			return l, nil
		}
		if lok && ln.IsZero() {
			return NegOf(r), nil
		}
	case OpMul:
		if (lok && ln.IsZero()) || (rok && rn.IsZero()) {
			return N(0), nil
		}
		if lok && ln.IsOne() {
			return r, nil
		}
		if rok && rn.IsOne() {
			return l, nil
		}
	case OpDiv:
		if rok && rn.IsZero() {
			return nil, ErrDivisionByZero
		}
		if rok && rn.IsOne() {
			return l, nil
		}
	case OpPow:
		if rok && rn.IsZero() {
			return N(1), nil
		}
		if rok && rn.IsOne() {
			return l, nil
		}
	}
	return binary(op, l, r), nil
}
