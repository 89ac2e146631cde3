package mathsolve

import (
	"errors"
	"math/big"
)

// ============================================================
// RatFunc: quotient of two polynomials over Q
// ============================================================

// RatFunc is num/den in a single variable. den is never the zero
// polynomial. Operations keep every denominator factor they produce so the
// solver can exclude the points where the original expression divides by
// zero.
type RatFunc struct {
	num, den Poly
}

// maxSymbolicExponent bounds integer powers of non-constant subtrees.
const maxSymbolicExponent = 64

func ratFuncConst(r *big.Rat) RatFunc { return RatFunc{num: polyConst(r), den: polyConst(ratOne)} }
func ratFuncX() RatFunc                { return RatFunc{num: polyX(), den: polyConst(ratOne)} }

func (f RatFunc) Num() Poly { return f.num }
func (f RatFunc) Den() Poly { return f.den }

func samePoly(a, b Poly) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

func (f RatFunc) add(g RatFunc) RatFunc {
	if samePoly(f.den, g.den) {
		return RatFunc{num: f.num.Add(g.num), den: f.den}
	}
	return RatFunc{num: f.num.Mul(g.den).Add(g.num.Mul(f.den)), den: f.den.Mul(g.den)}
}

func (f RatFunc) neg() RatFunc { return RatFunc{num: f.num.Neg(), den: f.den} }

func (f RatFunc) mul(g RatFunc) RatFunc {
	return RatFunc{num: f.num.Mul(g.num), den: f.den.Mul(g.den)}
}

func (f RatFunc) quo(g RatFunc) (RatFunc, error) {
	if g.num.IsZero() {
		return RatFunc{}, ErrDivisionByZero
	}
	return RatFunc{num: f.num.Mul(g.den), den: f.den.Mul(g.num)}, nil
}

func (f RatFunc) pow(n int64) (RatFunc, error) {
	if n < 0 {
		if f.num.IsZero() {
			return RatFunc{}, ErrDivisionByZero
		}
		return RatFunc{num: f.den.Pow(int(-n)), den: f.num.Pow(int(-n))}, nil
	}
	return RatFunc{num: f.num.Pow(int(n)), den: f.den.Pow(int(n))}, nil
}

// reduced cancels common factors and makes the denominator monic.
func (f RatFunc) reduced() RatFunc {
	if f.num.IsZero() {
		return RatFunc{den: polyConst(ratOne)}
	}
	g := polyGCD(f.num, f.den)
	num, _ := f.num.DivMod(g)
	den, _ := f.den.DivMod(g)
	scale := new(big.Rat).Inv(den.Lead())
	return RatFunc{num: num.Scale(scale), den: den.Scale(scale)}
}

// Expr renders the reduced form in the named variable.
func (f RatFunc) Expr(variable string) Expr {
	r := f.reduced()
	if r.den.IsConstant() {
		return r.num.Expr(variable)
	}
	return DivOf(r.num.Expr(variable), r.den.Expr(variable))
}

// toRatFunc converts e into a rational function of variable. Subtrees
// without the variable must evaluate exactly; the variable may not appear
// inside a function call or an exponent.
func toRatFunc(e Expr, variable string) (RatFunc, error) {
	if !containsVariable(e, variable) {
		v, err := EvalExact(e, nil)
		if err != nil {
			if errors.Is(err, errNotRational) {
				return RatFunc{}, unsupported("non-rational coefficient %s", e)
			}
			return RatFunc{}, err
		}
		return ratFuncConst(v), nil
	}
	switch v := e.(type) {
	case *Var:
		return ratFuncX(), nil
	case *Neg:
		x, err := toRatFunc(v.x, variable)
		if err != nil {
			return RatFunc{}, err
		}
		return x.neg(), nil
	case *Binary:
		if v.op == OpPow {
			return powToRatFunc(v, variable)
		}
		l, err := toRatFunc(v.left, variable)
		if err != nil {
			return RatFunc{}, err
		}
		r, err := toRatFunc(v.right, variable)
		if err != nil {
			return RatFunc{}, err
		}
		switch v.op {
		case OpAdd:
			return l.add(r), nil
		case OpSub:
			return l.add(r.neg()), nil
		case OpMul:
			return l.mul(r), nil
		default:
			return l.quo(r)
		}
	case *Call:
		return RatFunc{}, unsupported("%s inside %s(...)", variable, fnNames[v.fn])
	}
	return RatFunc{}, unsupported("cannot rewrite %s as a rational function", e)
}

func powToRatFunc(b *Binary, variable string) (RatFunc, error) {
	if containsVariable(b.right, variable) {
		return RatFunc{}, unsupported("%s in an exponent", variable)
	}
	exp, err := EvalExact(b.right, nil)
	if err != nil {
		if errors.Is(err, errNotRational) {
			return RatFunc{}, unsupported("non-rational exponent %s", b.right)
		}
		return RatFunc{}, err
	}
	if !exp.IsInt() || !exp.Num().IsInt64() {
		return RatFunc{}, unsupported("fractional power of %s", variable)
	}
	n := exp.Num().Int64()
	if n > maxSymbolicExponent || n < -maxSymbolicExponent {
		return RatFunc{}, unsupported("exponent %d is too large", n)
	}
	base, err := toRatFunc(b.left, variable)
	if err != nil {
		return RatFunc{}, err
	}
	return base.pow(n)
}
