package mathsolve

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"
)

// ============================================================
// Exact evaluation
// ============================================================

// maxExactExponent bounds integer powers evaluated over big.Rat.
const maxExactExponent = 4096

// maxExactRootIndex bounds the denominator of rational exponents.
const maxExactRootIndex = 64

// EvalExact evaluates e over the rationals with the variables bound in env.
// It returns ErrDivisionByZero for a zero divisor and an error wrapping
// errNotRational when the value leaves Q (pi, e, inexact roots, complex).
func EvalExact(e Expr, env map[string]*big.Rat) (*big.Rat, error) {
	switch v := e.(type) {
	case *Num:
		return v.Rat(), nil
	case *Const:
		return nil, fmt.Errorf("%w: constant %s", errNotRational, v)
	case *Var:
		if val, ok := env[v.name]; ok {
			return new(big.Rat).Set(val), nil
		}
		return nil, fmt.Errorf("%w: free variable %s", errNotRational, v.name)
	case *Neg:
		x, err := EvalExact(v.x, env)
		if err != nil {
			return nil, err
		}
		return x.Neg(x), nil
	case *Binary:
		l, err := EvalExact(v.left, env)
		if err != nil {
			return nil, err
		}
		r, err := EvalExact(v.right, env)
		if err != nil {
			return nil, err
		}
		return exactBinary(v.op, l, r)
	case *Call:
		if k, ok := piMultiple(v.arg); ok {
			val, exact, err := trigAtPiMultiple(v.fn, k)
			if err != nil {
				return nil, fmt.Errorf("%w: %s has a pole at %s", err, fnNames[v.fn], v.arg)
			}
			if exact {
				return val, nil
			}
		}
		x, err := EvalExact(v.arg, env)
		if err != nil {
			return nil, err
		}
		return exactCall(v.fn, x)
	}
	return nil, fmt.Errorf("%w: unknown node %T", errNotRational, e)
}

func exactBinary(op Op, l, r *big.Rat) (*big.Rat, error) {
	switch op {
	case OpAdd:
		return ratAdd(l, r), nil
	case OpSub:
		return ratSub(l, r), nil
	case OpMul:
		return ratMul(l, r), nil
	case OpDiv:
		if r.Sign() == 0 {
			return nil, ErrDivisionByZero
		}
		return ratQuo(l, r), nil
	}
	return exactPow(l, r)
}

func exactPow(base, exp *big.Rat) (*big.Rat, error) {
	if !exp.Num().IsInt64() || !exp.Denom().IsInt64() {
		return nil, fmt.Errorf("%w: exponent %s too large", errNotRational, exp.RatString())
	}
	p, q := exp.Num().Int64(), exp.Denom().Int64()
	if p > maxExactExponent || p < -maxExactExponent || q > maxExactRootIndex {
		return nil, fmt.Errorf("%w: exponent %s too large", errNotRational, exp.RatString())
	}
	if base.Sign() == 0 {
		if p < 0 {
			return nil, ErrDivisionByZero
		}
		if p == 0 {
			return big.NewRat(1, 1), nil
		}
		return new(big.Rat), nil
	}
	if q != 1 {
		root, ok := ratRoot(base, q)
		if !ok {
			return nil, fmt.Errorf("%w: %s^(%s) is not rational", errNotRational, base.RatString(), exp.RatString())
		}
		base = root
	}
	return ratPowInt(base, p), nil
}

func exactCall(fn Fn, x *big.Rat) (*big.Rat, error) {
	switch fn {
	case FnSqrt:
		if r, ok := ratRoot(x, 2); ok {
			return r, nil
		}
	case FnAbs:
		return ratAbs(x), nil
	case FnSin, FnTan:
		if x.Sign() == 0 {
			return new(big.Rat), nil
		}
	case FnCos, FnExp:
		if x.Sign() == 0 {
			return big.NewRat(1, 1), nil
		}
	case FnLn:
		if x.Cmp(ratOne) == 0 {
			return new(big.Rat), nil
		}
	case FnLog:
		if k, ok := log10Exact(x); ok {
			return ratInt(k), nil
		}
	}
	return nil, fmt.Errorf("%w: %s(%s)", errNotRational, fnNames[fn], x.RatString())
}

// piMultiple reports k when e is a rational multiple k*pi, written as pi,
// c*pi, pi*c, pi/c or a negation of one of those.
func piMultiple(e Expr) (*big.Rat, bool) {
	switch v := e.(type) {
	case *Const:
		if v.kind == Pi {
			return big.NewRat(1, 1), true
		}
	case *Neg:
		if k, ok := piMultiple(v.x); ok {
			return k.Neg(k), true
		}
	case *Binary:
		switch v.op {
		case OpMul:
			if k, ok := piMultiple(v.right); ok {
				if c, err := EvalExact(v.left, nil); err == nil {
					return ratMul(c, k), true
				}
			}
			if k, ok := piMultiple(v.left); ok {
				if c, err := EvalExact(v.right, nil); err == nil {
					return ratMul(k, c), true
				}
			}
		case OpDiv:
			if k, ok := piMultiple(v.left); ok {
				if c, err := EvalExact(v.right, nil); err == nil && c.Sign() != 0 {
					return ratQuo(k, c), true
				}
			}
		}
	}
	return nil, false
}

// trigAtPiMultiple evaluates sin, cos and tan exactly at half-integer
// multiples of pi. exact is false for every other function or angle.
// tan at an odd multiple of pi/2 returns ErrUndefined.
func trigAtPiMultiple(fn Fn, k *big.Rat) (val *big.Rat, exact bool, err error) {
	if fn != FnSin && fn != FnCos && fn != FnTan {
		return nil, false, nil
	}
	halfTurns := ratMul(ratInt(2), k)
	if !halfTurns.IsInt() {
		return nil, false, nil
	}
	// quarter is the angle in units of pi/2, reduced mod 4.
	quarter := new(big.Int).Mod(halfTurns.Num(), big.NewInt(4)).Int64()
	sines := [4]int64{0, 1, 0, -1}
	cosines := [4]int64{1, 0, -1, 0}
	switch fn {
	case FnSin:
		return ratInt(sines[quarter]), true, nil
	case FnCos:
		return ratInt(cosines[quarter]), true, nil
	}
	if cosines[quarter] == 0 {
		return nil, false, ErrUndefined
	}
	return new(big.Rat), true, nil
}

// log10Exact recognizes integer powers of ten, including 1/10^k.
func log10Exact(x *big.Rat) (int64, bool) {
	if x.Sign() <= 0 {
		return 0, false
	}
	ten := big.NewInt(10)
	count := func(n *big.Int) (int64, bool) {
		var k int64
		m := new(big.Int).Set(n)
		rem := new(big.Int)
		for m.Cmp(big.NewInt(1)) > 0 {
			m.QuoRem(m, ten, rem)
			if rem.Sign() != 0 {
				return 0, false
			}
			k++
		}
		return k, true
	}
	num, okNum := count(x.Num())
	den, okDen := count(x.Denom())
	if !okNum || !okDen {
		return 0, false
	}
	return num - den, true
}

// ============================================================
// Numeric evaluation
// ============================================================

// divisorTolerance is the magnitude below which an inexact divisor counts
// as zero.
const divisorTolerance = 1e-12

// EvalNumeric evaluates a variable-free tree over complex128. It returns
// ErrDivisionByZero for a zero divisor and ErrUndefined for NaN or
// infinite intermediates and for poles of tan.
func EvalNumeric(e Expr) (complex128, error) {
	var out complex128
	switch v := e.(type) {
	case *Num:
		out = complex(v.Float64(), 0)
	case *Const:
		switch v.kind {
		case Pi:
			out = complex(math.Pi, 0)
		case E:
			out = complex(math.E, 0)
		default:
			out = complex(0, 1)
		}
	case *Var:
		return 0, fmt.Errorf("%w: free variable %s", errNotRational, v.name)
	case *Neg:
		x, err := EvalNumeric(v.x)
		if err != nil {
			return 0, err
		}
		out = -x
	case *Binary:
		l, err := EvalNumeric(v.left)
		if err != nil {
			return 0, err
		}
		r, err := EvalNumeric(v.right)
		if err != nil {
			return 0, err
		}
		if v.op == OpDiv && r != 0 && cmplx.Abs(r) < divisorTolerance {
			// A divisor that is not exactly rational and rounds to zero is
			// treated as zero.
			if _, exactErr := EvalExact(v.right, nil); exactErr != nil {
				return 0, ErrDivisionByZero
			}
		}
		out, err = numericBinary(v.op, l, r)
		if err != nil {
			return 0, err
		}
	case *Call:
		if k, ok := piMultiple(v.arg); ok {
			val, exact, err := trigAtPiMultiple(v.fn, k)
			if err != nil {
				return 0, fmt.Errorf("%w: %s has a pole at %s", err, fnNames[v.fn], v.arg)
			}
			if exact {
				f, _ := val.Float64()
				return complex(f, 0), nil
			}
		}
		x, err := EvalNumeric(v.arg)
		if err != nil {
			return 0, err
		}
		out = numericCall(v.fn, x)
	}
	if isUndefinedComplex(out) {
		return 0, ErrUndefined
	}
	return out, nil
}

func numericBinary(op Op, l, r complex128) (complex128, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	}
	if imag(l) == 0 && imag(r) == 0 && (real(l) >= 0 || real(r) == math.Trunc(real(r))) {
		if real(l) == 0 && real(r) < 0 {
			return 0, ErrDivisionByZero
		}
		return complex(math.Pow(real(l), real(r)), 0), nil
	}
	return cmplx.Pow(l, r), nil
}

func numericCall(fn Fn, x complex128) complex128 {
	isReal := imag(x) == 0
	re := real(x)
	switch fn {
	case FnSqrt:
		if isReal && re >= 0 {
			return complex(math.Sqrt(re), 0)
		}
		return cmplx.Sqrt(x)
	case FnSin:
		if isReal {
			return complex(math.Sin(re), 0)
		}
		return cmplx.Sin(x)
	case FnCos:
		if isReal {
			return complex(math.Cos(re), 0)
		}
		return cmplx.Cos(x)
	case FnTan:
		if isReal {
			return complex(math.Tan(re), 0)
		}
		return cmplx.Tan(x)
	case FnExp:
		if isReal {
			return complex(math.Exp(re), 0)
		}
		return cmplx.Exp(x)
	case FnLn:
		if isReal && re > 0 {
			return complex(math.Log(re), 0)
		}
		return cmplx.Log(x)
	case FnLog:
		if isReal && re > 0 {
			return complex(math.Log10(re), 0)
		}
		return cmplx.Log10(x)
	}
	return complex(cmplx.Abs(x), 0)
}
