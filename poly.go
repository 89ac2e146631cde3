package mathsolve

import (
	"math/big"
)

// ============================================================
// Poly: dense univariate polynomial over Q
// ============================================================

// Poly holds coefficients lowest degree first. The zero polynomial is the
// empty slice; a normalized Poly never ends in a zero coefficient.
type Poly []*big.Rat

func polyConst(r *big.Rat) Poly {
	if r.Sign() == 0 {
		return nil
	}
	return Poly{new(big.Rat).Set(r)}
}

// polyX is the identity polynomial x.
func polyX() Poly { return Poly{new(big.Rat), big.NewRat(1, 1)} }

func (p Poly) trim() Poly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

// Degree is -1 for the zero polynomial.
func (p Poly) Degree() int  { return len(p) - 1 }
func (p Poly) IsZero() bool { return len(p) == 0 }

func (p Poly) Coeff(k int) *big.Rat {
	if k < 0 || k >= len(p) {
		return new(big.Rat)
	}
	return p[k]
}

func (p Poly) Lead() *big.Rat { return p.Coeff(len(p) - 1) }

func (p Poly) IsConstant() bool { return len(p) <= 1 }

func (p Poly) Add(q Poly) Poly {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make(Poly, n)
	for i := range out {
		out[i] = ratAdd(p.Coeff(i), q.Coeff(i))
	}
	return out.trim()
}

func (p Poly) Neg() Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = ratNeg(c)
	}
	return out
}

func (p Poly) Sub(q Poly) Poly { return p.Add(q.Neg()) }

func (p Poly) Scale(r *big.Rat) Poly {
	if r.Sign() == 0 {
		return nil
	}
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = ratMul(c, r)
	}
	return out
}

func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return nil
	}
	out := make(Poly, len(p)+len(q)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for i, a := range p {
		for j, b := range q {
			out[i+j].Add(out[i+j], ratMul(a, b))
		}
	}
	return out.trim()
}

func (p Poly) Pow(n int) Poly {
	out := Poly{big.NewRat(1, 1)}
	for i := 0; i < n; i++ {
		out = out.Mul(p)
	}
	return out
}

// DivMod divides p by a non-zero d.
func (p Poly) DivMod(d Poly) (q, r Poly) {
	r = append(Poly(nil), p...)
	if len(r) < len(d) {
		return nil, r
	}
	q = make(Poly, len(r)-len(d)+1)
	for i := range q {
		q[i] = new(big.Rat)
	}
	lead := d.Lead()
	for len(r) >= len(d) && !r.IsZero() {
		shift := len(r) - len(d)
		factor := ratQuo(r.Lead(), lead)
		q[shift] = factor
		next := make(Poly, len(r))
		copy(next, r)
		for i, c := range d {
			next[i+shift] = ratSub(next[i+shift], ratMul(c, factor))
		}
		r = next[:len(next)-1].trim()
	}
	return q.trim(), r
}

// Monic scales p to a leading coefficient of one.
func (p Poly) Monic() Poly {
	if p.IsZero() {
		return nil
	}
	return p.Scale(new(big.Rat).Inv(p.Lead()))
}

// polyGCD returns the monic greatest common divisor of a and b.
func polyGCD(a, b Poly) Poly {
	for !b.IsZero() {
		_, r := a.DivMod(b)
		a, b = b, r
	}
	return a.Monic()
}

// squareFree divides out repeated factors so that every distinct root of
// p is a simple root of the result.
func (p Poly) squareFree() Poly {
	if p.Degree() < 2 {
		return p
	}
	g := polyGCD(p, p.Deriv())
	if g.Degree() < 1 {
		return p
	}
	q, _ := p.DivMod(g)
	return q
}

// Eval evaluates p at x with Horner's rule.
func (p Poly) Eval(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p[i])
	}
	return acc
}

func (p Poly) EvalComplex(x complex128) complex128 {
	var acc complex128
	for i := len(p) - 1; i >= 0; i-- {
		f, _ := p[i].Float64()
		acc = acc*x + complex(f, 0)
	}
	return acc
}

func (p Poly) Deriv() Poly {
	if len(p) <= 1 {
		return nil
	}
	out := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = ratMul(p[i], ratInt(int64(i)))
	}
	return out.trim()
}

// deflate divides p by (x - r); r must be a root.
func (p Poly) deflate(r *big.Rat) Poly {
	q, _ := p.DivMod(Poly{ratNeg(r), big.NewRat(1, 1)})
	return q
}

// shiftDown divides p by x; the constant term must be zero.
func (p Poly) shiftDown() Poly { return append(Poly(nil), p[1:]...) }

// primitive returns p scaled to coprime integer coefficients with a
// positive leading coefficient.
func (p Poly) primitive() []*big.Int {
	if p.IsZero() {
		return nil
	}
	lcm := big.NewInt(1)
	for _, c := range p {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, g))
	}
	ints := make([]*big.Int, len(p))
	g := new(big.Int)
	for i, c := range p {
		v := new(big.Int).Mul(c.Num(), new(big.Int).Quo(lcm, c.Denom()))
		ints[i] = v
		g.GCD(nil, nil, g, new(big.Int).Abs(v))
	}
	if p.Lead().Sign() < 0 {
		g.Neg(g)
	}
	for _, v := range ints {
		v.Quo(v, g)
	}
	return ints
}

func polyFromInts(ints []*big.Int) Poly {
	out := make(Poly, len(ints))
	for i, v := range ints {
		out[i] = new(big.Rat).SetInt(v)
	}
	return out.trim()
}

// ============================================================
// Conversion back to expression trees
// ============================================================

// Expr renders p in descending powers of the named variable, e.g.
// x^2 - 4*x + 4. Rational coefficients print as 3*x/2.
func (p Poly) Expr(variable string) Expr {
	var out Expr
	for k := len(p) - 1; k >= 0; k-- {
		c := p[k]
		if c.Sign() == 0 {
			continue
		}
		switch {
		case out == nil:
			out = monomial(c, k, variable)
		case c.Sign() < 0:
			out = SubOf(out, monomial(ratAbs(c), k, variable))
		default:
			out = binary(OpAdd, out, monomial(c, k, variable))
		}
	}
	if out == nil {
		return N(0)
	}
	return out
}

// monomial builds c*v^k; a negative c keeps its sign on the numerator.
func monomial(c *big.Rat, k int, variable string) Expr {
	if k == 0 {
		return NRat(c)
	}
	var power Expr = S(variable)
	if k > 1 {
		power = PowOf(power, N(int64(k)))
	}
	num := new(big.Rat).SetInt(c.Num())
	var term Expr
	switch {
	case num.Cmp(ratOne) == 0:
		term = power
	case num.Cmp(ratInt(-1)) == 0:
		term = NegOf(power)
	default:
		term = MulOf(NRat(num), power)
	}
	if !c.IsInt() {
		term = DivOf(term, NRat(new(big.Rat).SetInt(c.Denom())))
	}
	return term
}

func (p Poly) Format(variable string) string { return p.Expr(variable).String() }
