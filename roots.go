package mathsolve

import (
	"math"
	"math/big"
	"math/cmplx"
	"sort"
)

// ============================================================
// Root: one solution of a polynomial equation
// ============================================================

type rootKind int

const (
	rootRational rootKind = iota
	rootSurd              // p + q*sqrt(m)
	rootComplex           // p + q*sqrt(m)*i
	rootApprox            // numeric, rounded on output
)

// Root is a real or complex solution. Exact roots carry p, q and m; the
// rest carry a complex128 approximation.
type Root struct {
	kind   rootKind
	p, q   *big.Rat
	m      *big.Int
	approx complex128
}

func rationalRoot(r *big.Rat) Root { return Root{kind: rootRational, p: new(big.Rat).Set(r)} }
func approxRoot(c complex128) Root { return Root{kind: rootApprox, approx: c} }

// approxRealTolerance decides when a numeric root counts as real.
const approxRealTolerance = 1e-7

func (r Root) IsReal() bool {
	switch r.kind {
	case rootComplex:
		return false
	case rootApprox:
		return math.Abs(imag(r.approx)) < approxRealTolerance
	}
	return true
}

// Rat returns the exact value of a rational root.
func (r Root) Rat() (*big.Rat, bool) {
	if r.kind != rootRational {
		return nil, false
	}
	return new(big.Rat).Set(r.p), true
}

// Complex returns a complex128 approximation of the root.
func (r Root) Complex() complex128 {
	switch r.kind {
	case rootApprox:
		if r.IsReal() {
			return complex(real(r.approx), 0)
		}
		return r.approx
	case rootRational:
		f, _ := r.p.Float64()
		return complex(f, 0)
	}
	p, _ := r.p.Float64()
	q, _ := r.q.Float64()
	m, _ := new(big.Float).SetInt(r.m).Float64()
	t := q * math.Sqrt(m)
	if r.kind == rootComplex {
		return complex(p, t)
	}
	return complex(p+t, 0)
}

func (r Root) String() string {
	switch r.kind {
	case rootRational:
		return formatRat(r.p)
	case rootApprox:
		return formatComplex(r.Complex())
	}
	term := surdText(ratAbs(r.q), r.m)
	if r.kind == rootComplex {
		if term == "1" {
			term = "i"
		} else {
			term += "*i"
		}
	}
	switch {
	case r.p.Sign() == 0 && r.q.Sign() < 0:
		return "-" + term
	case r.p.Sign() == 0:
		return term
	case r.q.Sign() < 0:
		return formatRat(r.p) + " - " + term
	}
	return formatRat(r.p) + " + " + term
}

// surdText prints q*sqrt(m) for q > 0, as 3*sqrt(2)/2 when q is not an
// integer. m == 1 prints q alone.
func surdText(q *big.Rat, m *big.Int) string {
	if m.Cmp(big.NewInt(1)) == 0 {
		return formatRat(q)
	}
	text := "sqrt(" + m.String() + ")"
	if q.Num().Cmp(big.NewInt(1)) != 0 {
		text = q.Num().String() + "*" + text
	}
	if !q.IsInt() {
		text += "/" + q.Denom().String()
	}
	return text
}

// equalRoots compares exact roots exactly and numeric roots within a
// tolerance.
func equalRoots(a, b Root) bool {
	if a.kind == b.kind && a.kind != rootApprox {
		if a.p.Cmp(b.p) != 0 {
			return false
		}
		if a.kind == rootRational {
			return true
		}
		return a.q.Cmp(b.q) == 0 && a.m.Cmp(b.m) == 0
	}
	return cmplx.Abs(a.Complex()-b.Complex()) < 1e-9
}

// sortRoots orders real roots ascending, followed by non-real roots by
// real then imaginary part, and drops duplicates.
func sortRoots(roots []Root) []Root {
	sorted := append([]Root(nil), roots...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].IsReal(), sorted[j].IsReal()
		if ri != rj {
			return ri
		}
		ci, cj := sorted[i].Complex(), sorted[j].Complex()
		if real(ci) != real(cj) {
			return real(ci) < real(cj)
		}
		return imag(ci) < imag(cj)
	})
	out := sorted[:0]
	for _, r := range sorted {
		if len(out) > 0 && equalRoots(out[len(out)-1], r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ============================================================
// Polynomial root finding
// ============================================================

// maxRationalRootBound caps the integers whose divisors are enumerated in
// the rational root search.
var maxRationalRootBound = big.NewInt(1_000_000_000_000)

// solvePolynomial returns every root of p, deduplicated and ordered.
// Repeated factors are divided out first. Rational roots are found exactly
// and divided out; what remains is solved in closed form up to degree two,
// by Cardano for a cubic, and by simultaneous iteration beyond that.
func solvePolynomial(p Poly) []Root {
	var roots []Root
	if p.Degree() < 1 {
		return nil
	}
	p = polyFromInts(p.squareFree().primitive())
	for p.Degree() > 0 && p.Coeff(0).Sign() == 0 {
		roots = append(roots, rationalRoot(new(big.Rat)))
		p = p.shiftDown()
	}
	for p.Degree() > 2 {
		r, ok := findRationalRoot(p)
		if !ok {
			break
		}
		roots = append(roots, rationalRoot(r))
		p = polyFromInts(p.deflate(r).primitive())
	}
	switch p.Degree() {
	case 1:
		roots = append(roots, rationalRoot(ratQuo(ratNeg(p.Coeff(0)), p.Coeff(1))))
	case 2:
		roots = append(roots, quadraticRoots(p.Coeff(2), p.Coeff(1), p.Coeff(0))...)
	case 3:
		roots = append(roots, cubicRoots(p)...)
	default:
		if p.Degree() > 3 {
			roots = append(roots, numericRoots(p)...)
		}
	}
	return sortRoots(roots)
}

// findRationalRoot applies the rational root theorem to an integer
// polynomial with a non-zero constant term.
func findRationalRoot(p Poly) (*big.Rat, bool) {
	a0 := new(big.Int).Abs(p.Coeff(0).Num())
	an := new(big.Int).Abs(p.Lead().Num())
	if a0.Cmp(maxRationalRootBound) > 0 || an.Cmp(maxRationalRootBound) > 0 {
		return nil, false
	}
	numerators := divisors(a0.Int64())
	denominators := divisors(an.Int64())
	var candidates []*big.Rat
	for _, n := range numerators {
		for _, d := range denominators {
			c := big.NewRat(n, d)
			candidates = append(candidates, c, new(big.Rat).Neg(c))
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Cmp(candidates[j]) < 0 })
	for _, c := range candidates {
		if p.Eval(c).Sign() == 0 {
			return c, true
		}
	}
	return nil, false
}

func divisors(n int64) []int64 {
	var small, large []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		small = append(small, d)
		if d*d != n {
			large = append(large, n/d)
		}
	}
	for i := len(large) - 1; i >= 0; i-- {
		small = append(small, large[i])
	}
	return small
}

// discriminant returns b^2 - 4ac.
func discriminant(a, b, c *big.Rat) *big.Rat {
	return ratSub(ratMul(b, b), ratMul(ratInt(4), ratMul(a, c)))
}

// quadraticRoots solves a*x^2 + b*x + c = 0 exactly: rational roots when
// the discriminant is a perfect square, surds otherwise, conjugate complex
// roots when it is negative.
func quadraticRoots(a, b, c *big.Rat) []Root {
	disc := discriminant(a, b, c)
	twoA := ratMul(ratInt(2), a)
	vertex := ratQuo(ratNeg(b), twoA)
	if disc.Sign() == 0 {
		return []Root{rationalRoot(vertex)}
	}
	k, m := sqrtParts(ratAbs(disc))
	q := ratQuo(k, ratAbs(twoA))
	if disc.Sign() > 0 && m.Cmp(big.NewInt(1)) == 0 {
		return []Root{rationalRoot(ratSub(vertex, q)), rationalRoot(ratAdd(vertex, q))}
	}
	kind := rootSurd
	if disc.Sign() < 0 {
		kind = rootComplex
	}
	return []Root{
		{kind: kind, p: vertex, q: ratNeg(q), m: m},
		{kind: kind, p: vertex, q: q, m: m},
	}
}

// cubicRoots applies Cardano's method to a cubic without rational roots.
func cubicRoots(poly Poly) []Root {
	af, _ := poly.Coeff(3).Float64()
	bf, _ := poly.Coeff(2).Float64()
	cf, _ := poly.Coeff(1).Float64()
	df, _ := poly.Coeff(0).Float64()
	p := (3*af*cf - bf*bf) / (3 * af * af)
	q := (2*bf*bf*bf - 9*af*bf*cf + 27*af*af*df) / (27 * af * af * af)
	offset := bf / (3 * af)
	disc := -(4*p*p*p + 27*q*q)

	if disc > 0 {
		m := 2 * math.Sqrt(-p/3)
		theta := math.Acos(3*q/(p*m)) / 3
		roots := make([]Root, 0, 3)
		for k := 0; k < 3; k++ {
			x := m*math.Cos(theta-2*math.Pi*float64(k)/3) - offset
			roots = append(roots, approxRoot(complex(polishRealRoot(poly, x), 0)))
		}
		return roots
	}
	A := math.Cbrt(-q/2 + math.Sqrt(q*q/4+p*p*p/27))
	B := float64(0)
	if A != 0 {
		B = -p / (3 * A)
	}
	realRoot := polishRealRoot(poly, A+B-offset)
	re := -(A+B)/2 - offset
	im := math.Sqrt(3) / 2 * math.Abs(A-B)
	if im < approxRealTolerance {
		return []Root{approxRoot(complex(realRoot, 0)), approxRoot(complex(re, 0))}
	}
	return []Root{
		approxRoot(complex(realRoot, 0)),
		approxRoot(complex(re, -im)),
		approxRoot(complex(re, im)),
	}
}

// polishRealRoot runs a few Newton steps on a real root estimate.
func polishRealRoot(p Poly, x float64) float64 {
	dp := p.Deriv()
	for iter := 0; iter < 50; iter++ {
		fx := real(p.EvalComplex(complex(x, 0)))
		if math.Abs(fx) < 1e-14 {
			break
		}
		dfx := real(dp.EvalComplex(complex(x, 0)))
		if math.IsNaN(dfx) || math.Abs(dfx) < 1e-15 {
			break
		}
		x -= fx / dfx
	}
	return x
}

// numericRoots finds all roots of p with the Durand-Kerner iteration and
// polishes the real ones with Newton's method.
func numericRoots(p Poly) []Root {
	monic := p.Monic()
	n := monic.Degree()
	z := make([]complex128, n)
	seed := complex(0.4, 0.9)
	z[0] = 1
	for i := 1; i < n; i++ {
		z[i] = z[i-1] * seed
	}
	for iter := 0; iter < 1000; iter++ {
		moved := 0.0
		for i := range z {
			den := complex(1, 0)
			for j := range z {
				if i != j {
					den *= z[i] - z[j]
				}
			}
			if den == 0 {
				continue
			}
			delta := monic.EvalComplex(z[i]) / den
			z[i] -= delta
			moved = math.Max(moved, cmplx.Abs(delta))
		}
		if moved < 1e-14 {
			break
		}
	}
	roots := make([]Root, n)
	for i, c := range z {
		if math.Abs(imag(c)) < approxRealTolerance*math.Max(1, cmplx.Abs(c)) {
			c = complex(polishRealRoot(p, real(c)), 0)
		}
		roots[i] = approxRoot(c)
	}
	return roots
}
