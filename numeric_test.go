package mathsolve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// poly builds a polynomial from integer coefficients, lowest degree first.
func poly(cs ...int64) Poly {
	p := make(Poly, len(cs))
	for i, c := range cs {
		p[i] = ratInt(c)
	}
	return p.trim()
}

func rootStrings(roots []Root) []string {
	out := make([]string, len(roots))
	for i, r := range roots {
		out[i] = r.String()
	}
	return out
}

// ============================================================
// Rational helpers
// ============================================================

func TestRatRoot(t *testing.T) {
	r, ok := ratRoot(ratInt(-8), 3)
	require.True(t, ok)
	assert.Equal(t, "-2", formatRat(r))

	r, ok = ratRoot(big.NewRat(8, 27), 3)
	require.True(t, ok)
	assert.Equal(t, "2/3", formatRat(r))

	_, ok = ratRoot(ratInt(-4), 2)
	assert.False(t, ok)
	_, ok = ratRoot(ratInt(2), 2)
	assert.False(t, ok)

	root, ok := intRoot(big.NewInt(1000), 3)
	require.True(t, ok)
	assert.Equal(t, int64(10), root.Int64())
	_, ok = intRoot(big.NewInt(1001), 3)
	assert.False(t, ok)
}

func TestRatPowInt(t *testing.T) {
	assert.Equal(t, "9/4", formatRat(ratPowInt(big.NewRat(2, 3), -2)))
	assert.Equal(t, "1", formatRat(ratPowInt(ratInt(7), 0)))
	assert.Equal(t, "-27", formatRat(ratPowInt(ratInt(-3), 3)))
}

func TestSqrtParts(t *testing.T) {
	tests := []struct {
		in *big.Rat
		k  string
		m  int64
	}{
		{ratInt(12), "2", 3},
		{ratInt(50), "5", 2},
		{ratInt(16), "4", 1},
		{big.NewRat(9, 4), "3/2", 1},
		{big.NewRat(1, 2), "1/2", 2},
		{ratInt(7), "1", 7},
	}
	for _, tc := range tests {
		k, m := sqrtParts(tc.in)
		assert.Equal(t, tc.k, formatRat(k), "sqrt(%s)", tc.in)
		assert.Equal(t, tc.m, m.Int64(), "sqrt(%s)", tc.in)
	}
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "2.5", formatDecimal(2.5))
	assert.Equal(t, "1", formatDecimal(1.0000001))
	assert.Equal(t, "0", formatDecimal(-0.0000001))
	assert.Equal(t, "3.605551", formatDecimal(3.605551275463989))
	assert.Equal(t, "-1.879385", formatDecimal(-1.8793852415718))
	assert.Equal(t, "0.333333", formatRatDecimal(big.NewRat(1, 3)))
	assert.Equal(t, "12", formatRatDecimal(ratInt(12)))
}

func TestFormatComplex(t *testing.T) {
	assert.Equal(t, "i", formatComplex(complex(0, 1)))
	assert.Equal(t, "-i", formatComplex(complex(0, -1)))
	assert.Equal(t, "1 - 2i", formatComplex(complex(1, -2)))
	assert.Equal(t, "2.5", formatComplex(complex(2.5, 1e-9)))
	assert.Equal(t, "-0.5 + 0.866025i", formatComplex(complex(-0.5, 0.8660254037844386)))
}

// ============================================================
// Poly
// ============================================================

func TestPoly_DivMod(t *testing.T) {
	q, r := poly(-1, 0, 1).DivMod(poly(-1, 1))
	assert.Equal(t, "x + 1", q.Format("x"))
	assert.True(t, r.IsZero())

	q, r = poly(1, 0, 1).DivMod(poly(1, 1))
	assert.Equal(t, "x - 1", q.Format("x"))
	assert.Equal(t, "2", r.Format("x"))

	q, r = poly(3).DivMod(poly(0, 1))
	assert.True(t, q.IsZero())
	assert.Equal(t, "3", r.Format("x"))
}

func TestPolyGCD(t *testing.T) {
	g := polyGCD(poly(-1, 0, 1), poly(1, -2, 1))
	assert.Equal(t, "x - 1", g.Format("x"))

	g = polyGCD(poly(2, 2), poly(4))
	assert.Equal(t, "1", g.Format("x"))
}

func TestPoly_Primitive(t *testing.T) {
	p := Poly{big.NewRat(1, 2), big.NewRat(-3, 4), big.NewRat(1, 3)}
	got := polyFromInts(p.primitive())
	assert.Equal(t, "4*x^2 - 9*x + 6", got.Format("x"))

	got = polyFromInts(poly(2, -4).primitive())
	assert.Equal(t, "2*x - 1", got.Format("x"))
}

func TestPoly_SquareFree(t *testing.T) {
	got := polyFromInts(poly(4, 0, -4, 0, 1).squareFree().primitive())
	assert.Equal(t, "x^2 - 2", got.Format("x"))

	got = polyFromInts(poly(2, -3, 0, 1).squareFree().primitive())
	assert.Equal(t, "x^2 + x - 2", got.Format("x"))

	assert.Equal(t, "x^2 - 3*x + 2", poly(2, -3, 1).squareFree().Format("x"))
	assert.Equal(t, "x - 5", poly(-5, 1).squareFree().Format("x"))
}

func TestPoly_Format(t *testing.T) {
	assert.Equal(t, "x^2 - 4*x + 4", poly(4, -4, 1).Format("x"))
	assert.Equal(t, "-x^3 + 2", poly(2, 0, 0, -1).Format("x"))
	assert.Equal(t, "3*x/2", Poly{new(big.Rat), big.NewRat(3, 2)}.Format("x"))
	assert.Equal(t, "0", Poly(nil).Format("x"))
	assert.Equal(t, "t - 5", poly(-5, 1).Format("t"))
}

func TestPoly_EvalAndDeriv(t *testing.T) {
	p := poly(-6, 11, -6, 1)
	assert.Equal(t, 0, p.Eval(ratInt(2)).Sign())
	assert.Equal(t, "-6", formatRat(p.Eval(ratZero)))
	assert.Equal(t, "3*x^2 - 12*x + 11", p.Deriv().Format("x"))
	assert.Equal(t, complex(0, 0), poly(1, 0, 1).EvalComplex(complex(0, 1)))
}

// ============================================================
// Roots
// ============================================================

func TestQuadraticRoots(t *testing.T) {
	tests := []struct {
		a, b, c int64
		want    []string
	}{
		{1, -5, 6, []string{"2", "3"}},
		{1, -4, 4, []string{"2"}},
		{1, -4, 1, []string{"2 - sqrt(3)", "2 + sqrt(3)"}},
		{1, 0, 1, []string{"-i", "i"}},
		{2, 0, -1, []string{"-sqrt(2)/2", "sqrt(2)/2"}},
	}
	for _, tc := range tests {
		got := quadraticRoots(ratInt(tc.a), ratInt(tc.b), ratInt(tc.c))
		assert.Equal(t, tc.want, rootStrings(got), "%dx^2 + %dx + %d", tc.a, tc.b, tc.c)
	}
}

func TestSortRoots_Dedupes(t *testing.T) {
	roots := []Root{
		rationalRoot(ratInt(3)),
		approxRoot(complex(0, 1)),
		rationalRoot(ratInt(1)),
		rationalRoot(ratInt(3)),
		approxRoot(complex(1, 1e-12)),
	}
	assert.Equal(t, []string{"1", "3", "i"}, rootStrings(sortRoots(roots)))
}

func TestFindRationalRoot(t *testing.T) {
	r, ok := findRationalRoot(poly(1, -3, 2))
	require.True(t, ok)
	assert.Equal(t, "1/2", formatRat(r))

	_, ok = findRationalRoot(poly(1, 0, 1))
	assert.False(t, ok)
}

func TestDivisors(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3, 4, 6, 12}, divisors(12))
	assert.Equal(t, []int64{1, 2, 4, 8, 16}, divisors(16))
	assert.Equal(t, []int64{1}, divisors(1))
}

func TestSolvePolynomial(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, rootStrings(solvePolynomial(poly(-6, 11, -6, 1))))
	assert.Equal(t, []string{"0", "1"}, rootStrings(solvePolynomial(poly(0, 0, -1, 1))))
	assert.Empty(t, solvePolynomial(poly(5)))
}

func TestSolvePolynomial_RepeatedIrrationalFactor(t *testing.T) {
	// (x^2 - 2)^3
	p := poly(-8, 0, 12, 0, -6, 0, 1)
	assert.Equal(t, []string{"-sqrt(2)", "sqrt(2)"}, rootStrings(solvePolynomial(p)))

	// (x^2 - 2)^2 * (x^2 - 3)
	p = poly(-12, 0, 16, 0, -7, 0, 1)
	assert.Equal(t, []string{"-1.732051", "-1.414214", "1.414214", "1.732051"}, rootStrings(solvePolynomial(p)))
}

// ============================================================
// Evaluation
// ============================================================

func TestTrigAtPiMultiple(t *testing.T) {
	tests := []struct {
		fn    Fn
		k     *big.Rat
		want  string
		exact bool
	}{
		{FnSin, big.NewRat(1, 1), "0", true},
		{FnSin, big.NewRat(1, 2), "1", true},
		{FnSin, big.NewRat(-1, 2), "-1", true},
		{FnCos, big.NewRat(3, 1), "-1", true},
		{FnCos, big.NewRat(5, 2), "0", true},
		{FnTan, big.NewRat(-4, 1), "0", true},
		{FnSin, big.NewRat(1, 3), "", false},
		{FnExp, big.NewRat(1, 1), "", false},
	}
	for _, tc := range tests {
		val, exact, err := trigAtPiMultiple(tc.fn, tc.k)
		require.NoError(t, err)
		assert.Equal(t, tc.exact, exact, "%s(%s*pi)", fnNames[tc.fn], tc.k)
		if tc.exact {
			assert.Equal(t, tc.want, formatRat(val), "%s(%s*pi)", fnNames[tc.fn], tc.k)
		}
	}

	_, _, err := trigAtPiMultiple(FnTan, big.NewRat(-3, 2))
	assert.ErrorIs(t, err, ErrUndefined)
}

func TestPiMultiple(t *testing.T) {
	pi := C(Pi)
	tests := []struct {
		in   Expr
		want string
	}{
		{pi, "1"},
		{DivOf(pi, N(2)), "1/2"},
		{MulOf(N(3), pi), "3"},
		{NegOf(DivOf(MulOf(N(3), pi), N(4))), "-3/4"},
	}
	for _, tc := range tests {
		k, ok := piMultiple(tc.in)
		require.True(t, ok, tc.in.String())
		assert.Equal(t, tc.want, formatRat(k), tc.in.String())
	}

	_, ok := piMultiple(DivOf(pi, N(0)))
	assert.False(t, ok)
	_, ok = piMultiple(AddOf(pi, N(1)))
	assert.False(t, ok)
}

func TestEvalNumeric_NearZeroDivisor(t *testing.T) {
	// sin(pi/3)^2 - 3/4 rounds to a tiny nonzero float.
	den := SubOf(PowOf(SinOf(DivOf(C(Pi), N(3))), N(2)), DivOf(N(3), N(4)))
	_, err := EvalNumeric(DivOf(N(1), den))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	v, err := EvalNumeric(DivOf(N(1), N(1000)))
	require.NoError(t, err)
	assert.InDelta(t, 0.001, real(v), 1e-15)
}

// ============================================================
// Solve helpers
// ============================================================

func TestUndefinedResult_Reason(t *testing.T) {
	res := undefinedResult(nil, ErrUndefined)
	assert.Equal(t, "undefined result", res.ImpossibleReason)
	assert.Equal(t, []string{"The expression is undefined"}, res.Steps)

	res = undefinedResult(nil, ErrDivisionByZero)
	assert.Equal(t, "undefined result: division by zero", res.ImpossibleReason)
}

func TestSideValue(t *testing.T) {
	assert.Equal(t, "1.5", sideValue(DivOf(N(6), N(4))))
	assert.Equal(t, "undefined (division by zero)", sideValue(DivOf(N(1), N(0))))
}
