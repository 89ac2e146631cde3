package mathsolve

import (
	"math"
	"math/big"
	"math/cmplx"
	"strconv"
	"strings"
)

// ============================================================
// Rational helpers
// ============================================================

var (
	ratZero = new(big.Rat)
	ratOne  = big.NewRat(1, 1)
)

func ratAdd(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func ratSub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func ratMul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func ratNeg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
func ratAbs(a *big.Rat) *big.Rat    { return new(big.Rat).Abs(a) }
func ratInt(n int64) *big.Rat       { return new(big.Rat).SetInt64(n) }

// ratQuo panics on a zero divisor; callers check first.
func ratQuo(a, b *big.Rat) *big.Rat { return new(big.Rat).Quo(a, b) }

// formatRat prints integers plainly and everything else as p/q.
func formatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}

// ratPowInt raises r to an integer power. r must be non-zero when n < 0.
func ratPowInt(r *big.Rat, n int64) *big.Rat {
	neg := n < 0
	if neg {
		n = -n
	}
	e := big.NewInt(n)
	num := new(big.Int).Exp(r.Num(), e, nil)
	den := new(big.Int).Exp(r.Denom(), e, nil)
	if neg {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den)
}

// intRoot returns the exact non-negative n-th root of x, if one exists.
func intRoot(x *big.Int, n int64) (*big.Int, bool) {
	if x.Sign() < 0 || n < 1 {
		return nil, false
	}
	if x.Sign() == 0 || n == 1 {
		return new(big.Int).Set(x), true
	}
	if n == 2 {
		r := new(big.Int).Sqrt(x)
		return r, new(big.Int).Mul(r, r).Cmp(x) == 0
	}
	e := big.NewInt(n)
	lo := big.NewInt(0)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(x.BitLen()/int(n)+1))
	one := big.NewInt(1)
	for lo.Cmp(hi) <= 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Rsh(mid, 1)
		p := new(big.Int).Exp(mid, e, nil)
		switch p.Cmp(x) {
		case 0:
			return mid, true
		case -1:
			lo = mid.Add(mid, one)
		default:
			hi = mid.Sub(mid, one)
		}
	}
	return nil, false
}

// ratRoot returns the exact real n-th root of r. Odd roots of negative
// values are negative; even roots of negative values do not exist.
func ratRoot(r *big.Rat, n int64) (*big.Rat, bool) {
	if r.Sign() < 0 {
		if n%2 == 0 {
			return nil, false
		}
		root, ok := ratRoot(ratNeg(r), n)
		if !ok {
			return nil, false
		}
		return root.Neg(root), true
	}
	num, ok := intRoot(r.Num(), n)
	if !ok {
		return nil, false
	}
	den, ok := intRoot(r.Denom(), n)
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

// maxSquareFactorTrials bounds trial division in sqrtParts.
const maxSquareFactorTrials = 100000

// sqrtParts writes sqrt(r) for r >= 0 as k*sqrt(m) with k rational and m
// a positive integer free of square factors (up to the trial bound).
func sqrtParts(r *big.Rat) (*big.Rat, *big.Int) {
	// sqrt(p/q) = sqrt(p*q)/q
	n := new(big.Int).Mul(r.Num(), r.Denom())
	coef := big.NewInt(1)
	m := new(big.Int).Set(n)
	if root, ok := intRoot(m, 2); ok {
		return new(big.Rat).SetFrac(root, r.Denom()), big.NewInt(1)
	}
	f := big.NewInt(2)
	sq := new(big.Int)
	rem := new(big.Int)
	q := new(big.Int)
	for trials := 0; trials < maxSquareFactorTrials; trials++ {
		sq.Mul(f, f)
		if sq.Cmp(m) > 0 {
			break
		}
		for {
			q.QuoRem(m, sq, rem)
			if rem.Sign() != 0 {
				break
			}
			m.Set(q)
			coef.Mul(coef, f)
		}
		f.Add(f, big.NewInt(1))
	}
	return new(big.Rat).SetFrac(coef, r.Denom()), m
}

// ============================================================
// Decimal and complex formatting
// ============================================================

// roundTo6 rounds half away from zero at six decimal places.
func roundTo6(f float64) float64 {
	r := math.Round(f*1e6) / 1e6
	if r == 0 {
		return 0
	}
	return r
}

// formatDecimal prints f rounded to six decimals, as an integer when the
// rounded value is integral.
func formatDecimal(f float64) string {
	r := roundTo6(f)
	if r == math.Trunc(r) && math.Abs(r) < 1e15 {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	s := strconv.FormatFloat(r, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// formatRatDecimal prints an exact value as an integer or a six-decimal
// approximation.
func formatRatDecimal(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	f, _ := r.Float64()
	return formatDecimal(f)
}

// formatComplex prints c as "a + bi" with both parts rounded, dropping a
// zero real part and a zero imaginary part.
func formatComplex(c complex128) string {
	re, im := roundTo6(real(c)), roundTo6(imag(c))
	if im == 0 {
		return formatDecimal(re)
	}
	imText := formatDecimal(math.Abs(im))
	if imText == "1" {
		imText = ""
	}
	if re == 0 {
		if im < 0 {
			return "-" + imText + "i"
		}
		return imText + "i"
	}
	sign := " + "
	if im < 0 {
		sign = " - "
	}
	return formatDecimal(re) + sign + imText + "i"
}

func isUndefinedComplex(c complex128) bool {
	return cmplx.IsNaN(c) || cmplx.IsInf(c)
}
