package mathsolve

import (
	"fmt"
	"math/big"
)

// ============================================================
// Step Composer
// ============================================================

// StepComposer renders the derivation of a solved univariate equation.
// left and right are the original sides; class is the solver's
// classification.
type StepComposer interface {
	ComposeSteps(class EquationType, left, right Expr, variable string) ([]string, error)
}

// DefaultSteps writes isolation steps for linear equations, the quadratic
// formula for quadratics, and a plain list of solutions otherwise.
type DefaultSteps struct{}

func (DefaultSteps) ComposeSteps(class EquationType, left, right Expr, variable string) ([]string, error) {
	var (
		steps []string
		ok    bool
		err   error
	)
	switch class {
	case TypeLinear:
		steps, ok, err = linearSteps(left, right, variable)
	case TypeQuadratic:
		steps, ok, err = quadraticSteps(left, right, variable)
	}
	if err != nil {
		return nil, err
	}
	if ok {
		return steps, nil
	}
	return fallbackSteps(left, right, variable)
}

// stepWriter numbers steps and indents the equation lines under them.
type stepWriter struct {
	lines []string
	n     int
}

func (w *stepWriter) step(format string, args ...interface{}) {
	w.n++
	w.lines = append(w.lines, fmt.Sprintf("Step %d: ", w.n)+fmt.Sprintf(format, args...))
}

func (w *stepWriter) line(format string, args ...interface{}) {
	w.lines = append(w.lines, "   "+fmt.Sprintf(format, args...))
}

func (w *stepWriter) text(format string, args ...interface{}) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

// ------------------------------------------------------------
// Linear
// ------------------------------------------------------------

// sidePoly converts one side of an equation to a polynomial.
func sidePoly(e Expr, variable string) (Poly, bool) {
	rf, err := toRatFunc(e, variable)
	if err != nil || !rf.den.IsConstant() {
		return nil, false
	}
	return rf.num.Scale(new(big.Rat).Inv(rf.den.Coeff(0))), true
}

func linearSteps(left, right Expr, v string) ([]string, bool, error) {
	lp, okL := sidePoly(left, v)
	rp, okR := sidePoly(right, v)
	if !okL || !okR || lp.Sub(rp).Degree() != 1 {
		return nil, false, nil
	}
	w := &stepWriter{}
	if lp.Format(v) != left.String() || rp.Format(v) != right.String() {
		w.text("Expand and combine like terms: %s = %s", lp.Format(v), rp.Format(v))
	}

	if rp.Degree() >= 1 {
		term := rp.Sub(polyConst(rp.Coeff(0)))
		if isMonomial(term) && term.Lead().Sign() < 0 {
			moved := term.Neg()
			w.step("Add %s to both sides to move the %s terms to the left", moved.Format(v), v)
			w.line("%s = %s", binary(OpAdd, lp.Expr(v), moved.Expr(v)), binary(OpAdd, rp.Expr(v), moved.Expr(v)))
		} else {
			w.step("Subtract %s from both sides to move the %s terms to the left", term.Format(v), v)
			w.line("%s = %s", SubOf(lp.Expr(v), term.Expr(v)), SubOf(rp.Expr(v), term.Expr(v)))
		}
		lp, rp = lp.Sub(term), rp.Sub(term)
		w.line("%s = %s", lp.Format(v), rp.Format(v))
	}

	if b := lp.Coeff(0); b.Sign() != 0 {
		shift := polyConst(b)
		if b.Sign() < 0 {
			w.step("Add %s to both sides", formatRat(ratAbs(b)))
			w.line("%s = %s", binary(OpAdd, lp.Expr(v), NRat(ratAbs(b))), binary(OpAdd, rp.Expr(v), NRat(ratAbs(b))))
		} else {
			w.step("Subtract %s from both sides", formatRat(b))
			w.line("%s = %s", SubOf(lp.Expr(v), NRat(b)), SubOf(rp.Expr(v), NRat(b)))
		}
		lp, rp = lp.Sub(shift), rp.Sub(shift)
		w.line("%s = %s", lp.Format(v), rp.Format(v))
	}

	if a := lp.Coeff(1); a.Cmp(ratOne) != 0 {
		w.step("Divide both sides by %s to isolate %s", formatRat(a), v)
		w.line("%s = %s", DivOf(lp.Expr(v), NRat(a)), DivOf(rp.Expr(v), NRat(a)))
		inv := new(big.Rat).Inv(a)
		lp, rp = lp.Scale(inv), rp.Scale(inv)
		w.line("%s = %s", lp.Format(v), rp.Format(v))
	}

	value := rp.Coeff(0)
	w.text("Solution: %s = %s", v, formatRat(value))
	if err := verifyLinear(w, left, right, v, value); err != nil {
		return nil, false, err
	}
	return w.lines, true, nil
}

func isMonomial(p Poly) bool {
	count := 0
	for _, c := range p {
		if c.Sign() != 0 {
			count++
		}
	}
	return count == 1
}

// verifyLinear substitutes value into both original sides and fails with
// an InternalConsistencyError when they disagree.
func verifyLinear(w *stepWriter, left, right Expr, v string, value *big.Rat) error {
	env := map[string]*big.Rat{v: value}
	lv, err := EvalExact(left, env)
	if err != nil {
		return &InternalConsistencyError{Detail: fmt.Sprintf("left side at %s = %s: %v", v, formatRat(value), err)}
	}
	rv, err := EvalExact(right, env)
	if err != nil {
		return &InternalConsistencyError{Detail: fmt.Sprintf("right side at %s = %s: %v", v, formatRat(value), err)}
	}
	if lv.Cmp(rv) != 0 {
		return &InternalConsistencyError{Detail: fmt.Sprintf("%s = %s gives %s on the left but %s on the right",
			v, formatRat(value), formatRat(lv), formatRat(rv))}
	}
	w.text("Check: substitute %s = %s into the original equation", v, formatRat(value))
	w.line("Left side: %s = %s", Substitute(left, v, NRat(value)), formatRat(lv))
	w.line("Right side: %s = %s", Substitute(right, v, NRat(value)), formatRat(rv))
	w.line("Both sides equal %s, so the solution is correct.", formatRat(lv))
	return nil
}

// ------------------------------------------------------------
// Quadratic
// ------------------------------------------------------------

func quadraticSteps(left, right Expr, v string) ([]string, bool, error) {
	sol, err := solveFor(Eq(left, right), v)
	if err != nil || sol.identity || sol.numerator.Degree() != 2 {
		return nil, false, nil
	}
	p := sol.numerator
	a, b, c := p.Coeff(2), p.Coeff(1), p.Coeff(0)
	w := &stepWriter{}
	w.text("This is a quadratic equation of the form a*%s^2 + b*%s + c = 0", v, v)
	if !sol.denominator.IsConstant() {
		w.text("Multiply both sides by %s to clear the fractions", sol.denominator.Format(v))
	}
	w.step("Write the equation in standard form: %s = 0", p.Format(v))
	w.step("Identify the coefficients: a = %s, b = %s, c = %s", formatRat(a), formatRat(b), formatRat(c))

	disc := discriminant(a, b, c)
	w.step("Compute the discriminant Δ = b^2 - 4*a*c")
	w.line("Δ = (%s)^2 - 4*(%s)*(%s)", formatRat(b), formatRat(a), formatRat(c))
	w.line("Δ = %s", formatRat(disc))
	switch disc.Sign() {
	case 1:
		w.text("Since Δ > 0, there are two distinct real roots.")
	case 0:
		w.text("Since Δ = 0, there is exactly one real root.")
	default:
		w.text("Since Δ < 0, there are no real roots, only complex ones.")
	}

	negB := formatRat(ratNeg(b))
	twoA := formatRat(ratMul(ratInt(2), a))
	w.step("Apply the quadratic formula %s = (-b ± sqrt(Δ))/(2*a)", v)
	w.line("%s = (%s ± sqrt(%s))/%s", v, negB, formatRat(disc), twoA)
	if root, ok := ratRoot(disc, 2); ok {
		w.line("%s = (%s ± %s)/%s", v, negB, formatRat(root), twoA)
	}
	realRoots, _ := partitionRoots(sol.roots)
	for _, r := range sol.rejected {
		w.text("%s = %s is rejected because it makes a denominator zero", v, r)
	}
	if len(realRoots) > 0 {
		w.text("Solution: %s", joinRoots(v, realRoots))
	}
	return w.lines, true, nil
}

// ------------------------------------------------------------
// Fallback
// ------------------------------------------------------------

func fallbackSteps(left, right Expr, v string) ([]string, error) {
	sol, err := solveFor(Eq(left, right), v)
	if err != nil {
		return nil, err
	}
	w := &stepWriter{}
	if !sol.denominator.IsConstant() {
		w.text("Multiply both sides by %s to clear the fractions", sol.denominator.Format(v))
	}
	if !sol.identity {
		w.text("Rewrite as %s = 0", sol.numerator.Format(v))
	}
	for _, r := range sol.rejected {
		w.text("%s = %s is rejected because it makes a denominator zero", v, r)
	}
	realRoots, _ := partitionRoots(sol.roots)
	for _, r := range realRoots {
		w.text("%s = %s", v, r)
	}
	return w.lines, nil
}
