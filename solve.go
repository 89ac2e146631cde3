package mathsolve

import (
	"errors"
	"fmt"
	"math/cmplx"
	"strings"
)

// ============================================================
// Results
// ============================================================

// EquationType classifies a SolveResult.
type EquationType string

const (
	TypeVerification EquationType = "verification"
	TypeLinear       EquationType = "linear"
	TypeQuadratic    EquationType = "quadratic"
	TypePolynomial   EquationType = "polynomial"
	TypeArithmetic   EquationType = "arithmetic"
	TypeAlgebraic    EquationType = "algebraic"
	TypeNoSolution   EquationType = "no_solution"
	TypeComplexOnly  EquationType = "complex_only"
	TypeImpossible   EquationType = "impossible"
	TypeError        EquationType = "error"
)

// SolveResult is the outcome of one solve. IsImpossible is set for the
// impossible, no_solution and complex_only classes, and ImpossibleReason
// is non-empty exactly when IsImpossible is.
type SolveResult struct {
	Answer           string       `json:"answer"`
	Steps            []string     `json:"steps"`
	Explanation      string       `json:"explanation"`
	EquationType     EquationType `json:"equation_type"`
	IsImpossible     bool         `json:"is_impossible"`
	ImpossibleReason string       `json:"impossible_reason,omitempty"`
	Suggestion       string       `json:"suggestion,omitempty"`
	CommonMistakes   []MistakeHit `json:"common_mistakes"`
}

const (
	AnswerTrue        = "True"
	AnswerFalse       = "False"
	AnswerNoSolution  = "No solution"
	AnswerComplexOnly = "No real solution (complex only)"
	AnswerUndefined   = "Undefined"
)

// errorResult converts a failure into a well-formed result.
func errorResult(subject string, err error) SolveResult {
	steps := []string{"Could not solve: " + subject}
	var pe *ParseError
	if errors.As(err, &pe) {
		steps = append(steps, pointAt(subject, pe.Position)...)
	}
	return SolveResult{
		Answer:         "Error: " + err.Error(),
		Steps:          steps,
		EquationType:   TypeError,
		CommonMistakes: []MistakeHit{},
	}
}

// pointAt renders text with a caret under the byte offset pos.
func pointAt(text string, pos int) []string {
	if pos > len(text) {
		pos = len(text)
	}
	return []string{"   " + text, "   " + strings.Repeat(" ", len([]rune(text[:pos]))) + "^"}
}

// undefinedResult reports err as an undefined value. The sentinel text is
// not repeated when err already wraps ErrUndefined.
func undefinedResult(steps []string, err error) SolveResult {
	detail := strings.TrimPrefix(strings.TrimPrefix(err.Error(), ErrUndefined.Error()), ": ")
	reason, step := ErrUndefined.Error(), "The expression is undefined"
	if detail != "" {
		reason += ": " + detail
		step += ": " + detail
	}
	return SolveResult{
		Answer:           AnswerUndefined,
		Steps:            append(steps, step),
		EquationType:     TypeImpossible,
		IsImpossible:     true,
		ImpossibleReason: reason,
		Suggestion:       "Check for division by zero or a value outside a function's domain.",
		CommonMistakes:   []MistakeHit{},
	}
}

// ============================================================
// Solver
// ============================================================

// Solver solves parsed expressions and equations. Derivation steps come
// from its StepComposer.
type Solver struct {
	steps StepComposer
}

func NewSolver(steps StepComposer) *Solver {
	if steps == nil {
		steps = DefaultSteps{}
	}
	return &Solver{steps: steps}
}

var defaultSolver = NewSolver(nil)

// SolveExpression evaluates or simplifies e with the default step composer.
func SolveExpression(e Expr) SolveResult { return defaultSolver.SolveExpression(e) }

// SolveEquation solves eq with the default step composer.
func SolveEquation(eq Equation) SolveResult { return defaultSolver.SolveEquation(eq) }

// Solve parses canonical text as an equation when it contains '=' and as
// an expression otherwise, and solves it.
func Solve(canonical string) SolveResult { return defaultSolver.Solve(canonical) }

func (s *Solver) Solve(canonical string) SolveResult {
	res, err := s.solve(canonical)
	if err != nil {
		return errorResult(canonical, err)
	}
	return res
}

func (s *Solver) SolveExpression(e Expr) SolveResult {
	res, err := s.solveExpression(e)
	if err != nil {
		return errorResult(e.String(), err)
	}
	return res
}

func (s *Solver) SolveEquation(eq Equation) SolveResult {
	res, err := s.solveEquation(eq)
	if err != nil {
		return errorResult(eq.String(), err)
	}
	return res
}

func (s *Solver) solve(canonical string) (SolveResult, error) {
	if strings.Contains(canonical, "=") {
		eq, err := ParseEquation(canonical)
		if err != nil {
			return SolveResult{}, err
		}
		return s.solveEquation(eq)
	}
	e, err := Parse(canonical)
	if err != nil {
		return SolveResult{}, err
	}
	return s.solveExpression(e)
}

// ============================================================
// Expression mode
// ============================================================

func (s *Solver) solveExpression(e Expr) (SolveResult, error) {
	steps := []string{"Expression: " + e.String()}
	target := e
	if len(FreeVariables(e)) > 0 {
		simplified, err := simplify(e)
		if isUndefined(err) {
			return undefinedResult(steps, err), nil
		}
		if err != nil {
			return SolveResult{}, err
		}
		steps = append(steps, "Simplified: "+simplified.String())
		if len(FreeVariables(simplified)) > 0 {
			return SolveResult{
				Answer:         simplified.String(),
				Steps:          steps,
				EquationType:   TypeAlgebraic,
				CommonMistakes: []MistakeHit{},
			}, nil
		}
		target = simplified
	}
	value, err := evaluate(target)
	if isUndefined(err) {
		return undefinedResult(steps, err), nil
	}
	if err != nil {
		return SolveResult{}, err
	}
	steps = append(steps, "Result: "+value)
	return SolveResult{
		Answer:         value,
		Steps:          steps,
		EquationType:   TypeArithmetic,
		CommonMistakes: []MistakeHit{},
	}, nil
}

func isUndefined(err error) bool {
	return errors.Is(err, ErrDivisionByZero) || errors.Is(err, ErrUndefined)
}

// evaluate computes a variable-free tree exactly when it can and
// numerically otherwise.
func evaluate(e Expr) (string, error) {
	v, err := EvalExact(e, nil)
	if err == nil {
		return formatRatDecimal(v), nil
	}
	if !errors.Is(err, errNotRational) {
		return "", err
	}
	c, err := EvalNumeric(e)
	if err != nil {
		return "", err
	}
	return formatComplex(c), nil
}

// ============================================================
// Equation mode
// ============================================================

// verificationTolerance bounds |left - right| for numeric comparisons.
const verificationTolerance = 1e-9

func (s *Solver) solveEquation(eq Equation) (SolveResult, error) {
	steps := []string{"Equation: " + eq.String()}
	vars := eq.FreeVariables()
	switch {
	case len(vars) == 0:
		return verifyEquation(eq, steps)
	case len(vars) > 1:
		return SolveResult{}, unsupported("multiple variables unsupported: %s", strings.Join(vars, ", "))
	}
	v := vars[0]
	steps = append(steps, "Solving for: "+v)

	sol, err := solveFor(eq, v)
	if isUndefined(err) {
		return undefinedResult(steps, err), nil
	}
	if err != nil {
		return SolveResult{}, err
	}
	if sol.identity {
		steps = append(steps, fmt.Sprintf("Both sides are equal for every value of %s", v))
		return SolveResult{
			Answer:         AnswerTrue,
			Steps:          steps,
			EquationType:   TypeVerification,
			CommonMistakes: []MistakeHit{},
		}, nil
	}
	if len(sol.roots) == 0 {
		steps = append(steps, fmt.Sprintf("No value of %s satisfies the equation", v))
		return SolveResult{
			Answer:           AnswerNoSolution,
			Steps:            steps,
			EquationType:     TypeNoSolution,
			IsImpossible:     true,
			ImpossibleReason: "the equation has no solution",
			Suggestion:       "Check that both sides were copied correctly.",
			CommonMistakes:   []MistakeHit{},
		}, nil
	}
	realRoots, complexRoots := partitionRoots(sol.roots)
	if len(realRoots) == 0 {
		steps = append(steps, "Complex solutions: "+joinRoots(v, complexRoots))
		return SolveResult{
			Answer:           AnswerComplexOnly,
			Steps:            steps,
			EquationType:     TypeComplexOnly,
			IsImpossible:     true,
			ImpossibleReason: "only complex solutions exist",
			Suggestion:       "The equation has no real solution; its solutions involve i = sqrt(-1).",
			CommonMistakes:   []MistakeHit{},
		}, nil
	}

	class := classifyDegree(sol.degree)
	derivation, err := s.steps.ComposeSteps(class, eq.Left, eq.Right, v)
	if err != nil {
		return SolveResult{}, err
	}
	return SolveResult{
		Answer:         joinRoots(v, realRoots),
		Steps:          append(steps, derivation...),
		EquationType:   class,
		CommonMistakes: []MistakeHit{},
	}, nil
}

func classifyDegree(degree int) EquationType {
	switch degree {
	case 1:
		return TypeLinear
	case 2:
		return TypeQuadratic
	}
	return TypePolynomial
}

func partitionRoots(roots []Root) (realRoots, nonReal []Root) {
	for _, r := range roots {
		if r.IsReal() {
			realRoots = append(realRoots, r)
		} else {
			nonReal = append(nonReal, r)
		}
	}
	return realRoots, nonReal
}

func joinRoots(variable string, roots []Root) string {
	parts := make([]string, len(roots))
	for i, r := range roots {
		parts[i] = r.String()
	}
	return variable + " = " + strings.Join(parts, " or ")
}

// solution is the solved form of a univariate equation.
type solution struct {
	numerator   Poly
	denominator Poly
	excluded    Poly
	roots       []Root
	rejected    []Root
	degree      int
	identity    bool
}

// solveFor rewrites left - right as a rational function, clears the
// denominator and solves the numerator. Roots of the cleared denominator
// are excluded.
func solveFor(eq Equation, variable string) (solution, error) {
	rf, err := toRatFunc(eq.Difference(), variable)
	if err != nil {
		return solution{}, err
	}
	num, den := rf.num, rf.den
	if num.IsZero() {
		return solution{identity: true}, nil
	}
	if g := polyGCD(num, den); !g.IsConstant() {
		num, _ = num.DivMod(g)
		den, _ = den.DivMod(g)
	}
	sol := solution{numerator: num, denominator: den, excluded: rf.den, degree: num.Degree()}
	if num.IsConstant() {
		return sol, nil
	}
	for _, r := range solvePolynomial(num) {
		if excludedRoot(rf.den, r) {
			sol.rejected = append(sol.rejected, r)
			continue
		}
		sol.roots = append(sol.roots, r)
	}
	return sol, nil
}

// excludedRoot reports whether r is a zero of the original denominator.
func excludedRoot(den Poly, r Root) bool {
	if den.IsConstant() {
		return false
	}
	if v, ok := r.Rat(); ok {
		return den.Eval(v).Sign() == 0
	}
	return cmplx.Abs(den.EvalComplex(r.Complex())) < verificationTolerance
}

// sideValue renders one side of a variable-free equation, or the reason it
// has no value.
func sideValue(e Expr) string {
	v, err := evaluate(e)
	if err != nil {
		return "undefined (" + err.Error() + ")"
	}
	return v
}

// verifyEquation decides a variable-free equation.
func verifyEquation(eq Equation, steps []string) (SolveResult, error) {
	diff := eq.Difference()
	var equal bool
	d, err := EvalExact(diff, nil)
	switch {
	case err == nil:
		equal = d.Sign() == 0
	case errors.Is(err, errNotRational):
		c, nerr := EvalNumeric(diff)
		if isUndefined(nerr) {
			return undefinedResult(steps, nerr), nil
		}
		if nerr != nil {
			return SolveResult{}, nerr
		}
		equal = cmplx.Abs(c) < verificationTolerance
	case isUndefined(err):
		return undefinedResult(steps, err), nil
	default:
		return SolveResult{}, err
	}
	steps = append(steps,
		"Evaluate both sides:",
		fmt.Sprintf("   Left side: %s = %s", eq.Left, sideValue(eq.Left)),
		fmt.Sprintf("   Right side: %s = %s", eq.Right, sideValue(eq.Right)),
	)
	answer := AnswerFalse
	if equal {
		answer = AnswerTrue
		steps = append(steps, "Both sides are equal, so the statement is true.")
	} else {
		steps = append(steps, "The sides differ, so the statement is false.")
	}
	return SolveResult{
		Answer:         answer,
		Steps:          steps,
		EquationType:   TypeVerification,
		CommonMistakes: []MistakeHit{},
	}, nil
}
