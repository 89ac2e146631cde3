package mathsolve_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve"
)

// ============================================================
// Construction and printing
// ============================================================

func TestNum_String(t *testing.T) {
	assert.Equal(t, "42", mathsolve.N(42).String())
	assert.Equal(t, "1/3", mathsolve.F(1, 3).String())
	assert.Equal(t, "-5/2", mathsolve.F(10, -4).String())
}

func TestNum_ZeroDenominatorPanics(t *testing.T) {
	assert.Panics(t, func() { mathsolve.F(1, 0) })
}

func TestBinary_String_MinimalParens(t *testing.T) {
	x := mathsolve.S("x")
	tests := []struct {
		name string
		expr mathsolve.Expr
		want string
	}{
		{"sum of product", mathsolve.AddOf(mathsolve.MulOf(mathsolve.N(2), x), mathsolve.N(3)), "2*x + 3"},
		{"product of sum", mathsolve.MulOf(mathsolve.N(2), mathsolve.AddOf(x, mathsolve.N(1))), "2*(x + 1)"},
		{"right-nested subtraction", mathsolve.SubOf(x, mathsolve.SubOf(mathsolve.N(1), x)), "x - (1 - x)"},
		{"left-nested subtraction", mathsolve.SubOf(mathsolve.SubOf(x, mathsolve.N(1)), x), "x - 1 - x"},
		{"power of power, right", mathsolve.PowOf(x, mathsolve.PowOf(mathsolve.N(2), mathsolve.N(3))), "x^2^3"},
		{"power of power, left", mathsolve.PowOf(mathsolve.PowOf(x, mathsolve.N(2)), mathsolve.N(3)), "(x^2)^3"},
		{"negated power", mathsolve.NegOf(mathsolve.PowOf(x, mathsolve.N(2))), "-x^2"},
		{"power of negation", mathsolve.PowOf(mathsolve.NegOf(x), mathsolve.N(2)), "(-x)^2"},
		{"negative right operand", mathsolve.MulOf(mathsolve.N(2), mathsolve.N(-3)), "2*(-3)"},
		{"function call", mathsolve.SqrtOf(mathsolve.AddOf(x, mathsolve.N(1))), "sqrt(x + 1)"},
		{"constant", mathsolve.MulOf(mathsolve.N(2), mathsolve.C(mathsolve.Pi)), "2*pi"},
		{"empty sum", mathsolve.AddOf(), "0"},
		{"empty product", mathsolve.MulOf(), "1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.expr.String())
		})
	}
}

func TestString_Reparses(t *testing.T) {
	for _, src := range []string{"2*x + 3", "x - (1 - x)", "(x^2)^3", "-x^2", "2*(-3)", "sqrt(x + 1)/2", "x/(2*x)"} {
		e, err := mathsolve.Parse(src)
		require.NoError(t, err, src)
		again, err := mathsolve.Parse(e.String())
		require.NoError(t, err, src)
		assert.True(t, mathsolve.Equal(e, again), "%s reprinted as %s", src, e.String())
	}
}

// ============================================================
// Traversal
// ============================================================

func TestFreeVariables_Sorted(t *testing.T) {
	e, err := mathsolve.Parse("z + x*y + x")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, mathsolve.FreeVariables(e))
	assert.Empty(t, mathsolve.FreeVariables(mathsolve.N(3)))
}

func TestSubstitute(t *testing.T) {
	e, err := mathsolve.Parse("2*x + 3")
	require.NoError(t, err)
	assert.Equal(t, "2*5 + 3", mathsolve.Substitute(e, "x", mathsolve.N(5)).String())
	assert.Equal(t, "2*(-1) + 3", mathsolve.Substitute(e, "x", mathsolve.N(-1)).String())
	assert.Equal(t, "2*x + 3", mathsolve.Substitute(e, "y", mathsolve.N(5)).String())
}

func TestEquation_Difference(t *testing.T) {
	eq, err := mathsolve.ParseEquation("x + 1 = 2")
	require.NoError(t, err)
	assert.Equal(t, "x + 1 - 2", eq.Difference().String())
	assert.Equal(t, []string{"x"}, eq.FreeVariables())
}

// ============================================================
// Evaluation and simplification
// ============================================================

func TestEvalExact(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"2^10", "1024"},
		{"1 - 2 - 3", "-4"},
		{"8/4/2", "1"},
		{"2^3^2", "512"},
		{"2^-1", "1/2"},
		{"sqrt(16) + 3", "7"},
		{"8^(1/3)", "2"},
		{"log(1000)", "3"},
		{"abs(-7/2)", "7/2"},
	}
	for _, tc := range tests {
		e, err := mathsolve.Parse(tc.src)
		require.NoError(t, err, tc.src)
		v, err := mathsolve.EvalExact(e, nil)
		require.NoError(t, err, tc.src)
		assert.Equal(t, tc.want, v.RatString(), tc.src)
	}
}

func TestEvalExact_BindsVariables(t *testing.T) {
	e, err := mathsolve.Parse("x^2 - 1")
	require.NoError(t, err)
	v, err := mathsolve.EvalExact(e, map[string]*big.Rat{"x": big.NewRat(3, 1)})
	require.NoError(t, err)
	assert.Equal(t, "8", v.RatString())
}

func TestEvalExact_DivisionByZero(t *testing.T) {
	for _, src := range []string{"1/0", "0^-1", "1/(2 - 2)"} {
		e, err := mathsolve.Parse(src)
		require.NoError(t, err)
		_, err = mathsolve.EvalExact(e, nil)
		assert.ErrorIs(t, err, mathsolve.ErrDivisionByZero, src)
	}
}

func TestEvalNumeric(t *testing.T) {
	e, err := mathsolve.Parse("2*pi")
	require.NoError(t, err)
	v, err := mathsolve.EvalNumeric(e)
	require.NoError(t, err)
	assert.InDelta(t, 6.283185307, real(v), 1e-9)

	e, err = mathsolve.Parse("sqrt(2)^2")
	require.NoError(t, err)
	v, err = mathsolve.EvalNumeric(e)
	require.NoError(t, err)
	assert.InDelta(t, 2, real(v), 1e-12)
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x + x + x + 2", "3*x + 2"},
		{"(x + 1)^2", "x^2 + 2*x + 1"},
		{"(x^2 - 1)/(x - 1)", "x + 1"},
		{"x/2 + x/2", "x"},
		{"1/3 + 1/6", "1/2"},
		{"x - x", "0"},
	}
	for _, tc := range tests {
		e, err := mathsolve.Parse(tc.src)
		require.NoError(t, err, tc.src)
		assert.Equal(t, tc.want, mathsolve.Simplify(e).String(), tc.src)
	}
}

func TestSimplify_KeepsUndefined(t *testing.T) {
	e, err := mathsolve.Parse("1/0")
	require.NoError(t, err)
	assert.Same(t, e, mathsolve.Simplify(e))
}

// ============================================================
// JSON and LaTeX
// ============================================================

func TestToJSON_Tagged(t *testing.T) {
	s, err := mathsolve.ToJSON(mathsolve.AddOf(mathsolve.S("x"), mathsolve.N(1)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"add","left":{"type":"var","name":"x"},"right":{"type":"num","value":"1"}}`, s)
}

func TestFromJSON_RoundTrip(t *testing.T) {
	e, err := mathsolve.Parse("-sqrt(x + 1/2)^2*pi")
	require.NoError(t, err)
	s, err := mathsolve.ToJSON(e)
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &data))
	back, err := mathsolve.FromJSON(data)
	require.NoError(t, err)
	assert.True(t, mathsolve.Equal(e, back))
}

func TestFromJSON_Errors(t *testing.T) {
	_, err := mathsolve.FromJSON(map[string]interface{}{"type": "bogus"})
	assert.Error(t, err)
	_, err = mathsolve.FromJSON(map[string]interface{}{"type": "call", "func": "sinh"})
	assert.Error(t, err)
	_, err = mathsolve.FromJSON(map[string]interface{}{"type": "add", "left": map[string]interface{}{"type": "var", "name": "x"}})
	assert.Error(t, err)
}

func TestLaTeX(t *testing.T) {
	x := mathsolve.S("x")
	assert.Equal(t, `\frac{x}{2}`, mathsolve.LaTeX(mathsolve.DivOf(x, mathsolve.N(2))))
	assert.Equal(t, `\frac{1}{3}`, mathsolve.LaTeX(mathsolve.F(1, 3)))
	assert.Equal(t, `\sqrt{x}`, mathsolve.LaTeX(mathsolve.SqrtOf(x)))
	assert.Equal(t, `\left(x + 1\right)^{2}`, mathsolve.LaTeX(mathsolve.PowOf(mathsolve.AddOf(x, mathsolve.N(1)), mathsolve.N(2))))
	assert.Equal(t, `2 \cdot \pi`, mathsolve.LaTeX(mathsolve.MulOf(mathsolve.N(2), mathsolve.C(mathsolve.Pi))))
	assert.Equal(t, `\sin\left(x\right)`, mathsolve.LaTeX(mathsolve.SinOf(x)))
}
