// Package mathsolve is a deterministic equation-solving engine for Go.
//
// It turns loosely formatted math text into a canonical form, screens it
// for impossible or undefined problems, solves it over exact rational
// arithmetic and renders an audience-tiered derivation together with
// warnings about common misconceptions.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat) wherever possible
//   - Immutable expression trees with stable, re-parseable output
//   - Pure per-call pipeline, safe for concurrent use
//   - JSON and MCP-ready tool surface
package mathsolve

import (
	"math/big"
	"sort"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is a node of an immutable expression tree. The set of node kinds
// is closed: only the types declared in this file implement it.
type Expr interface {
	String() string
	exprNode()
}

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("mathsolve: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NRat wraps a copy of r.
func NRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) exprNode()         {}
func (n *Num) Rat() *big.Rat     { return new(big.Rat).Set(n.val) }
func (n *Num) Float64() float64  { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool      { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool       { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsInteger() bool   { return n.val.IsInt() }
func (n *Num) IsNegative() bool  { return n.val.Sign() < 0 }
func (n *Num) String() string    { return formatRat(n.val) }
func (n *Num) equal(o *Num) bool { return n.val.Cmp(o.val) == 0 }
func (n *Num) negated() *Num     { return &Num{val: new(big.Rat).Neg(n.val)} }

// ============================================================
// Const: named irrational or complex constants
// ============================================================

type ConstKind int

const (
	Pi ConstKind = iota
	E
	ImaginaryUnit
)

var constNames = [...]string{Pi: "pi", E: "e", ImaginaryUnit: "i"}

type Const struct{ kind ConstKind }

func C(kind ConstKind) *Const    { return &Const{kind: kind} }
func (c *Const) exprNode()       {}
func (c *Const) Kind() ConstKind { return c.kind }
func (c *Const) String() string  { return constNames[c.kind] }

// ============================================================
// Var: symbolic variable
// ============================================================

type Var struct{ name string }

func S(name string) *Var      { return &Var{name: name} }
func (v *Var) exprNode()      {}
func (v *Var) Name() string   { return v.name }
func (v *Var) String() string { return v.name }

// ============================================================
// Neg: unary minus
// ============================================================

type Neg struct{ x Expr }

func NegOf(x Expr) Expr      { return &Neg{x: x} }
func (n *Neg) exprNode()     {}
func (n *Neg) Operand() Expr { return n.x }

func (n *Neg) String() string {
	s := n.x.String()
	if _, inner := n.x.(*Neg); inner || precedence(n.x) < precNeg || isNegativeNum(n.x) {
		s = "(" + s + ")"
	}
	return "-" + s
}

// ============================================================
// Binary: arithmetic operators
// ============================================================

type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

var opSymbols = [...]string{OpAdd: " + ", OpSub: " - ", OpMul: "*", OpDiv: "/", OpPow: "^"}

type Binary struct {
	op          Op
	left, right Expr
}

func (b *Binary) exprNode()   {}
func (b *Binary) Op() Op      { return b.op }
func (b *Binary) Left() Expr  { return b.left }
func (b *Binary) Right() Expr { return b.right }

func binary(op Op, left, right Expr) Expr { return &Binary{op: op, left: left, right: right} }

// AddOf folds terms left to right into a chain of additions.
func AddOf(terms ...Expr) Expr { return foldLeft(OpAdd, N(0), terms) }

// MulOf folds factors left to right into a chain of products.
func MulOf(factors ...Expr) Expr { return foldLeft(OpMul, N(1), factors) }

func SubOf(a, b Expr) Expr { return binary(OpSub, a, b) }
func DivOf(a, b Expr) Expr { return binary(OpDiv, a, b) }
func PowOf(a, b Expr) Expr { return binary(OpPow, a, b) }

func foldLeft(op Op, empty Expr, xs []Expr) Expr {
	if len(xs) == 0 {
		return empty
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = binary(op, acc, x)
	}
	return acc
}

func (b *Binary) String() string {
	p := precedence(b)
	l := b.left.String()
	lp := precedence(b.left)
	if lp < p || (b.op == OpPow && lp == p) {
		l = "(" + l + ")"
	}
	r := b.right.String()
	rp := precedence(b.right)
	switch {
	case rp < p, isNegativeNum(b.right):
		r = "(" + r + ")"
	case rp == p && (b.op == OpSub || b.op == OpDiv):
		r = "(" + r + ")"
	default:
		if _, neg := b.right.(*Neg); neg {
			r = "(" + r + ")"
		}
	}
	return l + opSymbols[b.op] + r
}

// ============================================================
// Call: single-argument function application
// ============================================================

type Fn int

const (
	FnSqrt Fn = iota
	FnSin
	FnCos
	FnTan
	FnLog
	FnLn
	FnExp
	FnAbs
)

var fnNames = [...]string{
	FnSqrt: "sqrt", FnSin: "sin", FnCos: "cos", FnTan: "tan",
	FnLog: "log", FnLn: "ln", FnExp: "exp", FnAbs: "abs",
}

// functionsByName is the parser's function table.
var functionsByName = func() map[string]Fn {
	m := make(map[string]Fn, len(fnNames))
	for fn, name := range fnNames {
		m[name] = Fn(fn)
	}
	return m
}()

type Call struct {
	fn  Fn
	arg Expr
}

func CallOf(fn Fn, arg Expr) Expr { return &Call{fn: fn, arg: arg} }
func SqrtOf(arg Expr) Expr        { return CallOf(FnSqrt, arg) }
func SinOf(arg Expr) Expr         { return CallOf(FnSin, arg) }
func CosOf(arg Expr) Expr         { return CallOf(FnCos, arg) }
func TanOf(arg Expr) Expr         { return CallOf(FnTan, arg) }
func LogOf(arg Expr) Expr         { return CallOf(FnLog, arg) }
func LnOf(arg Expr) Expr          { return CallOf(FnLn, arg) }
func ExpOf(arg Expr) Expr         { return CallOf(FnExp, arg) }
func AbsOf(arg Expr) Expr         { return CallOf(FnAbs, arg) }

func (c *Call) exprNode()        {}
func (c *Call) Fn() Fn           { return c.fn }
func (c *Call) FuncName() string { return fnNames[c.fn] }
func (c *Call) Arg() Expr        { return c.arg }
func (c *Call) String() string   { return fnNames[c.fn] + "(" + c.arg.String() + ")" }

// ============================================================
// Printing precedence
// ============================================================

const (
	precAdd = iota + 1
	precMul
	precNeg
	precPow
	precAtom
)

func precedence(e Expr) int {
	switch v := e.(type) {
	case *Binary:
		switch v.op {
		case OpAdd, OpSub:
			return precAdd
		case OpMul, OpDiv:
			return precMul
		default:
			return precPow
		}
	case *Neg:
		return precNeg
	case *Num:
		if v.val.Sign() < 0 {
			return precNeg
		}
		if !v.val.IsInt() {
			return precMul
		}
	}
	return precAtom
}

func isNegativeNum(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.Sign() < 0
}

// ============================================================
// Structural equality and traversal
// ============================================================

// Equal reports whether a and b are the same tree.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Num:
		y, ok := b.(*Num)
		return ok && x.equal(y)
	case *Const:
		y, ok := b.(*Const)
		return ok && x.kind == y.kind
	case *Var:
		y, ok := b.(*Var)
		return ok && x.name == y.name
	case *Neg:
		y, ok := b.(*Neg)
		return ok && Equal(x.x, y.x)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.op == y.op && Equal(x.left, y.left) && Equal(x.right, y.right)
	case *Call:
		y, ok := b.(*Call)
		return ok && x.fn == y.fn && Equal(x.arg, y.arg)
	}
	return false
}

// FreeVariables returns the sorted distinct variable names in e.
func FreeVariables(e Expr) []string {
	seen := map[string]struct{}{}
	collectVariables(e, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectVariables(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Var:
		out[v.name] = struct{}{}
	case *Neg:
		collectVariables(v.x, out)
	case *Binary:
		collectVariables(v.left, out)
		collectVariables(v.right, out)
	case *Call:
		collectVariables(v.arg, out)
	}
}

func containsVariable(e Expr, name string) bool {
	switch v := e.(type) {
	case *Var:
		return v.name == name
	case *Neg:
		return containsVariable(v.x, name)
	case *Binary:
		return containsVariable(v.left, name) || containsVariable(v.right, name)
	case *Call:
		return containsVariable(v.arg, name)
	}
	return false
}

// Substitute returns a copy of e with every occurrence of the variable
// name replaced by value.
func Substitute(e Expr, name string, value Expr) Expr {
	switch v := e.(type) {
	case *Var:
		if v.name == name {
			return value
		}
	case *Neg:
		return &Neg{x: Substitute(v.x, name, value)}
	case *Binary:
		return &Binary{op: v.op, left: Substitute(v.left, name, value), right: Substitute(v.right, name, value)}
	case *Call:
		return &Call{fn: v.fn, arg: Substitute(v.arg, name, value)}
	}
	return e
}

// ============================================================
// Equation
// ============================================================

type Equation struct {
	Left, Right Expr
}

func Eq(left, right Expr) Equation { return Equation{Left: left, Right: right} }

func (e Equation) String() string { return e.Left.String() + " = " + e.Right.String() }

// Difference returns Left - Right.
func (e Equation) Difference() Expr { return SubOf(e.Left, e.Right) }

func (e Equation) FreeVariables() []string { return FreeVariables(e.Difference()) }

