package mathsolve

import (
	"fmt"
)

// ============================================================
// LaTeX rendering
// ============================================================

// LaTeX renders e for display, with the same grouping as String.
func LaTeX(e Expr) string {
	switch v := e.(type) {
	case *Num:
		if v.val.IsInt() {
			return v.String()
		}
		sign := ""
		r := v.Rat()
		if r.Sign() < 0 {
			sign = "-"
			r.Neg(r)
		}
		return fmt.Sprintf("%s\\frac{%s}{%s}", sign, r.Num(), r.Denom())
	case *Const:
		switch v.kind {
		case Pi:
			return "\\pi"
		case E:
			return "e"
		}
		return "i"
	case *Var:
		return v.name
	case *Neg:
		s := LaTeX(v.x)
		if _, inner := v.x.(*Neg); inner || precedence(v.x) < precNeg || isNegativeNum(v.x) {
			s = "\\left(" + s + "\\right)"
		}
		return "-" + s
	case *Binary:
		return binaryLaTeX(v)
	case *Call:
		arg := LaTeX(v.arg)
		switch v.fn {
		case FnSqrt:
			return "\\sqrt{" + arg + "}"
		case FnAbs:
			return "\\left|" + arg + "\\right|"
		case FnLog:
			return "\\log_{10}\\left(" + arg + "\\right)"
		}
		return "\\" + fnNames[v.fn] + "\\left(" + arg + "\\right)"
	}
	return ""
}

func binaryLaTeX(b *Binary) string {
	l, r := LaTeX(b.left), LaTeX(b.right)
	switch b.op {
	case OpDiv:
		return "\\frac{" + l + "}{" + r + "}"
	case OpPow:
		if precedence(b.left) <= precPow {
			l = "\\left(" + l + "\\right)"
		}
		return l + "^{" + r + "}"
	}
	p := precedence(b)
	if precedence(b.left) < p {
		l = "\\left(" + l + "\\right)"
	}
	rp := precedence(b.right)
	if rp < p || (rp == p && b.op == OpSub) || isNegativeNum(b.right) {
		r = "\\left(" + r + "\\right)"
	} else if _, neg := b.right.(*Neg); neg {
		r = "\\left(" + r + "\\right)"
	}
	switch b.op {
	case OpAdd:
		return l + " + " + r
	case OpSub:
		return l + " - " + r
	}
	return l + " \\cdot " + r
}
