package mathsolve

import (
	"strings"
	"unicode"
)

// ============================================================
// Normalizer
// ============================================================

var superscriptDigits = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

const superscriptMinus = '⁻'

var visualOperators = strings.NewReplacer(
	"×", "*",
	"·", "*",
	"⋅", "*",
	"÷", "/",
	"−", "-",
	"—", "-",
	"–", "-",
)

// Normalize rewrites loosely formatted math text into the canonical form
// the parser accepts. It is total and idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := expandSuperscripts(raw)
	s = visualOperators.Replace(s)
	s = strings.ReplaceAll(s, "**", "^")
	s = insertImplicitMultiplication(s)
	return strings.Join(strings.Fields(s), " ")
}

// expandSuperscripts turns a run such as ⁻¹² into ^-12.
func expandSuperscripts(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		_, isDigit := superscriptDigits[r]
		if !isDigit && r != superscriptMinus {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('^')
		if r == superscriptMinus {
			b.WriteByte('-')
			i++
		}
		for ; i < len(runes); i++ {
			d, ok := superscriptDigits[runes[i]]
			if !ok {
				break
			}
			b.WriteRune(d)
		}
		i--
	}
	return b.String()
}

func isLetterRune(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsLetter(r) || r == 'π' || r == '√'
}

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }

// insertImplicitMultiplication adds '*' at digit→letter, digit→'(',
// letter→'(', ')'→'(' and ')'→letter-or-digit boundaries. A function name
// or radical followed by '(' is an application and is left alone.
func insertImplicitMultiplication(s string) string {
	runes := []rune(s)
	var b strings.Builder
	runStart := -1
	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			if needsImplicitTimes(prev, r, runes, runStart, i) {
				b.WriteByte('*')
			}
		}
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			if runStart < 0 {
				runStart = i
			}
		default:
			runStart = -1
		}
		b.WriteRune(r)
	}
	return b.String()
}

func needsImplicitTimes(prev, cur rune, runes []rune, runStart, i int) bool {
	switch {
	case isDigitRune(prev) && (isLetterRune(cur) || cur == '('):
		return true
	case prev == ')' && (cur == '(' || isLetterRune(cur) || isDigitRune(cur)):
		return true
	case isLetterRune(prev) && cur == '(':
		if prev == '√' {
			return false
		}
		if prev == 'π' {
			return true
		}
		word := string(runes[runStart:i])
		return len(word) == 1 || word == "pi"
	}
	return false
}
