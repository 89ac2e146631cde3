package mathsolve

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// Domain Validator
// ============================================================

// ImpossibleResult describes an input rejected before solving because it
// has no real solution or is undefined.
type ImpossibleResult struct {
	Rule       string   `json:"rule"`
	Answer     string   `json:"answer"`
	Reason     string   `json:"reason"`
	Suggestion string   `json:"suggestion"`
	Steps      []string `json:"steps"`
}

// Result converts the rejection into a SolveResult of class impossible.
func (r *ImpossibleResult) Result() SolveResult {
	return SolveResult{
		Answer:           r.Answer,
		Steps:            append([]string(nil), r.Steps...),
		EquationType:     TypeImpossible,
		IsImpossible:     true,
		ImpossibleReason: r.Reason,
		Suggestion:       r.Suggestion,
		CommonMistakes:   []MistakeHit{},
	}
}

type domainCheck func(text string) *ImpossibleResult

// domainChecks run in order; the first match wins.
var domainChecks = []domainCheck{checkTrigRange, checkLogDomain, checkEvenRoot}

// CheckImpossible screens canonical text for problems that have no real
// answer. It inspects literal arguments only and returns nil when no rule
// fires. It never fails, even on text the parser would reject.
func CheckImpossible(canonical string) *ImpossibleResult {
	text := strings.ToLower(canonical)
	for _, check := range domainChecks {
		if r := check(text); r != nil {
			return r
		}
	}
	return nil
}

var trigRangeNames = map[string]string{"sin": "sine", "cos": "cosine"}

// checkTrigRange flags sin(arg) = k or cos(arg) = k with |k| > 1.
func checkTrigRange(text string) *ImpossibleResult {
	sides := strings.Split(text, "=")
	if len(sides) != 2 {
		return nil
	}
	left, right := strings.TrimSpace(sides[0]), strings.TrimSpace(sides[1])
	for _, pair := range [][2]string{{left, right}, {right, left}} {
		call, value := pair[0], pair[1]
		fn, ok := wholeCall(call, "sin", "cos")
		if !ok {
			continue
		}
		k, ok := parseLiteral(value)
		if !ok || ratAbs(k).Cmp(ratOne) <= 0 {
			continue
		}
		return &ImpossibleResult{
			Rule:   "range_violation",
			Answer: "No real solution",
			Reason: fmt.Sprintf("range violation: %s = %s has no real solution because %s only takes values in [-1, 1]",
				call, value, trigRangeNames[fn]),
			Suggestion: "Did you copy the question correctly? The value on the other side must be between -1 and 1.",
			Steps: []string{
				fmt.Sprintf("%s can only equal values between -1 and 1", call),
				fmt.Sprintf("%s lies outside [-1, 1], so no real angle works", value),
			},
		}
	}
	return nil
}

// checkLogDomain flags log(k) or ln(k) with a literal k <= 0.
func checkLogDomain(text string) *ImpossibleResult {
	for _, name := range []string{"log", "ln"} {
		for _, arg := range callArguments(text, name) {
			k, ok := parseLiteral(arg)
			if !ok || k.Sign() > 0 {
				continue
			}
			call := name + "(" + arg + ")"
			return &ImpossibleResult{
				Rule:   "log_domain",
				Answer: "Undefined",
				Reason: fmt.Sprintf("logarithm of non-positive: %s is undefined because the logarithm is only defined for x > 0",
					call),
				Suggestion: fmt.Sprintf("Check that the number inside %s() is positive.", name),
				Steps: []string{
					"The logarithm is only defined for positive numbers",
					fmt.Sprintf("%s is not positive, so %s has no real value", arg, call),
				},
			}
		}
	}
	return nil
}

// checkEvenRoot flags sqrt(k), √k and √(k) with a literal k < 0.
func checkEvenRoot(text string) *ImpossibleResult {
	args := callArguments(text, "sqrt")
	for i := strings.Index(text, "√"); i >= 0; {
		rest := text[i+len("√"):]
		if strings.HasPrefix(rest, "(") {
			if end := matchingParen(rest, 0); end > 0 {
				args = append(args, rest[1:end])
			}
		} else {
			args = append(args, leadingLiteral(rest))
		}
		next := strings.Index(rest, "√")
		if next < 0 {
			break
		}
		i += len("√") + next
	}
	for _, arg := range args {
		k, ok := parseLiteral(arg)
		if !ok || k.Sign() >= 0 {
			continue
		}
		return &ImpossibleResult{
			Rule:       "even_root",
			Answer:     "No real solution",
			Reason:     fmt.Sprintf("even root of negative: sqrt(%s) is not a real number", arg),
			Suggestion: "For a real answer the number under the square root must be zero or positive.",
			Steps: []string{
				"A square root of a negative number is imaginary",
				fmt.Sprintf("sqrt(%s) has no real value", arg),
			},
		}
	}
	return nil
}

// wholeCall reports whether s is exactly name(...) for one of names, with
// the closing parenthesis at the end of s.
func wholeCall(s string, names ...string) (string, bool) {
	for _, name := range names {
		if !strings.HasPrefix(s, name+"(") {
			continue
		}
		if end := matchingParen(s, len(name)); end == len(s)-1 {
			return name, true
		}
	}
	return "", false
}

// callArguments returns the argument text of every name(...) in text.
func callArguments(text, name string) []string {
	var args []string
	opener := name + "("
	for from := 0; ; {
		i := strings.Index(text[from:], opener)
		if i < 0 {
			return args
		}
		i += from
		from = i + len(opener)
		if i > 0 && isASCIILetter(text[i-1]) {
			continue
		}
		open := i + len(name)
		if end := matchingParen(text, open); end > 0 {
			args = append(args, text[open+1:end])
		}
	}
}

// matchingParen returns the index of the ')' closing the '(' at open, or
// -1 when it is unbalanced.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// leadingLiteral takes an optionally signed decimal literal off the front
// of s.
func leadingLiteral(s string) string {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	for i < len(s) && (isDigitRune(rune(s[i])) || s[i] == '.') {
		i++
	}
	return s[:i]
}

// parseLiteral reads a signed decimal literal, optionally wrapped in
// parentheses. Anything else, including expressions, is rejected.
func parseLiteral(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(s)
	for len(s) >= 2 && s[0] == '(' && matchingParen(s, 0) == len(s)-1 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" || leadingLiteral(s) != s {
		return nil, false
	}
	body := strings.TrimLeft(s, "+-")
	if body == "" || body == "." || strings.Count(body, ".") > 1 {
		return nil, false
	}
	if strings.HasPrefix(body, ".") {
		body = "0" + body
	}
	if strings.HasSuffix(body, ".") {
		body += "0"
	}
	r, ok := new(big.Rat).SetString(body)
	if !ok {
		return nil, false
	}
	if s[0] == '-' {
		r.Neg(r)
	}
	return r, true
}

func isASCIILetter(b byte) bool { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }
