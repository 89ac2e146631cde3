package mathsolve

import (
	"fmt"
	"unicode/utf8"
)

// ============================================================
// Lexer
// ============================================================

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokRadical
	tokEquals
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number " + t.text
	}
	return "'" + t.text + "'"
}

var punctuation = map[rune]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'^': tokCaret,
	'(': tokLParen,
	')': tokRParen,
	'√': tokRadical,
	'=': tokEquals,
}

// lex splits src into tokens. offset is added to every position so errors
// point into the full canonical text when src is one side of an equation.
func lex(src string, offset int) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == ' ' || r == '\t':
			i += size
		case isDigitRune(r) || r == '.':
			start := i
			dots := 0
			for i < len(src) && (isDigitRune(rune(src[i])) || src[i] == '.') {
				if src[i] == '.' {
					dots++
				}
				i++
			}
			text := src[start:i]
			if dots > 1 || text == "." {
				return nil, &ParseError{Reason: fmt.Sprintf("malformed number %q", text), Position: offset + start}
			}
			toks = append(toks, token{kind: tokNumber, text: text, pos: offset + start})
		case r < utf8.RuneSelf && isLetterRune(r):
			start := i
			for i < len(src) && src[i] < utf8.RuneSelf && isLetterRune(rune(src[i])) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: src[start:i], pos: offset + start})
		case r == 'π':
			toks = append(toks, token{kind: tokIdent, text: "pi", pos: offset + i})
			i += size
		default:
			kind, ok := punctuation[r]
			if !ok {
				return nil, &ParseError{Reason: fmt.Sprintf("unexpected character %q", r), Position: offset + i}
			}
			toks = append(toks, token{kind: kind, text: string(r), pos: offset + i})
			i += size
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: offset + len(src)})
	return toks, nil
}
