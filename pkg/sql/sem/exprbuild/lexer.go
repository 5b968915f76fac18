// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package exprbuild

import "fmt"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokError
	tokNumber
	tokIdent
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokError:
		return fmt.Sprintf("character %q", t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// lexer splits its input into tokens. A number is an optional minus sign
// followed by digits, an optional fraction and an optional exponent.
type lexer struct {
	s   string
	pos int
	tok token
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentChar(c byte) bool {
	return c == '_' || isDigit(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func (l *lexer) next() {
	for l.pos < len(l.s) && (l.s[l.pos] == ' ' || l.s[l.pos] == '\t' || l.s[l.pos] == '\n') {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.s) {
		l.tok = token{kind: tokEOF, pos: start}
		return
	}
	c := l.s[l.pos]
	switch {
	case c == '(':
		l.pos++
		l.tok = token{kind: tokLParen, text: "(", pos: start}
	case c == ')':
		l.pos++
		l.tok = token{kind: tokRParen, text: ")", pos: start}
	case c == ',':
		l.pos++
		l.tok = token{kind: tokComma, text: ",", pos: start}
	case isDigit(c) || c == '.' || ((c == '-' || c == '+') && l.pos+1 < len(l.s) &&
		(isDigit(l.s[l.pos+1]) || l.s[l.pos+1] == '.')):
		l.pos++
		l.scanNumber()
		l.tok = token{kind: tokNumber, text: l.s[start:l.pos], pos: start}
	case isIdentChar(c):
		for l.pos < len(l.s) && isIdentChar(l.s[l.pos]) {
			l.pos++
		}
		l.tok = token{kind: tokIdent, text: l.s[start:l.pos], pos: start}
	default:
		l.pos++
		l.tok = token{kind: tokError, text: l.s[start:l.pos], pos: start}
	}
}

func (l *lexer) scanNumber() {
	for l.pos < len(l.s) && (isDigit(l.s[l.pos]) || l.s[l.pos] == '.') {
		l.pos++
	}
	if l.pos < len(l.s) && (l.s[l.pos] == 'e' || l.s[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.s) && (l.s[l.pos] == '-' || l.s[l.pos] == '+') {
			l.pos++
		}
		for l.pos < len(l.s) && isDigit(l.s[l.pos]) {
			l.pos++
		}
	}
}
