// This file is part of ngaro - https://github.com/db47h/ngaro
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lexer scans Scheme source text into a token stream. It is built
// on text/scanner the way db47h-ngaro/asm/parser.go is: a custom
// IsIdentRune widens the identifier alphabet to the language's own rules
// (here, R5RS peculiar identifiers per original_source/bob/bobparser.py's
// BobLexer), while scanning itself is still driven rune-by-rune since
// Scheme's token grammar (parens, quote, radix-prefixed numbers, booleans)
// doesn't map onto text/scanner's built-in Go-token classification.
package lexer

import (
	"strings"
	"text/scanner"

	"github.com/schemevm/bob/errs"
)

// isSpecialInitial matches R5RS's special_initial class:
// ! $ % & * . : < = > ? ^ _ ~
func isSpecialInitial(r rune) bool {
	return strings.ContainsRune("!$%&*.:<=>?^_~", r)
}

func isInitial(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isSpecialInitial(r)
}

// isSpecialSubsequent matches R5RS's special_subsequent class: + - . @
func isSpecialSubsequent(r rune) bool {
	return strings.ContainsRune("+-.@", r)
}

func isSubsequent(r rune) bool {
	return isInitial(r) || (r >= '0' && r <= '9') || isSpecialSubsequent(r)
}

// isDelimiter matches R5RS's delimiter class: whitespace, ( ) " ;
func isDelimiter(r rune) bool {
	return r == scanner.EOF || r == '(' || r == ')' || r == '"' || r == ';' ||
		r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Lexer wraps a text/scanner.Scanner configured for Scheme's identifier
// alphabet and drives it rune-by-rune to produce Tokens.
type Lexer struct {
	s    scanner.Scanner
	name string
}

// New prepares a Lexer over src, named for position-reporting purposes
// (typically a filename or "<stdin>").
func New(src string, name string) *Lexer {
	l := &Lexer{name: name}
	l.s.Init(strings.NewReader(src))
	l.s.Filename = name
	l.s.Mode = 0 // we drive scanning manually; disable built-in tokenization
	l.s.Whitespace = 0
	l.s.IsIdentRune = func(r rune, i int) bool {
		if i == 0 {
			return isInitial(r)
		}
		return isSubsequent(r)
	}
	return l
}

// Tokens scans the full input and returns every token, followed by a
// single EOF token, or the first LexError encountered.
func (l *Lexer) Tokens() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipWhitespaceAndComments()
	pos := l.s.Pos()
	r := l.s.Peek()
	switch {
	case r == scanner.EOF:
		return Token{Kind: EOF, Line: pos.Line, Col: pos.Column}, nil
	case r == '(':
		l.s.Next()
		return Token{Kind: LParen, Text: "(", Line: pos.Line, Col: pos.Column}, nil
	case r == ')':
		l.s.Next()
		return Token{Kind: RParen, Text: ")", Line: pos.Line, Col: pos.Column}, nil
	case r == '\'':
		l.s.Next()
		return Token{Kind: Quote, Text: "'", Line: pos.Line, Col: pos.Column}, nil
	case r == '#':
		return l.scanHash(pos)
	default:
		return l.scanIdentOrPeculiar(pos)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		r := l.s.Peek()
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			l.s.Next()
		case r == ';':
			for r != '\n' && r != scanner.EOF {
				r = l.s.Next()
			}
		default:
			return
		}
	}
}

// scanHash handles #t, #f and radix-prefixed numbers (#b #o #d #x),
// matching BobLexer's BOOLEAN and NUMBER rules.
func (l *Lexer) scanHash(pos scanner.Position) (Token, error) {
	l.s.Next() // consume '#'
	r := l.s.Peek()
	switch r {
	case 't', 'f':
		l.s.Next()
		return Token{Kind: Boolean, Text: "#" + string(r), Line: pos.Line, Col: pos.Column}, nil
	case 'b', 'o', 'd', 'x':
		l.s.Next()
		var b strings.Builder
		b.WriteByte('#')
		b.WriteRune(r)
		for !isDelimiter(l.s.Peek()) {
			b.WriteRune(l.s.Next())
		}
		return Token{Kind: Number, Text: b.String(), Line: pos.Line, Col: pos.Column}, nil
	default:
		return Token{}, errs.NewLexError(pos.Offset, "unrecognized # syntax")
	}
}

// scanIdentOrPeculiar scans a run of subsequent runes as either a bare
// number, a symbol, or one of the peculiar identifiers +, -, ... that
// would otherwise look like the start of a number.
func (l *Lexer) scanIdentOrPeculiar(pos scanner.Position) (Token, error) {
	var b strings.Builder
	first := l.s.Peek()
	if first == '+' || first == '-' {
		b.WriteRune(l.s.Next())
		if isDelimiter(l.s.Peek()) {
			return Token{Kind: Ident, Text: b.String(), Line: pos.Line, Col: pos.Column}, nil
		}
	} else if !isInitial(first) && !(first >= '0' && first <= '9') {
		return Token{}, errs.NewLexError(pos.Offset, "unexpected character %q", first)
	}
	for !isDelimiter(l.s.Peek()) {
		b.WriteRune(l.s.Next())
	}
	text := b.String()
	if isNumericText(text) {
		return Token{Kind: Number, Text: text, Line: pos.Line, Col: pos.Column}, nil
	}
	return Token{Kind: Ident, Text: text, Line: pos.Line, Col: pos.Column}, nil
}

func isNumericText(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
