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

// Package parser turns a lexer.Token stream into expr.Value data, the
// way original_source/bob/bobparser.py's BobParser turns its own token
// stream into Pair-based s-expressions: recursive descent over
// _datum/_list/_abbreviation, ported to Go's explicit-error-return idiom
// in place of the Python original's exceptions.
package parser

import (
	"strconv"
	"strings"

	"github.com/schemevm/bob/errs"
	"github.com/schemevm/bob/expr"
	"github.com/schemevm/bob/lexer"
)

// Parser consumes a fixed token slice (as produced by lexer.Lexer.Tokens)
// and parses zero or more top-level data.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New prepares a Parser over toks, which must end with an EOF token.
func New(toks []lexer.Token) *Parser {
	return &Parser{toks: toks}
}

// ParseFile parses every datum up to EOF, matching BobParser._parse_file.
func (p *Parser) ParseFile() ([]expr.Value, error) {
	var data []expr.Value
	for p.peek().Kind != lexer.EOF {
		d, err := p.datum()
		if err != nil {
			return nil, err
		}
		data = append(data, d)
	}
	return data, nil
}

// ParseOne parses exactly one datum, for REPL-style one-expression reads.
func (p *Parser) ParseOne() (expr.Value, error) {
	return p.datum()
}

func (p *Parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errHere(format string, args ...interface{}) error {
	t := p.peek()
	return errs.NewParseError(t.Line, t.Col, format, args...)
}

// datum dispatches to _list, _abbreviation or _simple_datum per
// BobParser._datum.
func (p *Parser) datum() (expr.Value, error) {
	t := p.peek()
	switch t.Kind {
	case lexer.LParen:
		return p.list()
	case lexer.Quote:
		return p.abbreviation()
	case lexer.EOF:
		return nil, p.errHere("unexpected end of input")
	default:
		return p.simpleDatum()
	}
}

// list parses a parenthesized sequence, tracking a dotted tail the way
// BobParser._list tracks dot_idx: a dot is only legal immediately before
// the final element.
func (p *Parser) list() (expr.Value, error) {
	p.advance() // consume '('
	var items []expr.Value
	var tail expr.Value = expr.Null{}
	for {
		t := p.peek()
		if t.Kind == lexer.RParen {
			p.advance()
			break
		}
		if t.Kind == lexer.EOF {
			return nil, p.errHere("unterminated list")
		}
		if t.Kind == lexer.Ident && t.Text == "." {
			p.advance()
			d, err := p.datum()
			if err != nil {
				return nil, err
			}
			tail = d
			closing := p.peek()
			if closing.Kind != lexer.RParen {
				return nil, p.errHere("dot must be immediately before the last element")
			}
			p.advance()
			break
		}
		d, err := p.datum()
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = expr.NewPair(items[i], result)
	}
	return result, nil
}

// abbreviation turns 'x into (quote x), matching BobParser._abbreviation.
func (p *Parser) abbreviation() (expr.Value, error) {
	p.advance() // consume quote mark
	d, err := p.datum()
	if err != nil {
		return nil, err
	}
	return expr.NewList(expr.Symbol("quote"), d), nil
}

func (p *Parser) simpleDatum() (expr.Value, error) {
	t := p.advance()
	switch t.Kind {
	case lexer.Boolean:
		return expr.Boolean(t.Text == "#t"), nil
	case lexer.Number:
		n, err := parseNumber(t.Text)
		if err != nil {
			return nil, errs.NewParseError(t.Line, t.Col, "%v", err)
		}
		return expr.Number(n), nil
	case lexer.Ident:
		return expr.Symbol(t.Text), nil
	default:
		return nil, errs.NewParseError(t.Line, t.Col, "unexpected token %q", t.Text)
	}
}

func parseNumber(text string) (int64, error) {
	if strings.HasPrefix(text, "#") && len(text) > 1 {
		base := 10
		switch text[1] {
		case 'b':
			base = 2
		case 'o':
			base = 8
		case 'd':
			base = 10
		case 'x':
			base = 16
		}
		return strconv.ParseInt(text[2:], base, 64)
	}
	return strconv.ParseInt(text, 10, 64)
}
