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

package parser_test

import (
	"testing"

	"github.com/schemevm/bob/expr"
	"github.com/schemevm/bob/lexer"
	"github.com/schemevm/bob/parser"
)

func parseOne(t *testing.T, src string) expr.Value {
	t.Helper()
	toks, err := lexer.New(src, "test").Tokens()
	if err != nil {
		t.Fatalf("lex %q: %v", src, err)
	}
	d, err := parser.New(toks).ParseOne()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return d
}

func TestParseAtoms(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"42", "42"},
		{"-7", "-7"},
		{"#t", "#t"},
		{"#f", "#f"},
		{"foo", "foo"},
		{"+", "+"},
	}
	for _, c := range cases {
		if got := expr.Repr(parseOne(t, c.src)); got != c.want {
			t.Errorf("parse(%q) = %q, want %q", c.src, got, c.want)
		}
	}
}

func TestParseList(t *testing.T) {
	got := expr.Repr(parseOne(t, "(+ 1 2)"))
	if got != "(+ 1 2)" {
		t.Errorf("got %q, want (+ 1 2)", got)
	}
}

func TestParseNestedList(t *testing.T) {
	got := expr.Repr(parseOne(t, "(a (b c) d)"))
	if got != "(a (b c) d)" {
		t.Errorf("got %q, want (a (b c) d)", got)
	}
}

func TestParseDottedPair(t *testing.T) {
	got := expr.Repr(parseOne(t, "(1 . 2)"))
	if got != "(1 . 2)" {
		t.Errorf("got %q, want (1 . 2)", got)
	}
}

func TestParseQuoteAbbreviation(t *testing.T) {
	d := parseOne(t, "'x")
	if !expr.IsQuoted(d) {
		t.Fatalf("expected a quoted form, got %s", expr.Repr(d))
	}
	if expr.TextOfQuotation(d) != expr.Value(expr.Symbol("x")) {
		t.Fatalf("expected quoted x, got %s", expr.Repr(expr.TextOfQuotation(d)))
	}
}

func TestParseFileReadsMultipleForms(t *testing.T) {
	toks, err := lexer.New("(define x 1) (define y 2)", "test").Tokens()
	if err != nil {
		t.Fatal(err)
	}
	forms, err := parser.New(toks).ParseFile()
	if err != nil {
		t.Fatal(err)
	}
	if len(forms) != 2 {
		t.Fatalf("got %d forms, want 2", len(forms))
	}
}

func TestParseUnterminatedListIsError(t *testing.T) {
	toks, err := lexer.New("(+ 1 2", "test").Tokens()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parser.New(toks).ParseOne(); err == nil {
		t.Fatal("expected an error for an unterminated list")
	}
}

func TestParseDotNotBeforeLastElementIsError(t *testing.T) {
	toks, err := lexer.New("(1 . 2 3)", "test").Tokens()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parser.New(toks).ParseOne(); err == nil {
		t.Fatal("expected an error for a dot not immediately before the last element")
	}
}
