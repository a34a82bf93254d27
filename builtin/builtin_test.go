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

package builtin_test

import (
	"testing"

	"github.com/schemevm/bob/builtin"
	"github.com/schemevm/bob/expr"
)

func call(t *testing.T, name string, args ...expr.Value) expr.Value {
	t.Helper()
	b, ok := builtin.Table()[name]
	if !ok {
		t.Fatalf("no builtin named %q", name)
	}
	v, err := b.Proc(args)
	if err != nil {
		t.Fatalf("%s%v: %v", name, args, err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	if got := call(t, "+", expr.Number(1), expr.Number(2), expr.Number(3)); got != expr.Value(expr.Number(6)) {
		t.Errorf("(+ 1 2 3) = %v, want 6", got)
	}
	if got := call(t, "-", expr.Number(10), expr.Number(3)); got != expr.Value(expr.Number(7)) {
		t.Errorf("(- 10 3) = %v, want 7", got)
	}
	if got := call(t, "quotient", expr.Number(7), expr.Number(2)); got != expr.Value(expr.Number(3)) {
		t.Errorf("(quotient 7 2) = %v, want 3", got)
	}
	if got := call(t, "modulo", expr.Number(7), expr.Number(2)); got != expr.Value(expr.Number(1)) {
		t.Errorf("(modulo 7 2) = %v, want 1", got)
	}
	// quotient/modulo use floor semantics (matching Python's // and %),
	// not Go's truncate-toward-zero / and %.
	if got := call(t, "quotient", expr.Number(-7), expr.Number(2)); got != expr.Value(expr.Number(-4)) {
		t.Errorf("(quotient -7 2) = %v, want -4", got)
	}
	if got := call(t, "modulo", expr.Number(-7), expr.Number(2)); got != expr.Value(expr.Number(1)) {
		t.Errorf("(modulo -7 2) = %v, want 1", got)
	}
	if got := call(t, "quotient", expr.Number(7), expr.Number(-2)); got != expr.Value(expr.Number(-4)) {
		t.Errorf("(quotient 7 -2) = %v, want -4", got)
	}
	if got := call(t, "modulo", expr.Number(7), expr.Number(-2)); got != expr.Value(expr.Number(-1)) {
		t.Errorf("(modulo 7 -2) = %v, want -1", got)
	}
}

func TestComparisons(t *testing.T) {
	if got := call(t, "<", expr.Number(1), expr.Number(2), expr.Number(3)); got != expr.Value(expr.Boolean(true)) {
		t.Errorf("(< 1 2 3) = %v, want #t", got)
	}
	if got := call(t, "<", expr.Number(1), expr.Number(3), expr.Number(2)); got != expr.Value(expr.Boolean(false)) {
		t.Errorf("(< 1 3 2) = %v, want #f", got)
	}
}

func TestEqvPairsArePointerIdentity(t *testing.T) {
	a := expr.NewPair(expr.Number(1), expr.Null{})
	b := expr.NewPair(expr.Number(1), expr.Null{})
	if got := call(t, "eqv?", a, a); got != expr.Value(expr.Boolean(true)) {
		t.Errorf("(eqv? a a) = %v, want #t", got)
	}
	if got := call(t, "eqv?", a, b); got != expr.Value(expr.Boolean(false)) {
		t.Errorf("(eqv? a b) = %v, want #f", got)
	}
}

func TestConsCarCdr(t *testing.T) {
	p := call(t, "cons", expr.Number(1), expr.Number(2))
	if got := call(t, "car", p); got != expr.Value(expr.Number(1)) {
		t.Errorf("car = %v, want 1", got)
	}
	if got := call(t, "cdr", p); got != expr.Value(expr.Number(2)) {
		t.Errorf("cdr = %v, want 2", got)
	}
}

func TestCarOfNonPairIsTypeError(t *testing.T) {
	b := builtin.Table()["car"]
	if _, err := b.Proc([]expr.Value{expr.Number(5)}); err == nil {
		t.Fatal("expected a type error for (car 5)")
	}
}

func TestAndOrAreEager(t *testing.T) {
	// and/or are deliberately eager: all arguments are pre-evaluated by
	// the caller before the builtin ever runs, so the builtin itself
	// just inspects a fully-evaluated argument list.
	if got := call(t, "and", expr.Boolean(true), expr.Number(3)); got != expr.Value(expr.Number(3)) {
		t.Errorf("(and #t 3) = %v, want 3", got)
	}
	if got := call(t, "and", expr.Boolean(false), expr.Number(3)); got != expr.Value(expr.Boolean(false)) {
		t.Errorf("(and #f 3) = %v, want #f", got)
	}
	if got := call(t, "or", expr.Boolean(false), expr.Number(9)); got != expr.Value(expr.Number(9)) {
		t.Errorf("(or #f 9) = %v, want 9", got)
	}
}

func TestSetCarMutatesInPlace(t *testing.T) {
	p := expr.NewPair(expr.Number(1), expr.Number(2))
	call(t, "set-car!", p, expr.Number(99))
	if p.Car != expr.Value(expr.Number(99)) {
		t.Errorf("after set-car!, Car = %v, want 99", p.Car)
	}
}

func TestTypePredicates(t *testing.T) {
	if got := call(t, "null?", expr.Null{}); got != expr.Value(expr.Boolean(true)) {
		t.Errorf("(null? '()) = %v, want #t", got)
	}
	if got := call(t, "pair?", expr.Number(1)); got != expr.Value(expr.Boolean(false)) {
		t.Errorf("(pair? 1) = %v, want #f", got)
	}
}
