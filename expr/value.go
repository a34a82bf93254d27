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

// Package expr defines the value and expression model shared by the
// evaluator, compiler and virtual machine: self-evaluating atoms, symbols
// and pairs, plus the syntactic-form recognizers and accessors used to
// desugar derived forms (cond, let) into core forms (if, lambda application).
package expr

// Value is any datum the language can manipulate: it doubles as both
// expression (before evaluation) and result (after evaluation), matching
// the host Python's single Value hierarchy in bobscheme.
//
// Kind is exported (rather than an unexported marker) so that packages
// outside expr — vm, bytecode — can define their own Value variants
// (VM closures, code objects boxed for the constant pool) without an
// import cycle.
type Value interface {
	Kind() string
}

// Null is the empty list, (). It is a zero-size singleton; all empty
// lists compare equal via Go's native ==, matching eq?/eqv? on '().
type Null struct{}

func (Null) Kind() string { return "null" }

// Boolean is #t or #f.
type Boolean bool

func (Boolean) Kind() string { return "boolean" }

// Number is a Scheme integer. The spec's arithmetic subset is integer-only.
type Number int64

func (Number) Kind() string { return "number" }

// Symbol is an interned-by-value identifier. Two Symbols with the same
// text are == in Go, which is exactly eq?/eqv? on symbols.
type Symbol string

func (Symbol) Kind() string { return "symbol" }

// Pair is a mutable cons cell. It is always held through a *Pair pointer
// so that Go's pointer identity implements eqv?'s "same pair" rule: two
// *Pair values are == only when they are literally the same allocation.
// Pair is never passed by value for this reason.
type Pair struct {
	Car Value
	Cdr Value
}

func (*Pair) Kind() string { return "pair" }

// NewPair allocates a fresh cons cell. Every call returns a distinct
// identity, even when car/cdr are equal, matching (eqv? (cons 1 2) (cons 1 2)) => #f.
func NewPair(car, cdr Value) *Pair {
	return &Pair{Car: car, Cdr: cdr}
}

// Lambda is a compound procedure created by evaluating a lambda expression
// in the tree-walking evaluator. Env is declared as the Env interface (see
// below) so this package need not import environ, breaking what would
// otherwise be an expr<->environ import cycle.
type Lambda struct {
	Params []Symbol
	Body   []Value
	Env    Env
	Name   string // debug name, attached when bound by (define (name ...) ...)
}

func (*Lambda) Kind() string { return "lambda" }

// Builtin is a reference to a fixed, named primitive procedure. The
// implementation itself lives in package builtin; expr only needs a
// Value variant so builtins can flow through the same evaluator paths
// as compound procedures.
type Builtin struct {
	Name string
	Proc func(args []Value) (Value, error)
}

func (*Builtin) Kind() string { return "builtin" }

// Env is the lexical-environment contract the expr package needs from
// whatever concrete frame implementation (package environ) is in use.
// Declaring it here, rather than importing environ, lets Lambda hold an
// Env without expr depending on environ (environ depends on expr instead).
type Env interface {
	Lookup(name Symbol) (Value, error)
	Define(name Symbol, val Value)
	Set(name Symbol, val Value) error
}

// IsProcedure reports whether v can appear in operator position.
func IsProcedure(v Value) bool {
	switch v.(type) {
	case *Lambda, *Builtin:
		return true
	default:
		return false
	}
}

// IsTruthy implements Scheme's "everything except #f is true" rule.
func IsTruthy(v Value) bool {
	b, ok := v.(Boolean)
	return !ok || bool(b)
}
