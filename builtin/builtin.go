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

// Package builtin supplies the fixed table of primitive procedures
// installed into the global environment, ported line-for-line in spirit
// from original_source/bob/builtins.py's builtins_map. Each entry is an
// expr.Builtin, whose Proc closes over nothing but the argument slice, the
// same calling convention the Python original documents: "arguments are
// passed in as a list... the procedure should always return a single
// value".
package builtin

import (
	"github.com/schemevm/bob/errs"
	"github.com/schemevm/bob/expr"
)

// Table returns a fresh map of name to *expr.Builtin covering every
// procedure in builtins_map, suitable for installing into a new global
// frame via Install.
func Table() map[string]*expr.Builtin {
	t := map[string]*expr.Builtin{}
	add := func(name string, fn func([]expr.Value) (expr.Value, error)) {
		t[name] = &expr.Builtin{Name: name, Proc: fn}
	}

	add("eqv?", eqv)
	add("eq?", eqv)
	add("pair?", typePredicate(func(v expr.Value) bool { _, ok := v.(*expr.Pair); return ok }))
	add("zero?", zeroP)
	add("boolean?", typePredicate(func(v expr.Value) bool { _, ok := v.(expr.Boolean); return ok }))
	add("symbol?", typePredicate(func(v expr.Value) bool { _, ok := v.(expr.Symbol); return ok }))
	add("number?", typePredicate(func(v expr.Value) bool { _, ok := v.(expr.Number); return ok }))
	add("null?", typePredicate(func(v expr.Value) bool { _, ok := v.(expr.Null); return ok }))
	add("cons", cons)
	add("list", list)
	add("car", car)
	add("cdr", cdr)
	add("cadr", cadr)
	add("caddr", caddr)
	add("set-car!", setCar)
	add("set-cdr!", setCdr)
	add("not", not)
	add("and", and)
	add("or", or)
	add("+", arith("+", func(a, b int64) int64 { return a + b }))
	add("-", arith("-", func(a, b int64) int64 { return a - b }))
	add("*", arith("*", func(a, b int64) int64 { return a * b }))
	add("quotient", arith("quotient", floorDiv))
	add("modulo", arith("modulo", floorMod))
	add("=", compare("=", func(a, b int64) bool { return a == b }))
	add(">=", compare(">=", func(a, b int64) bool { return a >= b }))
	add("<=", compare("<=", func(a, b int64) bool { return a <= b }))
	add(">", compare(">", func(a, b int64) bool { return a > b }))
	add("<", compare("<", func(a, b int64) bool { return a < b }))

	return t
}

// Install copies Table() into env, the way BobVM.__init__ seeds its
// global environment from builtins_map.
func Install(env expr.Env) {
	for name, b := range Table() {
		env.Define(expr.Symbol(name), b)
	}
}

func need(args []expr.Value, n int, name string) error {
	if len(args) != n {
		return errs.NewArityError(name, len(args), n)
	}
	return nil
}

// eqv implements eqv?/eq?: for pairs it is pointer identity (Go's ==
// over the *expr.Pair interface value achieves this directly), for every
// other kind it is structural equality, matching builtin_eqv's
// "id(left) == id(right) for Pairs, else left == right".
func eqv(args []expr.Value) (expr.Value, error) {
	if err := need(args, 2, "eqv?"); err != nil {
		return nil, err
	}
	return expr.Boolean(args[0] == args[1]), nil
}

func typePredicate(pred func(expr.Value) bool) func([]expr.Value) (expr.Value, error) {
	return func(args []expr.Value) (expr.Value, error) {
		if err := need(args, 1, "type-predicate"); err != nil {
			return nil, err
		}
		return expr.Boolean(pred(args[0])), nil
	}
}

func zeroP(args []expr.Value) (expr.Value, error) {
	if err := need(args, 1, "zero?"); err != nil {
		return nil, err
	}
	n, ok := args[0].(expr.Number)
	return expr.Boolean(ok && n == 0), nil
}

func cons(args []expr.Value) (expr.Value, error) {
	if err := need(args, 2, "cons"); err != nil {
		return nil, err
	}
	return expr.NewPair(args[0], args[1]), nil
}

func list(args []expr.Value) (expr.Value, error) {
	return expr.NewList(args...), nil
}

func asPair(v expr.Value, op string) (*expr.Pair, error) {
	p, ok := v.(*expr.Pair)
	if !ok {
		return nil, errs.NewTypeError(op, "pair", v.Kind())
	}
	return p, nil
}

func car(args []expr.Value) (expr.Value, error) {
	if err := need(args, 1, "car"); err != nil {
		return nil, err
	}
	p, err := asPair(args[0], "car")
	if err != nil {
		return nil, err
	}
	return p.Car, nil
}

func cdr(args []expr.Value) (expr.Value, error) {
	if err := need(args, 1, "cdr"); err != nil {
		return nil, err
	}
	p, err := asPair(args[0], "cdr")
	if err != nil {
		return nil, err
	}
	return p.Cdr, nil
}

func cadr(args []expr.Value) (expr.Value, error) {
	if err := need(args, 1, "cadr"); err != nil {
		return nil, err
	}
	p, err := asPair(args[0], "cadr")
	if err != nil {
		return nil, err
	}
	p2, err := asPair(p.Cdr, "cadr")
	if err != nil {
		return nil, err
	}
	return p2.Car, nil
}

func caddr(args []expr.Value) (expr.Value, error) {
	if err := need(args, 1, "caddr"); err != nil {
		return nil, err
	}
	p, err := asPair(args[0], "caddr")
	if err != nil {
		return nil, err
	}
	p2, err := asPair(p.Cdr, "caddr")
	if err != nil {
		return nil, err
	}
	p3, err := asPair(p2.Cdr, "caddr")
	if err != nil {
		return nil, err
	}
	return p3.Car, nil
}

func setCar(args []expr.Value) (expr.Value, error) {
	if err := need(args, 2, "set-car!"); err != nil {
		return nil, err
	}
	p, err := asPair(args[0], "set-car!")
	if err != nil {
		return nil, err
	}
	p.Car = args[1]
	return expr.Null{}, nil
}

func setCdr(args []expr.Value) (expr.Value, error) {
	if err := need(args, 2, "set-cdr!"); err != nil {
		return nil, err
	}
	p, err := asPair(args[0], "set-cdr!")
	if err != nil {
		return nil, err
	}
	p.Cdr = args[1]
	return expr.Null{}, nil
}

func not(args []expr.Value) (expr.Value, error) {
	if err := need(args, 1, "not"); err != nil {
		return nil, err
	}
	b, ok := args[0].(expr.Boolean)
	return expr.Boolean(ok && !bool(b)), nil
}

// and/or are deliberately eager (all arguments already evaluated before
// the builtin runs), matching builtin_and/builtin_or in
// original_source/bob/builtins.py. This is a documented deviation from
// R5RS section 4.2's short-circuiting and/or special forms — see
// DESIGN.md's Open Question decisions.
func and(args []expr.Value) (expr.Value, error) {
	for _, v := range args {
		if b, ok := v.(expr.Boolean); ok && !bool(b) {
			return v, nil
		}
	}
	if len(args) > 0 {
		return args[len(args)-1], nil
	}
	return expr.Boolean(true), nil
}

func or(args []expr.Value) (expr.Value, error) {
	for _, v := range args {
		if b, ok := v.(expr.Boolean); ok && bool(b) {
			return v, nil
		}
	}
	if len(args) > 0 {
		return args[len(args)-1], nil
	}
	return expr.Boolean(false), nil
}

// floorDiv and floorMod implement Python's floor-division semantics for
// quotient/modulo, matching original_source/bob/builtins.py's
// 'quotient': make_arith_operator_builtin(operator.floordiv) and
// 'modulo': make_arith_operator_builtin(operator.mod). Go's native / and
// % truncate toward zero, which disagrees with floor semantics whenever
// the operands have different signs and don't divide evenly (e.g.
// (quotient -7 2) is -4, not -3; (modulo -7 2) is 1, not -1).
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func arith(name string, op func(a, b int64) int64) func([]expr.Value) (expr.Value, error) {
	return func(args []expr.Value) (expr.Value, error) {
		if len(args) == 0 {
			return nil, errs.NewArityError(name, 0, 1)
		}
		first, ok := args[0].(expr.Number)
		if !ok {
			return nil, errs.NewTypeError(name, "number", args[0].Kind())
		}
		acc := int64(first)
		for _, v := range args[1:] {
			n, ok := v.(expr.Number)
			if !ok {
				return nil, errs.NewTypeError(name, "number", v.Kind())
			}
			acc = op(acc, int64(n))
		}
		return expr.Number(acc), nil
	}
}

func compare(name string, op func(a, b int64) bool) func([]expr.Value) (expr.Value, error) {
	return func(args []expr.Value) (expr.Value, error) {
		if len(args) == 0 {
			return nil, errs.NewArityError(name, 0, 1)
		}
		a, ok := args[0].(expr.Number)
		if !ok {
			return nil, errs.NewTypeError(name, "number", args[0].Kind())
		}
		for _, v := range args[1:] {
			b, ok := v.(expr.Number)
			if !ok {
				return nil, errs.NewTypeError(name, "number", v.Kind())
			}
			if !op(int64(a), int64(b)) {
				return expr.Boolean(false), nil
			}
			a = b
		}
		return expr.Boolean(true), nil
	}
}
