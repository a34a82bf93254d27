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

package expr

import "github.com/schemevm/bob/errs"

// Recognizers and accessors for the core and derived syntactic forms,
// ported from original_source/bob/expr.py's is_*/*_of family of
// functions. Each derived form (cond, let) desugars into core forms
// (if, lambda application) rather than being evaluated or compiled
// directly, matching the Python original's convert_cond_to_ifs and
// convert_let_to_application.

// IsSelfEvaluating reports whether v evaluates to itself: booleans,
// numbers and the empty list.
func IsSelfEvaluating(v Value) bool {
	switch v.(type) {
	case Boolean, Number, Null:
		return true
	default:
		return false
	}
}

// IsVariable reports whether v is a bare symbol reference.
func IsVariable(v Value) bool {
	_, ok := v.(Symbol)
	return ok
}

func isTaggedList(v Value, tag Symbol) bool {
	p, ok := v.(*Pair)
	if !ok {
		return false
	}
	s, ok := p.Car.(Symbol)
	return ok && s == tag
}

// --- quote ---

func IsQuoted(v Value) bool { return isTaggedList(v, "quote") }

func TextOfQuotation(v Value) Value {
	return v.(*Pair).Cdr.(*Pair).Car
}

// --- assignment: (set! var val) ---

func IsAssignment(v Value) bool { return isTaggedList(v, "set!") }

func AssignmentVariable(v Value) Symbol {
	return v.(*Pair).Cdr.(*Pair).Car.(Symbol)
}

func AssignmentValue(v Value) Value {
	return v.(*Pair).Cdr.(*Pair).Cdr.(*Pair).Car
}

// --- definition: (define var val) or (define (f params...) body...) ---

func IsDefinition(v Value) bool { return isTaggedList(v, "define") }

func DefinitionVariable(v Value) Symbol {
	target := v.(*Pair).Cdr.(*Pair).Car
	if sym, ok := target.(Symbol); ok {
		return sym
	}
	// (define (f params...) body...): target is (f params...)
	return target.(*Pair).Car.(Symbol)
}

// DefinitionValue returns the value expression for a definition, sugaring
// (define (f p...) body...) into (lambda (p...) body...) exactly as
// original_source/bob/expr.py's definition_value does.
func DefinitionValue(v Value) (Value, error) {
	rest := v.(*Pair).Cdr.(*Pair)
	target := rest.Car
	if _, ok := target.(Symbol); ok {
		bodyPair, ok := rest.Cdr.(*Pair)
		if !ok {
			return nil, errs.NewCompileError("malformed define: missing value")
		}
		return bodyPair.Car, nil
	}
	tp := target.(*Pair)
	params := tp.Cdr
	body := rest.Cdr
	return MakeLambda(params, body), nil
}

// --- lambda: (lambda (params...) body...) ---

func IsLambda(v Value) bool { return isTaggedList(v, "lambda") }

func LambdaParameters(v Value) Value { return v.(*Pair).Cdr.(*Pair).Car }

func LambdaBody(v Value) Value { return v.(*Pair).Cdr.(*Pair).Cdr }

func MakeLambda(params, body Value) Value {
	return NewPair(Symbol("lambda"), NewPair(params, body))
}

// --- if: (if pred conseq [alt]) ---

func IsIf(v Value) bool { return isTaggedList(v, "if") }

func IfPredicate(v Value) Value { return v.(*Pair).Cdr.(*Pair).Car }

func IfConsequent(v Value) Value { return v.(*Pair).Cdr.(*Pair).Cdr.(*Pair).Car }

// IfAlternative returns the else-branch, or Boolean(false) for a
// one-armed if, matching the Python original's default.
func IfAlternative(v Value) Value {
	rest := v.(*Pair).Cdr.(*Pair).Cdr.(*Pair).Cdr
	if p, ok := rest.(*Pair); ok {
		return p.Car
	}
	return Boolean(false)
}

func MakeIf(pred, conseq, alt Value) Value {
	return NewList(Symbol("if"), pred, conseq, alt)
}

// --- begin: (begin expr...) ---

func IsBegin(v Value) bool { return isTaggedList(v, "begin") }

func BeginActions(v Value) Value { return v.(*Pair).Cdr }

// IsLastExp reports whether seq has at most one expression left. An
// empty sequence (Null, as in a bare "(begin)") is trivially last:
// there is nothing left to evaluate, matching
// original_source/bob/compiler.py's _comp_exprlist guard against
// indexing into an empty expression list.
func IsLastExp(seq Value) bool {
	p, ok := seq.(*Pair)
	if !ok {
		return true
	}
	_, isNull := p.Cdr.(Null)
	return isNull
}

// FirstExp returns Null{} for an empty sequence rather than panicking.
func FirstExp(seq Value) Value {
	p, ok := seq.(*Pair)
	if !ok {
		return Null{}
	}
	return p.Car
}

// RestExps returns Null{} for an empty sequence rather than panicking.
func RestExps(seq Value) Value {
	p, ok := seq.(*Pair)
	if !ok {
		return Null{}
	}
	return p.Cdr
}

// SequenceToExp collapses a sequence of expressions into a single
// expression: an empty sequence is returned as is (Null), a sequence of
// exactly one is returned as that lone expression, and a longer one as a
// (begin ...) wrapping all of them.
func SequenceToExp(seq Value) Value {
	if _, ok := seq.(Null); ok {
		return seq
	}
	if IsLastExp(seq) {
		return FirstExp(seq)
	}
	return NewPair(Symbol("begin"), seq)
}

// --- application: (operator operand...) ---

func IsApplication(v Value) bool {
	_, ok := v.(*Pair)
	return ok
}

func Operator(v Value) Value { return v.(*Pair).Car }

func Operands(v Value) Value { return v.(*Pair).Cdr }

func HasNoOperands(ops Value) bool {
	_, ok := ops.(Null)
	return ok
}

func FirstOperand(ops Value) Value { return ops.(*Pair).Car }

func RestOperands(ops Value) Value { return ops.(*Pair).Cdr }

// --- cond: (cond clause...) ---

func IsCond(v Value) bool { return isTaggedList(v, "cond") }

func CondClauses(v Value) Value { return v.(*Pair).Cdr }

func CondPredicate(clause Value) Value { return clause.(*Pair).Car }

func CondActions(clause Value) Value { return clause.(*Pair).Cdr }

func IsCondElseClause(clause Value) bool {
	p, ok := clause.(*Pair)
	if !ok {
		return false
	}
	s, ok := p.Car.(Symbol)
	return ok && s == "else"
}

// CondToIf desugars a cond form into nested ifs, matching
// original_source/bob/expr.py's convert_cond_to_ifs / expand_cond_clauses.
// An else clause that is not last is a syntax error.
func CondToIf(v Value) (Value, error) {
	return expandCondClauses(CondClauses(v))
}

func expandCondClauses(clauses Value) (Value, error) {
	if _, ok := clauses.(Null); ok {
		return Boolean(false), nil
	}
	rest, ok := ListToSlice(clauses)
	if !ok || len(rest) == 0 {
		return Boolean(false), nil
	}
	first := rest[0]
	restClauses := clauses.(*Pair).Cdr
	if IsCondElseClause(first) {
		if _, ok := restClauses.(Null); !ok {
			return nil, errs.NewCompileError("cond: else clause must be last")
		}
		return SequenceToExp(CondActions(first)), nil
	}
	restIf, err := expandCondClauses(restClauses)
	if err != nil {
		return nil, err
	}
	return MakeIf(CondPredicate(first), SequenceToExp(CondActions(first)), restIf), nil
}

// --- let: (let ((name val)...) body...) ---

func IsLet(v Value) bool { return isTaggedList(v, "let") }

func LetBindings(v Value) Value { return v.(*Pair).Cdr.(*Pair).Car }

func LetBody(v Value) Value { return v.(*Pair).Cdr.(*Pair).Cdr }

// LetToApplication desugars (let ((n v)...) body...) into
// ((lambda (n...) body...) v...), matching
// original_source/bob/expr.py's convert_let_to_application.
func LetToApplication(v Value) (Value, error) {
	bindings, ok := ListToSlice(LetBindings(v))
	if !ok {
		return nil, errs.NewCompileError("let: malformed bindings")
	}
	names := make([]Value, len(bindings))
	values := make([]Value, len(bindings))
	for i, b := range bindings {
		bp, ok := b.(*Pair)
		if !ok {
			return nil, errs.NewCompileError("let: malformed binding")
		}
		names[i] = bp.Car
		values[i] = bp.Cdr.(*Pair).Car
	}
	lambda := MakeLambda(NewList(names...), LetBody(v))
	return NewPair(lambda, NewList(values...)), nil
}
