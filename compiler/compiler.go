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

package compiler

import (
	"github.com/schemevm/bob/bytecode"
	"github.com/schemevm/bob/errs"
	"github.com/schemevm/bob/expr"
)

func newLabel(counter *int) *label {
	*counter++
	return &label{id: *counter}
}

func emit(p *proc, op bytecode.Opcode, kind argKind, raw int, constant expr.Value, varname string, lbl *label) {
	p.code = append(p.code, pendingInstr{op: op, kind: kind, raw: raw, constant: constant, varname: varname, lbl: lbl})
}

func emitConst(p *proc, v expr.Value) { emit(p, bytecode.OpConst, argConst, 0, v, "", nil) }
func emitLoadVar(p *proc, name string) {
	emit(p, bytecode.OpLoadVar, argVar, 0, nil, name, nil)
}
func emitStoreVar(p *proc, name string) {
	emit(p, bytecode.OpStoreVar, argVar, 0, nil, name, nil)
}
func emitDefVar(p *proc, name string) {
	emit(p, bytecode.OpDefVar, argVar, 0, nil, name, nil)
}
func emitPop(p *proc)    { emit(p, bytecode.OpPop, argNone, 0, nil, "", nil) }
func emitReturn(p *proc) { emit(p, bytecode.OpReturn, argNone, 0, nil, "", nil) }
func emitCall(p *proc, n int) {
	emit(p, bytecode.OpCall, argRaw, n, nil, "", nil)
}
func emitJump(p *proc, l *label)  { emit(p, bytecode.OpJump, argLabel, 0, nil, "", l) }
func emitFJump(p *proc, l *label) { emit(p, bytecode.OpFJump, argLabel, 0, nil, "", l) }
func emitLabel(p *proc, l *label) {
	p.code = append(p.code, pendingInstr{op: opLabelMark, lbl: l})
}
func emitFunction(p *proc, co *bytecode.CodeObject) {
	emitConst(p, bytecode.WrapCodeObject(co))
	// Rewrite the just-emitted CONST's opcode to FUNCTION; CONST and
	// FUNCTION share the same "index into constants" operand shape
	// (both argConst), matching original_source/bob/compiler.py's
	// _comp_lambda emitting Instruction('FUNCTION', code_obj).
	p.code[len(p.code)-1].op = bytecode.OpFunction
}

// compileExpr dispatches on the syntactic form of e, matching
// BobCompiler._comp's if/elif chain, appending instructions to p.code.
func compileExpr(e expr.Value, p *proc, labelCounter *int) error {
	switch {
	case expr.IsSelfEvaluating(e):
		emitConst(p, e)
		return nil

	case expr.IsVariable(e):
		emitLoadVar(p, string(e.(expr.Symbol)))
		return nil

	case expr.IsQuoted(e):
		emitConst(p, expr.TextOfQuotation(e))
		return nil

	case expr.IsAssignment(e):
		if err := compileExpr(expr.AssignmentValue(e), p, labelCounter); err != nil {
			return err
		}
		emitStoreVar(p, string(expr.AssignmentVariable(e)))
		return nil

	case expr.IsDefinition(e):
		return compileDefinition(e, p, labelCounter)

	case expr.IsIf(e):
		return compileIf(e, p, labelCounter)

	case expr.IsCond(e):
		rewritten, err := expr.CondToIf(e)
		if err != nil {
			return err
		}
		return compileExpr(rewritten, p, labelCounter)

	case expr.IsLet(e):
		rewritten, err := expr.LetToApplication(e)
		if err != nil {
			return err
		}
		return compileExpr(rewritten, p, labelCounter)

	case expr.IsLambda(e):
		return compileLambda(e, p, labelCounter, "")

	case expr.IsBegin(e):
		return compileSequence(expr.BeginActions(e), p, labelCounter)

	case expr.IsApplication(e):
		return compileApplication(e, p, labelCounter)

	default:
		return errs.NewCompileError("unknown expression in compile: %s", expr.Repr(e))
	}
}

// compileDefinition attaches the debug name to the compiled procedure
// when the right-hand side is a lambda, matching
// BobCompiler._comp_definition.
func compileDefinition(e expr.Value, p *proc, labelCounter *int) error {
	valExpr, err := expr.DefinitionValue(e)
	if err != nil {
		return err
	}
	name := string(expr.DefinitionVariable(e))
	if expr.IsLambda(valExpr) {
		if err := compileLambda(valExpr, p, labelCounter, name); err != nil {
			return err
		}
	} else if err := compileExpr(valExpr, p, labelCounter); err != nil {
		return err
	}
	emitDefVar(p, name)
	return nil
}

// compileIf emits: predicate, FJUMP label_else, consequent, JUMP
// label_after, label_else:, alternative, label_after:, matching
// BobCompiler._comp_if's two-label scheme.
func compileIf(e expr.Value, p *proc, labelCounter *int) error {
	if err := compileExpr(expr.IfPredicate(e), p, labelCounter); err != nil {
		return err
	}
	labelElse := newLabel(labelCounter)
	labelAfter := newLabel(labelCounter)
	emitFJump(p, labelElse)
	if err := compileExpr(expr.IfConsequent(e), p, labelCounter); err != nil {
		return err
	}
	emitJump(p, labelAfter)
	emitLabel(p, labelElse)
	if err := compileExpr(expr.IfAlternative(e), p, labelCounter); err != nil {
		return err
	}
	emitLabel(p, labelAfter)
	return nil
}

// compileSequence compiles a Scheme sequence of expressions, popping the
// value of every expression but the last, matching
// BobCompiler._comp_exprlist/_comp_begin. An empty sequence (a bare
// "(begin)", or a no-body lambda) compiles to a single Null constant
// rather than indexing into the empty list, matching
// BobCompiler._comp_exprlist's "if len(instrs) > 0 else instrs" guard.
func compileSequence(seq expr.Value, p *proc, labelCounter *int) error {
	if _, ok := seq.(expr.Null); ok {
		emitConst(p, expr.Null{})
		return nil
	}
	for {
		if err := compileExpr(expr.FirstExp(seq), p, labelCounter); err != nil {
			return err
		}
		if expr.IsLastExp(seq) {
			return nil
		}
		emitPop(p)
		seq = expr.RestExps(seq)
	}
}

// compileLambda compiles a lambda's body into its own CodeObject
// (recursively assembled) and emits a FUNCTION instruction referencing
// it, matching BobCompiler._comp_lambda.
func compileLambda(e expr.Value, p *proc, labelCounter *int, name string) error {
	params, ok := expr.ListToSlice(expr.LambdaParameters(e))
	if !ok {
		return errs.NewCompileError("malformed lambda parameter list")
	}
	args := make([]string, len(params))
	for i, prm := range params {
		sym, ok := prm.(expr.Symbol)
		if !ok {
			return errs.NewCompileError("lambda parameter is not a symbol")
		}
		args[i] = string(sym)
	}
	inner := &proc{name: name, args: args}
	if err := compileSequence(expr.LambdaBody(e), inner, labelCounter); err != nil {
		return err
	}
	emitReturn(inner)
	innerCO, err := assemble(inner)
	if err != nil {
		return err
	}
	emitFunction(p, innerCO)
	return nil
}

// compileApplication compiles arguments left-to-right, then the
// operator, then CALL n, matching BobCompiler._comp's application
// branch.
func compileApplication(e expr.Value, p *proc, labelCounter *int) error {
	ops := expr.Operands(e)
	n := 0
	for !expr.HasNoOperands(ops) {
		if err := compileExpr(expr.FirstOperand(ops), p, labelCounter); err != nil {
			return err
		}
		n++
		ops = expr.RestOperands(ops)
	}
	if err := compileExpr(expr.Operator(e), p, labelCounter); err != nil {
		return err
	}
	emitCall(p, n)
	return nil
}
