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

package compiler_test

import (
	"testing"

	"github.com/schemevm/bob/bytecode"
	"github.com/schemevm/bob/compiler"
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
	e, err := parser.New(toks).ParseOne()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return e
}

func compileOne(t *testing.T, src string) *bytecode.CodeObject {
	t.Helper()
	co, err := compiler.Compile(parseOne(t, src), "test")
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return co
}

func lastOp(co *bytecode.CodeObject) bytecode.Opcode {
	return co.Code[len(co.Code)-1].Op
}

func TestCompileConst(t *testing.T) {
	co := compileOne(t, "42")
	if len(co.Code) != 2 {
		t.Fatalf("expected CONST, RETURN, got %d instructions", len(co.Code))
	}
	if co.Code[0].Op != bytecode.OpConst {
		t.Fatalf("expected CONST first, got %s", co.Code[0].Op)
	}
	if co.Constants[co.Code[0].Arg] != expr.Number(42) {
		t.Fatalf("expected constant 42, got %v", co.Constants[co.Code[0].Arg])
	}
}

func TestCompileIfEmitsTwoJumps(t *testing.T) {
	co := compileOne(t, "(if #t 1 2)")
	var sawFJump, sawJump bool
	for _, instr := range co.Code {
		switch instr.Op {
		case bytecode.OpFJump:
			sawFJump = true
		case bytecode.OpJump:
			sawJump = true
		}
	}
	if !sawFJump || !sawJump {
		t.Fatalf("expected both FJUMP and JUMP in compiled if, got %+v", co.Code)
	}
}

func TestCompileLambdaEmitsFunction(t *testing.T) {
	co := compileOne(t, "(lambda (x) x)")
	if co.Code[0].Op != bytecode.OpFunction {
		t.Fatalf("expected FUNCTION, got %s", co.Code[0].Op)
	}
	inner, ok := bytecode.UnwrapCodeObject(co.Constants[co.Code[0].Arg])
	if !ok {
		t.Fatalf("FUNCTION constant is not a code object")
	}
	if len(inner.Args) != 1 || inner.Args[0] != "x" {
		t.Fatalf("unexpected inner args: %+v", inner.Args)
	}
}

func TestCompileApplicationOrdersOperandsBeforeOperator(t *testing.T) {
	co := compileOne(t, "(f 1 2)")
	if co.Code[0].Op != bytecode.OpConst || co.Code[1].Op != bytecode.OpConst {
		t.Fatalf("expected operands compiled first, got %+v", co.Code[:2])
	}
	if co.Code[2].Op != bytecode.OpLoadVar {
		t.Fatalf("expected operator compiled after operands, got %s", co.Code[2].Op)
	}
	call := co.Code[3]
	if call.Op != bytecode.OpCall || call.Arg != 2 {
		t.Fatalf("expected CALL 2, got %s %d", call.Op, call.Arg)
	}
}

func TestCompileDefinitionNamesLambda(t *testing.T) {
	co := compileOne(t, "(define (f x) x)")
	if co.Code[0].Op != bytecode.OpFunction {
		t.Fatalf("expected FUNCTION, got %s", co.Code[0].Op)
	}
	inner, _ := bytecode.UnwrapCodeObject(co.Constants[co.Code[0].Arg])
	if inner.Name != "f" {
		t.Fatalf("expected inner code object named f, got %q", inner.Name)
	}
}

func TestCompileCondDesugarsToIf(t *testing.T) {
	co := compileOne(t, "(cond (#t 1) (else 2))")
	var sawFJump bool
	for _, instr := range co.Code {
		if instr.Op == bytecode.OpFJump {
			sawFJump = true
		}
	}
	if !sawFJump {
		t.Fatalf("expected cond to desugar into an if with FJUMP, got %+v", co.Code)
	}
}

func TestCompilePairConstantsAreNotFolded(t *testing.T) {
	co := compileOne(t, "(begin '(1 2) '(1 2))")
	var pairConstants int
	for _, c := range co.Constants {
		if _, ok := c.(*expr.Pair); ok {
			pairConstants++
		}
	}
	if pairConstants != 2 {
		t.Fatalf("expected two distinct pair constants (eqv? distinctness), got %d", pairConstants)
	}
}

func TestCompileEndsInReturn(t *testing.T) {
	co := compileOne(t, "(+ 1 2)")
	if lastOp(co) != bytecode.OpReturn {
		t.Fatalf("expected code object to end in RETURN, got %s", lastOp(co))
	}
}
