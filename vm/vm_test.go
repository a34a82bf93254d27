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

package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/schemevm/bob/bytecode"
	"github.com/schemevm/bob/compiler"
	"github.com/schemevm/bob/expr"
	"github.com/schemevm/bob/lexer"
	"github.com/schemevm/bob/parser"
	"github.com/schemevm/bob/vm"
)

// runProgram compiles every top-level form in src, feeding each
// resulting code object through the same *vm.Instance so that
// top-level defines accumulate, then returns the value stack's final
// top-of-stack (the last form's result) as its external representation.
func runProgram(t *testing.T, src string) (string, *bytes.Buffer) {
	t.Helper()
	toks, err := lexer.New(src, "test").Tokens()
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	forms, err := parser.New(toks).ParseFile()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	inst, err := vm.New(vm.Output(&out))
	if err != nil {
		t.Fatalf("new vm: %v", err)
	}
	var last expr.Value = expr.Null{}
	for _, form := range forms {
		co, err := compiler.Compile(form, "test")
		if err != nil {
			t.Fatalf("compile %s: %v", expr.Repr(form), err)
		}
		last, err = inst.Eval(co)
		if err != nil {
			t.Fatalf("run %s: %v", expr.Repr(form), err)
		}
	}
	return expr.Repr(last), &out
}

func TestRunArithmetic(t *testing.T) {
	got, _ := runProgram(t, "(+ 1 (* 2 3))")
	if got != "7" {
		t.Fatalf("got %s, want 7", got)
	}
}

func TestRunIf(t *testing.T) {
	got, _ := runProgram(t, "(if (> 3 2) 'yes 'no)")
	if got != "yes" {
		t.Fatalf("got %s, want yes", got)
	}
}

func TestRunFactorial(t *testing.T) {
	src := `
		(define (fact n)
		  (if (= n 0) 1 (* n (fact (- n 1)))))
		(fact 10)
	`
	got, _ := runProgram(t, src)
	if got != "3628800" {
		t.Fatalf("got %s, want 3628800", got)
	}
}

func TestRunClosureCapture(t *testing.T) {
	src := `
		(define (make-adder n) (lambda (x) (+ x n)))
		(define add5 (make-adder 5))
		(add5 10)
	`
	got, _ := runProgram(t, src)
	if got != "15" {
		t.Fatalf("got %s, want 15", got)
	}
}

func TestRunSetBang(t *testing.T) {
	src := `
		(define counter 0)
		(set! counter (+ counter 1))
		(set! counter (+ counter 1))
		counter
	`
	got, _ := runProgram(t, src)
	if got != "2" {
		t.Fatalf("got %s, want 2", got)
	}
}

func TestRunCondElse(t *testing.T) {
	src := "(cond ((= 1 2) 'no) (else 'yes))"
	got, _ := runProgram(t, src)
	if got != "yes" {
		t.Fatalf("got %s, want yes", got)
	}
}

func TestRunLetBindings(t *testing.T) {
	src := "(let ((x 2) (y 3)) (+ x y))"
	got, _ := runProgram(t, src)
	if got != "5" {
		t.Fatalf("got %s, want 5", got)
	}
}

func TestRunListOps(t *testing.T) {
	got, _ := runProgram(t, "(car (cdr (list 1 2 3)))")
	if got != "2" {
		t.Fatalf("got %s, want 2", got)
	}
}

func TestRunPairIdentity(t *testing.T) {
	// Two separately-quoted equal-looking pairs are not eq? — each
	// quote produces a fresh, distinct pair, matching the compiler's
	// no-fold-pairs constant interning.
	got, _ := runProgram(t, "(eq? '(1 2) '(1 2))")
	if got != "#f" {
		t.Fatalf("got %s, want #f", got)
	}
}

func TestRunDeepTailRecursionDoesNotOverflow(t *testing.T) {
	src := `
		(define (loop n acc)
		  (if (= n 0) acc (loop (- n 1) (+ acc 1))))
		(loop 100000 0)
	`
	got, _ := runProgram(t, src)
	if got != "100000" {
		t.Fatalf("got %s, want 100000", got)
	}
}

func TestWriteBuiltinWritesToInstanceOutput(t *testing.T) {
	_, out := runProgram(t, "(write 'hello)")
	if !strings.Contains(out.String(), "hello") {
		t.Fatalf("expected write output to contain hello, got %q", out.String())
	}
}

func TestDebugVMDumpsStacks(t *testing.T) {
	_, out := runProgram(t, "(debug-vm)")
	if !strings.Contains(out.String(), "Value stack") {
		t.Fatalf("expected debug-vm output to mention Value stack, got %q", out.String())
	}
}

func TestDisassembleListsOpcodes(t *testing.T) {
	toks, err := lexer.New("(+ 1 2)", "test").Tokens()
	if err != nil {
		t.Fatal(err)
	}
	e, err := parser.New(toks).ParseOne()
	if err != nil {
		t.Fatal(err)
	}
	co, err := compiler.Compile(e, "test")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	co.Disassemble(&out)
	if !strings.Contains(out.String(), bytecode.OpCall.String()) {
		t.Fatalf("expected disassembly to mention CALL, got %q", out.String())
	}
}
