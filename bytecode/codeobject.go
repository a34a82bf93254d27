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

package bytecode

import (
	"fmt"
	"io"
	"strings"

	"github.com/schemevm/bob/expr"
)

// Instruction is one bytecode op plus its resolved operand, matching
// original_source/bob/bytecode.py's Instruction(opcode, arg). Arg is -1
// when the opcode takes none (POP, RETURN).
type Instruction struct {
	Op  Opcode
	Arg int
}

// CodeObject is the compiled form of one lambda body (or the top-level
// program): a name, its formal parameter names, the instruction stream,
// the constant pool (Values and nested CodeObjects, boxed via
// WrapCodeObject) and the variable-name pool referenced by LOADVAR /
// STOREVAR / DEFVAR instructions, matching spec.md's
// {name, formals[], constants[], varnames[], code[]} record and
// original_source/bob/bytecode.py's CodeObject.
type CodeObject struct {
	Name      string
	Args      []string
	Code      []Instruction
	Constants []expr.Value
	Varnames  []string
}

// New creates an empty CodeObject named name taking the given formals.
func New(name string, args []string) *CodeObject {
	return &CodeObject{Name: name, Args: args}
}

// Disassemble writes a human-readable listing of co to w, one instruction
// per line, resolving CONST/LOADVAR/STOREVAR/DEFVAR operands to their
// underlying value/name and recursing into nested FUNCTION code objects
// with indentation — grounded on original_source/bob/bytecode.py's
// CodeObject.__repr__ and db47h-ngaro/vm/image.go's Disassemble.
func (co *CodeObject) Disassemble(w io.Writer) {
	co.disassemble(w, 0)
}

func (co *CodeObject) disassemble(w io.Writer, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(w, "%sCodeObject %s/%d\n", pad, co.Name, len(co.Args))
	for i, instr := range co.Code {
		fmt.Fprintf(w, "%s  %4d  %-8s", pad, i, instr.Op)
		switch instr.Op {
		case OpConst:
			fmt.Fprintf(w, " %d (%s)\n", instr.Arg, expr.Repr(co.Constants[instr.Arg]))
		case OpLoadVar, OpStoreVar, OpDefVar:
			fmt.Fprintf(w, " %d (%s)\n", instr.Arg, co.Varnames[instr.Arg])
		case OpFunction:
			fmt.Fprintf(w, " %d\n", instr.Arg)
			if nested, ok := UnwrapCodeObject(co.Constants[instr.Arg]); ok {
				nested.disassemble(w, indent+2)
			}
		case OpPop, OpReturn:
			fmt.Fprintln(w)
		default:
			fmt.Fprintf(w, " %d\n", instr.Arg)
		}
	}
}

// codeObjectValue lets a nested CodeObject ride through the constant
// pool (FUNCTION's operand indexes into Constants, same as
// original_source/bob/compiler.py's BobAssembler storing nested
// CompiledProcedure code objects inline). It implements expr.Value only
// so it can share the Constants slice element type; the evaluator never
// sees one directly — only the VM, which unwraps it when executing
// FUNCTION.
type codeObjectValue struct {
	co *CodeObject
}

func (*codeObjectValue) Kind() string { return "code-object" }

// WrapCodeObject boxes a nested CodeObject for the constant pool.
func WrapCodeObject(co *CodeObject) expr.Value { return &codeObjectValue{co: co} }

// UnwrapCodeObject recovers a CodeObject boxed by WrapCodeObject, or ok
// false if v isn't one.
func UnwrapCodeObject(v expr.Value) (*CodeObject, bool) {
	c, ok := v.(*codeObjectValue)
	if !ok {
		return nil, false
	}
	return c.co, true
}
