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

// Package compiler lowers expr.Value expression trees into
// bytecode.CodeObject, the way original_source/bob/compiler.py's
// BobCompiler and BobAssembler do: a first pass emits a flat instruction
// list with symbolic jump labels and unresolved constant/varname
// operands (a CompiledProcedure), then a second pass — the assembler —
// resolves labels to absolute offsets and interns constants/varnames
// into their final pool indices. The two-pass structure itself (label
// site bookkeeping in a first pass, offset resolution in a second) is
// grounded on db47h-ngaro/asm/parser.go's labelSite/label bookkeeping and
// db47h-ngaro/asm/asm.go's Assemble/Disassemble public API shape.
package compiler

import (
	"github.com/schemevm/bob/bytecode"
	"github.com/schemevm/bob/errs"
	"github.com/schemevm/bob/expr"
)

// label is a symbolic jump target used only during the first compile
// pass; it never appears in the final bytecode.Instruction.Arg, which
// always holds a resolved absolute offset.
type label struct {
	id int
}

// pendingInstr is one not-yet-assembled instruction: either a resolved
// integer argument (kind argRaw) or a symbolic reference into the
// constant/varname/label space resolved during assembly.
type pendingInstr struct {
	op       bytecode.Opcode
	raw      int // valid when kind == argRaw
	constant expr.Value
	varname  string
	lbl      *label
	kind     argKind
}

type argKind int

const (
	argNone argKind = iota
	argRaw
	argConst
	argVar
	argLabel
)

// proc is the first-pass output for one lambda body (or the top-level
// program), matching original_source/bob/compiler.py's
// CompiledProcedure(args, code, name).
type proc struct {
	name string
	args []string
	code []pendingInstr
}

// Compile lowers e into a top-level, unassembled proc and then runs the
// two-pass assembler over it, producing a ready-to-run
// *bytecode.CodeObject. name is used only as the top-level CodeObject's
// debug name.
func Compile(e expr.Value, name string) (*bytecode.CodeObject, error) {
	p := &proc{name: name}
	labelCounter := 0
	if err := compileExpr(e, p, &labelCounter); err != nil {
		return nil, err
	}
	p.code = append(p.code, pendingInstr{op: bytecode.OpReturn, kind: argNone})
	return assemble(p)
}

// assemble runs the two passes described in the package doc: pass 1
// computes each label's absolute offset (labels don't themselves occupy
// a slot in the emitted code, matching
// BobAssembler._compute_label_offsets); pass 2 walks the pending
// instructions, resolving labels and interning constants/varnames into
// bytecode.CodeObject's pools, matching
// BobAssembler._assemble_to_code.
func assemble(p *proc) (*bytecode.CodeObject, error) {
	offsets := computeLabelOffsets(p.code)
	co := bytecode.New(p.name, p.args)
	for _, pi := range p.code {
		if pi.op == opLabelMark {
			// Label markers don't occupy a code slot; they only existed
			// to let computeLabelOffsets record their offset above.
			continue
		}
		instr, err := assembleInstr(pi, co, offsets)
		if err != nil {
			return nil, err
		}
		co.Code = append(co.Code, instr)
	}
	return co, nil
}

// computeLabelOffsets scans the pending instruction list once, assigning
// every *label encountered (as a standalone marker with op==opLabelMark)
// the offset of the next real instruction.
func computeLabelOffsets(code []pendingInstr) map[*label]int {
	offsets := make(map[*label]int)
	offset := 0
	for _, pi := range code {
		if pi.op == opLabelMark {
			offsets[pi.lbl] = offset
			continue
		}
		offset++
	}
	return offsets
}

// opLabelMark is an internal pseudo-opcode (never written to the final
// CodeObject) used to splice a label definition into the pending
// instruction stream without occupying a code slot.
const opLabelMark = bytecode.Opcode(255)

func assembleInstr(pi pendingInstr, co *bytecode.CodeObject, offsets map[*label]int) (bytecode.Instruction, error) {
	switch pi.kind {
	case argNone:
		return bytecode.Instruction{Op: pi.op, Arg: -1}, nil
	case argRaw:
		return bytecode.Instruction{Op: pi.op, Arg: pi.raw}, nil
	case argConst:
		idx := internConstant(co, pi.constant)
		return bytecode.Instruction{Op: pi.op, Arg: idx}, nil
	case argVar:
		idx := internVarname(co, pi.varname)
		return bytecode.Instruction{Op: pi.op, Arg: idx}, nil
	case argLabel:
		off, ok := offsets[pi.lbl]
		if !ok {
			return bytecode.Instruction{}, errs.NewCompileError("unresolved label in %s", co.Name)
		}
		return bytecode.Instruction{Op: pi.op, Arg: off}, nil
	default:
		return bytecode.Instruction{}, errs.NewCompileError("malformed pending instruction in %s", co.Name)
	}
}

// internConstant appends v to the constant pool, without deduplication
// for *expr.Pair (preserving eqv? distinctness — see DESIGN.md), but
// reusing an existing slot for atomic constants, matching
// BobAssembler._assemble_to_code's CONST handling.
func internConstant(co *bytecode.CodeObject, v expr.Value) int {
	if _, isPair := v.(*expr.Pair); !isPair {
		for i, c := range co.Constants {
			if c == v {
				return i
			}
		}
	}
	co.Constants = append(co.Constants, v)
	return len(co.Constants) - 1
}

// internVarname finds-or-appends name in the varname pool, matching
// utils.list_find_or_append as used for LOADVAR/STOREVAR/DEFVAR.
func internVarname(co *bytecode.CodeObject, name string) int {
	for i, n := range co.Varnames {
		if n == name {
			return i
		}
	}
	co.Varnames = append(co.Varnames, name)
	return len(co.Varnames) - 1
}
