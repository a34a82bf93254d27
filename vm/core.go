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

package vm

import (
	"fmt"
	"strings"

	"github.com/schemevm/bob/bytecode"
	"github.com/schemevm/bob/environ"
	"github.com/schemevm/bob/errs"
	"github.com/schemevm/bob/expr"
)

// push/pop operate on the value stack; pushFrame/popFrame operate on the
// frame stack, matching original_source/bob/utils.py's Stack used by
// BobVM's valuestack/framestack.

func (i *Instance) push(v expr.Value) {
	i.valueStack = append(i.valueStack, v)
}

func (i *Instance) pop() expr.Value {
	n := len(i.valueStack)
	v := i.valueStack[n-1]
	i.valueStack = i.valueStack[:n-1]
	return v
}

func (i *Instance) pushFrame(f frame) {
	i.frameStack = append(i.frameStack, f)
}

func (i *Instance) popFrame() frame {
	n := len(i.frameStack)
	f := i.frameStack[n-1]
	i.frameStack = i.frameStack[:n-1]
	return f
}

// Run executes co to completion starting at instruction 0, returning
// control once the top-level code object's instruction stream is
// exhausted — matching original_source/bob/vm.py's run/_get_next_instruction
// pairing where a nil next instruction at top level is a clean stop,
// but at any nested level is a VMError ("code object ended prematurely").
//
// Any internal panic (index out of range on a malformed code object, nil
// dereference) is recovered and converted to an errs.VMError carrying
// the pc and code object name for caller-visible context, after the
// recover-wrapped Run of db47h-ngaro/vm/core.go.
func (i *Instance) Run(co *bytecode.CodeObject) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if er, ok := e.(error); ok {
				err = errs.NewVMError("recovered VM error @pc=%d in %s: %v", i.cur.pc, i.cur.code.Name, er)
			} else {
				err = errs.NewVMError("recovered panic @pc=%d in %s: %v", i.cur.pc, i.cur.code.Name, e)
			}
		}
	}()

	i.cur = frame{code: co, pc: 0, env: i.global}
	i.frameStack = i.frameStack[:0]
	i.valueStack = i.valueStack[:0]

	for {
		if i.cur.pc >= len(i.cur.code.Code) {
			if len(i.frameStack) == 0 {
				return nil
			}
			return errs.NewVMError("code object ended prematurely: %s", i.cur.code.Name)
		}
		instr := i.cur.code.Code[i.cur.pc]
		i.cur.pc++

		switch instr.Op {
		case bytecode.OpConst:
			i.push(i.cur.code.Constants[instr.Arg])

		case bytecode.OpLoadVar:
			v, err := i.cur.env.Lookup(expr.Symbol(i.cur.code.Varnames[instr.Arg]))
			if err != nil {
				return err
			}
			i.push(v)

		case bytecode.OpStoreVar:
			v := i.pop()
			if err := i.cur.env.Set(expr.Symbol(i.cur.code.Varnames[instr.Arg]), v); err != nil {
				return err
			}

		case bytecode.OpDefVar:
			v := i.pop()
			i.cur.env.Define(expr.Symbol(i.cur.code.Varnames[instr.Arg]), v)

		case bytecode.OpPop:
			if len(i.valueStack) > 0 {
				i.pop()
			}

		case bytecode.OpJump:
			i.cur.pc = instr.Arg

		case bytecode.OpFJump:
			pred := i.pop()
			if !expr.IsTruthy(pred) {
				i.cur.pc = instr.Arg
			}

		case bytecode.OpFunction:
			funcCO, ok := bytecode.UnwrapCodeObject(i.cur.code.Constants[instr.Arg])
			if !ok {
				return errs.NewVMError("FUNCTION operand is not a code object")
			}
			i.push(&Closure{Code: funcCO, Env: i.cur.env})

		case bytecode.OpCall:
			if err := i.call(instr.Arg); err != nil {
				return err
			}

		case bytecode.OpReturn:
			if len(i.frameStack) == 0 {
				// Returning from the top-level code object: nothing to
				// resume, so the run is simply over.
				return nil
			}
			i.cur = i.popFrame()

		default:
			return errs.NewVMError("unknown instruction opcode: %d", instr.Op)
		}
	}
}

// Eval runs co to completion and returns the value left on top of the
// value stack, or expr.Null{} if co's last instruction popped its
// result (a bare top-level define, for instance). It is the entry point
// a REPL or script runner uses to get a result back from each top-level
// form, whereas Run is for callers that only care about side effects.
func (i *Instance) Eval(co *bytecode.CodeObject) (expr.Value, error) {
	if err := i.Run(co); err != nil {
		return nil, err
	}
	if len(i.valueStack) == 0 {
		return expr.Null{}, nil
	}
	return i.valueStack[len(i.valueStack)-1], nil
}

// call implements CALL's calling convention: TOS holds the procedure,
// below it argCount arguments with the last argument on top (so popping
// argCount times and reversing restores left-to-right order), matching
// original_source/bob/vm.py's CALL handling.
func (i *Instance) call(argCount int) error {
	proc := i.pop()
	args := make([]expr.Value, argCount)
	for k := argCount - 1; k >= 0; k-- {
		args[k] = i.pop()
	}

	switch p := proc.(type) {
	case *expr.Builtin:
		result, err := p.Proc(args)
		if err != nil {
			return err
		}
		i.push(result)
		return nil

	case *Closure:
		if len(p.Code.Args) != len(args) {
			return errs.NewArityError(p.Code.Name, len(args), len(p.Code.Args))
		}
		i.pushFrame(i.cur)
		params := make([]expr.Symbol, len(p.Code.Args))
		for k, a := range p.Code.Args {
			params[k] = expr.Symbol(a)
		}
		env := environ.New(p.Env, params, args)
		i.cur = frame{code: p.Code, pc: 0, env: env}
		return nil

	default:
		return errs.NewTypeError("call", "procedure", proc.Kind())
	}
}

// Disassemble writes a listing of co to the VM's own output sink — a
// thin wrapper over bytecode.CodeObject's own Disassemble so disassembly
// logic lives in one place. Neither the debug-vm builtin nor the CLI
// calls it: debug-vm prints dumpState, and the CLI calls
// CodeObject.Disassemble directly.
func (i *Instance) Disassemble(co *bytecode.CodeObject) {
	co.Disassemble(i.output)
}

// dumpState renders the value stack and frame stack, matching
// original_source/bob/vm.py's _show_vm_state (TOS-first item ordering,
// a section per stack).
func (i *Instance) dumpState() string {
	var b strings.Builder
	b.WriteString("+-------------+\n| Value stack |\n+-------------+\n\n")
	for k := len(i.valueStack) - 1; k >= 0; k-- {
		item := i.valueStack[k]
		label := "      "
		if k == len(i.valueStack)-1 {
			label = "TOS:  "
		}
		b.WriteString("      |--------\n")
		b.WriteString(label)
		b.WriteString(describeValue(item))
		b.WriteByte('\n')
	}
	b.WriteString("      |--------\n\n+-------------+\n| Frame stack |\n+-------------+\n\n")
	all := append(append([]frame{}, i.frameStack...), i.cur)
	for k := len(all) - 1; k >= 0; k-- {
		f := all[k]
		b.WriteString(fmt.Sprintf("Code: <%s> [PC=%d]\n", f.code.Name, f.pc))
	}
	return b.String()
}

func describeValue(v expr.Value) string {
	switch t := v.(type) {
	case *Closure:
		return fmt.Sprintf("Closure <%s>", t.Code.Name)
	case *expr.Builtin:
		return fmt.Sprintf("BuiltinProcedure <%s>", t.Name)
	default:
		return expr.Repr(v)
	}
}
