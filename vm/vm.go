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

// Package vm implements the stack-based virtual machine that executes
// bytecode.CodeObject values, ported from original_source/bob/vm.py's
// BobVM but recast in the idiom of db47h-ngaro/vm: an Instance struct
// built via functional Options, owning its value stack, frame stack and
// current execution frame as plain mutable fields, with Run as a single
// big opcode-dispatch loop wrapped in a deferred recover (see core.go).
package vm

import (
	"io"
	"os"

	"github.com/schemevm/bob/builtin"
	"github.com/schemevm/bob/bytecode"
	"github.com/schemevm/bob/environ"
	"github.com/schemevm/bob/errs"
	"github.com/schemevm/bob/expr"
)

// Closure is a bytecode procedure bound to the environment it closed
// over at FUNCTION time, matching original_source/bob/vm.py's Closure
// class. It is distinct from expr.Lambda (the tree-walking evaluator's
// compound procedure): the VM never sees an expr.Lambda.
type Closure struct {
	Code *bytecode.CodeObject
	Env  *environ.Frame
}

func (*Closure) Kind() string { return "closure" }

// frame encapsulates one level of VM execution state: the code object
// being run, the next instruction index, and the environment it runs
// in, matching original_source/bob/vm.py's ExecutionFrame.
type frame struct {
	code *bytecode.CodeObject
	pc   int
	env  *environ.Frame
}

// Instance is one virtual machine: its value stack, its frame stack
// (saved frames for in-progress CALLs) and its current frame, plus the
// global environment builtins are installed against and the output sink
// the write builtin writes to.
type Instance struct {
	valueStack []expr.Value
	frameStack []frame
	cur        frame
	global     *environ.Frame
	output     io.Writer
}

// Option configures an Instance at construction time, matching
// db47h-ngaro/vm.Option's functional-options pattern.
type Option func(*Instance) error

// Output sets the sink for the write builtin and debug-vm's diagnostic
// dump. Defaults to os.Stdout.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = w
		return nil
	}
}

// New builds an Instance, applying opts in order, the way
// db47h-ngaro/vm.New applies its Options.
func New(opts ...Option) (*Instance, error) {
	i := &Instance{
		global: environ.NewEmpty(),
		output: os.Stdout,
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	builtin.Install(i.global)
	i.global.Define(expr.Symbol("write"), &expr.Builtin{Name: "write", Proc: i.write})
	i.global.Define(expr.Symbol("debug-vm"), &expr.Builtin{Name: "debug-vm", Proc: i.debugVM})
	return i, nil
}

// Global exposes the VM's global environment, e.g. for a REPL that wants
// top-level definitions to persist across successive Run calls.
func (i *Instance) Global() *environ.Frame { return i.global }

func (i *Instance) write(args []expr.Value) (expr.Value, error) {
	if len(args) != 1 {
		return nil, errs.NewArityError("write", len(args), 1)
	}
	io.WriteString(i.output, expr.Repr(args[0])+"\n")
	return expr.Null{}, nil
}

// debugVM prints the value stack and frame stack, matching
// original_source/bob/vm.py's _hook_debug_vm/_show_vm_state.
func (i *Instance) debugVM(args []expr.Value) (expr.Value, error) {
	io.WriteString(i.output, i.dumpState())
	return expr.Null{}, nil
}
