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

// Package vm implements the stack-based bytecode virtual machine that
// executes bytecode.CodeObject values produced by package compiler.
//
// An Instance owns a value stack, a frame stack of suspended caller
// frames, and a current execution frame (code object, program counter,
// environment). Run dispatches CONST/LOADVAR/STOREVAR/DEFVAR/POP/JUMP/
// FJUMP/FUNCTION/CALL/RETURN in a loop until the top-level code object's
// instruction stream is exhausted with an empty frame stack.
//
// CALL's calling convention pops the procedure off the top of the value
// stack, then pops its arguments (pushed left to right, so popped in
// reverse). A call to a *Closure pushes the caller's frame onto the
// frame stack and switches to a fresh frame bound to a new environment
// extending the closure's captured environment; RETURN pops the frame
// stack back to the caller. A call to an *expr.Builtin invokes its Go
// function directly without touching the frame stack.
//
// Both CALL targets — *Closure (produced by FUNCTION, from the compiler)
// and *expr.Builtin (installed by package builtin) — satisfy expr.Value,
// so the value stack is homogeneous regardless of what produced a given
// value: the tree-walking evaluator in package eval, or this VM.
//
// Any internal inconsistency (a malformed code object, a stack
// underflow) surfaces as a panic that Run recovers and reports as an
// errs.VMError, rather than corrupting VM state silently.
package vm
