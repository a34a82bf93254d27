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

// Package compiler lowers the expr package's expression trees into
// bytecode.CodeObject values executable by package vm.
//
// Lowering rules mirror the tree-walking evaluator form for form: a
// self-evaluating datum compiles to CONST; a variable reference compiles
// to LOADVAR; a quoted datum compiles to CONST of the quoted value;
// set!/define compile the right-hand side then STOREVAR/DEFVAR; if
// compiles to predicate, FJUMP, consequent, JUMP, alternative with two
// resolved labels; cond and let desugar to if and application before
// compiling, exactly as the evaluator desugars them; lambda compiles its
// body into its own nested CodeObject and emits FUNCTION; an application
// compiles its operands left to right, then the operator, then CALL n.
//
// Assembly is two-pass: a first pass walks the expression tree emitting
// a flat pending-instruction list with symbolic labels and unresolved
// constant/varname references, and a second pass resolves every label to
// an absolute code offset and interns constants/varnames into their pool
// indices.
package compiler
