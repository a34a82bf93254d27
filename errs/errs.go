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

// Package errs collects the typed error values raised across the lexer,
// parser, evaluator, compiler and VM. Each error class is its own exported
// type carrying the structured context spec.md requires (an unbound
// variable's name, a lexer's byte offset, a parser's [line, col], ...),
// following the same spirit as db47h-ngaro's use of github.com/pkg/errors
// to wrap low-level causes with call-site context rather than returning
// bare strings.
package errs

import "fmt"

// Unbound is raised when a variable lookup or set! fails to find a
// binding, matching original_source/bob/environment.py's Environment.Unbound.
type Unbound struct {
	Name string
}

func (e *Unbound) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}

// NewUnbound constructs an Unbound error.
func NewUnbound(name string) error { return &Unbound{Name: name} }

// TypeError is raised when a builtin or special form receives a value of
// the wrong kind (e.g. cdr of a non-pair).
type TypeError struct {
	Op      string
	Want    string
	Got     string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Want, e.Got)
}

func NewTypeError(op, want, got string) error {
	return &TypeError{Op: op, Want: want, Got: got}
}

// ArityError is raised when a procedure is called with the wrong number
// of arguments, matching original_source/bob/vm.py's
// "Calling procedure %s with %s args, expected %s" message.
type ArityError struct {
	Name     string
	Got      int
	Expected int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("calling procedure %s with %d args, expected %d", e.Name, e.Got, e.Expected)
}

func NewArityError(name string, got, expected int) error {
	return &ArityError{Name: name, Got: got, Expected: expected}
}

// CompileError is raised by the compiler/assembler, e.g. an unresolved
// label or a malformed special form.
type CompileError struct {
	Msg string
}

func (e *CompileError) Error() string { return "compile error: " + e.Msg }

func NewCompileError(format string, args ...interface{}) error {
	return &CompileError{Msg: fmt.Sprintf(format, args...)}
}

// VMError is raised by the virtual machine for malformed bytecode (an
// unknown opcode, a nested code object ending without RETURN, a FUNCTION
// operand that is not a code object) and for recovered panics on a
// malformed code object (index out of range, nil dereference); an arity
// mismatch at CALL is reported as ArityError instead. Matching
// original_source/bob/vm.py's VMError and db47h-ngaro/vm/core.go's
// recover-wrapped Run.
type VMError struct {
	Msg string
}

func (e *VMError) Error() string { return "vm error: " + e.Msg }

func NewVMError(format string, args ...interface{}) error {
	return &VMError{Msg: fmt.Sprintf(format, args...)}
}

// DeserializeError is raised by the bytecode codec when a .bobc container
// is truncated or carries an unrecognized tag byte or bad magic word.
type DeserializeError struct {
	Msg string
}

func (e *DeserializeError) Error() string { return "deserialize error: " + e.Msg }

func NewDeserializeError(format string, args ...interface{}) error {
	return &DeserializeError{Msg: fmt.Sprintf(format, args...)}
}

// LexError carries the byte offset of the first unrecognized character or
// malformed token.
type LexError struct {
	Offset int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Msg)
}

func NewLexError(offset int, format string, args ...interface{}) error {
	return &LexError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// ParseError carries a [line, col] position, matching
// original_source/bob/bobparser.py's pos2coord-derived error reporting.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func NewParseError(line, col int, format string, args ...interface{}) error {
	return &ParseError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}
