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

package bytecode_test

import (
	"testing"

	"github.com/schemevm/bob/bytecode"
	"github.com/schemevm/bob/expr"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	inner := bytecode.New("inner", []string{"x"})
	inner.Constants = append(inner.Constants, expr.Number(1))
	inner.Varnames = append(inner.Varnames, "x")
	inner.Code = []bytecode.Instruction{
		{Op: bytecode.OpLoadVar, Arg: 0},
		{Op: bytecode.OpConst, Arg: 0},
		{Op: bytecode.OpReturn, Arg: -1},
	}

	co := bytecode.New("top", nil)
	co.Constants = []expr.Value{
		expr.Number(42),
		expr.Boolean(true),
		expr.Symbol("sym"),
		expr.NewPair(expr.Number(1), expr.NewPair(expr.Number(2), expr.Null{})),
		bytecode.WrapCodeObject(inner),
	}
	co.Varnames = []string{"v"}
	co.Code = []bytecode.Instruction{
		{Op: bytecode.OpConst, Arg: 0},
		{Op: bytecode.OpDefVar, Arg: 0},
		{Op: bytecode.OpFunction, Arg: 4},
		{Op: bytecode.OpReturn, Arg: -1},
	}

	data, err := bytecode.Serialize(co)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	got, err := bytecode.Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	if got.Name != co.Name {
		t.Errorf("name: got %q, want %q", got.Name, co.Name)
	}
	if len(got.Constants) != len(co.Constants) {
		t.Fatalf("constants length: got %d, want %d", len(got.Constants), len(co.Constants))
	}
	if got.Constants[0] != expr.Number(42) {
		t.Errorf("constants[0]: got %v, want 42", got.Constants[0])
	}
	if got.Constants[1] != expr.Boolean(true) {
		t.Errorf("constants[1]: got %v, want #t", got.Constants[1])
	}
	if got.Constants[2] != expr.Symbol("sym") {
		t.Errorf("constants[2]: got %v, want sym", got.Constants[2])
	}
	pair, ok := got.Constants[3].(*expr.Pair)
	if !ok {
		t.Fatalf("constants[3]: not a pair: %v", got.Constants[3])
	}
	if expr.Repr(pair) != "(1 2)" {
		t.Errorf("constants[3]: got %s, want (1 2)", expr.Repr(pair))
	}
	innerGot, ok := bytecode.UnwrapCodeObject(got.Constants[4])
	if !ok {
		t.Fatalf("constants[4]: not a code object")
	}
	if innerGot.Name != "inner" || len(innerGot.Args) != 1 || innerGot.Args[0] != "x" {
		t.Errorf("nested code object mismatch: %+v", innerGot)
	}
	if len(got.Code) != len(co.Code) {
		t.Fatalf("code length: got %d, want %d", len(got.Code), len(co.Code))
	}
	for i, instr := range co.Code {
		if got.Code[i] != instr {
			t.Errorf("code[%d]: got %+v, want %+v", i, got.Code[i], instr)
		}
	}
}

func TestDeserializeRejectsBadMagic(t *testing.T) {
	_, err := bytecode.Deserialize([]byte{0, 1, 2, 3})
	if err == nil {
		t.Fatal("expected error for bad magic word")
	}
}

// TestTopLevelCodeObjectIsTagged pins down spec.md §4.8's wire format:
// magic word followed by the top-level code object framed with the same
// 'c' tag byte a nested FUNCTION code object carries, not a bare body.
func TestTopLevelCodeObjectIsTagged(t *testing.T) {
	co := bytecode.New("top", nil)
	data, err := bytecode.Serialize(co)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	// 4-byte little-endian magic word, then the tag byte 'c'.
	if len(data) < 5 {
		t.Fatalf("serialized data too short: %d bytes", len(data))
	}
	if data[4] != 'c' {
		t.Errorf("byte after magic word: got %q, want 'c' (tagCodeObject)", data[4])
	}
}
