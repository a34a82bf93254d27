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

// Opcode is a single bytecode instruction tag. Values follow the order
// spec.md lists them in (CONST first, CALL last); the exact byte
// assignment is otherwise an internal choice with no observable effect,
// since the codec always round-trips its own tag bytes (see DESIGN.md).
type Opcode byte

const (
	OpConst Opcode = iota
	OpLoadVar
	OpStoreVar
	OpDefVar
	OpFunction
	OpPop
	OpJump
	OpFJump
	OpReturn
	OpCall
)

var opcodeNames = [...]string{
	"CONST",
	"LOADVAR",
	"STOREVAR",
	"DEFVAR",
	"FUNCTION",
	"POP",
	"JUMP",
	"FJUMP",
	"RETURN",
	"CALL",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "UNKNOWN"
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for i, name := range opcodeNames {
		opcodeIndex[name] = Opcode(i)
	}
}

// OpcodeByName looks up an opcode by its mnemonic, the inverse of
// Opcode.String.
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}

// HasArg reports whether op carries an operand (an index into constants,
// varnames, or a resolved jump target), matching the arg/no-arg split in
// original_source/bob/bytecode.py's Instruction.
func (op Opcode) HasArg() bool {
	switch op {
	case OpPop, OpReturn:
		return false
	default:
		return true
	}
}
