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
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/schemevm/bob/errs"
	"github.com/schemevm/bob/expr"
)

// magic is the four-byte little-endian word every .bobc container starts
// with, per spec.md §4.8.
const magic uint32 = 0x00010B0B

// Tag bytes for the typed, self-describing value encoding of spec.md
// §4.8, mirrored from db47h-ngaro/vm/image.go's encoding/binary +
// bytes.Buffer codec idiom but adapted to a tagged-union payload instead
// of a flat Cell image.
const (
	tagNull       byte = '0'
	tagBoolean    byte = 'b'
	tagNumber     byte = 'n'
	tagSymbol     byte = 'S'
	tagString     byte = 's'
	tagPair       byte = 'p'
	tagInstr      byte = 'i'
	tagSeq        byte = '['
	tagCodeObject byte = 'c'
)

// Serialize encodes co as a complete .bobc container: the magic word
// followed by the tagged top-level CodeObject.
func Serialize(co *CodeObject) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, magic); err != nil {
		return nil, errors.Wrap(err, "write magic")
	}
	if err := writeCodeObject(&buf, co); err != nil {
		return nil, errors.Wrap(err, "serialize code object")
	}
	return buf.Bytes(), nil
}

// Deserialize decodes a .bobc container produced by Serialize.
func Deserialize(data []byte) (*CodeObject, error) {
	r := bytes.NewReader(data)
	var got uint32
	if err := binary.Read(r, binary.LittleEndian, &got); err != nil {
		return nil, errs.NewDeserializeError("reading magic: %v", err)
	}
	if got != magic {
		return nil, errs.NewDeserializeError("bad magic word 0x%08X", got)
	}
	return readCodeObject(r)
}

func writeByte(w *bytes.Buffer, b byte) error {
	return w.WriteByte(b)
}

func writeUint32(w *bytes.Buffer, v uint32) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeString(w *bytes.Buffer, tag byte, s string) error {
	if err := writeByte(w, tag); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

func writeValue(w *bytes.Buffer, v expr.Value) error {
	switch t := v.(type) {
	case expr.Null:
		return writeByte(w, tagNull)
	case expr.Boolean:
		if err := writeByte(w, tagBoolean); err != nil {
			return err
		}
		if t {
			return writeByte(w, 1)
		}
		return writeByte(w, 0)
	case expr.Number:
		if err := writeByte(w, tagNumber); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, int32(t))
	case expr.Symbol:
		return writeString(w, tagSymbol, string(t))
	case *expr.Pair:
		if err := writeByte(w, tagPair); err != nil {
			return err
		}
		if err := writeValue(w, t.Car); err != nil {
			return err
		}
		return writeValue(w, t.Cdr)
	default:
		if co, ok := UnwrapCodeObject(v); ok {
			return writeCodeObjectTagged(w, co)
		}
		return errors.Errorf("cannot serialize value of kind %q", v.Kind())
	}
}

func writeCodeObjectTagged(w *bytes.Buffer, co *CodeObject) error {
	if err := writeByte(w, tagCodeObject); err != nil {
		return err
	}
	return writeCodeObjectBody(w, co)
}

// writeCodeObject writes the top-level code object, matching spec.md
// §4.8's "magic word + the top-level code object, typed-tagged": the
// top level is framed with the same tagCodeObject byte as a nested
// FUNCTION code object, via writeCodeObjectTagged.
func writeCodeObject(w *bytes.Buffer, co *CodeObject) error {
	return writeCodeObjectTagged(w, co)
}

// writeCodeObjectBody writes name, args, constants, varnames, code in
// the exact order spec.md §4.8 mandates for tag 'c'.
func writeCodeObjectBody(w *bytes.Buffer, co *CodeObject) error {
	if err := writeString(w, tagString, co.Name); err != nil {
		return err
	}
	if err := writeStringSeq(w, co.Args); err != nil {
		return err
	}
	if err := writeValueSeq(w, co.Constants); err != nil {
		return err
	}
	if err := writeStringSeq(w, co.Varnames); err != nil {
		return err
	}
	return writeInstrSeq(w, co.Code)
}

func writeStringSeq(w *bytes.Buffer, ss []string) error {
	if err := writeByte(w, tagSeq); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(ss))); err != nil {
		return err
	}
	for _, s := range ss {
		if err := writeString(w, tagString, s); err != nil {
			return err
		}
	}
	return nil
}

func writeValueSeq(w *bytes.Buffer, vs []expr.Value) error {
	if err := writeByte(w, tagSeq); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := writeValue(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeInstrSeq(w *bytes.Buffer, code []Instruction) error {
	if err := writeByte(w, tagSeq); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(code))); err != nil {
		return err
	}
	for _, instr := range code {
		if err := writeByte(w, tagInstr); err != nil {
			return err
		}
		word := uint32(instr.Op)<<24 | (uint32(instr.Arg) & 0x00FFFFFF)
		if err := writeUint32(w, word); err != nil {
			return err
		}
	}
	return nil
}

// --- readers ---

func readByte(r *bytes.Reader) (byte, error) {
	return r.ReadByte()
}

func expectTag(r *bytes.Reader, want byte, what string) error {
	got, err := readByte(r)
	if err != nil {
		return errs.NewDeserializeError("reading %s tag: %v", what, err)
	}
	if got != want {
		return errs.NewDeserializeError("expected %s tag %q, got %q", what, want, got)
	}
	return nil
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var v uint32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return 0, errs.NewDeserializeError("reading length: %v", err)
	}
	return v, nil
}

func readStringBody(r *bytes.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", errs.NewDeserializeError("reading string body: %v", err)
	}
	return string(buf), nil
}

func readTaggedString(r *bytes.Reader, tag byte, what string) (string, error) {
	if err := expectTag(r, tag, what); err != nil {
		return "", err
	}
	return readStringBody(r)
}

func readValue(r *bytes.Reader) (expr.Value, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, errs.NewDeserializeError("reading value tag: %v", err)
	}
	switch tag {
	case tagNull:
		return expr.Null{}, nil
	case tagBoolean:
		b, err := readByte(r)
		if err != nil {
			return nil, errs.NewDeserializeError("reading boolean: %v", err)
		}
		return expr.Boolean(b != 0), nil
	case tagNumber:
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, errs.NewDeserializeError("reading number: %v", err)
		}
		return expr.Number(v), nil
	case tagSymbol:
		s, err := readStringBody(r)
		if err != nil {
			return nil, err
		}
		return expr.Symbol(s), nil
	case tagPair:
		car, err := readValue(r)
		if err != nil {
			return nil, err
		}
		cdr, err := readValue(r)
		if err != nil {
			return nil, err
		}
		return expr.NewPair(car, cdr), nil
	case tagCodeObject:
		co, err := readCodeObjectBody(r)
		if err != nil {
			return nil, err
		}
		return WrapCodeObject(co), nil
	default:
		return nil, errs.NewDeserializeError("unrecognized value tag %q", tag)
	}
}

func readStringSeq(r *bytes.Reader) ([]string, error) {
	if err := expectTag(r, tagSeq, "string sequence"); err != nil {
		return nil, err
	}
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		s, err := readTaggedString(r, tagString, "sequence element")
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func readValueSeq(r *bytes.Reader) ([]expr.Value, error) {
	if err := expectTag(r, tagSeq, "value sequence"); err != nil {
		return nil, err
	}
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	out := make([]expr.Value, n)
	for i := range out {
		v, err := readValue(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readInstrSeq(r *bytes.Reader) ([]Instruction, error) {
	if err := expectTag(r, tagSeq, "instruction sequence"); err != nil {
		return nil, err
	}
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	out := make([]Instruction, n)
	for i := range out {
		if err := expectTag(r, tagInstr, "instruction"); err != nil {
			return nil, err
		}
		word, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		out[i] = Instruction{Op: Opcode(word >> 24), Arg: int(int32(word<<8) >> 8)}
	}
	return out, nil
}

// readCodeObject reads the top-level code object, expecting the same
// tagCodeObject byte that a nested FUNCTION code object carries, matching
// writeCodeObject's tagged framing.
func readCodeObject(r *bytes.Reader) (*CodeObject, error) {
	if err := expectTag(r, tagCodeObject, "top-level code object"); err != nil {
		return nil, err
	}
	return readCodeObjectBody(r)
}

func readCodeObjectBody(r *bytes.Reader) (*CodeObject, error) {
	name, err := readTaggedString(r, tagString, "code object name")
	if err != nil {
		return nil, err
	}
	args, err := readStringSeq(r)
	if err != nil {
		return nil, err
	}
	constants, err := readValueSeq(r)
	if err != nil {
		return nil, err
	}
	varnames, err := readStringSeq(r)
	if err != nil {
		return nil, err
	}
	code, err := readInstrSeq(r)
	if err != nil {
		return nil, err
	}
	return &CodeObject{Name: name, Args: args, Constants: constants, Varnames: varnames, Code: code}, nil
}
