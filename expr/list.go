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

package expr

// NewList builds a proper list from vs, terminated by Null{}, mirroring
// original_source/bob/expr.py's make_nested_pairs(recursive=False).
func NewList(vs ...Value) Value {
	var result Value = Null{}
	for i := len(vs) - 1; i >= 0; i-- {
		result = NewPair(vs[i], result)
	}
	return result
}

// ListToSlice flattens a proper list into a Go slice. ok is false if v is
// not a proper, Null-terminated list (e.g. a dotted pair or a non-pair).
func ListToSlice(v Value) (vs []Value, ok bool) {
	for {
		switch t := v.(type) {
		case Null:
			return vs, true
		case *Pair:
			vs = append(vs, t.Car)
			v = t.Cdr
		default:
			return nil, false
		}
	}
}

// Length returns the number of elements in a proper list, or ok=false if
// v is not a proper list.
func Length(v Value) (n int, ok bool) {
	for {
		switch t := v.(type) {
		case Null:
			return n, true
		case *Pair:
			n++
			v = t.Cdr
		default:
			return 0, false
		}
	}
}
