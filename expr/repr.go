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

import (
	"fmt"
	"strings"
)

// Repr renders v in external representation, matching
// original_source/bob/expr.py's expr_repr: () for the empty list, #t/#f
// for booleans, bare decimal for numbers, bare text for symbols, and
// "(a b c)" / "(a b . c)" for pairs depending on whether the list is
// proper.
func Repr(v Value) string {
	switch t := v.(type) {
	case Null:
		return "()"
	case Boolean:
		if t {
			return "#t"
		}
		return "#f"
	case Number:
		return fmt.Sprintf("%d", int64(t))
	case Symbol:
		return string(t)
	case *Pair:
		return reprPair(t)
	case *Lambda:
		name := t.Name
		if name == "" {
			name = "anonymous"
		}
		return fmt.Sprintf("#<procedure %s>", name)
	case *Builtin:
		return fmt.Sprintf("#<builtin %s>", t.Name)
	default:
		return fmt.Sprintf("#<unknown %v>", v)
	}
}

func reprPair(p *Pair) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(Repr(p.Car))
	rest := p.Cdr
	for {
		switch t := rest.(type) {
		case Null:
			b.WriteByte(')')
			return b.String()
		case *Pair:
			b.WriteByte(' ')
			b.WriteString(Repr(t.Car))
			rest = t.Cdr
		default:
			b.WriteString(" . ")
			b.WriteString(Repr(rest))
			b.WriteByte(')')
			return b.String()
		}
	}
}
