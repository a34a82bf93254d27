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

// Package environ implements lexical environments: chained frames of
// variable bindings, grounded on original_source/bob/environment.py's
// Environment class (a dict plus a parent pointer). Frame implements the
// expr.Env interface structurally, which is what lets expr.Lambda hold an
// environment without package expr importing environ.
package environ

import (
	"github.com/schemevm/bob/errs"
	"github.com/schemevm/bob/expr"
)

// Frame is one lexical scope: a set of bindings plus a pointer to the
// enclosing scope (nil at the global frame).
type Frame struct {
	bindings map[expr.Symbol]expr.Value
	parent   *Frame
}

// New creates a fresh frame with no bindings, pre-populated with the
// params bound positionally to args (used when applying a compound
// procedure), chained to parent.
func New(parent *Frame, params []expr.Symbol, args []expr.Value) *Frame {
	f := &Frame{bindings: make(map[expr.Symbol]expr.Value, len(params)), parent: parent}
	for i, p := range params {
		f.bindings[p] = args[i]
	}
	return f
}

// NewEmpty creates a fresh frame with no bindings and no parent, used for
// the global environment.
func NewEmpty() *Frame {
	return &Frame{bindings: make(map[expr.Symbol]expr.Value)}
}

// Lookup climbs the parent chain looking for name, matching
// Environment.lookup_var's walk-to-root behavior.
func (f *Frame) Lookup(name expr.Symbol) (expr.Value, error) {
	for cur := f; cur != nil; cur = cur.parent {
		if v, ok := cur.bindings[name]; ok {
			return v, nil
		}
	}
	return nil, errs.NewUnbound(string(name))
}

// Define always binds in the current frame, shadowing any outer binding,
// matching Environment.define_var.
func (f *Frame) Define(name expr.Symbol, val expr.Value) {
	f.bindings[name] = val
}

// Set climbs the parent chain and mutates the first frame that already
// binds name, matching Environment.set_var_value. It is an error to set!
// a variable that was never defined.
func (f *Frame) Set(name expr.Symbol, val expr.Value) error {
	for cur := f; cur != nil; cur = cur.parent {
		if _, ok := cur.bindings[name]; ok {
			cur.bindings[name] = val
			return nil
		}
	}
	return errs.NewUnbound(string(name))
}
