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

package environ_test

import (
	"testing"

	"github.com/schemevm/bob/environ"
	"github.com/schemevm/bob/expr"
)

func TestLookupClimbsParentChain(t *testing.T) {
	parent := environ.NewEmpty()
	parent.Define("x", expr.Number(1))
	child := environ.New(parent, nil, nil)
	got, err := child.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != expr.Value(expr.Number(1)) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestDefineShadowsOuterBinding(t *testing.T) {
	parent := environ.NewEmpty()
	parent.Define("x", expr.Number(1))
	child := environ.New(parent, nil, nil)
	child.Define("x", expr.Number(2))

	got, err := child.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != expr.Value(expr.Number(2)) {
		t.Errorf("got %v, want 2 (shadowed)", got)
	}
	outer, err := parent.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup in parent: %v", err)
	}
	if outer != expr.Value(expr.Number(1)) {
		t.Errorf("outer binding mutated: got %v, want still 1", outer)
	}
}

func TestSetRewritesNearestBinding(t *testing.T) {
	parent := environ.NewEmpty()
	parent.Define("x", expr.Number(1))
	child := environ.New(parent, nil, nil)

	if err := child.Set("x", expr.Number(99)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _ := parent.Lookup("x")
	if got != expr.Value(expr.Number(99)) {
		t.Errorf("got %v, want 99", got)
	}
}

func TestSetUnboundVariableIsError(t *testing.T) {
	f := environ.NewEmpty()
	if err := f.Set("nope", expr.Number(1)); err == nil {
		t.Fatal("expected an error for set! of an unbound variable")
	}
}

func TestLookupUnboundVariableIsError(t *testing.T) {
	f := environ.NewEmpty()
	if _, err := f.Lookup("nope"); err == nil {
		t.Fatal("expected an error for an unbound variable")
	}
}

func TestNewBindsParamsPositionally(t *testing.T) {
	params := []expr.Symbol{"a", "b"}
	args := []expr.Value{expr.Number(10), expr.Number(20)}
	f := environ.New(environ.NewEmpty(), params, args)
	a, _ := f.Lookup("a")
	b, _ := f.Lookup("b")
	if a != expr.Value(expr.Number(10)) || b != expr.Value(expr.Number(20)) {
		t.Errorf("got a=%v b=%v, want a=10 b=20", a, b)
	}
}
