// Copyright ABC Solver Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package orchestrate

import (
	"testing"

	"github.com/abc-solver/core/pkg/ast"
)

type fakeVar struct {
	name string
	sort ast.Sort
}

func (v *fakeVar) Name() string   { return v.name }
func (v *fakeVar) Sort() ast.Sort { return v.sort }

type fakeSymbols struct {
	vars map[string]*fakeVar
}

func newFakeSymbols(entries map[string]ast.Sort) *fakeSymbols {
	s := &fakeSymbols{vars: make(map[string]*fakeVar)}
	for name, sort := range entries {
		s.vars[name] = &fakeVar{name: name, sort: sort}
	}

	return s
}

func (s *fakeSymbols) GetVariable(name string) (ast.Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

type fakeOracle struct {
	components map[*fakeTerm]bool
}

func (o *fakeOracle) IsComponent(t ast.Term) bool {
	ft, ok := t.(*fakeTerm)
	return ok && o.components[ft]
}

// fakeTerm covers exactly the shapes this package's tests build:
// qualidentifier, term-constant, comparisons and and-terms.
type fakeTerm struct {
	kind      ast.Kind
	name      string
	constKind ast.ConstantKind
	left      *fakeTerm
	right     *fakeTerm
	list      []*fakeTerm
}

func asTerm(f *fakeTerm) ast.Term {
	if f == nil {
		return nil
	}

	return f
}

func (f *fakeTerm) Type() ast.Kind        { return f.kind }
func (f *fakeTerm) LeftTerm() ast.Term    { return asTerm(f.left) }
func (f *fakeTerm) RightTerm() ast.Term   { return asTerm(f.right) }
func (f *fakeTerm) SubjectTerm() ast.Term { return nil }
func (f *fakeTerm) SearchTerm() ast.Term  { return nil }

func (f *fakeTerm) TermList() []ast.Term {
	out := make([]ast.Term, len(f.list))
	for i, c := range f.list {
		out[i] = c
	}

	return out
}

func (f *fakeTerm) VariableRef() (string, bool) {
	return f.name, f.kind == ast.Qualidentifier
}

func (f *fakeTerm) ConstantPayload() (string, ast.ConstantKind) {
	return f.name, f.constKind
}

func qvar(name string) *fakeTerm {
	return &fakeTerm{kind: ast.Qualidentifier, name: name}
}

func strConst(text string) *fakeTerm {
	return &fakeTerm{kind: ast.TermConstant, name: text, constKind: ast.StringLiteral}
}

func intConst(text string) *fakeTerm {
	return &fakeTerm{kind: ast.TermConstant, name: text, constKind: ast.StringLiteral}
}

func cmp(kind ast.Kind, l, r *fakeTerm) *fakeTerm {
	return &fakeTerm{kind: kind, left: l, right: r}
}

func and(children ...*fakeTerm) *fakeTerm {
	return &fakeTerm{kind: ast.And, list: children}
}

// TestSolveSeparatesStringAndIntegerComponents builds
// (and (= a b) (< x 3) (begins? omitted)) — a string equality and an
// integer comparison sharing one and-component — and checks that the
// single resulting ComponentResult carries both a 2-entry track map (for
// a, b) and exactly one produced integer automaton (for x < 3).
func TestSolveSeparatesStringAndIntegerComponents(t *testing.T) {
	a, b, x := qvar("a"), qvar("b"), qvar("x")

	eq := cmp(ast.Eq, a, b)
	lt := cmp(ast.Lt, x, intConst("3"))

	component := and(eq, lt)

	symbols := newFakeSymbols(map[string]ast.Sort{
		"a": ast.String,
		"b": ast.String,
		"x": ast.Int,
	})
	oracle := &fakeOracle{components: map[*fakeTerm]bool{component: true}}

	results, err := Solve(component, symbols, oracle)
	if err != nil {
		t.Fatalf("Solve returned an error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 component result, got %d", len(results))
	}

	r := results[0]

	if r.Tracks == nil || r.Tracks.Len() != 2 {
		t.Fatalf("expected a 2-entry track map, got %v", r.Tracks)
	}

	if len(r.Bundle.Integer) != 1 {
		t.Fatalf("expected 1 integer automaton, got %d", len(r.Bundle.Integer))
	}
}

// TestSolveKeepsIntegerOnlyComponentSeparate builds two independent
// and-components — one purely string, one purely integer — and checks
// Solve reports two distinct results rather than merging them.
func TestSolveKeepsIntegerOnlyComponentSeparate(t *testing.T) {
	a, b := qvar("a"), qvar("b")
	x, y := qvar("x"), qvar("y")

	stringComponent := and(cmp(ast.Eq, a, b))
	intComponent := and(cmp(ast.Eq, x, y))

	root := and(stringComponent, intComponent)

	symbols := newFakeSymbols(map[string]ast.Sort{
		"a": ast.String,
		"b": ast.String,
		"x": ast.Int,
		"y": ast.Int,
	})
	oracle := &fakeOracle{components: map[*fakeTerm]bool{
		stringComponent: true,
		intComponent:    true,
	}}

	results, err := Solve(root, symbols, oracle)
	if err != nil {
		t.Fatalf("Solve returned an error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 component results, got %d", len(results))
	}

	foundString, foundInt := false, false

	for _, r := range results {
		if r.Tracks != nil && r.Tracks.Len() == 2 {
			foundString = true
		}

		if len(r.Bundle.Integer) == 1 {
			foundInt = true
		}
	}

	if !foundString || !foundInt {
		t.Fatalf("expected one string-only and one integer-only result, got %+v", results)
	}
}
