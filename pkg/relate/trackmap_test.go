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
package relate

import (
	"testing"

	"github.com/abc-solver/core/pkg/ast"
)

// fakeVar is the minimal ast.Variable a test needs.
type fakeVar struct {
	name string
	sort ast.Sort
}

func (v *fakeVar) Name() string  { return v.name }
func (v *fakeVar) Sort() ast.Sort { return v.sort }

// fakeSymbols is a minimal ast.SymbolTable backed by a plain map.
type fakeSymbols struct {
	vars map[string]*fakeVar
}

func newFakeSymbols(names ...string) *fakeSymbols {
	s := &fakeSymbols{vars: make(map[string]*fakeVar)}
	for _, n := range names {
		s.vars[n] = &fakeVar{name: n, sort: ast.String}
	}

	return s
}

func (s *fakeSymbols) GetVariable(name string) (ast.Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// fakeOracle recognizes exactly the and-terms it was told about.
type fakeOracle struct {
	components map[*fakeTerm]bool
}

func (o *fakeOracle) IsComponent(t ast.Term) bool {
	ft, ok := t.(*fakeTerm)
	return ok && o.components[ft]
}

// fakeTerm is a minimal ast.Term covering exactly the shapes these tests
// build: qualidentifier, term-constant, concat, eq, begins, and.
type fakeTerm struct {
	kind      ast.Kind
	name      string // qualidentifier / constant payload
	constKind ast.ConstantKind
	left      *fakeTerm
	right     *fakeTerm
	subject   *fakeTerm
	search    *fakeTerm
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
func (f *fakeTerm) SubjectTerm() ast.Term { return asTerm(f.subject) }
func (f *fakeTerm) SearchTerm() ast.Term  { return asTerm(f.search) }

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

func concat(l, r *fakeTerm) *fakeTerm {
	return &fakeTerm{kind: ast.Concat, left: l, right: r}
}

func cmp(kind ast.Kind, l, r *fakeTerm) *fakeTerm {
	return &fakeTerm{kind: kind, left: l, right: r}
}

func begins(subject, search *fakeTerm) *fakeTerm {
	return &fakeTerm{kind: ast.Begins, subject: subject, search: search}
}

func and(children ...*fakeTerm) *fakeTerm {
	return &fakeTerm{kind: ast.And, list: children}
}

// TestExtractionBuildsTrackMapAndRelations reproduces the worked example:
// (and (= a b) (begins a "x") (= a (concat c "y"))), three string
// variables {a, b, c}. Expected track map {a:0, b:1, c:2}; three relation
// nodes: EQ, BEGINS, EQ with a CONCAT_VAR_CONSTANT right child.
func TestExtractionBuildsTrackMapAndRelations(t *testing.T) {
	a, b, c := qvar("a"), qvar("b"), qvar("c")

	eq1 := cmp(ast.Eq, a, b)
	beginsX := begins(a, strConst("x"))
	eq2 := cmp(ast.Eq, a, concat(c, strConst("y")))

	component := and(eq1, beginsX, eq2)

	symbols := newFakeSymbols("a", "b", "c")
	oracle := &fakeOracle{components: map[*fakeTerm]bool{component: true}}

	e := NewExtractor(symbols, oracle)
	e.Extract(component)

	tm, ok := e.TrackMapFor(component)
	if !ok {
		t.Fatalf("expected a track map for the and-component")
	}

	if tm.Len() != 3 {
		t.Fatalf("expected 3 tracked variables, got %d (%v)", tm.Len(), tm.Names())
	}

	for name, want := range map[string]int{"a": 0, "b": 1, "c": 2} {
		got, ok := tm.Index(name)
		if !ok || got != want {
			t.Errorf("track index for %q = %d (ok=%v), want %d", name, got, ok, want)
		}
	}

	rel1, ok := e.RelationOf(eq1)
	if !ok || rel1.Tag != Eq || rel1.Left.Tag != StringVar || rel1.Right.Tag != StringVar {
		t.Errorf("(= a b): got %v", rel1)
	}

	rel2, ok := e.RelationOf(beginsX)
	if !ok || rel2.Tag != Begins || rel2.Left.Variable != "a" || rel2.Right.Tag != StringConstant {
		t.Errorf("(begins a \"x\"): got %v", rel2)
	}

	rel3, ok := e.RelationOf(eq2)
	if !ok || rel3.Tag != Eq {
		t.Fatalf("(= a (concat c \"y\")): got %v", rel3)
	}

	if rel3.Left.Tag != StringVar || rel3.Left.Variable != "a" {
		t.Errorf("expected left child StringVar a, got %v", rel3.Left)
	}

	if rel3.Right.Tag != ConcatVarConstant || rel3.Right.Variable != "c" || rel3.Right.Payload != "y" {
		t.Errorf("expected right child CONCAT_VAR_CONSTANT(c, \"y\"), got %v", rel3.Right)
	}
}

// TestEqualityAgainstBareConstantIsRejected reproduces (= a "literal"): the
// right side is a bare TERMCONSTANT rather than a concat, so the pair is
// rejected outright and "a" is never registered.
func TestEqualityAgainstBareConstantIsRejected(t *testing.T) {
	a := qvar("a")
	eqLit := cmp(ast.Eq, a, strConst("literal"))

	symbols := newFakeSymbols("a")
	e := NewExtractor(symbols, nil)

	if rel := e.Extract(eqLit); rel != nil {
		t.Fatalf("expected (= a \"literal\") to be rejected, got %v", rel)
	}

	if _, ok := e.RelationOf(eqLit); ok {
		t.Errorf("expected no relation recorded for the rejected term")
	}

	if _, ok := e.ComponentOf("a"); ok {
		t.Errorf("expected \"a\" not to be registered in any track map")
	}
}
