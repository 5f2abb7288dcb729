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
	log "github.com/sirupsen/logrus"

	"github.com/abc-solver/core/pkg/ast"
)

// Extractor walks an assertion's term tree, building one Relation per
// relational node that survives its rejection rules and one TrackMap per
// and-component the caller's ComponentOracle recognizes.
type Extractor struct {
	symbols ast.SymbolTable
	oracle  ast.ComponentOracle

	relations      map[ast.Term]*Relation
	variableParent map[string]ast.Term
	trackMaps      map[ast.Term]*TrackMap
	componentOrder []ast.Term
}

// NewExtractor returns an Extractor that resolves variable sorts via
// symbols and recognizes and-components via oracle.
func NewExtractor(symbols ast.SymbolTable, oracle ast.ComponentOracle) *Extractor {
	return &Extractor{
		symbols:        symbols,
		oracle:         oracle,
		relations:      make(map[ast.Term]*Relation),
		variableParent: make(map[string]ast.Term),
		trackMaps:      make(map[ast.Term]*TrackMap),
	}
}

// Extract walks root and returns the Relation it resolves to, or nil if
// root is not itself a relational node (e.g. a bare and/or, or a rejected
// comparison).
func (e *Extractor) Extract(root ast.Term) *Relation {
	rel := e.visit(root, nil)

	log.WithFields(log.Fields{"components": len(e.componentOrder)}).Debug("relate: extraction complete")

	return rel
}

// TrackMapFor returns the track map assigned to component, if the walk
// ever registered a variable under it.
func (e *Extractor) TrackMapFor(component ast.Term) (*TrackMap, bool) {
	tm, ok := e.trackMaps[component]
	return tm, ok
}

// RelationOf returns the Relation built for t during the walk, if any.
func (e *Extractor) RelationOf(t ast.Term) (*Relation, bool) {
	rel, ok := e.relations[t]
	return rel, ok
}

// ComponentOf returns the and-component a variable was first registered
// under.
func (e *Extractor) ComponentOf(name string) (ast.Term, bool) {
	t, ok := e.variableParent[name]
	return t, ok
}

// Components returns every distinct component (and-term, or a bare
// relational term acting as its own implicit component) a track map was
// ever assigned to, in first-encountered order.
func (e *Extractor) Components() []ast.Term {
	return append([]ast.Term(nil), e.componentOrder...)
}

func (e *Extractor) visit(t ast.Term, component ast.Term) *Relation {
	if t == nil {
		return nil
	}

	var rel *Relation

	switch t.Type() {
	case ast.And:
		e.visitAnd(t, component)
	case ast.Or:
		e.visitOr(t)
	case ast.Not:
		rel = e.visit(t.LeftTerm(), component)
	case ast.Eq, ast.Neq, ast.Lt, ast.Le, ast.Gt, ast.Ge:
		rel = e.visitComparison(t, component)
	case ast.Begins, ast.NotBegins:
		rel = e.visitBeginsLike(t, component)
	case ast.Qualidentifier:
		rel = e.visitVar(t, component)
	case ast.TermConstant:
		rel = e.visitConstant(t)
	case ast.Concat:
		rel = e.buildConcatVarConstant(t, component)
	}

	if rel != nil {
		e.relations[t] = rel
	}

	return rel
}

// visitAnd marks t the current component (when the oracle recognizes it as
// one) and propagates that component — a non-owning back-reference, not a
// copy — to every child.
func (e *Extractor) visitAnd(t ast.Term, component ast.Term) {
	next := component

	if e.oracle != nil && e.oracle.IsComponent(t) {
		next = t
	}

	for _, child := range t.TermList() {
		e.visit(child, next)
	}
}

// visitOr treats every disjunct as its own component: no track map carries
// across from the Or, or from whatever component enclosed it.
func (e *Extractor) visitOr(t ast.Term) {
	for _, child := range t.TermList() {
		e.visit(child, nil)
	}
}

// visitComparison implements §4.5's equality/disequality/ordering rule:
// reject when neither side is a bare variable reference, when an equality's side is
// a bare constant (a variable-constant equality is only ever expressed
// through a concat, never a direct STRING_CONSTANT operand — see
// buildConcatVarConstant), or when an LE compares two concats outright.
func (e *Extractor) visitComparison(t ast.Term, component ast.Term) *Relation {
	left := t.LeftTerm()
	right := t.RightTerm()
	kind := t.Type()

	isEqKind := kind == ast.Eq || kind == ast.Neq

	if isEqKind && (left.Type() == ast.TermConstant || right.Type() == ast.TermConstant) {
		return nil
	}

	if left.Type() != ast.Qualidentifier && right.Type() != ast.Qualidentifier {
		return nil
	}

	if kind == ast.Le && left.Type() == ast.Concat && right.Type() == ast.Concat {
		return nil
	}

	effective := component
	if effective == nil {
		effective = t
	}

	leftRel := e.visit(left, effective)
	rightRel := e.visit(right, effective)

	if leftRel == nil && rightRel == nil {
		return nil
	}

	return &Relation{Tag: comparisonTag(kind), Left: leftRel, Right: rightRel}
}

func (e *Extractor) visitBeginsLike(t ast.Term, component ast.Term) *Relation {
	subject := t.SubjectTerm()
	if subject.Type() != ast.Qualidentifier {
		return nil
	}

	effective := component
	if effective == nil {
		effective = t
	}

	subjRel := e.visit(subject, effective)
	if subjRel == nil {
		return nil
	}

	searchRel := e.visit(t.SearchTerm(), effective)

	tag := Begins
	if t.Type() == ast.NotBegins {
		tag = NotBegins
	}

	return &Relation{Tag: tag, Left: subjRel, Right: searchRel}
}

func (e *Extractor) visitVar(t ast.Term, component ast.Term) *Relation {
	name, ok := t.VariableRef()
	if !ok {
		return nil
	}

	v, found := e.symbols.GetVariable(name)
	if !found || v.Sort() != ast.String {
		return nil
	}

	e.registerVariable(name, component)

	return &Relation{Tag: StringVar, Variable: name}
}

func (e *Extractor) visitConstant(t ast.Term) *Relation {
	text, kind := t.ConstantPayload()
	if kind == ast.RegexLiteral {
		return &Relation{Tag: Regex, Payload: text}
	}

	return &Relation{Tag: StringConstant, Payload: text}
}

// buildConcatVarConstant inspects a Concat node's own children for the
// var+constant shape and, if found, collapses it into a single
// ConcatVarConstant leaf and registers the variable. This runs for every
// Concat node the walk reaches, not only those under an equality — a
// concat's shape alone decides whether it collapses, independent of its
// parent's comparison kind. A concat that doesn't have that shape falls
// back to plain structural recursion, returning a ConcatVarConstant node
// whose Left and Right are its children's relations.
func (e *Extractor) buildConcatVarConstant(t ast.Term, component ast.Term) *Relation {
	left := t.LeftTerm()
	right := t.RightTerm()

	varTerm, constTerm, ok := pickVarConstPair(left, right)
	if !ok {
		leftRel := e.visit(left, component)
		rightRel := e.visit(right, component)

		if leftRel == nil && rightRel == nil {
			return nil
		}

		return &Relation{Tag: ConcatVarConstant, Left: leftRel, Right: rightRel}
	}

	name, _ := varTerm.VariableRef()

	v, found := e.symbols.GetVariable(name)
	if !found || v.Sort() != ast.String {
		return nil
	}

	text, _ := constTerm.ConstantPayload()

	e.registerVariable(name, component)

	return &Relation{Tag: ConcatVarConstant, Variable: name, Payload: text}
}

func pickVarConstPair(left, right ast.Term) (varTerm, constTerm ast.Term, ok bool) {
	if left.Type() == ast.Qualidentifier && right.Type() == ast.TermConstant {
		return left, right, true
	}

	if right.Type() == ast.Qualidentifier && left.Type() == ast.TermConstant {
		return right, left, true
	}

	return nil, nil, false
}

// registerVariable records component as name's parent the first time it is
// seen, then tracks it in component's track map.
func (e *Extractor) registerVariable(name string, component ast.Term) int {
	if _, exists := e.variableParent[name]; !exists {
		e.variableParent[name] = component
	}

	tm := e.trackMaps[component]
	if tm == nil {
		tm = NewTrackMap()
		e.trackMaps[component] = tm
		e.componentOrder = append(e.componentOrder, component)
	}

	return tm.Track(name)
}

func comparisonTag(k ast.Kind) Tag {
	switch k {
	case ast.Eq:
		return Eq
	case ast.Neq:
		return Neq
	case ast.Lt:
		return Lt
	case ast.Le:
		return Le
	case ast.Gt:
		return Gt
	case ast.Ge:
		return Ge
	default:
		return -1
	}
}
