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
	log "github.com/sirupsen/logrus"

	"github.com/abc-solver/core/pkg/ast"
	"github.com/abc-solver/core/pkg/intauto"
	"github.com/abc-solver/core/pkg/relate"
)

// Solve walks root once to extract string-relational components via
// pkg/relate, walks it a second time to find integer-sorted comparisons via
// intWalker, and merges the two into one ComponentResult per and-component,
// in first-encountered order (string components first, any integer-only
// component appended after). Per spec §4.6, a comparison that is neither a
// string relation pkg/relate recognizes nor a var/var or var/constant
// integer comparison is simply absent from the result — it is left for the
// surrounding solver to handle, not an error here.
func Solve(root ast.Term, symbols ast.SymbolTable, oracle ast.ComponentOracle) ([]ComponentResult, error) {
	extractor := relate.NewExtractor(symbols, oracle)
	extractor.Extract(root)

	iw := newIntWalker(symbols, oracle)
	if err := iw.walk(root, nil); err != nil {
		return nil, err
	}

	order := extractor.Components()
	seen := make(map[ast.Term]bool, len(order))

	for _, c := range order {
		seen[c] = true
	}

	for _, c := range iw.order {
		if !seen[c] {
			order = append(order, c)
			seen[c] = true
		}
	}

	results := make([]ComponentResult, 0, len(order))

	for _, component := range order {
		tracks, _ := extractor.TrackMapFor(component)

		var integer []*intauto.Automaton
		if automata, ok := iw.automata[component]; ok {
			integer = automata
		}

		results = append(results, ComponentResult{
			Component: component,
			Tracks:    tracks,
			Bundle:    Bundle{Integer: integer},
		})
	}

	log.WithFields(log.Fields{"components": len(results)}).Debug("orchestrate: solve complete")

	return results, nil
}

// intWalker mirrors relate.Extractor's and/or component-tracking: it
// recognizes Eq/Neq/Lt/Le/Gt/Ge comparisons whose operands resolve, via the
// symbol table, to int-sorted variables (or an int-sorted variable against
// a base-10 integer literal), turns each into an arith.Formula, and bucket
// its produced automaton under the nearest enclosing and-component the
// oracle recognizes — the same bucketing relate.Extractor uses for track
// maps, so the two walks agree on component identity.
type intWalker struct {
	symbols  ast.SymbolTable
	oracle   ast.ComponentOracle
	automata map[ast.Term][]*intauto.Automaton
	order    []ast.Term
}

func newIntWalker(symbols ast.SymbolTable, oracle ast.ComponentOracle) *intWalker {
	return &intWalker{
		symbols:  symbols,
		oracle:   oracle,
		automata: make(map[ast.Term][]*intauto.Automaton),
	}
}

func (w *intWalker) walk(t ast.Term, component ast.Term) error {
	if t == nil {
		return nil
	}

	switch t.Type() {
	case ast.And:
		next := component

		if w.oracle != nil && w.oracle.IsComponent(t) {
			next = t
		}

		for _, child := range t.TermList() {
			if err := w.walk(child, next); err != nil {
				return err
			}
		}
	case ast.Or:
		for _, child := range t.TermList() {
			if err := w.walk(child, nil); err != nil {
				return err
			}
		}
	case ast.Not:
		return w.walk(t.LeftTerm(), component)
	case ast.Eq, ast.Neq, ast.Lt, ast.Le, ast.Gt, ast.Ge:
		return w.visitComparison(t, component)
	}

	return nil
}

func (w *intWalker) visitComparison(t ast.Term, component ast.Term) error {
	formula, ok := buildArithFormula(t, w.symbols)
	if !ok {
		return nil
	}

	automaton, err := intauto.FromComparison(formula)
	if err != nil {
		return err
	}

	effective := component
	if effective == nil {
		effective = t
	}

	if _, exists := w.automata[effective]; !exists {
		w.order = append(w.order, effective)
	}

	w.automata[effective] = append(w.automata[effective], automaton)

	return nil
}
