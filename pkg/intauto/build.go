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
package intauto

import (
	"math/big"

	"github.com/abc-solver/core/pkg/arith"
	"github.com/abc-solver/core/pkg/util/bitword"
)

// carryState is one state of the carry-propagation automaton shared by all
// six comparison constructors: a running carry-difference label plus a
// flavor bit distinguishing "this visit completes a suffix" (current) from
// "this visit continues" (reflected), and a dedicated sink flag for the
// single absorbing non-accepting state EQ's odd-sum transitions collapse
// into.
type carryState struct {
	label  int64
	flavor bool
	sink   bool
}

// carryGraph accumulates carryStates discovered by BFS, in discovery order,
// so the first state (the initial one) always lands at index 0 — the
// convention buildFromDelta and kernel.Builder.Build share.
type carryGraph struct {
	index map[carryState]int
	order []carryState
}

func newCarryGraph(initial carryState) *carryGraph {
	g := &carryGraph{index: map[carryState]int{initial: 0}, order: []carryState{initial}}

	return g
}

func (g *carryGraph) resolve(s carryState) int {
	if j, ok := g.index[s]; ok {
		return j
	}

	j := len(g.order)
	g.index[s] = j
	g.order = append(g.order, s)

	return j
}

// floorDiv2 returns q such that s = 2q + r, 0 ≤ r < 2 (Euclidean floor
// division by 2), matching §4.3.2's "s/2 for s≥0, else ⌊(s−1)/2⌋" rule for
// both signs in one formula.
func floorDiv2(s int64) int64 {
	q := s / 2
	if s%2 != 0 && s < 0 {
		q--
	}

	return q
}

// buildCarryAutomaton runs the shared carry-state construction: eq selects
// the EQ schema (odd sums fall into a sink, acceptance is label=0 with the
// current flavor); otherwise the LT schema is used (every sum has a
// successor, acceptance is carried directly by the flavor bit recording
// the emitted carry bit). Re-normalization to a label fixed point (spec
// §4.3.2) happens implicitly: Minimize, always run by FromComparison right
// after, collapses any chain of bisimilar states the construction leaves
// behind.
func buildCarryAutomaton(f arith.Formula, eq bool) (*Automaton, error) {
	numVars := len(f.Coeffs)

	g := newCarryGraph(carryState{label: f.Constant.Int64(), flavor: false})

	rows := make([]deltaRow, 0, 1)

	for idx := 0; idx < len(g.order); idx++ {
		s := g.order[idx]

		row := deltaRow{delta: make([]int, 1<<uint(numVars))}

		switch {
		case s.sink:
			for m := range row.delta {
				row.delta[m] = idx
			}

			row.accept = false
		case eq:
			row.accept = !s.sink && s.label == 0 && s.flavor

			bitword.AllMasks(uint(numVars), func(mask uint64) bool {
				sum := s.label + f.CountOnes(mask).Int64()

				var next carryState
				if sum%2 == 0 {
					next = carryState{label: sum / 2, flavor: !s.flavor}
				} else {
					next = carryState{sink: true}
				}

				row.delta[mask] = g.resolve(next)

				return true
			})
		default:
			row.accept = s.flavor

			bitword.AllMasks(uint(numVars), func(mask uint64) bool {
				sum := s.label + f.CountOnes(mask).Int64()
				half := floorDiv2(sum)
				bit := sum - 2*half

				row.delta[mask] = g.resolve(carryState{label: half, flavor: bit == 1})

				return true
			})
		}

		rows = append(rows, row)
	}

	dfa, err := buildFromDelta(numVars, rows)
	if err != nil {
		return nil, err
	}

	names := append([]string(nil), f.Names...)

	a := &Automaton{dfa: dfa, formula: f, variables: names}

	return a.normalize(), nil
}

// normalize minimizes the automaton in place (conceptually; it returns a
// new *Automaton sharing the same formula/variables) and is called after
// every structural construction, per §4.3.6 "minimization is applied after
// every structural transformation".
func (a *Automaton) normalize() *Automaton {
	min := a.dfa.Minimize()
	a.dfa.Close()

	return &Automaton{dfa: min, formula: a.formula, variables: a.variables}
}

// FromComparison builds the binary-integer automaton for f, dispatching to
// the matching comparison schema. NEQ is built as the complement of EQ;
// LE, GT and GE are built by rewriting f and delegating to LT, exactly as
// §4.3.2 describes.
func FromComparison(f arith.Formula) (*Automaton, error) {
	simplified := cloneFormula(f)

	if err := simplified.Simplify(); err != nil {
		return emptyAutomaton(f), nil
	}

	switch simplified.Kind {
	case arith.EQ:
		return buildCarryAutomaton(simplified, true)
	case arith.NEQ:
		eqForm := simplified
		eqForm.Kind = arith.EQ

		eq, err := buildCarryAutomaton(eqForm, true)
		if err != nil {
			return nil, err
		}

		return eq.Complement(), nil
	case arith.LT:
		return buildCarryAutomaton(simplified, false)
	case arith.LE:
		// LE = LT with the constant decreased by 1 (§4.3.2).
		adjusted := simplified
		adjusted.Kind = arith.LT
		adjusted.Constant = subOne(simplified.Constant)

		return buildCarryAutomaton(adjusted, false)
	case arith.GT:
		// GT = LT applied to −formula.
		return buildCarryAutomaton(asLT(simplified.Multiply(big.NewInt(-1))), false)
	case arith.GE:
		// GE = LT applied to −formula with constant decreased by 1.
		neg := asLT(simplified.Multiply(big.NewInt(-1)))
		neg.Constant = subOne(neg.Constant)

		return buildCarryAutomaton(neg, false)
	default:
		return nil, &ErrUnsupportedKind{Kind: f.Kind}
	}
}

// cloneFormula deep-copies a formula's big.Int fields so Simplify can
// mutate them without aliasing the caller's values.
func cloneFormula(f arith.Formula) arith.Formula {
	coeffs := make([]*big.Int, len(f.Coeffs))
	for i, c := range f.Coeffs {
		coeffs[i] = new(big.Int).Set(c)
	}

	return arith.Formula{
		Kind:     f.Kind,
		Constant: new(big.Int).Set(f.Constant),
		Names:    append([]string(nil), f.Names...),
		Coeffs:   coeffs,
	}
}

// asLT forces a formula's Kind to LT, regardless of what Multiply's
// direction-flip left it as; Multiply(-1) on an LT formula already yields
// GT, so this undoes that flip to get back to the LT schema GT/GE build on.
func asLT(f arith.Formula) arith.Formula {
	f.Kind = arith.LT

	return f
}

// emptyAutomaton returns the degenerate automaton for a formula Simplify
// proved inconsistent: a single non-accepting sink state, per §7
// "inconsistent input ... return the empty-language automaton".
func emptyAutomaton(f arith.Formula) *Automaton {
	numVars := len(f.Coeffs)

	row := deltaRow{delta: make([]int, 1<<uint(numVars)), accept: false}
	for m := range row.delta {
		row.delta[m] = 0
	}

	dfa, err := buildFromDelta(numVars, []deltaRow{row})
	if err != nil {
		// A single self-looping state can never fail exception validation.
		panic(err)
	}

	return &Automaton{dfa: dfa, formula: f, variables: append([]string(nil), f.Names...)}
}
