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
	"github.com/abc-solver/core/pkg/arith"
	"github.com/abc-solver/core/pkg/kernel"
)

// Complement negates the DFA and dualizes the formula, per §4.3.5
// "complement() negates the DFA and updates the formula to its logical
// negation".
func (a *Automaton) Complement() *Automaton {
	neg := a.dfa.Negate()

	out := &Automaton{dfa: neg, formula: a.formula.Negate(), variables: append([]string(nil), a.variables...)}

	return out.normalize()
}

// sameOrdering reports whether a and other share a variable ordering,
// i.e. are safe to Product together.
func (a *Automaton) sameOrdering(other *Automaton) bool {
	if len(a.variables) != len(other.variables) {
		return false
	}

	for i, v := range a.variables {
		if other.variables[i] != v {
			return false
		}
	}

	return true
}

// Intersect computes the conjunction of a and other's languages. Both
// operands must share a variable ordering; §4.3.5 says "intersect/union
// refuse to combine automata whose variable orderings differ" — realized
// here as ErrOrderingMismatch rather than a panic.
func (a *Automaton) Intersect(other *Automaton) (*Automaton, error) {
	if !a.sameOrdering(other) {
		return nil, &ErrOrderingMismatch{Left: a.variables, Right: other.variables}
	}

	dfa, err := a.dfa.Product(other.dfa, kernel.AND)
	if err != nil {
		return nil, err
	}

	out := &Automaton{
		dfa:       dfa,
		formula:   arith.Formula{Kind: arith.Intersect, Constant: bigZero(), Names: append([]string(nil), a.variables...), Coeffs: zeroCoeffs(len(a.variables))},
		variables: append([]string(nil), a.variables...),
	}

	return out.normalize(), nil
}

// Union computes the disjunction of a and other's languages.
func (a *Automaton) Union(other *Automaton) (*Automaton, error) {
	if !a.sameOrdering(other) {
		return nil, &ErrOrderingMismatch{Left: a.variables, Right: other.variables}
	}

	dfa, err := a.dfa.Product(other.dfa, kernel.OR)
	if err != nil {
		return nil, err
	}

	out := &Automaton{
		dfa:       dfa,
		formula:   arith.Formula{Kind: arith.Union, Constant: bigZero(), Names: append([]string(nil), a.variables...), Coeffs: zeroCoeffs(len(a.variables))},
		variables: append([]string(nil), a.variables...),
	}

	return out.normalize(), nil
}
