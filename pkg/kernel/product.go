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
package kernel

import "fmt"

// pairKey identifies a reachable (left, right) state pair during the
// on-the-fly product construction.
type pairKey struct{ left, right int }

// Product combines d and other under the given boolean combinator,
// exploring only the reachable product states (spec §4.3.5: "intersect/
// union refuse to combine automata whose variable orderings differ" — here
// realized as a NumVars mismatch, since variable ordering is encoded in bit
// position and this facade has no variable names of its own).
func (d *DFA) Product(other *DFA, op Combinator) (*DFA, error) {
	if d.numVars != other.numVars {
		return nil, fmt.Errorf("kernel: cannot combine automata with %d and %d variables", d.numVars, other.numVars)
	}

	index := map[pairKey]int{}
	order := []pairKey{}

	start := pairKey{d.initial, other.initial}
	index[start] = 0
	order = append(order, start)

	states := []state{}

	for i := 0; i < len(order); i++ {
		pk := order[i]

		ls, rs := d.states[pk.left], other.states[pk.right]

		var accept bool

		switch op {
		case AND:
			accept = ls.accept && rs.accept
		case OR:
			accept = ls.accept || rs.accept
		default:
			return nil, fmt.Errorf("kernel: unknown combinator %d", op)
		}

		delta := make([]int, len(ls.delta))

		for m := range ls.delta {
			npk := pairKey{ls.delta[m], rs.delta[m]}

			j, ok := index[npk]
			if !ok {
				j = len(order)
				index[npk] = j
				order = append(order, npk)
			}

			delta[m] = j
		}

		states = append(states, state{delta: delta, accept: accept})
	}

	return newFromStates(d.numVars, states, 0)
}
