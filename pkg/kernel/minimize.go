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

// Minimize returns the minimal DFA equivalent to d, by Moore's
// partition-refinement algorithm restricted to states reachable from the
// initial state.  Unreachable states (including every exception target
// that is never actually taken) are dropped first, so the sink collapses
// into a single absorbing class exactly when every unreachable-to-accept
// path already does (spec §4.3.6: "the sink is preserved as a unique
// non-accepting absorbing state").
func (d *DFA) Minimize() *DFA {
	reach := d.Reachable()
	old2new := make(map[int]int, len(reach))

	for i, s := range reach {
		old2new[s] = i
	}

	n := len(reach)
	class := make([]int, n)

	for i, s := range reach {
		if d.states[s].accept {
			class[i] = 1
		}
	}

	changed := true
	for changed {
		changed = false

		// signature of a local state: (class, [class of successor on every mask])
		type key struct {
			cls  int
			succ string
		}

		seen := make(map[key]int)
		next := make([]int, n)

		for i, s := range reach {
			succSig := make([]byte, 0, len(d.states[s].delta)*4)

			for _, m := range d.states[s].delta {
				local, ok := old2new[m]
				if !ok {
					// m unreachable from the initial state; cannot be
					// reached again, so its class is irrelevant — use a
					// sentinel.
					local = -1
				} else {
					local = class[local]
				}

				succSig = append(succSig, byte(local), byte(local>>8), byte(local>>16), byte(local>>24))
			}

			k := key{class[i], string(succSig)}

			id, ok := seen[k]
			if !ok {
				id = len(seen)
				seen[k] = id
			}

			next[i] = id
		}

		for i := range class {
			if class[i] != next[i] {
				changed = true
			}
		}

		class = next
	}

	// Build one representative per class.
	repOf := make(map[int]int)
	classOrder := make([]int, 0)

	for i := range reach {
		if _, ok := repOf[class[i]]; !ok {
			repOf[class[i]] = len(classOrder)
			classOrder = append(classOrder, i)
		}
	}

	states := make([]state, len(classOrder))

	for newIdx, localRep := range classOrder {
		oldState := d.states[reach[localRep]]
		delta := make([]int, len(oldState.delta))

		for m, tgt := range oldState.delta {
			local, ok := old2new[tgt]
			if !ok {
				// Target unreachable: route to this same class's
				// representative is unsound in general, but such a
				// transition can never be taken from a reachable state, so
				// any valid index is safe. Route to self.
				delta[m] = newIdx
				continue
			}

			delta[m] = repOf[class[local]]
		}

		states[newIdx] = state{delta: delta, accept: oldState.accept}
	}

	initialLocal := old2new[d.initial]
	initialClass := repOf[class[initialLocal]]

	out, err := newFromStates(d.numVars, states, initialClass)
	if err != nil {
		panic(err)
	}

	return out
}
