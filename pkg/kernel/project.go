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

import (
	"fmt"
	"sort"

	"github.com/abc-solver/core/pkg/util/bitword"
)

// Project existentially eliminates the variable at MSB-first bit index i,
// returning a DFA over the remaining numVars-1 bits that accepts a word w'
// iff some value of the dropped bit makes the original word accepted (spec
// §4.3.3: "project_to drops a variable, existentially quantifying it out").
//
// The dropped variable is eliminated by subset construction: each state of
// the result is the set of original states reachable by either value of the
// dropped bit, built lazily on the reachable frontier rather than over the
// full powerset.
func (d *DFA) Project(i int) (*DFA, error) {
	if i < 0 || i >= d.numVars {
		return nil, fmt.Errorf("kernel: bit index %d out of range [0,%d)", i, d.numVars)
	}

	newVars := d.numVars - 1

	index := map[string]int{}
	order := [][]int{}

	start := uniqueSorted([]int{d.initial})
	index[subsetKey(start)] = 0
	order = append(order, start)

	states := []state{}

	for idx := 0; idx < len(order); idx++ {
		subset := order[idx]

		accept := false
		for _, s := range subset {
			if d.states[s].accept {
				accept = true
				break
			}
		}

		delta := make([]int, 1<<uint(newVars))

		bitword.AllMasks(uint(newVars), func(maskPrime uint64) bool {
			reduced := bitword.FromMask(maskPrime, uint(newVars))

			targets := make([]int, 0, len(subset)*2)
			for _, s := range subset {
				for _, bit := range [2]bool{false, true} {
					full := bitword.InsertBit(reduced, uint(i), bit)
					targets = append(targets, d.states[s].delta[full.Uint64()])
				}
			}

			targets = uniqueSorted(targets)

			key := subsetKey(targets)

			j, ok := index[key]
			if !ok {
				j = len(order)
				index[key] = j
				order = append(order, targets)
			}

			delta[maskPrime] = j

			return true
		})

		states = append(states, state{delta: delta, accept: accept})
	}

	return newFromStates(newVars, states, 0)
}

func uniqueSorted(xs []int) []int {
	seen := make(map[int]bool, len(xs))

	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}

	sort.Ints(out)

	return out
}

func subsetKey(xs []int) string {
	b := make([]byte, 0, len(xs)*4)
	for _, x := range xs {
		b = append(b, byte(x), byte(x>>8), byte(x>>16), byte(x>>24))
	}

	return string(b)
}
