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

	"github.com/abc-solver/core/pkg/util/bitword"
)

// ReplaceIndices returns a DFA equivalent to d but with its MSB-first bit
// positions permuted: mapping[p] gives the bit position in the result that
// position p occupied in d.  States and acceptance are unchanged; only the
// interpretation of the input alphabet is reindexed (spec §4.3.3: "two
// automata built over different variable orderings must be realigned before
// they can be combined").
//
// mapping must be a bijection on [0, d.numVars).
func (d *DFA) ReplaceIndices(mapping map[int]int) (*DFA, error) {
	if len(mapping) != d.numVars {
		return nil, fmt.Errorf("kernel: mapping covers %d positions, want %d", len(mapping), d.numVars)
	}

	seen := make([]bool, d.numVars)

	for p := 0; p < d.numVars; p++ {
		np, ok := mapping[p]
		if !ok || np < 0 || np >= d.numVars {
			return nil, fmt.Errorf("kernel: mapping missing or out-of-range entry for position %d", p)
		}

		if seen[np] {
			return nil, fmt.Errorf("kernel: mapping is not a bijection: position %d used twice", np)
		}

		seen[np] = true
	}

	states := make([]state, len(d.states))

	for s, old := range d.states {
		delta := make([]int, len(old.delta))

		bitword.AllMasks(uint(d.numVars), func(newMask uint64) bool {
			newWord := bitword.FromMask(newMask, uint(d.numVars))
			oldWord := bitword.NewWord(uint(d.numVars))

			for p := 0; p < d.numVars; p++ {
				oldWord.SetBit(uint(p), newWord.Bit(uint(mapping[p])))
			}

			delta[newMask] = old.delta[oldWord.Uint64()]

			return true
		})

		states[s] = state{delta: delta, accept: old.accept}
	}

	return newFromStates(d.numVars, states, d.initial)
}
