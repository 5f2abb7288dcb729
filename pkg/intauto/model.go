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

	"github.com/abc-solver/core/pkg/util/bitword"
)

// ModelCount sums, over every word length from 0 up to and including
// maxLength, the number of distinct bit-vectors of that length the
// automaton accepts. The unbounded count is typically infinite unless the
// automaton happens to be acyclic, so a length bound is always required.
func (a *Automaton) ModelCount(maxLength int) *big.Int {
	n := a.dfa.NumStates()
	words := allWords(a.NumVars())

	counts := make([]*big.Int, n)
	for i := range counts {
		counts[i] = big.NewInt(0)
	}

	counts[a.dfa.Initial()] = big.NewInt(1)

	total := big.NewInt(0)
	if a.dfa.Accepts(a.dfa.Initial()) {
		total.Add(total, big.NewInt(1))
	}

	for l := 1; l <= maxLength; l++ {
		next := make([]*big.Int, n)
		for i := range next {
			next[i] = big.NewInt(0)
		}

		for s, c := range counts {
			if c.Sign() == 0 {
				continue
			}

			for _, w := range words {
				t := a.dfa.Step(s, w)
				next[t].Add(next[t], c)
			}
		}

		counts = next

		for s, c := range counts {
			if a.dfa.Accepts(s) {
				total.Add(total, c)
			}
		}
	}

	return total
}

// Example walks a shortest accepting path and decodes it into one
// two's-complement value per tracked variable, mirroring the outer
// solver's "enumerate example models" duty for the automata this package
// builds. The second return value is false iff the automaton's language is
// empty.
func (a *Automaton) Example() (map[string]*big.Int, bool) {
	dfa := a.dfa
	initial := dfa.Initial()

	if dfa.Accepts(initial) {
		out := make(map[string]*big.Int, len(a.variables))
		for _, name := range a.variables {
			out[name] = big.NewInt(0)
		}

		return out, true
	}

	words := allWords(a.NumVars())

	visited := map[int]bool{initial: true}
	prev := make(map[int]int)
	via := make(map[int]bitword.Word)

	queue := []int{initial}
	target := -1

	for len(queue) > 0 && target == -1 {
		s := queue[0]
		queue = queue[1:]

		for _, w := range words {
			t := dfa.Step(s, w)
			if visited[t] {
				continue
			}

			visited[t] = true
			prev[t] = s
			via[t] = w

			if dfa.Accepts(t) {
				target = t
				break
			}

			queue = append(queue, t)
		}
	}

	if target == -1 {
		return nil, false
	}

	var path []bitword.Word

	for cur := target; cur != initial; cur = prev[cur] {
		path = append([]bitword.Word{via[cur]}, path...)
	}

	out := make(map[string]*big.Int, len(a.variables))

	for i, name := range a.variables {
		bits := bitword.NewWord(uint(len(path)))
		for j, w := range path {
			bits.SetBit(uint(j), w.Bit(uint(i)))
		}

		out[name] = big.NewInt(bits.TwosComplement())
	}

	return out, true
}
