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

import "github.com/abc-solver/core/pkg/kernel"

// successors returns the distinct states dfa can move to from s, over
// every symbol of its alphabet.
func successors(dfa *kernel.DFA, s int) []int {
	seen := make(map[int]bool)
	out := make([]int, 0, 2)

	for _, w := range allWords(dfa.NumVars()) {
		t := dfa.Step(s, w)
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	return out
}

// tarjanState carries one run of Tarjan's SCC algorithm.
type tarjanState struct {
	dfa      *kernel.DFA
	index    []int
	lowlink  []int
	onStack  []bool
	stack    []int
	counter  int
	sccOf    []int
	sccNext  int
	sccSizes []int
	selfLoop []bool
}

// sccOf computes, for every state of dfa, the id of the strongly connected
// component it belongs to, and whether that state belongs to a nontrivial
// cycle — a component of size greater than one, or a singleton with a
// self-loop — per §4.3.4 step 1's "in_cycle" predicate.
func sccOf(dfa *kernel.DFA) (comp []int, inCycle []bool) {
	n := dfa.NumStates()

	t := &tarjanState{
		dfa:      dfa,
		index:    make([]int, n),
		lowlink:  make([]int, n),
		onStack:  make([]bool, n),
		sccOf:    make([]int, n),
		selfLoop: make([]bool, n),
	}

	for i := range t.index {
		t.index[i] = -1
	}

	for s := 0; s < n; s++ {
		for _, to := range successors(dfa, s) {
			if to == s {
				t.selfLoop[s] = true
			}
		}
	}

	for s := 0; s < n; s++ {
		if t.index[s] == -1 {
			t.strongConnect(s)
		}
	}

	inCycle = make([]bool, n)
	for s := 0; s < n; s++ {
		if t.sccSizes[t.sccOf[s]] > 1 || t.selfLoop[s] {
			inCycle[s] = true
		}
	}

	return t.sccOf, inCycle
}

func (t *tarjanState) strongConnect(v int) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++

	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range successors(t.dfa, v) {
		if t.index[w] == -1 {
			t.strongConnect(w)

			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}

	id := t.sccNext
	t.sccNext++
	t.sccSizes = append(t.sccSizes, 0)

	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		t.sccOf[w] = id
		t.sccSizes[id]++

		if w == v {
			break
		}
	}
}
