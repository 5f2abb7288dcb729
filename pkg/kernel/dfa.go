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
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/abc-solver/core/pkg/util/bitword"
)

// state holds a materialized per-mask transition table: delta[mask] is the
// successor state on the numVars-bit word equal to mask (MSB-first, per
// bitword.FromMask).
type state struct {
	delta  []int
	accept bool
}

func (s *state) step(w bitword.Word) int {
	return s.delta[w.Uint64()]
}

// DFA is an immutable, explicit-state deterministic finite automaton built
// by Builder.Build.  Every structural transformation (Minimize, Product,
// Project, ReplaceIndices, Negate) returns a new DFA; the receiver is never
// mutated (spec §3 "Lifecycle").
type DFA struct {
	numVars int
	states  []state
	initial int

	closeOnce sync.Once
}

// NumVars reports the alphabet width (number of tracked variables).
func (d *DFA) NumVars() int { return d.numVars }

// NumStates reports the number of states, including the sink.
func (d *DFA) NumStates() int { return len(d.states) }

// Initial returns the initial state index.
func (d *DFA) Initial() int { return d.initial }

// WithInitial returns a copy of d with a different initial state.
func (d *DFA) WithInitial(s int) *DFA {
	c := d.Copy()
	c.initial = s

	return c
}

// Accepts reports whether state s is accepting.
func (d *DFA) Accepts(s int) bool { return d.states[s].accept }

// Step returns the state reached from s on word w.
func (d *DFA) Step(s int, w bitword.Word) int { return d.states[s].step(w) }

// newFromStates constructs a DFA from already-materialized states,
// acquiring a fresh reference on the shared BDD manager.  Used internally
// by Minimize, Product, Project and ReplaceIndices, all of which compute
// well-formed transition tables by construction and so skip Builder's
// overlap validation.
func newFromStates(numVars int, states []state, initial int) (*DFA, error) {
	if _, err := global.acquire(numVars); err != nil {
		return nil, err
	}

	return &DFA{numVars: numVars, states: states, initial: initial}, nil
}

// Close releases this DFA's hold on the shared BDD manager.  Idempotent.
func (d *DFA) Close() {
	d.closeOnce.Do(global.release)
}

// Copy performs a deep copy, acquiring its own reference on the shared BDD
// manager (spec §3 "Clones perform a deep copy").
func (d *DFA) Copy() *DFA {
	if _, err := global.acquire(d.numVars); err != nil {
		// Acquiring a reference for a variable count already in use by the
		// source DFA cannot itself violate the growth invariant.
		panic(err)
	}

	states := make([]state, len(d.states))
	for i, s := range d.states {
		states[i] = state{
			delta:  append([]int(nil), s.delta...),
			accept: s.accept,
		}
	}

	return &DFA{numVars: d.numVars, states: states, initial: d.initial}
}

// Negate returns the DFA accepting the complement language: since d is
// already deterministic and total, this flips every state's acceptance bit
// and changes nothing else.
func (d *DFA) Negate() *DFA {
	c := d.Copy()
	for i := range c.states {
		c.states[i].accept = !c.states[i].accept
	}

	return c
}

// reachableFrom returns the set of state indices reachable from start,
// following the transition table on every concrete word.
func (d *DFA) reachableFrom(start int) *bitset.BitSet {
	seen := bitset.New(uint(len(d.states)))
	seen.Set(uint(start))
	queue := []int{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, tgt := range d.successors(cur) {
			if !seen.Test(uint(tgt)) {
				seen.Set(uint(tgt))
				queue = append(queue, tgt)
			}
		}
	}

	return seen
}

// successors returns the distinct states reachable from s in one step.
func (d *DFA) successors(s int) []int {
	seen := make(map[int]bool)
	var out []int

	for _, tgt := range d.states[s].delta {
		if !seen[tgt] {
			seen[tgt] = true
			out = append(out, tgt)
		}
	}

	return out
}

// IsEmpty reports whether no accepting state is reachable from the initial
// state. It runs a BFS over every state reachable from the initial state
// and then checks their acceptance; for a minimized DFA with an empty
// language that reachable set is the single sink state.
func (d *DFA) IsEmpty() bool {
	reach := d.reachableFrom(d.initial)

	for i := range d.states {
		if reach.Test(uint(i)) && d.states[i].accept {
			return false
		}
	}

	return true
}

// Reachable returns the sorted list of state indices reachable from the
// initial state.
func (d *DFA) Reachable() []int {
	reach := d.reachableFrom(d.initial)

	out := make([]int, 0, reach.Count())
	for i := uint(0); i < uint(len(d.states)); i++ {
		if reach.Test(i) {
			out = append(out, int(i))
		}
	}

	return out
}
