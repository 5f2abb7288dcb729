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

// Package unary bridges semilinear.Set to DFAs over a singleton alphabet,
// the representation length-analysis of strings needs: a unary automaton's
// accepted positions are exactly a semilinear set of naturals.
package unary

import (
	"math/big"

	"github.com/abc-solver/core/pkg/semilinear"
)

// Automaton is a DFA over the singleton alphabet {a}: an initial chain of
// CycleHead states followed by a cycle of length Period (Period==0 means no
// cycle, just a finite chain). Position i (the state reached after reading
// a^i, for i < len(accept)) is accepting iff accept[i].
type Automaton struct {
	cycleHead int
	period    int
	accept    []bool
}

// FromSemilinearSet builds the unary automaton whose accepted lengths are
// exactly s: a chain of CycleHead states followed by a cycle of length
// Period, with position i accepting iff i ∈ Constants or (i ≥ CycleHead ∧
// (i−CycleHead) mod Period ∈ PeriodicConstants). For a finite set (Period
// 0) the automaton is a chain alone, long enough to reach the largest
// constant, and CycleHead() reports that chain's length.
func FromSemilinearSet(s *semilinear.Set) *Automaton {
	n := int(s.CycleHead) + int(s.Period)
	if s.Period == 0 {
		if m, ok := s.Constants.Max(); ok {
			n = int(m) + 1
		}
	}

	if n == 0 {
		n = 1
	}

	head := int(s.CycleHead)
	if s.Period == 0 {
		head = n
	}

	accept := make([]bool, n)

	for i := range accept {
		accept[i] = s.Contains(uint64(i))
	}

	return &Automaton{cycleHead: head, period: int(s.Period), accept: accept}
}

// ToSemilinearSet recovers the semilinear set of positions this automaton
// accepts, assuming it was built in the canonical chain-then-cycle shape
// FromSemilinearSet produces (every unary automaton reachable through this
// package has that shape; one built by hand with irregular cycle content
// would not round-trip exactly, but none is constructed that way here).
func (a *Automaton) ToSemilinearSet() *semilinear.Set {
	out := &semilinear.Set{}

	if a.period == 0 {
		for i, ok := range a.accept {
			if ok {
				out.Constants.Insert(uint64(i))
			}
		}

		return out
	}

	// Period first: canonicalization resets CycleHead while Period is 0.
	out.SetPeriod(uint64(a.period))
	out.SetCycleHead(uint64(a.cycleHead))

	for i, ok := range a.accept {
		if !ok {
			continue
		}

		if i < a.cycleHead {
			out.Constants.Insert(uint64(i))
		} else {
			out.AddPeriodicConstant(uint64((i - a.cycleHead) % a.period))
		}
	}

	return out
}

// NumStates reports CycleHead+Period for a periodic set, or the chain length
// (largest constant + 1, and 1 for the empty set) for a finite one, matching
// the shape FromSemilinearSet constructs.
func (a *Automaton) NumStates() int { return len(a.accept) }

// CycleHead returns the length of the initial, non-repeating chain.
func (a *Automaton) CycleHead() int { return a.cycleHead }

// Period returns the cycle length, or 0 if this automaton has no cycle.
func (a *Automaton) Period() int { return a.period }

// Accepts reports whether position i (the state after reading a^i) is
// accepting, following the chain-then-cycle structure for i beyond the
// explicit table.
func (a *Automaton) Accepts(i int) bool {
	if i < len(a.accept) {
		return a.accept[i]
	}

	if a.period == 0 {
		return false
	}

	return a.accept[a.cycleHead+(i-a.cycleHead)%a.period]
}

// Universal returns the automaton accepting every length, i.e. the
// semilinear set ℕ itself: cycle head 0, period 1, periodic constant {0}.
func Universal() *Automaton {
	return &Automaton{period: 1, accept: []bool{true}}
}

// ModelCount returns the exact number of accepted lengths in [0, n], which
// is always finite to compute from the periodic structure even though the
// semilinear set itself may be infinite: the chain prefix is counted
// directly, the cyclic tail by counting, per residue, how many full
// periods fit below n.
func (a *Automaton) ModelCount(n uint) *big.Int {
	count := big.NewInt(0)

	for i := 0; i < a.cycleHead && uint(i) <= n; i++ {
		if a.accept[i] {
			count.Add(count, big.NewInt(1))
		}
	}

	if a.period == 0 || uint(a.cycleHead) > n {
		return count
	}

	for r := 0; r < a.period; r++ {
		pos := a.cycleHead + r
		if !a.accept[pos] || uint(pos) > n {
			continue
		}

		steps := (int(n) - pos) / a.period
		count.Add(count, big.NewInt(int64(steps+1)))
	}

	return count
}
