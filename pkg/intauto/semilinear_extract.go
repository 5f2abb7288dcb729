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
	"github.com/abc-solver/core/pkg/kernel"
	"github.com/abc-solver/core/pkg/semilinear"
	"github.com/abc-solver/core/pkg/util/bitword"
	"github.com/abc-solver/core/pkg/util/sortedset"
)

// membership reports whether dfa, read MSB-first with no leading zeros,
// accepts the minimal binary representation of v.
func membership(dfa *kernel.DFA, v uint64) bool {
	if v == 0 {
		return dfa.Accepts(dfa.Initial())
	}

	var bits []bool
	for n := v; n > 0; n >>= 1 {
		bits = append(bits, n&1 == 1)
	}

	s := dfa.Initial()
	for i := len(bits) - 1; i >= 0; i-- {
		s = dfa.Step(s, bitword.FromMask(boolToMask(bits[i]), 1))
	}

	return dfa.Accepts(s)
}

func boolToMask(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

// acyclicValues performs the DFS of §4.3.4 step 2: walk the automaton from
// its initial state through states outside any nontrivial SCC only, never
// revisiting a state (impossible in a cycle-free region) and recording the
// accumulated MSB-first value at every accepting state reached.
func acyclicValues(dfa *kernel.DFA, inCycle []bool) []uint64 {
	var out []uint64

	var walk func(state int, value uint64)
	walk = func(state int, value uint64) {
		if dfa.Accepts(state) {
			out = append(out, value)
		}

		for _, bit := range []uint64{0, 1} {
			next := dfa.Step(state, bitword.FromMask(bit, 1))
			if !inCycle[next] {
				walk(next, 2*value+bit)
			}
		}
	}

	walk(dfa.Initial(), 0)

	return out
}

// rangeUpTo builds the automaton accepting exactly the MSB-first binary
// encodings (leading zeros permitted) of values in [0, max].
func rangeUpTo(max uint64, name string) (*Automaton, error) {
	index := map[uint64]int{0: 0}
	order := []uint64{0}

	rows := make([]deltaRow, 0, 1)

	for idx := 0; idx < len(order); idx++ {
		v := order[idx]

		row := deltaRow{delta: make([]int, 2), accept: true}

		for _, bit := range []uint64{0, 1} {
			newv := 2*v + bit
			if newv > max {
				row.delta[bit] = -1
				continue
			}

			if j, ok := index[newv]; ok {
				row.delta[bit] = j
			} else {
				j := len(order)
				index[newv] = j
				order = append(order, newv)
				row.delta[bit] = j
			}
		}

		rows = append(rows, row)
	}

	sink := len(order)

	for _, row := range rows {
		for bit, t := range row.delta {
			if t == -1 {
				row.delta[bit] = sink
			}
		}
	}

	rows = append(rows, deltaRow{delta: []int{sink, sink}, accept: false})

	dfa, err := buildFromDelta(1, rows)
	if err != nil {
		return nil, err
	}

	return &Automaton{dfa: dfa, formula: lengthFormula(name), variables: []string{name}}, nil
}

// ToSemilinearSet implements §4.3.4's DFA-to-semilinear-set extraction.
// The naive single-pass period derivation the source uses for
// bases.size() > 1 is known incomplete (§9); this instead validates every
// candidate period by constructing its progression automaton via
// FromSemilinearSet and checking language inclusion in the still-unexplained
// remainder, exactly as the open question's resolution prescribes.
func (a *Automaton) ToSemilinearSet() (*semilinear.Set, error) {
	if a.NumVars() != 1 {
		return nil, &ErrNotSingleVariable{Variables: a.variables}
	}

	name := a.variables[0]

	_, inCycle := sccOf(a.dfa)

	values := acyclicValues(a.dfa, inCycle)

	result := &semilinear.Set{Constants: sortedset.Of(values...)}

	anyCycle := false
	for _, c := range inCycle {
		if c {
			anyCycle = true
			break
		}
	}

	if !anyCycle {
		return result, nil
	}

	var maxConst uint64
	for _, v := range values {
		if v > maxConst {
			maxConst = v
		}
	}

	bounded, err := rangeUpTo(maxConst, name)
	if err != nil {
		return nil, err
	}

	notBounded := bounded.Complement()
	bounded.Close()

	remaining, err := a.Intersect(notBounded)
	notBounded.Close()

	if err != nil {
		return nil, err
	}

	numStates := a.dfa.NumStates()
	maxCandidatePeriod := uint64(numStates*numStates + 8)
	searchBound := maxConst + uint64(numStates)*maxCandidatePeriod + maxCandidatePeriod + 16

	for !remaining.IsEmpty() {
		base, ok := smallestAcceptingValue(remaining.dfa, maxConst+1, searchBound)
		if !ok {
			break
		}

		found := false

		for period := uint64(1); period <= maxCandidatePeriod && !found; period++ {
			candidateSet := &semilinear.Set{CycleHead: base, Period: period, PeriodicConstants: sortedset.Of(uint64(0))}

			candidateAuto, err := FromSemilinearSet(candidateSet, name)
			if err != nil {
				remaining.Close()
				return nil, err
			}

			notRemaining := remaining.Complement()

			overlap, err := candidateAuto.Intersect(notRemaining)
			notRemaining.Close()

			if err != nil {
				candidateAuto.Close()
				remaining.Close()
				return nil, err
			}

			included := overlap.IsEmpty()
			overlap.Close()

			if !included {
				candidateAuto.Close()
				continue
			}

			result = semilinear.Union(result, candidateSet)

			notCandidate := candidateAuto.Complement()
			candidateAuto.Close()

			newRemaining, err := remaining.Intersect(notCandidate)
			notCandidate.Close()
			remaining.Close()

			if err != nil {
				return nil, err
			}

			remaining = newRemaining
			found = true
		}

		if !found {
			subject := remaining.String()
			states := remaining.dfa.NumStates()
			remaining.Close()

			return nil, &semilinear.ExtractionError{Subject: subject, RemainingStates: states}
		}
	}

	remaining.Close()

	return result, nil
}

// smallestAcceptingValue scans [from, to] for the least value remaining's
// language accepts, per §4.3.4 step 5's "enumerate base constants".
func smallestAcceptingValue(dfa *kernel.DFA, from, to uint64) (uint64, bool) {
	for v := from; v <= to; v++ {
		if membership(dfa, v) {
			return v, true
		}
	}

	return 0, false
}
