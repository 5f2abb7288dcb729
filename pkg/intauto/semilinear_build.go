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

	"github.com/abc-solver/core/pkg/arith"
	"github.com/abc-solver/core/pkg/semilinear"
)

// binaryKind distinguishes the two BinaryState shapes §4.3.3 builds: VAL
// tracks an exact accumulated value below the cycle head, REM tracks only
// a residue once that threshold is crossed.
type binaryKind int

const (
	valKind binaryKind = iota
	remKind
)

type binaryState struct {
	kind binaryKind
	v    uint64
}

type binaryGraph struct {
	index map[binaryState]int
	order []binaryState
}

func newBinaryGraph(initial binaryState) *binaryGraph {
	return &binaryGraph{index: map[binaryState]int{initial: 0}, order: []binaryState{initial}}
}

func (g *binaryGraph) resolve(s binaryState) int {
	if j, ok := g.index[s]; ok {
		return j
	}

	j := len(g.order)
	g.index[s] = j
	g.order = append(g.order, s)

	return j
}

// FromSemilinearSet builds the single-variable binary automaton whose
// accepted language is the set of MSB-first (leading zeros permitted)
// binary encodings of values in s, per §4.3.3. The automaton carries a
// single variable, name, with coefficient 1.
//
// The "optional leading-zero track" §4.3.3 describes is not built in —
// every representation, with any number of leading zeros, is accepted.
// Callers that need the canonical no-leading-zero language should follow
// up with TrimLeadingZeros.
func FromSemilinearSet(s *semilinear.Set, name string) (*Automaton, error) {
	if s.Period == 0 {
		return finiteValueAutomaton(s.Constants.Slice(), name)
	}

	g := newBinaryGraph(binaryState{kind: valKind, v: 0})

	rows := make([]deltaRow, 0, 1)

	for idx := 0; idx < len(g.order); idx++ {
		st := g.order[idx]

		row := deltaRow{delta: make([]int, 2)}

		switch st.kind {
		case valKind:
			row.accept = s.Constants.Contains(st.v)

			for _, bit := range []uint64{0, 1} {
				newv := 2*st.v + bit
				if newv < s.CycleHead {
					row.delta[bit] = g.resolve(binaryState{kind: valKind, v: newv})
				} else {
					r := (newv - s.CycleHead) % s.Period
					row.delta[bit] = g.resolve(binaryState{kind: remKind, v: r})
				}
			}
		case remKind:
			row.accept = s.PeriodicConstants.Contains(st.v)

			h := s.CycleHead % s.Period

			for _, bit := range []uint64{0, 1} {
				r := (2*st.v + h + bit) % s.Period
				row.delta[bit] = g.resolve(binaryState{kind: remKind, v: r})
			}
		}

		rows = append(rows, row)
	}

	dfa, err := buildFromDelta(1, rows)
	if err != nil {
		return nil, err
	}

	return &Automaton{dfa: dfa, formula: lengthFormula(name), variables: []string{name}}, nil
}

// finiteValueAutomaton builds the trie-shaped acceptor for a purely finite
// semilinear set (period 0): one state per distinct value prefix reachable
// while building toward a listed constant, merged by shared prefix.
func finiteValueAutomaton(constants []uint64, name string) (*Automaton, error) {
	g := newBinaryGraph(binaryState{kind: valKind, v: 0})
	set := make(map[uint64]bool, len(constants))

	for _, c := range constants {
		set[c] = true
	}

	var maxC uint64
	for _, c := range constants {
		if c > maxC {
			maxC = c
		}
	}

	rows := make([]deltaRow, 0, 1)

	for idx := 0; idx < len(g.order); idx++ {
		st := g.order[idx]

		row := deltaRow{delta: make([]int, 2), accept: set[st.v]}

		for _, bit := range []uint64{0, 1} {
			newv := 2*st.v + bit
			if newv > maxC {
				// No listed constant can still be reached; patched to the
				// absorbing reject state once its index is known below.
				row.delta[bit] = -1
				continue
			}

			row.delta[bit] = g.resolve(binaryState{kind: valKind, v: newv})
		}

		rows = append(rows, row)
	}

	sink := len(g.order)

	for _, row := range rows {
		for bit, target := range row.delta {
			if target == -1 {
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

func lengthFormula(name string) arith.Formula {
	return arith.Formula{Kind: arith.EQ, Constant: bigZero(), Names: []string{name}, Coeffs: []*big.Int{big.NewInt(1)}}
}
