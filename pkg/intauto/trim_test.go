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
	"testing"

	"github.com/abc-solver/core/pkg/kernel"
	"github.com/abc-solver/core/pkg/semilinear"
	"github.com/abc-solver/core/pkg/util/bitword"
	"github.com/abc-solver/core/pkg/util/sortedset"
)

// stepAll drives dfa from its initial state through one 1-bit symbol per
// entry of bits, in order.
func stepAll(dfa *kernel.DFA, bits []bool) int {
	s := dfa.Initial()

	for _, b := range bits {
		w := bitword.NewWord(1)
		w.SetBit(0, b)

		s = dfa.Step(s, w)
	}

	return s
}

// TestTrimLeadingZerosAcceptsPaddedNonZeroValues builds the binary automaton
// for the semilinear set {3} (period 0), which — before trimming — accepts
// every string with any number of leading zeros followed by "11". Since 3's
// minimal encoding contains a 1-bit, leadingZeroFilter always recovers out
// of its trap states the moment that 1-bit is read, regardless of how many
// leading zeros preceded it — the helper only permanently rejects a word
// that runs out while still stuck inside a leading run of zeros, which
// never happens once the word contains a 1. So every leading-zero-padded
// encoding of 3 stays accepted after trimming; what TrimLeadingZeros
// actually removes is multiple redundant encodings of zero itself.
func TestTrimLeadingZerosAcceptsPaddedNonZeroValues(t *testing.T) {
	s := &semilinear.Set{Constants: sortedset.Of(uint64(3))}

	auto, err := FromSemilinearSet(s, "n")
	if err != nil {
		t.Fatalf("FromSemilinearSet: %v", err)
	}
	defer auto.Close()

	trimmed, err := auto.TrimLeadingZeros()
	if err != nil {
		t.Fatalf("TrimLeadingZeros: %v", err)
	}
	defer trimmed.Close()

	if !membership(trimmed.dfa, 3) {
		t.Errorf("trimmed automaton should still accept the minimal representation of 3")
	}

	if membership(trimmed.dfa, 5) {
		t.Errorf("trimmed automaton should not accept 5")
	}

	for _, width := range []uint{2, 3, 4, 5} {
		padded := bitwordPad(3, width)
		if !trimmed.dfa.Accepts(stepAll(trimmed.dfa, padded)) {
			t.Errorf("trimmed automaton should still accept a %d-bit leading-zero-padded encoding of 3", width)
		}
	}
}

// bitwordPad builds the MSB-first bit sequence of v padded with leading
// zeros to width bits.
func bitwordPad(v uint64, width uint) []bool {
	out := make([]bool, width)
	for i := uint(0); i < width; i++ {
		shift := width - 1 - i
		out[i] = (v>>shift)&1 == 1
	}

	return out
}

// TestPositiveNegativeSliceArePartition checks that PositiveSlice and
// NegativeSlice over a universal single-variable automaton partition every
// representable value by sign, per §4.3.5 and the negative-slice
// supplement (§9 bug #2).
func TestPositiveNegativeSliceArePartition(t *testing.T) {
	universal, err := FromSemilinearSet(&semilinear.Set{CycleHead: 0, Period: 1, PeriodicConstants: sortedset.Of(uint64(0))}, "n")
	if err != nil {
		t.Fatalf("FromSemilinearSet: %v", err)
	}
	defer universal.Close()

	pos, err := universal.PositiveSlice("n")
	if err != nil {
		t.Fatalf("PositiveSlice: %v", err)
	}
	defer pos.Close()

	neg, err := universal.NegativeSlice("n")
	if err != nil {
		t.Fatalf("NegativeSlice: %v", err)
	}
	defer neg.Close()

	for v := int64(-4); v <= 4; v++ {
		p := membershipOf(t, pos, v)
		n := membershipOf(t, neg, v)

		if p == n {
			t.Errorf("value %d: PositiveSlice=%v NegativeSlice=%v, want exactly one true", v, p, n)
		}

		wantPositive := v >= 0
		if p != wantPositive {
			t.Errorf("value %d: PositiveSlice=%v, want %v", v, p, wantPositive)
		}
	}
}
