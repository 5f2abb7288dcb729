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
	"testing"

	"github.com/abc-solver/core/pkg/util/bitword"
)

// buildParityDFA builds a 3-state DFA over a single bit that accepts words
// with an even number of 1s, plus one redundant unreachable-from-neither
// dead state so minimization has real work to do.
func buildParityDFA(t *testing.T) *DFA {
	t.Helper()

	b := New(4, 1)

	one := func(bit bool) bitword.Pattern {
		p := bitword.NewPattern(1)
		p.Set(0, bit)

		return p
	}

	// state 0: even, state 1: odd, state 2: even (duplicate of 0), state 3: dead.
	if err := b.AllocExceptions(0, 1); err != nil {
		t.Fatal(err)
	}

	if err := b.StoreException(0, 1, one(true)); err != nil {
		t.Fatal(err)
	}

	if err := b.StoreState(0, 2); err != nil {
		t.Fatal(err)
	}

	if err := b.AllocExceptions(1, 1); err != nil {
		t.Fatal(err)
	}

	if err := b.StoreException(1, 2, one(true)); err != nil {
		t.Fatal(err)
	}

	if err := b.StoreState(1, 1); err != nil {
		t.Fatal(err)
	}

	if err := b.AllocExceptions(2, 1); err != nil {
		t.Fatal(err)
	}

	if err := b.StoreException(2, 1, one(true)); err != nil {
		t.Fatal(err)
	}

	if err := b.StoreState(2, 2); err != nil {
		t.Fatal(err)
	}

	if err := b.AllocExceptions(3, 0); err != nil {
		t.Fatal(err)
	}

	if err := b.StoreState(3, 3); err != nil {
		t.Fatal(err)
	}

	d, err := b.Build("+-+- ")
	if err == nil {
		t.Fatal("expected acceptance-string length mismatch error")
	}

	d, err = b.Build("+-+-")
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(d.Close)

	return d
}

func TestMinimizeCollapsesEquivalentStates(t *testing.T) {
	d := buildParityDFA(t)

	m := d.Minimize()
	t.Cleanup(m.Close)

	// States 0 and 2 are equivalent (both even, both transition to the
	// same odd state on 1); the dead state is unreachable. Only 2 classes
	// survive: even and odd.
	if got := m.NumStates(); got != 2 {
		t.Fatalf("expected 2 states after minimization, got %d", got)
	}
}

func TestMinimizeIsIdempotent(t *testing.T) {
	d := buildParityDFA(t)

	once := d.Minimize()
	t.Cleanup(once.Close)

	twice := once.Minimize()
	t.Cleanup(twice.Close)

	if once.NumStates() != twice.NumStates() {
		t.Fatalf("minimizing twice changed state count: %d vs %d", once.NumStates(), twice.NumStates())
	}

	for s := 0; s < once.NumStates(); s++ {
		w0 := bitword.FromMask(0, 1)
		w1 := bitword.FromMask(1, 1)

		if once.Accepts(s) != twice.Accepts(s) {
			t.Fatalf("state %d acceptance differs between one and two minimization passes", s)
		}

		if once.Step(s, w0) != twice.Step(s, w0) || once.Step(s, w1) != twice.Step(s, w1) {
			t.Fatalf("state %d transitions differ between one and two minimization passes", s)
		}
	}
}

func TestNegateFlipsAcceptance(t *testing.T) {
	d := buildParityDFA(t)

	neg := d.Negate()
	t.Cleanup(neg.Close)

	for s := 0; s < d.NumStates(); s++ {
		if d.Accepts(s) == neg.Accepts(s) {
			t.Fatalf("state %d: Negate did not flip acceptance", s)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	d := buildParityDFA(t)
	if d.IsEmpty() {
		t.Fatal("parity DFA accepts the empty word, should not be empty")
	}

	complement := d.Negate().Negate().Negate()
	t.Cleanup(complement.Close)

	if complement.IsEmpty() {
		t.Fatal("triple negation is the complement (an odd number of 1s), which should not be empty")
	}
}
