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

// External test package: round-tripping a semilinear set through a unary
// automaton necessarily exercises pkg/unary, which itself imports
// pkg/semilinear, so this test cannot live inside the semilinear package
// proper without an import cycle.
package semilinear_test

import (
	"testing"

	"github.com/abc-solver/core/pkg/semilinear"
	"github.com/abc-solver/core/pkg/unary"
	"github.com/abc-solver/core/pkg/util/sortedset"
)

func roundTrip(t *testing.T, s *semilinear.Set) *semilinear.Set {
	t.Helper()

	a := unary.FromSemilinearSet(s)

	return a.ToSemilinearSet()
}

// Scenario 3: a purely finite semilinear set must round-trip unchanged.
func TestRoundTripFiniteSet(t *testing.T) {
	s := &semilinear.Set{Constants: sortedset.Of[uint64](0, 2, 4)}

	got := roundTrip(t, s)
	if !got.Equals(s) {
		t.Fatalf("expected round-trip to preserve %s, got %s", s, got)
	}
}

// Scenario 4: a periodic semilinear set must round-trip unchanged, and the
// intermediate unary automaton must have exactly cycle_head+period states
// (its acceptance pattern is checked in pkg/unary's own tests).
func TestRoundTripPeriodicSet(t *testing.T) {
	s := &semilinear.Set{CycleHead: 3, Period: 5}
	s.AddPeriodicConstant(0)
	s.AddPeriodicConstant(2)

	a := unary.FromSemilinearSet(s)
	if a.NumStates() != 8 {
		t.Fatalf("expected 8 states, got %d", a.NumStates())
	}

	got := a.ToSemilinearSet()
	if !got.Equals(s) {
		t.Fatalf("expected round-trip to preserve %s, got %s", s, got)
	}
}

func TestRoundTripIsGeneral(t *testing.T) {
	cases := []*semilinear.Set{
		{Constants: sortedset.Of[uint64](0)},
		{Constants: sortedset.Of[uint64](1, 3, 5, 100)},
		func() *semilinear.Set {
			s := &semilinear.Set{CycleHead: 0, Period: 3}
			s.AddPeriodicConstant(1)

			return s
		}(),
	}

	for _, s := range cases {
		got := roundTrip(t, s)
		if !got.Equals(s) {
			t.Fatalf("round-trip changed %s into %s", s, got)
		}
	}
}
