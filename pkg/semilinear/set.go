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

// Package semilinear represents semilinear sets of naturals, C ∪ ⋃ (cᵢ +
// pᵢ·ℕ), canonicalized to a single cycle head and period per set, the form
// that a binary-integer automaton's accepted-value lengths always reduce
// to.
package semilinear

import (
	"fmt"

	"github.com/abc-solver/core/pkg/util/sortedset"
)

// Set is (constants, cycle_head, period, periodic_constants). When period
// is 0 the set is exactly the finite set Constants. When period > 0 the
// set is Constants ∪ { CycleHead + k : k ∈ ⟨PeriodicConstants⟩ + period·ℕ }.
type Set struct {
	Constants         sortedset.Set[uint64]
	CycleHead         uint64
	Period            uint64
	PeriodicConstants sortedset.Set[uint64]
}

// HasConstants reports whether the finite constants part is non-empty.
func (s *Set) HasConstants() bool { return s.Constants.Len() > 0 }

// SetPeriod sets the period, then canonicalizes.
func (s *Set) SetPeriod(p uint64) {
	s.Period = p
	s.canonicalize()
}

// SetCycleHead sets the cycle head, then canonicalizes.
func (s *Set) SetCycleHead(c uint64) {
	s.CycleHead = c
	s.canonicalize()
}

// AddPeriodicConstant records that CycleHead+k is in the periodic tail for
// every k congruent to the given residue mod Period, then canonicalizes.
func (s *Set) AddPeriodicConstant(k uint64) {
	s.PeriodicConstants.Insert(k)
	s.canonicalize()
}

// Clear resets the set to empty.
func (s *Set) Clear() {
	*s = Set{}
}

// Contains reports whether n is a member of this set.
func (s *Set) Contains(n uint64) bool {
	if s.Constants.Contains(n) {
		return true
	}

	if s.Period == 0 || n < s.CycleHead {
		return false
	}

	return s.PeriodicConstants.Contains((n - s.CycleHead) % s.Period)
}

// Equals reports whether s and other have the same representation (cycle
// head, period, constants and periodic constants) after both are
// canonicalized. Two sets that denote the same naturals with a different
// cycle head or period compare unequal.
func (s *Set) Equals(other *Set) bool {
	s.canonicalize()
	other.canonicalize()

	return s.Period == other.Period &&
		s.CycleHead == other.CycleHead &&
		s.Constants.Equals(other.Constants) &&
		s.PeriodicConstants.Equals(other.PeriodicConstants)
}

func (s *Set) String() string {
	if s.Period == 0 {
		return fmt.Sprintf("{%v}", s.Constants.Slice())
	}

	return fmt.Sprintf("{%v} ∪ (%d + %v + %d·ℕ)", s.Constants.Slice(), s.CycleHead, s.PeriodicConstants.Slice(), s.Period)
}

// canonicalize restores the class invariant: PeriodicConstants ⊂ [0,
// Period), deduplicated, and any constant already covered by the periodic
// tail is dropped from Constants.
func (s *Set) canonicalize() {
	if s.Period == 0 {
		s.CycleHead = 0
		s.PeriodicConstants = nil

		return
	}

	var reduced sortedset.Set[uint64]
	for _, k := range s.PeriodicConstants {
		reduced.Insert(k % s.Period)
	}

	s.PeriodicConstants = reduced

	s.Constants = s.Constants.Filter(func(n uint64) bool {
		if n < s.CycleHead {
			return true
		}

		return !s.PeriodicConstants.Contains((n - s.CycleHead) % s.Period)
	})
}

// ExtractionError reports that DFA-to-semilinear-set extraction's
// period-derivation step could not validate any candidate period against
// the remaining difference automaton.
type ExtractionError struct {
	// Subject is the String() snapshot of the automaton extraction was
	// attempted on.
	Subject string
	// RemainingStates is the state count of the difference automaton at
	// the point extraction gave up.
	RemainingStates int
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf(
		"semilinear: could not extract a valid period from %s (difference automaton has %d states remaining)",
		e.Subject, e.RemainingStates)
}

// Union merges a and b into the simplest Set whose membership predicate is
// the union of theirs. It is intentionally conservative: periods are
// unified via lcm unless one side is the pure-finite case, keeping the
// merge a generalization of both operand sets rather than a tight
// minimal-period synthesis.
func Union(a, b *Set) *Set {
	a.canonicalize()
	b.canonicalize()

	if a.Period == 0 {
		out := &Set{Constants: a.Constants.Union(b.Constants), CycleHead: b.CycleHead, Period: b.Period, PeriodicConstants: append(sortedset.Set[uint64]{}, b.PeriodicConstants...)}
		out.canonicalize()

		return out
	}

	if b.Period == 0 {
		return Union(b, a)
	}

	period := lcm(a.Period, b.Period)
	head := max(a.CycleHead, b.CycleHead)

	out := &Set{Constants: a.Constants.Union(b.Constants), CycleHead: head, Period: period}

	// A value below the unified head can still be covered by whichever
	// operand had the smaller cycle head; fold those into the finite part
	// rather than silently losing them to the raised head.
	for v := min(a.CycleHead, b.CycleHead); v < head; v++ {
		if a.Contains(v) || b.Contains(v) {
			out.Constants.Insert(v)
		}
	}

	for n := uint64(0); n < period; n++ {
		v := head + n
		if a.Contains(v) || b.Contains(v) {
			out.PeriodicConstants.Insert(n)
		}
	}

	out.canonicalize()

	return out
}

func lcm(a, b uint64) uint64 {
	return a / gcd(a, b) * b
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
