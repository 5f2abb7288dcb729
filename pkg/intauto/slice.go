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
	"fmt"

	"github.com/abc-solver/core/pkg/kernel"
	"github.com/abc-solver/core/pkg/util/bitword"
)

// signGuard builds the 3-state DFA accepting exactly the words whose
// first symbol has the target bit equal to want: state 0 (the initial
// state, also accepting — an unread word represents the value zero, which
// is both non-negative and non-positive) reads one symbol and moves to an
// absorbing accept state if the target bit matches, or an absorbing
// reject state otherwise.
func signGuard(numVars, target int, want bool) (*kernel.DFA, error) {
	b := kernel.New(3, numVars)

	if err := b.AllocExceptions(0, 1); err != nil {
		return nil, err
	}

	pattern := bitword.NewPattern(uint(numVars))
	pattern.Set(uint(target), want)

	if err := b.StoreException(0, 1, pattern); err != nil {
		return nil, err
	}

	if err := b.StoreState(0, 2); err != nil {
		return nil, err
	}

	if err := b.AllocExceptions(1, 0); err != nil {
		return nil, err
	}

	if err := b.StoreState(1, 1); err != nil {
		return nil, err
	}

	if err := b.AllocExceptions(2, 0); err != nil {
		return nil, err
	}

	if err := b.StoreState(2, 2); err != nil {
		return nil, err
	}

	return b.Build("++-")
}

func (a *Automaton) slice(target int, wantSignBit bool) (*Automaton, error) {
	guard, err := signGuard(a.NumVars(), target, wantSignBit)
	if err != nil {
		return nil, err
	}

	dfa, err := a.dfa.Product(guard, kernel.AND)
	guard.Close()

	if err != nil {
		return nil, err
	}

	out := &Automaton{dfa: dfa, formula: a.formula, variables: append([]string(nil), a.variables...)}

	return out.normalize(), nil
}

// PositiveSlice intersects a with the 3-state "sign-bit-is-zero" guard on
// name's bit position, per §4.3.5.
func (a *Automaton) PositiveSlice(name string) (*Automaton, error) {
	i := indexOf(a.variables, name)
	if i < 0 {
		return nil, fmt.Errorf("intauto: variable %q is not tracked by this automaton", name)
	}

	return a.slice(i, false)
}

// NegativeSlice mirrors PositiveSlice to the sign bit being 1, the
// symmetric half the source's getPositiveValuesFor/getNegativeValuesFor
// pair was missing (§9 bug #2; resolved in SPEC_FULL.md §4).
func (a *Automaton) NegativeSlice(name string) (*Automaton, error) {
	i := indexOf(a.variables, name)
	if i < 0 {
		return nil, fmt.Errorf("intauto: variable %q is not tracked by this automaton", name)
	}

	return a.slice(i, true)
}

// TrimLeadingZeros removes the redundant all-zero-run representations of a
// single-variable automaton: first any state that is one 0-bit away from
// an accepting state is itself pre-accepted, then the result is
// intersected with a helper DFA whose only constraint is that a word
// cannot end stuck inside a run of 0-bits that started at position 0 or 1
// — a word with any number of leading zeros is still accepted as long as a
// later 1-bit recovers out of that run (see leadingZeroFilter).
func (a *Automaton) TrimLeadingZeros() (*Automaton, error) {
	if a.NumVars() != 1 {
		return nil, fmt.Errorf("intauto: TrimLeadingZeros requires exactly one tracked variable, got %d", a.NumVars())
	}

	preAccepted, err := a.preAcceptLeadingZeroClosure()
	if err != nil {
		return nil, err
	}

	helper, err := leadingZeroFilter()
	if err != nil {
		preAccepted.Close()
		return nil, err
	}

	dfa, err := preAccepted.Product(helper, kernel.AND)
	preAccepted.Close()
	helper.Close()

	if err != nil {
		return nil, err
	}

	out := &Automaton{dfa: dfa, formula: a.formula, variables: append([]string(nil), a.variables...)}

	return out.normalize(), nil
}

// preAcceptLeadingZeroClosure marks a state accepting if it already is, or
// if reading a single 0-bit from it reaches an accepting state — exactly
// the one-step lookahead the source's trimLeadingZeros performs (not a
// multi-bit closure), leaving transitions unchanged.
func (a *Automaton) preAcceptLeadingZeroClosure() (*kernel.DFA, error) {
	n := a.dfa.NumStates()
	zero := bitword.FromMask(0, 1)

	newAccept := make([]bool, n)

	for s := 0; s < n; s++ {
		newAccept[s] = a.dfa.Accepts(s) || a.dfa.Accepts(a.dfa.Step(s, zero))
	}

	return rebuildWithAccept(a.dfa, 1, newAccept)
}

// rebuildWithAccept copies dfa's transition structure but with a
// replacement acceptance table, reindexing so the initial state lands at
// index 0 as buildFromDelta requires.
func rebuildWithAccept(dfa *kernel.DFA, numVars int, newAccept []bool) (*kernel.DFA, error) {
	n := dfa.NumStates()

	old2new := make([]int, n)
	old2new[dfa.Initial()] = 0

	next := 1
	for s := 0; s < n; s++ {
		if s == dfa.Initial() {
			continue
		}

		old2new[s] = next
		next++
	}

	rows := make([]deltaRow, n)

	for s := 0; s < n; s++ {
		row := deltaRow{delta: make([]int, 1<<uint(numVars)), accept: newAccept[s]}

		bitword.AllMasks(uint(numVars), func(mask uint64) bool {
			w := bitword.FromMask(mask, uint(numVars))
			row.delta[mask] = old2new[dfa.Step(s, w)]

			return true
		})

		rows[old2new[s]] = row
	}

	return buildFromDelta(numVars, rows)
}

// leadingZeroFilter is the source's own 5-state trim-helper automaton
// (theory/BinaryIntAutomaton.cpp's makeTrimHelperAuto): Start (rejecting —
// the bit read so far is inconclusive) moves to S1 (accepting) on a first
// bit of 0, or directly to Abs (accepting, absorbing) on a first bit of 1.
// From S1, a second 0 falls into TrapL; a second 1 reaches Abs. TrapL and
// TrapR both reject while more 0s follow but recover to Abs the moment a
// 1 is read — only a string that runs out while still inside a trap state
// (i.e. two or more leading zeros with nothing to recover it) is rejected.
func leadingZeroFilter() (*kernel.DFA, error) {
	const (
		start = 0
		s1    = 1
		abs   = 2
		trapL = 3
		trapR = 4
	)

	b := kernel.New(5, 1)

	one := bitword.NewPattern(1)
	one.Set(0, true)

	zero := bitword.NewPattern(1)
	zero.Set(0, false)

	if err := b.AllocExceptions(start, 2); err != nil {
		return nil, err
	}

	if err := b.StoreException(start, s1, zero); err != nil {
		return nil, err
	}

	if err := b.StoreException(start, abs, one); err != nil {
		return nil, err
	}

	if err := b.StoreState(start, abs); err != nil {
		return nil, err
	}

	if err := b.AllocExceptions(s1, 2); err != nil {
		return nil, err
	}

	if err := b.StoreException(s1, trapL, zero); err != nil {
		return nil, err
	}

	if err := b.StoreException(s1, abs, one); err != nil {
		return nil, err
	}

	if err := b.StoreState(s1, abs); err != nil {
		return nil, err
	}

	if err := b.AllocExceptions(abs, 1); err != nil {
		return nil, err
	}

	if err := b.StoreException(abs, trapR, zero); err != nil {
		return nil, err
	}

	if err := b.StoreState(abs, abs); err != nil {
		return nil, err
	}

	if err := b.AllocExceptions(trapL, 1); err != nil {
		return nil, err
	}

	if err := b.StoreException(trapL, abs, one); err != nil {
		return nil, err
	}

	if err := b.StoreState(trapL, trapL); err != nil {
		return nil, err
	}

	if err := b.AllocExceptions(trapR, 1); err != nil {
		return nil, err
	}

	if err := b.StoreException(trapR, abs, one); err != nil {
		return nil, err
	}

	if err := b.StoreState(trapR, trapR); err != nil {
		return nil, err
	}

	return b.Build("-++--")
}
