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

// Package intauto builds and combines binary-integer automata: DFAs over
// alphabet {0,1}^V, read most-significant-bit first, whose accepted
// language is the set of two's-complement encodings of variable
// assignments satisfying a linear arithmetic formula.
package intauto

import (
	log "github.com/sirupsen/logrus"

	"github.com/abc-solver/core/pkg/arith"
	"github.com/abc-solver/core/pkg/kernel"
	"github.com/abc-solver/core/pkg/util/bitword"
)

// Automaton is a binary-integer automaton: a kernel.DFA plus the formula
// and variable ordering it was built from. Variables is always the same
// order as Formula.Names, except after ProjectTo drops one.
type Automaton struct {
	dfa       *kernel.DFA
	formula   arith.Formula
	variables []string
}

// NumVars reports the number of tracked variables (the DFA's alphabet
// width).
func (a *Automaton) NumVars() int { return len(a.variables) }

// Variables returns the ordered variable names this automaton's bit
// positions correspond to. Callers must not mutate the returned slice.
func (a *Automaton) Variables() []string { return a.variables }

// Formula returns the arithmetic formula this automaton's language
// encodes the solution set of.
func (a *Automaton) Formula() arith.Formula { return a.formula }

// IsEmpty reports whether the automaton's language is empty, i.e. the
// formula is unsatisfiable.
func (a *Automaton) IsEmpty() bool { return a.dfa.IsEmpty() }

// Clone performs a deep copy, including a fresh handle on the shared DFA
// kernel.
func (a *Automaton) Clone() *Automaton {
	return &Automaton{dfa: a.dfa.Copy(), formula: a.formula, variables: append([]string(nil), a.variables...)}
}

// Close releases the automaton's kernel resources. Idempotent.
func (a *Automaton) Close() { a.dfa.Close() }

func (a *Automaton) String() string {
	return a.formula.String()
}

// deltaRow is one state's fully-specified transition table plus
// acceptance, used by buildFromDelta to hand a completed automaton to the
// kernel's exceptions-based Builder.
type deltaRow struct {
	delta  []int
	accept bool
}

// buildFromDelta freezes an already fully-determined transition table into
// a kernel.DFA; rows[0] is always the initial state, per kernel.Builder's
// own convention. Every mask of every state is submitted as its own pinned
// (no don't-care positions) exception, with the state's own index as an
// arbitrary default — safe because every mask is already covered by an
// exception, so the default is never actually taken.
func buildFromDelta(numVars int, rows []deltaRow) (*kernel.DFA, error) {
	b := kernel.New(len(rows), numVars)

	accepting := make([]byte, len(rows))

	for s, row := range rows {
		if err := b.AllocExceptions(s, len(row.delta)); err != nil {
			return nil, err
		}

		for mask, target := range row.delta {
			pattern := bitword.NewPattern(uint(numVars))
			w := bitword.FromMask(uint64(mask), uint(numVars))

			for i := 0; i < numVars; i++ {
				pattern.Set(uint(i), w.Bit(uint(i)))
			}

			if err := b.StoreException(s, target, pattern); err != nil {
				return nil, err
			}
		}

		if err := b.StoreState(s, s); err != nil {
			return nil, err
		}

		if row.accept {
			accepting[s] = '+'
		} else {
			accepting[s] = '-'
		}
	}

	dfa, err := b.Build(string(accepting))
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"states": len(rows), "vars": numVars}).Debug("intauto: built DFA from explicit delta table")

	return dfa, nil
}
