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

// Package kernel is a thin, typed facade over a DFA construction library. It
// owns all interaction with the process-wide BDD variable-index tables (the
// kernel is not reentrant — callers must serialize access) and exposes the
// primitive operations the rest of this module needs: build, product,
// project, minimize, negate, replace-indices and emptiness.
//
// A kernel.Builder collects each state's transitions as a list of exceptions
// plus a default target, following the
// alloc-exceptions/store-exception/store-state construction sequence, and
// Build turns them into an explicit per-mask transition table that each
// kernel.DFA stores. The BDD backend (github.com/dalzilio/rudd) only ever
// appears at Build time here, to validate that a state's stored exceptions
// don't overlap on a shared input (reported as a kernel invariant
// violation); once a DFA is frozen, Product/Minimize/Project/ReplaceIndices/Negate/IsEmpty all walk
// the explicit per-mask transition table materialized at Build time rather
// than keeping states alive as BDD nodes. See DESIGN.md for why that split
// is the right one for this module's typical automata sizes.
package kernel

import (
	"fmt"
	"sync"

	"github.com/dalzilio/rudd"
	log "github.com/sirupsen/logrus"

	"github.com/abc-solver/core/pkg/util/bitword"
)

// Combinator selects the boolean connective used by Product.
type Combinator int

const (
	// AND computes the intersection of two DFAs' languages.
	AND Combinator = iota
	// OR computes the union of two DFAs' languages.
	OR
)

// ErrInvariant reports a kernel-level invariant violation: an
// exception-count mismatch or an out-of-range state index (spec §7).  It is
// always a bug in the caller's construction sequence, never a property of
// the input formula.
type ErrInvariant struct {
	Reason string
}

func (e *ErrInvariant) Error() string {
	return fmt.Sprintf("kernel invariant violation: %s", e.Reason)
}

// manager owns the single process-wide rudd.Set instance backing exception
// validation.  Construction happens once, lazily, and is serialized: spec
// §5 requires every kernel call to be serialized because the underlying BDD
// variable-index tables are process-global.
//
// rudd's Set constructors (Buddy, Hudd) never return an error value of
// their own — a failed construction or operation is instead signaled by a
// nil Node and recorded on the Set itself, retrievable via Error(). acquire
// checks that convention rather than a Go error return.
type manager struct {
	mu      sync.Mutex
	bdd     rudd.Set
	numVars int
	live    int // number of DFAs currently holding a reference
}

var global = &manager{}

// acquire ensures the shared BDD has at least numVars variables and bumps
// the live-DFA refcount.  Growing the variable table while other DFAs are
// alive is a kernel invariant violation: existing DFAs were validated
// against the old index space and growing would silently invalidate that
// validation.
func (m *manager) acquire(numVars int) (rudd.Set, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.bdd == nil:
		b := rudd.Hudd(numVars)
		if msg := b.Error(); msg != "" {
			return nil, fmt.Errorf("kernel: initializing BDD manager: %s", msg)
		}

		m.bdd = b
		m.numVars = numVars
	case numVars > m.numVars && m.live > 0:
		return nil, &ErrInvariant{Reason: fmt.Sprintf(
			"cannot grow BDD variable table from %d to %d while %d automata are live",
			m.numVars, numVars, m.live)}
	case numVars > m.numVars:
		b := rudd.Hudd(numVars)
		if msg := b.Error(); msg != "" {
			return nil, fmt.Errorf("kernel: growing BDD manager: %s", msg)
		}

		log.WithFields(log.Fields{"from": m.numVars, "to": numVars}).
			Debug("kernel: growing shared BDD variable table")

		m.bdd = b
		m.numVars = numVars
	}

	m.live++

	return m.bdd, nil
}

func (m *manager) release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live > 0 {
		m.live--
	}
}

// exception is one stored (target, pattern) pair for a single state.
type exception struct {
	target  int
	pattern bitword.Pattern
}

type stateSpec struct {
	exceptions []exception
	capacity   int
	def        int
	defSet     bool
}

// Builder accumulates per-state exception tables before a single Build call
// freezes them into a DFA.
type Builder struct {
	numVars int
	states  []stateSpec
}

// New constructs a builder for a DFA with the given number of states, each
// reading numVars-bit words.
func New(numStates, numVars int) *Builder {
	return &Builder{
		numVars: numVars,
		states:  make([]stateSpec, numStates),
	}
}

// AllocExceptions pre-declares how many exceptions state will carry.
func (b *Builder) AllocExceptions(state, n int) error {
	if state < 0 || state >= len(b.states) {
		return &ErrInvariant{Reason: fmt.Sprintf("state index %d out of range [0,%d)", state, len(b.states))}
	}

	b.states[state].capacity = n
	b.states[state].exceptions = make([]exception, 0, n)

	return nil
}

// StoreException records that, on any input matching pattern, state
// transitions to target rather than following its default.
func (b *Builder) StoreException(state, target int, pattern bitword.Pattern) error {
	if state < 0 || state >= len(b.states) {
		return &ErrInvariant{Reason: fmt.Sprintf("state index %d out of range [0,%d)", state, len(b.states))}
	}

	if target < 0 || target >= len(b.states) {
		return &ErrInvariant{Reason: fmt.Sprintf("target index %d out of range [0,%d)", target, len(b.states))}
	}

	if len(pattern) != b.numVars {
		return &ErrInvariant{Reason: fmt.Sprintf("pattern width %d does not match %d variables", len(pattern), b.numVars)}
	}

	st := &b.states[state]
	if st.capacity != 0 && len(st.exceptions) >= st.capacity {
		return &ErrInvariant{Reason: fmt.Sprintf(
			"state %d: exception count exceeds allocated capacity %d", state, st.capacity)}
	}

	st.exceptions = append(st.exceptions, exception{target, pattern})

	return nil
}

// StoreState finalizes a state's default (catch-all) target.
func (b *Builder) StoreState(state, defaultTarget int) error {
	if state < 0 || state >= len(b.states) {
		return &ErrInvariant{Reason: fmt.Sprintf("state index %d out of range [0,%d)", state, len(b.states))}
	}

	if defaultTarget < 0 || defaultTarget >= len(b.states) {
		return &ErrInvariant{Reason: fmt.Sprintf("default target %d out of range [0,%d)", defaultTarget, len(b.states))}
	}

	b.states[state].def = defaultTarget
	b.states[state].defSet = true

	return nil
}

// Build validates every state's exception table for internal overlap (via
// the shared BDD manager) and freezes the result into a DFA.  accepting is
// a '+'/'-' status string, one character per state, per spec §6.
func (b *Builder) Build(accepting string) (*DFA, error) {
	if len(accepting) != len(b.states) {
		return nil, &ErrInvariant{Reason: fmt.Sprintf(
			"acceptance string length %d does not match %d states", len(accepting), len(b.states))}
	}

	bdd, err := global.acquire(b.numVars)
	if err != nil {
		return nil, err
	}

	released := false
	defer func() {
		if !released {
			global.release()
		}
	}()

	states := make([]state, len(b.states))

	for i, st := range b.states {
		if !st.defSet {
			return nil, &ErrInvariant{Reason: fmt.Sprintf("state %d: StoreState was never called", i)}
		}

		if st.capacity != 0 && len(st.exceptions) != st.capacity {
			return nil, &ErrInvariant{Reason: fmt.Sprintf(
				"state %d: allocated %d exceptions but stored %d", i, st.capacity, len(st.exceptions))}
		}

		if err := validateNoOverlap(bdd, st.exceptions, b.numVars); err != nil {
			return nil, fmt.Errorf("state %d: %w", i, err)
		}

		var accept bool

		switch accepting[i] {
		case '+':
			accept = true
		case '-':
			accept = false
		default:
			return nil, &ErrInvariant{Reason: fmt.Sprintf("state %d: invalid acceptance char %q", i, accepting[i])}
		}

		states[i] = state{
			delta:  materializeDelta(st.exceptions, st.def, b.numVars),
			accept: accept,
		}
	}

	released = true

	return &DFA{numVars: b.numVars, states: states, initial: 0}, nil
}

// validateNoOverlap checks, using the shared BDD, that no two exceptions of
// a state can both match the same word — each state's transition function
// must be well-defined.
func validateNoOverlap(bdd rudd.Set, exceptions []exception, numVars int) error {
	cubes := make([]rudd.Node, len(exceptions))

	for i, e := range exceptions {
		cubes[i] = patternCube(bdd, e.pattern, numVars)
	}

	for i := range cubes {
		for j := i + 1; j < len(cubes); j++ {
			overlap := bdd.And(cubes[i], cubes[j])
			if !bdd.Equal(overlap, bdd.False()) {
				return &ErrInvariant{Reason: fmt.Sprintf(
					"exceptions %d and %d overlap on a shared input", i, j)}
			}
		}
	}

	if msg := bdd.Error(); msg != "" {
		return &ErrInvariant{Reason: fmt.Sprintf("BDD operation failed: %s", msg)}
	}

	return nil
}

// materializeDelta expands a state's (exceptions, default) description into
// an explicit per-mask transition table.  This trades memory for simplicity
// across every algorithm downstream of Build (minimize, product, project,
// replace-indices all operate on plain transition tables); it is the right
// tradeoff for the modest per-formula variable counts this module targets,
// but would need revisiting for alphabets with many dozens of variables.
func materializeDelta(exceptions []exception, def, numVars int) []int {
	delta := make([]int, 1<<uint(numVars))

	bitword.AllMasks(uint(numVars), func(mask uint64) bool {
		target := def

		w := bitword.FromMask(mask, uint(numVars))
		for _, e := range exceptions {
			if e.pattern.Matches(w) {
				target = e.target
				break
			}
		}

		delta[mask] = target

		return true
	})

	return delta
}

// patternCube builds the BDD cube corresponding to a three-valued pattern:
// the conjunction of Ithvar/NIthvar literals at each fixed position, 'X'
// positions omitted.
func patternCube(bdd rudd.Set, pattern bitword.Pattern, numVars int) rudd.Node {
	lits := make([]rudd.Node, 0, numVars)

	for i := 0; i < numVars && i < len(pattern); i++ {
		switch pattern[i] {
		case '0':
			lits = append(lits, bdd.NIthvar(i))
		case '1':
			lits = append(lits, bdd.Ithvar(i))
		}
	}

	if len(lits) == 0 {
		return bdd.True()
	}

	return bdd.And(lits...)
}
