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
	"github.com/abc-solver/core/pkg/util/bitword"
)

// buildSCCFixture builds a 5-state, 1-bit-alphabet DFA shaped like:
//
//	E --0--> A --*--> B --*--> C --*--> A   (a 3-state cycle reachable from E)
//	E --1--> D --*--> D                     (a self-looping sink)
//
// E has no incoming edges at all, so it belongs to its own singleton,
// acyclic component.
func buildSCCFixture(t *testing.T) *kernel.DFA {
	t.Helper()

	const (
		e = 0
		a = 1
		b = 2
		c = 3
		d = 4
	)

	one := bitword.NewPattern(1)
	one.Set(0, true)

	bld := kernel.New(5, 1)

	if err := bld.AllocExceptions(e, 1); err != nil {
		t.Fatalf("AllocExceptions(e): %v", err)
	}
	if err := bld.StoreException(e, d, one); err != nil {
		t.Fatalf("StoreException(e->d): %v", err)
	}
	if err := bld.StoreState(e, a); err != nil {
		t.Fatalf("StoreState(e default->a): %v", err)
	}

	if err := bld.AllocExceptions(a, 0); err != nil {
		t.Fatalf("AllocExceptions(a): %v", err)
	}
	if err := bld.StoreState(a, b); err != nil {
		t.Fatalf("StoreState(a->b): %v", err)
	}

	if err := bld.AllocExceptions(b, 0); err != nil {
		t.Fatalf("AllocExceptions(b): %v", err)
	}
	if err := bld.StoreState(b, c); err != nil {
		t.Fatalf("StoreState(b->c): %v", err)
	}

	if err := bld.AllocExceptions(c, 0); err != nil {
		t.Fatalf("AllocExceptions(c): %v", err)
	}
	if err := bld.StoreState(c, a); err != nil {
		t.Fatalf("StoreState(c->a): %v", err)
	}

	if err := bld.AllocExceptions(d, 0); err != nil {
		t.Fatalf("AllocExceptions(d): %v", err)
	}
	if err := bld.StoreState(d, d); err != nil {
		t.Fatalf("StoreState(d->d): %v", err)
	}

	dfa, err := bld.Build("+++++")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	return dfa
}

func TestSCCFindsCycleAndSingletons(t *testing.T) {
	const (
		e = 0
		a = 1
		b = 2
		c = 3
		d = 4
	)

	dfa := buildSCCFixture(t)
	defer dfa.Close()

	comp, inCycle := sccOf(dfa)

	if inCycle[e] {
		t.Errorf("e: expected not in_cycle, a singleton with no self-loop")
	}

	if !inCycle[d] {
		t.Errorf("d: expected in_cycle, a singleton with a self-loop")
	}

	for _, s := range []int{a, b, c} {
		if !inCycle[s] {
			t.Errorf("state %d: expected in_cycle, member of the A->B->C->A cycle", s)
		}
	}

	if comp[a] != comp[b] || comp[b] != comp[c] {
		t.Errorf("expected a, b, c in the same component, got comp=%v", comp)
	}

	if comp[e] == comp[a] || comp[e] == comp[d] || comp[a] == comp[d] {
		t.Errorf("expected e, {a,b,c}, and d in three distinct components, got comp=%v", comp)
	}
}
