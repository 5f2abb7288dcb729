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

	"github.com/abc-solver/core/pkg/semilinear"
	"github.com/abc-solver/core/pkg/util/sortedset"
)

func TestSemilinearBridgeRoundTripFiniteSet(t *testing.T) {
	s := &semilinear.Set{Constants: sortedset.Of(uint64(1), 4, 9)}

	auto, err := FromSemilinearSet(s, "n")
	if err != nil {
		t.Fatalf("FromSemilinearSet: %v", err)
	}
	defer auto.Close()

	got, err := auto.ToSemilinearSet()
	if err != nil {
		t.Fatalf("ToSemilinearSet: %v", err)
	}

	if !got.Equals(s) {
		t.Errorf("round trip mismatch: got %s, want %s", got.String(), s.String())
	}
}

func TestSemilinearBridgeRoundTripPeriodicSet(t *testing.T) {
	s := &semilinear.Set{CycleHead: 2, Period: 3, PeriodicConstants: sortedset.Of(uint64(0), 1)}

	auto, err := FromSemilinearSet(s, "n")
	if err != nil {
		t.Fatalf("FromSemilinearSet: %v", err)
	}
	defer auto.Close()

	got, err := auto.ToSemilinearSet()
	if err != nil {
		t.Fatalf("ToSemilinearSet: %v", err)
	}

	for n := uint64(0); n < 30; n++ {
		if got.Contains(n) != s.Contains(n) {
			t.Errorf("membership mismatch at %d: got %v, want %v", n, got.Contains(n), s.Contains(n))
		}
	}
}
