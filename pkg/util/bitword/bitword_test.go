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
package bitword

import "testing"

func TestFromMaskMSBFirst(t *testing.T) {
	w := FromMask(0b101, 3)
	if w.String() != "101" {
		t.Fatalf("expected 101, got %s", w.String())
	}
}

func TestUint64RoundTrip(t *testing.T) {
	for _, m := range []uint64{0, 1, 5, 15} {
		w := FromMask(m, 4)
		if w.Uint64() != m {
			t.Fatalf("expected %d, got %d", m, w.Uint64())
		}
	}
}

func TestTwosComplement(t *testing.T) {
	// 3-bit width: 0b111 = -1, 0b100 = -4, 0b011 = 3
	if v := FromMask(0b111, 3).TwosComplement(); v != -1 {
		t.Fatalf("expected -1, got %d", v)
	}

	if v := FromMask(0b100, 3).TwosComplement(); v != -4 {
		t.Fatalf("expected -4, got %d", v)
	}

	if v := FromMask(0b011, 3).TwosComplement(); v != 3 {
		t.Fatalf("expected 3, got %d", v)
	}
}

func TestPatternMatches(t *testing.T) {
	p := NewPattern(3)
	p.Set(0, true)
	p.SetDontCare(1)
	p.Set(2, false)

	if !p.Matches(FromMask(0b100, 3)) {
		t.Fatal("expected 1X0 to match 100")
	}

	if !p.Matches(FromMask(0b110, 3)) {
		t.Fatal("expected 1X0 to match 110")
	}

	if p.Matches(FromMask(0b101, 3)) {
		t.Fatal("expected 1X0 not to match 101")
	}
}

func TestCountOnes(t *testing.T) {
	if CountOnes(0b1011, 4) != 3 {
		t.Fatal("expected 3 set bits")
	}
}

func TestAllMasks(t *testing.T) {
	var seen []uint64
	AllMasks(2, func(m uint64) bool {
		seen = append(seen, m)
		return true
	})

	want := []uint64{0, 1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}

	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}
}
