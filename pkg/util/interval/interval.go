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

// Package interval provides bound-widening and gcd/lcm arithmetic over
// integer ranges (the "min ≤ c ≤ max" widening of spec §4.3.2). No other
// package of this module imports it: the binary-integer automaton
// constructors and semilinear period derivation do their own arithmetic.
package interval

// Interval is an inclusive integer range [Lo, Hi].
type Interval struct {
	Lo, Hi int64
}

// Widen returns the smallest interval containing both p and the scalar c.
func (p Interval) Widen(c int64) Interval {
	lo, hi := p.Lo, p.Hi

	if c < lo {
		lo = c
	}

	if c > hi {
		hi = c
	}

	return Interval{lo, hi}
}

// CoefficientBounds computes, for a linear form Σ aᵢ·xᵢ over boolean-valued
// xᵢ, the interval [min, max] of Σ aᵢ·xᵢ per spec §4.3.2: max sums the
// positive coefficients, min sums the negative ones.
func CoefficientBounds(coeffs []int64) Interval {
	var lo, hi int64

	for _, a := range coeffs {
		if a > 0 {
			hi += a
		} else {
			lo += a
		}
	}

	return Interval{lo, hi}
}

// Gcd returns the greatest common divisor of a and b (always non-negative).
func Gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}

	if b < 0 {
		b = -b
	}

	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// Lcm returns the least common multiple of a and b, or 0 if both are 0.
func Lcm(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}

	g := Gcd(a, b)

	return (a / g) * b
}

// GcdAll reduces a slice of integers to their shared gcd, ignoring zeros.
// Returns 0 if every element is 0.
func GcdAll(vals []int64) int64 {
	var g int64

	for _, v := range vals {
		g = Gcd(g, v)
	}

	return g
}

// LcmAll reduces a slice of positive integers to their shared lcm.  Returns
// 0 for an empty slice.
func LcmAll(vals []int64) int64 {
	if len(vals) == 0 {
		return 0
	}

	l := vals[0]
	for _, v := range vals[1:] {
		l = Lcm(l, v)
	}

	return l
}
