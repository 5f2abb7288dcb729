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

// Package sortedset provides a minimal sorted-set of unique, ordered values.
// It backs semilinear.Set's constants and periodic-constants fields, and the
// set of constants collected while extracting a semilinear set from a DFA.
package sortedset

import (
	"cmp"
	"sort"
)

// Set is an array of unique, sorted values.  The zero value is the empty
// set.
type Set[T cmp.Ordered] []T

// Of constructs a sorted set containing the given elements.
func Of[T cmp.Ordered](elements ...T) Set[T] {
	var s Set[T]
	for _, e := range elements {
		s.Insert(e)
	}

	return s
}

// Contains reports whether element is a member of this set.
func (p *Set[T]) Contains(element T) bool {
	data := *p
	i := sort.Search(len(data), func(i int) bool { return element <= data[i] })

	return i < len(data) && data[i] == element
}

// Insert element into this set, a no-op if already present.
func (p *Set[T]) Insert(element T) {
	data := *p
	i := sort.Search(len(data), func(i int) bool { return element <= data[i] })

	if i >= len(data) || data[i] != element {
		ndata := make([]T, len(data)+1)
		copy(ndata, data[:i])
		ndata[i] = element
		copy(ndata[i+1:], data[i:])
		*p = ndata
	}
}

// Remove element from this set, a no-op if absent.
func (p *Set[T]) Remove(element T) {
	data := *p
	i := sort.Search(len(data), func(i int) bool { return element <= data[i] })

	if i < len(data) && data[i] == element {
		ndata := make([]T, len(data)-1)
		copy(ndata, data[:i])
		copy(ndata[i:], data[i+1:])
		*p = ndata
	}
}

// Union merges other into this set, returning a new set; neither operand is
// mutated.
func (p Set[T]) Union(other Set[T]) Set[T] {
	result := make(Set[T], len(p))
	copy(result, p)

	for _, e := range other {
		result.Insert(e)
	}

	return result
}

// Len returns the number of elements in this set.
func (p Set[T]) Len() int { return len(p) }

// Slice returns the underlying sorted slice.  Callers must not mutate it.
func (p Set[T]) Slice() []T { return []T(p) }

// Min returns the smallest element and true, or the zero value and false if
// empty.
func (p Set[T]) Min() (T, bool) {
	if len(p) == 0 {
		var zero T
		return zero, false
	}

	return p[0], true
}

// Max returns the largest element and true, or the zero value and false if
// empty.
func (p Set[T]) Max() (T, bool) {
	if len(p) == 0 {
		var zero T
		return zero, false
	}

	return p[len(p)-1], true
}

// Equals reports whether p and other contain exactly the same elements.
func (p Set[T]) Equals(other Set[T]) bool {
	if len(p) != len(other) {
		return false
	}

	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}

// Filter returns a new set containing only elements for which keep returns
// true.
func (p Set[T]) Filter(keep func(T) bool) Set[T] {
	var out Set[T]

	for _, e := range p {
		if keep(e) {
			out = append(out, e)
		}
	}

	return out
}
