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

// Package bitword provides MSB-first bit-vector words over a fixed number
// of variables, plus the three-valued ('0'/'1'/'X') exception patterns the
// DFA kernel (spec §6) uses to describe transitions compactly.  Binary
// integer automata (spec §4.3.1) read one such word per transition, most
// significant bit first, with bit V-i corresponding to the i'th variable in
// canonical order.
package bitword

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Word is a concrete assignment of width bits, indexed MSB-first: Bit(0) is
// the most significant bit.
type Word struct {
	bits  *bitset.BitSet
	width uint
}

// NewWord constructs a zero word of the given width.
func NewWord(width uint) Word {
	return Word{bitset.New(width), width}
}

// FromMask builds a Word of the given width from the width low bits of
// mask, with bit 0 of the Word being the most significant bit of mask's
// width-bit representation.
func FromMask(mask uint64, width uint) Word {
	w := NewWord(width)

	for i := uint(0); i < width; i++ {
		// mask's bit (width-1-i) is the MSB-first bit i.
		if mask&(uint64(1)<<(width-1-i)) != 0 {
			w.SetBit(i, true)
		}
	}

	return w
}

// Width returns the number of bits in this word.
func (w Word) Width() uint { return w.width }

// Bit returns the i'th bit, MSB-first.
func (w Word) Bit(i uint) bool { return w.bits.Test(i) }

// SetBit sets the i'th bit, MSB-first.
func (w Word) SetBit(i uint, v bool) {
	if v {
		w.bits.Set(i)
	} else {
		w.bits.Clear(i)
	}
}

// Uint64 interprets this word as an unsigned integer, MSB-first.
func (w Word) Uint64() uint64 {
	var v uint64

	for i := uint(0); i < w.width; i++ {
		v <<= 1

		if w.Bit(i) {
			v |= 1
		}
	}

	return v
}

// TwosComplement interprets this word as a two's-complement signed integer:
// the most significant bit (Bit(0)) carries weight -2^(width-1).
func (w Word) TwosComplement() int64 {
	v := int64(w.Uint64())

	if w.width > 0 && w.Bit(0) {
		v -= int64(1) << w.width
	}

	return v
}

// String renders the word as a string of '0'/'1' characters, MSB-first.
func (w Word) String() string {
	var b strings.Builder

	for i := uint(0); i < w.width; i++ {
		if w.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	return b.String()
}

// Pattern is a three-valued ('0','1','X') exception pattern of fixed width,
// MSB-first, used to describe a single BDD kernel exception (spec §6: "bit
// patterns are character strings over {'0','1','X'} of length num_vars").
type Pattern []byte

// NewPattern constructs a pattern of the given width with every position
// don't-care ('X').
func NewPattern(width uint) Pattern {
	p := make(Pattern, width)
	for i := range p {
		p[i] = 'X'
	}

	return p
}

// Set fixes position i (MSB-first) to '0' or '1'.
func (p Pattern) Set(i uint, bit bool) {
	if bit {
		p[i] = '1'
	} else {
		p[i] = '0'
	}
}

// SetDontCare marks position i (MSB-first) as don't-care.
func (p Pattern) SetDontCare(i uint) { p[i] = 'X' }

// String renders the pattern, e.g. "01X1".
func (p Pattern) String() string { return string(p) }

// Matches reports whether the concrete word w satisfies this pattern.
func (p Pattern) Matches(w Word) bool {
	if uint(len(p)) != w.width {
		return false
	}

	for i, c := range p {
		switch c {
		case '0':
			if w.Bit(uint(i)) {
				return false
			}
		case '1':
			if !w.Bit(uint(i)) {
				return false
			}
		}
	}

	return true
}

// AllMasks calls visit once for every bit-mask in [0, 2^width), in
// ascending order, stopping early if visit returns false.  width must be
// small enough that 2^width is a reasonable enumeration (the binary
// integer automaton's alphabet size, i.e. the number of variables).
func AllMasks(width uint, visit func(mask uint64) bool) {
	total := uint64(1) << width

	for m := uint64(0); m < total; m++ {
		if !visit(m) {
			return
		}
	}
}

// InsertBit returns the (width+1)-bit word obtained by inserting bit at
// MSB-first position i into w, shifting positions i..width-1 one place to
// the right.  Used by existential bit-projection's subset construction to
// re-attach a dropped variable's concrete value when replaying a word
// against the original, wider automaton.
func InsertBit(w Word, i uint, bit bool) Word {
	out := NewWord(w.width + 1)

	for j := uint(0); j < i; j++ {
		out.SetBit(j, w.Bit(j))
	}

	out.SetBit(i, bit)

	for j := i; j < w.width; j++ {
		out.SetBit(j+1, w.Bit(j))
	}

	return out
}

// DropBit returns the (width-1)-bit word obtained by deleting the MSB-first
// position i from w, shifting positions i+1..width-1 one place to the left.
func DropBit(w Word, i uint) Word {
	out := NewWord(w.width - 1)

	for j := uint(0); j < i; j++ {
		out.SetBit(j, w.Bit(j))
	}

	for j := i + 1; j < w.width; j++ {
		out.SetBit(j-1, w.Bit(j))
	}

	return out
}

// CountOnes returns the number of set bits in the width-bit mask.
func CountOnes(mask uint64, width uint) uint {
	var n uint

	for i := uint(0); i < width; i++ {
		if mask&(uint64(1)<<i) != 0 {
			n++
		}
	}

	return n
}
