// Package bitset provides the fixed-capacity dense bitset and bit-encoded
// adjacency matrix that every branch-and-bound search in this repository is
// built on (§4.A of the design).
//
// A FixedBitSet's word slice is allocated once, at a capacity chosen by
// Capacity from a small ladder of word-counts, and never reallocated: every
// operation mutates a bitset in place, and a search that needs a separate
// candidate set for a recursive call takes a Clone, which allocates a new
// word slice of the same capacity.
package bitset

import "math/bits"

const wordBits = 64

// FixedBitSet is a set over {0..n-1} for some n fixed at construction,
// represented as a fixed number of 64-bit words. New and SetAll leave every
// bit at or beyond n zero. The counting, searching, iterating and comparing
// operations read whole words, so a bit at or beyond n that a caller sets
// (with Set, or by shrinking the set with Resize) is seen by them like any
// other bit.
type FixedBitSet struct {
	w []uint64
	n int // active length in bits
}

// New returns a FixedBitSet with capacity for exactly words 64-bit words,
// with its active length set to n. words*64 must be >= n.
func New(words, n int) FixedBitSet {
	return FixedBitSet{w: make([]uint64, words), n: n}
}

// Len returns the active length in bits.
func (s *FixedBitSet) Len() int { return s.n }

// Resize sets the active length. It does not clear or extend bit values;
// callers that need a clean set should call ClearAll or SetAll afterwards.
func (s *FixedBitSet) Resize(n int) { s.n = n }

// Clone returns an independent copy backed by its own word slice.
func (s *FixedBitSet) Clone() FixedBitSet {
	w := make([]uint64, len(s.w))
	copy(w, s.w)
	return FixedBitSet{w: w, n: s.n}
}

// CopyFrom overwrites the receiver's bits (and active length) with src's.
// The receiver must have at least as many words as src.
func (s *FixedBitSet) CopyFrom(src *FixedBitSet) {
	copy(s.w, src.w)
	for i := len(src.w); i < len(s.w); i++ {
		s.w[i] = 0
	}
	s.n = src.n
}

func (s *FixedBitSet) mask() {
	last := s.n / wordBits
	if last >= len(s.w) {
		return
	}
	s.w[last] &= (uint64(1) << uint(s.n%wordBits)) - 1
	for i := last + 1; i < len(s.w); i++ {
		s.w[i] = 0
	}
}

// SetAll sets every bit below the active length.
func (s *FixedBitSet) SetAll() {
	for i := range s.w {
		s.w[i] = ^uint64(0)
	}
	s.mask()
}

// ClearAll clears every bit.
func (s *FixedBitSet) ClearAll() {
	for i := range s.w {
		s.w[i] = 0
	}
}

// Set sets bit i to 1.
func (s *FixedBitSet) Set(i int) {
	s.w[i/wordBits] |= uint64(1) << uint(i%wordBits)
}

// Unset clears bit i to 0.
func (s *FixedBitSet) Unset(i int) {
	s.w[i/wordBits] &^= uint64(1) << uint(i%wordBits)
}

// SetBit sets bit i to v (0 or 1), mirroring the teacher's bits.Bits API.
func (s *FixedBitSet) SetBit(i, v int) {
	if v != 0 {
		s.Set(i)
	} else {
		s.Unset(i)
	}
}

// Test reports whether bit i is set.
func (s *FixedBitSet) Test(i int) bool {
	return s.w[i/wordBits]&(uint64(1)<<uint(i%wordBits)) != 0
}

// Bit returns 0 or 1.
func (s *FixedBitSet) Bit(i int) int {
	if s.Test(i) {
		return 1
	}
	return 0
}

// PopCount returns the number of set bits.
func (s *FixedBitSet) PopCount() int {
	c := 0
	for _, word := range s.w {
		c += bits.OnesCount64(word)
	}
	return c
}

// AllZeros reports whether the set is empty.
func (s *FixedBitSet) AllZeros() bool {
	for _, word := range s.w {
		if word != 0 {
			return false
		}
	}
	return true
}

// FirstSet returns the lowest set bit and true, or (0, false) if empty.
func (s *FixedBitSet) FirstSet() (int, bool) {
	for i, word := range s.w {
		if word != 0 {
			return i*wordBits + bits.TrailingZeros64(word), true
		}
	}
	return 0, false
}

// LastSet returns the highest set bit and true, or (0, false) if empty.
func (s *FixedBitSet) LastSet() (int, bool) {
	for i := len(s.w) - 1; i >= 0; i-- {
		if s.w[i] != 0 {
			return i*wordBits + (wordBits - 1 - bits.LeadingZeros64(s.w[i])), true
		}
	}
	return 0, false
}

// Union sets the receiver to the union of itself and other.
func (s *FixedBitSet) Union(other *FixedBitSet) {
	for i := range s.w {
		s.w[i] |= other.w[i]
	}
}

// Intersect sets the receiver to the intersection of itself and other.
func (s *FixedBitSet) Intersect(other *FixedBitSet) {
	for i := range s.w {
		s.w[i] &= other.w[i]
	}
}

// IntersectComplement sets the receiver to its intersection with the
// complement of other (restricted to the active length).
func (s *FixedBitSet) IntersectComplement(other *FixedBitSet) {
	for i := range s.w {
		s.w[i] &^= other.w[i]
	}
}

// Equal reports whether s and other have the same active length and
// identical words.
func (s *FixedBitSet) Equal(other *FixedBitSet) bool {
	if s.n != other.n {
		return false
	}
	for i := range s.w {
		if s.w[i] != other.w[i] {
			return false
		}
	}
	return true
}

// IterateOnes calls f for every set bit in ascending order, stopping early
// if f returns false. It returns false iff f returned false. This mirrors
// the teacher's bits.Bits.IterateOnes, used throughout the colour-class
// order and the CCO/CB branching loops.
func (s *FixedBitSet) IterateOnes(f func(i int) bool) bool {
	for wi, word := range s.w {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			if !f(wi*wordBits + b) {
				return false
			}
			word &= word - 1
		}
	}
	return true
}
