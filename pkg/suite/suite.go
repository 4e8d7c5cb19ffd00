/*
Package suite models a test suite as an immutable, fixed-width bit-vector over a
universe of n candidate tests. Bit i is set when test i is part of the suite.
*/
package suite

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

const wordSize = 64

// Suite is an immutable selection of tests out of a universe of n tests.
type Suite struct {
	n     int
	words []uint64
}

func wordsFor(n int) int {
	return (n + wordSize - 1) / wordSize
}

// New creates the suite over a universe of n tests which contains the given tests.
func New(n int, tests ...int) (Suite, error) {
	if n < 0 {
		return Suite{}, fmt.Errorf("universe size must not be negative, but got %d", n)
	}
	s := Suite{n: n, words: make([]uint64, wordsFor(n))}
	for _, t := range tests {
		if t < 0 || t >= n {
			return Suite{}, fmt.Errorf("test %d is outside of the universe [0, %d)", t, n)
		}
		s.words[t/wordSize] |= 1 << (uint(t) % wordSize)
	}
	return s, nil
}

// Root returns the suite which contains all n tests.
func Root(n int) Suite {
	s := Suite{n: n, words: make([]uint64, wordsFor(n))}
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	if rem := n % wordSize; rem != 0 {
		s.words[len(s.words)-1] = (1 << uint(rem)) - 1
	}
	return s
}

// Singleton returns the suite which only contains test i.
func Singleton(n, i int) Suite {
	s := Suite{n: n, words: make([]uint64, wordsFor(n))}
	s.words[i/wordSize] = 1 << (uint(i) % wordSize)
	return s
}

// FromWords copies a raw word representation. Bits at or above n are dropped.
func FromWords(n int, words []uint64) Suite {
	s := Suite{n: n, words: make([]uint64, wordsFor(n))}
	copy(s.words, words)
	if rem := n % wordSize; rem != 0 && len(s.words) > 0 {
		s.words[len(s.words)-1] &= (1 << uint(rem)) - 1
	}
	return s
}

// Universe is the number of candidate tests the suite was drawn from.
func (s Suite) Universe() int {
	return s.n
}

// Len is the number of tests in the suite.
func (s Suite) Len() int {
	count := 0
	for _, w := range s.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// Has reports whether test i is part of the suite.
func (s Suite) Has(i int) bool {
	if i < 0 || i >= s.n {
		return false
	}
	return s.words[i/wordSize]&(1<<(uint(i)%wordSize)) != 0
}

// IsSubsetOf reports whether every test of s is also part of other. Suites
// over different universes are never subsets of each other.
func (s Suite) IsSubsetOf(other Suite) bool {
	if s.n != other.n {
		return false
	}
	for i, w := range s.words {
		if w&other.words[i] != w {
			return false
		}
	}
	return true
}

// Equal reports whether both suites select the same tests out of the same universe.
func (s Suite) Equal(other Suite) bool {
	if s.n != other.n {
		return false
	}
	for i, w := range s.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

// Indices returns the tests of the suite in ascending order.
func (s Suite) Indices() []int {
	indices := make([]int, 0, s.Len())
	for i, w := range s.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			indices = append(indices, i*wordSize+tz)
			w &= w - 1
		}
	}
	return indices
}

// String renders the suite as comma-separated ascending test indices.
func (s Suite) String() string {
	var b strings.Builder
	for i, idx := range s.Indices() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

// Key is a compact identity usable as a map key.
func (s Suite) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.n))
	for _, w := range s.words {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(w, 16))
	}
	return b.String()
}

// Compare orders suites by their ascending index lists, shorter prefixes first.
func Compare(a, b Suite) int {
	ai, bi := a.Indices(), b.Indices()
	for i := 0; i < len(ai) && i < len(bi); i++ {
		if ai[i] != bi[i] {
			if ai[i] < bi[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ai) < len(bi):
		return -1
	case len(ai) > len(bi):
		return 1
	}
	return 0
}
