/*
Package combination lazily enumerates every r-element subset of an n-element
universe as a bit pattern, without materializing the power set.
*/
package combination

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/evref/modest/pkg/suite"
)

var ErrInvalidSize = errors.New("invalid combination size")

// Generator walks all C(n, r) patterns exactly once. The order is deterministic
// but not lexicographic. A Generator can not be restarted.
type Generator struct {
	n       int
	r       int
	current []uint64
	done    bool
}

func New(n, r int) (*Generator, error) {
	if n < 0 || r < 0 || r > n {
		return nil, fmt.Errorf("%w: can't choose %d out of %d", ErrInvalidSize, r, n)
	}
	g := &Generator{
		n:       n,
		r:       r,
		current: make([]uint64, (n+63)/64),
	}
	g.setRange(0, r)
	return g, nil
}

// Size is the number of patterns the generator produces in total.
func (g *Generator) Size() int64 {
	return Binomial(g.n, g.r)
}

// Next returns the next pattern. The second return value is false once the
// sequence is exhausted.
func (g *Generator) Next() (suite.Suite, bool) {
	if g.done {
		return suite.Suite{}, false
	}
	result := suite.FromWords(g.n, g.current)

	// exactly one pattern exists
	if g.r == 0 || g.r == g.n {
		g.done = true
		return result, true
	}

	pivot := g.prevSetBit(g.n - 1)

	// the highest bit can move up by one
	if pivot < g.n-1 {
		g.clear(pivot)
		g.set(pivot + 1)
		return result, true
	}

	// the run of ones ending at the top is pushed down to the next free one
	gap := g.prevClearBit(pivot - 1)
	ones := pivot - gap

	pivot = g.prevSetBit(gap - 1)
	if pivot == -1 {
		g.done = true
		return result, true
	}

	g.clear(pivot)
	g.setRange(pivot+1, pivot+ones+2)
	g.clearRange(pivot+ones+2, g.n)
	return result, true
}

func (g *Generator) get(i int) bool {
	return g.current[i/64]&(1<<(uint(i)%64)) != 0
}

func (g *Generator) set(i int) {
	g.current[i/64] |= 1 << (uint(i) % 64)
}

func (g *Generator) clear(i int) {
	g.current[i/64] &^= 1 << (uint(i) % 64)
}

// setRange sets all bits in [from, to).
func (g *Generator) setRange(from, to int) {
	for i := from; i < to; i++ {
		g.set(i)
	}
}

// clearRange clears all bits in [from, to).
func (g *Generator) clearRange(from, to int) {
	for i := from; i < to; i++ {
		g.clear(i)
	}
}

// prevSetBit returns the highest set index <= from, or -1.
func (g *Generator) prevSetBit(from int) int {
	for i := from; i >= 0; i-- {
		if g.get(i) {
			return i
		}
	}
	return -1
}

// prevClearBit returns the highest clear index <= from, or -1.
func (g *Generator) prevClearBit(from int) int {
	for i := from; i >= 0; i-- {
		if !g.get(i) {
			return i
		}
	}
	return -1
}

// Binomial returns C(n, r) without enumerating. It returns 0 for r outside
// of [0, n] and saturates at math.MaxInt64 when the result does not fit.
func Binomial(n, r int) int64 {
	if r < 0 || r > n {
		return 0
	}
	if r > n-r {
		r = n - r
	}
	result := uint64(1)
	for i := 1; i <= r; i++ {
		// result is C(n, i-1), the product is exact in 128 bits
		hi, lo := bits.Mul64(result, uint64(n-i+1))
		if hi >= uint64(i) {
			return math.MaxInt64
		}
		result, _ = bits.Div64(hi, lo, uint64(i))
		if result > math.MaxInt64 {
			return math.MaxInt64
		}
	}
	return int64(result)
}
