/*
Package coverage provides coverage oracles backed by per-test coverage data.

Every test contributes the set of coverable elements it reached, and each
element carries a weight. The coverage of a suite is the total weight of the
union of its tests' elements, which is monotonic under suite inclusion.
*/
package coverage

import (
	"fmt"
	"math/bits"

	"github.com/evref/modest/pkg/suite"
	"github.com/sirupsen/logrus"
)

type Oracle struct {
	names []string
	// weights holds the weight of every coverable element
	weights []int
	// covers holds per test a bitset over the elements
	covers [][]uint64
}

func newOracle(names []string, weights []int) *Oracle {
	o := &Oracle{
		names:   names,
		weights: weights,
		covers:  make([][]uint64, len(names)),
	}
	for i := range o.covers {
		o.covers[i] = make([]uint64, (len(weights)+63)/64)
	}
	return o
}

func (o *Oracle) markCovered(test, element int) {
	o.covers[test][element/64] |= 1 << (uint(element) % 64)
}

// warnUncovered reports tests which add nothing to any score, including
// tests which only reach elements without weight.
func (o *Oracle) warnUncovered() {
	for i, name := range o.names {
		weight := 0
		for _, e := range o.Covered(i) {
			weight += o.weights[e]
		}
		if weight == 0 {
			logrus.Warnf("Test %d (%s) covers nothing.", i, name)
		}
	}
}

// Tests is the number of tests, the size of the search universe.
func (o *Oracle) Tests() int {
	return len(o.names)
}

// Names returns the test names, indexed like the suites.
func (o *Oracle) Names() []string {
	return o.names
}

// Elements is the number of distinct coverable elements.
func (o *Oracle) Elements() int {
	return len(o.weights)
}

func (o *Oracle) Weight(element int) int {
	return o.weights[element]
}

// Covered returns the indices of the elements test i covers.
func (o *Oracle) Covered(i int) []int {
	var result []int
	for j, w := range o.covers[i] {
		for w != 0 {
			result = append(result, j*64+bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
	return result
}

// Coverage returns the total weight of the elements covered by any test of
// the suite. It is safe for concurrent use.
func (o *Oracle) Coverage(s suite.Suite) (int, error) {
	if s.Universe() != len(o.names) {
		return 0, fmt.Errorf("suite is drawn from %d tests, but coverage data exists for %d", s.Universe(), len(o.names))
	}
	merged := make([]uint64, (len(o.weights)+63)/64)
	for _, i := range s.Indices() {
		for j, w := range o.covers[i] {
			merged[j] |= w
		}
	}
	total := 0
	for j, w := range merged {
		for w != 0 {
			total += o.weights[j*64+bits.TrailingZeros64(w)]
			w &= w - 1
		}
	}
	return total, nil
}
