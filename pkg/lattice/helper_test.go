package lattice

import (
	"math/bits"
	"math/rand"
	"sync"

	"github.com/evref/modest/pkg/suite"
)

// unionCoverage scores a suite with the number of distinct elements its tests cover.
func unionCoverage(covers [][]string) func(s suite.Suite) int {
	return func(s suite.Suite) int {
		seen := map[string]struct{}{}
		for _, i := range s.Indices() {
			for _, e := range covers[i] {
				seen[e] = struct{}{}
			}
		}
		return len(seen)
	}
}

func unionOracle(covers [][]string) Oracle {
	f := unionCoverage(covers)
	return OracleFunc(func(s suite.Suite) (int, error) {
		return f(s), nil
	})
}

// recordingOracle remembers every suite it was asked about.
type recordingOracle struct {
	lock     sync.Mutex
	coverage func(s suite.Suite) int
	asked    []suite.Suite
}

func (r *recordingOracle) Coverage(s suite.Suite) (int, error) {
	r.lock.Lock()
	r.asked = append(r.asked, s)
	r.lock.Unlock()
	return r.coverage(s), nil
}

// randomCovers assigns every test a random subset of elements.
func randomCovers(rnd *rand.Rand, n, elements int) [][]string {
	covers := make([][]string, n)
	for i := range covers {
		for e := 0; e < elements; e++ {
			if rnd.Intn(3) == 0 {
				covers[i] = append(covers[i], string(rune('a'+e)))
			}
		}
	}
	return covers
}

// bruteForceMinimal scores every non-empty suite and returns the smallest
// ones reaching the coverage of the full suite, as strings.
func bruteForceMinimal(n int, coverage func(s suite.Suite) int) []string {
	maxCoverage := coverage(suite.Root(n))
	best := n + 1
	var result []string
	for mask := uint64(1); mask < 1<<uint(n); mask++ {
		size := bits.OnesCount64(mask)
		if size > best {
			continue
		}
		s := suite.FromWords(n, []uint64{mask})
		if coverage(s) != maxCoverage {
			continue
		}
		if size < best {
			best = size
			result = nil
		}
		result = append(result, s.String())
	}
	return result
}

func toStrings(suites []suite.Suite) []string {
	result := []string{}
	for _, s := range suites {
		result = append(result, s.String())
	}
	return result
}
