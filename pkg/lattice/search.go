/*
Package lattice searches the power-set lattice of a pool of tests for the
smallest suites which still reach the coverage of the whole pool.

The lattice is walked level by level, from the suites with n-1 tests down to
the suites with two tests. Every level is evaluated in parallel and only
after a level is fully classified does the search move on, because the
suites of a level which miss the maximum coverage are used to prune the next
level: under monotonic coverage no subset of such a suite can reach it.
*/
package lattice

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/evref/modest/pkg/suite"
	"github.com/sirupsen/logrus"
)

var ErrInvalidUniverse = errors.New("at least one test is required")

type Stats struct {
	// OracleCalls counts coverage computations, including the full suite.
	OracleCalls int `json:"oracleCalls"`
	// Pruned counts candidates classified without asking the oracle.
	Pruned int `json:"pruned"`
	// Levels counts the evaluated lattice levels, singletons and root included.
	Levels int `json:"levels"`
}

type Result struct {
	// Suites are the minimal suites with maximum coverage, sorted by their indices.
	Suites      []suite.Suite
	MaxCoverage int
	Stats       Stats
}

type options struct {
	workers int
}

type Option func(*options)

// WithWorkers bounds the number of concurrent oracle calls. Values below one
// fall back to the number of usable CPUs.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// Search returns all suites of minimal size whose coverage equals the
// coverage of the suite of all n tests. There is always at least one such
// suite, in the worst case the full suite itself.
func Search(n int, oracle Oracle, opts ...Option) (*Result, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w, but got %d", ErrInvalidUniverse, n)
	}
	if oracle == nil {
		return nil, fmt.Errorf("no coverage oracle provided")
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	root := suite.Root(n)
	c := &coordinator{oracle: oracle, workers: o.workers}
	result := &Result{}

	logrus.Infof("Computing coverage of the full suite of %d tests.", n)
	// the root sets the ceiling, so it is not checked against it
	maxCoverage, err := oracle.Coverage(root)
	if err != nil {
		return nil, fmt.Errorf("failed to compute coverage of suite %s: %w", root, err)
	}
	c.maxCoverage = maxCoverage
	result.MaxCoverage = maxCoverage
	result.Stats.OracleCalls++
	result.Stats.Levels++
	logrus.Infof("Maximum coverage is %d.", maxCoverage)

	// a single test is both the root and the only singleton
	if n == 1 {
		result.Suites = []suite.Suite{root}
		return result, nil
	}

	singletons, err := c.evaluateLevel(n, 1, nil)
	if err != nil {
		return nil, err
	}
	result.record(singletons)

	// any larger suite containing a maximal singleton has a redundant test
	if len(singletons.maximals) > 0 {
		return result.finish(singletons.maximals), nil
	}

	// (n-1)-suites have the root as only superset, which is maximal
	var current *level
	if n == 2 {
		// the 1-suites were already classified above
		current = singletons
	} else {
		current, err = c.evaluateLevel(n, n-1, nil)
		if err != nil {
			return nil, err
		}
		result.record(current)
	}

	if len(current.maximals) == 0 {
		logrus.Info("No suite with one test less reaches the maximum coverage.")
		return result.finish([]suite.Suite{root}), nil
	}

	for r := n - 2; r > 1; r-- {
		next, err := c.evaluateLevel(n, r, current.nonMaximals)
		if err != nil {
			return nil, err
		}
		result.record(next)

		// smaller suites can't recover the coverage either
		if len(next.maximals) == 0 {
			break
		}
		current = next
	}

	return result.finish(current.maximals), nil
}

func (r *Result) record(l *level) {
	r.Stats.OracleCalls += l.evaluated
	r.Stats.Pruned += l.pruned
	r.Stats.Levels++
}

func (r *Result) finish(suites []suite.Suite) *Result {
	suites = slices.Clone(suites)
	slices.SortFunc(suites, suite.Compare)
	r.Suites = suites
	logrus.Infof("Found %d minimal suites with %d tests after %d coverage computations, %d pruned.", len(suites), suites[0].Len(), r.Stats.OracleCalls, r.Stats.Pruned)
	return r
}
