package lattice

import (
	"context"
	"fmt"

	"github.com/evref/modest/pkg/combination"
	"github.com/evref/modest/pkg/suite"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// task is everything a worker needs to classify one candidate. The
// nonMaximals slice belongs to the previous level and is only read.
type task struct {
	candidate   suite.Suite
	nonMaximals []suite.Suite
}

// level holds the classification of all candidates of one level.
type level struct {
	r           int
	maximals    []suite.Suite
	nonMaximals []suite.Suite
	evaluated   int
	pruned      int
}

// buffer is the worker local part of a level. Buffers are merged once all
// workers are done, so workers never contend on shared state.
type buffer struct {
	maximals    []suite.Suite
	nonMaximals []suite.Suite
	evaluated   int
	pruned      int
}

type coordinator struct {
	oracle      Oracle
	workers     int
	maxCoverage int
}

// evaluateLevel classifies every r-subset of the universe. Candidates which
// are subsets of a non-maximal suite of the previous level are classified
// without asking the oracle. The call returns only after all candidates are
// classified, or with the first oracle failure.
func (c *coordinator) evaluateLevel(n, r int, nonMaximals []suite.Suite) (*level, error) {
	gen, err := combination.New(n, r)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Evaluating %d-suites: %d candidates, %d non-maximal supersets.", r, gen.Size(), len(nonMaximals))

	eg, ctx := errgroup.WithContext(context.Background())
	tasks := make(chan task, c.workers)
	buffers := make([]buffer, c.workers)

	eg.Go(func() error {
		defer close(tasks)
		for s, ok := gen.Next(); ok; s, ok = gen.Next() {
			select {
			case tasks <- task{candidate: s, nonMaximals: nonMaximals}:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 0; w < c.workers; w++ {
		buf := &buffers[w]
		eg.Go(func() error {
			for t := range tasks {
				if ctx.Err() != nil {
					// another worker failed, drain without scoring
					continue
				}
				if err := c.classify(t, buf); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := &level{r: r}
	for _, buf := range buffers {
		result.maximals = append(result.maximals, buf.maximals...)
		result.nonMaximals = append(result.nonMaximals, buf.nonMaximals...)
		result.evaluated += buf.evaluated
		result.pruned += buf.pruned
	}
	logrus.Infof("Level %d: %d maximal, %d non-maximal, %d pruned.", r, len(result.maximals), len(result.nonMaximals), result.pruned)
	return result, nil
}

func (c *coordinator) classify(t task, buf *buffer) error {
	for _, superset := range t.nonMaximals {
		// a subset of a non-maximal suite can't be maximal
		if t.candidate.IsSubsetOf(superset) {
			logrus.Debugf("Pruning %s, subset of non-maximal %s.", t.candidate, superset)
			buf.nonMaximals = append(buf.nonMaximals, t.candidate)
			buf.pruned++
			return nil
		}
	}

	coverage, err := c.score(t.candidate)
	if err != nil {
		return err
	}
	buf.evaluated++
	if coverage == c.maxCoverage {
		buf.maximals = append(buf.maximals, t.candidate)
	} else {
		buf.nonMaximals = append(buf.nonMaximals, t.candidate)
	}
	return nil
}

func (c *coordinator) score(s suite.Suite) (int, error) {
	coverage, err := c.oracle.Coverage(s)
	if err != nil {
		return 0, fmt.Errorf("failed to compute coverage of suite %s: %w", s, err)
	}
	logrus.Debugf("Suite %s covers %d.", s, coverage)
	if coverage > c.maxCoverage {
		logrus.Warnf("Suite %s covers %d, more than the full suite (%d). Coverage is not monotonic, results may be wrong.", s, coverage, c.maxCoverage)
	}
	return coverage, nil
}
