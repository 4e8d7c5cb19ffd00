/*
Package setcover computes minimal suites exactly, by encoding coverage as a
set cover problem and solving it with a SAT solver. It only applies to
oracles whose coverage is a weighted union of per-test elements and serves
as a cross-check for the lattice search.
*/
package setcover

import (
	"fmt"
	"slices"

	"github.com/crillab/gophersat/solver"
	"github.com/evref/modest/pkg/suite"
	"github.com/sirupsen/logrus"
)

// Instance describes which weighted elements every test covers.
type Instance interface {
	Tests() int
	Elements() int
	Weight(element int) int
	Covered(test int) []int
}

// MinimalCovers returns every suite of minimal size which covers all elements
// of positive weight reached by the whole pool. At most limit suites are
// returned, unless limit is below one.
//
// Suites are never empty: if nothing is covered at all, every single test is a
// minimal suite.
func MinimalCovers(inst Instance, limit int) ([]suite.Suite, error) {
	n := inst.Tests()
	if n < 1 {
		return nil, fmt.Errorf("at least one test is required, but got %d", n)
	}

	// only tests covering something get a solver variable, numbered from one
	vars := map[int]int{}
	var tests []int
	coveredBy := make([][]int, inst.Elements())
	for t := 0; t < n; t++ {
		for _, e := range inst.Covered(t) {
			if inst.Weight(e) <= 0 {
				continue
			}
			if _, exists := vars[t]; !exists {
				tests = append(tests, t)
				vars[t] = len(tests)
			}
			coveredBy[e] = append(coveredBy[e], vars[t])
		}
	}

	var constrs []solver.CardConstr
	for _, lits := range coveredBy {
		if len(lits) > 0 {
			constrs = append(constrs, solver.AtLeast1(lits...))
		}
	}
	logrus.Infof("Encoded %d of %d tests and %d elements to cover.", len(tests), n, len(constrs))

	if len(constrs) == 0 {
		var result []suite.Suite
		for t := 0; t < n && (limit < 1 || t < limit); t++ {
			result = append(result, suite.Singleton(n, t))
		}
		return result, nil
	}

	m := len(tests)
	size, err := minimalSize(m, constrs)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Minimal covers contain %d tests.", size)

	// no more than size tests may be chosen, i.e. at least m-size are not
	notChosen := make([]int, m)
	for v := range notChosen {
		notChosen[v] = -(v + 1)
	}
	constrs = append(constrs, solver.CardConstr{Lits: notChosen, AtLeast: m - size})

	var result []suite.Suite
	for limit < 1 || len(result) < limit {
		s := solver.New(solver.ParseCardConstrs(constrs))
		if s.Solve() != solver.Sat {
			break
		}
		var chosen []int
		var blocking []int
		for v, selected := range s.Model()[:m] {
			if selected {
				chosen = append(chosen, tests[v])
				blocking = append(blocking, -(v + 1))
			}
		}
		cover, err := suite.New(n, chosen...)
		if err != nil {
			return nil, err
		}
		logrus.Debugf("Found cover %s.", cover)
		result = append(result, cover)
		// exclude exactly this cover from the next round
		constrs = append(constrs, solver.AtLeast1(blocking...))
	}
	slices.SortFunc(result, suite.Compare)
	return result, nil
}

func minimalSize(n int, constrs []solver.CardConstr) (int, error) {
	pb := solver.ParseCardConstrs(constrs)
	lits := make([]solver.Lit, n)
	weights := make([]int, n)
	for t := 0; t < n; t++ {
		lits[t] = solver.IntToLit(int32(t + 1))
		weights[t] = 1
	}
	pb.SetCostFunc(lits, weights)
	cost := solver.New(pb).Minimize()
	if cost < 0 {
		return 0, fmt.Errorf("the coverage of the full suite can't be reproduced")
	}
	return cost, nil
}
