package lattice

import "github.com/evref/modest/pkg/suite"

// Oracle computes the coverage score of a suite.
//
// Implementations must be deterministic and safe for concurrent use. The
// search relies on coverage being monotonic non-decreasing under suite
// inclusion: for A ⊆ B, Coverage(A) <= Coverage(B). This is not verified. An
// oracle which violates it can make the search prune suites which would have
// reached the maximum coverage.
type Oracle interface {
	Coverage(s suite.Suite) (int, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(s suite.Suite) (int, error)

func (f OracleFunc) Coverage(s suite.Suite) (int, error) {
	return f(s)
}
