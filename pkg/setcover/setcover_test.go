package setcover

import (
	"fmt"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/evref/modest/pkg/api/modest"
	"github.com/evref/modest/pkg/coverage"
	"github.com/evref/modest/pkg/lattice"
	"github.com/evref/modest/pkg/suite"
)

func newMatrix(covers ...[]string) *modest.Matrix {
	m := &modest.Matrix{}
	for i, c := range covers {
		m.Tests = append(m.Tests, modest.Test{Name: fmt.Sprintf("t%d", i), Covers: c})
	}
	return m
}

func toStrings(suites []suite.Suite) []string {
	result := []string{}
	for _, s := range suites {
		result = append(result, s.String())
	}
	return result
}

func TestMinimalCovers(t *testing.T) {
	tests := []struct {
		name     string
		matrix   *modest.Matrix
		limit    int
		expected []string
	}{
		{
			name:     "one test covers everything",
			matrix:   newMatrix([]string{"A"}, []string{"B"}, []string{"A", "B"}),
			expected: []string{"2"},
		},
		{
			name:     "disjoint tests",
			matrix:   newMatrix([]string{"A"}, []string{"B"}, []string{"C"}),
			expected: []string{"0,1,2"},
		},
		{
			name:     "tied pairs",
			matrix:   newMatrix([]string{"A"}, []string{"B"}, []string{"A"}),
			expected: []string{"0,1", "1,2"},
		},
		{
			name:     "tests covering nothing are never chosen",
			matrix:   newMatrix([]string{}, []string{"A", "B"}, []string{}),
			expected: []string{"1"},
		},
		{
			name:     "nothing covered",
			matrix:   newMatrix([]string{}, []string{}),
			expected: []string{"0", "1"},
		},
		{
			name:     "limited",
			matrix:   newMatrix([]string{"A", "B"}, []string{"B", "C"}, []string{"A", "C"}),
			limit:    2,
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			oracle, err := coverage.FromMatrix(tt.matrix)
			g.Expect(err).ToNot(HaveOccurred())

			covers, err := MinimalCovers(oracle, tt.limit)
			g.Expect(err).ToNot(HaveOccurred())
			if tt.limit > 0 {
				g.Expect(covers).To(HaveLen(tt.limit))
				for _, c := range covers {
					g.Expect(c.Len()).To(Equal(2))
				}
				return
			}
			g.Expect(toStrings(covers)).To(Equal(tt.expected))
		})
	}
}

func TestMatchesLatticeSearch(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 25; i++ {
		n := 1 + rnd.Intn(7)
		var covers [][]string
		for j := 0; j < n; j++ {
			var c []string
			for e := 0; e < 6; e++ {
				if rnd.Intn(3) == 0 {
					c = append(c, fmt.Sprintf("e%d", e))
				}
			}
			covers = append(covers, c)
		}
		t.Run(fmt.Sprintf("%d: %v", i, covers), func(t *testing.T) {
			g := NewGomegaWithT(t)
			oracle, err := coverage.FromMatrix(newMatrix(covers...))
			g.Expect(err).ToNot(HaveOccurred())

			exact, err := MinimalCovers(oracle, 0)
			g.Expect(err).ToNot(HaveOccurred())
			searched, err := lattice.Search(n, oracle)
			g.Expect(err).ToNot(HaveOccurred())

			g.Expect(toStrings(exact)).To(Equal(toStrings(searched.Suites)))
		})
	}
}
