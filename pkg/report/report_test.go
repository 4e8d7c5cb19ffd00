package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/evref/modest/pkg/api/modest"
	"github.com/evref/modest/pkg/lattice"
	"github.com/evref/modest/pkg/suite"
)

func newResult(t *testing.T, n int, suites ...[]int) *lattice.Result {
	result := &lattice.Result{MaxCoverage: 7, Stats: lattice.Stats{OracleCalls: 12, Pruned: 3, Levels: 4}}
	for _, tests := range suites {
		s, err := suite.New(n, tests...)
		if err != nil {
			t.Fatal(err)
		}
		result.Suites = append(result.Suites, s)
	}
	return result
}

func TestNew(t *testing.T) {
	g := NewGomegaWithT(t)

	report := New(newResult(t, 4, []int{0, 2}, []int{1, 3}), 4, []string{"a", "b", "c", "d"})
	g.Expect(report).To(Equal(&modest.Report{
		MaxCoverage: 7,
		Size:        2,
		Suites: []modest.SuiteReport{
			{Tests: []int{0, 2}, Names: []string{"a", "c"}},
			{Tests: []int{1, 3}, Names: []string{"b", "d"}},
		},
		Stats: modest.Stats{Tests: 4, OracleCalls: 12, Pruned: 3, Levels: 4},
	}))

	report = New(newResult(t, 2, []int{0, 1}), 2, nil)
	g.Expect(report.Suites[0].Names).To(BeNil())
}

func TestWriteLines(t *testing.T) {
	tests := []struct {
		name     string
		suites   [][]int
		expected string
	}{
		{name: "single suite", suites: [][]int{{2}}, expected: "2\n"},
		{name: "tied suites", suites: [][]int{{0, 1}, {0, 2}, {1, 2}}, expected: "0,1\n0,2\n1,2\n"},
		{name: "full suite", suites: [][]int{{0, 1, 2}}, expected: "0,1,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			buf := &bytes.Buffer{}
			g.Expect(WriteLines(buf, New(newResult(t, 3, tt.suites...), 3, nil))).To(Succeed())
			g.Expect(buf.String()).To(Equal(tt.expected))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	g := NewGomegaWithT(t)
	report := New(newResult(t, 3, []int{1}), 3, []string{"x", "y", "z"})

	buf := &bytes.Buffer{}
	g.Expect(WriteJSON(buf, report)).To(Succeed())
	decoded := &modest.Report{}
	g.Expect(json.Unmarshal(buf.Bytes(), decoded)).To(Succeed())
	g.Expect(decoded).To(Equal(report))

	path := filepath.Join(t.TempDir(), "report.json")
	g.Expect(WriteFile(report, path)).To(Succeed())
	data, err := os.ReadFile(path)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(string(data)).To(ContainSubstring(`"maxCoverage": 7`))
}
