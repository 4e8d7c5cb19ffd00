package template

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	. "github.com/onsi/gomega"
	"github.com/evref/modest/pkg/api/modest"
)

func TestRender(t *testing.T) {
	g := NewGomegaWithT(t)
	color.NoColor = true

	buf := &bytes.Buffer{}
	err := Render(buf, &modest.Report{
		MaxCoverage: 42,
		Size:        2,
		Suites: []modest.SuiteReport{
			{Tests: []int{0, 3}, Names: []string{"login", "logout"}},
			{Tests: []int{1, 3}, Names: []string{"signup", "logout"}},
		},
		Stats: modest.Stats{Tests: 5, OracleCalls: 15, Pruned: 5},
	})
	g.Expect(err).ToNot(HaveOccurred())

	out := buf.String()
	g.Expect(out).To(ContainSubstring("0,3"))
	g.Expect(out).To(ContainSubstring("signup, logout"))
	g.Expect(out).To(ContainSubstring("Keeping 2 of 5 tests"))
	g.Expect(out).To(ContainSubstring("Maximum coverage: 42"))
	g.Expect(out).To(ContainSubstring("(5 pruned, 25.0% saved)"))
}

func TestToPercentage(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(toPercentage(0, 0)).To(Equal("0%"))
	g.Expect(toPercentage(1, 3)).To(Equal("33.3%"))
}
