package coverage

import (
	"fmt"
	"os"
	"slices"

	"github.com/evref/modest/pkg/api/modest"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"sigs.k8s.io/yaml"
)

// LoadMatrix reads a coverage matrix from a YAML or JSON file.
func LoadMatrix(path string) (*modest.Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage matrix %s: %v", path, err)
	}
	matrix := &modest.Matrix{}
	if err := yaml.Unmarshal(data, matrix); err != nil {
		return nil, fmt.Errorf("failed to parse coverage matrix %s: %v", path, err)
	}
	return matrix, nil
}

// FromMatrix creates an oracle where every element weighs one.
func FromMatrix(matrix *modest.Matrix) (*Oracle, error) {
	if len(matrix.Tests) == 0 {
		return nil, fmt.Errorf("coverage matrix contains no tests")
	}

	names := []string{}
	seenNames := map[string]bool{}
	elements := map[string]int{}
	for i, test := range matrix.Tests {
		name := test.Name
		if name == "" {
			name = fmt.Sprintf("test-%d", i)
		}
		if seenNames[name] {
			return nil, fmt.Errorf("test %s is listed more than once", name)
		}
		seenNames[name] = true
		names = append(names, name)
		for _, e := range test.Covers {
			elements[e] = 0
		}
	}

	keys := maps.Keys(elements)
	slices.Sort(keys)
	weights := make([]int, len(keys))
	for i, k := range keys {
		elements[k] = i
		weights[i] = 1
	}

	o := newOracle(names, weights)
	for i, test := range matrix.Tests {
		for _, e := range test.Covers {
			o.markCovered(i, elements[e])
		}
	}
	logrus.Infof("Loaded %d tests covering %d elements.", len(names), len(keys))
	o.warnUncovered()
	return o, nil
}
