package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/evref/modest/pkg/api/modest"
	"github.com/evref/modest/pkg/config"
)

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected *modest.Config
		err      string
	}{
		{
			name:     "empty file keeps defaults",
			content:  "",
			expected: config.Default(),
		},
		{
			name: "all fields",
			content: `workers: 3
logLevel: debug
format: json
profiles:
- a.out
- b.out
matrix: matrix.yaml
`,
			expected: &modest.Config{
				Workers:  3,
				LogLevel: "debug",
				Format:   modest.FormatJSON,
				Profiles: []string{"a.out", "b.out"},
				Matrix:   "matrix.yaml",
			},
		},
		{
			name:    "unknown format",
			content: "format: xml\n",
			err:     "unknown output format 'xml'",
		},
		{
			name:    "negative workers",
			content: "workers: -1\n",
			err:     "workers must not be negative, but got -1",
		},
		{
			name:    "bad log level",
			content: "logLevel: loud\n",
			err:     "not a valid logrus Level",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			cfg, err := config.LoadFile(writeFile(t, tt.content))
			if tt.err != "" {
				g.Expect(err).To(MatchError(ContainSubstring(tt.err)))
				g.Expect(cfg).To(BeNil())
				return
			}
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(cfg).To(Equal(tt.expected))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	g := NewGomegaWithT(t)
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	g.Expect(err).To(HaveOccurred())
}

func TestInit(t *testing.T) {
	g := NewGomegaWithT(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	g.Expect(config.Init(path)).To(Succeed())
	cfg, err := config.LoadFile(path)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg).To(Equal(config.Default()))

	g.Expect(config.Init(path)).To(MatchError(ContainSubstring("already exists")))
}
