package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/evref/modest/pkg/api/modest"
	"github.com/evref/modest/pkg/lattice"
)

// New describes a search result. Names are optional and indexed like the tests.
func New(result *lattice.Result, tests int, names []string) *modest.Report {
	report := &modest.Report{
		MaxCoverage: result.MaxCoverage,
		Suites:      []modest.SuiteReport{},
		Stats: modest.Stats{
			Tests:       tests,
			OracleCalls: result.Stats.OracleCalls,
			Pruned:      result.Stats.Pruned,
			Levels:      result.Stats.Levels,
		},
	}
	for _, s := range result.Suites {
		entry := modest.SuiteReport{Tests: s.Indices()}
		if len(names) > 0 {
			for _, i := range entry.Tests {
				entry.Names = append(entry.Names, names[i])
			}
		}
		report.Size = s.Len()
		report.Suites = append(report.Suites, entry)
	}
	return report
}

// WriteLines prints one line of comma-separated test indices per suite.
func WriteLines(w io.Writer, report *modest.Report) error {
	for _, s := range report.Suites {
		indices := make([]string, 0, len(s.Tests))
		for _, t := range s.Tests {
			indices = append(indices, strconv.Itoa(t))
		}
		if _, err := fmt.Fprintln(w, strings.Join(indices, ",")); err != nil {
			return fmt.Errorf("failed to write suite: %v", err)
		}
	}
	return nil
}

func WriteJSON(w io.Writer, report *modest.Report) error {
	data, err := json.MarshalIndent(report, "", "\t")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteFile stores the report as JSON.
func WriteFile(report *modest.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
