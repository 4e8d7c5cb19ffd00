package template

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/evref/modest/pkg/api/modest"
	"github.com/fatih/color"
)

// Render writes a human readable table of the minimal suites and a summary
// of the search effort.
func Render(writer io.Writer, report *modest.Report) error {
	header := color.New(color.Bold)
	tabWriter := tabwriter.NewWriter(writer, 0, 8, 1, '\t', 0)
	if _, err := header.Fprintln(tabWriter, "Suite\tTests\tNames"); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	for i, s := range report.Suites {
		indices := make([]string, 0, len(s.Tests))
		for _, t := range s.Tests {
			indices = append(indices, fmt.Sprint(t))
		}
		if _, err := fmt.Fprintf(tabWriter, " #%d\t%s\t%s\n", i+1, strings.Join(indices, ","), strings.Join(s.Names, ", ")); err != nil {
			return fmt.Errorf("failed to write entry: %v", err)
		}
	}
	if _, err := header.Fprintln(tabWriter, "\t\t\nSearch Summary:\t\t"); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	if _, err := fmt.Fprintf(tabWriter, "Keeping %d of %d tests\t\t\n", report.Size, report.Stats.Tests); err != nil {
		return fmt.Errorf("failed to write summary: %v", err)
	}
	if _, err := fmt.Fprintf(tabWriter, "Maximum coverage: %d\t\t\n", report.MaxCoverage); err != nil {
		return fmt.Errorf("failed to write summary: %v", err)
	}
	if _, err := fmt.Fprintf(tabWriter, "Coverage computations: %d (%d pruned, %s saved)\t\t\n", report.Stats.OracleCalls, report.Stats.Pruned, toPercentage(report.Stats.Pruned, report.Stats.OracleCalls+report.Stats.Pruned)); err != nil {
		return fmt.Errorf("failed to write summary: %v", err)
	}
	if err := tabWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %v", err)
	}
	return nil
}

func toPercentage(part, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}
