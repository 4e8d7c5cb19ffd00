package main

import (
	"context"
	"fmt"
	"io"

	"github.com/evref/modest/cmd/template"
	"github.com/evref/modest/pkg/api/modest"
	"github.com/evref/modest/pkg/coverage"
	"github.com/evref/modest/pkg/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type oracleHelperOpts struct {
	profiles []string
	matrix   string
}

func addOracleHelperFlags(cmd *cobra.Command, opts *oracleHelperOpts) {
	cmd.Flags().StringArrayVarP(&opts.profiles, "profile", "p", nil, "Go coverage profile of a single test, or a directory or archive with one profile per test. Can be specified multiple times")
	cmd.Flags().StringVarP(&opts.matrix, "matrix", "m", "", "coverage matrix file listing the elements every test covers")
}

// loadOracle builds the coverage oracle from flags, falling back to the config file.
func loadOracle(ctx context.Context, opts *oracleHelperOpts, cfg *modest.Config) (*coverage.Oracle, error) {
	profiles, matrix := opts.profiles, opts.matrix
	if len(profiles) == 0 && matrix == "" {
		profiles, matrix = cfg.Profiles, cfg.Matrix
	}

	switch {
	case len(profiles) > 0 && matrix != "":
		return nil, fmt.Errorf("coverage profiles and a coverage matrix can't be combined")
	case matrix != "":
		logrus.Infof("Loading coverage matrix %s.", matrix)
		m, err := coverage.LoadMatrix(matrix)
		if err != nil {
			return nil, err
		}
		return coverage.FromMatrix(m)
	case len(profiles) > 0:
		logrus.Info("Loading coverage profiles.")
		loaded, err := coverage.LoadProfiles(ctx, profiles)
		if err != nil {
			return nil, err
		}
		return coverage.FromProfiles(loaded)
	}
	return nil, fmt.Errorf("either coverage profiles or a coverage matrix are required")
}

func writeReport(w io.Writer, format string, r *modest.Report) error {
	switch format {
	case modest.FormatLines:
		return report.WriteLines(w, r)
	case modest.FormatJSON:
		return report.WriteJSON(w, r)
	case modest.FormatTable:
		return template.Render(w, r)
	}
	return fmt.Errorf("unknown output format '%s'", format)
}
