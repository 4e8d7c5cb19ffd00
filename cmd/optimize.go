package main

import (
	"github.com/evref/modest/pkg/lattice"
	"github.com/evref/modest/pkg/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type optimizeOpts struct {
	oracle  oracleHelperOpts
	workers int
	format  string
	output  string
}

var optimizeopts = optimizeOpts{}

func NewOptimizeCmd() *cobra.Command {

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "find the smallest suites with maximum coverage",
		Long: `searches the combinations of all tests for the smallest suites which reach the coverage of all tests together.
Every result line lists the indices of the tests of one suite. Multiple lines are equally small alternatives.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workers := cfg.Workers
			if cmd.Flags().Changed("workers") {
				workers = optimizeopts.workers
			}
			format := cfg.Format
			if cmd.Flags().Changed("format") {
				format = optimizeopts.format
			}

			oracle, err := loadOracle(cmd.Context(), &optimizeopts.oracle, cfg)
			if err != nil {
				return err
			}
			logrus.Info("Searching minimal suites.")
			result, err := lattice.Search(oracle.Tests(), oracle, lattice.WithWorkers(workers))
			if err != nil {
				return err
			}
			r := report.New(result, oracle.Tests(), oracle.Names())
			if optimizeopts.output != "" {
				logrus.Infof("Writing report to %s.", optimizeopts.output)
				if err := report.WriteFile(r, optimizeopts.output); err != nil {
					return err
				}
			}
			return writeReport(cmd.OutOrStdout(), format, r)
		},
	}

	addOracleHelperFlags(optimizeCmd, &optimizeopts.oracle)
	optimizeCmd.Flags().IntVarP(&optimizeopts.workers, "workers", "w", 0, "maximum number of concurrent coverage computations, 0 means one per CPU")
	optimizeCmd.Flags().StringVarP(&optimizeopts.format, "format", "f", "lines", "output format (lines, json, table)")
	optimizeCmd.Flags().StringVarP(&optimizeopts.output, "output", "o", "", "additionally write a JSON report to this file")
	return optimizeCmd
}
