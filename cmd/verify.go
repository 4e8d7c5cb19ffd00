package main

import (
	"fmt"
	"slices"

	"github.com/evref/modest/pkg/lattice"
	"github.com/evref/modest/pkg/report"
	"github.com/evref/modest/pkg/setcover"
	"github.com/evref/modest/pkg/suite"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type verifyOpts struct {
	oracle  oracleHelperOpts
	workers int
	limit   int
}

var verifyopts = verifyOpts{}

func NewVerifyCmd() *cobra.Command {

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "cross-check the search against an exact set cover solver",
		Long: `runs the lattice search and additionally solves the same problem as a set cover with a SAT solver.
Fails if both disagree, which points to coverage data that is not monotonic or to a bug.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workers := cfg.Workers
			if cmd.Flags().Changed("workers") {
				workers = verifyopts.workers
			}
			oracle, err := loadOracle(cmd.Context(), &verifyopts.oracle, cfg)
			if err != nil {
				return err
			}

			log.Info("Searching minimal suites.")
			searched, err := lattice.Search(oracle.Tests(), oracle, lattice.WithWorkers(workers))
			if err != nil {
				return err
			}
			log.Info("Solving the set cover problem.")
			exact, err := setcover.MinimalCovers(oracle, verifyopts.limit)
			if err != nil {
				return err
			}

			if err := compareSuites(searched.Suites, exact, verifyopts.limit); err != nil {
				return err
			}
			log.Infof("Both agree on %d minimal suites.", len(searched.Suites))
			return report.WriteLines(cmd.OutOrStdout(), report.New(searched, oracle.Tests(), nil))
		},
	}

	addOracleHelperFlags(verifyCmd, &verifyopts.oracle)
	verifyCmd.Flags().IntVarP(&verifyopts.workers, "workers", "w", 0, "maximum number of concurrent coverage computations, 0 means one per CPU")
	verifyCmd.Flags().IntVar(&verifyopts.limit, "limit", 0, "compare at most this many suites found by the solver, 0 means all")
	return verifyCmd
}

// compareSuites checks that the solver found the same suites as the search.
// With a limit, every solver suite must be among the searched ones.
func compareSuites(searched, exact []suite.Suite, limit int) error {
	if len(exact) == 0 {
		return fmt.Errorf("the solver found no suite")
	}
	if searched[0].Len() != exact[0].Len() {
		return fmt.Errorf("the search found suites of %d tests, but the solver found suites of %d tests", searched[0].Len(), exact[0].Len())
	}
	for _, s := range exact {
		if !slices.ContainsFunc(searched, s.Equal) {
			return fmt.Errorf("the solver found suite %s which the search missed", s)
		}
	}
	if limit < 1 && len(searched) != len(exact) {
		return fmt.Errorf("the search found %d suites, but the solver found %d", len(searched), len(exact))
	}
	return nil
}
