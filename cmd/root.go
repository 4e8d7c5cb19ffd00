package main

import (
	"fmt"
	"os"

	"github.com/evref/modest/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOpts struct {
	config   string
	logLevel string
}

var rootopts = rootOpts{}

// cfg holds the loaded config file, flags of the subcommands take precedence.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "modest",
	Short: "modest finds the smallest test suites which keep the full coverage",
	Long: `modest searches all combinations of a pool of tests for the smallest suites which still reach the coverage of the whole pool.
Every test of such a suite is non-redundant. Coverage is read from one Go coverage profile per test or from a coverage matrix.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(rootopts.config)
		if err != nil {
			return err
		}
		cfg = loaded
		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = rootopts.logLevel
		}
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		logrus.SetLevel(lvl)
		return nil
	},
}

func Execute() {
	rootCmd.PersistentFlags().StringVarP(&rootopts.config, "config", "c", "", "config file, by default "+config.SearchPath+" is searched in the XDG config directories")
	rootCmd.PersistentFlags().StringVar(&rootopts.logLevel, "log-level", "info", "log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.AddCommand(NewOptimizeCmd())
	rootCmd.AddCommand(NewCountCmd())
	rootCmd.AddCommand(NewVerifyCmd())
	rootCmd.AddCommand(NewInitCmd())
	if err := rootCmd.Execute(); err != nil {
		// stdout carries results, so failures are marked there as well
		fmt.Println("ERROR")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
