package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/evref/modest/pkg/combination"
	"github.com/spf13/cobra"
)

func NewCountCmd() *cobra.Command {

	countCmd := &cobra.Command{
		Use:   "count <tests> <size>",
		Short: "print the number of suites of a given size",
		Long:  `prints how many distinct suites of the given size can be drawn from a pool of tests, which bounds the work of one search level`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid number of tests '%s': %v", args[0], err)
			}
			r, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid suite size '%s': %v", args[1], err)
			}
			gen, err := combination.New(n, r)
			if err != nil {
				return err
			}
			size := gen.Size()
			if size == math.MaxInt64 {
				return fmt.Errorf("choosing %d out of %d gives more than %d suites", r, n, size)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), size)
			return err
		},
	}
	return countCmd
}
