package main

import (
	"github.com/adrg/xdg"
	"github.com/evref/modest/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type initOpts struct {
	out string
}

var initopts = initOpts{}

func NewInitCmd() *cobra.Command {

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with the default settings",
		Long:  `Create a config file with the default settings. Without an explicit output it is placed in the XDG config directory where modest looks for it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := initopts.out
			if out == "" {
				var err error
				out, err = xdg.ConfigFile(config.SearchPath)
				if err != nil {
					return err
				}
			}
			logrus.Infof("Writing config file %s.", out)
			return config.Init(out)
		},
	}

	initCmd.Flags().StringVarP(&initopts.out, "output", "o", "", "where to write the config file")
	return initCmd
}
