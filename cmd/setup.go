package main

import (
	"github.com/spf13/cobra"

	"github.com/vadiminshakov/volind/internal/setup"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "interactively generate a config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		return setup.RunTUI(out)
	},
}

func init() {
	setupCmd.Flags().String("out", setup.DefaultFilename, "where to write the generated config")
}
