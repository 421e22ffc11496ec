package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/cvterm"
	"github.com/aretw0/cvterm/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cvterm",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(cmd.OutOrStdout(), cvterm.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
