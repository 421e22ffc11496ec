package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/cvterm/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive résumé",
	Long: `Starts a terminal session. On a TTY it opens the full-screen view with mouse
support; when input or output is redirected it reads one command per line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		quiet, _ := cmd.Flags().GetBool("quiet")
		return cli.Run(cli.RunOptions{
			Options: sharedOptions(cmd),
			Plain:   plain,
			Quiet:   quiet,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("plain", false, "Use the line-mode runner even on a terminal")
	runCmd.Flags().BoolP("quiet", "q", false, "Skip the boot sequence in line mode")

	// 'run' is the default when no command is given.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
