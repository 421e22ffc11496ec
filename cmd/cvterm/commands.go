package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/cvterm/internal/cli"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the available résumé commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListCommands(cmd.OutOrStdout(), sharedOptions(cmd))
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <command>",
	Short: "Run one command and print its output",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Exec(cmd.OutOrStdout(), sharedOptions(cmd), strings.Join(args, " "))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the résumé as Markdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		return cli.Export(cmd.OutOrStdout(), sharedOptions(cmd), raw)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <resume.yaml>",
	Short: "Check a résumé document",
	Long:  `Loads the document and builds the command registry, reporting missing or duplicate commands.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(cmd.OutOrStdout(), args[0])
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each command was run",
	Long:  `Reads the usage counters. They persist only with --redis-addr or --usage-file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Stats(cmd.OutOrStdout(), sharedOptions(cmd))
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print a Mermaid diagram of the command references",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		usage, _ := cmd.Flags().GetBool("usage")
		return cli.Graph(cmd.OutOrStdout(), sharedOptions(cmd), usage)
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd, execCmd, exportCmd, validateCmd, statsCmd, graphCmd)
	graphCmd.Flags().Bool("usage", false, "Highlight commands from the usage counters")
	exportCmd.Flags().Bool("raw", false, "Print Markdown source instead of rendering it")
}
