package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/cvterm/internal/cli"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the résumé to AI agents as MCP tools (run_command, list_commands)
and resources (cv://commands, cv://resume.md).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		baseURL, _ := cmd.Flags().GetString("base-url")
		return cli.ServeMCP(cli.MCPOptions{
			Options:   sharedOptions(cmd),
			Transport: transport,
			Addr:      addr,
			BaseURL:   baseURL,
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().String("addr", ":8081", "Address for the SSE transport")
	mcpCmd.Flags().String("base-url", "", "Public base URL for the SSE transport")
}
