package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/cvterm/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long: `Serves the résumé as a JSON API: GET /api/commands, GET /api/commands/{name},
POST /api/execute, plus /healthz, /openapi.yaml and Prometheus /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		cors, _ := cmd.Flags().GetBool("cors")
		sseAddr, _ := cmd.Flags().GetString("mcp-sse-addr")
		baseURL, _ := cmd.Flags().GetString("mcp-base-url")
		return cli.Serve(cli.ServeOptions{
			Options:    sharedOptions(cmd),
			Addr:       addr,
			CORS:       cors,
			SSEAddr:    sseAddr,
			SSEBaseURL: baseURL,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("cors", false, "Allow cross-origin requests")
	serveCmd.Flags().String("mcp-sse-addr", "", "Also serve MCP over SSE on this address")
	serveCmd.Flags().String("mcp-base-url", "", "Public base URL for the MCP SSE endpoint")
}
