package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-insights/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the reports as MCP tools",
	Long: `Serves every report as a Model Context Protocol tool. The server speaks over
standard input and output unless --http is given, in which case it listens on the
configured address with the MCP endpoint under /mcp, plus /health and /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}
		s := server.NewMCPServer(aggregator, server.Defaults{Days: cfg.Days, BranchLimit: cfg.BranchLimit}, logger)

		useHTTP, _ := cmd.Flags().GetBool("http")
		if !useHTTP {
			logger.Println("Server: serving over stdio")
			return server.ServeStdio(s, logger)
		}
		return server.ServeHTTP(cmd.Context(), cfg.HTTPAddr, s, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("http", false, "Serve streamable HTTP instead of stdio")
	serveCmd.Flags().String("addr", "", "Listen address for --http (default from config, :8080)")
	_ = v.BindPFlag("server.http_addr", serveCmd.Flags().Lookup("addr"))
}
