package cli

import (
	"github.com/spf13/cobra"

	"github.com/mvp-joe/proofdex/internal/mcp"
	"github.com/mvp-joe/proofdex/internal/report"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the catalog to MCP clients over stdio",
	Long: `Mcp starts a Model Context Protocol server exposing proofdex_search
and proofdex_stats tools over stdio, backed by the project catalog.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	defs, err := loadCatalogDefinitions(root, cfg)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(cmd.Context(), version, defs, report.FromDefinitions(defs))
	if err != nil {
		return err
	}
	defer server.Close()

	return server.Serve(cmd.Context())
}
