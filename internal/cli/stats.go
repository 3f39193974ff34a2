package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/proofdex/internal/report"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary statistics for the extracted catalog",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	defs, err := loadCatalogDefinitions(root, cfg)
	if err != nil {
		return err
	}

	stats := report.FromDefinitions(defs)
	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	stats.Print(os.Stdout)
	return nil
}
