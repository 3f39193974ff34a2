package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/proofdex/internal/catalog"
)

var (
	exportOutput string
	exportFormat string
	exportPretty bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored catalog to JSON or CSV",
	Long: `Export re-reads the project catalog written by a previous extract run
and writes it out in the requested format, without rescanning sources.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "export file path (default <output dir>/definitions.<format>)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "export format: json or csv (default from config)")
	exportCmd.Flags().BoolVar(&exportPretty, "pretty", false, "indent JSON output")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if exportFormat != "" {
		cfg.Output.Format = exportFormat
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Output.Pretty = exportPretty
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	defs, err := loadCatalogDefinitions(root, cfg)
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = filepath.Join(root, cfg.Output.Dir, "definitions."+cfg.Output.Format)
	}

	switch cfg.Output.Format {
	case "csv":
		err = catalog.WriteCSV(defs, path)
	default:
		err = catalog.WriteJSON(defs, path, cfg.Output.Pretty)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d definitions to %s\n", len(defs), path)
	return nil
}
