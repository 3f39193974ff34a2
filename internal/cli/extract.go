package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/proofdex/internal/catalog"
	"github.com/mvp-joe/proofdex/internal/config"
	"github.com/mvp-joe/proofdex/internal/extract"
	"github.com/mvp-joe/proofdex/internal/report"
)

var (
	extractOutput string
	extractFormat string
	extractPretty bool
	extractQuiet  bool
	extractWatch  bool
	extractJobs   int
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract declaration records from the project",
	Long: `Extract scans the project for Lean source files, parses every
declaration, stores the records in the project catalog, and writes a
JSON or CSV export.

With --watch the command keeps running and re-extracts whenever a
matching file changes.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "export file path (default <output dir>/definitions.<format>)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "", "export format: json or csv (default from config)")
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", false, "indent JSON output")
	extractCmd.Flags().BoolVarP(&extractQuiet, "quiet", "q", false, "suppress progress output")
	extractCmd.Flags().BoolVarP(&extractWatch, "watch", "w", false, "re-extract on file changes")
	extractCmd.Flags().IntVarP(&extractJobs, "jobs", "j", 0, "number of files parsed concurrently (default from config)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if extractFormat != "" {
		cfg.Output.Format = extractFormat
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Output.Pretty = extractPretty
	}
	if extractJobs > 0 {
		cfg.Extract.Jobs = extractJobs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	extractor, err := extract.New(extract.Options{
		RootDir:         root,
		Include:         cfg.Paths.Include,
		Ignore:          cfg.Paths.Ignore,
		Jobs:            cfg.Extract.Jobs,
		IdentifierRunes: cfg.Extract.IdentifierRunes,
		CacheSize:       cfg.Extract.CacheSize,
		Progress:        NewCLIProgressReporter(extractQuiet),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := extractOnce(ctx, extractor, root, cfg); err != nil {
		return err
	}
	if !extractWatch {
		return nil
	}

	watcher, err := extract.NewWatcher(extractor, func(paths []string) {
		if !extractQuiet {
			fmt.Printf("Changed: %d file(s), re-extracting...\n", len(paths))
		}
		if err := extractOnce(ctx, extractor, root, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "re-extract failed:", err)
		}
	})
	if err != nil {
		return err
	}

	if !extractQuiet {
		fmt.Println("Watching for changes (Ctrl-C to stop)...")
	}
	if err := watcher.Watch(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// extractOnce runs one extraction and persists catalog and export.
func extractOnce(ctx context.Context, extractor *extract.Extractor, root string, cfg *config.Config) error {
	result, err := extractor.Run(ctx)
	if err != nil {
		return err
	}

	cat, err := catalog.Open(catalogPath(root, cfg))
	if err != nil {
		return err
	}
	defer cat.Close()
	if err := cat.ReplaceAll(result); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	exportPath := extractOutput
	if exportPath == "" {
		exportPath = filepath.Join(root, cfg.Output.Dir, "definitions."+cfg.Output.Format)
	}
	switch cfg.Output.Format {
	case "csv":
		err = catalog.WriteCSV(result.Definitions, exportPath)
	default:
		err = catalog.WriteJSON(result.Definitions, exportPath, cfg.Output.Pretty)
	}
	if err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	if !extractQuiet {
		printKindSummary(report.Collect(result))
		fmt.Printf("Wrote %s\n", exportPath)
	}
	return nil
}

func printKindSummary(stats *report.Stats) {
	kinds := make([]string, 0, len(stats.ByKind))
	for k := range stats.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  %-14s %d\n", k, stats.ByKind[k])
	}
}
