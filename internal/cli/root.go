// Package cli implements the proofdex command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/proofdex/internal/catalog"
	"github.com/mvp-joe/proofdex/internal/config"
	"github.com/mvp-joe/proofdex/internal/parser"
)

var (
	rootDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "proofdex",
	Short: "Extract and explore declarations from Lean 4 source trees",
	Long: `Proofdex scans a Lean 4 project, extracts structured records for its
definitions, lemmas, theorems, structures, and variable blocks, and lets
you search, export, and inspect them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig resolves the project root and loads its configuration.
func loadConfig() (string, *config.Config, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving root: %w", err)
	}
	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// catalogPath returns the catalog database location for a project.
func catalogPath(root string, cfg *config.Config) string {
	return filepath.Join(root, cfg.Output.Dir, catalog.DefaultFilename)
}

// loadCatalogDefinitions opens the project catalog and reads every stored
// record.
func loadCatalogDefinitions(root string, cfg *config.Config) ([]parser.Definition, error) {
	path := catalogPath(root, cfg)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no catalog at %s (run 'proofdex extract' first)", path)
	}

	cat, err := catalog.Open(path)
	if err != nil {
		return nil, err
	}
	defer cat.Close()

	return cat.All()
}
