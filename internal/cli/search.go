package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/proofdex/internal/search"
)

var (
	searchKind  string
	searchFile  string
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search extracted declarations",
	Long: `Search runs a full-text query over the names, signatures, and doc
comments in the project catalog. The query uses bleve syntax, so field
scoping (name:add), boolean operators, phrases, and wildcards all work.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "", "restrict to one declaration kind")
	searchCmd.Flags().StringVar(&searchFile, "file", "", "restrict to files containing this substring")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of hits (default from config)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	defs, err := loadCatalogDefinitions(root, cfg)
	if err != nil {
		return err
	}

	searcher, err := search.NewSearcher()
	if err != nil {
		return err
	}
	defer searcher.Close()
	if err := searcher.Index(cmd.Context(), defs); err != nil {
		return err
	}

	limit := searchLimit
	if limit <= 0 {
		limit = cfg.Search.Limit
	}

	hits, err := searcher.Search(cmd.Context(), strings.Join(args, " "), search.Options{
		Kind:  searchKind,
		File:  searchFile,
		Limit: limit,
	})
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, hit := range hits {
		def := hit.Definition
		fmt.Printf("%s %s  (%s:%d)\n", def.Kind, def.Name, def.File, def.Line)
		if def.Signature != "" {
			fmt.Printf("    %s\n", def.Signature)
		}
		if verbose && def.DocComment != "" {
			fmt.Printf("    %s\n", def.DocComment)
		}
	}
	fmt.Printf("%d hit(s)\n", len(hits))
	return nil
}
