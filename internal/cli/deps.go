package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/proofdex/internal/graph"
)

var (
	depsReverse bool
	depsDepth   int
)

var depsCmd = &cobra.Command{
	Use:   "deps <name>",
	Short: "Show declarations referenced by a declaration's signature",
	Long: `Deps builds a reference graph over the catalog: declaration A depends
on B when A's signature mentions B by name. By default it lists what the
named declaration depends on; --reverse lists what depends on it.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().BoolVarP(&depsReverse, "reverse", "r", false, "list dependents instead of dependencies")
	depsCmd.Flags().IntVarP(&depsDepth, "depth", "d", graph.DefaultDepth, "traversal depth (max 10)")

	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	defs, err := loadCatalogDefinitions(root, cfg)
	if err != nil {
		return err
	}

	dg := graph.Build(defs)
	name := args[0]

	var names []string
	if depsReverse {
		names, err = dg.Dependents(name, depsDepth)
	} else {
		names, err = dg.Dependencies(name, depsDepth)
	}
	if err != nil {
		return err
	}

	if len(names) == 0 {
		if depsReverse {
			fmt.Printf("Nothing depends on %s\n", name)
		} else {
			fmt.Printf("%s depends on nothing\n", name)
		}
		return nil
	}

	for _, n := range names {
		if def, ok := dg.Definition(n); ok {
			fmt.Printf("%s %s  (%s:%d)\n", def.Kind, def.Name, def.File, def.Line)
		} else {
			fmt.Println(n)
		}
	}
	return nil
}
