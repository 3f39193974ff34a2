// Package graph builds a name-reference graph between extracted
// declarations: an edge A -> B means A's signature mentions B by name.
package graph

import (
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/mvp-joe/proofdex/internal/lexer"
	"github.com/mvp-joe/proofdex/internal/parser"
)

const (
	// DefaultDepth is the traversal depth when none is given.
	DefaultDepth = 1

	// MaxDepth caps traversal depth.
	MaxDepth = 10
)

// DependencyGraph holds the directed reference graph over declaration
// names.
type DependencyGraph struct {
	g    graph.Graph[string, string]
	defs map[string]parser.Definition
}

// Build constructs the graph from a set of definitions. When several
// definitions share a name, the first occurrence wins; references are
// found by re-tokenizing each signature and matching identifier tokens
// against known names.
func Build(defs []parser.Definition) *DependencyGraph {
	dg := &DependencyGraph{
		g:    graph.New(graph.StringHash, graph.Directed()),
		defs: map[string]parser.Definition{},
	}

	for _, def := range defs {
		if _, seen := dg.defs[def.Name]; seen {
			continue
		}
		dg.defs[def.Name] = def
		_ = dg.g.AddVertex(def.Name)
	}

	for name, def := range dg.defs {
		for _, tok := range lexer.Tokenize(def.Signature) {
			if tok.Kind != lexer.Ident {
				continue
			}
			if tok.Text == name {
				continue
			}
			if _, known := dg.defs[tok.Text]; !known {
				continue
			}
			// A signature can mention the same name twice; the duplicate
			// edge error is the only failure mode here since both vertices
			// are known.
			_ = dg.g.AddEdge(name, tok.Text)
		}
	}

	return dg
}

// Definition returns the stored record for a name.
func (dg *DependencyGraph) Definition(name string) (parser.Definition, bool) {
	def, ok := dg.defs[name]
	return def, ok
}

// Dependencies returns the names that the given declaration references,
// out to the given depth.
func (dg *DependencyGraph) Dependencies(name string, depth int) ([]string, error) {
	adjacency, err := dg.g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("reading adjacency: %w", err)
	}
	return dg.traverse(name, depth, adjacency)
}

// Dependents returns the names of declarations that reference the given
// one, out to the given depth.
func (dg *DependencyGraph) Dependents(name string, depth int) ([]string, error) {
	predecessors, err := dg.g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("reading predecessors: %w", err)
	}
	return dg.traverse(name, depth, predecessors)
}

// traverse walks the edge map breadth-first from name and returns reached
// names sorted for stable output.
func (dg *DependencyGraph) traverse(name string, depth int, edges map[string]map[string]graph.Edge[string]) ([]string, error) {
	if _, ok := dg.defs[name]; !ok {
		return nil, fmt.Errorf("unknown declaration %q", name)
	}
	if depth <= 0 {
		depth = DefaultDepth
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}

	visited := map[string]bool{name: true}
	frontier := []string{name}
	reached := []string{}

	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []string
		for _, current := range frontier {
			for neighbor := range edges[current] {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				reached = append(reached, neighbor)
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	sort.Strings(reached)
	return reached, nil
}
