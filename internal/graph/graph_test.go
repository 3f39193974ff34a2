package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/proofdex/internal/parser"
)

// Test Plan for DependencyGraph:
// - Edges follow name mentions in signatures; unknown names are ignored
// - Self references create no edge
// - Dependencies and Dependents walk opposite directions
// - Depth widens the reachable set; results are sorted
// - Unknown start name is an error

func buildTestGraph(t *testing.T) *DependencyGraph {
	t.Helper()

	defs := []parser.Definition{
		{Kind: "def", Name: "double", Signature: "(n : Nat) : Nat", File: "A.lean", Line: 1},
		{Kind: "def", Name: "quadruple", Signature: "(n : Nat) : double (double n) = quadruple n", File: "A.lean", Line: 3},
		{Kind: "theorem", Name: "quad_pos", Signature: "(n : Nat) : 0 < quadruple n", File: "A.lean", Line: 5},
		{Kind: "def", Name: "unrelated", Signature: ": Nat", File: "B.lean", Line: 1},
	}
	return Build(defs)
}

func TestGraph_Dependencies(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t)

	deps, err := g.Dependencies("quadruple", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"double"}, deps, "self mention creates no edge")

	deps, err = g.Dependencies("quad_pos", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"quadruple"}, deps)

	// Depth 2 reaches through quadruple to double.
	deps, err = g.Dependencies("quad_pos", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"double", "quadruple"}, deps)

	deps, err = g.Dependencies("unrelated", 1)
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestGraph_Dependents(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t)

	deps, err := g.Dependents("double", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"quadruple"}, deps)

	deps, err = g.Dependents("double", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"quad_pos", "quadruple"}, deps)
}

func TestGraph_UnknownName(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t)
	_, err := g.Dependencies("missing", 1)
	assert.Error(t, err)
}

func TestGraph_DepthClamping(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t)

	// Zero and negative fall back to the default depth.
	deps, err := g.Dependencies("quad_pos", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"quadruple"}, deps)

	// Oversized depth is capped, not an error.
	deps, err = g.Dependencies("quad_pos", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"double", "quadruple"}, deps)
}

func TestGraph_Definition(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t)
	def, ok := g.Definition("double")
	require.True(t, ok)
	assert.Equal(t, "A.lean", def.File)

	_, ok = g.Definition("missing")
	assert.False(t, ok)
}
