package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/proofdex/internal/parser"
)

// Test Plan for Searcher:
// - Name, signature, and doc text are all searchable
// - Kind filter is exact; file filter is a substring
// - Empty query with a kind filter lists that kind
// - Limit caps the hit count
// - No match returns an empty slice, not an error

func indexedSearcher(t *testing.T) *Searcher {
	t.Helper()

	s, err := NewSearcher()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	defs := []parser.Definition{
		{Kind: "theorem", Name: "add_comm", Signature: "(a b : Nat) : a + b = b + a", File: "Algebra/Basic.lean", Line: 3},
		{Kind: "def", Name: "add", Signature: "(a b : Nat) : Nat", File: "Algebra/Basic.lean", Line: 1},
		{Kind: "lemma", Name: "mul_comm", Signature: "(a b : Nat) : a * b = b * a", File: "Algebra/Mul.lean", Line: 5,
			DocComment: "/-- Multiplication is commutative. -/"},
		{Kind: "structure", Name: "Monoid", Signature: "(M : Type)", File: "Order/Monoid.lean", Line: 2},
	}
	require.NoError(t, s.Index(context.Background(), defs))
	require.Equal(t, 4, s.Count())
	return s
}

func TestSearcher_ByName(t *testing.T) {
	t.Parallel()

	s := indexedSearcher(t)
	hits, err := s.Search(context.Background(), "name:add_comm", Options{})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "add_comm", hits[0].Definition.Name)
}

func TestSearcher_ByDoc(t *testing.T) {
	t.Parallel()

	s := indexedSearcher(t)
	hits, err := s.Search(context.Background(), "doc:commutative", Options{})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "mul_comm", hits[0].Definition.Name)
}

func TestSearcher_KindFilter(t *testing.T) {
	t.Parallel()

	s := indexedSearcher(t)

	hits, err := s.Search(context.Background(), "", Options{Kind: "theorem"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "add_comm", hits[0].Definition.Name)

	// Kind matching is exact, not prefix.
	hits, err = s.Search(context.Background(), "", Options{Kind: "theo"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearcher_FileFilter(t *testing.T) {
	t.Parallel()

	s := indexedSearcher(t)
	hits, err := s.Search(context.Background(), "", Options{File: "Mul"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "mul_comm", hits[0].Definition.Name)
}

func TestSearcher_Limit(t *testing.T) {
	t.Parallel()

	s := indexedSearcher(t)
	hits, err := s.Search(context.Background(), "", Options{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearcher_NoMatch(t *testing.T) {
	t.Parallel()

	s := indexedSearcher(t)
	hits, err := s.Search(context.Background(), "name:nonexistent_xyz", Options{})
	require.NoError(t, err)
	assert.Empty(t, hits)
}
