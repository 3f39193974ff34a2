package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Discovery:
// - Include patterns match nested and root-level files
// - Ignore patterns match files, directories, and bare directory names
// - The output directory is always ignored
// - Invalid patterns are rejected at construction

func TestDiscovery_Matches(t *testing.T) {
	t.Parallel()

	d, err := NewDiscovery(t.TempDir(), []string{"**/*.lean"}, nil)
	require.NoError(t, err)

	assert.True(t, d.Matches("Mathlib/Algebra/Basic.lean"))
	assert.True(t, d.Matches("Basic.lean"), "root-level file matches **/ pattern")
	assert.False(t, d.Matches("README.md"))
	assert.False(t, d.Matches("src/main.go"))
}

func TestDiscovery_Ignored(t *testing.T) {
	t.Parallel()

	d, err := NewDiscovery(t.TempDir(), []string{"**/*.lean"}, []string{"build/**", ".lake/**"})
	require.NoError(t, err)

	assert.True(t, d.Ignored("build/Gen.lean"))
	assert.True(t, d.Ignored(".lake/pkg/Init.lean"))
	assert.True(t, d.Ignored("build"), "bare directory name matches its /** pattern")
	assert.False(t, d.Ignored("src/Basic.lean"))

	// The output directory is unconditionally ignored.
	assert.True(t, d.Ignored(".proofdex/definitions.json"))
	assert.True(t, d.Ignored(".proofdex"))
}

func TestDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewDiscovery(t.TempDir(), []string{"[unclosed"}, nil)
	assert.Error(t, err)
}
