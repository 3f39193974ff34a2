package catalog

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/proofdex/internal/parser"
)

// Test Plan for export:
// - JSON export round trips the records and honors the pretty flag
// - CSV export has a header row and flattens lists with "; "
// - Writes create the output directory and leave no temp files behind

func exportDefs() []parser.Definition {
	return []parser.Definition{
		{
			DocComment: "/-- Doc. -/",
			Attributes: []string{"@[simp]", "@[inline]"},
			Modifiers:  []string{"private", "noncomputable"},
			Kind:       "def",
			Name:       "add",
			Signature:  "(a b : Nat) : Nat",
			File:       "Basic.lean",
			Line:       3,
		},
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "definitions.json")
	require.NoError(t, WriteJSON(exportDefs(), path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ", "pretty output is indented")

	var decoded []parser.Definition
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, exportDefs(), decoded)

	// Compact form decodes to the same records.
	compact := filepath.Join(t.TempDir(), "definitions.json")
	require.NoError(t, WriteJSON(exportDefs(), compact, false))
	data, err = os.ReadFile(compact)
	require.NoError(t, err)
	assert.NotContains(t, strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "definitions.csv")
	require.NoError(t, WriteCSV(exportDefs(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"doc_comment", "attributes", "modifiers", "kind", "name", "signature", "file", "line"}, rows[0])
	assert.Equal(t, "@[simp]; @[inline]", rows[1][1])
	assert.Equal(t, "private; noncomputable", rows[1][2])
	assert.Equal(t, "add", rows[1][4])
	assert.Equal(t, "3", rows[1][7])

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
