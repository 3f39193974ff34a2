package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mvp-joe/proofdex/internal/parser"
)

// csvListSeparator joins attribute and modifier lists into a single CSV
// cell.
const csvListSeparator = "; "

// WriteJSON writes definitions to path as a JSON array. The write is
// atomic: content goes to a temp file in the same directory which is then
// renamed over the destination.
func WriteJSON(defs []parser.Definition, path string, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(defs, "", "  ")
	} else {
		data, err = json.Marshal(defs)
	}
	if err != nil {
		return fmt.Errorf("encoding definitions: %w", err)
	}
	return atomicWrite(path, append(data, '\n'))
}

// WriteCSV writes definitions to path as CSV with a header row. Attribute
// and modifier lists are flattened with "; " so each record stays one row.
func WriteCSV(defs []parser.Definition, path string) error {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	header := []string{"doc_comment", "attributes", "modifiers", "kind", "name", "signature", "file", "line"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, def := range defs {
		row := []string{
			def.DocComment,
			strings.Join(def.Attributes, csvListSeparator),
			strings.Join(def.Modifiers, csvListSeparator),
			def.Kind,
			def.Name,
			def.Signature,
			def.File,
			strconv.Itoa(def.Line),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return atomicWrite(path, []byte(buf.String()))
}

// atomicWrite writes data to path via a same-directory temp file and
// rename, so readers never observe a partially written export.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
