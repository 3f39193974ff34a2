// Package catalog persists extraction results in a SQLite database and
// exports them to JSON and CSV.
package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mvp-joe/proofdex/internal/extract"
	"github.com/mvp-joe/proofdex/internal/parser"
)

// DefaultFilename is the catalog database file name inside the output
// directory.
const DefaultFilename = "catalog.db"

// insertBatchSize bounds the number of rows per INSERT, keeping each
// statement under SQLite's variable limit.
const insertBatchSize = 100

// Catalog is a handle to the on-disk definition store.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if necessary) the catalog database at path and
// ensures the schema exists.
func Open(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// ReplaceAll stores an extraction result, replacing whatever previous run
// was stored. The replace is transactional: readers see either the old
// catalog or the new one, never a mix.
func (c *Catalog) ReplaceAll(result *extract.Result) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM definitions"); err != nil {
		return fmt.Errorf("clearing definitions: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("clearing runs: %w", err)
	}

	insertRun := sq.Insert("runs").
		Columns("id", "root", "files", "definitions", "elapsed_ms").
		Values(result.RunID, result.Root, result.Files, len(result.Definitions), result.Elapsed.Milliseconds())
	if _, err := insertRun.RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for start := 0; start < len(result.Definitions); start += insertBatchSize {
		end := min(start+insertBatchSize, len(result.Definitions))

		insert := sq.Insert("definitions").
			Columns("run_id", "doc_comment", "attributes", "modifiers", "kind", "name", "signature", "file", "line")
		for _, def := range result.Definitions[start:end] {
			attrs, err := json.Marshal(def.Attributes)
			if err != nil {
				return fmt.Errorf("encoding attributes: %w", err)
			}
			mods, err := json.Marshal(def.Modifiers)
			if err != nil {
				return fmt.Errorf("encoding modifiers: %w", err)
			}
			insert = insert.Values(result.RunID, def.DocComment, string(attrs), string(mods),
				def.Kind, def.Name, def.Signature, def.File, def.Line)
		}
		if _, err := insert.RunWith(tx).Exec(); err != nil {
			return fmt.Errorf("inserting definitions: %w", err)
		}
	}

	return tx.Commit()
}

// RunInfo describes the stored extraction run.
type RunInfo struct {
	ID          string
	Root        string
	Files       int
	Definitions int
	Elapsed     time.Duration
	CreatedAt   time.Time
}

// LastRun returns the stored run, or sql.ErrNoRows if the catalog is
// empty.
func (c *Catalog) LastRun() (*RunInfo, error) {
	row := sq.Select("id", "root", "files", "definitions", "elapsed_ms", "created_at").
		From("runs").
		OrderBy("created_at DESC").
		Limit(1).
		RunWith(c.db).
		QueryRow()

	var info RunInfo
	var elapsedMS int64
	if err := row.Scan(&info.ID, &info.Root, &info.Files, &info.Definitions, &elapsedMS, &info.CreatedAt); err != nil {
		return nil, err
	}
	info.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	return &info, nil
}

// Query filters catalog lookups. Zero values mean no constraint.
type Query struct {
	Kind  string
	Name  string
	File  string
	Limit int
}

// Find returns stored definitions matching the query, ordered by file and
// line.
func (c *Catalog) Find(q Query) ([]parser.Definition, error) {
	builder := sq.Select("doc_comment", "attributes", "modifiers", "kind", "name", "signature", "file", "line").
		From("definitions").
		OrderBy("file", "line")

	if q.Kind != "" {
		builder = builder.Where(sq.Eq{"kind": q.Kind})
	}
	if q.Name != "" {
		builder = builder.Where(sq.Eq{"name": q.Name})
	}
	if q.File != "" {
		builder = builder.Where(sq.Like{"file": q.File})
	}
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}

	rows, err := builder.RunWith(c.db).Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defs := []parser.Definition{}
	for rows.Next() {
		var def parser.Definition
		var attrs, mods string
		if err := rows.Scan(&def.DocComment, &attrs, &mods, &def.Kind, &def.Name,
			&def.Signature, &def.File, &def.Line); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(attrs), &def.Attributes); err != nil {
			return nil, fmt.Errorf("decoding attributes: %w", err)
		}
		if err := json.Unmarshal([]byte(mods), &def.Modifiers); err != nil {
			return nil, fmt.Errorf("decoding modifiers: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// All returns every stored definition in file/line order.
func (c *Catalog) All() ([]parser.Definition, error) {
	return c.Find(Query{})
}

// CountsByKind returns the number of stored definitions per kind.
func (c *Catalog) CountsByKind() (map[string]int, error) {
	rows, err := sq.Select("kind", "COUNT(*)").
		From("definitions").
		GroupBy("kind").
		RunWith(c.db).
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
