// Package extract turns a directory of Lean source files into an ordered
// list of declaration records. Discovery, per-file parsing, caching, and
// the parallel run loop all live here.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/maypok86/otter"
	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/proofdex/internal/lexer"
	"github.com/mvp-joe/proofdex/internal/parser"
)

const defaultCacheSize = 4096

// Options configures an Extractor.
type Options struct {
	// RootDir is the directory to scan. Required.
	RootDir string

	// Include are glob patterns for files to extract. Defaults to
	// **/*.lean.
	Include []string

	// Ignore are glob patterns for files and directories to skip.
	Ignore []string

	// Jobs is the number of files parsed concurrently. Defaults to
	// GOMAXPROCS.
	Jobs int

	// IdentifierRunes are extra runes accepted inside identifiers, on top
	// of the built-in alphabet.
	IdentifierRunes string

	// CacheSize is the maximum number of file entries kept in the
	// extraction cache.
	CacheSize int

	// Progress receives run callbacks. Defaults to a no-op reporter.
	Progress ProgressReporter
}

// FileError records a file that could not be read.
type FileError struct {
	File string `json:"file"`
	Err  error  `json:"-"`
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Result is the outcome of one extraction run.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string

	// Root is the absolute root directory that was scanned.
	Root string

	// Definitions holds every extracted record, ordered by file path and
	// position within each file.
	Definitions []parser.Definition

	// Files is the number of files scanned, including failed ones.
	Files int

	// Failed lists files that could not be read. A failed file never
	// aborts the run.
	Failed []FileError

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

type cachedFile struct {
	modTime int64
	size    int64
	defs    []parser.Definition
}

// Extractor scans a directory tree and extracts declaration records from
// every matching file. It caches per-file results keyed by modification
// time and size, so repeated runs over an unchanged tree skip re-parsing.
type Extractor struct {
	opts      Options
	discovery *Discovery
	alphabet  *lexer.Alphabet
	cache     otter.Cache[string, cachedFile]
	progress  ProgressReporter
}

// New creates an Extractor. Unset options are filled with defaults.
func New(opts Options) (*Extractor, error) {
	if opts.RootDir == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	root, err := filepath.Abs(opts.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	opts.RootDir = root

	if len(opts.Include) == 0 {
		opts.Include = []string{"**/*.lean"}
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.Progress == nil {
		opts.Progress = NoOpProgressReporter{}
	}

	discovery, err := NewDiscovery(root, opts.Include, opts.Ignore)
	if err != nil {
		return nil, fmt.Errorf("compiling patterns: %w", err)
	}

	cache, err := otter.MustBuilder[string, cachedFile](opts.CacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("building cache: %w", err)
	}

	alphabet := lexer.DefaultAlphabet()
	if opts.IdentifierRunes != "" {
		alphabet = alphabet.Extend(opts.IdentifierRunes)
	}

	return &Extractor{
		opts:      opts,
		discovery: discovery,
		alphabet:  alphabet,
		cache:     cache,
		progress:  opts.Progress,
	}, nil
}

// Discovery exposes the compiled pattern matcher, used by the watcher to
// decide whether a changed path is relevant.
func (e *Extractor) Discovery() *Discovery {
	return e.discovery
}

type fileResult struct {
	defs []parser.Definition
	err  error
}

// Run extracts every matching file under the root. Files are parsed
// concurrently but the returned records keep discovery order.
func (e *Extractor) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	files, err := e.discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}

	e.progress.StartExtraction(len(files))
	defer e.progress.FinishExtraction()

	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			defs, err := e.ExtractFile(path)
			results[i] = fileResult{defs: defs, err: err}
			e.progress.FileExtracted(path, len(defs), err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       uuid.NewString(),
		Root:        e.opts.RootDir,
		Definitions: []parser.Definition{},
		Files:       len(files),
		Elapsed:     time.Since(start),
	}
	for i, r := range results {
		if r.err != nil {
			rel := e.relPath(files[i])
			result.Failed = append(result.Failed, FileError{File: rel, Err: r.err})
			continue
		}
		result.Definitions = append(result.Definitions, r.defs...)
	}
	return result, nil
}

// ExtractFile parses a single file and returns its declaration records.
// The cache short-circuits files whose size and modification time are
// unchanged since the last parse.
func (e *Extractor) ExtractFile(path string) ([]parser.Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if cached, ok := e.cache.Get(path); ok {
		if cached.modTime == info.ModTime().UnixNano() && cached.size == info.Size() {
			return cached.defs, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rel := e.relPath(path)
	defs := parser.NewWithAlphabet(string(data), rel, e.alphabet).Parse()

	e.cache.Set(path, cachedFile{
		modTime: info.ModTime().UnixNano(),
		size:    info.Size(),
		defs:    defs,
	})
	return defs, nil
}

// Invalidate drops a file's cache entry, forcing the next run to re-parse
// it. Used by the watcher on delete and rename events.
func (e *Extractor) Invalidate(path string) {
	e.cache.Delete(path)
}

func (e *Extractor) relPath(path string) string {
	rel, err := filepath.Rel(e.opts.RootDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
