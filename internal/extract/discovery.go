package extract

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery finds source files under a root directory using glob include
// patterns and ignore rules.
type Discovery struct {
	rootDir        string
	includes       []compiledPattern
	ignorePatterns []compiledPattern
}

// NewDiscovery compiles the given include and ignore patterns for rootDir.
func NewDiscovery(rootDir string, includes, ignores []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	for _, pattern := range includes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.includes = append(d.includes, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignores {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Discover walks the directory tree and returns matching files in walk
// order, which is deterministic (lexical) for a given tree.
func (d *Discovery) Discover() ([]string, error) {
	files := []string{}

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.Ignored(relPath) {
			return nil
		}
		if d.Matches(relPath) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// Matches reports whether the root-relative path matches an include
// pattern.
func (d *Discovery) Matches(relPath string) bool {
	return matchesAnyPattern(relPath, d.includes)
}

// Ignored reports whether the root-relative path matches an ignore pattern.
func (d *Discovery) Ignored(relPath string) bool {
	// The output directory is always ignored.
	if strings.HasPrefix(relPath, ".proofdex/") || relPath == ".proofdex" {
		return true
	}

	if matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}

	// A bare directory name should match its pattern with a /** suffix,
	// e.g. "build" matches the pattern "build/**".
	return matchesAnyPattern(relPath+"/**", d.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level files have no slash; let "**/*.lean" also match
	// "Basic.lean" the way users expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
