// Package report summarizes extraction results for human consumption.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/mvp-joe/proofdex/internal/extract"
	"github.com/mvp-joe/proofdex/internal/parser"
)

// Stats aggregates one extraction run.
type Stats struct {
	TotalFiles       int            `json:"total_files"`
	TotalDefinitions int            `json:"total_definitions"`
	ByKind           map[string]int `json:"by_kind"`
	ByFile           map[string]int `json:"by_file"`
	FailedFiles      []string       `json:"failed_files,omitempty"`

	// LongestSignature is the record with the longest signature text,
	// a quick smoke signal for runaway captures.
	LongestSignature *parser.Definition `json:"longest_signature,omitempty"`
}

// Collect computes statistics from an extraction result.
func Collect(result *extract.Result) *Stats {
	stats := FromDefinitions(result.Definitions)
	stats.TotalFiles = result.Files

	for _, fe := range result.Failed {
		stats.FailedFiles = append(stats.FailedFiles, fe.File)
	}
	sort.Strings(stats.FailedFiles)

	return stats
}

// FromDefinitions computes statistics from stored records alone, e.g. when
// reading back a catalog. TotalFiles counts files that contributed at least
// one record.
func FromDefinitions(defs []parser.Definition) *Stats {
	stats := &Stats{
		TotalDefinitions: len(defs),
		ByKind:           map[string]int{},
		ByFile:           map[string]int{},
	}

	for i := range defs {
		def := &defs[i]
		stats.ByKind[def.Kind]++
		stats.ByFile[def.File]++
		if stats.LongestSignature == nil || len(def.Signature) > len(stats.LongestSignature.Signature) {
			stats.LongestSignature = def
		}
	}

	stats.TotalFiles = len(stats.ByFile)
	return stats
}

// Print writes a plain-text summary to w.
func (s *Stats) Print(w io.Writer) {
	fmt.Fprintf(w, "Files scanned:  %d\n", s.TotalFiles)
	fmt.Fprintf(w, "Definitions:    %d\n", s.TotalDefinitions)

	kinds := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-14s %d\n", k, s.ByKind[k])
	}

	if len(s.FailedFiles) > 0 {
		fmt.Fprintf(w, "Failed files:   %d\n", len(s.FailedFiles))
		for _, f := range s.FailedFiles {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}

	if s.LongestSignature != nil {
		fmt.Fprintf(w, "Longest signature: %s (%s:%d, %d chars)\n",
			s.LongestSignature.Name,
			s.LongestSignature.File,
			s.LongestSignature.Line,
			len(s.LongestSignature.Signature))
	}
}

// TopFiles returns up to n files with the most definitions, descending.
func (s *Stats) TopFiles(n int) []FileCount {
	counts := make([]FileCount, 0, len(s.ByFile))
	for f, c := range s.ByFile {
		counts = append(counts, FileCount{File: f, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].File < counts[j].File
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// FileCount pairs a file path with its definition count.
type FileCount struct {
	File  string `json:"file"`
	Count int    `json:"count"`
}
