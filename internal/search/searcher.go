// Package search provides full-text search over extracted declaration
// records using an in-memory bleve index.
package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"

	"github.com/mvp-joe/proofdex/internal/parser"
)

const (
	defaultLimit   = 15
	indexBatchSize = 100
)

// document is the shape indexed per definition.
type document struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Doc       string `json:"doc"`
	Kind      string `json:"kind"`
	File      string `json:"file"`
}

// Options narrows a search.
type Options struct {
	// Kind restricts hits to one declaration kind (exact match).
	Kind string

	// File restricts hits to files whose path contains the substring.
	File string

	// Limit caps the number of hits. Defaults to 15.
	Limit int
}

// Hit is one search result with its match context.
type Hit struct {
	Definition parser.Definition   `json:"definition"`
	Score      float64             `json:"score"`
	Fragments  map[string][]string `json:"fragments,omitempty"`
}

// Searcher indexes definitions in memory and answers relevance-ranked
// queries over names, signatures, and doc comments.
type Searcher struct {
	index bleve.Index
	docs  map[string]parser.Definition
}

// NewSearcher builds the index mapping and an empty in-memory index.
func NewSearcher() (*Searcher, error) {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = standard.Name
	textField.Store = true

	// Kind and file are matched exactly, never tokenized. Wildcard queries
	// are not analyzed, so the file path must be indexed as a single term.
	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name
	keywordField.Store = true

	docMapping.AddFieldMappingsAt("name", textField)
	docMapping.AddFieldMappingsAt("signature", textField)
	docMapping.AddFieldMappingsAt("doc", textField)
	docMapping.AddFieldMappingsAt("file", keywordField)
	docMapping.AddFieldMappingsAt("kind", keywordField)
	indexMapping.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	return &Searcher{
		index: index,
		docs:  map[string]parser.Definition{},
	}, nil
}

// Index adds definitions to the index in batches.
func (s *Searcher) Index(ctx context.Context, defs []parser.Definition) error {
	batch := s.index.NewBatch()

	for i, def := range defs {
		id := uuid.NewString()
		s.docs[id] = def

		err := batch.Index(id, document{
			Name:      def.Name,
			Signature: def.Signature,
			Doc:       def.DocComment,
			Kind:      def.Kind,
			File:      def.File,
		})
		if err != nil {
			return fmt.Errorf("indexing %s: %w", def.Name, err)
		}

		if (i+1)%indexBatchSize == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.index.Batch(batch); err != nil {
				return fmt.Errorf("flushing batch: %w", err)
			}
			batch = s.index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("flushing batch: %w", err)
		}
	}
	return nil
}

// Count returns the number of indexed definitions.
func (s *Searcher) Count() int {
	return len(s.docs)
}

// Search runs a relevance-ranked query, optionally narrowed by kind and
// file.
func (s *Searcher) Search(ctx context.Context, text string, opts Options) ([]Hit, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var clauses []query.Query

	if text != "" {
		clauses = append(clauses, bleve.NewQueryStringQuery(text))
	} else {
		clauses = append(clauses, bleve.NewMatchAllQuery())
	}

	if opts.Kind != "" {
		kindQuery := bleve.NewTermQuery(opts.Kind)
		kindQuery.SetField("kind")
		clauses = append(clauses, kindQuery)
	}

	if opts.File != "" {
		fileQuery := bleve.NewWildcardQuery("*" + opts.File + "*")
		fileQuery.SetField("file")
		clauses = append(clauses, fileQuery)
	}

	searchQuery := bleve.NewConjunctionQuery(clauses...)
	request := bleve.NewSearchRequestOptions(searchQuery, limit, 0, false)
	request.Highlight = bleve.NewHighlight()

	result, err := s.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		def, ok := s.docs[hit.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			Definition: def,
			Score:      hit.Score,
			Fragments:  hit.Fragments,
		})
	}
	return hits, nil
}

// Close releases the index.
func (s *Searcher) Close() error {
	return s.index.Close()
}
