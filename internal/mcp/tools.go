package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/proofdex/internal/report"
	"github.com/mvp-joe/proofdex/internal/search"
)

// AddSearchTool registers the proofdex_search tool with an MCP server.
func AddSearchTool(s *server.MCPServer, searcher *search.Searcher) {
	tool := mcp.NewTool(
		"proofdex_search",
		mcp.WithDescription(`Search extracted Lean declarations by name, signature, or doc comment.

Supports bleve query syntax:
- Field scoping: name:add, signature:Nat, doc:commutative
- Boolean operators: AND, OR, NOT, +required, -excluded
- Phrase search: "a + b"
- Wildcards: add_* (prefix matching)

Optional filters narrow results by declaration kind (def, lemma, theorem,
structure, class, inductive, variable) and file path substring.`),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Bleve query string over name, signature, and doc fields")),
		mcp.WithString("kind",
			mcp.Description("Restrict to one declaration kind, e.g. theorem")),
		mcp.WithString("file",
			mcp.Description("Restrict to files whose path contains this substring")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (1-100, default: 15)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createSearchHandler(searcher))
}

func createSearchHandler(searcher *search.Searcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		query, ok := argsMap["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		opts := search.Options{Limit: 15}
		if kind, ok := argsMap["kind"].(string); ok {
			opts.Kind = kind
		}
		if file, ok := argsMap["file"].(string); ok {
			opts.File = file
		}
		if limit, ok := argsMap["limit"].(float64); ok && int(limit) > 0 {
			opts.Limit = int(limit)
		}

		hits, err := searcher.Search(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		response := &SearchResponse{
			Query:   query,
			Results: hits,
			Total:   len(hits),
			TookMs:  int(time.Since(startTime).Milliseconds()),
		}
		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// SearchResponse is the JSON payload returned by proofdex_search.
type SearchResponse struct {
	Query   string       `json:"query"`
	Results []search.Hit `json:"results"`
	Total   int          `json:"total"`
	TookMs  int          `json:"took_ms"`
}

// AddStatsTool registers the proofdex_stats tool with an MCP server.
func AddStatsTool(s *server.MCPServer, stats *report.Stats) {
	tool := mcp.NewTool(
		"proofdex_stats",
		mcp.WithDescription("Summary statistics for the extracted declarations: totals, per-kind and per-file counts, and failed files."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonData, err := json.Marshal(stats)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal stats: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	})
}
