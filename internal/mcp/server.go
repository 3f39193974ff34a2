// Package mcp exposes the extracted catalog to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/proofdex/internal/parser"
	"github.com/mvp-joe/proofdex/internal/report"
	"github.com/mvp-joe/proofdex/internal/search"
)

// Server manages the MCP server lifecycle.
type Server struct {
	searcher *search.Searcher
	stats    *report.Stats
	mcp      *server.MCPServer
}

// NewServer creates an MCP server over an already-extracted set of
// definitions. The definitions are indexed for search up front.
func NewServer(ctx context.Context, version string, defs []parser.Definition, stats *report.Stats) (*Server, error) {
	searcher, err := search.NewSearcher()
	if err != nil {
		return nil, fmt.Errorf("creating searcher: %w", err)
	}
	if err := searcher.Index(ctx, defs); err != nil {
		searcher.Close()
		return nil, fmt.Errorf("indexing definitions: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"proofdex-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	AddSearchTool(mcpServer, searcher)
	AddStatsTool(mcpServer, stats)

	return &Server{
		searcher: searcher,
		stats:    stats,
		mcp:      mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the search index.
func (s *Server) Close() error {
	return s.searcher.Close()
}
