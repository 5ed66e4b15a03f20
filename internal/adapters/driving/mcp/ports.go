package mcp

import (
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Page reads and exposes the section set.
	Page driving.PageService

	// Search ranks sections against queries.
	Search driving.SearchService

	// Command interprets and executes natural-language page commands.
	// Optional; the page_command tool reports an error when absent.
	Command driving.CommandService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Page == nil {
		return ErrMissingPageService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
