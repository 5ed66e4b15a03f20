// Package tui provides an interactive terminal user interface for
// PageLens. It implements a driving adapter following hexagonal
// architecture principles: one page session stays alive for the whole
// run, so the page is read once and searched many times.
package tui

import (
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Page reads and exposes the section set.
	Page driving.PageService

	// Search ranks sections against queries.
	Search driving.SearchService

	// Command interprets and executes natural-language page commands.
	Command driving.CommandService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Page == nil {
		return ErrMissingPageService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Command == nil {
		return ErrMissingCommandService
	}
	return nil
}
