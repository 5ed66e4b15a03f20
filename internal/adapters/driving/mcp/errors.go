// Package mcp provides an MCP (Model Context Protocol) server adapter
// for PageLens. It lets AI assistants read, search and navigate the
// attached page through tools and resources.
package mcp

import "errors"

// Errors returned when required ports are missing.
var (
	ErrMissingPageService   = errors.New("mcp: page service is required")
	ErrMissingSearchService = errors.New("mcp: search service is required")
)
