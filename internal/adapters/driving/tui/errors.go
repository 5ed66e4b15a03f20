package tui

import "errors"

// ErrMissingPageService is returned when the page service is not provided.
var ErrMissingPageService = errors.New("tui: page service is required")

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingCommandService is returned when the command service is not provided.
var ErrMissingCommandService = errors.New("tui: command service is required")
