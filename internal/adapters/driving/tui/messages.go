package tui

import (
	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
)

// Messages emitted by the app's asynchronous commands.

// pageLoadedMsg carries the section set after a read pass.
type pageLoadedMsg struct {
	sections []domain.Section
}

// resultsMsg carries ranked results for the last query.
type resultsMsg struct {
	query   string
	results []domain.SearchResult
}

// commandDoneMsg carries the outcome of an executed page command.
type commandDoneMsg struct {
	result  *driving.ActionResult
	matched bool
}

// scrolledMsg reports a completed scroll-to-section.
type scrolledMsg struct {
	message string
}

// errMsg carries an asynchronous failure.
type errMsg struct {
	err error
}
