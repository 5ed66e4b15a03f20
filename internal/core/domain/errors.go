package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrElementNotFound indicates a selector resolved to no element.
	// Fatal for the single action that used the selector.
	ErrElementNotFound = errors.New("element not found")

	// ErrProviderFailure indicates an embedding provider call failed.
	// Non-fatal: the affected section is left unranked.
	ErrProviderFailure = errors.New("embedding provider failure")

	// ErrEmbeddingUnavailable indicates no embedding service is
	// configured. Semantic search and smart scroll are disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrTransportFailure indicates the receiving context was
	// unreachable. Surfaced for request/response calls, logged and
	// dropped for best-effort notifications.
	ErrTransportFailure = errors.New("transport failure")

	// ErrNoActiveResults indicates a numbered scroll was requested
	// with no search results captured from a preceding search.
	ErrNoActiveResults = errors.New("no active search results")

	// ErrNoPage indicates an action needs the page to have been read
	// first.
	ErrNoPage = errors.New("no page loaded")

	// ErrPageUnavailable indicates the page accessor is not configured.
	ErrPageUnavailable = errors.New("page accessor unavailable")
)
