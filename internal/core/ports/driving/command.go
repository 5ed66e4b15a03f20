package driving

import (
	"context"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

// ActionResult is the outcome of dispatching a command.
type ActionResult struct {
	// Action is the dispatched action.
	Action domain.Action

	// Message is a human-readable summary of what happened.
	Message string

	// Sections holds section output for read/find actions.
	Sections []domain.Section

	// Results holds ranked output for search/scroll actions.
	Results []domain.SearchResult

	// Links holds link output for the link listing action.
	Links []domain.Link

	// FormFields holds form descriptors for the form extraction action.
	FormFields []FormFieldResult

	// Data carries any remaining action-specific payload.
	Data map[string]any
}

// FormFieldResult mirrors a page form field for presentation.
type FormFieldResult struct {
	Name     string
	Kind     string
	Label    string
	Selector string
	Required bool
}

// CommandService interprets free-text utterances and executes the
// resulting structured commands.
type CommandService interface {
	// Interpret maps an utterance to a structured command.
	// Returns nil when no rule matches, signalling the caller to fall
	// back to unconstrained conversational handling.
	Interpret(utterance string) *domain.Command

	// Execute dispatches a structured command and returns its result.
	Execute(ctx context.Context, cmd domain.Command) (*ActionResult, error)

	// Handle interprets and, when a rule matched, executes in one step.
	// The bool reports whether a rule matched.
	Handle(ctx context.Context, utterance string) (*ActionResult, bool, error)
}
