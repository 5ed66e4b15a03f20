package driving

import (
	"context"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

// SearchService ranks the current section set against free-text
// queries.
type SearchService interface {
	// Search ranks sections against a single query, returning at most
	// k results ordered by descending similarity.
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)

	// FindMostRelevant ranks sections against several derived query
	// terms for one utterance, dedupes by section id keeping the
	// highest similarity, and returns the global top results.
	FindMostRelevant(ctx context.Context, terms []string) ([]domain.SearchResult, error)
}
