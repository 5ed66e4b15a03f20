package driving

import (
	"context"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

// PageService drives the read-page pipeline for external actors.
type PageService interface {
	// ReadPage snapshots the current page, rebuilds the section set and
	// embeds the new sections. The previous pass's sections and cached
	// embeddings are discarded first.
	ReadPage(ctx context.Context) ([]domain.Section, error)

	// Sections returns the section set from the latest pass.
	// Returns domain.ErrNoPage before the first ReadPage.
	Sections() ([]domain.Section, error)
}
