// Package ai provides factory functions for creating embedding
// service adapters from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/pagelens-labs/pagelens-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/pagelens-labs/pagelens-cli/internal/adapters/driven/embedding/openai"
	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the appropriate embedding service
// based on settings.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity. Returns an error with guidance when the
// provider is misconfigured or unreachable.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'pagelens settings provider' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close() //nolint:errcheck
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'pagelens settings provider' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}
