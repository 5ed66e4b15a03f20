package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	t.Run("creates ollama service", func(t *testing.T) {
		svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			Model:    "nomic-embed-text",
		})

		require.NoError(t, err)
		require.NotNil(t, svc)
		assert.Equal(t, "nomic-embed-text", svc.ModelName())
	})

	t.Run("creates openai service", func(t *testing.T) {
		svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "text-embedding-3-small",
			APIKey:   "sk-test",
		})

		require.NoError(t, err)
		require.NotNil(t, svc)
		assert.Equal(t, 1536, svc.Dimensions())
	})

	t.Run("openai requires api key", func(t *testing.T) {
		_, err := CreateEmbeddingService(domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "text-embedding-3-small",
		})

		assert.Error(t, err)
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		_, err := CreateEmbeddingService(domain.EmbeddingSettings{
			Provider: domain.AIProvider("claude"),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported embedding provider")
	})
}
