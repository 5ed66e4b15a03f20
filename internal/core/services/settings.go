package services

import (
	"fmt"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
)

// Config keys used in the backing store.
const (
	keyEmbeddingProvider = "embedding.provider"
	keyEmbeddingModel    = "embedding.model"
	keyEmbeddingAPIKey   = "embedding.api_key"
	keyEmbeddingBaseURL  = "embedding.base_url"
	keyBrowserEndpoint   = "browser.endpoint"
	keyCacheEmbeddings   = "cache_embeddings"
)

// SettingsManager loads and persists application settings through the
// config store, applying defaults and validation.
type SettingsManager struct {
	store driven.ConfigStore
}

// NewSettingsManager creates a settings manager over a config store.
func NewSettingsManager(store driven.ConfigStore) *SettingsManager {
	return &SettingsManager{store: store}
}

// Load reads settings, filling defaults for anything unset.
func (m *SettingsManager) Load() domain.AppSettings {
	settings := domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProvider(m.store.GetString(keyEmbeddingProvider)),
			Model:    m.store.GetString(keyEmbeddingModel),
			APIKey:   m.store.GetString(keyEmbeddingAPIKey),
			BaseURL:  m.store.GetString(keyEmbeddingBaseURL),
		},
		Browser: domain.BrowserSettings{
			Endpoint: m.store.GetString(keyBrowserEndpoint),
		},
		CacheEmbeddings: true,
	}

	if v, ok := m.store.Get(keyCacheEmbeddings); ok {
		if b, ok := v.(bool); ok {
			settings.CacheEmbeddings = b
		}
	}

	if settings.Embedding.Provider == "" {
		settings.Embedding.Provider = domain.AIProviderOllama
	}
	if settings.Embedding.Model == "" {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[settings.Embedding.Provider]
	}
	return settings
}

// Save validates and persists settings.
func (m *SettingsManager) Save(settings domain.AppSettings) error {
	if err := Validate(settings); err != nil {
		return err
	}

	if err := m.store.Set(keyEmbeddingProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save provider: %w", err)
	}
	if err := m.store.Set(keyEmbeddingModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if err := m.store.Set(keyEmbeddingAPIKey, settings.Embedding.APIKey); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	if err := m.store.Set(keyEmbeddingBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save base url: %w", err)
	}
	if err := m.store.Set(keyBrowserEndpoint, settings.Browser.Endpoint); err != nil {
		return fmt.Errorf("save browser endpoint: %w", err)
	}
	if err := m.store.Set(keyCacheEmbeddings, settings.CacheEmbeddings); err != nil {
		return fmt.Errorf("save cache flag: %w", err)
	}
	return m.store.Save()
}

// Watch invokes fn with freshly loaded settings whenever the backing
// store changes.
func (m *SettingsManager) Watch(fn func(domain.AppSettings)) (func(), error) {
	return m.store.Watch(func() {
		fn(m.Load())
	})
}

// Path returns the backing configuration file path.
func (m *SettingsManager) Path() string {
	return m.store.Path()
}

// Validate checks settings for consistency.
func Validate(settings domain.AppSettings) error {
	provider := settings.Embedding.Provider
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && settings.Embedding.APIKey == "" {
		return fmt.Errorf("%w: provider %s requires an API key", domain.ErrInvalidInput, provider)
	}
	if settings.Embedding.Model == "" {
		return fmt.Errorf("%w: embedding model is required", domain.ErrInvalidInput)
	}
	return nil
}
