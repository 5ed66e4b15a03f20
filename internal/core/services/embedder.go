package services

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sync"

	"golang.org/x/time/rate"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
	"github.com/pagelens-labs/pagelens-cli/internal/logger"
)

// Default rate limit for embedding provider calls. Conservative, well
// under typical provider quotas.
const (
	defaultEmbedRequestsPerSecond = 5.0
	defaultEmbedBurst             = 10
)

// kvKeyPrefix namespaces durable vector entries in the KV store.
const kvKeyPrefix = "pagelens:emb:"

// EmbeddingCache memoizes section vectors for one segmentation pass.
//
// Vectors are keyed by Section.ID, not by content: within a pass an id
// always maps to the same immutable content, and ids are only unique
// within one pass, so Reset must be called before embedding a new
// pass. An optional KV store provides durable write-through keyed by
// content hash and model, which survives across sessions safely.
type EmbeddingCache struct {
	mu       sync.RWMutex
	vectors  map[string][]float32
	embedder driven.EmbeddingService
	kv       driven.KVStore
	limiter  *rate.Limiter
}

// NewEmbeddingCache creates a cache over the given embedding service.
// The KV store is optional (can be nil).
func NewEmbeddingCache(embedder driven.EmbeddingService, kv driven.KVStore) *EmbeddingCache {
	return &EmbeddingCache{
		vectors:  make(map[string][]float32),
		embedder: embedder,
		kv:       kv,
		limiter:  rate.NewLimiter(rate.Limit(defaultEmbedRequestsPerSecond), defaultEmbedBurst),
	}
}

// Reset discards every cached vector. Must be called before a new
// segmentation pass is embedded.
func (c *EmbeddingCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors = make(map[string][]float32)
}

// Get returns the cached vector for a section id.
func (c *EmbeddingCache) Get(sectionID string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.vectors[sectionID]
	return vec, ok
}

// Len returns the number of cached vectors.
func (c *EmbeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

// Embed returns the vector for one section, generating and caching it
// if absent. Provider failures are returned unretried, wrapped as
// domain.ErrProviderFailure.
func (c *EmbeddingCache) Embed(ctx context.Context, section *domain.Section) ([]float32, error) {
	if c.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	if vec, ok := c.Get(section.ID); ok {
		return vec, nil
	}

	vec, err := c.fetch(ctx, section.Content)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.vectors[section.ID] = vec
	c.mu.Unlock()
	return vec, nil
}

// EmbedQuery embeds free text without touching the per-section cache.
func (c *EmbeddingCache) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if c.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	return c.fetch(ctx, text)
}

// EmbedSections embeds a batch of sections sequentially. Sections at
// or under the content threshold are skipped entirely. A provider
// failure for one section leaves it unranked and the batch continues,
// so the cache ends up holding exactly the entries that succeeded.
// Returns the number of sections embedded.
func (c *EmbeddingCache) EmbedSections(ctx context.Context, sections []domain.Section) int {
	embedded := 0
	for i := range sections {
		if !sections[i].Embeddable() {
			logger.Debug("Skipping section %s: content too short (%d chars)",
				sections[i].ID, len(sections[i].Content))
			continue
		}
		if _, err := c.Embed(ctx, &sections[i]); err != nil {
			logger.Warn("Embedding failed for section %s: %v (left unranked)", sections[i].ID, err)
			continue
		}
		embedded++
	}
	logger.Info("Embedded %d/%d sections", embedded, len(sections))
	return embedded
}

// fetch generates a vector, consulting the durable KV cache first.
func (c *EmbeddingCache) fetch(ctx context.Context, text string) ([]float32, error) {
	key := c.kvKey(text)

	if c.kv != nil {
		if raw, err := c.kv.Get(ctx, key); err == nil {
			if vec, err := decodeVector(raw); err == nil {
				logger.Debug("KV cache hit (%d dims)", len(vec))
				return vec, nil
			}
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	vec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	if c.kv != nil {
		if err := c.kv.Set(ctx, key, encodeVector(vec)); err != nil {
			logger.Warn("KV cache write failed: %v", err)
		}
	}

	return vec, nil
}

// kvKey derives the durable cache key from content hash and model, so
// vectors from different models are never mixed.
func (c *EmbeddingCache) kvKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return kvKeyPrefix + c.embedder.ModelName() + ":" + hex.EncodeToString(sum[:])
}

// encodeVector serialises a vector as little-endian float32 bits.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeVector is the inverse of encodeVector.
func decodeVector(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("malformed vector payload: %d bytes", len(raw))
	}
	vec := make([]float32, len(raw)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return vec, nil
}
