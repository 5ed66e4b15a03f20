package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/logger"
)

// Ranking constants.
const (
	// minSimilarity drops results at or under this score.
	minSimilarity = 0.1

	// perTermLimit is the per-term cutoff in multi-term ranking.
	perTermLimit = 5

	// multiTermLimit is the global cutoff after deduplication.
	multiTermLimit = 3

	// queryCacheSize bounds the session-scoped query-result cache.
	queryCacheSize = 256
)

// queryCacheKey memoizes results by query and candidate count.
//
// Keying by count rather than content means a ranking can go stale if
// section content changes without a change in count. Deliberate
// trade-off, kept from the original design; see DESIGN.md.
type queryCacheKey struct {
	query string
	count int
}

// Ranker scores sections against queries using cached embeddings.
type Ranker struct {
	cache   *EmbeddingCache
	results *lru.Cache[queryCacheKey, []domain.SearchResult]
}

// NewRanker creates a ranker over the given embedding cache.
func NewRanker(cache *EmbeddingCache) *Ranker {
	results, _ := lru.New[queryCacheKey, []domain.SearchResult](queryCacheSize)
	return &Ranker{
		cache:   cache,
		results: results,
	}
}

// ResetQueryCache discards memoized query results. Called when a new
// segmentation pass replaces the section set.
func (r *Ranker) ResetQueryCache() {
	r.results.Purge()
}

// Rank scores every candidate section with a cached embedding against
// the query and returns at most k results, ordered by descending
// similarity. Sections without a cached vector are unranked, not
// errors. Results with similarity at or under the floor are dropped.
func (r *Ranker) Rank(
	ctx context.Context, query string, sections []domain.Section, k int,
) ([]domain.SearchResult, error) {
	logger.Stage("rank")
	logger.Debug("Query: %q, candidates: %d, k: %d", query, len(sections), k)

	key := queryCacheKey{query: query, count: len(sections)}
	if cached, ok := r.results.Get(key); ok {
		logger.Debug("Query cache hit")
		return truncate(cached, k), nil
	}

	queryVec, err := r.cache.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(sections))
	for i := range sections {
		vec, ok := r.cache.Get(sections[i].ID)
		if !ok {
			continue
		}
		sim := CosineSimilarity(queryVec, vec)
		if sim <= minSimilarity {
			continue
		}
		results = append(results, domain.SearchResult{
			Section:    sections[i],
			Similarity: sim,
			Relevance:  domain.LabelForSimilarity(sim),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	r.results.Add(key, results)
	logger.Debug("Ranked %d results", len(results))

	return truncate(results, k), nil
}

// FindMostRelevantSections ranks the sections against several derived
// query terms for one utterance. Per-term results are cut off first,
// then concatenated, deduplicated by section id keeping the highest
// similarity seen, re-sorted and truncated to the global top 3.
//
// The two-stage order is intentional: a section that barely misses one
// term's cutoff can still be suppressed even if another term would
// rank it, because deduplication happens after the per-term cutoff.
func (r *Ranker) FindMostRelevantSections(
	ctx context.Context, terms []string, sections []domain.Section,
) ([]domain.SearchResult, error) {
	logger.Stage("rank-multi")
	logger.Debug("Terms: %v", terms)

	var combined []domain.SearchResult
	for _, term := range terms {
		results, err := r.Rank(ctx, term, sections, perTermLimit)
		if err != nil {
			logger.Warn("Ranking failed for term %q: %v", term, err)
			continue
		}
		combined = append(combined, results...)
	}

	best := make(map[string]domain.SearchResult)
	for _, res := range combined {
		if prev, ok := best[res.Section.ID]; !ok || res.Similarity > prev.Similarity {
			best[res.Section.ID] = res
		}
	}

	deduped := make([]domain.SearchResult, 0, len(best))
	for _, res := range best {
		deduped = append(deduped, res)
	}
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Similarity > deduped[j].Similarity
	})

	logger.Debug("Deduplicated to %d results", len(deduped))
	return truncate(deduped, multiTermLimit), nil
}

// CosineSimilarity computes dot(a,b) / (|a|*|b|), defined as 0 when
// either vector has zero magnitude or dimensions differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func truncate(results []domain.SearchResult, k int) []domain.SearchResult {
	if k > 0 && len(results) > k {
		return results[:k]
	}
	return results
}
