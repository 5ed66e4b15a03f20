package domain

// RelevanceLabel buckets a cosine similarity into a human-readable
// relevance grade.
type RelevanceLabel string

// Available relevance labels, strongest first.
const (
	RelevanceVeryHigh RelevanceLabel = "very_high"
	RelevanceHigh     RelevanceLabel = "high"
	RelevanceMedium   RelevanceLabel = "medium"
	RelevanceLow      RelevanceLabel = "low"
	RelevanceVeryLow  RelevanceLabel = "very_low"
)

// LabelForSimilarity maps a cosine similarity to exactly one relevance
// label. Thresholds are exclusive lower bounds, evaluated top-down.
func LabelForSimilarity(similarity float64) RelevanceLabel {
	switch {
	case similarity > 0.8:
		return RelevanceVeryHigh
	case similarity > 0.6:
		return RelevanceHigh
	case similarity > 0.4:
		return RelevanceMedium
	case similarity > 0.2:
		return RelevanceLow
	default:
		return RelevanceVeryLow
	}
}

// Rank returns the position of the label in the relevance order,
// 0 being the strongest. Useful for monotonicity checks and display.
func (l RelevanceLabel) Rank() int {
	switch l {
	case RelevanceVeryHigh:
		return 0
	case RelevanceHigh:
		return 1
	case RelevanceMedium:
		return 2
	case RelevanceLow:
		return 3
	default:
		return 4
	}
}

// Description returns a human-readable description of the label.
func (l RelevanceLabel) Description() string {
	switch l {
	case RelevanceVeryHigh:
		return "Very High"
	case RelevanceHigh:
		return "High"
	case RelevanceMedium:
		return "Medium"
	case RelevanceLow:
		return "Low"
	case RelevanceVeryLow:
		return "Very Low"
	default:
		return "Unknown"
	}
}

// String returns the string representation.
func (l RelevanceLabel) String() string {
	return string(l)
}

// SearchResult is a single ranked hit against the current section set.
// Results are transient: they are recomputed per query and never
// persisted independently of their source Section.
type SearchResult struct {
	// Section is the matched section.
	Section Section

	// Similarity is the cosine similarity in [-1, 1].
	Similarity float64

	// Relevance is the bucketed relevance grade for Similarity.
	Relevance RelevanceLabel
}
