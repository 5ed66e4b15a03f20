package services

import (
	"regexp"
	"strings"
)

// Query extraction patterns, attempted in order. Both may contribute a
// term for the same utterance when they match different substrings.
var (
	// aboutPattern captures trailing free text after a scroll/find
	// phrase with a connector word.
	aboutPattern = regexp.MustCompile(`(?i)(?:scroll|go|find)\s+(?:to\s+)?(?:the\s+)?(?:section|part|content)?\s*(?:about|regarding)\s+(.+)`)

	// findContentPattern captures the target of a generic find-content
	// phrase.
	findContentPattern = regexp.MustCompile(`(?i)find\s+(?:content\s+)?(?:like|similar\s+to|for)?\s*(.+)`)
)

// ExtractSearchTerms derives an ordered, non-empty list of candidate
// search phrases from a raw utterance. When no pattern matches, the
// whole utterance is the sole term.
func ExtractSearchTerms(utterance string) []string {
	utterance = strings.TrimSpace(utterance)

	var terms []string
	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		for _, existing := range terms {
			if strings.EqualFold(existing, term) {
				return
			}
		}
		terms = append(terms, term)
	}

	if m := aboutPattern.FindStringSubmatch(utterance); len(m) > 1 {
		add(m[1])
	}
	if m := findContentPattern.FindStringSubmatch(utterance); len(m) > 1 {
		add(m[1])
	}

	if len(terms) == 0 {
		add(utterance)
	}
	if len(terms) == 0 {
		// Whitespace-only input still yields one term.
		terms = []string{utterance}
	}
	return terms
}
