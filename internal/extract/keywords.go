package extract

import "sort"

const (
	maxKeywords   = 10
	maxScanTokens = 20
	minTokenLen   = 4
)

// KeywordExtractor derives a bounded, frequency-ranked term set from
// article text
type KeywordExtractor struct {
	stopwords map[string]struct{}
}

// NewKeywordExtractor creates a keyword extractor with the standard
// stop-word set
func NewKeywordExtractor() *KeywordExtractor {
	words := []string{
		"about", "above", "after", "again", "against", "been", "before",
		"being", "below", "between", "both", "could", "does", "down",
		"during", "each", "from", "further", "have", "having", "here",
		"into", "just", "more", "most", "once", "only", "other", "over",
		"same", "should", "some", "such", "than", "that", "their", "them",
		"then", "there", "these", "they", "this", "those", "through",
		"under", "until", "very", "were", "what", "when", "where", "which",
		"while", "will", "with", "would",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return &KeywordExtractor{stopwords: set}
}

// Extract tokenizes the text, drops short tokens and stop-words, caps the
// surviving stream at the first 20 tokens, and returns the top 10 by
// descending frequency. Ties keep first-occurrence order, so the result is
// deterministic for a given input.
func (e *KeywordExtractor) Extract(text string) []string {
	var kept []string
	for _, tok := range Tokenize(text) {
		if len(tok) < minTokenLen {
			continue
		}
		if _, stop := e.stopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
		if len(kept) == maxScanTokens {
			break
		}
	}

	counts := make(map[string]int, len(kept))
	var order []string
	for _, tok := range kept {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	// Stable sort over first-occurrence order breaks frequency ties
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}
