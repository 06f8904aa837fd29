package extract

import "regexp"

const (
	maxEntities  = 10
	minEntityLen = 4  // Strictly longer than 3 characters
	maxEntityLen = 29 // Strictly shorter than 30 characters
)

var capitalizedPhrase = regexp.MustCompile(`[A-Z][a-z]+(?: [A-Z][a-z]+)*`)

// EntityExtractor derives capitalized-phrase candidates from article text.
// This is a crude proper-noun heuristic, not named-entity recognition: it
// both over- and under-matches, and the similarity thresholds downstream
// were tuned against exactly that profile.
type EntityExtractor struct {
	blacklist map[string]struct{}
}

// NewEntityExtractor creates an entity extractor with the standard
// blacklist of common capitalized non-entities
func NewEntityExtractor() *EntityExtractor {
	words := []string{
		"This", "That", "These", "Those", "They", "There", "Then",
		"When", "Where", "While", "What", "Which", "With", "From",
		"Have", "Will", "Would", "Could", "Should", "About", "After",
		"Before", "Because", "However", "Although", "Meanwhile",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return &EntityExtractor{blacklist: set}
}

// Phrases returns every raw capitalized run in the text, before the
// length and blacklist filtering Extract applies. Bulk-delete entity
// matching scans these runs: a multi-word entity is often embedded in a
// longer run (a title bleeding into a sentence start) that the length
// cap would discard.
func (e *EntityExtractor) Phrases(text string) []string {
	return capitalizedPhrase.FindAllString(text, -1)
}

// Extract matches runs of capitalized words in the original-case text,
// keeps phrases strictly between 3 and 30 characters that are not
// blacklisted, deduplicates, and caps the result at 10 entries.
// The text must not be normalized first: lowercasing destroys the
// capitalization signal this heuristic depends on.
func (e *EntityExtractor) Extract(text string) []string {
	seen := make(map[string]struct{})
	var entities []string

	for _, phrase := range capitalizedPhrase.FindAllString(text, -1) {
		if len(phrase) < minEntityLen || len(phrase) > maxEntityLen {
			continue
		}
		if _, skip := e.blacklist[phrase]; skip {
			continue
		}
		if _, dup := seen[phrase]; dup {
			continue
		}
		seen[phrase] = struct{}{}
		entities = append(entities, phrase)
		if len(entities) == maxEntities {
			break
		}
	}

	return entities
}
