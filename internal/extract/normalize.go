package extract

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases text and collapses every run of non-alphanumeric
// characters into a single space. Empty input yields an empty string.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	return strings.TrimSpace(nonWord.ReplaceAllString(lower, " "))
}

// Tokenize splits text into normalized words.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}
