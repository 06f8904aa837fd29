package fingerprint

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"github.com/newsroom-tools/doppel/internal/extract"
	"github.com/newsroom-tools/doppel/internal/model"
)

// Builder derives fingerprints from content items. Building is
// deterministic: identical title+body always yields an identical
// fingerprint, including keyword order and hash.
type Builder struct {
	keywords *extract.KeywordExtractor
	entities *extract.EntityExtractor
}

// NewBuilder creates a fingerprint builder with the standard extractors
func NewBuilder() *Builder {
	return &Builder{
		keywords: extract.NewKeywordExtractor(),
		entities: extract.NewEntityExtractor(),
	}
}

// Build fingerprints a single item. Missing title or body degrade to the
// empty string rather than erroring.
func (b *Builder) Build(item model.ContentItem) model.Fingerprint {
	combined := item.Title + " " + item.Body

	// Keywords come from normalized text; entities need the original case
	keywords := b.keywords.Extract(combined)
	entities := b.entities.Extract(combined)

	return model.Fingerprint{
		ItemID:    item.ID,
		Title:     item.Title,
		Body:      item.Body,
		SourceURL: item.SourceURL,
		Keywords:  keywords,
		Entities:  entities,
		Hash:      hashFingerprint(item.Title, keywords, entities),
	}
}

// hashFingerprint hashes normalized title plus sorted keywords and
// entities. Sorting before hashing keeps extraction-order variance out of
// the hash. FNV-1a is a pre-filter for fast equality checks, not a
// security primitive; equality contributes only a bonus signal downstream.
func hashFingerprint(title string, keywords, entities []string) string {
	sortedKeywords := append([]string(nil), keywords...)
	sort.Strings(sortedKeywords)
	sortedEntities := append([]string(nil), entities...)
	sort.Strings(sortedEntities)

	parts := []string{extract.Normalize(title)}
	parts = append(parts, sortedKeywords...)
	parts = append(parts, sortedEntities...)

	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.Join(parts, "|")))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}
