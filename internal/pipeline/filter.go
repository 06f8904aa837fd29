package pipeline

import (
	"strings"
	"time"

	"github.com/newsroom-tools/doppel/internal/extract"
	"github.com/newsroom-tools/doppel/internal/model"
)

// MatchFilter reports which item ids match the bulk-delete filter, in
// input order. Criteria are OR-ed; an empty filter matches nothing.
// Discarded items never match: they are already out of the working set.
func MatchFilter(items []model.ContentItem, filter model.DeleteFilter) []string {
	if filter.Empty() {
		return nil
	}

	entities := extract.NewEntityExtractor()

	var ids []string
	for _, item := range items {
		if !item.Status.Live() {
			continue
		}
		if matchesFilter(item, filter, entities) {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func matchesFilter(item model.ContentItem, filter model.DeleteFilter, entities *extract.EntityExtractor) bool {
	text := strings.ToLower(item.Title + " " + item.Body)

	for _, kw := range filter.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}

	if len(filter.Entities) > 0 {
		// Match against the raw capitalized runs, not the filtered
		// entity list: the length cap drops long runs that still
		// contain the wanted entity.
		phrases := entities.Phrases(item.Title + " " + item.Body)
		for _, want := range filter.Entities {
			normalizedWant := extract.Normalize(want)
			if normalizedWant == "" {
				continue
			}
			for _, phrase := range phrases {
				if strings.Contains(extract.Normalize(phrase), normalizedWant) {
					return true
				}
			}
		}
	}

	if !filter.After.IsZero() || !filter.Before.IsZero() {
		if inDateRange(item.PublishedAt, filter) {
			return true
		}
	}

	return false
}

// inDateRange checks the publication date against the filter bounds,
// inclusive. Items without a date never match a date range.
func inDateRange(published time.Time, filter model.DeleteFilter) bool {
	if published.IsZero() {
		return false
	}
	if !filter.After.IsZero() && published.Before(filter.After) {
		return false
	}
	if !filter.Before.IsZero() && published.After(filter.Before) {
		return false
	}
	return true
}
