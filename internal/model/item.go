package model

import "time"

// ContentItem is a raw article record handed in by the ingestion pipeline.
// The core never mutates it; it only emits decisions referencing its ID.
type ContentItem struct {
	ID          string           `json:"id" yaml:"id"`
	Title       string           `json:"title" yaml:"title"`
	Body        string           `json:"body" yaml:"body"`
	SourceURL   string           `json:"source_url" yaml:"sourceUrl"`
	Status      ProcessingStatus `json:"status" yaml:"status"`
	PublishedAt time.Time        `json:"published_at,omitempty" yaml:"publishedAt,omitempty"` // Optional; zero means unknown
}

// ProcessingStatus tracks where an item sits in the ingestion lifecycle
type ProcessingStatus string

const (
	StatusNew       ProcessingStatus = "new"       // Freshly ingested, not yet reviewed
	StatusProcessed ProcessingStatus = "processed" // Reviewed and kept
	StatusDiscarded ProcessingStatus = "discarded" // Removed from the working set
)

// Live reports whether the item belongs in the duplicate-comparison
// working set. Missing status is treated as new, not as an error.
func (s ProcessingStatus) Live() bool {
	return s != StatusDiscarded
}

// DeleteFilter describes a bulk-delete request from the moderation
// workflow. Criteria are OR-ed: an item matches if any keyword is a
// case-insensitive substring of its title+body, any entity matches one of
// its extracted entities, or its publication date falls in [After, Before].
type DeleteFilter struct {
	Keywords []string  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Entities []string  `json:"entities,omitempty" yaml:"entities,omitempty"`
	After    time.Time `json:"after,omitempty" yaml:"after,omitempty"`
	Before   time.Time `json:"before,omitempty" yaml:"before,omitempty"`
}

// Empty reports whether the filter carries no criteria at all.
// An empty filter matches nothing rather than everything.
func (f DeleteFilter) Empty() bool {
	return len(f.Keywords) == 0 && len(f.Entities) == 0 && f.After.IsZero() && f.Before.IsZero()
}
