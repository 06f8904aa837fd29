package suppress

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/newsroom-tools/doppel/internal/extract"
	"github.com/newsroom-tools/doppel/internal/model"
)

// Fraction of a memory entry's keywords that must resemble the candidate
// before it is flagged.
const overlapThreshold = 0.5

// Entry records the keyword signature of one bulk-deleted item.
// Entries outlive their items; they exist only to keep near-duplicates of
// recently removed content from resurfacing.
type Entry struct {
	Keywords  []string  `json:"keywords"`
	DeletedAt time.Time `json:"deleted_at"`
}

// Memory is a time-windowed record of recently bulk-deleted items.
//
// Entries are keyed by deleted item id and expire after the retention
// window. Safe for concurrent use: the underlying store is a TTL cache,
// and readers see either pre- or post-sweep state, never a partial one.
type Memory struct {
	entries  *gocache.Cache
	window   time.Duration
	keywords *extract.KeywordExtractor
	entities *extract.EntityExtractor
	now      func() time.Time
}

// NewMemory creates a suppression memory with the given retention window.
func NewMemory(window time.Duration) *Memory {
	return &Memory{
		entries:  gocache.New(window, 0),
		window:   window,
		keywords: extract.NewKeywordExtractor(),
		entities: extract.NewEntityExtractor(),
		now:      time.Now,
	}
}

// SetClock replaces the time source, for deterministic expiry tests.
func (m *Memory) SetClock(now func() time.Time) {
	m.now = now
}

// RecordDeletion stores one entry per deleted id. All entries from one
// batch share the same keyword set and timestamp; a prior entry for the
// same id is overwritten.
func (m *Memory) RecordDeletion(itemIDs []string, keywords []string) {
	deletedAt := m.now()
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = extract.Normalize(kw); kw != "" {
			normalized = append(normalized, kw)
		}
	}

	entry := Entry{Keywords: normalized, DeletedAt: deletedAt}
	for _, id := range itemIDs {
		m.entries.Set(id, entry, gocache.DefaultExpiration)
	}
}

// IsLikelySuppressed reports whether the item resembles content deleted
// within the retention window. An entry matches when more than half of
// its keywords appear in the item's extracted keyword/entity signature or
// its normalized text; the scan short-circuits on the first match, since
// any match suffices.
func (m *Memory) IsLikelySuppressed(item model.ContentItem) bool {
	combined := item.Title + " " + item.Body
	normalizedText := extract.Normalize(combined)
	if normalizedText == "" {
		return false
	}

	signature := make(map[string]struct{})
	for _, kw := range m.keywords.Extract(combined) {
		signature[kw] = struct{}{}
	}
	for _, ent := range m.entities.Extract(combined) {
		signature[extract.Normalize(ent)] = struct{}{}
	}

	now := m.now()
	for _, cached := range m.entries.Items() {
		entry, ok := cached.Object.(Entry)
		if !ok {
			continue
		}
		// Age check applies even before a sweep runs
		if now.Sub(entry.DeletedAt) > m.window {
			continue
		}
		if entryOverlap(entry, signature, normalizedText) > overlapThreshold {
			return true
		}
	}
	return false
}

// entryOverlap computes the fraction of the entry's keywords found in the
// candidate's signature or text. Empty keyword sets overlap nothing.
func entryOverlap(entry Entry, signature map[string]struct{}, normalizedText string) float64 {
	if len(entry.Keywords) == 0 {
		return 0
	}

	matched := 0
	for _, kw := range entry.Keywords {
		if _, ok := signature[kw]; ok {
			matched++
			continue
		}
		if strings.Contains(normalizedText, kw) {
			matched++
		}
	}
	return float64(matched) / float64(len(entry.Keywords))
}

// Sweep removes entries older than the retention window.
func (m *Memory) Sweep() {
	m.entries.DeleteExpired()
}

// StartSweeper runs Sweep on a fixed interval until the context is
// cancelled, so shutting down the host never leaks the timer.
func (m *Memory) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

// Len returns the number of stored entries. Entries past the window but
// not yet swept may still be counted; IsLikelySuppressed ignores them.
func (m *Memory) Len() int {
	return m.entries.ItemCount()
}

// Snapshot exports the live entries so the host can persist suppression
// state between runs. Persistence itself stays the caller's concern.
func (m *Memory) Snapshot() map[string]Entry {
	items := m.entries.Items()
	out := make(map[string]Entry, len(items))
	now := m.now()
	for id, cached := range items {
		entry, ok := cached.Object.(Entry)
		if !ok || now.Sub(entry.DeletedAt) > m.window {
			continue
		}
		out[id] = entry
	}
	return out
}

// Restore loads previously snapshotted entries, skipping any that have
// aged past the retention window in the meantime.
func (m *Memory) Restore(entries map[string]Entry) {
	now := m.now()
	for id, entry := range entries {
		age := now.Sub(entry.DeletedAt)
		if age > m.window {
			continue
		}
		m.entries.Set(id, entry, m.window-age)
	}
}
