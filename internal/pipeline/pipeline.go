package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/newsroom-tools/doppel/internal/extract"
	"github.com/newsroom-tools/doppel/internal/llm"
	"github.com/newsroom-tools/doppel/internal/model"
	"github.com/newsroom-tools/doppel/internal/similarity"
	"github.com/newsroom-tools/doppel/internal/suppress"
)

// Pipeline owns the duplicate index and suppression memory for one
// moderation session. Instances are independent: tests and hosts create
// one per topic, never a process-wide singleton.
type Pipeline struct {
	index      *similarity.Index
	memory     *suppress.Memory
	summarizer *llm.Summarizer // nil when disabled
	config     *model.Config
}

// NewPipeline creates a session from the given configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.Config{
			Provider:  cfg.LLM.Provider,
			Model:     cfg.LLM.Model,
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		index:      similarity.NewIndex(cfg.Similarity.MatchThreshold, cfg.Concurrency.FingerprintWorkers),
		memory:     suppress.NewMemory(cfg.Suppression.Window),
		summarizer: summarizer,
		config:     cfg,
	}
}

// Sync rebuilds the duplicate index from the current working set.
// Call whenever the ingestion collaborator reports a changed item set.
func (p *Pipeline) Sync(items []model.ContentItem) {
	p.index.Rebuild(items)
}

// FindSimilar returns above-threshold candidates for the item, ranked by
// descending score.
func (p *Pipeline) FindSimilar(itemID string) []model.SimilarityResult {
	return p.index.FindSimilar(itemID)
}

// BulkDelete reports which of the supplied items match the filter and
// records their keyword signature in suppression memory. The caller
// performs the actual persistence-layer delete; this core only decides.
func (p *Pipeline) BulkDelete(items []model.ContentItem, filter model.DeleteFilter) []string {
	ids := MatchFilter(items, filter)
	if len(ids) == 0 {
		return nil
	}

	p.memory.RecordDeletion(ids, suppressionKeywords(filter))
	return ids
}

// CheckSuppressed reports whether the item resembles recently deleted
// content and should stay out of the review queue.
func (p *Pipeline) CheckSuppressed(item model.ContentItem) bool {
	return p.memory.IsLikelySuppressed(item)
}

// Memory exposes the suppression memory so the host can snapshot and
// restore it across runs.
func (p *Pipeline) Memory() *suppress.Memory {
	return p.memory
}

// StartSweeper launches the periodic suppression sweep. It stops when
// the context is cancelled.
func (p *Pipeline) StartSweeper(ctx context.Context) {
	p.memory.StartSweeper(ctx, p.config.Suppression.SweepInterval)
}

// Scan rebuilds the index from the items and reports every duplicate
// group and suppression verdict in one pass. The optional LLM summary is
// generated last and never alters the computed results.
func (p *Pipeline) Scan(ctx context.Context, items []model.ContentItem) *model.ScanReport {
	p.Sync(items)

	report := &model.ScanReport{
		GeneratedAt: time.Now().UTC(),
		ItemCount:   len(items),
		LiveCount:   p.index.Len(),
	}

	// Full pairwise pass: O(n²), sized for a single topic's working set
	for _, id := range p.index.IDs() {
		matches := p.index.FindSimilar(id)
		if len(matches) == 0 {
			continue
		}
		fp, _ := p.index.Fingerprint(id)
		report.Groups = append(report.Groups, model.DuplicateGroup{
			ItemID:  id,
			Title:   fp.Title,
			Matches: matches,
		})
	}

	for _, item := range items {
		if item.Status.Live() && p.memory.IsLikelySuppressed(item) {
			report.Suppressed = append(report.Suppressed, item.ID)
		}
	}
	sort.Strings(report.Suppressed)

	if p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else {
			report.LLM = summary
		}
	}

	return report
}

// suppressionKeywords derives the keyword signature recorded for a
// deleted batch: the filter's keywords, falling back to its entities
// when the delete was entity- or date-driven.
func suppressionKeywords(filter model.DeleteFilter) []string {
	if len(filter.Keywords) > 0 {
		return filter.Keywords
	}

	var keywords []string
	for _, ent := range filter.Entities {
		if normalized := extract.Normalize(ent); normalized != "" {
			keywords = append(keywords, normalized)
		}
	}
	return keywords
}
