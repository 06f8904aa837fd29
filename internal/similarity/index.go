package similarity

import (
	"context"
	"sort"
	"sync"

	"github.com/newsroom-tools/doppel/internal/fingerprint"
	"github.com/newsroom-tools/doppel/internal/model"
	"github.com/newsroom-tools/doppel/internal/worker"
)

// Sets at or above this size are fingerprinted through the worker pool.
const parallelRebuildThreshold = 32

// Index maps item ids to fingerprints for the live working set.
//
// The index is rebuilt wholesale whenever the caller supplies an updated
// item set; there is no incremental diffing. FindSimilar scans every
// entry, so a full pass over n items costs O(n²). That is a deliberate
// simplicity/consistency trade-off sized for a single topic's working set
// (tens to low hundreds of items); larger scale needs a bucketed
// incremental index instead.
//
// Safe for concurrent use: readers never observe a half-built index.
type Index struct {
	mu           sync.RWMutex
	fingerprints map[string]model.Fingerprint

	builder   *fingerprint.Builder
	scorer    *Scorer
	threshold float64
	workers   int
}

// NewIndex creates an empty index. Results must score strictly above
// threshold to surface from FindSimilar.
func NewIndex(threshold float64, workers int) *Index {
	if workers <= 0 {
		workers = 1
	}
	return &Index{
		fingerprints: make(map[string]model.Fingerprint),
		builder:      fingerprint.NewBuilder(),
		scorer:       NewScorer(),
		threshold:    threshold,
		workers:      workers,
	}
}

// Rebuild replaces the index with fingerprints of the supplied items,
// dropping discarded ones. The swap is atomic: concurrent FindSimilar
// calls see either the old or the new index, never a mix.
func (x *Index) Rebuild(items []model.ContentItem) {
	live := make([]model.ContentItem, 0, len(items))
	for _, item := range items {
		if item.Status.Live() {
			live = append(live, item)
		}
	}

	next := make(map[string]model.Fingerprint, len(live))
	if len(live) >= parallelRebuildThreshold && x.workers > 1 {
		for _, fp := range x.buildParallel(live) {
			next[fp.ItemID] = fp
		}
	} else {
		for _, item := range live {
			next[item.ID] = x.builder.Build(item)
		}
	}

	x.mu.Lock()
	x.fingerprints = next
	x.mu.Unlock()
}

func (x *Index) buildParallel(items []model.ContentItem) []model.Fingerprint {
	pool := worker.NewPool(x.workers)
	pool.Start()

	for _, item := range items {
		pool.Submit(&fingerprintJob{item: item, builder: x.builder})
	}

	results := pool.Wait()
	fps := make([]model.Fingerprint, 0, len(results))
	for _, res := range results {
		if fr, ok := res.(*fingerprintResult); ok {
			fps = append(fps, fr.fp)
		}
	}
	return fps
}

// FindSimilar scores the target against every other entry and returns the
// candidates above the match threshold, ranked by descending score.
// Unknown ids yield an empty result.
func (x *Index) FindSimilar(itemID string) []model.SimilarityResult {
	x.mu.RLock()
	defer x.mu.RUnlock()

	target, ok := x.fingerprints[itemID]
	if !ok {
		return nil
	}

	var matches []model.SimilarityResult
	for id, candidate := range x.fingerprints {
		if id == itemID {
			continue
		}
		result := x.scorer.Score(target, candidate)
		if result.Score > x.threshold {
			matches = append(matches, result)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].CandidateID < matches[j].CandidateID
	})

	return matches
}

// Fingerprint returns the stored fingerprint for an item id.
func (x *Index) Fingerprint(itemID string) (model.Fingerprint, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	fp, ok := x.fingerprints[itemID]
	return fp, ok
}

// IDs returns the ids currently indexed, sorted for stable iteration.
func (x *Index) IDs() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	ids := make([]string, 0, len(x.fingerprints))
	for id := range x.fingerprints {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of indexed items.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.fingerprints)
}

// fingerprintJob builds one fingerprint on the worker pool.
type fingerprintJob struct {
	item    model.ContentItem
	builder *fingerprint.Builder
}

func (j *fingerprintJob) Execute(ctx context.Context) worker.Result {
	return &fingerprintResult{fp: j.builder.Build(j.item)}
}

type fingerprintResult struct {
	fp model.Fingerprint
}

func (r *fingerprintResult) GetError() error {
	return nil
}
