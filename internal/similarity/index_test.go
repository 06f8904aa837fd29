package similarity

import (
	"fmt"
	"sync"
	"testing"

	"github.com/newsroom-tools/doppel/internal/model"
)

func TestIndex_RebuildDropsDiscarded(t *testing.T) {
	index := NewIndex(0.7, 1)

	index.Rebuild([]model.ContentItem{
		{ID: "a", Title: "Flooding Closes Bridge", Status: model.StatusNew},
		{ID: "b", Title: "Flooding Closes Bridge", Status: model.StatusDiscarded},
		{ID: "c", Title: "Council Approves Budget", Status: model.StatusProcessed},
	})

	if index.Len() != 2 {
		t.Errorf("Expected 2 live items in index, got %d", index.Len())
	}
	if _, ok := index.Fingerprint("b"); ok {
		t.Error("Expected discarded item to be dropped from index")
	}
}

func TestIndex_FindSimilar_ThresholdAndOrder(t *testing.T) {
	index := NewIndex(0.7, 1)

	target := model.ContentItem{
		ID:    "target",
		Title: "Flooding Closes Riverside Bridge",
		Body:  "Flooding on the Riverside River closed the Harbor Bridge overnight on Monday.",
	}
	exact := target
	exact.ID = "exact"
	near := target
	near.ID = "near"
	near.Body = "Flooding on the Riverside River closed the Harbor Bridge overnight."
	unrelated := model.ContentItem{
		ID:    "unrelated",
		Title: "Mayor Wins Reelection Campaign",
		Body:  "Voters returned the incumbent mayor for another term.",
	}

	index.Rebuild([]model.ContentItem{target, exact, near, unrelated})

	matches := index.FindSimilar("target")

	if len(matches) == 0 {
		t.Fatal("Expected matches for near-duplicate items")
	}
	for _, m := range matches {
		if m.CandidateID == "unrelated" {
			t.Error("Expected unrelated item to stay below threshold")
		}
		if m.CandidateID == "target" {
			t.Error("Expected target to be excluded from its own results")
		}
		if m.Score <= 0.7 {
			t.Errorf("Expected only scores above 0.7, got %f for %s", m.Score, m.CandidateID)
		}
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Error("Expected matches sorted by descending score")
		}
	}
	if matches[0].CandidateID != "exact" {
		t.Errorf("Expected exact copy ranked first, got %s", matches[0].CandidateID)
	}
}

func TestIndex_FindSimilar_UnknownID(t *testing.T) {
	index := NewIndex(0.7, 1)
	index.Rebuild([]model.ContentItem{{ID: "a", Title: "Flooding Closes Bridge"}})

	if matches := index.FindSimilar("missing"); len(matches) != 0 {
		t.Errorf("Expected no matches for unknown id, got %v", matches)
	}
}

func TestIndex_EmptyRebuild(t *testing.T) {
	index := NewIndex(0.7, 1)
	index.Rebuild([]model.ContentItem{{ID: "a", Title: "Flooding Closes Bridge"}})
	index.Rebuild(nil)

	if index.Len() != 0 {
		t.Errorf("Expected empty index after rebuilding with no items, got %d", index.Len())
	}
	if matches := index.FindSimilar("a"); len(matches) != 0 {
		t.Errorf("Expected no matches from empty index, got %v", matches)
	}
}

func TestIndex_ParallelRebuildMatchesSerial(t *testing.T) {
	items := make([]model.ContentItem, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, model.ContentItem{
			ID:    fmt.Sprintf("item-%d", i),
			Title: fmt.Sprintf("Flooding Report Number %d", i),
			Body:  fmt.Sprintf("Flooding update %d for the riverside district.", i),
		})
	}

	serial := NewIndex(0.7, 1)
	serial.Rebuild(items)
	parallel := NewIndex(0.7, 4)
	parallel.Rebuild(items)

	if serial.Len() != parallel.Len() {
		t.Fatalf("Expected equal sizes, got %d and %d", serial.Len(), parallel.Len())
	}
	for _, id := range serial.IDs() {
		sfp, _ := serial.Fingerprint(id)
		pfp, ok := parallel.Fingerprint(id)
		if !ok {
			t.Fatalf("Expected %s in parallel index", id)
		}
		if sfp.Hash != pfp.Hash {
			t.Errorf("Expected identical fingerprints for %s, got %s and %s", id, sfp.Hash, pfp.Hash)
		}
	}
}

func TestIndex_RebuildAtomicity(t *testing.T) {
	index := NewIndex(0.7, 1)

	// Two generations of the same ids. Within either generation, "a" and
	// "b" are exact copies of each other, so a consistent snapshot always
	// yields one match with the fingerprint bonus. A torn read mixing
	// generations would score near zero.
	gen := func(tag string) []model.ContentItem {
		title := "Flooding Closes " + tag + " Bridge"
		body := "Flooding closed the " + tag + " bridge overnight after heavy rainfall upstream."
		return []model.ContentItem{
			{ID: "a", Title: title, Body: body},
			{ID: "b", Title: title, Body: body},
		}
	}
	generations := [][]model.ContentItem{gen("Harbor"), gen("Riverside")}
	index.Rebuild(generations[0])

	stop := make(chan struct{})
	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				index.Rebuild(generations[i%2])
			}
		}
	}()

	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for i := 0; i < 200; i++ {
				matches := index.FindSimilar("a")
				if len(matches) != 1 {
					t.Errorf("Expected exactly one match, got %d", len(matches))
					return
				}
				if !hasReason(matches[0], ReasonFingerprintMatch) {
					t.Errorf("Expected fingerprint match in consistent snapshot, got %v", matches[0].Reasons)
					return
				}
			}
		}()
	}

	readers.Wait()
	close(stop)
	writer.Wait()
}
