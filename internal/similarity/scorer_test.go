package similarity

import (
	"math"
	"testing"

	"github.com/newsroom-tools/doppel/internal/fingerprint"
	"github.com/newsroom-tools/doppel/internal/model"
)

func TestScorer_Symmetry(t *testing.T) {
	builder := fingerprint.NewBuilder()
	scorer := NewScorer()

	a := builder.Build(model.ContentItem{
		ID:    "a",
		Title: "City Council Approves New Park",
		Body:  "The Riverside City Council voted to approve the new park project on Tuesday.",
	})
	b := builder.Build(model.ContentItem{
		ID:    "b",
		Title: "Riverside Council Approves Park Project",
		Body:  "City Council members voted to approve the new riverside park on Tuesday.",
	})

	forward := scorer.Score(a, b)
	backward := scorer.Score(b, a)

	if forward.Score != backward.Score {
		t.Errorf("Expected symmetric scores, got %f and %f", forward.Score, backward.Score)
	}
	if len(forward.Reasons) != len(backward.Reasons) {
		t.Errorf("Expected symmetric reasons, got %v and %v", forward.Reasons, backward.Reasons)
	}
}

func TestScorer_RewrittenHeadlines(t *testing.T) {
	builder := fingerprint.NewBuilder()
	scorer := NewScorer()

	// Same story from two outlets: title overlap and keyword overlap
	// must both fire
	a := builder.Build(model.ContentItem{
		ID:    "a",
		Title: "City Council Approves New Park",
		Body:  "The Riverside City Council voted to approve the new park project on Tuesday.",
	})
	b := builder.Build(model.ContentItem{
		ID:    "b",
		Title: "Riverside Council Approves Park Project",
		Body:  "City Council members voted to approve the new riverside park on Tuesday.",
	})

	result := scorer.Score(a, b)

	if !hasReason(result, ReasonSimilarTitles) {
		t.Errorf("Expected %q in reasons, got %v", ReasonSimilarTitles, result.Reasons)
	}
	if !hasReason(result, ReasonSimilarKeywords) {
		t.Errorf("Expected %q in reasons, got %v", ReasonSimilarKeywords, result.Reasons)
	}
	if result.Score <= 0.5 {
		t.Errorf("Expected score above 0.5 for rewritten headline pair, got %f", result.Score)
	}
}

func TestScorer_IdenticalContentScoresMaximum(t *testing.T) {
	builder := fingerprint.NewBuilder()
	scorer := NewScorer()

	item := model.ContentItem{
		ID:    "a",
		Title: "Flooding Closes Riverside Bridge",
		Body:  "Flooding on the Riverside River closed the Harbor Bridge overnight on Monday.",
	}
	a := builder.Build(item)
	item.ID = "b"
	b := builder.Build(item)

	result := scorer.Score(a, b)

	if math.Abs(result.Score-1.0) > 1e-9 {
		t.Errorf("Expected maximum score 1.0 for identical content, got %f", result.Score)
	}
	if !hasReason(result, ReasonFingerprintMatch) {
		t.Errorf("Expected %q in reasons, got %v", ReasonFingerprintMatch, result.Reasons)
	}
}

func TestScorer_UnrelatedContentScoresZero(t *testing.T) {
	builder := fingerprint.NewBuilder()
	scorer := NewScorer()

	a := builder.Build(model.ContentItem{
		ID:    "a",
		Title: "Flooding Closes Harbor Bridge",
		Body:  "Overnight flooding submerged the harbor district and closed the bridge.",
	})
	b := builder.Build(model.ContentItem{
		ID:    "b",
		Title: "Mayor Wins Reelection Campaign",
		Body:  "Voters returned the incumbent mayor for another term after a quiet campaign.",
	})

	if a.Hash == b.Hash {
		t.Fatal("test fixture requires distinct hashes")
	}

	result := scorer.Score(a, b)

	if result.Score != 0 {
		t.Errorf("Expected exactly 0 for unrelated items, got %f", result.Score)
	}
	if len(result.Reasons) != 0 {
		t.Errorf("Expected no reasons, got %v", result.Reasons)
	}
}

func TestScorer_NeverNaN(t *testing.T) {
	scorer := NewScorer()

	// Hand-built empty fingerprints: every component sees empty sets
	a := model.Fingerprint{ItemID: "a", Hash: "1"}
	b := model.Fingerprint{ItemID: "b", Hash: "2"}

	result := scorer.Score(a, b)

	if math.IsNaN(result.Score) {
		t.Error("Expected empty-set comparison to produce 0, got NaN")
	}
	if result.Score != 0 {
		t.Errorf("Expected 0 for empty fingerprints, got %f", result.Score)
	}
}

func TestJaccard_EmptySets(t *testing.T) {
	if got := jaccard(nil, nil); got != 0 {
		t.Errorf("Expected jaccard of two empty sets to be 0, got %f", got)
	}
	if got := jaccard([]string{"flooding"}, nil); got != 0 {
		t.Errorf("Expected jaccard against one empty set to be 0, got %f", got)
	}
}

func TestJaccard_PartialOverlap(t *testing.T) {
	got := jaccard([]string{"flooding", "bridge", "closure"}, []string{"flooding", "bridge", "repair"})
	want := 2.0 / 4.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %f, got %f", want, got)
	}
}

func TestTitleSimilarity_IgnoresShortTokens(t *testing.T) {
	// "new" and "the" are too short to count as significant tokens
	got := titleSimilarity("City Council Approves New Park", "Riverside Council Approves Park Project")
	if got <= titleGate {
		t.Errorf("Expected title similarity above the %0.1f gate, got %f", titleGate, got)
	}
}

func hasReason(result model.SimilarityResult, reason string) bool {
	for _, r := range result.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}
