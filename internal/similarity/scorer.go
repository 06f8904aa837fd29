package similarity

import (
	"strings"

	"github.com/newsroom-tools/doppel/internal/model"
)

// Component weights and gates. A component contributes only when its raw
// similarity clears its gate, so weak signals never accumulate into a
// match. The theoretical maximum composite score is exactly 1.0.
const (
	titleGate   = 0.7
	titleWeight = 0.4

	keywordGate   = 0.3
	keywordWeight = 0.3

	entityGate   = 0.2
	entityWeight = 0.2

	hashBonus = 0.1
)

// Reasons attached to each contributing component, for the moderation UI.
const (
	ReasonSimilarTitles    = "Similar titles"
	ReasonSimilarKeywords  = "Similar keywords"
	ReasonSimilarEntities  = "Similar entities"
	ReasonFingerprintMatch = "Content fingerprint match"
)

// Scorer computes the weighted composite similarity between two
// fingerprints. All component metrics are symmetric set math, so
// Score(a, b) and Score(b, a) return equal numbers.
type Scorer struct{}

// NewScorer creates a scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score compares two fingerprints and returns the composite score with
// the reasons each contributing component fired. The result references b
// as the candidate.
func (s *Scorer) Score(a, b model.Fingerprint) model.SimilarityResult {
	var score float64
	var reasons []string

	if sim := titleSimilarity(a.Title, b.Title); sim > titleGate {
		score += titleWeight * sim
		reasons = append(reasons, ReasonSimilarTitles)
	}

	if overlap := jaccard(a.Keywords, b.Keywords); overlap > keywordGate {
		score += keywordWeight * overlap
		reasons = append(reasons, ReasonSimilarKeywords)
	}

	if overlap := jaccard(a.Entities, b.Entities); overlap > entityGate {
		score += entityWeight * overlap
		reasons = append(reasons, ReasonSimilarEntities)
	}

	// Hash equality is a bonus signal only: collisions exist, so it is
	// never the sole basis for a meaningful score.
	if a.Hash == b.Hash {
		score += hashBonus
		reasons = append(reasons, ReasonFingerprintMatch)
	}

	return model.SimilarityResult{
		CandidateID: b.ItemID,
		Score:       score,
		Reasons:     reasons,
		SourceURL:   b.SourceURL,
		Title:       b.Title,
	}
}

// titleSimilarity compares the significant tokens (longer than 3 chars)
// of two titles using the overlap coefficient, |A ∩ B| / min(|A|, |B|).
// The coefficient, rather than plain Jaccard, keeps short rewritten
// headlines comparable: "City Council Approves New Park" and "Riverside
// Council Approves Park Project" share most of their significant tokens
// even though their unions diverge.
func titleSimilarity(a, b string) float64 {
	return overlapCoefficient(significantTokens(a), significantTokens(b))
}

func significantTokens(title string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(title)) {
		tok = strings.Trim(tok, ".,;:!?'\"()-")
		if len(tok) > 3 {
			set[tok] = struct{}{}
		}
	}
	return set
}

// jaccard computes |A ∩ B| / |A ∪ B| over two string slices.
// Two empty sets are defined as 0 similarity, not NaN.
func jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	union := len(setA)
	intersection := 0
	for s := range setB {
		if _, ok := setA[s]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// overlapCoefficient computes |A ∩ B| / min(|A|, |B|).
// Defined as 0 when either set is empty.
func overlapCoefficient(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	smaller, larger := a, b
	if len(b) < len(a) {
		smaller, larger = b, a
	}

	intersection := 0
	for s := range smaller {
		if _, ok := larger[s]; ok {
			intersection++
		}
	}

	return float64(intersection) / float64(len(smaller))
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
