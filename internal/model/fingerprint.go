package model

// Fingerprint is the derived, deterministic representation of a content
// item used for similarity comparison. Re-deriving from identical
// title+body always yields an identical fingerprint.
type Fingerprint struct {
	ItemID    string   `json:"item_id"`
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	SourceURL string   `json:"source_url,omitempty"`
	Keywords  []string `json:"keywords"` // Frequency-ranked, max 10
	Entities  []string `json:"entities"` // Capitalized-phrase candidates, max 10
	Hash      string   `json:"hash"`     // Base-36 encoded 32-bit hash
}

// SimilarityResult is one candidate match for a target item, with the
// composite score and the human-readable reasons behind it. Computed on
// demand, never persisted.
type SimilarityResult struct {
	CandidateID string   `json:"candidate_id"`
	Score       float64  `json:"score"`
	Reasons     []string `json:"reasons"`
	SourceURL   string   `json:"source_url,omitempty"`
	Title       string   `json:"title"`
}
