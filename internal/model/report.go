package model

import "time"

// ScanReport is the full output of a working-set scan: duplicate groups
// plus per-item suppression verdicts. Rendering and persistence are the
// caller's concern.
type ScanReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	ItemCount   int              `json:"item_count"`
	LiveCount   int              `json:"live_count"`
	Groups      []DuplicateGroup `json:"groups"`
	Suppressed  []string         `json:"suppressed,omitempty"` // IDs flagged by suppression memory

	LLM *LLMSummary `json:"llm,omitempty"` // Optional summary, never affects scores
}

// DuplicateGroup ties a target item to its above-threshold candidates,
// ranked by descending score.
type DuplicateGroup struct {
	ItemID  string             `json:"item_id"`
	Title   string             `json:"title"`
	Matches []SimilarityResult `json:"matches"`
}

// LLMSummary contains an optional LLM-generated description of the
// duplicate clusters. It is diagnostic prose only and never feeds back
// into scoring or suppression decisions.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
