package llm

import (
	"context"
	"fmt"

	"github.com/newsroom-tools/doppel/internal/model"
)

// Provider is an LLM backend capable of describing duplicate clusters.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates prose describing the clusters in the report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for cluster summarization.
type SummarizeRequest struct {
	Report    model.ScanReport
	Prompt    string // Optional custom prompt; empty uses the default
	Model     string
	MaxTokens int
}

// SummarizeResponse is the generated summary.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	Provider  string // "openai" or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// NewProvider builds the configured provider. Empty provider name means
// summaries are disabled and callers get nil, nil.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// BuildPrompt constructs the default summarization prompt. The summary
// describes overlap signals for moderators; it must never read as a
// deletion verdict, since scores and suppression decisions are computed
// before the LLM is consulted and are never changed by it.
func BuildPrompt(report model.ScanReport) string {
	prompt := fmt.Sprintf(`You are summarizing a near-duplicate detection report for a content moderation queue.

CRITICAL RULES:
1. Describe WHY items look similar (shared titles, keywords, entities), never whether they should be deleted.
2. Only reference items and reasons present in the report below.
3. If there are no duplicate groups, say so plainly.

Report:
- Items scanned: %d (%d live)
- Duplicate groups: %d
- Items resembling recently removed content: %d

Groups:
`, report.ItemCount, report.LiveCount, len(report.Groups), len(report.Suppressed))

	for i, group := range report.Groups {
		if i >= 10 {
			prompt += fmt.Sprintf("... and %d more groups\n", len(report.Groups)-10)
			break
		}
		prompt += fmt.Sprintf("- %q (%s):\n", group.Title, group.ItemID)
		for _, match := range group.Matches {
			prompt += fmt.Sprintf("  - %q score %.2f, reasons: %v\n", match.Title, match.Score, match.Reasons)
		}
	}

	prompt += "\nProvide a 3-4 sentence summary of the duplicate landscape for a human moderator."
	return prompt
}
