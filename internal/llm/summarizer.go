package llm

import (
	"context"
	"fmt"

	"github.com/newsroom-tools/doppel/internal/model"
)

// Summarizer wraps a provider and produces the optional LLMSummary block
// of a scan report. It runs after scoring and suppression decisions are
// final and never feeds back into them.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer, or nil, nil when summaries are
// disabled by configuration.
func NewSummarizer(cfg Config) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Summarizer{provider: provider, config: cfg}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces the summary block for a finished report.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.ScanReport) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}
	if resp.Summary == "" {
		summary.Warnings = append(summary.Warnings, "provider returned an empty summary")
	}

	return summary, nil
}
