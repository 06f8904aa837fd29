package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/newsroom-tools/doppel/internal/model"
)

// Renderer writes scan reports to JSON and Markdown.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// Render writes the report to the given paths. Empty paths are skipped.
func (r *Renderer) Render(report *model.ScanReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", jsonPath, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON report: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := os.WriteFile(mdPath, []byte(r.Markdown(report)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", mdPath, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown report: %s\n", mdPath)
		}
	}

	return nil
}

// Markdown renders the report as a human-readable document for the
// moderation queue.
func (r *Renderer) Markdown(report *model.ScanReport) string {
	var b strings.Builder

	b.WriteString("# Near-Duplicate Scan Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Items scanned: %d (%d live)\n", report.ItemCount, report.LiveCount)
	fmt.Fprintf(&b, "- Duplicate groups: %d\n", len(report.Groups))
	fmt.Fprintf(&b, "- Resembling recently removed content: %d\n\n", len(report.Suppressed))

	if len(report.Groups) == 0 {
		b.WriteString("No near-duplicates above threshold.\n")
	}

	for _, group := range report.Groups {
		fmt.Fprintf(&b, "## %s (`%s`)\n\n", group.Title, group.ItemID)
		for _, match := range group.Matches {
			fmt.Fprintf(&b, "- **%.2f** %s (`%s`)", match.Score, match.Title, match.CandidateID)
			if match.SourceURL != "" {
				fmt.Fprintf(&b, " - %s", match.SourceURL)
			}
			b.WriteString("\n")
			for _, reason := range match.Reasons {
				fmt.Fprintf(&b, "  - %s\n", reason)
			}
		}
		b.WriteString("\n")
	}

	if len(report.Suppressed) > 0 {
		b.WriteString("## Suppressed\n\n")
		for _, id := range report.Suppressed {
			fmt.Fprintf(&b, "- `%s` resembles content removed in the last 24h\n", id)
		}
		b.WriteString("\n")
	}

	if report.LLM != nil && report.LLM.Enabled {
		b.WriteString("## Summary\n\n")
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "_Generated by %s/%s; descriptive only, does not affect scores._\n\n", report.LLM.Provider, report.LLM.Model)
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by doppel. Scores are heuristic overlap signals, not deletion verdicts.\n")
	}

	return b.String()
}
