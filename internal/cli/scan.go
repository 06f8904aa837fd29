package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsroom-tools/doppel/internal/cache"
	"github.com/newsroom-tools/doppel/internal/ingest"
	"github.com/newsroom-tools/doppel/internal/model"
	"github.com/newsroom-tools/doppel/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	statePath   string
	fetchBodies bool
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	llmEnabled  bool
	llmModel    string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <items-file>",
	Short: "Scan a working set for near-duplicates and suppression matches",
	Long: `Scan loads content items from a JSON or YAML file, fingerprints each
live item, and reports:
- Duplicate groups: pairs of items whose similarity exceeds the threshold,
  with the reasons each match fired
- Suppressed items: items resembling content bulk-deleted within the
  retention window (when a state file is supplied)

Example:
  doppel scan items.json
  doppel scan items.yaml --json report.json --md report.md
  doppel scan items.json --fetch-bodies --state .doppel-state.json
  doppel scan items.json --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scanCmd.Flags().StringVar(&statePath, "state", "", "suppression state file from a previous purge (optional)")
	scanCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags, used only with --fetch-bodies
	scanCmd.Flags().BoolVar(&fetchBodies, "fetch-bodies", false, "fetch missing article bodies from source URLs")
	scanCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall scan timeout (matters with --fetch-bodies)")
	scanCmd.Flags().StringVar(&userAgent, "ua", "Doppel/0.1 (+https://github.com/newsroom-tools/doppel)", "HTTP User-Agent")
	scanCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per article")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the body cache (force fresh fetches)")

	// LLM flags
	scanCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM cluster summary (descriptive only)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runScan(cmd *cobra.Command, args []string) error {
	itemsPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	items, err := ingest.LoadItems(itemsPath)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s (%d items)\n", itemsPath, len(items))
		fmt.Fprintf(os.Stderr, "Threshold: %.2f\n", cfg.Similarity.MatchThreshold)
		fmt.Fprintln(os.Stderr)
	}

	if fetchBodies {
		var bodyCache cache.Cache
		if cfg.Cache.Enabled {
			bodyCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
		fetcher := ingest.NewFetcher(cfg.HTTP, bodyCache, cfg.Cache.TTL)
		items = fetcher.EnrichBodies(ctx, items, cfg.Concurrency.FetchWorkers)
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Fetched missing bodies\n")
		}
	}

	p := pipeline.NewPipeline(cfg)
	if statePath != "" {
		if err := loadState(statePath, p.Memory()); err != nil {
			return err
		}
	}

	report := p.Scan(ctx, items)

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Indexed %d live items\n", report.LiveCount)
		fmt.Fprintf(os.Stderr, "✓ Found %d duplicate groups\n", len(report.Groups))
		fmt.Fprintf(os.Stderr, "✓ Flagged %d items resembling recently removed content\n", len(report.Suppressed))
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if err := renderer.Render(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
