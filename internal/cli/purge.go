package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsroom-tools/doppel/internal/ingest"
	"github.com/newsroom-tools/doppel/internal/model"
	"github.com/newsroom-tools/doppel/internal/pipeline"
)

var (
	purgeKeywords []string
	purgeEntities []string
	purgeAfter    string
	purgeBefore   string
	purgeState    string
	purgeDryRun   bool
)

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:   "purge <items-file>",
	Short: "Match items against a bulk-delete filter and record suppression",
	Long: `Purge evaluates a bulk-delete filter against the working set and prints
the ids of matching live items. Criteria are OR-ed: an item matches when
any keyword appears in its text, any entity appears among its extracted
entities, or its publication date falls in the given range.

Matched ids are recorded in suppression memory so near-duplicates of the
deleted content stay out of the review queue for the retention window.
The state file carries that memory between runs. Doppel decides; the
hosting system performs the actual delete.

Example:
  doppel purge items.json --keyword flooding
  doppel purge items.json --entity "City Council" --state .doppel-state.json
  doppel purge items.json --after 2026-08-01 --before 2026-08-15 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().StringSliceVar(&purgeKeywords, "keyword", nil, "keyword to match (repeatable, case-insensitive substring)")
	purgeCmd.Flags().StringSliceVar(&purgeEntities, "entity", nil, "entity to match (repeatable)")
	purgeCmd.Flags().StringVar(&purgeAfter, "after", "", "match items published on or after this date (YYYY-MM-DD)")
	purgeCmd.Flags().StringVar(&purgeBefore, "before", "", "match items published on or before this date (YYYY-MM-DD)")
	purgeCmd.Flags().StringVar(&purgeState, "state", ".doppel-state.json", "suppression state file")
	purgeCmd.Flags().BoolVar(&purgeDryRun, "dry-run", false, "list matches without recording suppression")
}

func runPurge(cmd *cobra.Command, args []string) error {
	filter := model.DeleteFilter{
		Keywords: purgeKeywords,
		Entities: purgeEntities,
	}

	var err error
	if filter.After, err = parseDate(purgeAfter); err != nil {
		return err
	}
	if filter.Before, err = parseDate(purgeBefore); err != nil {
		return err
	}
	if filter.Empty() {
		return fmt.Errorf("empty filter: supply at least one --keyword, --entity, --after or --before")
	}

	items, err := ingest.LoadItems(args[0])
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	if purgeDryRun {
		ids := pipeline.MatchFilter(items, filter)
		printMatches(ids)
		return nil
	}

	p := pipeline.NewPipeline(model.DefaultConfig())
	if err := loadState(purgeState, p.Memory()); err != nil {
		return err
	}

	ids := p.BulkDelete(items, filter)
	printMatches(ids)

	if err := saveState(purgeState, p.Memory()); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Recorded %d suppression entries in %s\n", len(ids), purgeState)
	}

	return nil
}

func printMatches(ids []string) {
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "No items match the filter")
		return
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
