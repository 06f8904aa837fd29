package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newsroom-tools/doppel/internal/ingest"
	"github.com/newsroom-tools/doppel/internal/model"
	"github.com/newsroom-tools/doppel/internal/pipeline"
)

var checkState string

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <items-file>",
	Short: "Check incoming items against suppression memory",
	Long: `Check reports, for each live item in the file, whether it resembles
content bulk-deleted within the retention window. Suppressed items should
be held back from the review queue; everything else passes through.

The verdict is a resemblance heuristic, not proof of duplication: an item
is flagged when more than half of a deleted entry's keywords appear in
its extracted signature or text.

Example:
  doppel check incoming.json --state .doppel-state.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkState, "state", ".doppel-state.json", "suppression state file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	items, err := ingest.LoadItems(args[0])
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	p := pipeline.NewPipeline(model.DefaultConfig())
	if err := loadState(checkState, p.Memory()); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d suppression entries from %s\n\n", p.Memory().Len(), checkState)
	}

	suppressed := 0
	for _, item := range items {
		if !item.Status.Live() {
			continue
		}
		if p.CheckSuppressed(item) {
			suppressed++
			fmt.Printf("%s\tsuppressed\n", item.ID)
		} else {
			fmt.Printf("%s\tok\n", item.ID)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "\n✓ %d of %d items resemble recently removed content\n", suppressed, len(items))
	}

	return nil
}
