package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/storage"
)

// summaryCmd displays a high-level overview of the stored corpus.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all games stored in the database:
total game count, how many have a resolved winner, expansion usage and the
number of distinct players seen.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Games == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'tmstats awards' (or any analysis) to ingest replays.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Games stored     : %d\n", ov.Games)
	fmt.Fprintf(os.Stdout, "  Resolved winners : %d\n", ov.ResolvedGames)
	fmt.Fprintf(os.Stdout, "  Draft games      : %d\n", ov.DraftGames)
	fmt.Fprintf(os.Stdout, "  Colony games     : %d\n", ov.ColonyGames)
	fmt.Fprintf(os.Stdout, "  Players seen     : %d\n", ov.Players)
	return nil
}
