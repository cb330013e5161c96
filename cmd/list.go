package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/report"
	"github.com/HStrand/bga-tm-stats/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored games",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.ListGames()
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'tmstats awards' (or any analysis) to ingest replays.")
		return nil
	}

	report.PrintGameList(os.Stdout, games)
	fmt.Fprintf(os.Stdout, "\n(%d games)\n", len(games))
	return nil
}
