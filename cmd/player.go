package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/report"
	"github.com/HStrand/bga-tm-stats/internal/storage"
)

var playerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "Show one player's stored games and win rate",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	name := args[0]

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	rows, err := db.PlayerGames(name)
	if err != nil {
		return fmt.Errorf("query player games: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stdout, "No stored games for %q.\n", name)
		return nil
	}

	wins := 0
	deltaSum, deltaN := 0, 0
	for _, r := range rows {
		if r.Won {
			wins++
		}
		if r.EloDelta != nil {
			deltaSum += *r.EloDelta
			deltaN++
		}
	}

	fmt.Fprintf(os.Stdout, "\n%s: %d games, %d wins (%.1f%%)",
		name, len(rows), wins, float64(wins)/float64(len(rows))*100)
	if deltaN > 0 {
		fmt.Fprintf(os.Stdout, ", avg rating change %+.2f", float64(deltaSum)/float64(deltaN))
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout)

	report.PrintPlayerGames(os.Stdout, rows)
	return nil
}
