package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/storage"
)

var dropForce bool

// dropCmd deletes the stats database, or a single game when a replay id is
// given.
var dropCmd = &cobra.Command{
	Use:   "drop [replay-id]",
	Short: "Delete the stats database, or a single stored game",
	Long: `With no argument, permanently delete the SQLite stats database; all stored
game data will be lost. With a replay id, delete only that game and its
participant rows. Re-run an analysis afterwards to rebuild.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return dropGame(args[0])
	}

	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", cfg.DBPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(cfg.DBPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", cfg.DBPath)
	return nil
}

func dropGame(replayID string) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	deleted, err := db.DeleteGame(replayID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if !deleted {
		fmt.Fprintf(os.Stdout, "No stored game with replay id %s.\n", replayID)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted game %s.\n", replayID)
	return nil
}
