package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/aggregate"
	"github.com/HStrand/bga-tm-stats/internal/loader"
	"github.com/HStrand/bga-tm-stats/internal/model"
	"github.com/HStrand/bga-tm-stats/internal/report"
	"github.com/HStrand/bga-tm-stats/internal/storage"
	"github.com/HStrand/bga-tm-stats/internal/winner"
)

// Flags shared by the analysis commands.
var (
	inputPath      string
	outDir         string
	minElo         int
	minOpponentElo int
)

// addAnalysisFlags registers the flag set common to every analysis command.
// The rating filters are only offered where opponent-aware data exists.
func addAnalysisFlags(cmd *cobra.Command, withRatingFilters bool) {
	cmd.Flags().StringVar(&inputPath, "input-file", "", "replay file or directory (overrides config)")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for CSV reports (overrides config)")
	if withRatingFilters {
		cmd.Flags().IntVar(&minElo, "min-elo", 0, "only count events of players at or above this rating")
		cmd.Flags().IntVar(&minOpponentElo, "min-opponent-elo", 0, "only count events against opponents at or above this rating")
	}
}

// analysisSpec wires one analysis: which events to extract from each record,
// how to order the finalized statistics, and how to print them.
type analysisSpec struct {
	name    string // report file prefix and stored analysis key
	kind    model.EventKind
	order   aggregate.SortOrder
	extract func(rec *model.GameRecord, winnerID string) []model.Event
	print   func(w io.Writer, stats []model.SubjectStats)
}

// runAnalysis is the batch pipeline every analysis command goes through:
// walk the replays, resolve winners, extract and filter events, aggregate,
// print the summary table, write the CSV pair and store the results.
func runAnalysis(spec analysisSpec) error {
	input := inputPath
	if input == "" {
		input = cfg.ReplaysDir
	}
	out := outDir
	if out == "" {
		out = cfg.OutputDir
	}

	agg := aggregate.New(true)
	var games []model.GameSummary
	var playerRows []model.PlayerGameRow
	unresolved := 0

	loaded, skipped, err := loader.Walk(input, log, func(rec *model.GameRecord) {
		winnerID, ok := winner.Resolve(rec)
		if !ok {
			unresolved++
			log.Debugw("no winner resolved, record contributes no events", "replay_id", rec.ReplayID)
		}

		games = append(games, gameSummary(rec, winnerID))
		playerRows = append(playerRows, playerGameRows(rec, winnerID)...)

		for _, ev := range spec.extract(rec, winnerID) {
			if !passesRatingFilters(&ev) {
				continue
			}
			agg.Ingest(ev)
		}
	})
	if err != nil {
		return fmt.Errorf("read replays: %w", err)
	}
	if loaded == 0 {
		fmt.Fprintf(os.Stdout, "No processable replay files found under %s, nothing to do.\n", input)
		return nil
	}
	if agg.Total() == 0 {
		fmt.Fprintf(os.Stdout, "Processed %d games (%d skipped, %d without a winner) but none produced %s events; not writing reports.\n",
			loaded, skipped, unresolved, spec.kind)
		return nil
	}

	fmt.Fprintf(os.Stdout, "Processed %d games (%d skipped, %d without a winner): %d %s events across %d subjects.\n\n",
		loaded, skipped, unresolved, agg.Total(), spec.kind, agg.Len())

	stats := agg.Finalize(spec.order)
	spec.print(os.Stdout, stats)

	writeReports(spec, out, agg.Events(), stats)
	persistResults(spec.name, games, playerRows, stats)
	return nil
}

// passesRatingFilters applies the optional min-rating filters. An event with
// an absent rating never passes an active filter.
func passesRatingFilters(ev *model.Event) bool {
	if minElo > 0 && (ev.Elo == nil || *ev.Elo < minElo) {
		return false
	}
	if minOpponentElo > 0 && (ev.OpponentElo == nil || *ev.OpponentElo < minOpponentElo) {
		return false
	}
	return true
}

// writeReports writes the detailed and summary CSV pair. A write failure is
// logged, not fatal: the console output already carries the results.
func writeReports(spec analysisSpec, out string, events []model.Event, stats []model.SubjectStats) {
	detailed := filepath.Join(out, spec.name+"_detailed.csv")
	summary := filepath.Join(out, spec.name+"_summary.csv")

	if err := report.WriteDetailedFile(detailed, spec.kind, events); err != nil {
		log.Warnw("write detailed report failed", "path", detailed, "error", err)
	} else {
		fmt.Fprintf(os.Stdout, "\nWrote %s (%d rows)\n", detailed, len(events))
	}
	if err := report.WriteSummaryFile(summary, spec.kind, stats); err != nil {
		log.Warnw("write summary report failed", "path", summary, "error", err)
	} else {
		fmt.Fprintf(os.Stdout, "Wrote %s (%d rows)\n", summary, len(stats))
	}
}

// persistResults upserts the processed games and the finalized statistics
// into the SQLite store. Storage failures are logged, not fatal.
func persistResults(analysis string, games []model.GameSummary, rows []model.PlayerGameRow, stats []model.SubjectStats) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Warnw("open storage failed, results not persisted", "path", cfg.DBPath, "error", err)
		return
	}
	defer db.Close()

	newGames := 0
	for _, g := range games {
		exists, err := db.GameExists(g.ReplayID)
		if err != nil {
			log.Warnw("check stored game failed", "replay_id", g.ReplayID, "error", err)
			continue
		}
		if !exists {
			newGames++
		}
	}

	if err := db.InsertGames(games); err != nil {
		log.Warnw("store games failed", "error", err)
		return
	}
	if err := db.InsertGamePlayers(rows); err != nil {
		log.Warnw("store game players failed", "error", err)
		return
	}
	if err := db.InsertSubjectStats(analysis, stats); err != nil {
		log.Warnw("store statistics failed", "analysis", analysis, "error", err)
		return
	}
	fmt.Fprintf(os.Stdout, "Stored %d games (%d new) and the %s snapshot in %s\n",
		len(games), newGames, analysis, cfg.DBPath)
}

func gameSummary(rec *model.GameRecord, winnerID string) model.GameSummary {
	g := model.GameSummary{
		ReplayID:    rec.ReplayID,
		GameDate:    rec.GameDate,
		WinnerID:    winnerID,
		PlayerCount: len(rec.Players),
		DraftOn:     rec.DraftOn,
		ColoniesOn:  rec.ColoniesOn,
	}
	if winnerID != "" {
		g.WinnerName = rec.Players[winnerID].Name
	}
	return g
}

func playerGameRows(rec *model.GameRecord, winnerID string) []model.PlayerGameRow {
	rows := make([]model.PlayerGameRow, 0, len(rec.Players))
	for _, id := range rec.PlayerIDs() {
		p := rec.Players[id]
		rows = append(rows, model.PlayerGameRow{
			ReplayID:    rec.ReplayID,
			PlayerID:    id,
			Name:        p.Name,
			Corporation: p.Corporation,
			FinalVP:     p.FinalVP,
			Elo:         p.Elo,
			EloDelta:    p.EloDelta,
			Won:         id == winnerID && winnerID != "",
		})
	}
	return rows
}
