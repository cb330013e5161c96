package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/HStrand/bga-tm-stats/internal/aggregate"
	"github.com/HStrand/bga-tm-stats/internal/config"
	"github.com/HStrand/bga-tm-stats/internal/extract"
	"github.com/HStrand/bga-tm-stats/internal/model"
	"github.com/HStrand/bga-tm-stats/internal/report"
	"github.com/HStrand/bga-tm-stats/internal/storage"
)

const wonReplay = `{
  "replay_id": "r-won",
  "game_date": "2024-03-01",
  "players": {
    "p1": {"player_name": "Alice", "corporation": "Helion", "final_vp": 68,
           "milestones_claimed": ["Gardener"]},
    "p2": {"player_name": "Bob", "corporation": "Tharsis Republic", "final_vp": 55}
  }
}`

// Both participants tie at the maximum score and no winner label is present,
// so the record resolves no winner and contributes no events.
const tiedReplay = `{
  "replay_id": "r-tied",
  "game_date": "2024-03-02",
  "players": {
    "p1": {"player_name": "Alice", "final_vp": 50, "milestones_claimed": ["Mayor"]},
    "p2": {"player_name": "Bob", "final_vp": 50}
  }
}`

// setupRun points the package globals at temp directories and returns the
// replay input dir and CSV output dir.
func setupRun(t *testing.T) (string, string) {
	t.Helper()

	base := t.TempDir()
	in := filepath.Join(base, "replays")
	out := filepath.Join(base, "out")
	for _, dir := range []string{in, out} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	cfg = config.Defaults()
	cfg.DBPath = filepath.Join(base, "test.db")
	cfg.OutputDir = out
	log = zap.NewNop().Sugar()

	inputPath, outDir = in, out
	minElo, minOpponentElo = 0, 0
	t.Cleanup(func() {
		inputPath, outDir = "", ""
	})
	return in, out
}

func writeRunReplay(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func milestoneSpec() analysisSpec {
	return analysisSpec{
		name:    "milestones",
		kind:    model.KindMilestone,
		order:   aggregate.ByWinRate,
		extract: extract.Milestones,
		print:   report.PrintMilestoneSummary,
	}
}

func TestRunAnalysis_NoEventsWritesNothing(t *testing.T) {
	in, out := setupRun(t)
	writeRunReplay(t, in, "tied.json", tiedReplay)

	if err := runAnalysis(milestoneSpec()); err != nil {
		t.Fatalf("runAnalysis: %v", err)
	}

	for _, name := range []string{"milestones_detailed.csv", "milestones_summary.csv"} {
		if _, err := os.Stat(filepath.Join(out, name)); !os.IsNotExist(err) {
			t.Errorf("%s must not be written when no events were produced", name)
		}
	}
	if _, err := os.Stat(cfg.DBPath); !os.IsNotExist(err) {
		t.Error("nothing should be persisted when no events were produced")
	}
}

func TestRunAnalysis_EmptyInputDir(t *testing.T) {
	_, out := setupRun(t)

	if err := runAnalysis(milestoneSpec()); err != nil {
		t.Fatalf("runAnalysis over empty dir: %v", err)
	}
	if entries, err := os.ReadDir(out); err != nil || len(entries) != 0 {
		t.Errorf("empty input must produce no output files, got %v (%v)", entries, err)
	}
}

func TestRunAnalysis_WritesReportsAndStores(t *testing.T) {
	in, out := setupRun(t)
	writeRunReplay(t, in, "won.json", wonReplay)

	// Two runs: the second exercises the already-stored path and must not
	// duplicate rows.
	for i := 0; i < 2; i++ {
		if err := runAnalysis(milestoneSpec()); err != nil {
			t.Fatalf("runAnalysis run %d: %v", i, err)
		}
	}

	for _, name := range []string{"milestones_detailed.csv", "milestones_summary.csv"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer db.Close()

	games, err := db.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 1 || games[0].ReplayID != "r-won" || games[0].WinnerName != "Alice" {
		t.Errorf("stored games: got %+v", games)
	}

	stats, err := db.GetSubjectStats("milestones")
	if err != nil {
		t.Fatalf("GetSubjectStats: %v", err)
	}
	if len(stats) != 1 || stats[0].Subject != "Gardener" || stats[0].Wins != 1 {
		t.Errorf("stored snapshot: got %+v", stats)
	}
}
