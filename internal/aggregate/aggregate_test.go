package aggregate

import (
	"testing"

	"github.com/HStrand/bga-tm-stats/internal/model"
)

func intp(v int) *int { return &v }

func TestIngest_CountsAndWins(t *testing.T) {
	agg := New(false)
	agg.Ingest(model.Event{Kind: model.KindMilestone, Subject: "Gardener", WonGame: true})
	agg.Ingest(model.Event{Kind: model.KindMilestone, Subject: "Gardener", WonGame: false})
	agg.Ingest(model.Event{Kind: model.KindMilestone, Subject: "Gardener", WonGame: true})
	agg.Ingest(model.Event{Kind: model.KindMilestone, Subject: "Mayor", WonGame: false})

	stats := agg.Finalize(ByOccurrences)
	if len(stats) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(stats))
	}
	g := stats[0]
	if g.Subject != "Gardener" || g.Occurrences != 3 || g.Wins != 2 {
		t.Errorf("gardener: want (3 occ, 2 wins), got (%d, %d)", g.Occurrences, g.Wins)
	}
	if got, want := g.WinRate(), 2.0/3.0; got != want {
		t.Errorf("win rate: want %v, got %v", want, got)
	}
}

func TestIngest_PresentValueAverages(t *testing.T) {
	agg := New(false)
	agg.Ingest(model.Event{Subject: "Comet", Elo: intp(500), EloDelta: intp(10)})
	agg.Ingest(model.Event{Subject: "Comet", Elo: intp(700), EloDelta: intp(-4)})
	agg.Ingest(model.Event{Subject: "Comet"}) // no rating data

	s := agg.Finalize(nil)[0]
	if got := s.AvgElo(); got != 600 {
		t.Errorf("avg rating divides by present values only: want 600, got %v", got)
	}
	if got := s.AvgEloDelta(); got != 3 {
		t.Errorf("avg rating change: want 3, got %v", got)
	}
	if s.MinEloDelta() != -4 || s.MaxEloDelta() != 10 {
		t.Errorf("delta range: want [-4, 10], got [%d, %d]", s.MinEloDelta(), s.MaxEloDelta())
	}
}

func TestIngest_NegativeOnlyDeltas(t *testing.T) {
	agg := New(false)
	agg.Ingest(model.Event{Subject: "Birds", EloDelta: intp(-7)})
	agg.Ingest(model.Event{Subject: "Birds", EloDelta: intp(-3)})

	s := agg.Finalize(nil)[0]
	if s.MinEloDelta() != -7 || s.MaxEloDelta() != -3 {
		t.Errorf("want [-7, -3], got [%d, %d]", s.MinEloDelta(), s.MaxEloDelta())
	}
}

func TestIngest_RankCounts(t *testing.T) {
	agg := New(false)
	for _, r := range []int{1, 1, 2, 4} {
		agg.Ingest(model.Event{Kind: model.KindDraft, Subject: "Insulation", PickRank: r})
	}
	s := agg.Finalize(nil)[0]
	want := [4]int{2, 1, 0, 1}
	if s.RankCounts != want {
		t.Errorf("rank counts: want %v, got %v", want, s.RankCounts)
	}
	if s.TotalPicks() != 4 {
		t.Errorf("total picks: want 4, got %d", s.TotalPicks())
	}
}

func TestZeroDenominators(t *testing.T) {
	var s model.SubjectStats
	if s.WinRate() != 0 || s.AvgElo() != 0 || s.AvgEloDelta() != 0 ||
		s.AvgOpponentElo() != 0 || s.PriorityScore() != 0 || s.AvgRank() != 0 {
		t.Error("all derived metrics must be 0 at zero denominators")
	}
}

func TestMerge_MatchesSequentialIngest(t *testing.T) {
	events := []model.Event{
		{Subject: "Comet", WonGame: true, Elo: intp(500), EloDelta: intp(9)},
		{Subject: "Comet", Elo: intp(480), EloDelta: intp(-9)},
		{Subject: "Birds", WonGame: true, EloDelta: intp(2)},
		{Subject: "Comet", WonGame: true},
		{Subject: "Birds", EloDelta: intp(-11)},
	}

	sequential := New(true)
	for _, ev := range events {
		sequential.Ingest(ev)
	}

	left, right := New(true), New(true)
	for i, ev := range events {
		if i < 2 {
			left.Ingest(ev)
		} else {
			right.Ingest(ev)
		}
	}
	left.Merge(right)

	want := sequential.Finalize(ByOccurrences)
	got := left.Finalize(ByOccurrences)
	if len(got) != len(want) {
		t.Fatalf("subject count: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("subject %s: merged stats differ from sequential\nwant %+v\ngot  %+v",
				want[i].Subject, want[i], got[i])
		}
	}
	if got, want := len(left.Events()), len(sequential.Events()); got != want {
		t.Errorf("retained samples: want %d, got %d", want, got)
	}
}

func TestMerge_EmptyReceiverDeltaRange(t *testing.T) {
	src := New(false)
	src.Ingest(model.Event{Subject: "Loan", EloDelta: intp(-5)})

	dst := New(false)
	dst.Merge(src)

	s := dst.Finalize(nil)[0]
	if s.MinEloDelta() != -5 || s.MaxEloDelta() != -5 {
		t.Errorf("want [-5, -5], got [%d, %d]", s.MinEloDelta(), s.MaxEloDelta())
	}
}

func TestFinalize_StableTieBreak(t *testing.T) {
	agg := New(false)
	agg.Ingest(model.Event{Subject: "First", WonGame: true})
	agg.Ingest(model.Event{Subject: "Second", WonGame: true})

	stats := agg.Finalize(ByWinRate)
	if stats[0].Subject != "First" || stats[1].Subject != "Second" {
		t.Errorf("equal rates must keep insertion order, got %s then %s",
			stats[0].Subject, stats[1].Subject)
	}
}
