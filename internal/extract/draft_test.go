package extract

import (
	"testing"

	"go.uber.org/zap"

	"github.com/HStrand/bga-tm-stats/internal/model"
)

func draftRecord(moves ...model.Move) *model.GameRecord {
	return &model.GameRecord{
		ReplayID: "d1",
		DraftOn:  true,
		Players: map[string]model.PlayerRecord{
			"p1": {ID: "p1", Name: "Alice", FinalVP: 70},
			"p2": {ID: "p2", Name: "Bob", FinalVP: 50},
		},
		Moves: moves,
	}
}

func nopLog() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func TestDraftPicks_RankFromCardsLeft(t *testing.T) {
	cases := []struct {
		left []string
		want int
	}{
		{[]string{"A", "B", "C"}, 1},
		{[]string{"A", "B"}, 2},
		{[]string{}, 4},
	}
	for _, c := range cases {
		rec := draftRecord(model.Move{
			ActionType:  "draft",
			PlayerID:    "p1",
			CardDrafted: "Insulation",
			CardOptions: map[string][]string{"p1": c.left},
		})
		evs := DraftPicks(rec, "p1", nopLog())
		if len(evs) != 1 {
			t.Fatalf("%d cards left: expected 1 event, got %d", len(c.left), len(evs))
		}
		if evs[0].PickRank != c.want {
			t.Errorf("%d cards left: rank want %d, got %d", len(c.left), c.want, evs[0].PickRank)
		}
		if evs[0].Synthetic {
			t.Errorf("%d cards left: event must not be synthetic", len(c.left))
		}
	}
}

func TestDraftPicks_RankTwoNoInjection(t *testing.T) {
	rec := draftRecord(model.Move{
		ActionType:  "draft",
		PlayerID:    "p1",
		CardDrafted: "Insulation",
		CardOptions: map[string][]string{"p1": {"A", "B"}},
	})
	evs := DraftPicks(rec, "p1", nopLog())
	if len(evs) != 1 {
		t.Fatalf("2 cards left: expected rank-2 event only, got %d events", len(evs))
	}
	if evs[0].PickRank != 2 {
		t.Errorf("rank: want 2, got %d", evs[0].PickRank)
	}
}

func TestDraftPicks_RankThreeInjectsLeftover(t *testing.T) {
	rec := draftRecord(model.Move{
		ActionType:  "draft",
		PlayerID:    "p1",
		CardDrafted: "Insulation",
		CardOptions: map[string][]string{"p1": {"C"}},
	})
	evs := DraftPicks(rec, "p1", nopLog())
	if len(evs) != 2 {
		t.Fatalf("1 card left: expected exactly 2 events, got %d", len(evs))
	}

	picked, leftover := evs[0], evs[1]
	if picked.Subject != "Insulation" || picked.PickRank != 3 || picked.Synthetic {
		t.Errorf("picked: want (Insulation, rank 3, real), got (%s, %d, %v)",
			picked.Subject, picked.PickRank, picked.Synthetic)
	}
	if leftover.Subject != "C" || leftover.PickRank != 4 || !leftover.Synthetic {
		t.Errorf("leftover: want (C, rank 4, synthetic), got (%s, %d, %v)",
			leftover.Subject, leftover.PickRank, leftover.Synthetic)
	}
	if picked.PlayerID != leftover.PlayerID {
		t.Error("both events must belong to the same participant")
	}
}

func TestDraftPicks_InvalidCardsLeftSkipped(t *testing.T) {
	rec := draftRecord(
		model.Move{
			ActionType:  "draft",
			PlayerID:    "p1",
			CardDrafted: "Comet",
			CardOptions: map[string][]string{"p1": {"A", "B", "C", "D"}}, // 4 left: invalid
		},
		model.Move{
			ActionType:  "draft",
			PlayerID:    "p1",
			CardDrafted: "Birds",
			CardOptions: map[string][]string{"p1": {"A", "B", "C"}},
		},
	)
	evs := DraftPicks(rec, "p1", nopLog())
	if len(evs) != 1 {
		t.Fatalf("expected the invalid move skipped, got %d events", len(evs))
	}
	if evs[0].Subject != "Birds" {
		t.Errorf("surviving event: want Birds, got %s", evs[0].Subject)
	}
}

func TestDraftPicks_NonDraftRecord(t *testing.T) {
	rec := draftRecord(model.Move{
		ActionType:  "draft",
		PlayerID:    "p1",
		CardDrafted: "Insulation",
		CardOptions: map[string][]string{"p1": {"A", "B"}},
	})
	rec.DraftOn = false
	if evs := DraftPicks(rec, "p1", nopLog()); len(evs) != 0 {
		t.Errorf("non-draft record must yield no events, got %d", len(evs))
	}
}

func TestDraftPicks_NonDraftMovesIgnored(t *testing.T) {
	rec := draftRecord(
		model.Move{ActionType: "play_card", PlayerID: "p1"},
		model.Move{
			ActionType:  "draft",
			PlayerID:    "p2",
			CardDrafted: "Comet",
			CardOptions: map[string][]string{"p2": {"A", "B", "C"}},
		},
	)
	evs := DraftPicks(rec, "p1", nopLog())
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	if evs[0].WonGame {
		t.Error("p2 is not the winner: expected WonGame=false")
	}
}
