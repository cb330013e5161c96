package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/HStrand/bga-tm-stats/internal/aggregate"
	"github.com/HStrand/bga-tm-stats/internal/model"
)

func intp(v int) *int { return &v }

func draftEvents() []model.Event {
	return []model.Event{
		{Kind: model.KindDraft, Subject: "Comet", ReplayID: "r1", PlayerName: "Alice", PickRank: 1, WonGame: true},
		{Kind: model.KindDraft, Subject: "Comet", ReplayID: "r2", PlayerName: "Bob", PickRank: 2},
		{Kind: model.KindDraft, Subject: "Comet", ReplayID: "r3", PlayerName: "Alice", PickRank: 1, WonGame: true},
		{Kind: model.KindDraft, Subject: "Birds", ReplayID: "r1", PlayerName: "Bob", PickRank: 4, Synthetic: true},
	}
}

// The draft summary must stay consistent with its own detailed report: for
// every card, total_picks and total_wins re-read from the summary CSV equal
// the counts derivable from the detailed rows.
func TestDraftCSV_SummaryMatchesDetailed(t *testing.T) {
	agg := aggregate.New(true)
	for _, ev := range draftEvents() {
		agg.Ingest(ev)
	}

	var detailed, summary bytes.Buffer
	if err := WriteDetailedCSV(&detailed, model.KindDraft, agg.Events()); err != nil {
		t.Fatal(err)
	}
	if err := WriteSummaryCSV(&summary, model.KindDraft, agg.Finalize(aggregate.ByPriority)); err != nil {
		t.Fatal(err)
	}

	detRows, err := csv.NewReader(&detailed).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	picks := map[string]int{}
	wins := map[string]int{}
	for _, row := range detRows[1:] {
		card, won := row[2], row[6]
		picks[card]++
		if won == "true" {
			wins[card]++
		}
	}

	sumRows, err := csv.NewReader(&summary).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(sumRows) != 3 { // header + 2 cards
		t.Fatalf("expected 2 summary rows, got %d", len(sumRows)-1)
	}
	for _, row := range sumRows[1:] {
		card := row[0]
		gotPicks, _ := strconv.Atoi(row[1])
		gotWins, _ := strconv.Atoi(row[2])
		if gotPicks != picks[card] || gotWins != wins[card] {
			t.Errorf("%s: summary (%d picks, %d wins) != detailed (%d, %d)",
				card, gotPicks, gotWins, picks[card], wins[card])
		}
	}
}

func TestDraftSummary_PriorityOrder(t *testing.T) {
	agg := aggregate.New(false)
	for _, ev := range draftEvents() {
		agg.Ingest(ev)
	}
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, model.KindDraft, agg.Finalize(aggregate.ByPriority)); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Comet averages earlier picks than Birds, so it sorts first.
	if rows[1][0] != "Comet" || rows[2][0] != "Birds" {
		t.Errorf("priority order: got %s then %s", rows[1][0], rows[2][0])
	}
}

func TestCardDetailed_AbsentValuesEmpty(t *testing.T) {
	events := []model.Event{
		{Kind: model.KindCard, Subject: "Loan", ReplayID: "r1", PlayerName: "Alice",
			Elo: intp(510), EloDelta: nil, OpponentElo: nil},
	}
	var buf bytes.Buffer
	if err := WriteDetailedCSV(&buf, model.KindCard, events); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	row := rows[1]
	if row[6] != "510" {
		t.Errorf("present rating: want 510, got %q", row[6])
	}
	if row[7] != "" || row[8] != "" {
		t.Errorf("absent ratings must be empty fields, got %q and %q", row[7], row[8])
	}
}

func TestQuotedFieldsSurviveRoundTrip(t *testing.T) {
	events := []model.Event{
		{Kind: model.KindAward, Subject: `Banker, "the rich"`, ReplayID: "r1",
			PlayerName: "Alice", BonusVP: 5, WonGame: true},
	}
	var buf bytes.Buffer
	if err := WriteDetailedCSV(&buf, model.KindAward, events); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if rows[1][2] != `Banker, "the rich"` {
		t.Errorf("delimiter/quote characters must survive, got %q", rows[1][2])
	}
}

func TestPrintDraftSummary(t *testing.T) {
	agg := aggregate.New(false)
	for _, ev := range draftEvents() {
		agg.Ingest(ev)
	}
	var buf bytes.Buffer
	PrintDraftSummary(&buf, agg.Finalize(aggregate.ByPriority))
	out := buf.String()
	if !strings.Contains(out, "Comet") || !strings.Contains(out, "PRIORITY") {
		t.Errorf("table output missing expected content:\n%s", out)
	}
}
