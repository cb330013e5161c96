// Package extract turns one GameRecord plus its resolved winner into typed
// events for the aggregator. Every extractor returns an empty slice when the
// winner is unresolved: a record without a winner contributes no events, so
// win-rate denominators stay meaningful.
package extract

import (
	"sort"

	"github.com/HStrand/bga-tm-stats/internal/model"
)

// Awards emits one event per (participant, award) where the participant
// holds placement 1 in their score breakdown. Multiple awards per
// participant each yield a separate event.
func Awards(rec *model.GameRecord, winnerID string) []model.Event {
	if winnerID == "" {
		return nil
	}
	var out []model.Event
	for _, id := range rec.PlayerIDs() {
		p := rec.Players[id]
		for _, name := range sortedAwardNames(p.Awards) {
			res := p.Awards[name]
			if res.Place != 1 {
				continue
			}
			ev := baseEvent(model.KindAward, name, rec, p, winnerID)
			ev.BonusVP = res.VP
			ev.Counter = res.Counter
			out = append(out, ev)
		}
	}
	return out
}

// Milestones emits one event per claimed milestone name. A participant
// claiming three milestones yields three independently counted events.
func Milestones(rec *model.GameRecord, winnerID string) []model.Event {
	if winnerID == "" {
		return nil
	}
	var out []model.Event
	for _, id := range rec.PlayerIDs() {
		p := rec.Players[id]
		for _, name := range p.Milestones {
			ev := baseEvent(model.KindMilestone, name, rec, p, winnerID)
			ev.EloDelta = copyInt(p.EloDelta)
			out = append(out, ev)
		}
	}
	return out
}

// Corporations emits one event per participant keyed by corporation label.
// Participants with an empty label are skipped.
func Corporations(rec *model.GameRecord, winnerID string) []model.Event {
	if winnerID == "" {
		return nil
	}
	var out []model.Event
	for _, id := range rec.PlayerIDs() {
		p := rec.Players[id]
		if p.Corporation == "" {
			continue
		}
		ev := baseEvent(model.KindCorp, p.Corporation, rec, p, winnerID)
		ev.EloDelta = copyInt(p.EloDelta)
		out = append(out, ev)
	}
	return out
}

func baseEvent(kind model.EventKind, subject string, rec *model.GameRecord, p model.PlayerRecord, winnerID string) model.Event {
	return model.Event{
		Kind:        kind,
		Subject:     subject,
		ReplayID:    rec.ReplayID,
		GameDate:    rec.GameDate,
		PlayerID:    p.ID,
		PlayerName:  p.Name,
		Corporation: p.Corporation,
		WonGame:     p.ID == winnerID,
	}
}

func sortedAwardNames(awards map[string]model.AwardResult) []string {
	if len(awards) == 0 {
		return nil
	}
	names := make([]string, 0, len(awards))
	for name := range awards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
