package extract

import (
	"go.uber.org/zap"

	"github.com/HStrand/bga-tm-stats/internal/model"
)

// rankByCardsLeft maps the count of cards remaining in the acting
// participant's hand after a pick to the pick's ordinal rank within a
// 4-card draft round.
var rankByCardsLeft = map[int]int{3: 1, 2: 2, 1: 3, 0: 4}

// DraftPicks infers pick ranks for every "draft" move of a draft-mode record.
//
// When exactly one card remains after a pick (rank 3), the leftover card is
// also registered as a synthetic rank-4 event for the same participant: that
// card is auto-assigned with no further choice, and the replay log never
// records it as an explicit draft move. Moves whose cards-left count is
// outside 0-3 are skipped and logged, never treated as errors.
func DraftPicks(rec *model.GameRecord, winnerID string, log *zap.SugaredLogger) []model.Event {
	if winnerID == "" || !rec.DraftOn {
		return nil
	}

	var out []model.Event
	for _, mv := range rec.Moves {
		if mv.ActionType != "draft" || mv.CardDrafted == "" {
			continue
		}
		left := mv.CardOptions[mv.PlayerID]
		rank, ok := rankByCardsLeft[len(left)]
		if !ok {
			log.Debugw("skipping draft move with invalid cards-left count",
				"replay_id", rec.ReplayID, "player_id", mv.PlayerID, "cards_left", len(left))
			continue
		}

		p := rec.Players[mv.PlayerID]
		if p.ID == "" {
			p.ID = mv.PlayerID
		}
		ev := baseEvent(model.KindDraft, mv.CardDrafted, rec, p, winnerID)
		ev.PickRank = rank
		out = append(out, ev)

		// Rank 3 leaves a single card behind; register it as the forced
		// rank-4 pick. Fires once per rank-3 pick, never re-triggers.
		if rank == 3 {
			leftover := baseEvent(model.KindDraft, left[0], rec, p, winnerID)
			leftover.PickRank = 4
			leftover.Synthetic = true
			out = append(out, leftover)
		}
	}
	return out
}
