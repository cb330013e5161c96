package extract

import "github.com/HStrand/bga-tm-stats/internal/model"

// Cards emits one event per played card per participant, skipping cards in
// the exclude set (preludes). The whole record is skipped when the colonies
// expansion is on or when the participant count is not exactly 2: the card
// statistics are defined only for the 2-player baseline ruleset, and the
// opponent-rating lookup relies on there being exactly one opponent.
func Cards(rec *model.GameRecord, winnerID string, exclude map[string]struct{}) []model.Event {
	if winnerID == "" {
		return nil
	}
	if rec.ColoniesOn || len(rec.Players) != 2 {
		return nil
	}

	ids := rec.PlayerIDs()
	var out []model.Event
	for i, id := range ids {
		p := rec.Players[id]
		opp := rec.Players[ids[1-i]]
		for _, card := range p.CardsPlayed {
			if _, skip := exclude[card]; skip {
				continue
			}
			ev := baseEvent(model.KindCard, card, rec, p, winnerID)
			ev.Elo = copyInt(p.Elo)
			ev.EloDelta = copyInt(p.EloDelta)
			ev.OpponentElo = copyInt(opp.Elo)
			out = append(out, ev)
		}
	}
	return out
}
