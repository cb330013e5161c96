// Package winner resolves the single winning participant of a game record.
// All functions are pure and never error: ambiguity resolves to "no winner",
// and callers are expected to skip event extraction for that record.
package winner

import "github.com/HStrand/bga-tm-stats/internal/model"

// Resolve picks the winner of rec. When the record carries an explicit winner
// label, label mode is used; otherwise score mode. Returns ("", false) when
// no single winner can be determined.
func Resolve(rec *model.GameRecord) (string, bool) {
	if rec.WinnerLabel != "" {
		return ResolveByLabel(rec.WinnerLabel, rec.Players)
	}
	return ResolveByScore(rec.Players)
}

// ResolveByScore returns the participant holding the strict positive maximum
// final score. Two or more participants tied at the positive maximum, an
// all-zero record, or an empty mapping all resolve to no winner. A score of
// 0 never counts toward a tie.
func ResolveByScore(players map[string]model.PlayerRecord) (string, bool) {
	best := ""
	bestScore := 0
	ties := 0
	for id, p := range players {
		switch {
		case p.FinalVP > bestScore:
			best, bestScore, ties = id, p.FinalVP, 1
		case p.FinalVP == bestScore && p.FinalVP > 0:
			ties++
		}
	}
	if best == "" || ties > 1 {
		return "", false
	}
	return best, true
}

// ResolveByLabel returns the participant whose display name equals label.
// An empty label or a label matching no participant resolves to no winner.
func ResolveByLabel(label string, players map[string]model.PlayerRecord) (string, bool) {
	if label == "" {
		return "", false
	}
	for id, p := range players {
		if p.Name == label {
			return id, true
		}
	}
	return "", false
}
