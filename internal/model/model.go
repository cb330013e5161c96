package model

import "sort"

// EventKind tags which analysis an Event belongs to.
type EventKind int

const (
	KindAward EventKind = iota
	KindMilestone
	KindCard
	KindDraft
	KindCorp
)

func (k EventKind) String() string {
	switch k {
	case KindAward:
		return "award"
	case KindMilestone:
		return "milestone"
	case KindCard:
		return "card"
	case KindDraft:
		return "draft"
	case KindCorp:
		return "corp"
	default:
		return "?"
	}
}

// ---- Normalized replay documents ----

// GameRecord is one finished game as loaded from a replay JSON document.
// Immutable once loaded; absent fields carry their documented defaults
// (0 for scores, empty slices for milestones/cards, nil for Elo values).
type GameRecord struct {
	ReplayID    string
	GameDate    string
	WinnerLabel string // explicit winner display name, "" when absent
	DraftOn     bool
	ColoniesOn  bool
	Players     map[string]PlayerRecord // participant-id → record
	Moves       []Move
}

// PlayerIDs returns the participant ids sorted ascending, for deterministic
// iteration over the Players map.
func (g *GameRecord) PlayerIDs() []string {
	ids := make([]string, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PlayerRecord is one participant within a GameRecord.
type PlayerRecord struct {
	ID          string
	Name        string
	Corporation string
	FinalVP     int // absent in the source → 0
	Milestones  []string
	CardsPlayed []string
	Elo         *int // resulting rating after the game; nil when absent
	EloDelta    *int // signed rating change; nil when absent
	Awards      map[string]AwardResult
}

// AwardResult is one entry of a participant's award score breakdown.
// Place 1 means the award was won outright.
type AwardResult struct {
	Place   int
	VP      int
	Counter int
}

// Move is one logged action from the replay's move list.
type Move struct {
	ActionType  string
	PlayerID    string
	CardDrafted string
	// CardOptions maps participant-id → the cards left in that participant's
	// hand after this action.
	CardOptions map[string][]string
}

// ---- Events emitted by the extractors ----

// Event is a typed fact derived from one PlayerRecord plus the resolved
// winner. Events are transient: created per record, folded into the
// aggregator, then discarded (or retained as bucket samples).
type Event struct {
	Kind        EventKind
	Subject     string // award / milestone / card / corporation name
	ReplayID    string
	GameDate    string
	PlayerID    string
	PlayerName  string
	Corporation string
	WonGame     bool

	// Award payload.
	BonusVP int
	Counter int

	// Draft payload. PickRank is 1-4; Synthetic marks the injected
	// rank-4 event for the leftover card of a rank-3 pick.
	PickRank  int
	Synthetic bool

	// Rating payload; nil means absent, never zero.
	Elo         *int
	EloDelta    *int
	OpponentElo *int
}

// ---- Aggregated statistics ----

// SubjectStats holds the per-subject running aggregates. Derived metrics are
// methods so every rate carries its zero-denominator guard with it.
type SubjectStats struct {
	Kind    EventKind
	Subject string

	Occurrences int
	Wins        int

	BonusVPSum int
	CounterSum int

	EloSum int
	EloN   int

	EloDeltaSum int
	EloDeltaN   int
	EloDeltaMin int
	EloDeltaMax int

	OpponentEloSum int
	OpponentEloN   int

	// RankCounts[i] is the number of draft picks at rank i+1.
	RankCounts [4]int
}

// WinRate is Wins/Occurrences, 0 when no occurrences.
func (s *SubjectStats) WinRate() float64 {
	if s.Occurrences == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Occurrences)
}

func (s *SubjectStats) AvgBonusVP() float64 {
	if s.Occurrences == 0 {
		return 0
	}
	return float64(s.BonusVPSum) / float64(s.Occurrences)
}

func (s *SubjectStats) AvgCounter() float64 {
	if s.Occurrences == 0 {
		return 0
	}
	return float64(s.CounterSum) / float64(s.Occurrences)
}

// AvgElo divides by the count of present values, not by Occurrences.
func (s *SubjectStats) AvgElo() float64 {
	if s.EloN == 0 {
		return 0
	}
	return float64(s.EloSum) / float64(s.EloN)
}

// AvgEloDelta divides by the count of present values, not by Occurrences.
func (s *SubjectStats) AvgEloDelta() float64 {
	if s.EloDeltaN == 0 {
		return 0
	}
	return float64(s.EloDeltaSum) / float64(s.EloDeltaN)
}

// MinEloDelta is 0 when no delta values were present.
func (s *SubjectStats) MinEloDelta() int {
	if s.EloDeltaN == 0 {
		return 0
	}
	return s.EloDeltaMin
}

// MaxEloDelta is 0 when no delta values were present.
func (s *SubjectStats) MaxEloDelta() int {
	if s.EloDeltaN == 0 {
		return 0
	}
	return s.EloDeltaMax
}

func (s *SubjectStats) AvgOpponentElo() float64 {
	if s.OpponentEloN == 0 {
		return 0
	}
	return float64(s.OpponentEloSum) / float64(s.OpponentEloN)
}

// TotalPicks is the sum of the per-rank pick counts. For draft buckets it
// equals Occurrences.
func (s *SubjectStats) TotalPicks() int {
	return s.RankCounts[0] + s.RankCounts[1] + s.RankCounts[2] + s.RankCounts[3]
}

// PriorityScore weights early picks higher: (r1*4 + r2*3 + r3*2 + r4*1) / picks.
func (s *SubjectStats) PriorityScore() float64 {
	n := s.TotalPicks()
	if n == 0 {
		return 0
	}
	w := s.RankCounts[0]*4 + s.RankCounts[1]*3 + s.RankCounts[2]*2 + s.RankCounts[3]*1
	return float64(w) / float64(n)
}

// AvgRank is the mean ordinal pick position, 0 when no picks.
func (s *SubjectStats) AvgRank() float64 {
	n := s.TotalPicks()
	if n == 0 {
		return 0
	}
	w := s.RankCounts[0]*1 + s.RankCounts[1]*2 + s.RankCounts[2]*3 + s.RankCounts[3]*4
	return float64(w) / float64(n)
}

// ---- Store rows ----

// GameSummary is a lightweight record for the games table and the
// list/summary commands.
type GameSummary struct {
	ReplayID    string
	GameDate    string
	WinnerID    string // "" when unresolved
	WinnerName  string
	PlayerCount int
	DraftOn     bool
	ColoniesOn  bool
}

// PlayerGameRow is one participant's line in a stored game.
type PlayerGameRow struct {
	ReplayID    string
	PlayerID    string
	Name        string
	Corporation string
	FinalVP     int
	Elo         *int
	EloDelta    *int
	Won         bool
}
