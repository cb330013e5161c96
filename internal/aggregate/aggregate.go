// Package aggregate folds extracted events into per-subject statistics.
// One Aggregator instance is owned by the fold loop; it is not safe for
// concurrent mutation. Batch parallelism is supported only by sharding the
// record set across independent Aggregators and calling Merge, which combines
// counts and sums. Rates are computed once, in Finalize, and are never
// merged directly.
package aggregate

import (
	"sort"

	"github.com/HStrand/bga-tm-stats/internal/model"
)

// bucket is the per-subject accumulator: running aggregates plus the
// optionally retained raw events.
type bucket struct {
	stats  model.SubjectStats
	events []model.Event
}

// Aggregator accumulates events keyed by subject. Keys remember their first
// insertion order so presentation sorts can break ties stably.
type Aggregator struct {
	buckets     map[string]*bucket
	order       []string
	keepSamples bool
}

// New returns an empty Aggregator. keepSamples controls whether raw events
// are retained per bucket (needed for detailed reports); disable it for hot
// folds over large corpora.
func New(keepSamples bool) *Aggregator {
	return &Aggregator{
		buckets:     make(map[string]*bucket),
		keepSamples: keepSamples,
	}
}

// Ingest folds one event into its subject bucket.
func (a *Aggregator) Ingest(ev model.Event) {
	b, ok := a.buckets[ev.Subject]
	if !ok {
		b = &bucket{stats: model.SubjectStats{Kind: ev.Kind, Subject: ev.Subject}}
		a.buckets[ev.Subject] = b
		a.order = append(a.order, ev.Subject)
	}

	s := &b.stats
	s.Occurrences++
	if ev.WonGame {
		s.Wins++
	}
	s.BonusVPSum += ev.BonusVP
	s.CounterSum += ev.Counter

	if ev.Elo != nil {
		s.EloSum += *ev.Elo
		s.EloN++
	}
	if ev.EloDelta != nil {
		d := *ev.EloDelta
		if s.EloDeltaN == 0 || d < s.EloDeltaMin {
			s.EloDeltaMin = d
		}
		if s.EloDeltaN == 0 || d > s.EloDeltaMax {
			s.EloDeltaMax = d
		}
		s.EloDeltaSum += d
		s.EloDeltaN++
	}
	if ev.OpponentElo != nil {
		s.OpponentEloSum += *ev.OpponentElo
		s.OpponentEloN++
	}
	if ev.PickRank >= 1 && ev.PickRank <= 4 {
		s.RankCounts[ev.PickRank-1]++
	}

	if a.keepSamples {
		b.events = append(b.events, ev)
	}
}

// Merge folds the counts, sums and samples of other into a. The receiver's
// insertion order is preserved; keys only seen by other are appended in
// other's order.
func (a *Aggregator) Merge(other *Aggregator) {
	for _, key := range other.order {
		ob := other.buckets[key]
		b, ok := a.buckets[key]
		if !ok {
			b = &bucket{stats: model.SubjectStats{Kind: ob.stats.Kind, Subject: key}}
			a.buckets[key] = b
			a.order = append(a.order, key)
		}

		s, os := &b.stats, &ob.stats
		s.Occurrences += os.Occurrences
		s.Wins += os.Wins
		s.BonusVPSum += os.BonusVPSum
		s.CounterSum += os.CounterSum
		s.EloSum += os.EloSum
		s.EloN += os.EloN
		if os.EloDeltaN > 0 {
			if s.EloDeltaN == 0 || os.EloDeltaMin < s.EloDeltaMin {
				s.EloDeltaMin = os.EloDeltaMin
			}
			if s.EloDeltaN == 0 || os.EloDeltaMax > s.EloDeltaMax {
				s.EloDeltaMax = os.EloDeltaMax
			}
			s.EloDeltaSum += os.EloDeltaSum
			s.EloDeltaN += os.EloDeltaN
		}
		s.OpponentEloSum += os.OpponentEloSum
		s.OpponentEloN += os.OpponentEloN
		for i := range s.RankCounts {
			s.RankCounts[i] += os.RankCounts[i]
		}

		if a.keepSamples {
			b.events = append(b.events, ob.events...)
		}
	}
}

// Len returns the number of distinct subject keys seen.
func (a *Aggregator) Len() int { return len(a.buckets) }

// Total returns the total number of ingested events.
func (a *Aggregator) Total() int {
	n := 0
	for _, b := range a.buckets {
		n += b.stats.Occurrences
	}
	return n
}

// Events returns the retained raw events across all buckets, in subject
// insertion order. Empty when sample retention is disabled.
func (a *Aggregator) Events() []model.Event {
	var out []model.Event
	for _, key := range a.order {
		out = append(out, a.buckets[key].events...)
	}
	return out
}

// SortOrder orders finalized statistics for presentation.
type SortOrder func(a, b *model.SubjectStats) bool

var (
	// ByWinRate: descending win rate (win-rate reports).
	ByWinRate SortOrder = func(a, b *model.SubjectStats) bool { return a.WinRate() > b.WinRate() }
	// ByAvgEloDelta: descending average rating change (card/rating reports).
	ByAvgEloDelta SortOrder = func(a, b *model.SubjectStats) bool { return a.AvgEloDelta() > b.AvgEloDelta() }
	// ByAvgOpponentElo: descending average opponent rating.
	ByAvgOpponentElo SortOrder = func(a, b *model.SubjectStats) bool {
		return a.AvgOpponentElo() > b.AvgOpponentElo()
	}
	// ByPriority: descending priority score (draft report).
	ByPriority SortOrder = func(a, b *model.SubjectStats) bool { return a.PriorityScore() > b.PriorityScore() }
	// ByAvgRank: ascending average pick position (draft-priority report).
	ByAvgRank SortOrder = func(a, b *model.SubjectStats) bool { return a.AvgRank() < b.AvgRank() }
	// ByOccurrences: descending popularity.
	ByOccurrences SortOrder = func(a, b *model.SubjectStats) bool { return a.Occurrences > b.Occurrences }
)

// Finalize snapshots every bucket into a read-only statistics slice, sorted
// by the given order. The sort is stable over subject insertion order, so
// ties keep the order in which subjects first appeared.
func (a *Aggregator) Finalize(order SortOrder) []model.SubjectStats {
	out := make([]model.SubjectStats, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.buckets[key].stats)
	}
	if order != nil {
		sort.SliceStable(out, func(i, j int) bool { return order(&out[i], &out[j]) })
	}
	return out
}
