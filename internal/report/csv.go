package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/HStrand/bga-tm-stats/internal/model"
)

// CSV output uses comma delimiters and the default minimal quoting of
// encoding/csv across every report. Absent optional values are written as
// empty fields, never as 0.

func csvOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func csvBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func csvFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WriteDetailedCSV writes one row per event. The column set is fixed per
// analysis kind.
func WriteDetailedCSV(w io.Writer, kind model.EventKind, events []model.Event) error {
	cw := csv.NewWriter(w)

	var header []string
	var row func(ev *model.Event) []string
	switch kind {
	case model.KindAward:
		header = []string{"replay_id", "game_date", "award", "player", "corporation",
			"bonus_vp", "counter", "won_game", "elo_change"}
		row = func(ev *model.Event) []string {
			return []string{ev.ReplayID, ev.GameDate, ev.Subject, ev.PlayerName, ev.Corporation,
				strconv.Itoa(ev.BonusVP), strconv.Itoa(ev.Counter), csvBool(ev.WonGame), csvOptInt(ev.EloDelta)}
		}
	case model.KindMilestone:
		header = []string{"replay_id", "game_date", "milestone", "player", "corporation",
			"won_game", "elo_change"}
		row = func(ev *model.Event) []string {
			return []string{ev.ReplayID, ev.GameDate, ev.Subject, ev.PlayerName, ev.Corporation,
				csvBool(ev.WonGame), csvOptInt(ev.EloDelta)}
		}
	case model.KindCard:
		header = []string{"replay_id", "game_date", "card", "player", "corporation",
			"won_game", "elo", "elo_change", "opponent_elo"}
		row = func(ev *model.Event) []string {
			return []string{ev.ReplayID, ev.GameDate, ev.Subject, ev.PlayerName, ev.Corporation,
				csvBool(ev.WonGame), csvOptInt(ev.Elo), csvOptInt(ev.EloDelta), csvOptInt(ev.OpponentElo)}
		}
	case model.KindDraft:
		header = []string{"replay_id", "game_date", "card", "player",
			"pick_rank", "synthetic", "won_game"}
		row = func(ev *model.Event) []string {
			return []string{ev.ReplayID, ev.GameDate, ev.Subject, ev.PlayerName,
				strconv.Itoa(ev.PickRank), csvBool(ev.Synthetic), csvBool(ev.WonGame)}
		}
	case model.KindCorp:
		header = []string{"replay_id", "game_date", "corporation", "player",
			"won_game", "elo_change"}
		row = func(ev *model.Event) []string {
			return []string{ev.ReplayID, ev.GameDate, ev.Subject, ev.PlayerName,
				csvBool(ev.WonGame), csvOptInt(ev.EloDelta)}
		}
	default:
		return fmt.Errorf("unknown analysis kind %v", kind)
	}

	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range events {
		if err := cw.Write(row(&events[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes one row per subject with its finalized statistics,
// in the order the stats slice carries.
func WriteSummaryCSV(w io.Writer, kind model.EventKind, stats []model.SubjectStats) error {
	cw := csv.NewWriter(w)

	var header []string
	var row func(s *model.SubjectStats) []string
	switch kind {
	case model.KindAward:
		header = []string{"award", "times_won", "wins", "win_rate",
			"avg_bonus_vp", "avg_counter", "avg_elo_change"}
		row = func(s *model.SubjectStats) []string {
			return []string{s.Subject, strconv.Itoa(s.Occurrences), strconv.Itoa(s.Wins),
				csvFloat(s.WinRate()), csvFloat(s.AvgBonusVP()), csvFloat(s.AvgCounter()),
				csvFloat(s.AvgEloDelta())}
		}
	case model.KindMilestone:
		header = []string{"milestone", "claims", "wins", "win_rate", "avg_elo_change"}
		row = func(s *model.SubjectStats) []string {
			return []string{s.Subject, strconv.Itoa(s.Occurrences), strconv.Itoa(s.Wins),
				csvFloat(s.WinRate()), csvFloat(s.AvgEloDelta())}
		}
	case model.KindCard:
		header = []string{"card", "plays", "wins", "win_rate", "avg_elo",
			"avg_elo_change", "min_elo_change", "max_elo_change", "avg_opponent_elo"}
		row = func(s *model.SubjectStats) []string {
			return []string{s.Subject, strconv.Itoa(s.Occurrences), strconv.Itoa(s.Wins),
				csvFloat(s.WinRate()), csvFloat(s.AvgElo()), csvFloat(s.AvgEloDelta()),
				strconv.Itoa(s.MinEloDelta()), strconv.Itoa(s.MaxEloDelta()),
				csvFloat(s.AvgOpponentElo())}
		}
	case model.KindDraft:
		header = []string{"card", "total_picks", "total_wins",
			"rank1", "rank2", "rank3", "rank4", "priority_score", "avg_rank", "win_rate"}
		row = func(s *model.SubjectStats) []string {
			return []string{s.Subject, strconv.Itoa(s.TotalPicks()), strconv.Itoa(s.Wins),
				strconv.Itoa(s.RankCounts[0]), strconv.Itoa(s.RankCounts[1]),
				strconv.Itoa(s.RankCounts[2]), strconv.Itoa(s.RankCounts[3]),
				csvFloat(s.PriorityScore()), csvFloat(s.AvgRank()), csvFloat(s.WinRate())}
		}
	case model.KindCorp:
		header = []string{"corporation", "games", "wins", "win_rate", "avg_elo_change"}
		row = func(s *model.SubjectStats) []string {
			return []string{s.Subject, strconv.Itoa(s.Occurrences), strconv.Itoa(s.Wins),
				csvFloat(s.WinRate()), csvFloat(s.AvgEloDelta())}
		}
	default:
		return fmt.Errorf("unknown analysis kind %v", kind)
	}

	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range stats {
		if err := cw.Write(row(&stats[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDetailedFile and WriteSummaryFile are the file-creating wrappers the
// commands use.

func WriteDetailedFile(path string, kind model.EventKind, events []model.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteDetailedCSV(f, kind, events); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func WriteSummaryFile(path string, kind model.EventKind, stats []model.SubjectStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSummaryCSV(f, kind, stats); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
