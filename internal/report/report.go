// Package report renders finalized statistics as console tables and CSV
// files. Table layouts are fixed per analysis; callers pick the row order
// before rendering.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/HStrand/bga-tm-stats/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// optInt renders a possibly-absent value, "—" when nil.
func optInt(v *int) string {
	if v == nil {
		return "—"
	}
	return strconv.Itoa(*v)
}

// PrintAwardSummary prints the per-award funding statistics.
func PrintAwardSummary(w io.Writer, stats []model.SubjectStats) {
	table := newTable(w)
	table.Header("AWARD", "WON", "WINS", "WIN%", "AVG_VP", "AVG_COUNTER", "AVG_ELO_CHG")
	for i := range stats {
		s := &stats[i]
		table.Append(
			s.Subject,
			strconv.Itoa(s.Occurrences),
			strconv.Itoa(s.Wins),
			fmt.Sprintf("%.1f%%", s.WinRate()*100),
			fmt.Sprintf("%.2f", s.AvgBonusVP()),
			fmt.Sprintf("%.1f", s.AvgCounter()),
			fmt.Sprintf("%+.2f", s.AvgEloDelta()),
		)
	}
	table.Render()
}

// PrintMilestoneSummary prints the per-milestone claim statistics.
func PrintMilestoneSummary(w io.Writer, stats []model.SubjectStats) {
	table := newTable(w)
	table.Header("MILESTONE", "CLAIMS", "WINS", "WIN%", "AVG_ELO_CHG")
	for i := range stats {
		s := &stats[i]
		table.Append(
			s.Subject,
			strconv.Itoa(s.Occurrences),
			strconv.Itoa(s.Wins),
			fmt.Sprintf("%.1f%%", s.WinRate()*100),
			fmt.Sprintf("%+.2f", s.AvgEloDelta()),
		)
	}
	table.Render()
}

// PrintCardSummary prints the per-card play statistics.
func PrintCardSummary(w io.Writer, stats []model.SubjectStats) {
	table := newTable(w)
	table.Header("CARD", "PLAYS", "WINS", "WIN%", "AVG_ELO", "AVG_ELO_CHG", "MIN_CHG", "MAX_CHG", "AVG_OPP_ELO")
	for i := range stats {
		s := &stats[i]
		table.Append(
			s.Subject,
			strconv.Itoa(s.Occurrences),
			strconv.Itoa(s.Wins),
			fmt.Sprintf("%.1f%%", s.WinRate()*100),
			fmt.Sprintf("%.0f", s.AvgElo()),
			fmt.Sprintf("%+.2f", s.AvgEloDelta()),
			strconv.Itoa(s.MinEloDelta()),
			strconv.Itoa(s.MaxEloDelta()),
			fmt.Sprintf("%.0f", s.AvgOpponentElo()),
		)
	}
	table.Render()
}

// PrintDraftSummary prints the per-card draft-pick distribution.
func PrintDraftSummary(w io.Writer, stats []model.SubjectStats) {
	table := newTable(w)
	table.Header("CARD", "PICKS", "WINS", "R1", "R2", "R3", "R4", "PRIORITY", "AVG_RANK", "WIN%")
	for i := range stats {
		s := &stats[i]
		table.Append(
			s.Subject,
			strconv.Itoa(s.TotalPicks()),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.RankCounts[0]),
			strconv.Itoa(s.RankCounts[1]),
			strconv.Itoa(s.RankCounts[2]),
			strconv.Itoa(s.RankCounts[3]),
			fmt.Sprintf("%.2f", s.PriorityScore()),
			fmt.Sprintf("%.2f", s.AvgRank()),
			fmt.Sprintf("%.1f%%", s.WinRate()*100),
		)
	}
	table.Render()
}

// PrintCorpSummary prints the per-corporation statistics.
func PrintCorpSummary(w io.Writer, stats []model.SubjectStats) {
	table := newTable(w)
	table.Header("CORPORATION", "GAMES", "WINS", "WIN%", "AVG_ELO_CHG")
	for i := range stats {
		s := &stats[i]
		table.Append(
			s.Subject,
			strconv.Itoa(s.Occurrences),
			strconv.Itoa(s.Wins),
			fmt.Sprintf("%.1f%%", s.WinRate()*100),
			fmt.Sprintf("%+.2f", s.AvgEloDelta()),
		)
	}
	table.Render()
}

// PrintGameList prints the stored-games table for the list command.
func PrintGameList(w io.Writer, games []model.GameSummary) {
	table := newTable(w)
	table.Header("REPLAY_ID", "DATE", "PLAYERS", "WINNER", "DRAFT", "COLONIES")
	for _, g := range games {
		winner := g.WinnerName
		if winner == "" {
			winner = "—"
		}
		table.Append(
			g.ReplayID,
			g.GameDate,
			strconv.Itoa(g.PlayerCount),
			winner,
			onOff(g.DraftOn),
			onOff(g.ColoniesOn),
		)
	}
	table.Render()
}

// PrintPlayerGames prints one participant's stored games for the player
// command.
func PrintPlayerGames(w io.Writer, rows []model.PlayerGameRow) {
	table := newTable(w)
	table.Header("REPLAY_ID", "CORPORATION", "VP", "ELO", "ELO_CHG", "RESULT")
	for _, r := range rows {
		result := "loss"
		if r.Won {
			result = "win"
		}
		table.Append(
			r.ReplayID,
			r.Corporation,
			strconv.Itoa(r.FinalVP),
			optInt(r.Elo),
			optInt(r.EloDelta),
			result,
		)
	}
	table.Render()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
