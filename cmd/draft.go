package cmd

import (
	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/aggregate"
	"github.com/HStrand/bga-tm-stats/internal/extract"
	"github.com/HStrand/bga-tm-stats/internal/model"
	"github.com/HStrand/bga-tm-stats/internal/report"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Aggregate draft-pick priority statistics across replays",
	Long: `Infer pick ranks from the draft moves of draft-mode games and compute
per-card pick priority. Rank 1 is the first pick of a 4-card round; the card
left over after a third pick is counted as a forced rank-4 pick.`,
	Args: cobra.NoArgs,
	RunE: runDraft,
}

func init() {
	addAnalysisFlags(draftCmd, false)
}

func runDraft(cmd *cobra.Command, args []string) error {
	return runAnalysis(analysisSpec{
		name:  "draft",
		kind:  model.KindDraft,
		order: aggregate.ByPriority,
		extract: func(rec *model.GameRecord, winnerID string) []model.Event {
			return extract.DraftPicks(rec, winnerID, log)
		},
		print: report.PrintDraftSummary,
	})
}
