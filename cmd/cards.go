package cmd

import (
	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/aggregate"
	"github.com/HStrand/bga-tm-stats/internal/extract"
	"github.com/HStrand/bga-tm-stats/internal/model"
	"github.com/HStrand/bga-tm-stats/internal/report"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Aggregate card-play statistics over two-player replays",
	Long: `Compute per-card win rates and rating deltas over two-player games.
Games with the colonies expansion are skipped, and prelude cards are excluded
(override the prelude list via configuration). Use --min-elo and
--min-opponent-elo for the filtered-summary variants.`,
	Args: cobra.NoArgs,
	RunE: runCards,
}

func init() {
	addAnalysisFlags(cardsCmd, true)
}

func runCards(cmd *cobra.Command, args []string) error {
	preludes := cfg.Preludes
	if len(preludes) == 0 {
		preludes = extract.DefaultPreludes
	}
	exclude := extract.ExclusionSet(preludes)

	return runAnalysis(analysisSpec{
		name:  "cards",
		kind:  model.KindCard,
		order: aggregate.ByAvgEloDelta,
		extract: func(rec *model.GameRecord, winnerID string) []model.Event {
			return extract.Cards(rec, winnerID, exclude)
		},
		print: report.PrintCardSummary,
	})
}
