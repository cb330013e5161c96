package cmd

import (
	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/aggregate"
	"github.com/HStrand/bga-tm-stats/internal/extract"
	"github.com/HStrand/bga-tm-stats/internal/model"
	"github.com/HStrand/bga-tm-stats/internal/report"
)

var awardsCmd = &cobra.Command{
	Use:   "awards",
	Short: "Aggregate award-funding statistics across replays",
	Args:  cobra.NoArgs,
	RunE:  runAwards,
}

func init() {
	addAnalysisFlags(awardsCmd, false)
}

func runAwards(cmd *cobra.Command, args []string) error {
	return runAnalysis(analysisSpec{
		name:    "awards",
		kind:    model.KindAward,
		order:   aggregate.ByWinRate,
		extract: extract.Awards,
		print:   report.PrintAwardSummary,
	})
}
