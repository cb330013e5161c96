package cmd

import (
	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/aggregate"
	"github.com/HStrand/bga-tm-stats/internal/extract"
	"github.com/HStrand/bga-tm-stats/internal/model"
	"github.com/HStrand/bga-tm-stats/internal/report"
)

var milestonesCmd = &cobra.Command{
	Use:   "milestones",
	Short: "Aggregate milestone-claim statistics across replays",
	Args:  cobra.NoArgs,
	RunE:  runMilestones,
}

func init() {
	addAnalysisFlags(milestonesCmd, false)
}

func runMilestones(cmd *cobra.Command, args []string) error {
	return runAnalysis(analysisSpec{
		name:    "milestones",
		kind:    model.KindMilestone,
		order:   aggregate.ByWinRate,
		extract: extract.Milestones,
		print:   report.PrintMilestoneSummary,
	})
}
