package cmd

import (
	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/aggregate"
	"github.com/HStrand/bga-tm-stats/internal/extract"
	"github.com/HStrand/bga-tm-stats/internal/model"
	"github.com/HStrand/bga-tm-stats/internal/report"
)

var corpsCmd = &cobra.Command{
	Use:   "corps",
	Short: "Aggregate corporation win-rate statistics across replays",
	Args:  cobra.NoArgs,
	RunE:  runCorps,
}

func init() {
	addAnalysisFlags(corpsCmd, false)
}

func runCorps(cmd *cobra.Command, args []string) error {
	return runAnalysis(analysisSpec{
		name:    "corps",
		kind:    model.KindCorp,
		order:   aggregate.ByWinRate,
		extract: extract.Corporations,
		print:   report.PrintCorpSummary,
	})
}
