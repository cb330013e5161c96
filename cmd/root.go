package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HStrand/bga-tm-stats/internal/config"
)

var (
	cfgPath    string
	dbPath     string
	replaysDir string
	verbose    bool

	cfg *config.Config
	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:               "tmstats",
	Short:             "Terraforming Mars replay statistics tool",
	Long:              "Compute award, milestone, card, draft and corporation statistics from exported Terraforming Mars replay JSON files.",
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (falls back to $TMSTATS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&replaysDir, "replays", "", "replay JSON directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(awardsCmd)
	rootCmd.AddCommand(milestonesCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(corpsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// initRuntime loads configuration and builds the process logger before any
// command runs. Flags win over config values.
func initRuntime(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if replaysDir != "" {
		cfg.ReplaysDir = replaysDir
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	log = logger.Sugar()
	return nil
}
