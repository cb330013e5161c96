package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/HStrand/bga-tm-stats/internal/model"
	"github.com/HStrand/bga-tm-stats/internal/storage"
)

const analyzeSystemPrompt = `You are a Terraforming Mars strategy analyst. You are given aggregated
statistics computed from a corpus of online replays and a question from a
player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Small sample sizes (few occurrences) make a win rate unreliable; point
  that out instead of drawing conclusions from it.
- Be concise and actionable.

Metrics glossary:
- win_rate: share of the subject's occurrences where its owner won the game.
- avg_elo_change: mean rating change of players who produced the event,
  averaged over the events that carried a rating change.
- avg_opponent_elo: mean rating of the opposing player (two-player card
  statistics only).
- priority_score: draft-pick weight, 4 for a first pick down to 1 for the
  forced last pick, averaged per pick. Higher = picked earlier.
- avg_rank: mean ordinal pick position, 1 (first) to 4 (last).`

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeTop    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <analysis> <question>",
	Short: "AI-powered grounded analysis of stored statistics (requires ANTHROPIC_API_KEY)",
	Long: `Ask a question about the stored statistics of one analysis. The analysis
argument is one of: awards, milestones, cards, draft, corps. Run the matching
analysis command first so the database holds a snapshot.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Anthropic model to use (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 50, "limit the context to the N most frequent subjects")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	analysis, question := args[0], args[1]

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	stats, err := db.GetSubjectStats(analysis)
	if err != nil {
		return fmt.Errorf("query statistics: %w", err)
	}
	if len(stats) == 0 {
		return fmt.Errorf("no stored statistics for %q: run 'tmstats %s' first", analysis, analysis)
	}
	if analyzeTop > 0 && len(stats) > analyzeTop {
		stats = stats[:analyzeTop]
	}

	contextJSON, err := buildStatsContext(analysis, stats)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	modelID := analyzeModel
	if modelID == "" {
		modelID = cfg.AnthropicModel
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, modelID, contextJSON, question)
}

// buildStatsContext serialises one analysis snapshot into compact JSON.
func buildStatsContext(analysis string, stats []model.SubjectStats) (string, error) {
	type entry struct {
		Subject       string  `json:"subject"`
		Occurrences   int     `json:"occurrences"`
		Wins          int     `json:"wins"`
		WinRate       float64 `json:"win_rate"`
		AvgEloChange  float64 `json:"avg_elo_change,omitempty"`
		AvgOppElo     float64 `json:"avg_opponent_elo,omitempty"`
		AvgBonusVP    float64 `json:"avg_bonus_vp,omitempty"`
		PriorityScore float64 `json:"priority_score,omitempty"`
		AvgRank       float64 `json:"avg_rank,omitempty"`
	}

	entries := make([]entry, 0, len(stats))
	for i := range stats {
		s := &stats[i]
		entries = append(entries, entry{
			Subject:       s.Subject,
			Occurrences:   s.Occurrences,
			Wins:          s.Wins,
			WinRate:       round2(s.WinRate()),
			AvgEloChange:  round2(s.AvgEloDelta()),
			AvgOppElo:     round2(s.AvgOpponentElo()),
			AvgBonusVP:    round2(s.AvgBonusVP()),
			PriorityScore: round2(s.PriorityScore()),
			AvgRank:       round2(s.AvgRank()),
		})
	}

	doc := map[string]any{
		"analysis": analysis,
		"subjects": entries,
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

// round2 rounds a float64 to 2 decimal places.
func round2(v float64) float64 {
	if v < 0 {
		return -float64(int(-v*100+0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}

// callAnthropic streams a response from the Anthropic API and prints it to
// stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		if strings.Contains(err.Error(), "401") || strings.Contains(err.Error(), "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
