package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnloop/learnloop/internal/adaptive"
)

var paceCmd = &cobra.Command{
	Use:   "pace",
	Short: "Resolve the adaptive pacing strategy from learner signals",
	Long: "Computes the pacing strategy for the next unit of content from assessment,\n" +
		"urgency, availability, and performance-trend signals. With no flags, the\n" +
		"trend and recent average are derived from stored practice history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sig := adaptive.Signals{}
		sig.TechnicalLevel, _ = cmd.Flags().GetString("level")
		sig.UrgencyText, _ = cmd.Flags().GetString("urgency")
		sig.WeeklyHours, _ = cmd.Flags().GetFloat64("hours")
		sig.NeedsEnvironmentSetup, _ = cmd.Flags().GetBool("env-setup")
		sig.NeedsTerminalIntro, _ = cmd.Flags().GetBool("terminal-intro")
		sig.TrendText, _ = cmd.Flags().GetString("trend")

		if sig.TrendText == "" {
			if err := deriveTrend(cmd, &sig); err != nil {
				return err
			}
		}

		meta := adaptive.ResolveAt(sig, time.Now())

		fmt.Printf("Strategy:   %s\n", meta.Strategy)
		fmt.Printf("Level:      %s\n", meta.UserLevel)
		fmt.Printf("Urgency:    %s\n", meta.Urgency)
		fmt.Printf("Trend:      %s\n", meta.Trend)
		fmt.Printf("Confidence: %.2f\n", meta.Confidence)
		fmt.Printf("Computed:   %s\n", meta.ComputedAt.Format(time.RFC3339))
		if len(meta.Adjustments) > 0 {
			fmt.Println("Adjustments:")
			for _, note := range meta.Adjustments {
				fmt.Printf("  - %s\n", note)
			}
		}
		return nil
	},
}

func init() {
	paceCmd.Flags().String("level", "", "Assessed technical level: absolute_beginner, beginner, intermediate, advanced")
	paceCmd.Flags().String("urgency", "", "How soon results are needed, in the learner's words")
	paceCmd.Flags().Float64("hours", 0, "Weekly hours available for learning")
	paceCmd.Flags().Bool("env-setup", false, "Learner has no working development environment")
	paceCmd.Flags().Bool("terminal-intro", false, "Learner has never used a command line")
	paceCmd.Flags().String("trend", "", "Performance trend: improving, stable, or declining (default: derived from history)")
}

// trendWindow is how many recent scores feed the derived trend.
const trendWindow = 10

// deriveTrend fills TrendText and AverageScore from stored practice
// history: the recent half of the window is compared against the older
// half, with a five-point band counting as stable.
func deriveTrend(cmd *cobra.Command, sig *adaptive.Signals) error {
	s, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	scores, err := s.Events().RecentPerformances(context.Background(), resolveUser(cmd, cfg), trendWindow)
	if err != nil {
		return err
	}
	if len(scores) < 4 {
		return nil
	}

	avg := mean(scores)
	sig.AverageScore = &avg

	// scores are most recent first
	half := len(scores) / 2
	recent := mean(scores[:half])
	older := mean(scores[half:])
	switch {
	case recent > older+5:
		sig.TrendText = string(adaptive.TrendImproving)
	case recent < older-5:
		sig.TrendText = string(adaptive.TrendDeclining)
	default:
		sig.TrendText = string(adaptive.TrendStable)
	}
	return nil
}

func mean(scores []int) float64 {
	var sum float64
	for _, sc := range scores {
		sum += float64(sc)
	}
	return sum / float64(len(scores))
}
