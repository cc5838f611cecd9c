package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnloop/learnloop/internal/remediation"
	"github.com/learnloop/learnloop/internal/spacedrep"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show recommendations for the next planning cycle",
	Long: "Prints priority-tagged recommendations (due reviews, struggling skills)\n" +
		"and, when enough reviews have piled up, the review-unit scaffold that\n" +
		"should be inserted into the learning plan.",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetInt("day")
		allowlist := objectiveSkills(cmd)

		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		userID := resolveUser(cmd, cfg)
		now := time.Now()

		scheduler := spacedrep.NewScheduler(s.Reviews())
		detector := remediation.NewDetector(s.Mastery(), scheduler)

		recs, err := detector.ReviewRecommendations(ctx, userID, allowlist, now)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("Nothing to recommend; keep going.")
		}
		for _, rec := range recs {
			fmt.Printf("[%s] %s: %s\n", rec.Priority, rec.Type, rec.Message)
			for _, name := range rec.SkillNames {
				fmt.Printf("  - %s\n", name)
			}
		}

		decision, err := scheduler.ShouldInsertReviewUnit(ctx, userID, allowlist, day, now)
		if err != nil {
			return err
		}
		if !decision.Insert {
			return nil
		}

		unit := scheduler.BuildReviewUnit(decision.Skills, decision.SuggestedDay, now)
		fmt.Printf("\nInsert review unit on day %d (%s):\n", unit.SuggestedDay, decision.Reason)
		fmt.Printf("  %s (~%d min)\n", unit.Title, unit.EstimatedMinutes)
		for _, target := range unit.TargetSkills {
			fmt.Printf("  - %s: target level %d\n", target.Name, target.TargetLevel)
		}
		return nil
	},
}

func init() {
	planCmd.Flags().Int("day", 0, "Current plan day number")
}
