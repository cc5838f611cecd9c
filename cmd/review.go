package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnloop/learnloop/internal/mastery"
	"github.com/learnloop/learnloop/internal/spacedrep"
)

var reviewCmd = &cobra.Command{
	Use:   "review SKILL SCORE",
	Short: "Record a completed review and advance its schedule",
	Long: "Records the outcome of a spaced-repetition review. The skill must already\n" +
		"have a review schedule; reviewing an unscheduled skill is an error. The\n" +
		"review also counts as practice and updates mastery.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[1])
		if err != nil || score < 0 || score > 100 {
			return fmt.Errorf("invalid score %q: want an integer 0-100", args[1])
		}

		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		userID := resolveUser(cmd, cfg)

		sk, err := s.Skills().GetByName(ctx, args[0])
		if err != nil {
			return fmt.Errorf("skill %q: %w", args[0], err)
		}

		scheduler := spacedrep.NewScheduler(s.Reviews())
		sched, err := scheduler.RecordReview(ctx, userID, sk.ID, score, time.Now())
		if err != nil {
			return err
		}

		tracker := mastery.NewTracker(s.Mastery(), s.Events())
		res, err := tracker.UpdateLevel(ctx, userID, sk.ID, score, mastery.PracticeReview)
		if err != nil {
			return err
		}

		fmt.Printf("%s: level %d -> %d (%s)\n", sk.Name, res.PreviousLevel, res.NewLevel, res.NewStatus)
		fmt.Printf("Next review: %s (interval %dd, average %.0f", sched.NextReviewAt.Format("2006-01-02"), sched.CurrentInterval, sched.AverageReviewScore)
		if sched.IsRetained {
			fmt.Print(", retained")
		}
		fmt.Println(")")
		return nil
	},
}
