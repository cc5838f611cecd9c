package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnloop/learnloop/internal/mastery"
	"github.com/learnloop/learnloop/internal/spacedrep"
	"github.com/learnloop/learnloop/internal/store"
)

var practiceCmd = &cobra.Command{
	Use:   "practice SKILL=SCORE [SKILL=SCORE...]",
	Short: "Record scored practice and update mastery levels",
	Long: "Records one completed practice unit. Each argument names a skill and its\n" +
		"0-100 score, e.g. 'learnloop practice \"SQL Joins=85\" \"Indexes=60\"'.\n" +
		"Skills are created on first encounter; a failure on one skill does not\n" +
		"abort the others.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		practiceType, _ := cmd.Flags().GetString("type")

		scores, names, err := parseScores(args)
		if err != nil {
			return err
		}

		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		userID := resolveUser(cmd, cfg)
		now := time.Now()

		// Resolve names to skill ids, creating unknown skills.
		pt := mastery.ParsePracticeType(practiceType)
		batch := make([]mastery.SkillScore, 0, len(scores))
		nameByID := make(map[string]string, len(scores))
		for i, name := range names {
			sk, err := s.Skills().GetOrCreate(ctx, skillNamed(name))
			if err != nil {
				return fmt.Errorf("resolve skill %q: %w", name, err)
			}
			nameByID[sk.ID] = sk.Name
			batch = append(batch, mastery.SkillScore{
				SkillID:      sk.ID,
				Performance:  scores[i],
				PracticeType: pt,
			})
		}

		tracker := mastery.NewTracker(s.Mastery(), s.Events())
		result, err := tracker.UpdateBatch(ctx, userID, batch)
		if err != nil {
			return err
		}

		scheduler := spacedrep.NewScheduler(s.Reviews())
		for _, res := range result.Results {
			ensureScheduled(ctx, scheduler, s.Reviews(), res, now)

			fmt.Printf("%s: %d -> %d (%s", nameByID[res.SkillID], res.PreviousLevel, res.NewLevel, res.NewStatus)
			if res.NewlyMastered {
				fmt.Print(", newly mastered")
			}
			if res.NeedsReview {
				fmt.Print(", needs review")
			}
			fmt.Printf("), next review in %dd\n", res.ReviewInterval)
		}
		for _, skillErr := range result.Errors {
			fmt.Printf("error: %v\n", skillErr)
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d of %d updates failed", len(result.Errors), len(batch))
		}
		return nil
	},
}

func init() {
	practiceCmd.Flags().String("type", "practice", "Practice type: introduction, practice, review, or mastery")
}

// parseScores splits NAME=SCORE arguments.
func parseScores(args []string) (scores []int, names []string, err error) {
	for _, arg := range args {
		name, scoreText, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("invalid argument %q: want SKILL=SCORE", arg)
		}
		score, err := strconv.Atoi(strings.TrimSpace(scoreText))
		if err != nil || score < 0 || score > 100 {
			return nil, nil, fmt.Errorf("invalid score in %q: want an integer 0-100", arg)
		}
		names = append(names, name)
		scores = append(scores, score)
	}
	return scores, names, nil
}

// ensureScheduled creates the initial review schedule the first time a
// skill is practiced; existing schedules are left to the review flow.
func ensureScheduled(ctx context.Context, scheduler *spacedrep.Scheduler, reviews store.ReviewRepo, res mastery.UpdateResult, now time.Time) {
	if _, err := reviews.Get(ctx, res.UserID, res.SkillID); err == nil {
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		return
	}
	if _, err := scheduler.ScheduleInitial(ctx, res.UserID, res.SkillID, res.NewLevel, now); err != nil {
		fmt.Printf("warning: could not schedule review for %s: %v\n", res.SkillID, err)
	}
}
