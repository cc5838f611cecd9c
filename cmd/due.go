package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnloop/learnloop/internal/spacedrep"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List skills due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		allowlist := objectiveSkills(cmd)

		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		userID := resolveUser(cmd, cfg)
		scheduler := spacedrep.NewScheduler(s.Reviews())

		due, err := scheduler.DueForReview(context.Background(), userID, allowlist, time.Now())
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("No reviews due.")
			return nil
		}

		fmt.Printf("%-36s  %-6s  %-12s  %s\n", "Skill", "Level", "Due", "Status")
		fmt.Println(strings.Repeat("-", 70))
		for _, d := range due {
			status := "due"
			if d.IsOverdue {
				status = "overdue"
			}
			fmt.Printf("%-36s  %-6d  %-12s  %s\n",
				truncate(d.SkillName, 36), d.MasteryLevel,
				d.NextReviewAt.Format("2006-01-02"), status)
		}
		return nil
	},
}

func init() {
	dueCmd.Flags().String("objective", "", "Comma-separated skill names scoping the query to one objective")
	planCmd.Flags().String("objective", "", "Comma-separated skill names scoping the query to one objective")
}

// objectiveSkills parses the --objective allowlist flag.
func objectiveSkills(cmd *cobra.Command) []string {
	raw, _ := cmd.Flags().GetString("objective")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
