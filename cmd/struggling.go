package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learnloop/learnloop/internal/remediation"
	"github.com/learnloop/learnloop/internal/spacedrep"
)

var strugglingCmd = &cobra.Command{
	Use:   "struggling",
	Short: "List skills that need remediation",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		userID := resolveUser(cmd, cfg)
		detector := remediation.NewDetector(s.Mastery(), spacedrep.NewScheduler(s.Reviews()))

		skills, err := detector.DetectStruggling(context.Background(), userID)
		if err != nil {
			return err
		}
		if len(skills) == 0 {
			fmt.Println("No struggling skills.")
			return nil
		}

		fmt.Printf("%-30s  %-6s  %-6s  %-8s  %s\n", "Skill", "Level", "Rate", "Failures", "Action")
		fmt.Println(strings.Repeat("-", 96))
		for _, ss := range skills {
			fmt.Printf("%-30s  %-6d  %-6.2f  %-8d  %s\n",
				truncate(ss.SkillName, 30), ss.Level, ss.SuccessRate,
				ss.ConsecutiveFailures, ss.RecommendedAction)
		}
		return nil
	},
}
