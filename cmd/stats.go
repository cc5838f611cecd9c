package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mastery across all practiced skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		userID := resolveUser(cmd, cfg)

		records, err := s.Mastery().ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No practice recorded yet.")
			return nil
		}

		names := make(map[string]string, len(records))
		skills, err := s.Skills().List(ctx)
		if err != nil {
			return err
		}
		for _, sk := range skills {
			names[sk.ID] = sk.Name
		}

		sort.Slice(records, func(i, j int) bool { return records[i].Level > records[j].Level })

		fmt.Printf("%-36s  %-6s  %-12s  %-6s  %s\n", "Skill", "Level", "Status", "Rate", "Practices")
		fmt.Println(strings.Repeat("-", 80))
		for _, rec := range records {
			name := names[rec.SkillID]
			if name == "" {
				name = rec.SkillID
			}
			fmt.Printf("%-36s  %-6d  %-12s  %-6.2f  %d\n",
				truncate(name, 36), rec.Level, rec.Status, rec.SuccessRate, rec.PracticeCount)
		}
		return nil
	},
}
