package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learnloop/learnloop/internal/skill"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Browse the skill catalog",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		skills, err := s.Skills().List(context.Background())
		if err != nil {
			return fmt.Errorf("list skills: %w", err)
		}

		fmt.Printf("%-36s  %-24s  %-12s  %s\n", "Name", "Category", "Difficulty", "Prerequisites")
		fmt.Println(strings.Repeat("-", 100))
		for _, sk := range skills {
			if category != "" && !strings.EqualFold(sk.Category, category) {
				continue
			}
			fmt.Printf("%-36s  %-24s  %-12s  %s\n",
				truncate(sk.Name, 36), sk.Category, sk.Difficulty,
				strings.Join(sk.Prerequisites, ", "))
		}
		return nil
	},
}

var skillsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show one skill by name (case-insensitive)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sk, err := s.Skills().GetByName(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("skill %q: %w", args[0], err)
		}

		fmt.Printf("Name:          %s\n", sk.Name)
		fmt.Printf("Category:      %s\n", sk.Category)
		fmt.Printf("Difficulty:    %s\n", sk.Difficulty)
		fmt.Printf("Description:   %s\n", sk.Description)
		if len(sk.Prerequisites) > 0 {
			fmt.Printf("Prerequisites: %s\n", strings.Join(sk.Prerequisites, ", "))
		}
		fmt.Printf("Created:       %s\n", sk.CreatedAt.Format("2006-01-02"))
		return nil
	},
}

func init() {
	skillsListCmd.Flags().String("category", "", "Only show skills in this category")
	skillsCmd.AddCommand(skillsListCmd)
	skillsCmd.AddCommand(skillsShowCmd)
}

// skillNamed builds the skill created when a name is first encountered
// outside extraction: category inferred from the name itself.
func skillNamed(name string) skill.Skill {
	return skill.Skill{
		Name:        name,
		Description: fmt.Sprintf("Auto-generated skill for %s", name),
		Category:    skill.CategoryFor(name),
		Difficulty:  skill.DifficultyBeginner,
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
