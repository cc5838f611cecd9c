package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learnloop/learnloop/internal/extract"
	"github.com/learnloop/learnloop/internal/llm"
	"github.com/learnloop/learnloop/internal/store"
)

var extractCmd = &cobra.Command{
	Use:   "extract TITLE",
	Short: "Extract canonical skills from a learning unit",
	Long: "Asks the configured generative provider which skills a learning unit\n" +
		"practices and maps them onto the skill catalog, creating any that are\n" +
		"missing. Without a usable provider the deterministic keyword fallback\n" +
		"yields a single skill named after the unit.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		objective, _ := cmd.Flags().GetString("objective-context")
		language, _ := cmd.Flags().GetString("language")
		day, _ := cmd.Flags().GetInt("day")
		tasks, _ := cmd.Flags().GetStringArray("task")
		previous, _ := cmd.Flags().GetStringSlice("previous")

		unit := extract.UnitInput{
			Title:            args[0],
			Description:      description,
			ObjectiveContext: objective,
			DayNumber:        day,
			PreviousSkills:   previous,
			Language:         language,
		}
		for _, task := range tasks {
			title, desc, _ := strings.Cut(task, ":")
			unit.Tasks = append(unit.Tasks, extract.TaskInput{
				Title:       strings.TrimSpace(title),
				Description: strings.TrimSpace(desc),
			})
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()

		provider, err := buildProvider(ctx, cmd, s.Events())
		if err != nil {
			return err
		}

		mapper := extract.NewMapper(provider, s.Skills())
		candidates := mapper.ExtractSkills(ctx, unit)
		skills, err := mapper.MapToCanonical(ctx, candidates)
		if err != nil {
			return err
		}

		for i, sk := range skills {
			c := candidates[i]
			fmt.Printf("%s (%s, %s): target %d, %s\n",
				sk.Name, sk.Category, sk.Difficulty, c.TargetLevel, c.PracticeType)
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().String("description", "", "Unit description")
	extractCmd.Flags().String("objective-context", "", "The learning objective this unit belongs to")
	extractCmd.Flags().String("language", "", "Target programming language")
	extractCmd.Flags().Int("day", 0, "Plan day number")
	extractCmd.Flags().StringArray("task", nil, "Unit task as TITLE[:DESCRIPTION]; repeatable")
	extractCmd.Flags().StringSlice("previous", nil, "Previously covered skill names")
}

// buildProvider creates the single-attempt provider used by extraction,
// preferring explicit config and falling back to discovered API keys.
// With no key at all the mock provider is used, which fails immediately
// and lands extraction on its deterministic fallback.
func buildProvider(ctx context.Context, cmd *cobra.Command, events store.EventRepo) (llm.Provider, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	llmCfg := cfg.ProviderConfig()
	if llmCfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			llmCfg = discovered
		} else {
			llmCfg.Provider = "mock"
		}
	}

	return llm.NewSingleAttempt(ctx, llmCfg, events)
}
