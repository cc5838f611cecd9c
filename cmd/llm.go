package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect generative request events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generative API calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.Events().RecentLLMEvents(context.Background(), purpose, limit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No events.")
			return nil
		}

		fmt.Printf("%-20s  %-10s  %-18s  %-8s  %-8s  %s\n",
			"When", "Provider", "Purpose", "Tokens", "Latency", "Result")
		fmt.Println(strings.Repeat("-", 90))
		for _, ev := range events {
			result := "ok"
			if !ev.Success {
				result = "error: " + truncate(ev.ErrorMessage, 32)
			}
			fmt.Printf("%-20s  %-10s  %-18s  %-8d  %-8s  %s\n",
				ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.Provider, ev.Purpose,
				ev.InputTokens+ev.OutputTokens, fmt.Sprintf("%dms", ev.LatencyMs), result)
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	llmListCmd.Flags().String("purpose", "", "Only show events with this purpose")
	llmCmd.AddCommand(llmListCmd)
}
