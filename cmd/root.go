package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learnloop/learnloop/internal/config"
	"github.com/learnloop/learnloop/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "learnloop",
	Short: "Adaptive learning core: mastery tracking and spaced repetition",
	Long: "Learnloop tracks per-skill mastery, schedules spaced-repetition reviews,\n" +
		"flags struggling skills, and resolves an adaptive pacing strategy for the\n" +
		"next unit of learning content.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEARNLOOP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $HOME/.config/learnloop/config.yaml)")
	rootCmd.PersistentFlags().String("user", "", "Learner id (overrides the configured default)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(strugglingCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(paceCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config (or the default
// search path) with environment overrides applied.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using the --db flag (highest
// priority), then the config/env value, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// resolveUser returns the learner id from --user or the configured
// default.
func resolveUser(cmd *cobra.Command, cfg *config.Config) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	return cfg.User
}

// openStore loads config and opens the database; the caller owns both.
func openStore(cmd *cobra.Command) (*store.Store, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return s, cfg, nil
}
