package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnloop/learnloop/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update [TAG]",
	Short: "Update learnloop to the latest release",
	Long: "Downloads the newest GitHub release (or the named TAG), verifies its\n" +
		"checksum, and replaces the running binary in place.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))
		updater := selfupdate.NewUpdater(checker, cmd.OutOrStdout())

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		var err error
		if len(args) == 1 {
			err = updater.ToVersion(ctx, args[0])
		} else {
			_, err = updater.ToLatest(ctx, version)
		}

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Println("Cannot update a non-release build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Println("Already running the latest version.")
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo learnloop update", err)
		default:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
