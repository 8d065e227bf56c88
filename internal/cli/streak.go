package cli

import (
	"fmt"
	"time"

	"github.com/example/vocabagent/internal/config"
	"github.com/example/vocabagent/internal/database"
	"github.com/example/vocabagent/internal/streak"
	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current and longest completion streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		if err := database.Connect(cfg.DataDir); err != nil {
			return err
		}
		defer database.Close()

		dates, err := database.NewAttemptRepository().CompletedDates()
		if err != nil {
			return err
		}

		s := streak.AsOfStrings(dates, time.Now())
		fmt.Printf("Current streak: %d days\n", s.Current)
		fmt.Printf("Longest streak: %d days\n", s.Longest)
		fmt.Printf("Days completed: %d\n", len(dates))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(streakCmd)
}
