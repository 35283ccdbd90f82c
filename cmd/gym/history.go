// ABOUTME: CLI command for browsing workout history.
// ABOUTME: Lists dates with workouts or the workouts of one date.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyDate string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse workout history",
	Long: `Browse workout history.

Without flags, lists every date that has at least one workout. With
--date, shows the workouts logged on that date.

Examples:
  gym history                       # All dates with workouts
  gym history --date 2026-08-31     # Sessions on one day`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyDate != "" {
			workouts, err := repo.WorkoutsByDate(historyDate)
			if err != nil {
				return fmt.Errorf("failed to list workouts: %w", err)
			}
			if len(workouts) == 0 {
				fmt.Printf("No workouts on %s.\n", historyDate)
				return nil
			}
			for _, w := range workouts {
				printWorkout(w)
				fmt.Println()
			}
			return nil
		}

		dates, err := repo.WorkoutDates()
		if err != nil {
			return fmt.Errorf("failed to list dates: %w", err)
		}
		if len(dates) == 0 {
			fmt.Println("No workouts logged yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, d := range dates {
			workouts, err := repo.WorkoutsByDate(d)
			if err != nil {
				return fmt.Errorf("failed to list workouts: %w", err)
			}
			fmt.Printf("%s %s\n", d, faint.Sprintf("(%d)", len(workouts)))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyDate, "date", "d", "", "show workouts for a date (YYYY-MM-DD)")
	rootCmd.AddCommand(historyCmd)
}
