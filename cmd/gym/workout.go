// ABOUTME: CLI commands for logging workout sessions.
// ABOUTME: Supports start, log, show, finish, and delete subcommands.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/spf13/cobra"
)

var (
	workoutProgramID uint64
	workoutName      string
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Log workout sessions",
	Long: `Log workout sessions.

A session is created the moment you start it, so an interrupted workout
is still there when you come back. Log sets as you go, then finish to
stamp the end time.

WORKFLOW:

  1. Start a session:   gym workout start --program 1
  2. Log sets:          gym workout log 1 0 0 60 10
  3. Check progress:    gym workout show 1
  4. Wrap up:           gym workout finish 1

COMMANDS:

  start    Start a session, free-form or from a program
  log      Record weight and reps for a set
  show     View a session's exercises and sets
  finish   Stamp the end time
  delete   Delete a session`,
}

var workoutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a workout session",
	Long: `Start a workout session.

With --program, the session is pre-filled with the program's exercises,
one empty set each. Without it you get an empty free workout.

Examples:
  gym workout start --program 1
  gym workout start --name "Quick Cardio"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var w *models.Workout
		if workoutProgramID != 0 {
			p, err := repo.GetProgram(workoutProgramID)
			if err != nil {
				return fmt.Errorf("failed to load program: %w", err)
			}
			if p == nil {
				return fmt.Errorf("program not found: %d", workoutProgramID)
			}
			w = models.FromProgram(p)
		} else {
			name := workoutName
			if name == "" {
				name = "Free Workout"
			}
			w = models.NewWorkout(name)
		}

		id, err := repo.AddWorkout(w)
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}

		color.Green("✓ Started %s", w.ProgramName)
		fmt.Printf("  ID: %d\n", id)
		return nil
	},
}

var workoutLogCmd = &cobra.Command{
	Use:   "log <workout-id> <exercise-index> <set-index> <weight> <reps>",
	Short: "Record a set",
	Long: `Record weight and reps for a set in a session.

Indexes are zero-based. A set index one past the end appends a new set.
Use "-" for weight or reps to leave that field unfilled.

Examples:
  gym workout log 1 0 0 60 10    # First exercise, first set: 60kg x 10
  gym workout log 1 0 2 - 12     # Append a third set, reps only`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id: %s", args[0])
		}
		exIdx, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid exercise index: %s", args[1])
		}
		setIdx, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid set index: %s", args[2])
		}

		w, err := repo.GetWorkout(id)
		if err != nil {
			return fmt.Errorf("failed to load workout: %w", err)
		}
		if w == nil {
			return fmt.Errorf("workout not found: %d", id)
		}
		if exIdx < 0 || exIdx >= len(w.Exercises) {
			return fmt.Errorf("exercise index %d out of range", exIdx)
		}

		ex := &w.Exercises[exIdx]
		switch {
		case setIdx >= 0 && setIdx < len(ex.Sets):
		case setIdx == len(ex.Sets):
			ex.Sets = append(ex.Sets, models.Set{})
		default:
			return fmt.Errorf("set index %d out of range", setIdx)
		}

		set := &ex.Sets[setIdx]
		weight, err := parseSetValue(args[3])
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[3])
		}
		reps, err := parseSetValue(args[4])
		if err != nil {
			return fmt.Errorf("invalid reps: %s", args[4])
		}
		if weight.Valid {
			set.Weight = weight
		}
		if reps.Valid {
			set.Reps = reps
		}

		if err := repo.UpdateWorkout(w); err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}

		color.Green("✓ Logged set %d for %s", setIdx+1, ex.Name)
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id: %s", args[0])
		}

		w, err := repo.GetWorkout(id)
		if err != nil {
			return fmt.Errorf("failed to load workout: %w", err)
		}
		if w == nil {
			return fmt.Errorf("workout not found: %d", id)
		}

		printWorkout(w)
		return nil
	},
}

var workoutFinishCmd = &cobra.Command{
	Use:   "finish <id>",
	Short: "Finish a workout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id: %s", args[0])
		}

		w, err := repo.GetWorkout(id)
		if err != nil {
			return fmt.Errorf("failed to load workout: %w", err)
		}
		if w == nil {
			return fmt.Errorf("workout not found: %d", id)
		}

		w.Finish()
		if err := repo.UpdateWorkout(w); err != nil {
			return fmt.Errorf("failed to finish workout: %w", err)
		}

		elapsed := time.Duration(w.EndTime-w.StartTime) * time.Millisecond
		color.Green("✓ Finished %s (%s)", w.ProgramName, elapsed.Round(time.Minute))
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id: %s", args[0])
		}

		if err := repo.DeleteWorkout(id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Green("✓ Deleted workout %d", id)
		return nil
	},
}

// parseSetValue parses a weight or reps argument. "-" means leave the
// field unfilled and comes back as an invalid (empty) number.
func parseSetValue(arg string) (models.NullNumber, error) {
	if arg == "-" {
		return models.NullNumber{}, nil
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return models.NullNumber{}, err
	}
	return models.Num(v), nil
}

// formatSetValue renders a set field for display, "-" when unfilled.
func formatSetValue(n models.NullNumber) string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatFloat(n.Float64, 'f', -1, 64)
}

func printWorkout(w *models.Workout) {
	faint := color.New(color.Faint)
	status := faint.Sprint("in progress")
	if w.EndTime != 0 {
		elapsed := time.Duration(w.EndTime-w.StartTime) * time.Millisecond
		status = faint.Sprint(elapsed.Round(time.Minute).String())
	}
	fmt.Printf("%s %s %s\n", color.New(color.Bold).Sprint(w.ProgramName), faint.Sprint(w.Date), status)

	for i, ex := range w.Exercises {
		fmt.Printf("  %d. %s\n", i+1, ex.Name)
		for j, set := range ex.Sets {
			fmt.Printf("     set %d: %s x %s\n", j+1, formatSetValue(set.Weight), formatSetValue(set.Reps))
		}
	}
}

func init() {
	workoutStartCmd.Flags().Uint64VarP(&workoutProgramID, "program", "p", 0, "start from a program")
	workoutStartCmd.Flags().StringVarP(&workoutName, "name", "n", "", "name for a free workout")

	workoutCmd.AddCommand(workoutStartCmd)
	workoutCmd.AddCommand(workoutLogCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutFinishCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
