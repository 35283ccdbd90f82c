// ABOUTME: CLI commands for managing the exercise catalog.
// ABOUTME: Supports list, add, rename, and delete subcommands.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/spf13/cobra"
)

var exerciseGroup string

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise catalog",
	Long: `Manage the exercise catalog.

The catalog starts with 33 built-in exercises across 8 muscle groups:
  stretching, cardio, chest, back, arms, legs, shoulders, abs

Exercises you add are marked as custom. Deleting or renaming a catalog
exercise never touches programs or logged workouts: they keep their own
frozen copies of the exercise name and group.

COMMANDS:

  list     Browse the catalog, optionally by muscle group
  add      Add a custom exercise
  rename   Rename an exercise
  delete   Remove an exercise from the catalog`,
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	Long: `List exercises grouped by muscle group.

Examples:
  gym exercise list              # Full catalog
  gym exercise list -g chest     # Only chest exercises`,
	RunE: func(cmd *cobra.Command, args []string) error {
		grouped, err := repo.ExercisesByGroup()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		groups := models.AllMuscleGroups
		if exerciseGroup != "" {
			g := models.MuscleGroup(exerciseGroup)
			if !models.IsValidMuscleGroup(g) {
				return fmt.Errorf("unknown muscle group: %s", exerciseGroup)
			}
			groups = []models.MuscleGroup{g}
		}

		faint := color.New(color.Faint)
		for _, g := range groups {
			exercises := grouped[g]
			if len(exercises) == 0 && exerciseGroup == "" {
				continue
			}
			info := models.MuscleGroupInfo[g]
			fmt.Printf("%s %s\n", info.Icon, color.New(color.Bold).Sprint(info.Label))
			for _, ex := range exercises {
				custom := ""
				if ex.IsCustom {
					custom = faint.Sprint(" (custom)")
				}
				fmt.Printf("  %s %s%s\n", faint.Sprintf("%3d", ex.ID), ex.Name, custom)
			}
		}
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name> <group>",
	Short: "Add a custom exercise",
	Long: `Add a custom exercise to the catalog.

The group must be one of:
  stretching, cardio, chest, back, arms, legs, shoulders, abs

Examples:
  gym exercise add "Face Pull" shoulders
  gym exercise add "Sled Push" legs`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("exercise name is required")
		}
		group := models.MuscleGroup(args[1])
		if !models.IsValidMuscleGroup(group) {
			return fmt.Errorf("unknown muscle group: %s", args[1])
		}

		ex, err := repo.AddExercise(name, group)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s (%s)", ex.Name, ex.Group)
		fmt.Printf("  ID: %d\n", ex.ID)
		return nil
	},
}

var exerciseRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename an exercise",
	Long: `Rename a catalog exercise.

Programs and logged workouts keep the old name: they hold frozen copies
taken when the exercise was added to them.

Examples:
  gym exercise rename 34 "Cable Face Pull"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exercise id: %s", args[0])
		}

		ex, err := repo.GetExercise(id)
		if err != nil {
			return fmt.Errorf("failed to load exercise: %w", err)
		}
		if ex == nil {
			return fmt.Errorf("exercise not found: %d", id)
		}

		ex.Name = args[1]
		if err := repo.UpdateExercise(ex); err != nil {
			return fmt.Errorf("failed to rename exercise: %w", err)
		}

		color.Green("✓ Renamed exercise %d to %s", id, ex.Name)
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exercise id: %s", args[0])
		}

		if err := repo.DeleteExercise(id); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}

		color.Green("✓ Deleted exercise %d", id)
		return nil
	},
}

func init() {
	exerciseListCmd.Flags().StringVarP(&exerciseGroup, "group", "g", "", "filter by muscle group")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseRenameCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
