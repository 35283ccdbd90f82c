// ABOUTME: CLI commands for managing workout programs.
// ABOUTME: Supports list, add, show, and delete subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/spf13/cobra"
)

var programColor string

var programCmd = &cobra.Command{
	Use:     "program",
	Aliases: []string{"p"},
	Short:   "Manage workout programs",
	Long: `Manage workout programs.

A program is a reusable template: a name, a color, and an ordered list of
exercises from the catalog. Starting a workout from a program pre-fills
the session with those exercises, one empty set each.

Programs hold frozen copies of their exercises. Editing the catalog later
never changes an existing program.

COMMANDS:

  list     List programs
  add      Create a program from catalog exercise IDs
  show     Show a program's exercises
  delete   Delete a program`,
}

var programListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List programs",
	RunE: func(cmd *cobra.Command, args []string) error {
		programs, err := repo.ListPrograms()
		if err != nil {
			return fmt.Errorf("failed to list programs: %w", err)
		}

		if len(programs) == 0 {
			fmt.Println("No programs found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range programs {
			fmt.Printf("%s %s %s\n",
				faint.Sprintf("%3d", p.ID),
				p.Name,
				faint.Sprintf("(%d exercises)", len(p.Exercises)))
		}
		return nil
	},
}

var programAddCmd = &cobra.Command{
	Use:   "add <name> <exercise-id>...",
	Short: "Create a program",
	Long: `Create a program from catalog exercise IDs.

Find IDs with 'gym exercise list'. The program takes a snapshot of each
exercise as it is right now.

Examples:
  gym program add "Push Day" 5 6 7 28
  gym program add "Legs" 22 23 24 --color "#bf5af2"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		refs := make([]models.ExerciseRef, 0, len(args)-1)
		for _, arg := range args[1:] {
			id, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid exercise id: %s", arg)
			}
			ex, err := repo.GetExercise(id)
			if err != nil {
				return fmt.Errorf("failed to load exercise: %w", err)
			}
			if ex == nil {
				return fmt.Errorf("exercise not found: %d", id)
			}
			refs = append(refs, ex.Ref())
		}

		c := programColor
		if c == "" {
			programs, err := repo.ListPrograms()
			if err != nil {
				return fmt.Errorf("failed to list programs: %w", err)
			}
			c = models.ProgramColors[len(programs)%len(models.ProgramColors)]
		}

		p := models.NewProgram(name, c, refs)
		id, err := repo.AddProgram(p)
		if err != nil {
			return fmt.Errorf("failed to add program: %w", err)
		}

		color.Green("✓ Added program %s", name)
		fmt.Printf("  ID: %d\n", id)
		return nil
	},
}

var programShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid program id: %s", args[0])
		}

		p, err := repo.GetProgram(id)
		if err != nil {
			return fmt.Errorf("failed to load program: %w", err)
		}
		if p == nil {
			return fmt.Errorf("program not found: %d", id)
		}

		fmt.Println(color.New(color.Bold).Sprint(p.Name))
		faint := color.New(color.Faint)
		for i, ref := range p.Exercises {
			info := models.MuscleGroupInfo[ref.Group]
			fmt.Printf("  %d. %s %s\n", i+1, ref.Name, faint.Sprintf("(%s)", info.Label))
		}
		return nil
	},
}

var programDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a program",
	Long: `Delete a program.

Workouts already logged from this program are untouched; they carry their
own copies of the program name and exercises.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid program id: %s", args[0])
		}

		if err := repo.DeleteProgram(id); err != nil {
			return fmt.Errorf("failed to delete program: %w", err)
		}

		color.Green("✓ Deleted program %d", id)
		return nil
	},
}

func init() {
	programAddCmd.Flags().StringVar(&programColor, "color", "", "card color (defaults to the next palette color)")

	programCmd.AddCommand(programListCmd)
	programCmd.AddCommand(programAddCmd)
	programCmd.AddCommand(programShowCmd)
	programCmd.AddCommand(programDeleteCmd)
	rootCmd.AddCommand(programCmd)
}
