// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies everything from the current backend to the other one.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/storage"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <backend>",
	Short: "Copy data to another storage backend",
	Long: `Copy all data from the current backend to another one.

The current backend comes from ~/.config/gym/config.json (badger by
default). Migration copies every record with its id preserved; running
it again is a harmless overwrite. The source is left untouched, and the
config is not switched automatically -- update "backend" in the config
once you have verified the copy.

EXAMPLES:

  gym migrate sqlite    # Copy badger data into gym.sqlite
  gym migrate badger    # Copy sqlite data into gym.db`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"badger", "sqlite"},
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == cfg.GetBackend() {
			return fmt.Errorf("already using the %s backend", target)
		}

		dataDir := cfg.GetDataDir()
		var dst storage.Repository
		var err error
		switch target {
		case "badger":
			dst, err = storage.Open(filepath.Join(dataDir, "gym.db"))
		case "sqlite":
			dst, err = storage.OpenSQLite(filepath.Join(dataDir, "gym.sqlite"))
		default:
			return fmt.Errorf("unknown backend: %s (use badger or sqlite)", target)
		}
		if err != nil {
			return fmt.Errorf("failed to open %s backend: %w", target, err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Copied %d records to %s", summary.Total(), target)
		fmt.Printf("  Exercises: %d\n", summary.Exercises)
		fmt.Printf("  Programs:  %d\n", summary.Programs)
		fmt.Printf("  Workouts:  %d\n", summary.Workouts)
		fmt.Printf("\nSet \"backend\": %q in %s to switch.\n", target, "~/.config/gym/config.json")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
