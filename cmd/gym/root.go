// ABOUTME: Root Cobra command for gym CLI.
// ABOUTME: Handles Repository lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/gym/internal/config"
	"github.com/harperreed/gym/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "gym",
	Short: "Personal gym workout tracker",
	Long: `Gym is a CLI tool for tracking gym workouts.

HOW IT FITS TOGETHER:

  Exercises   The catalog: 33 built-in exercises across 8 muscle groups,
              plus any custom ones you add.
  Programs    Reusable workout templates built from catalog exercises.
  Workouts    Logged sessions with weights and reps per set.

QUICK START:

  $ gym exercise list                      # Browse the catalog
  $ gym exercise add "Face Pull" shoulders # Add a custom exercise
  $ gym program add "Push Day" 1 5 9       # Build a program from exercise IDs
  $ gym workout start --program 1          # Start a session from a program
  $ gym workout log 1 0 0 60 10            # Log 60kg x 10 on the first set
  $ gym workout finish 1                   # Stamp the end time
  $ gym history                            # Dates with workouts

BACKUP & RESTORE:

  $ gym export json -o backup.json    # Full JSON backup
  $ gym import backup.json            # Restore (additive, overwrites by id)

MCP INTEGRATION:

  Run 'gym mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "gym": { "command": "gym", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in ~/.local/share/gym by default, in an embedded Badger
  database. Set "backend": "sqlite" in ~/.config/gym/config.json to use
  SQLite instead; 'gym migrate' copies data between backends.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't touch the store skip the open.
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
