// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gym/internal/autosave"
	"github.com/harperreed/gym/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log workouts for you through a
standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "gym": {
        "command": "gym",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_exercises      List the exercise catalog
  add_exercise        Add a custom exercise
  list_programs       List workout programs
  start_workout       Start a session, optionally from a program
  log_set             Record weight and reps for a set
  finish_workout      Stamp a session's end time
  workouts_by_date    Workouts logged on a date
  workout_dates       All dates with workouts
  export_data         Full data snapshot

AVAILABLE RESOURCES:

  gym://catalog       Exercises grouped by muscle group
  gym://today         Today's workouts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, autosave.WithDelay(cfg.GetAutosaveDelay()))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
