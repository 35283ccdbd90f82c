// ABOUTME: CLI commands for exporting and importing gym data.
// ABOUTME: Supports JSON backup/restore and human-readable YAML export.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput  string
	importReplace bool
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export gym data",
	Long: `Export all exercises, programs, and workouts.

FORMATS:

  json   Full JSON export (the backup/restore format)
  yaml   YAML export with a provenance header (human-readable only)

OPTIONS:

  --output, -o   Write to file instead of stdout. Use "auto" for the
                 dated backup name, e.g. gym-backup-2026-09-01.json.

EXAMPLES:

  gym export json                  # Print JSON to stdout
  gym export json -o auto          # Write gym-backup-<date>.json
  gym export json -o backup.json   # Write to a named file
  gym export yaml                  # Human-readable YAML`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error
		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			out := exportOutput
			if out == "auto" {
				out = storage.BackupFilename(time.Now())
			}
			if err := os.WriteFile(out, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", out)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import gym data from JSON",
	Long: `Import data from a JSON backup file.

Import is additive: records are upserted under their own ids, so a record
with an existing id overwrites it and everything else is left alone.
Re-importing the same file changes nothing. Use --replace to wipe the
store first for an exact restore.

A file that is not a valid snapshot is rejected before anything is
written.

EXAMPLES:

  gym import backup.json            # Merge a backup into the store
  gym import backup.json --replace  # Exact restore`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		// Validate before the destructive clear.
		snap, err := storage.ParseSnapshot(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		if importReplace {
			if err := repo.ClearAll(); err != nil {
				return fmt.Errorf("failed to clear store: %w", err)
			}
		}

		if err := repo.ImportAll(snap); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d exercises, %d programs, %d workouts from %s",
			len(snap.Exercises), len(snap.Programs), len(snap.Workouts), filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "clear the store before importing")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
