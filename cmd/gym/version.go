// ABOUTME: CLI command printing the gym version.
// ABOUTME: Version is stamped at build time via ldflags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set via -ldflags "-X main.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gym version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gym %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
