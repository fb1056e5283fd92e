/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"github.com/krobus00/pairsync-service/internal/bootstrap"
	"github.com/spf13/cobra"
)

// syncOnceCmd represents the sync once command
var syncOnceCmd = &cobra.Command{
	Use:   "sync-once",
	Short: "Run a single whitelist reconciliation pass and exit",
	Long: `Runs one full fetch-normalize-diff-write-notify pass against the profile
registry and the engine config, then exits. Exits non-zero when the pass fails.`,
	Run: bootstrap.StartSyncOnce,
}

func init() {
	rootCmd.AddCommand(syncOnceCmd)
}
