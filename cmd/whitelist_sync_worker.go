/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"github.com/krobus00/pairsync-service/internal/bootstrap"
	"github.com/spf13/cobra"
)

// whitelistSyncWorkerCmd represents the whitelist sync worker command
var whitelistSyncWorkerCmd = &cobra.Command{
	Use:   "whitelist-sync-worker",
	Short: "Sync the engine pair whitelist with registry profiles",
	Long: `Periodically fetches entitlement profiles from the profile registry,
resolves each profile's tradable symbols, and rewrites the engine's
pair_whitelist config when the computed union differs from the persisted one.`,
	Run: bootstrap.StartWhitelistSyncWorker,
}

func init() {
	rootCmd.AddCommand(whitelistSyncWorkerCmd)
}
