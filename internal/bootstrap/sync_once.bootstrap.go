package bootstrap

import (
	"context"
	"os"

	"github.com/krobus00/pairsync-service/internal/entity"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// StartSyncOnce runs a single reconciliation pass and exits, for operators
// and cron-style setups. Non-zero exit on a failed pass.
func StartSyncOnce(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncService, _, ops := buildWhitelistSyncService(ctx, cancel)

	report := syncService.RunCycle(ctx)

	for name, op := range ops {
		if err := op(context.Background()); err != nil {
			logrus.Errorf("%s: clean up failed: %v", name, err)
		}
	}

	if report.Status == entity.SyncStatusFailed {
		os.Exit(1)
	}
}
