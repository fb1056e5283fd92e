package bootstrap

import (
	"context"
	"strings"
	"time"

	"github.com/krobus00/pairsync-service/internal/config"
	"github.com/krobus00/pairsync-service/internal/constant"
	whitelisthttp "github.com/krobus00/pairsync-service/internal/handler/whitelist/http"
	"github.com/krobus00/pairsync-service/internal/infrastructure"
	"github.com/krobus00/pairsync-service/internal/repository"
	"github.com/krobus00/pairsync-service/internal/service/engine"
	"github.com/krobus00/pairsync-service/internal/service/registry"
	"github.com/krobus00/pairsync-service/internal/service/whitelist"
	"github.com/krobus00/pairsync-service/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func StartWhitelistSyncWorker(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncService, syncRunRepo, ops := buildWhitelistSyncService(ctx, cancel)

	logrus.WithFields(logrus.Fields{
		"registry":    config.Env.Registry.URL,
		"config_path": config.Env.Engine.ConfigPath,
		"interval":    syncService.Interval().String(),
	}).Info("whitelist sync worker starting")

	go syncService.Run(ctx)

	mux := infrastructure.BaseMux()
	whitelisthttp.NewSyncStatusHTTPHandler(syncService, syncRunRepo).Register(mux)
	httpServer := infrastructure.NewHTTPServer(mux)
	go func() {
		util.ContinueOrFatal(httpServer.Start())
	}()

	ops["http server"] = func(ctx context.Context) error {
		cancel()
		return httpServer.Shutdown(ctx)
	}

	wait := gracefulShutdown(ctx, config.Env.GracefulShutdownTimeout, ops)

	<-wait
}

// buildWhitelistSyncService wires the sync service with its required
// collaborators plus whichever optional backends (audit database, jetstream,
// redis state) the config enables.
func buildWhitelistSyncService(ctx context.Context, cancel context.CancelFunc) (*whitelist.SyncService, *repository.SyncRunRepository, map[string]operation) {
	registryClient := registry.NewClient(config.Env.Registry.URL, config.Env.Registry.Timeout)
	resolver := whitelist.NewTargetResolver(config.Env.Sync.TargetTimeout)
	configRepo := repository.NewEngineConfigRepository(config.Env.Engine.ConfigPath)
	engineClient := engine.NewClient(config.Env.Engine)

	syncInterval := time.Duration(config.Env.Sync.IntervalSeconds) * time.Second
	syncService := whitelist.NewSyncService(registryClient, resolver, configRepo, engineClient, syncInterval)

	ops := map[string]operation{}
	var syncRunRepo *repository.SyncRunRepository

	if dbCfg, ok := config.Env.Database["sync_audit"]; ok && strings.TrimSpace(dbCfg.DSN) != "" {
		db, err := infrastructure.NewPostgresConnection(ctx, dbCfg)
		util.ContinueOrFatal(err)
		infrastructure.StartPostgresHealthCheck(ctx, db, dbCfg.PingInterval)

		syncRunRepo = repository.NewSyncRunRepository(db)
		syncService.WithSyncRunRepository(syncRunRepo)
		ops["sync audit database"] = func(ctx context.Context) error {
			cancel()
			return db.Close()
		}
	}

	if strings.TrimSpace(config.Env.NatsJetstream.URL) != "" {
		nc, js, err := infrastructure.NewJetstream()
		util.ContinueOrFatal(err)

		syncService.WithPublisher(js)
		util.ContinueOrFatal(syncService.JetstreamEventInit(ctx))
		ops["nats connection"] = func(ctx context.Context) error {
			return infrastructure.CloseJetstream(nc)
		}
	}

	if redisCfg, ok := config.Env.Redis["state"]; ok && strings.TrimSpace(redisCfg.CacheDSN) != "" {
		stateStore, err := whitelist.NewRedisSyncStateStore(redisCfg.CacheDSN)
		util.ContinueOrFatal(err)

		syncService.WithStateStore(stateStore)

		report, found, err := stateStore.Load(ctx, constant.SyncStateKeyLastReport)
		if err != nil {
			logrus.WithError(err).Warn("failed to load sync state")
		} else if found {
			syncService.SeedLastReport(&report)
		}

		ops["redis state store"] = func(ctx context.Context) error {
			return stateStore.Close()
		}
	}

	return syncService, syncRunRepo, ops
}
