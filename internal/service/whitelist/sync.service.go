package whitelist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
	"github.com/krobus00/pairsync-service/internal/constant"
	"github.com/krobus00/pairsync-service/internal/entity"
	"github.com/krobus00/pairsync-service/internal/repository"
	"github.com/krobus00/pairsync-service/internal/util"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

const (
	// interval floor prevents hammering the registry with tight loops
	minSyncInterval     = 60 * time.Second
	defaultSyncInterval = time.Hour
)

type ProfileLister interface {
	ListProfiles(ctx context.Context) ([]entity.Profile, error)
}

type EngineConfigStore interface {
	Load() (*entity.EngineConfigDocument, error)
	Save(doc *entity.EngineConfigDocument) error
}

type ReloadNotifier interface {
	NotifyReload(ctx context.Context, doc *entity.EngineConfigDocument) error
}

// SyncService drives the reconciliation cycles: fetch profiles, resolve and
// translate symbols, diff against the persisted whitelist, rewrite on change,
// and ask the engine to reload. Cycles are strictly sequential; the ticker is
// the only concurrency control over the config file.
type SyncService struct {
	profiles     ProfileLister
	resolver     *TargetResolver
	configs      EngineConfigStore
	notifier     ReloadNotifier
	syncInterval time.Duration

	syncRunRepo *repository.SyncRunRepository
	js          nats.JetStreamContext
	stateStore  SyncStateStore

	mu         sync.RWMutex
	lastReport *entity.SyncReport
}

func NewSyncService(profiles ProfileLister, resolver *TargetResolver, configs EngineConfigStore, notifier ReloadNotifier, syncInterval time.Duration) *SyncService {
	if syncInterval <= 0 {
		syncInterval = defaultSyncInterval
	}
	if syncInterval < minSyncInterval {
		syncInterval = minSyncInterval
	}

	return &SyncService{
		profiles:     profiles,
		resolver:     resolver,
		configs:      configs,
		notifier:     notifier,
		syncInterval: syncInterval,
	}
}

func (s *SyncService) WithSyncRunRepository(repo *repository.SyncRunRepository) *SyncService {
	s.syncRunRepo = repo
	return s
}

func (s *SyncService) WithPublisher(js nats.JetStreamContext) *SyncService {
	s.js = js
	return s
}

func (s *SyncService) WithStateStore(store SyncStateStore) *SyncService {
	s.stateStore = store
	return s
}

func (s *SyncService) Interval() time.Duration {
	return s.syncInterval
}

func (s *SyncService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()

	s.RunCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle executes one reconciliation pass and absorbs its outcome: log it,
// persist the audit row and last-report state, and hand the report back. No
// cycle error ever escapes to the caller.
func (s *SyncService) RunCycle(ctx context.Context) *entity.SyncReport {
	report := s.SyncOnce(ctx)

	switch report.Status {
	case entity.SyncStatusUnchanged:
		logrus.WithField("pairs", report.PairCount).Info("pair_whitelist unchanged")
	case entity.SyncStatusUpdated:
		logrus.WithField("pairs", report.PairCount).Info("pair_whitelist updated")
	case entity.SyncStatusFailed:
		logrus.WithField("run_id", report.RunID).WithError(report.Err).Error("sync failed")
	}

	s.record(ctx, report)

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()

	return report
}

func (s *SyncService) SyncOnce(ctx context.Context) *entity.SyncReport {
	report := &entity.SyncReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	err := s.reconcile(ctx, report)
	report.FinishedAt = time.Now().UTC()
	if err != nil {
		report.Status = entity.SyncStatusFailed
		report.Err = err
		report.ErrorMessage = err.Error()
	}

	return report
}

func (s *SyncService) reconcile(ctx context.Context, report *entity.SyncReport) error {
	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return &entity.ReconciliationError{Reason: "no profiles found"}
	}

	pairs := s.buildPairs(ctx, profiles)
	if len(pairs) == 0 {
		return &entity.ReconciliationError{Reason: "no pairs resolved from profiles"}
	}

	report.PairCount = len(pairs)
	report.PairsHash = hashPairs(pairs)

	doc, err := s.configs.Load()
	if err != nil {
		return err
	}

	if slices.Equal(doc.PairWhitelist(), pairs) {
		report.Status = entity.SyncStatusUnchanged
		return nil
	}

	if err := doc.SetPairWhitelist(pairs); err != nil {
		return fmt.Errorf("update pair_whitelist: %w", err)
	}
	if err := s.configs.Save(doc); err != nil {
		return err
	}
	report.Status = entity.SyncStatusUpdated

	s.notifyReload(ctx, doc)
	s.publishUpdated(report, pairs)

	return nil
}

// buildPairs unions every profile's resolved symbol set, translated into the
// engine's contract notation, sorted and deduplicated.
func (s *SyncService) buildPairs(ctx context.Context, profiles []entity.Profile) []string {
	set := make(map[string]struct{})
	for _, profile := range profiles {
		for _, target := range s.resolver.Resolve(ctx, profile) {
			set[ToTradingPair(target)] = struct{}{}
		}
	}

	pairs := make([]string, 0, len(set))
	for pair := range set {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	return pairs
}

func (s *SyncService) notifyReload(ctx context.Context, doc *entity.EngineConfigDocument) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.NotifyReload(ctx, doc)
	if err == nil {
		return
	}
	if errors.Is(err, entity.ErrCredentialsMissing) {
		logrus.Warn("engine reload skipped: missing credentials")
		return
	}

	logrus.WithError(err).Warn("engine reload failed")
}

func (s *SyncService) publishUpdated(report *entity.SyncReport, pairs []string) {
	if s.js == nil {
		return
	}

	event := entity.WhitelistUpdatedEvent{
		RunID:     report.RunID,
		PairCount: len(pairs),
		PairsHash: report.PairsHash,
		Pairs:     pairs,
		UpdatedAt: time.Now().UTC(),
	}

	err := util.PublishEvent(s.js, constant.WhitelistStreamSubjectUpdated, event)
	if err != nil {
		logrus.WithError(err).Warn("failed to publish whitelist updated event")
	}
}

// record persists the cycle outcome to the optional audit trail and state
// store. Both are observability paths and must never fail a cycle.
func (s *SyncService) record(ctx context.Context, report *entity.SyncReport) {
	if s.syncRunRepo != nil {
		syncRun := &entity.SyncRun{
			ID:           report.RunID,
			Status:       string(report.Status),
			PairCount:    report.PairCount,
			PairsHash:    null.NewString(report.PairsHash, report.PairsHash != ""),
			ErrorMessage: null.NewString(report.ErrorMessage, report.ErrorMessage != ""),
			StartedAt:    report.StartedAt,
			FinishedAt:   report.FinishedAt,
			DurationMs:   report.Duration().Milliseconds(),
			CreatedAt:    time.Now().UTC(),
		}

		if err := s.syncRunRepo.Create(ctx, syncRun); err != nil {
			logrus.WithField("run_id", report.RunID).WithError(err).Warn("failed to record sync run")
		}
	}

	if s.stateStore != nil {
		if err := s.stateStore.Save(ctx, constant.SyncStateKeyLastReport, *report); err != nil {
			logrus.WithError(err).Warn("failed to save sync state")
		}
	}
}

func (s *SyncService) LastReport() (*entity.SyncReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastReport == nil {
		return nil, false
	}

	report := *s.lastReport
	return &report, true
}

// SeedLastReport restores the status endpoint's view from the state store
// after a restart.
func (s *SyncService) SeedLastReport(report *entity.SyncReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastReport == nil {
		s.lastReport = report
	}
}

func (s *SyncService) JetstreamEventInit(ctx context.Context) error {
	if s.js == nil {
		return nil
	}

	streamConfig := &nats.StreamConfig{
		Name:      constant.WhitelistStreamName,
		Subjects:  []string{constant.WhitelistStreamSubjectAll},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Replicas:  1,
	}

	stream, err := s.js.StreamInfo(constant.WhitelistStreamName, nats.Context(ctx))
	if err != nil && !errors.Is(err, nats.ErrStreamNotFound) {
		return err
	}

	if stream == nil {
		logrus.Infof("creating stream: %s", constant.WhitelistStreamName)
		_, err = s.js.AddStream(streamConfig, nats.Context(ctx))
		return err
	}

	_, err = s.js.UpdateStream(streamConfig, nats.Context(ctx))
	if err != nil {
		return err
	}

	logrus.Infof("stream %s is ready", constant.WhitelistStreamName)

	return nil
}

func hashPairs(pairs []string) string {
	sum := sha256.Sum256([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(sum[:])
}
