package whitelist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/krobus00/pairsync-service/internal/entity"
	"github.com/redis/go-redis/v9"
)

// SyncStateStore persists the last cycle report so the status endpoint has
// something to serve right after a restart.
type SyncStateStore interface {
	Load(ctx context.Context, key string) (entity.SyncReport, bool, error)
	Save(ctx context.Context, key string, report entity.SyncReport) error
}

type RedisSyncStateStore struct {
	client *redis.Client
}

func NewRedisSyncStateStore(cacheDSN string) (*RedisSyncStateStore, error) {
	if cacheDSN == "" {
		return nil, fmt.Errorf("redis cache_dsn is required")
	}

	options, err := redis.ParseURL(cacheDSN)
	if err != nil {
		return nil, fmt.Errorf("parse redis cache_dsn: %w", err)
	}

	return &RedisSyncStateStore{client: redis.NewClient(options)}, nil
}

func (s *RedisSyncStateStore) Load(ctx context.Context, key string) (entity.SyncReport, bool, error) {
	rawReport, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return entity.SyncReport{}, false, nil
		}
		return entity.SyncReport{}, false, err
	}

	var report entity.SyncReport
	if err := json.Unmarshal([]byte(rawReport), &report); err != nil {
		return entity.SyncReport{}, false, err
	}

	return report, true, nil
}

func (s *RedisSyncStateStore) Save(ctx context.Context, key string, report entity.SyncReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, payload, 0).Err()
}

func (s *RedisSyncStateStore) Close() error {
	return s.client.Close()
}
