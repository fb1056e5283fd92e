package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/krobus00/pairsync-service/internal/entity"
)

type SyncRunRepository struct {
	db *sqlx.DB
}

func NewSyncRunRepository(db *sqlx.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

func (r *SyncRunRepository) Create(ctx context.Context, syncRun *entity.SyncRun) error {
	queryBuilder := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Insert(syncRun.TableName()).
		Columns(
			"id",
			"status",
			"pair_count",
			"pairs_hash",
			"error_message",
			"started_at",
			"finished_at",
			"duration_ms",
			"created_at",
		).
		Values(
			syncRun.ID,
			syncRun.Status,
			syncRun.PairCount,
			syncRun.PairsHash,
			syncRun.ErrorMessage,
			syncRun.StartedAt,
			syncRun.FinishedAt,
			syncRun.DurationMs,
			syncRun.CreatedAt,
		)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *SyncRunRepository) GetLatest(ctx context.Context, limit uint64) ([]entity.SyncRun, error) {
	if limit == 0 {
		limit = 20
	}

	queryBuilder := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select("*").
		From("sync_runs").
		OrderBy("started_at desc").
		Limit(limit)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var syncRuns []entity.SyncRun
	err = r.db.SelectContext(ctx, &syncRuns, query, args...)
	if err != nil {
		return nil, err
	}

	return syncRuns, nil
}
