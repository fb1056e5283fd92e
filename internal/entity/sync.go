package entity

import (
	"time"

	"github.com/guregu/null/v5"
)

type SyncStatus string

const (
	SyncStatusUnchanged SyncStatus = "UNCHANGED"
	SyncStatusUpdated   SyncStatus = "UPDATED"
	SyncStatusFailed    SyncStatus = "FAILED"
)

// SyncReport is the typed outcome of one reconciliation cycle. The scheduler
// loop inspects it once; nothing inside a cycle is allowed to panic or abort
// the process.
type SyncReport struct {
	RunID        string     `json:"run_id"`
	Status       SyncStatus `json:"status"`
	PairCount    int        `json:"pair_count"`
	PairsHash    string     `json:"pairs_hash,omitempty"`
	ErrorMessage string     `json:"error,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   time.Time  `json:"finished_at"`

	Err error `json:"-"`
}

func (r *SyncReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SyncRun is the audit-trail row persisted for each completed cycle.
type SyncRun struct {
	ID           string      `db:"id" json:"id"`
	Status       string      `db:"status" json:"status"`
	PairCount    int         `db:"pair_count" json:"pair_count"`
	PairsHash    null.String `db:"pairs_hash" json:"pairs_hash"`
	ErrorMessage null.String `db:"error_message" json:"error_message"`
	StartedAt    time.Time   `db:"started_at" json:"started_at"`
	FinishedAt   time.Time   `db:"finished_at" json:"finished_at"`
	DurationMs   int64       `db:"duration_ms" json:"duration_ms"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}

type WhitelistUpdatedEvent struct {
	RunID     string    `json:"run_id"`
	PairCount int       `json:"pair_count"`
	PairsHash string    `json:"pairs_hash"`
	Pairs     []string  `json:"pairs"`
	UpdatedAt time.Time `json:"updated_at"`
}
