package core

import (
	"context"
	"time"

	"github.com/nicoortuno/econtrack/pkg/logger"
)

// Logger is the logging contract used across the engine.
type Logger = logger.Logger

// Source provides one logical table of raw rows per refresh cycle.
// Implementations own fetching and caching; the engine only consumes rows.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]Row, error)
}

// Snapshot is the most-recent-row view of a board, plus its latest
// derived metrics. Values keep their absence marker so display layers
// can render a "no data" sentinel instead of a zero.
type Snapshot struct {
	Board string           `json:"board"`
	Label string           `json:"label"`
	Taken time.Time        `json:"taken"`
	Value map[string]Value `json:"values"`
}

// SnapshotStorage persists the latest snapshot per board.
type SnapshotStorage interface {
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	LastSnapshot(ctx context.Context, board string) (Snapshot, error)
}

// HistoryStorage appends raw snapshots for later inspection.
type HistoryStorage interface {
	AppendSnapshot(ctx context.Context, snapshot Snapshot) error
	SnapshotsByPeriod(ctx context.Context, board string, start, end time.Time) ([]Snapshot, error)
}

// Notifier receives human-readable alerts raised during a refresh.
type Notifier interface {
	Notify(text string)
	OnError(err error)
}
