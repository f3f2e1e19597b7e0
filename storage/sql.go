package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nicoortuno/econtrack/core"
)

// SQLStorage appends snapshot history to a SQL database via GORM. It
// implements core.HistoryStorage.
type SQLStorage struct {
	db *gorm.DB
}

// Config holds the configuration for SQL database connections
type Config struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a default configuration for SQL connections
func DefaultConfig() Config {
	return Config{
		MaxIdleConns:    5,
		MaxOpenConns:    10,
		ConnMaxLifetime: time.Hour,
	}
}

// SnapshotRecord is the persisted form of a board snapshot. Values are
// stored as JSON so absent cells survive the round trip as nulls.
type SnapshotRecord struct {
	ID     int64     `gorm:"primaryKey;autoIncrement"`
	Board  string    `gorm:"index"`
	Label  string    `gorm:"index"`
	Taken  time.Time `gorm:"index"`
	Values string
}

// NewFromSQLite creates a new SQLite history store
func NewFromSQLite(dbPath string, config Config, opts ...gorm.Option) (core.HistoryStorage, error) {
	return newFromSQL(sqlite.Open(dbPath), config, opts...)
}

// newFromSQL creates a new SQL history store with the specified configuration
func newFromSQL(dialect gorm.Dialector, config Config, opts ...gorm.Option) (core.HistoryStorage, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err = db.AutoMigrate(&SnapshotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStorage{db: db}, nil
}

// AppendSnapshot stores one snapshot row.
func (s *SQLStorage) AppendSnapshot(ctx context.Context, snapshot core.Snapshot) error {
	values, err := json.Marshal(snapshot.Value)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot values: %w", err)
	}

	record := SnapshotRecord{
		Board:  snapshot.Board,
		Label:  snapshot.Label,
		Taken:  snapshot.Taken,
		Values: string(values),
	}
	if result := s.db.WithContext(ctx).Create(&record); result.Error != nil {
		return fmt.Errorf("failed to append snapshot: %w", result.Error)
	}
	return nil
}

// SnapshotsByPeriod returns stored snapshots for a board within a period,
// oldest first.
func (s *SQLStorage) SnapshotsByPeriod(ctx context.Context, board string, start, end time.Time) ([]core.Snapshot, error) {
	var records []SnapshotRecord
	result := s.db.WithContext(ctx).
		Where("board = ? AND taken BETWEEN ? AND ?", board, start, end).
		Order("taken").
		Find(&records)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", result.Error)
	}

	snapshots := make([]core.Snapshot, 0, len(records))
	for _, record := range records {
		snapshot := core.Snapshot{
			Board: record.Board,
			Label: record.Label,
			Taken: record.Taken,
			Value: make(map[string]core.Value),
		}
		if err := json.Unmarshal([]byte(record.Values), &snapshot.Value); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot values: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
