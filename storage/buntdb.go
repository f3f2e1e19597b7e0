package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/buntdb"

	"github.com/nicoortuno/econtrack/core"
)

const (
	// boardIndexName orders snapshots by the board they belong to
	boardIndexName = "board_index"
)

// BuntStorage keeps the latest snapshot per board in BuntDB. It
// implements core.SnapshotStorage.
type BuntStorage struct {
	db *buntdb.DB
}

// BuntConfig holds configuration options for BuntDB
type BuntConfig struct {
	SyncPolicy buntdb.SyncPolicy
}

// DefaultBuntConfig returns the default configuration for BuntDB
func DefaultBuntConfig() BuntConfig {
	return BuntConfig{SyncPolicy: buntdb.Never}
}

// NewFromMemory creates an in-memory snapshot store with default configuration
func NewFromMemory() (core.SnapshotStorage, error) {
	return NewBuntStorage(":memory:", DefaultBuntConfig())
}

// NewFromFile creates a file-based snapshot store with default configuration
func NewFromFile(file string) (core.SnapshotStorage, error) {
	return NewBuntStorage(file, DefaultBuntConfig())
}

// NewBuntStorage creates a new BuntDB snapshot store with the specified configuration
func NewBuntStorage(sourceFile string, config BuntConfig) (core.SnapshotStorage, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	if err := db.SetConfig(buntdb.Config{
		SyncPolicy: config.SyncPolicy,
	}); err != nil {
		return nil, fmt.Errorf("failed to configure buntdb: %w", err)
	}

	if err := db.CreateIndex(boardIndexName, "*", buntdb.IndexJSON("board")); err != nil {
		return nil, fmt.Errorf("failed to create board index: %w", err)
	}

	return &BuntStorage{db: db}, nil
}

// SaveSnapshot replaces the stored snapshot for the board.
func (b *BuntStorage) SaveSnapshot(_ context.Context, snapshot core.Snapshot) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		content, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}

		if _, _, err = tx.Set(snapshot.Board, string(content), nil); err != nil {
			return fmt.Errorf("failed to store snapshot: %w", err)
		}
		return nil
	})
}

// LastSnapshot returns the stored snapshot for the board.
func (b *BuntStorage) LastSnapshot(_ context.Context, board string) (core.Snapshot, error) {
	var snapshot core.Snapshot
	err := b.db.View(func(tx *buntdb.Tx) error {
		content, err := tx.Get(board)
		if err != nil {
			return fmt.Errorf("snapshot not found: %w", err)
		}
		return json.Unmarshal([]byte(content), &snapshot)
	})
	return snapshot, err
}
