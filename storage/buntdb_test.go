package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nicoortuno/econtrack/core"
)

func TestBuntStorage_RoundTrip(t *testing.T) {
	store, err := NewFromMemory()
	require.NoError(t, err)

	ctx := context.Background()
	taken := time.Date(2024, 3, 20, 14, 30, 0, 0, time.UTC)
	snapshot := core.Snapshot{
		Board: "currency",
		Label: "2024-03-20 14:30:00",
		Taken: taken,
		Value: map[string]core.Value{
			"mid":        core.Num(6.93),
			"spread_pct": core.None,
		},
	}

	require.NoError(t, store.SaveSnapshot(ctx, snapshot))

	got, err := store.LastSnapshot(ctx, "currency")
	require.NoError(t, err)
	require.Equal(t, "currency", got.Board)
	require.Equal(t, "2024-03-20 14:30:00", got.Label)
	require.True(t, taken.Equal(got.Taken))
	require.Equal(t, core.Num(6.93), got.Value["mid"])
	require.False(t, got.Value["spread_pct"].Valid, "absent values survive the round trip")
}

func TestBuntStorage_SaveReplacesPrevious(t *testing.T) {
	store, err := NewFromMemory()
	require.NoError(t, err)

	ctx := context.Background()
	first := core.Snapshot{Board: "currency", Label: "2024-03-20 14:00:00", Value: map[string]core.Value{"mid": core.Num(6.90)}}
	second := core.Snapshot{Board: "currency", Label: "2024-03-20 14:30:00", Value: map[string]core.Value{"mid": core.Num(6.95)}}

	require.NoError(t, store.SaveSnapshot(ctx, first))
	require.NoError(t, store.SaveSnapshot(ctx, second))

	got, err := store.LastSnapshot(ctx, "currency")
	require.NoError(t, err)
	require.Equal(t, "2024-03-20 14:30:00", got.Label)
}

func TestBuntStorage_UnknownBoard(t *testing.T) {
	store, err := NewFromMemory()
	require.NoError(t, err)

	_, err = store.LastSnapshot(context.Background(), "missing")
	require.Error(t, err)
}
