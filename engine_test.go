package econtrack

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicoortuno/econtrack/core"
	"github.com/nicoortuno/econtrack/storage"
)

type recordingNotifier struct {
	alerts []string
	errors []error
}

func (n *recordingNotifier) Notify(text string) { n.alerts = append(n.alerts, text) }
func (n *recordingNotifier) OnError(err error)  { n.errors = append(n.errors, err) }

func currencyRows() []core.Row {
	return []core.Row{
		{"ts": "2024-03-20 14:00:00", "best_bid": "6.90", "best_ask": "6.96"},
		{"ts": "2024-03-20 14:30:00", "best_bid": "6.92", "best_ask": "6.98"},
	}
}

func TestEngine_Refresh(t *testing.T) {
	snapshots, err := storage.NewFromMemory()
	require.NoError(t, err)

	source := &stubSource{name: "p2p", rows: currencyRows()}
	engine := New(DefaultLog, []Board{NewCurrencyBoard(source)},
		WithSnapshotStorage(snapshots),
	)

	require.NoError(t, engine.Refresh(context.Background()))

	series, ok := engine.Result("currency")
	require.True(t, ok)
	require.Equal(t, 2, series.Len())

	snapshot, err := snapshots.LastSnapshot(context.Background(), "currency")
	require.NoError(t, err)
	require.Equal(t, "2024-03-20 14:30:00", snapshot.Label)
	require.InDelta(t, 6.95, snapshot.Value["mid"].Float64, 1e-9)
	require.InDelta(t, 0.02, snapshot.Value["mid_delta"].Float64, 1e-9)
}

func TestEngine_FailedSourceDegradesBoard(t *testing.T) {
	notifier := &recordingNotifier{}
	exports := &stubSource{name: "exports", rows: []core.Row{{"fecha": "2024-01-31", "FOB": "850.5"}}}
	imports := &stubSource{name: "imports", err: errors.New("fetch failed")}

	engine := New(DefaultLog, []Board{NewTradeBoard(exports, imports)},
		WithNotifier(notifier),
	)

	// A failing source leaves a nil batch; the board still builds.
	require.NoError(t, engine.Refresh(context.Background()))

	series, ok := engine.Result("trade")
	require.True(t, ok)
	require.Equal(t, 1, series.Len())
	require.False(t, series.Column("trade_balance")[0].Valid)
	require.Empty(t, notifier.errors)
}

func TestEngine_MoveAlert(t *testing.T) {
	notifier := &recordingNotifier{}
	source := &stubSource{name: "p2p", rows: []core.Row{
		{"ts": "2024-03-20 14:00:00", "best_bid": "6.90", "best_ask": "6.96"},
		{"ts": "2024-03-20 14:30:00", "best_bid": "7.20", "best_ask": "7.26"},
	}}

	engine := New(DefaultLog, []Board{NewCurrencyBoard(source)},
		WithNotifier(notifier),
		WithMoveAlert(0.02),
	)

	require.NoError(t, engine.Refresh(context.Background()))
	require.Len(t, notifier.alerts, 1)
	require.Contains(t, notifier.alerts[0], "mid")
}

func TestEngine_MoveBelowThresholdStaysQuiet(t *testing.T) {
	notifier := &recordingNotifier{}
	source := &stubSource{name: "p2p", rows: currencyRows()}

	engine := New(DefaultLog, []Board{NewCurrencyBoard(source)},
		WithNotifier(notifier),
		WithMoveAlert(0.02),
	)

	require.NoError(t, engine.Refresh(context.Background()))
	require.Empty(t, notifier.alerts)
}
