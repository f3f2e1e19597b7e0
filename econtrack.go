// Package econtrack normalizes schema-drifting economic tables into
// aligned, derived, chartable time series and point-in-time snapshots.
package econtrack

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"

	"github.com/nicoortuno/econtrack/core"
	"github.com/nicoortuno/econtrack/plot"
)

// Engine re-runs the full pipeline for every registered board on each
// refresh. Computation is a full replace from the raw row batches; no
// incremental state survives between refreshes.
type Engine struct {
	mu      sync.Mutex
	log     core.Logger
	boards  []Board
	results map[string]core.Series

	snapshots core.SnapshotStorage
	history   core.HistoryStorage
	notifier  core.Notifier
	chart     *plot.Chart

	moveAlertPct float64
}

// Option defines a function type for configuring an Engine instance
type Option func(*Engine)

// WithSnapshotStorage persists the latest snapshot per board
func WithSnapshotStorage(storage core.SnapshotStorage) Option {
	return func(e *Engine) {
		e.snapshots = storage
	}
}

// WithHistoryStorage appends every snapshot to a history store
func WithHistoryStorage(storage core.HistoryStorage) Option {
	return func(e *Engine) {
		e.history = storage
	}
}

// WithNotifier raises alerts on refresh failures and large moves
func WithNotifier(notifier core.Notifier) Option {
	return func(e *Engine) {
		e.notifier = notifier
	}
}

// WithChart pushes refreshed boards to a chart server
func WithChart(chart *plot.Chart) Option {
	return func(e *Engine) {
		e.chart = chart
	}
}

// WithMoveAlert notifies when a board's primary column moves more than
// the given fraction period-over-period (e.g. 0.02 for 2%)
func WithMoveAlert(threshold float64) Option {
	return func(e *Engine) {
		e.moveAlertPct = threshold
	}
}

// New creates an engine over the given boards.
func New(log core.Logger, boards []Board, options ...Option) *Engine {
	engine := &Engine{
		log:     log,
		boards:  boards,
		results: make(map[string]core.Series),
	}
	for _, option := range options {
		option(engine)
	}
	return engine
}

// Refresh recomputes every board from scratch. A source that fails to
// deliver leaves a nil batch; the board's dependent columns degrade to
// "no value" instead of failing the whole dashboard.
func (e *Engine) Refresh(ctx context.Context) error {
	var firstErr error
	for _, board := range e.boards {
		if err := e.refreshBoard(ctx, board); err != nil {
			e.log.WithError(err).Errorf("board %s failed", board.Name())
			if e.notifier != nil {
				e.notifier.OnError(err)
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (e *Engine) refreshBoard(ctx context.Context, board Board) error {
	batches := make([][]core.Row, len(board.Sources()))
	for i, source := range board.Sources() {
		rows, err := source.Rows(ctx)
		if err != nil {
			e.log.WithError(err).Warnf("source %s unavailable", source.Name())
			continue
		}
		batches[i] = rows
	}

	series, err := board.Build(batches...)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.results[board.Name()] = series
	e.mu.Unlock()

	e.log.WithField("board", board.Name()).Infof("refreshed %d positions", series.Len())

	if e.chart != nil {
		e.chart.UpdateBoard(plot.Board{
			Name:    board.Name(),
			Title:   board.Title(),
			Series:  series,
			Primary: board.Primary(),
		})
	}

	snapshot := snapshotFrom(board, series)
	if e.snapshots != nil {
		if err := e.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			return err
		}
	}
	if e.history != nil {
		if err := e.history.AppendSnapshot(ctx, snapshot); err != nil {
			return err
		}
	}

	e.checkMoveAlert(board, series)
	return nil
}

// snapshotFrom takes the most-recent-row view of the series: the last
// position of every column, absence preserved.
func snapshotFrom(board Board, series core.Series) core.Snapshot {
	snapshot := core.Snapshot{
		Board: board.Name(),
		Label: series.LastLabel(),
		Taken: time.Now(),
		Value: make(map[string]core.Value),
	}
	if series.Len() == 0 {
		return snapshot
	}
	for _, name := range series.ColumnNames() {
		snapshot.Value[name] = series.Column(name).Last(0)
	}
	return snapshot
}

// checkMoveAlert notifies when the latest period-over-period change of
// the primary column exceeds the configured threshold.
func (e *Engine) checkMoveAlert(board Board, series core.Series) {
	if e.notifier == nil || e.moveAlertPct <= 0 {
		return
	}

	deltaPct := series.Column(board.Primary() + "_delta_pct")
	if deltaPct.Len() == 0 {
		return
	}
	last := deltaPct.Last(0)
	if !last.Valid || math.Abs(last.Float64) < e.moveAlertPct {
		return
	}

	e.notifier.Notify(fmt.Sprintf(
		"%s: %s moved %.2f%% at %s",
		board.Title(), board.Primary(), last.Float64*100, series.LastLabel(),
	))
}

// Run performs an initial refresh and then refreshes on the given
// interval until the context is canceled.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	if err := e.Refresh(ctx); err != nil {
		e.log.WithError(err).Warn("initial refresh incomplete")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := e.Refresh(ctx); err != nil {
				e.log.WithError(err).Warn("refresh incomplete")
			}
		}
	}
}

// Result returns the last computed series for a board.
func (e *Engine) Result(board string) (core.Series, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	series, ok := e.results[board]
	return series, ok
}

// Summary prints the latest snapshot of every board plus the
// distribution of currency mid moves to stdout.
func (e *Engine) Summary() {
	buffer := bytes.NewBuffer(nil)
	table := tablewriter.NewWriter(buffer)
	table.SetHeader([]string{"Board", "Last", "Metric", "Value"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
	})

	for _, board := range e.boards {
		series, ok := e.Result(board.Name())
		if !ok || series.Len() == 0 {
			table.Append([]string{board.Name(), core.NoData, "", ""})
			continue
		}
		for _, name := range series.ColumnNames() {
			table.Append([]string{
				board.Name(),
				series.LastLabel(),
				name,
				series.Column(name).Last(0).Display(),
			})
		}
	}
	table.Render()
	fmt.Println(buffer.String())

	if series, ok := e.Result("currency"); ok {
		moves := series.Column("mid_delta_pct").Defined()
		if len(moves) > 0 {
			percents := make([]float64, len(moves))
			for i, move := range moves {
				percents[i] = move * 100
			}
			fmt.Println("------ MID MOVE DISTRIBUTION (%) -------")
			hist := histogram.Hist(15, percents)
			if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(10)); err != nil {
				e.log.WithError(err).Warn("failed to print histogram")
			}
			fmt.Println()
		}
	}
}
