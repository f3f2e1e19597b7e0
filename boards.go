package econtrack

import (
	"fmt"

	"github.com/nicoortuno/econtrack/core"
	"github.com/nicoortuno/econtrack/metric"
)

// Board turns the raw row batches of its sources into one derived,
// chartable series. Candidate-name lists inside each board encode the
// column drift observed across source file revisions.
type Board interface {
	// Name is the board identifier used for storage keys and URLs.
	Name() string
	// Title is the human-readable panel caption.
	Title() string
	// Sources lists the tables the board consumes, one batch each.
	Sources() []core.Source
	// Build computes the board series from the batches, in source order.
	// A nil batch means that source failed upstream; dependent columns
	// degrade to "no value" instead of failing the board.
	Build(batches ...[]core.Row) (core.Series, error)
	// Primary names the column that receives annotations and overlays.
	Primary() string
}

// ---------------------
// Currency board
// ---------------------

// CurrencyBoard charts the parallel-market exchange rate from P2P
// order-book snapshots: midpoint, spreads, depth imbalance and
// period-over-period movement.
type CurrencyBoard struct {
	source core.Source
}

func NewCurrencyBoard(source core.Source) *CurrencyBoard {
	return &CurrencyBoard{source: source}
}

func (b *CurrencyBoard) Name() string           { return "currency" }
func (b *CurrencyBoard) Title() string          { return "Parallel exchange rate (BOB/USDT)" }
func (b *CurrencyBoard) Primary() string        { return "mid" }
func (b *CurrencyBoard) Sources() []core.Source { return []core.Source{b.source} }

func (b *CurrencyBoard) Build(batches ...[]core.Row) (core.Series, error) {
	if len(batches) != 1 {
		return core.Series{}, fmt.Errorf("currency board expects 1 batch, got %d", len(batches))
	}

	series := core.BuildSeries(batches[0],
		core.Field{Name: "ts", Candidates: []string{"ts", "timestamp", "fetched_at"}},
		core.Field{Name: "best_bid", Candidates: []string{"best_bid", "buy_max"}},
		core.Field{Name: "best_ask", Candidates: []string{"best_ask", "sell_min"}},
		core.Field{Name: "buy_median", Candidates: []string{"buy_median", "buy_page_median"}},
		core.Field{Name: "sell_median", Candidates: []string{"sell_median", "sell_page_median"}},
		core.Field{Name: "buy_count", Candidates: []string{"buy_count", "buy_page_count"}},
		core.Field{Name: "sell_count", Candidates: []string{"sell_count", "sell_page_count"}},
	)

	mid := metric.MidColumn(series.Column("best_bid"), series.Column("best_ask"))
	series.AddColumn("mid", mid)
	series.AddColumn("spread_pct", metric.SpreadPctColumn(series.Column("best_bid"), series.Column("best_ask")))
	series.AddColumn("effective_spread_pct",
		metric.EffectiveSpreadPctColumn(series.Column("buy_median"), series.Column("sell_median"), mid))
	series.AddColumn("depth_imbalance",
		metric.DepthImbalanceColumn(series.Column("buy_count"), series.Column("sell_count")))
	series.AddColumn("mid_delta", metric.DeltaAbs(mid))
	series.AddColumn("mid_delta_pct", metric.DeltaPct(mid))
	return series, nil
}

// ---------------------
// Inflation board
// ---------------------

// InflationBoard charts the monthly CPI level and inflation rates.
// The index level prefers the base-2016 series and silently falls back
// to base-2007 per row; the precedence encodes a real index-rebasing
// discontinuity in the source, so it must not be reordered.
type InflationBoard struct {
	source core.Source
}

func NewInflationBoard(source core.Source) *InflationBoard {
	return &InflationBoard{source: source}
}

func (b *InflationBoard) Name() string           { return "inflation" }
func (b *InflationBoard) Title() string          { return "Inflation (CPI)" }
func (b *InflationBoard) Primary() string        { return "infl_yoy" }
func (b *InflationBoard) Sources() []core.Source { return []core.Source{b.source} }

func (b *InflationBoard) Build(batches ...[]core.Row) (core.Series, error) {
	if len(batches) != 1 {
		return core.Series{}, fmt.Errorf("inflation board expects 1 batch, got %d", len(batches))
	}

	series := core.BuildSeries(batches[0],
		core.Field{Name: "date", Candidates: []string{"date", "fecha", "mes"}},
		core.Field{Name: "ipc", Candidates: []string{"ipc_base2016", "ipc_base2007"}},
		core.Field{Name: "infl_mom", Candidates: []string{"infl_mom", "mensual"}},
		core.Field{Name: "infl_ytd", Candidates: []string{"infl_ytd", "acumulada"}},
		core.Field{Name: "infl_yoy", Candidates: []string{"infl_yoy", "anual", "interanual"}},
	)

	series.AddColumn("ipc_delta", metric.DeltaAbs(series.Column("ipc")))
	series.AddColumn("ipc_delta_pct", metric.DeltaPct(series.Column("ipc")))
	return series, nil
}

// ---------------------
// Monetary board
// ---------------------

// MonetaryBoard charts the monetary base and net international reserves.
type MonetaryBoard struct {
	source core.Source
}

func NewMonetaryBoard(source core.Source) *MonetaryBoard {
	return &MonetaryBoard{source: source}
}

func (b *MonetaryBoard) Name() string           { return "monetary" }
func (b *MonetaryBoard) Title() string          { return "Monetary base" }
func (b *MonetaryBoard) Primary() string        { return "base" }
func (b *MonetaryBoard) Sources() []core.Source { return []core.Source{b.source} }

func (b *MonetaryBoard) Build(batches ...[]core.Row) (core.Series, error) {
	if len(batches) != 1 {
		return core.Series{}, fmt.Errorf("monetary board expects 1 batch, got %d", len(batches))
	}

	series := core.BuildSeries(batches[0],
		core.Field{Name: "date", Candidates: []string{"date", "fecha"}},
		core.Field{Name: "base", Candidates: []string{"Base Monetaria", "BASEMONETARIA"}},
		core.Field{Name: "reserves", Candidates: []string{
			"Reservas Internacionales Netas", "Reservas Internacionales Netas RIN", "RIN",
		}},
	)

	series.AddColumn("base_delta", metric.DeltaAbs(series.Column("base")))
	series.AddColumn("base_delta_pct", metric.DeltaPct(series.Column("base")))
	series.AddColumn("reserves_delta", metric.DeltaAbs(series.Column("reserves")))
	return series, nil
}

// ---------------------
// Trade board
// ---------------------

// TradeBoard charts the goods trade balance. Exports and imports arrive
// from independent tables with different release cadences, so the two
// series are date-key aligned on the exports axis before the balance is
// computed; a month the imports table has not published yet degrades to
// "no value" rather than a misleading zero.
type TradeBoard struct {
	exports core.Source
	imports core.Source
}

func NewTradeBoard(exports, imports core.Source) *TradeBoard {
	return &TradeBoard{exports: exports, imports: imports}
}

func (b *TradeBoard) Name() string           { return "trade" }
func (b *TradeBoard) Title() string          { return "Trade balance (FOB, M USD)" }
func (b *TradeBoard) Primary() string        { return "trade_balance" }
func (b *TradeBoard) Sources() []core.Source { return []core.Source{b.exports, b.imports} }

func (b *TradeBoard) Build(batches ...[]core.Row) (core.Series, error) {
	if len(batches) != 2 {
		return core.Series{}, fmt.Errorf("trade board expects 2 batches, got %d", len(batches))
	}

	exports := core.BuildSeries(batches[0],
		core.Field{Name: "date", Candidates: []string{"date", "fecha"}},
		core.Field{Name: "exports_fob", Candidates: []string{"FOB", "Total Declarado"}},
	)
	imports := core.BuildSeries(batches[1],
		core.Field{Name: "date", Candidates: []string{"date", "fecha"}},
		core.Field{Name: "imports_fob_adjusted", Candidates: []string{
			"TotalImportaciones_FOBAjustado_MillonesUSD", "TotalImportaciones_FOB",
		}},
	)

	aligned := core.Align(core.LeftJoin, exports, imports)
	aligned.AddColumn("trade_balance", metric.TradeBalanceColumn(
		aligned.Column("exports_fob"),
		aligned.Column("imports_fob_adjusted"),
	))
	return aligned, nil
}
