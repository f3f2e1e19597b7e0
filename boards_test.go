package econtrack

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicoortuno/econtrack/core"
)

type stubSource struct {
	name string
	rows []core.Row
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Rows(_ context.Context) ([]core.Row, error) {
	return s.rows, s.err
}

func TestCurrencyBoard_Build(t *testing.T) {
	board := NewCurrencyBoard(&stubSource{name: "p2p"})

	series, err := board.Build([]core.Row{
		{
			"ts": "2024-03-20 14:00:00", "best_bid": "6.90", "best_ask": "6.96",
			"buy_median": "6.94", "sell_median": "6.92", "buy_count": "15", "sell_count": "5",
		},
		{
			"ts": "2024-03-20 14:30:00", "buy_max": "6.92", "sell_min": "6.98",
			"buy_median": "6.96", "sell_median": "6.94", "buy_count": "10", "sell_count": "10",
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())

	// Quote columns resolve across name drift between file revisions.
	mids := series.Column("mid")
	require.InDelta(t, 6.93, mids[0].Float64, 1e-9)
	require.InDelta(t, 6.95, mids[1].Float64, 1e-9)

	deltas := series.Column("mid_delta")
	require.False(t, deltas[0].Valid)
	require.InDelta(t, 0.02, deltas[1].Float64, 1e-9)

	deltaPcts := series.Column("mid_delta_pct")
	require.False(t, deltaPcts[0].Valid)
	require.InDelta(t, 0.02/6.93, deltaPcts[1].Float64, 1e-9)

	imbalance := series.Column("depth_imbalance")
	require.InDelta(t, 0.5, imbalance[0].Float64, 1e-9)
	require.InDelta(t, 0, imbalance[1].Float64, 1e-9)
}

func TestCurrencyBoard_MissingQuoteStaysAbsent(t *testing.T) {
	board := NewCurrencyBoard(&stubSource{name: "p2p"})

	series, err := board.Build([]core.Row{
		{"ts": "2024-03-20 14:00:00", "best_bid": "6.90"},
	})
	require.NoError(t, err)

	require.False(t, series.Column("mid")[0].Valid)
	require.False(t, series.Column("spread_pct")[0].Valid)
}

func TestInflationBoard_IndexRebaseFallback(t *testing.T) {
	board := NewInflationBoard(&stubSource{name: "inflation"})

	// Rows carry whichever index base their file revision published.
	series, err := board.Build([]core.Row{
		{"fecha": "2023-01-31", "ipc_base2016": "112.4", "infl_yoy": "3.1"},
		{"fecha": "2023-02-28", "ipc_base2007": "215.1", "infl_yoy": "3.4"},
	})
	require.NoError(t, err)

	ipc := series.Column("ipc")
	require.InDelta(t, 112.4, ipc[0].Float64, 1e-9)
	require.InDelta(t, 215.1, ipc[1].Float64, 1e-9)
	require.Equal(t, "infl_yoy", board.Primary())
}

func TestMonetaryBoard_Build(t *testing.T) {
	board := NewMonetaryBoard(&stubSource{name: "monetary"})

	series, err := board.Build([]core.Row{
		{"fecha": "2023-12-31", "Base Monetaria": "100", "RIN": "1700"},
		{"fecha": "2024-01-31", "BASEMONETARIA": "104", "RIN": "1650"},
	})
	require.NoError(t, err)

	require.InDelta(t, 4, series.Column("base_delta")[1].Float64, 1e-9)
	require.InDelta(t, 0.04, series.Column("base_delta_pct")[1].Float64, 1e-9)
	require.InDelta(t, -50, series.Column("reserves_delta")[1].Float64, 1e-9)
}

func TestTradeBoard_AlignsOnExportsAxis(t *testing.T) {
	board := NewTradeBoard(&stubSource{name: "exports"}, &stubSource{name: "imports"})

	series, err := board.Build(
		[]core.Row{
			{"fecha": "2024-01-31", "FOB": "850.5"},
			{"fecha": "2024-02-29", "FOB": "910"},
		},
		[]core.Row{
			{"fecha": "2024-01-31", "TotalImportaciones_FOBAjustado_MillonesUSD": "780.25"},
		},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-01-31", "2024-02-29"}, series.Labels)

	balance := series.Column("trade_balance")
	require.InDelta(t, 70.25, balance[0].Float64, 1e-9)
	require.False(t, balance[1].Valid, "an unpublished imports month is not a zero")
}

func TestTradeBoard_MissingImportsBatch(t *testing.T) {
	board := NewTradeBoard(&stubSource{name: "exports"}, &stubSource{name: "imports"})

	series, err := board.Build(
		[]core.Row{{"fecha": "2024-01-31", "FOB": "850.5"}},
		nil,
	)
	require.NoError(t, err)

	require.InDelta(t, 850.5, series.Column("exports_fob")[0].Float64, 1e-9)
	require.False(t, series.Column("trade_balance")[0].Valid)
}

func TestBoard_WrongBatchCount(t *testing.T) {
	_, err := NewCurrencyBoard(&stubSource{name: "p2p"}).Build(nil, nil)
	require.Error(t, err)

	_, err = NewTradeBoard(&stubSource{name: "exports"}, &stubSource{name: "imports"}).Build(nil)
	require.Error(t, err)
}
