// Package metric computes derived economic quantities from aligned
// primary values. Every function follows the absorbing-null rule: if any
// required input is absent, the result is absent, never zero and never a
// previous value carried forward.
package metric

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/nicoortuno/econtrack/core"
)

// Mid is the midpoint of the best bid and best ask quotes.
func Mid(bestBid, bestAsk core.Value) core.Value {
	if !bestBid.Valid || !bestAsk.Valid {
		return core.None
	}
	return core.Num((bestBid.Float64 + bestAsk.Float64) / 2)
}

// SpreadPct is the gap between best ask and best bid, normalized by the
// midpoint. Absent when either quote is absent or the midpoint is zero.
func SpreadPct(bestBid, bestAsk core.Value) core.Value {
	mid := Mid(bestBid, bestAsk)
	if !mid.Valid || mid.Float64 == 0 {
		return core.None
	}
	return core.Num((bestAsk.Float64 - bestBid.Float64) / mid.Float64)
}

// EffectiveSpreadPct is the buy/sell page median gap normalized by the
// midpoint.
func EffectiveSpreadPct(buyMedian, sellMedian, mid core.Value) core.Value {
	if !buyMedian.Valid || !sellMedian.Valid || !mid.Valid || mid.Float64 == 0 {
		return core.None
	}
	return core.Num((buyMedian.Float64 - sellMedian.Float64) / mid.Float64)
}

// DepthImbalance is the normalized difference between buy-side and
// sell-side quote counts. Undefined when the denominator is zero.
func DepthImbalance(buyCount, sellCount core.Value) core.Value {
	if !buyCount.Valid || !sellCount.Valid {
		return core.None
	}
	total := buyCount.Float64 + sellCount.Float64
	if total == 0 {
		return core.None
	}
	return core.Num((buyCount.Float64 - sellCount.Float64) / total)
}

// TradeBalance is exports FOB minus imports FOB adjusted. The two source
// tables are independent, so inputs must already be date-key aligned.
func TradeBalance(exportsFOB, importsFOBAdjusted core.Value) core.Value {
	if !exportsFOB.Valid || !importsFOBAdjusted.Valid {
		return core.None
	}
	return core.Num(exportsFOB.Float64 - importsFOBAdjusted.Float64)
}

// DeltaAbs computes period-over-period absolute change. Position 0 has no
// predecessor and is always absent.
func DeltaAbs(values core.Column) core.Column {
	out := make(core.Column, len(values))
	for i := 1; i < len(values); i++ {
		prev, cur := values[i-1], values[i]
		if !prev.Valid || !cur.Valid {
			continue
		}
		out[i] = core.Num(cur.Float64 - prev.Float64)
	}
	return out
}

// DeltaPct computes period-over-period relative change. Undefined when
// the predecessor is absent or zero.
func DeltaPct(values core.Column) core.Column {
	out := make(core.Column, len(values))
	for i := 1; i < len(values); i++ {
		prev, cur := values[i-1], values[i]
		if !prev.Valid || !cur.Valid || prev.Float64 == 0 {
			continue
		}
		out[i] = core.Num((cur.Float64 - prev.Float64) / prev.Float64)
	}
	return out
}

// Median returns the median of the values, absent for an empty input.
func Median(values []float64) core.Value {
	if len(values) == 0 {
		return core.None
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return core.Num(sorted[n/2])
	}
	return core.Num(stat.Mean(sorted[n/2-1:n/2+1], nil))
}

// MidColumn applies Mid position-wise over two parallel columns.
func MidColumn(bestBid, bestAsk core.Column) core.Column {
	return combine(bestBid, bestAsk, Mid)
}

// SpreadPctColumn applies SpreadPct position-wise.
func SpreadPctColumn(bestBid, bestAsk core.Column) core.Column {
	return combine(bestBid, bestAsk, SpreadPct)
}

// DepthImbalanceColumn applies DepthImbalance position-wise.
func DepthImbalanceColumn(buyCount, sellCount core.Column) core.Column {
	return combine(buyCount, sellCount, DepthImbalance)
}

// TradeBalanceColumn applies TradeBalance position-wise over aligned
// exports and imports columns.
func TradeBalanceColumn(exportsFOB, importsFOBAdjusted core.Column) core.Column {
	return combine(exportsFOB, importsFOBAdjusted, TradeBalance)
}

// EffectiveSpreadPctColumn applies EffectiveSpreadPct position-wise.
func EffectiveSpreadPctColumn(buyMedian, sellMedian, mid core.Column) core.Column {
	if len(buyMedian) != len(sellMedian) || len(buyMedian) != len(mid) {
		panic(fmt.Errorf("%w: %d/%d/%d", core.ErrColumnLength, len(buyMedian), len(sellMedian), len(mid)))
	}
	out := make(core.Column, len(buyMedian))
	for i := range buyMedian {
		out[i] = EffectiveSpreadPct(buyMedian[i], sellMedian[i], mid[i])
	}
	return out
}

func combine(a, b core.Column, f func(core.Value, core.Value) core.Value) core.Column {
	if len(a) != len(b) {
		panic(fmt.Errorf("%w: %d vs %d", core.ErrColumnLength, len(a), len(b)))
	}
	out := make(core.Column, len(a))
	for i := range a {
		out[i] = f(a[i], b[i])
	}
	return out
}
