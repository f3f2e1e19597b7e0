package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"

	"github.com/nicoortuno/econtrack/core"
	"github.com/nicoortuno/econtrack/plot"
)

// SMA creates a Simple Moving Average overlay for a board's primary
// column. The average runs over defined values only; positions holding
// no value stay gaps in the overlay as well.
func SMA(period int, color string) plot.Overlay {
	return &sma{period: period, color: color}
}

type sma struct {
	period int
	color  string
}

// Name returns the formatted name of the overlay
func (s sma) Name() string { return fmt.Sprintf("SMA(%d)", s.period) }

// Color returns the line color used by the renderer
func (s sma) Color() string { return s.color }

// Load computes the overlay values from the primary column. ok is false
// when the window holds fewer defined values than the period.
func (s sma) Load(values core.Column) (core.Column, bool) {
	defined := values.Defined()
	if len(defined) < s.period {
		return nil, false
	}

	averaged := talib.Sma(defined, s.period)

	// Scatter the compacted results back onto the defined positions,
	// keeping the first period-1 averages (zero-filled by talib) absent.
	out := make(core.Column, len(values))
	cursor := 0
	for i, v := range values {
		if !v.Valid {
			continue
		}
		if cursor >= s.period-1 {
			out[i] = core.Num(averaged[cursor])
		}
		cursor++
	}
	return out, true
}
