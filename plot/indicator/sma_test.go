package indicator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicoortuno/econtrack/core"
)

func TestSMA_Load(t *testing.T) {
	overlay := SMA(2, "#ebcb8b")
	require.Equal(t, "SMA(2)", overlay.Name())
	require.Equal(t, "#ebcb8b", overlay.Color())

	values := core.Column{core.Num(2), core.None, core.Num(4), core.Num(6)}
	out, ok := overlay.Load(values)
	require.True(t, ok)
	require.Len(t, out, len(values))

	require.False(t, out[0].Valid, "warm-up positions stay absent")
	require.False(t, out[1].Valid, "gaps stay gaps")
	require.InDelta(t, 3, out[2].Float64, 1e-9)
	require.InDelta(t, 5, out[3].Float64, 1e-9)
}

func TestSMA_Load_NotEnoughDefinedValues(t *testing.T) {
	overlay := SMA(3, "#ebcb8b")

	_, ok := overlay.Load(core.Column{core.Num(1), core.None, core.Num(2)})
	require.False(t, ok)
}
