package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_Display(t *testing.T) {
	require.Equal(t, "6.93", Num(6.93).Display())
	require.Equal(t, NoData, None.Display(), "absent values never display as zero")
}

func TestValue_JSONNullIsAbsence(t *testing.T) {
	content, err := json.Marshal(Column{Num(6.93), None})
	require.NoError(t, err)
	require.JSONEq(t, `[6.93, null]`, string(content))

	var col Column
	require.NoError(t, json.Unmarshal(content, &col))
	require.Equal(t, Num(6.93), col[0])
	require.False(t, col[1].Valid)
}

func TestColumn_Last(t *testing.T) {
	col := Column{Num(1), None, Num(3)}
	require.Equal(t, Num(3), col.Last(0))
	require.False(t, col.Last(1).Valid)
	require.Equal(t, []float64{1, 3}, col.Defined())
	require.Len(t, col.LastValues(2), 2)
	require.Len(t, col.LastValues(10), 3)
}
