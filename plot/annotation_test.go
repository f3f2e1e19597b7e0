package plot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicoortuno/econtrack/core"
)

func TestAnnotate(t *testing.T) {
	marks := Annotate(core.Column{core.None, core.Num(3), core.None, core.Num(1), core.Num(5)})

	require.NotNil(t, marks.Min)
	require.Equal(t, 3, marks.Min.Index)
	require.Equal(t, 1.0, marks.Min.Value)
	require.Equal(t, "bottom", marks.Min.Placement)

	require.NotNil(t, marks.Max)
	require.Equal(t, 4, marks.Max.Index)
	require.Equal(t, 5.0, marks.Max.Value)
	require.Equal(t, "top", marks.Max.Placement)

	require.NotNil(t, marks.Last)
	require.Equal(t, 4, marks.Last.Index)
	require.Equal(t, 5.0, marks.Last.Value)
	require.Equal(t, "right", marks.Last.Placement)
}

func TestAnnotate_TiesKeepFirstOccurrence(t *testing.T) {
	marks := Annotate(core.Column{core.Num(2), core.Num(2), core.Num(2)})

	require.Equal(t, 0, marks.Min.Index)
	require.Equal(t, 0, marks.Max.Index)
	require.Equal(t, 2, marks.Last.Index, "latest mark tracks the last defined position")
}

func TestAnnotate_GapsAreExcluded(t *testing.T) {
	marks := Annotate(core.Column{core.Num(4), core.None})

	require.Equal(t, 0, marks.Last.Index, "a trailing gap is not the latest point")
}

func TestAnnotate_NoDefinedValues(t *testing.T) {
	marks := Annotate(core.Column{core.None, core.None})

	require.Nil(t, marks.Min)
	require.Nil(t, marks.Max)
	require.Nil(t, marks.Last)
}
