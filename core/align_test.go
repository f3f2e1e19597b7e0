package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seriesOf(name string, labels []string, values []Value) Series {
	s := NewSeries(labels)
	s.AddColumn(name, values)
	return s
}

func TestAlign_LeftJoin(t *testing.T) {
	primary := seriesOf("exports", []string{"d1", "d2", "d3"}, Column{Num(10), Num(20), Num(30)})
	secondary := seriesOf("imports", []string{"d1", "d3"}, Column{Num(1), Num(3)})

	aligned := Align(LeftJoin, primary, secondary)

	require.Equal(t, []string{"d1", "d2", "d3"}, aligned.Labels)
	require.Equal(t, Column{Num(10), Num(20), Num(30)}, aligned.Column("exports"))

	imports := aligned.Column("imports")
	require.Equal(t, Num(1), imports[0])
	require.False(t, imports[1].Valid, "missing counterpart is no value, not zero")
	require.Equal(t, Num(3), imports[2])
}

func TestAlign_LeftJoin_SecondaryOnlyLabelsDropped(t *testing.T) {
	primary := seriesOf("a", []string{"2024-01"}, Column{Num(1)})
	secondary := seriesOf("b", []string{"2024-01", "2024-02"}, Column{Num(5), Num(6)})

	aligned := Align(LeftJoin, primary, secondary)
	require.Equal(t, []string{"2024-01"}, aligned.Labels)
}

func TestAlign_UnionJoin(t *testing.T) {
	primary := seriesOf("a", []string{"2024-02", "2024-03"}, Column{Num(2), Num(3)})
	secondary := seriesOf("b", []string{"2024-01", "2024-03"}, Column{Num(10), Num(30)})

	aligned := Align(UnionJoin, primary, secondary)

	require.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, aligned.Labels)
	require.False(t, aligned.Column("a")[0].Valid)
	require.Equal(t, Num(2), aligned.Column("a")[1])
	require.Equal(t, Num(10), aligned.Column("b")[0])
	require.False(t, aligned.Column("b")[1].Valid)
	require.Equal(t, Num(30), aligned.Column("b")[2])
}

func TestAlign_ExactLabelEqualityOnly(t *testing.T) {
	primary := seriesOf("a", []string{"2024-01-01"}, Column{Num(1)})
	secondary := seriesOf("b", []string{"2024-01-02"}, Column{Num(2)})

	aligned := Align(LeftJoin, primary, secondary)
	require.False(t, aligned.Column("b")[0].Valid, "no fuzzy date matching")
}
