package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRow_Resolve_FirstCandidateWins(t *testing.T) {
	row := Row{"RIN": 5, "Reservas Internacionales Netas": 9}

	cell, ok := row.Resolve("Reservas Internacionales Netas", "RIN")
	require.True(t, ok)
	require.Equal(t, 9, cell)

	cell, ok = row.Resolve("RIN", "Reservas Internacionales Netas")
	require.True(t, ok)
	require.Equal(t, 5, cell)
}

func TestRow_Resolve_EmptyStringIsPresent(t *testing.T) {
	row := Row{"ipc_base2016": "", "ipc_base2007": "104.2"}

	cell, ok := row.Resolve("ipc_base2016", "ipc_base2007")
	require.True(t, ok)
	require.Equal(t, "", cell)
}

func TestRow_Resolve_TotalAbsence(t *testing.T) {
	row := Row{"other": 1}

	_, ok := row.Resolve("a", "b")
	require.False(t, ok)
	require.False(t, row.ResolveNumeric("a", "b").Valid)
}

func TestToNumeric(t *testing.T) {
	require.Equal(t, Num(6.96), ToNumeric("6.96"))
	require.Equal(t, Num(-0.031), ToNumeric("-0.031"))
	require.Equal(t, Num(42), ToNumeric(42))
	require.Equal(t, Num(7.2), ToNumeric(7.2))

	require.False(t, ToNumeric(nil).Valid)
	require.False(t, ToNumeric("").Valid)
	require.False(t, ToNumeric("  ").Valid)
	require.False(t, ToNumeric("n/a").Valid)
	require.False(t, ToNumeric([]string{"1"}).Valid)
}

func TestToInstant_RoundTrip(t *testing.T) {
	spaced, ok := ToInstant("2024-03-01 13:00:00")
	require.True(t, ok)

	iso, ok := ToInstant("2024-03-01T13:00:00")
	require.True(t, ok)

	require.True(t, spaced.Equal(iso))
}

func TestToInstant_EpochThreshold(t *testing.T) {
	seconds, ok := ToInstant("1700000000")
	require.True(t, ok)
	require.Equal(t, 2023, seconds.Year())

	millis, ok := ToInstant("1700000000000")
	require.True(t, ok)
	require.Equal(t, 2023, millis.Year())

	require.True(t, seconds.Equal(millis))
}

func TestToInstant_DateOnly(t *testing.T) {
	day, ok := ToInstant("2023-06-15")
	require.True(t, ok)
	require.Equal(t, 15, day.Day())
}

func TestToInstant_Invalid(t *testing.T) {
	_, ok := ToInstant("not a date")
	require.False(t, ok)

	_, ok = ToInstant("")
	require.False(t, ok)

	_, ok = ToInstant(nil)
	require.False(t, ok)
}
