package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NoData is the sentinel text used by display layers for absent values.
const NoData = "no data"

// Value is a numeric cell that may be absent. Absence propagates through
// every derived computation and is never coerced to zero, so charts can
// render gaps instead of false flat segments.
type Value struct {
	Float64 float64
	Valid   bool
}

// None is the absent value.
var None = Value{}

// Num wraps a defined numeric value.
func Num(v float64) Value {
	return Value{Float64: v, Valid: true}
}

// Display formats the value for snapshot/KPI views. Absent values render
// the no-data sentinel, never "0" or "NaN".
func (v Value) Display() string {
	if !v.Valid {
		return NoData
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

// MarshalJSON emits null for absent values so plot consumers see gaps.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float64)
}

// UnmarshalJSON accepts null as absence.
func (v *Value) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*v = None
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Num(f)
	return nil
}

// Column is an ordered sequence of optional numeric values, positionally
// aligned with the labels of the Series that owns it.
type Column []Value

// Len returns the number of positions in the column.
func (c Column) Len() int {
	return len(c)
}

// Last returns the value at a specified position from the end.
// Position 0 is the last value, 1 is the second-to-last, etc.
func (c Column) Last(position int) Value {
	return c[len(c)-1-position]
}

// LastValues returns the last 'size' positions, or the whole column when
// size exceeds its length.
func (c Column) LastValues(size int) Column {
	if l := len(c); l > size {
		return c[l-size:]
	}
	return c
}

// Defined returns the defined values in order, dropping gaps.
func (c Column) Defined() []float64 {
	out := make([]float64, 0, len(c))
	for _, v := range c {
		if v.Valid {
			out = append(out, v.Float64)
		}
	}
	return out
}
