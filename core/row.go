package core

import (
	"strconv"
	"strings"
	"time"
)

// Row is a raw record as produced by a data source: column name to raw
// cell (string, number, or absent key). Rows are never mutated by the
// engine.
type Row map[string]any

// epochMillisThreshold splits all-digit timestamps between epoch seconds
// and epoch milliseconds.
const epochMillisThreshold = 1_000_000_000_000

// Resolve returns the value of the first candidate name present as a key
// in the row, regardless of its value, empty string included. Candidate
// order encodes source precedence across file revisions, not an error
// signal; total absence is data, not a failure.
func (r Row) Resolve(candidates ...string) (any, bool) {
	for _, name := range candidates {
		if cell, ok := r[name]; ok {
			return cell, true
		}
	}
	return nil, false
}

// ResolveNumeric combines Resolve and ToNumeric.
func (r Row) ResolveNumeric(candidates ...string) Value {
	cell, ok := r.Resolve(candidates...)
	if !ok {
		return None
	}
	return ToNumeric(cell)
}

// ToNumeric converts a raw cell to an optional numeric value. Absence,
// empty string and parse failures all yield the absent value; sign and
// decimal precision are preserved as given.
func ToNumeric(cell any) Value {
	switch c := cell.(type) {
	case nil:
		return None
	case float64:
		return Num(c)
	case float32:
		return Num(float64(c))
	case int:
		return Num(float64(c))
	case int64:
		return Num(float64(c))
	case string:
		s := strings.TrimSpace(c)
		if s == "" {
			return None
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return None
		}
		return Num(f)
	default:
		return None
	}
}

// ToInstant parses the heterogeneous timestamp encodings found across
// source revisions into a single instant. Classification order: all-digit
// values are epoch seconds below 1e12 and epoch milliseconds above;
// a 19-character "2006-01-02 15:04:05" has its separator rewritten and is
// parsed as a local calendar date-time; anything else goes through the
// ISO-8601 layouts. Invalid input is data, not a programming error, so
// failure is reported as ok=false rather than an error.
func ToInstant(cell any) (time.Time, bool) {
	switch c := cell.(type) {
	case time.Time:
		return c, true
	case float64:
		return fromEpoch(int64(c)), true
	case int:
		return fromEpoch(int64(c)), true
	case int64:
		return fromEpoch(c), true
	case string:
		return parseInstant(strings.TrimSpace(c))
	default:
		return time.Time{}, false
	}
}

func fromEpoch(n int64) time.Time {
	if n >= epochMillisThreshold {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

func parseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	if isAllDigits(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(n), true
	}

	// Fixed-width "2006-01-02 15:04:05" from human-readable exports.
	if len(s) == 19 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
