package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// Window is a relative time range anchored at the latest date of the
// series it slices, not at wall-clock time. This keeps windowing
// deterministic regardless of when it runs.
type Window string

const (
	Window1D  Window = "1D"
	Window1W  Window = "1W"
	Window1M  Window = "1M"
	WindowYTD Window = "YTD"
	Window5Y  Window = "5Y"
	Window10Y Window = "10Y"
	WindowAll Window = "ALL"
)

// rollingSpans maps the rolling tokens to their fixed spans.
var rollingSpans = map[Window]string{
	Window1D: "1d",
	Window1W: "1w",
	Window1M: "30d",
}

// ParseWindow validates a window token from user input.
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToUpper(strings.TrimSpace(s)))
	switch w {
	case Window1D, Window1W, Window1M, WindowYTD, Window5Y, Window10Y, WindowAll:
		return w, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWindow, s)
}

// Start computes the absolute start boundary for the window relative to
// the anchor instant.
func (w Window) Start(anchor time.Time) time.Time {
	switch w {
	case WindowYTD:
		return time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
	case Window5Y:
		return anchor.AddDate(-5, 0, 0)
	case Window10Y:
		return anchor.AddDate(-10, 0, 0)
	}

	span, err := str2duration.ParseDuration(rollingSpans[w])
	if err != nil {
		// Unknown tokens are rejected by ParseWindow; reaching this is a
		// contract defect.
		panic(fmt.Errorf("%w: %q", ErrInvalidWindow, w))
	}
	return anchor.Add(-span)
}

// Slice filters the series to [start boundary, +inf), with the boundary
// anchored at the last parseable label of the series itself. ALL is the
// identity filter. A series whose labels never parse as dates is returned
// unchanged: it is still renderable as "no data", not a fatal condition.
func (s Series) Slice(w Window) Series {
	if w == WindowAll {
		return s
	}

	anchor, ok := s.LastInstant()
	if !ok {
		return s
	}
	start := w.Start(anchor)

	keep := make([]int, 0, s.Len())
	for i, label := range s.Labels {
		t, ok := ToInstant(label)
		if !ok {
			continue
		}
		if !t.Before(start) {
			keep = append(keep, i)
		}
	}
	return s.Select(keep)
}
