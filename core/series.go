package core

import (
	"fmt"
	"strconv"
	"time"
)

// Field names one logical column of a series together with its candidate
// column names, in priority order. Candidate lists are the compatibility
// contract with past and future file revisions of a source.
type Field struct {
	Name       string
	Candidates []string
}

// Series is a positional time series: one label per position plus one or
// more named columns of optional numeric values, all the same length.
// A length mismatch is a programmer error, not a recoverable condition.
type Series struct {
	Labels []string

	names []string
	cols  map[string]Column
}

// NewSeries creates an empty series with the given labels.
func NewSeries(labels []string) Series {
	return Series{
		Labels: labels,
		cols:   make(map[string]Column),
	}
}

// BuildSeries walks the row sequence once and builds positionally parallel
// arrays. Row order is preserved as given by the source; rows lacking every
// candidate of the date field cannot be positioned and are skipped.
func BuildSeries(rows []Row, dateField Field, fields ...Field) Series {
	labels := make([]string, 0, len(rows))
	cols := make([]Column, len(fields))
	for i := range cols {
		cols[i] = make(Column, 0, len(rows))
	}

	for _, row := range rows {
		dateCell, ok := row.Resolve(dateField.Candidates...)
		if !ok {
			continue
		}
		labels = append(labels, labelString(dateCell))
		for i, field := range fields {
			cols[i] = append(cols[i], row.ResolveNumeric(field.Candidates...))
		}
	}

	series := NewSeries(labels)
	for i, field := range fields {
		series.AddColumn(field.Name, cols[i])
	}
	return series
}

// labelString renders a raw date cell as an axis label.
func labelString(cell any) string {
	switch c := cell.(type) {
	case string:
		return c
	case time.Time:
		return c.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	default:
		return fmt.Sprint(c)
	}
}

// Len returns the number of positions in the series.
func (s Series) Len() int {
	return len(s.Labels)
}

// AddColumn attaches a named column. The column must match the label
// count and the name must be unused; violations are contract defects.
func (s *Series) AddColumn(name string, col Column) {
	if len(col) != len(s.Labels) {
		panic(fmt.Errorf("%w: %s has %d values for %d labels", ErrColumnLength, name, len(col), len(s.Labels)))
	}
	if _, exists := s.cols[name]; exists {
		panic(fmt.Errorf("%w: %s", ErrDuplicateColumn, name))
	}
	if s.cols == nil {
		s.cols = make(map[string]Column)
	}
	s.names = append(s.names, name)
	s.cols[name] = col
}

// Column returns the named column, or nil when absent.
func (s Series) Column(name string) Column {
	return s.cols[name]
}

// ColumnNames returns the column names in insertion order.
func (s Series) ColumnNames() []string {
	return s.names
}

// Select builds a new series from the given positions, reindexing every
// parallel array together so the series stays consistent.
func (s Series) Select(positions []int) Series {
	labels := make([]string, len(positions))
	for i, p := range positions {
		labels[i] = s.Labels[p]
	}

	out := NewSeries(labels)
	for _, name := range s.names {
		src := s.cols[name]
		col := make(Column, len(positions))
		for i, p := range positions {
			col[i] = src[p]
		}
		out.AddColumn(name, col)
	}
	return out
}

// Sample returns the last 'positions' entries of the series.
func (s Series) Sample(positions int) Series {
	start := s.Len() - positions
	if start <= 0 {
		return s
	}

	out := NewSeries(s.Labels[start:])
	for _, name := range s.names {
		out.AddColumn(name, s.cols[name].LastValues(positions))
	}
	return out
}

// LastInstant returns the instant of the last label that parses as a
// date, scanning backwards. ok is false when no label parses.
func (s Series) LastInstant() (time.Time, bool) {
	for i := len(s.Labels) - 1; i >= 0; i-- {
		if t, ok := ToInstant(s.Labels[i]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// LastLabel returns the final label, or "" for an empty series.
func (s Series) LastLabel() string {
	if len(s.Labels) == 0 {
		return ""
	}
	return s.Labels[len(s.Labels)-1]
}
