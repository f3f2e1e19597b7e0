package core

import (
	"sort"

	"github.com/StudioSol/set"
)

// JoinPolicy selects the label axis of an aligned series.
type JoinPolicy int

const (
	// LeftJoin keeps every label of the primary series and fills absent
	// counterpart values. Upstream release cadences differ (an imports
	// table may lag exports by one reporting period); interpolating the
	// gap would misstate the figures, so the position holds no value.
	LeftJoin JoinPolicy = iota

	// UnionJoin keeps every label seen in any input, re-sorted, with
	// absent values wherever a source has no row for the label.
	UnionJoin
)

// Align joins series that share a date-valued label key but originate
// from different tables with different row sets and cadences. Matching is
// exact label equality; there is no fuzzy date matching and no
// interpolation. Column names must be distinct across inputs.
func Align(policy JoinPolicy, primary Series, others ...Series) Series {
	labels := alignedLabels(policy, primary, others)
	out := NewSeries(labels)

	sources := append([]Series{primary}, others...)
	for _, src := range sources {
		index := make(map[string]int, src.Len())
		for i, label := range src.Labels {
			// First occurrence wins on duplicate labels.
			if _, seen := index[label]; !seen {
				index[label] = i
			}
		}

		for _, name := range src.ColumnNames() {
			srcCol := src.Column(name)
			col := make(Column, len(labels))
			for i, label := range labels {
				if p, ok := index[label]; ok {
					col[i] = srcCol[p]
				}
			}
			out.AddColumn(name, col)
		}
	}
	return out
}

func alignedLabels(policy JoinPolicy, primary Series, others []Series) []string {
	if policy == LeftJoin {
		return primary.Labels
	}

	union := set.NewLinkedHashSetString()
	union.Add(primary.Labels...)
	for _, other := range others {
		union.Add(other.Labels...)
	}

	labels := make([]string, 0, union.Length())
	for label := range union.Iter() {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
