package plot

import "github.com/nicoortuno/econtrack/core"

// Annotation marks one point of a rendered series for overlay labeling.
type Annotation struct {
	Index     int     `json:"index"`
	Value     float64 `json:"value"`
	Placement string  `json:"placement"`
}

// Annotations holds the extremum and latest-point marks of a bounded
// window. A nil mark means the caller must render no annotation, not a
// default mark at position zero.
type Annotations struct {
	Min  *Annotation `json:"min,omitempty"`
	Max  *Annotation `json:"max,omitempty"`
	Last *Annotation `json:"last,omitempty"`
}

// Annotate scans a bounded window of a numeric sequence for the minimum,
// maximum and last defined values. Positions holding no value are
// excluded from the scan entirely; ties break on first occurrence. A
// window with zero defined values yields no marks at all.
func Annotate(values core.Column) Annotations {
	var out Annotations
	for i, v := range values {
		if !v.Valid {
			continue
		}

		if out.Min == nil || v.Float64 < out.Min.Value {
			out.Min = &Annotation{Index: i, Value: v.Float64, Placement: "bottom"}
		}
		if out.Max == nil || v.Float64 > out.Max.Value {
			out.Max = &Annotation{Index: i, Value: v.Float64, Placement: "top"}
		}
		out.Last = &Annotation{Index: i, Value: v.Float64, Placement: "right"}
	}
	return out
}
