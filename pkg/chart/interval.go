package chart

// Interval is one input record: a time span in Unix epoch seconds.
// Intervals are immutable once created; End >= Begin always holds for
// intervals produced by the pipeline (zero-length spans represent
// instantaneous events). Label is pass-through display metadata and is
// never interpreted by the layout.
type Interval struct {
	Begin int64  `json:"begin"`
	End   int64  `json:"end"`
	Label string `json:"label,omitempty"`
}

// Duration returns the span length in seconds.
func (iv Interval) Duration() int64 { return iv.End - iv.Begin }

// Overlaps reports whether the two spans share any time. Touching
// endpoints (one ends exactly where the other begins) do not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Begin < o.End && o.Begin < iv.End
}

// Touches reports whether o starts at or before iv's end, i.e. the two
// blocks would be drawn back to back or overlapping. This is the
// adjacency test driving color alternation.
func (iv Interval) Touches(o Interval) bool {
	return o.Begin <= iv.End
}
