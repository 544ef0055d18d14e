package pipeline

import "github.com/matzehuels/timeblock/pkg/chart"

// ComputeLayout bins the intervals and stacks each bucket.
// The number of alternating colors follows the configured palette.
func ComputeLayout(intervals []chart.Interval, opts Options) chart.Layout {
	opts.SetDefaults()
	return chart.Build(intervals, opts.binSeconds(), opts.NumColors())
}
