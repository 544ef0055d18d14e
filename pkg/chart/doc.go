// Package chart contains the core data model for timeblock: intervals,
// time buckets, and the greedy stacking layout that assigns each interval
// a vertical slot and an alternating color index.
//
// The package is pure computation over Unix epoch seconds. Reading input
// files is pkg/fsdb's job; drawing is pkg/render's. The pipeline is:
//
//	intervals := ...                         // from fsdb rows
//	layout := chart.Build(intervals, 86400, 2)
//	// layout.Blocks carries (bucket, slot, color) per interval
//
// Layouts serialize to JSON so the layout and render stages can run as
// separate commands.
package chart
