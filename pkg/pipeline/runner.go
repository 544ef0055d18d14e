package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeblock/pkg/chart"
)

// Runner executes pipeline stages with logging.
//
// The Runner is stateless apart from the logger - it stores no results
// between runs, matching the tool's one-shot batch model.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete parse → layout → render pipeline on the
// input file. The context is checked between stages so an interrupt
// stops before expensive rendering starts.
func (r *Runner) Execute(ctx context.Context, input string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	opts.Logger = r.Logger

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	intervals, err := ParseFile(input, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.Rows = len(intervals)
	result.Stats.ParseTime = time.Since(parseStart)

	r.Logger.Info("parsed intervals",
		"rows", len(intervals),
		"duration", result.Stats.ParseTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	layout := ComputeLayout(intervals, opts)
	result.Layout = layout
	result.Stats.Buckets = countBuckets(layout)
	result.Stats.Slots = layout.MaxSlot() + 1
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"blocks", len(layout.Blocks),
		"buckets", result.Stats.Buckets,
		"slots", result.Stats.Slots,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(layout, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// countBuckets returns the number of distinct bucket keys in the layout.
func countBuckets(l chart.Layout) int {
	seen := make(map[chart.BucketKey]struct{}, len(l.Blocks))
	for _, b := range l.Blocks {
		seen[b.Bucket] = struct{}{}
	}
	return len(seen)
}
