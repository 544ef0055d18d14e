package chart

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/timeblock/pkg/errors"
)

// Layout is the serializable result of binning and stacking a dataset.
// It carries everything the renderer needs: the bin size (for gridlines
// and gap insets), the palette size the colors were computed against, and
// one block per input interval.
//
// Blocks are ordered by bucket key ascending, then by begin time within
// the bucket, the same deterministic order Build produces. A layout
// round-trips through JSON via WriteLayoutFile/ReadLayoutFile so the
// layout and render stages can run as separate commands.
type Layout struct {
	BinSize   int64          `json:"bin_size"`
	NumColors int            `json:"num_colors"`
	Blocks    []StackedBlock `json:"blocks"`
}

// Build bins intervals and stacks each bucket. numColors is the palette
// length used for color alternation (minimum 2).
func Build(intervals []Interval, binSize int64, numColors int) Layout {
	if numColors < 2 {
		numColors = 2
	}
	l := Layout{
		BinSize:   binSize,
		NumColors: numColors,
		Blocks:    make([]StackedBlock, 0, len(intervals)),
	}
	for _, b := range Bucketize(intervals, binSize) {
		l.Blocks = append(l.Blocks, Stack(b, numColors)...)
	}
	return l
}

// TimeSpan returns the layout's full time extent: the start of the first
// bucket through the latest end time. Returns (0, 0) for an empty layout.
func (l Layout) TimeSpan() (min, max int64) {
	if len(l.Blocks) == 0 {
		return 0, 0
	}
	min = l.Blocks[0].Bucket.Start(l.BinSize)
	max = l.Blocks[0].End
	lastBucket := min
	for _, b := range l.Blocks {
		start := b.Bucket.Start(l.BinSize)
		if start < min {
			min = start
		}
		if start > lastBucket {
			lastBucket = start
		}
		if b.End > max {
			max = b.End
		}
	}
	// Cover the final bucket even when its blocks end early.
	if last := lastBucket + l.BinSize; last > max {
		max = last
	}
	return min, max
}

// MaxSlot returns the highest slot index in use, or -1 for an empty layout.
func (l Layout) MaxSlot() int {
	max := -1
	for _, b := range l.Blocks {
		if b.Slot > max {
			max = b.Slot
		}
	}
	return max
}

// WriteLayoutFile writes the layout as indented JSON to path.
func WriteLayoutFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// ReadLayoutFile reads a layout previously written with WriteLayoutFile.
// The loaded layout must carry a positive bin_size; the renderer's
// boundary math depends on it.
func ReadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var l Layout
	if err := json.NewDecoder(f).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if l.BinSize < 1 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput,
			"%s: bin_size must be at least 1, got %d", path, l.BinSize)
	}
	return l, nil
}
