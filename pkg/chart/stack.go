package chart

import "sort"

// StackedBlock is the layout output for one interval: its bucket, its
// vertical slot within the bucket's stack, and which palette color to
// fill it with.
type StackedBlock struct {
	Interval
	Bucket BucketKey `json:"bucket"`
	Slot   int       `json:"slot"`
	Color  int       `json:"color"`
}

// Stack lays out one bucket's intervals.
//
// Intervals are sorted by begin time (stable, so ties keep input order)
// and placed greedily: each interval takes the lowest slot whose previous
// occupant has fully ended (tracked end <= begin); if none exists a new
// slot opens. Slot values therefore form a contiguous range from 0 and
// overlapping intervals never share a slot.
//
// Colors alternate on adjacency, not slot: walking in sorted order, an
// interval that touches or overlaps its predecessor (begin <= prev end)
// takes (prev color + 1) mod numColors; a gap resets the chain to 0.
//
// The result is deterministic for a given input order. An empty bucket
// yields an empty slice.
func Stack(b Bucket, numColors int) []StackedBlock {
	if numColors < 2 {
		numColors = 2
	}

	sorted := make([]Interval, len(b.Intervals))
	copy(sorted, b.Intervals)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Begin < sorted[j].Begin })

	blocks := make([]StackedBlock, 0, len(sorted))
	var slotEnds []int64 // per slot, end time of its most recent occupant

	prevColor := 0
	var prev Interval
	for i, iv := range sorted {
		slot := -1
		for s, end := range slotEnds {
			if end <= iv.Begin {
				slot = s
				break
			}
		}
		if slot < 0 {
			slot = len(slotEnds)
			slotEnds = append(slotEnds, iv.End)
		} else {
			slotEnds[slot] = iv.End
		}

		color := 0
		if i > 0 && prev.Touches(iv) {
			color = (prevColor + 1) % numColors
		}

		blocks = append(blocks, StackedBlock{
			Interval: iv,
			Bucket:   b.Key,
			Slot:     slot,
			Color:    color,
		})
		prev, prevColor = iv, color
	}
	return blocks
}
