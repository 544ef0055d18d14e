package chart

import "sort"

// BucketKey identifies a discrete time bin. With bin size b, key k covers
// the half-open span [k*b, (k+1)*b).
type BucketKey int64

// Start returns the bucket's start time in epoch seconds.
func (k BucketKey) Start(binSize int64) int64 { return int64(k) * binSize }

// AssignBucket maps an interval to its bucket: floor(begin / binSize).
// An interval whose end crosses the bucket boundary stays entirely in the
// bucket of its begin time; spans are never split across buckets.
func AssignBucket(iv Interval, binSize int64) BucketKey {
	q := iv.Begin / binSize
	if iv.Begin%binSize != 0 && iv.Begin < 0 {
		q--
	}
	return BucketKey(q)
}

// Bucket holds the intervals assigned to one bin, in input order.
type Bucket struct {
	Key       BucketKey
	Intervals []Interval
}

// Bucketize groups intervals by bucket key. Buckets come back sorted by
// key ascending; within a bucket, intervals keep their input order.
func Bucketize(intervals []Interval, binSize int64) []Bucket {
	byKey := make(map[BucketKey]int)
	var buckets []Bucket

	for _, iv := range intervals {
		key := AssignBucket(iv, binSize)
		i, ok := byKey[key]
		if !ok {
			i = len(buckets)
			byKey[key] = i
			buckets = append(buckets, Bucket{Key: key})
		}
		buckets[i].Intervals = append(buckets[i].Intervals, iv)
	}

	sort.Slice(buckets, func(a, b int) bool { return buckets[a].Key < buckets[b].Key })
	return buckets
}
