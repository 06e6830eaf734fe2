package sprite

import "math"

// AggregateLevel is one level of a min/max pyramid. Bucket i covers Scale
// original points starting at Index[i]; MinX/MinY is the point with the
// smallest y in the bucket and MaxX/MaxY the one with the largest.
type AggregateLevel struct {
	MinX, MaxX []float64
	MinY, MaxY []float64
	Index      []int
	Scale      int
}

// Len returns the number of buckets.
func (l AggregateLevel) Len() int {
	return min(len(l.MinX), len(l.MaxX), len(l.MinY), len(l.MaxY), len(l.Index))
}

// FullLevel returns the level holding the original data, one point per
// bucket.
func FullLevel(dataX, dataY []float64) AggregateLevel {
	n := min(len(dataX), len(dataY))
	lvl := AggregateLevel{
		MinX:  dataX[:n:n],
		MaxX:  dataX[:n:n],
		MinY:  dataY[:n:n],
		MaxY:  dataY[:n:n],
		Index: make([]int, n),
		Scale: 1,
	}
	for i := range lvl.Index {
		lvl.Index[i] = i
	}
	return lvl
}

// CalculateScale returns the largest power of two p such that count/p,
// halved recursively, still has at least buckets entries. It is 1 when
// the data is already small enough.
func CalculateScale(count, buckets int) int {
	if buckets <= 0 || count/2 < buckets {
		return 1
	}
	return 2 * CalculateScale(count/2, buckets)
}

// SelectLevel returns the index of the coarsest level that still has at
// least pixels buckets, assuming levels run from finest to coarsest. It
// returns 0 when no level is fine enough and -1 when levels is empty.
func SelectLevel(levels []AggregateLevel, pixels float64) int {
	if len(levels) == 0 {
		return -1
	}
	best := 0
	for i, lvl := range levels {
		if float64(lvl.Len()) >= math.Ceil(pixels) {
			best = i
		}
	}
	return best
}
