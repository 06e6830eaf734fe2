package aggregate

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/sprite"
)

// ErrLengthMismatch is returned when the series passed to a tree differ
// in length.
var ErrLengthMismatch = errors.New("aggregate: series lengths differ")

// level is one row of the pyramid. All slices have the same length.
type level struct {
	startIdx, endIdx []int
	minIdx, maxIdx   []int
	open, close      []float64
	minX, minY       []float64
	maxX, maxY       []float64
	step             int
}

func (l *level) len() int { return len(l.startIdx) }

func (l *level) push(src *level, i int) {
	l.startIdx = append(l.startIdx, src.startIdx[i])
	l.endIdx = append(l.endIdx, src.endIdx[i])
	l.minIdx = append(l.minIdx, src.minIdx[i])
	l.maxIdx = append(l.maxIdx, src.maxIdx[i])
	l.open = append(l.open, src.open[i])
	l.close = append(l.close, src.close[i])
	l.minX = append(l.minX, src.minX[i])
	l.minY = append(l.minY, src.minY[i])
	l.maxX = append(l.maxX, src.maxX[i])
	l.maxY = append(l.maxY, src.maxY[i])
}

// merge appends the union of buckets i and i+1 of src.
func (l *level) merge(src *level, i int) {
	l.push(src, i)
	n := l.len() - 1
	l.endIdx[n] = src.endIdx[i+1]
	if src.minY[i+1] < src.minY[i] {
		l.minIdx[n], l.minX[n], l.minY[n] = src.minIdx[i+1], src.minX[i+1], src.minY[i+1]
	}
	if src.maxY[i+1] > src.maxY[i] {
		l.maxIdx[n], l.maxX[n], l.maxY[n] = src.maxIdx[i+1], src.maxX[i+1], src.maxY[i+1]
	}
}

// Tree is an immutable min/max pyramid. It is safe for concurrent use.
type Tree struct {
	dataX  []float64
	levels []*level
}

// New builds the pyramid of a plain x/y series.
func New(dataX, dataY []float64) (*Tree, error) {
	return NewOHLC(dataX, dataY, dataY, dataY, dataY)
}

// NewOHLC builds the pyramid of a candlestick series. Buckets keep the
// open of their first and the close of their first item.
func NewOHLC(dataX, open, high, low, closing []float64) (*Tree, error) {
	n := len(dataX)
	for _, s := range [][]float64{open, high, low, closing} {
		if len(s) != n {
			return nil, fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, n, len(s))
		}
	}

	base := &level{step: 1}
	for i := range n {
		base.startIdx = append(base.startIdx, i)
		base.endIdx = append(base.endIdx, i)
		base.minIdx = append(base.minIdx, i)
		base.maxIdx = append(base.maxIdx, i)
		base.open = append(base.open, open[i])
		base.close = append(base.close, closing[i])
		base.minX = append(base.minX, dataX[i])
		base.minY = append(base.minY, low[i])
		base.maxX = append(base.maxX, dataX[i])
		base.maxY = append(base.maxY, high[i])
	}

	t := &Tree{dataX: dataX, levels: []*level{base}}
	for prev := base; prev.len() > 1; {
		next := &level{step: 2 * prev.step}
		for i := 0; i < prev.len(); i += 2 {
			if i == prev.len()-1 {
				next.push(prev, i)
			} else {
				next.merge(prev, i)
			}
		}
		t.levels = append(t.levels, next)
		prev = next
	}
	ggchart.Logger().Debug("aggregate: built", "points", n, "levels", len(t.levels))
	return t, nil
}

// Len returns the number of levels, including the original data.
func (t *Tree) Len() int { return len(t.levels) }

// Level returns level i as drawn by sprite.Line. Level 0 is the original
// data.
func (t *Tree) Level(i int) sprite.AggregateLevel {
	l := t.levels[i]
	return sprite.AggregateLevel{
		MinX:  l.minX,
		MaxX:  l.maxX,
		MinY:  l.minY,
		MaxY:  l.maxY,
		Index: l.startIdx,
		Scale: l.step,
	}
}

// Levels returns every level, finest first.
func (t *Tree) Levels() []sprite.AggregateLevel {
	out := make([]sprite.AggregateLevel, t.Len())
	for i := range out {
		out[i] = t.Level(i)
	}
	return out
}

// Result is the answer to an Aggregation query: buckets [Start, End) of
// level LevelIndex.
type Result struct {
	Level      sprite.AggregateLevel
	LevelIndex int
	Start, End int
}

// Aggregation picks a level for drawing [from, to] when one pixel covers
// estStep data units. The level is chosen with sprite.SelectLevel: the
// coarsest one that still has a bucket per pixel across the whole data
// span. The result is restricted to the buckets overlapping [from, to].
// It reports false for an empty tree.
func (t *Tree) Aggregation(from, to, estStep float64) (Result, bool) {
	n := len(t.dataX)
	if n == 0 {
		return Result{}, false
	}
	pixels := math.Inf(1)
	if estStep > 0 {
		pixels = (t.dataX[n-1] - t.dataX[0]) / estStep
	}
	best := max(sprite.SelectLevel(t.Levels(), pixels), 0)
	l := t.levels[best]
	start := t.searchMin(l, from)
	end := t.searchMax(l, to) + 1
	return Result{
		Level:      t.Level(best),
		LevelIndex: best,
		Start:      start,
		End:        end,
	}, true
}

// searchMin finds the last bucket starting at or before key.
func (t *Tree) searchMin(l *level, key float64) int {
	x := func(i int) float64 { return t.dataX[l.startIdx[i]] }
	lo, hi := 0, l.len()
	if key <= x(0) {
		return 0
	}
	if key >= x(hi-1) {
		return hi - 1
	}
	for lo+1 < hi {
		mid := (lo + hi) / 2
		switch v := x(mid); {
		case v == key:
			return mid
		case v < key:
			lo = mid
		default:
			hi = mid
		}
	}
	return lo
}

// searchMax finds the first bucket ending at or after key.
func (t *Tree) searchMax(l *level, key float64) int {
	x := func(i int) float64 { return t.dataX[l.endIdx[i]] }
	lo, hi := 0, l.len()
	if key <= x(0) {
		return 0
	}
	if key >= x(hi-1) {
		return hi - 1
	}
	for lo+1 < hi {
		mid := (lo + hi) / 2
		switch v := x(mid); {
		case v == key:
			return mid
		case v < key:
			lo = mid
		default:
			hi = mid
		}
	}
	return hi
}
