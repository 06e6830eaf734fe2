package attr

import (
	"math"

	"github.com/gogpu/ggchart"
)

// Interpolator produces the value at progress t in [0, 1] between two
// normalized values. External tweening drivers call it once per frame.
type Interpolator func(from, to any, t float64) any

// Step holds from until the tween completes, then jumps to to.
func Step(from, to any, t float64) any {
	if t < 1 {
		return from
	}
	return to
}

// NumberLerp interpolates float64 values and falls back to Step for
// anything else.
func NumberLerp(from, to any, t float64) any {
	a, ok1 := from.(float64)
	b, ok2 := to.(float64)
	if !ok1 || !ok2 {
		return Step(from, to, t)
	}
	return a + (b-a)*t
}

// ColorLerp interpolates ggchart.RGBA values component-wise.
func ColorLerp(from, to any, t float64) any {
	a, ok1 := from.(ggchart.RGBA)
	b, ok2 := to.(ggchart.RGBA)
	if !ok1 || !ok2 {
		return Step(from, to, t)
	}
	return a.Lerp(b, t)
}

// SeriesLerp interpolates []float64 element-wise. The result has the
// length of to; elements missing from from, or NaN on either side, take
// the target value.
func SeriesLerp(from, to any, t float64) any {
	a, ok1 := from.([]float64)
	b, ok2 := to.([]float64)
	if !ok1 || !ok2 {
		return Step(from, to, t)
	}
	out := make([]float64, len(b))
	for i, v := range b {
		if i >= len(a) || math.IsNaN(a[i]) || math.IsNaN(v) {
			out[i] = v
			continue
		}
		out[i] = a[i] + (v-a[i])*t
	}
	return out
}

// defaultInterpolators maps a processor kind to the interpolator used when
// a definition does not name one.
var defaultInterpolators = map[Kind]Interpolator{
	KindNumber:  NumberLerp,
	KindClamped: NumberLerp,
	KindColor:   ColorLerp,
	KindSeries:  SeriesLerp,
}

// Tween returns the frame at progress t between from and to using the
// schema's interpolators. Keys absent from from take their target value.
// The matrix is left out: the set recomposes it from the tweened
// components.
func Tween(s *Schema, from, to Values, t float64) Values {
	out := make(Values, len(to))
	for k, v := range to {
		if k == KeyMatrix {
			continue
		}
		prev, ok := from[k]
		if !ok {
			out[k] = v
			continue
		}
		out[k] = s.Interpolator(k)(prev, v, t)
	}
	return out
}
