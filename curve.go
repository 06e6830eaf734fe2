package ggchart

import "math"

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// XYWH creates a rectangle from its origin and size.
func XYWH(x, y, w, h float64) Rect {
	return NewRect(Pt(x, y), Pt(x+w, y+h))
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether the rectangles share any point, edges included.
func (r Rect) Overlaps(other Rect) bool {
	return r.Min.X <= other.Max.X && r.Max.X >= other.Min.X &&
		r.Min.Y <= other.Max.Y && r.Max.Y >= other.Min.Y
}

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval evaluates the line at parameter t.
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// CubicBez represents a cubic Bezier curve.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t using the Bernstein form.
func (c CubicBez) Eval(t float64) Point {
	return Point{
		X: InterpolateCubic(c.P0.X, c.P1.X, c.P2.X, c.P3.X, t),
		Y: InterpolateCubic(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y, t),
	}
}

// Split divides the curve at parameter z into two curves sharing the
// point at z.
func (c CubicBez) Split(z float64) (CubicBez, CubicBez) {
	x0, x1 := SplitCubic(c.P0.X, c.P1.X, c.P2.X, c.P3.X, z)
	y0, y1 := SplitCubic(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y, z)
	return cubicFromAxes(x0, y0), cubicFromAxes(x1, y1)
}

func cubicFromAxes(x, y [4]float64) CubicBez {
	return CubicBez{
		P0: Pt(x[0], y[0]),
		P1: Pt(x[1], y[1]),
		P2: Pt(x[2], y[2]),
		P3: Pt(x[3], y[3]),
	}
}

// BoundingBox returns the tight bounds of the curve, including extrema
// between the endpoints.
func (c CubicBez) BoundingBox() Rect {
	minX, maxX := CubicDimension(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	minY, maxY := CubicDimension(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	return Rect{Min: Pt(minX, minY), Max: Pt(maxX, maxY)}
}

// BezierCoeffs converts the control values of one axis of a cubic into
// power-basis coefficients [t³, t², t, 1].
func BezierCoeffs(p0, p1, p2, p3 float64) [4]float64 {
	return [4]float64{
		-p0 + 3*p1 - 3*p2 + p3,
		3*p0 - 6*p1 + 3*p2,
		-3*p0 + 3*p1,
		p0,
	}
}

// SplitCubic splits one axis of a cubic at z in [0, 1] (De Casteljau).
// Both halves share the value at z.
func SplitCubic(p1, p2, p3, p4, z float64) (first, second [4]float64) {
	zz := z * z
	zzz := z * zz
	iz := z - 1
	izz := iz * iz
	izzz := iz * izz
	p := zzz*p4 - 3*zz*iz*p3 + 3*z*izz*p2 - izzz*p1

	first = [4]float64{
		p1,
		z*p2 - iz*p1,
		zz*p3 - 2*z*iz*p2 + izz*p1,
		p,
	}
	second = [4]float64{
		p,
		zz*p4 - 2*z*iz*p3 + izz*p2,
		z*p4 - iz*p3,
		p4,
	}
	return first, second
}

// CubicDimension returns the range one axis of a cubic covers for t in
// [0, 1], found from the roots of its derivative.
func CubicDimension(a, b, c, d float64) (lo, hi float64) {
	qa := 3 * (-a + 3*(b-c) + d)
	qb := 6 * (a - 2*b + c)
	qc := -3 * (a - b)
	lo, hi = math.Min(a, d), math.Max(a, d)

	extend := func(x float64) {
		if 0 < x && x < 1 {
			y := InterpolateCubic(a, b, c, d, x)
			lo = math.Min(lo, y)
			hi = math.Max(hi, y)
		}
	}

	if qa == 0 {
		if qb != 0 {
			extend(-qc / qb)
		}
		return lo, hi
	}
	delta := qb*qb - 4*qa*qc
	if delta < 0 {
		return lo, hi
	}
	delta = math.Sqrt(delta)
	x := (delta - qb) / 2 / qa
	extend(x)
	if delta > 0 {
		extend(x - delta/qa)
	}
	return lo, hi
}

// InterpolateCubic evaluates one axis of a cubic in Bernstein form at t.
func InterpolateCubic(a, b, c, d, t float64) float64 {
	switch t {
	case 0:
		return a
	case 1:
		return d
	}
	mt := 1 - t
	return mt*mt*mt*a + 3*mt*mt*t*b + 3*mt*t*t*c + t*t*t*d
}
