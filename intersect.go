package ggchart

import "math"

// MaxIntersectionDepth bounds the subdivision depth of CubicsIntersections.
// After 24 halvings a curve of any on-screen size is well below a pixel.
const MaxIntersectionDepth = 24

// Tolerances used by the point hit tests.
const (
	pointOnLineTolerance  = 4
	pointOnCubicTolerance = 0.05
)

// LinesIntersection returns the point where two segments cross.
// Parallel or collinear segments and crossings outside either segment
// report false.
func LinesIntersection(a, b Line) (Point, bool) {
	x1, y1, x2, y2 := a.P0.X, a.P0.Y, a.P1.X, a.P1.Y
	x3, y3, x4, y4 := b.P0.X, b.P0.Y, b.P1.X, b.P1.Y

	d := (x2-x1)*(y4-y3) - (y2-y1)*(x4-x3)
	if d == 0 {
		return Point{}, false
	}
	ua := ((x4-x3)*(y1-y3) - (x1-x3)*(y4-y3)) / d
	ub := ((x2-x1)*(y1-y3) - (y2-y1)*(x1-x3)) / d
	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return Point{}, false
	}
	return Point{X: x1 + ua*(x2-x1), Y: y1 + ua*(y2-y1)}, true
}

// CubicLineIntersections returns the points where c crosses segment l.
//
// The line is written implicitly as Ax + By + C = 0 and substituted into
// the curve's power form, giving a cubic in t. Each root in [0, 1] is then
// checked against the segment's own parameter along whichever axis the
// segment spans further.
func CubicLineIntersections(c CubicBez, l Line) []Point {
	x1, y1, x2, y2 := l.P0.X, l.P0.Y, l.P1.X, l.P1.Y
	if x1 == x2 && y1 == y2 {
		return nil
	}

	A := y1 - y2
	B := x2 - x1
	C := x1*(y2-y1) - y1*(x2-x1)

	bx := BezierCoeffs(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	by := BezierCoeffs(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)

	p := [4]float64{
		A*bx[0] + B*by[0],
		A*bx[1] + B*by[1],
		A*bx[2] + B*by[2],
		A*bx[3] + B*by[3] + C,
	}

	useX := math.Abs(x2-x1) >= math.Abs(y2-y1)
	var out []Point
	for _, t := range CubicRoots(p) {
		if !validRoot(t) {
			continue
		}
		pt := Point{X: evalPower(bx, t), Y: evalPower(by, t)}
		var s float64
		if useX {
			s = (pt.X - x1) / (x2 - x1)
		} else {
			s = (pt.Y - y1) / (y2 - y1)
		}
		if s >= 0 && s <= 1 {
			out = append(out, pt)
		}
	}
	return out
}

func evalPower(k [4]float64, t float64) float64 {
	return ((k[0]*t+k[1])*t+k[2])*t + k[3]
}

// CubicsIntersections returns approximate crossing points of two cubics.
//
// Both curves are halved recursively while their bounding boxes overlap.
// Once both fit inside a pixel, or MaxIntersectionDepth is reached, the
// midpoint of the first curve's chord is reported. The worst case visits
// 4^depth pairs, so callers should keep it out of per-frame hot loops on
// overlapping curves.
func CubicsIntersections(a, b CubicBez) []Point {
	return cubicsIntersections(a, b, 0, nil)
}

func cubicsIntersections(a, b CubicBez, depth int, out []Point) []Point {
	ab, bb := a.BoundingBox(), b.BoundingBox()
	if !ab.Overlaps(bb) {
		return out
	}
	if subPixel(ab) && subPixel(bb) || depth >= MaxIntersectionDepth {
		return append(out, a.P0.Lerp(a.P3, 0.5))
	}

	a0, a1 := a.Split(0.5)
	b0, b1 := b.Split(0.5)
	out = cubicsIntersections(a0, b0, depth+1, out)
	out = cubicsIntersections(a0, b1, depth+1, out)
	out = cubicsIntersections(a1, b0, depth+1, out)
	out = cubicsIntersections(a1, b1, depth+1, out)
	return out
}

func subPixel(r Rect) bool {
	return r.Width() < 1 && r.Height() < 1
}

// PointOnLine reports whether p lies within 4 units of segment l.
// Steep segments are measured along Y so the test stays well conditioned.
func PointOnLine(l Line, p Point) bool {
	x1, y1, x2, y2 := l.P0.X, l.P0.Y, l.P1.X, l.P1.Y
	x, y := p.X, p.Y
	if math.Abs(x2-x1) < math.Abs(y2-y1) {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
		x, y = y, x
	}
	if x1 == x2 {
		// Zero-length segment.
		return math.Abs(x-x1) < pointOnLineTolerance && math.Abs(y-y1) < pointOnLineTolerance
	}
	t := (x - x1) / (x2 - x1)
	if t < 0 || t > 1 {
		return false
	}
	return math.Abs(y1+t*(y2-y1)-y) < pointOnLineTolerance
}

// PointOnCubic reports whether p lies on c: the parameters solving the
// curve for p.X and for p.Y must agree within 0.05. An axis along which
// the curve is constant and equal to the point's coordinate accepts any
// parameter.
func PointOnCubic(c CubicBez, p Point) bool {
	bx := BezierCoeffs(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	by := BezierCoeffs(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	bx[3] -= p.X
	by[3] -= p.Y

	xAny, yAny := isZeroPoly(bx), isZeroPoly(by)
	rx := CubicRoots(bx)
	ry := CubicRoots(by)

	switch {
	case xAny && yAny:
		return true
	case xAny:
		return anyValid(ry)
	case yAny:
		return anyValid(rx)
	}
	for _, tx := range rx {
		if !validRoot(tx) {
			continue
		}
		for _, ty := range ry {
			if validRoot(ty) && math.Abs(tx-ty) < pointOnCubicTolerance {
				return true
			}
		}
	}
	return false
}

func isZeroPoly(k [4]float64) bool {
	return k[0] == 0 && k[1] == 0 && k[2] == 0 && k[3] == 0
}

func anyValid(roots []float64) bool {
	for _, r := range roots {
		if validRoot(r) {
			return true
		}
	}
	return false
}
