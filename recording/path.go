package recording

import (
	"math"

	"github.com/gogpu/ggchart"
)

// Tolerance is the default maximum distance between a curve and its
// flattened polyline, in device pixels.
const Tolerance = 0.1

// PathElement is a single element of a Path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath.
type MoveTo struct {
	Point ggchart.Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a straight segment.
type LineTo struct {
	Point ggchart.Point
}

func (LineTo) isPathElement() {}

// CubicTo draws a cubic Bezier segment.
type CubicTo struct {
	Control1 ggchart.Point
	Control2 ggchart.Point
	Point    ggchart.Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a sequence of subpaths built from lines and cubics. Arcs are
// converted to cubics as they are added.
type Path struct {
	elements []PathElement
	start    ggchart.Point
	current  ggchart.Point
	open     bool
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt ggchart.Point) {
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.open = true
}

// LineTo adds a line to pt. Without a current point it acts as MoveTo.
func (p *Path) LineTo(pt ggchart.Point) {
	if !p.open {
		p.MoveTo(pt)
		return
	}
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// CubicTo adds a cubic Bezier ending at pt.
func (p *Path) CubicTo(c1, c2, pt ggchart.Point) {
	if !p.open {
		p.MoveTo(c1)
	}
	p.elements = append(p.elements, CubicTo{Control1: c1, Control2: c2, Point: pt})
	p.current = pt
}

// ArcTo adds an SVG-style elliptical arc from the current point to pt.
func (p *Path) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, pt ggchart.Point) {
	if !p.open {
		p.MoveTo(pt)
		return
	}
	for _, c := range ggchart.EndpointArc(p.current, rx, ry, rotation, largeArc, sweep, pt) {
		p.CubicTo(c.P1, c.P2, c.P3)
	}
}

// Close closes the current subpath.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Reset removes all elements.
func (p *Path) Reset() {
	p.elements = p.elements[:0]
	p.start = ggchart.Point{}
	p.current = ggchart.Point{}
	p.open = false
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() ggchart.Point {
	return p.current
}

// Empty reports whether the path has no elements.
func (p *Path) Empty() bool {
	return len(p.elements) == 0
}

// Transform returns a copy of the path with every point mapped through m.
func (p *Path) Transform(m ggchart.Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			result.MoveTo(m.TransformPoint(e.Point))
		case LineTo:
			result.LineTo(m.TransformPoint(e.Point))
		case CubicTo:
			result.CubicTo(m.TransformPoint(e.Control1), m.TransformPoint(e.Control2), m.TransformPoint(e.Point))
		case Close:
			result.Close()
		}
	}
	return result
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	result := *p
	result.elements = append([]PathElement(nil), p.elements...)
	return &result
}

// Bounds returns the tight bounding box of the path.
func (p *Path) Bounds() ggchart.Rect {
	var (
		r     ggchart.Rect
		first = true
		cur   ggchart.Point
	)
	add := func(b ggchart.Rect) {
		if first {
			r, first = b, false
			return
		}
		r = r.Union(b)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(ggchart.NewRect(e.Point, e.Point))
			cur = e.Point
		case LineTo:
			add(ggchart.NewRect(cur, e.Point))
			cur = e.Point
		case CubicTo:
			add(ggchart.CubicBez{P0: cur, P1: e.Control1, P2: e.Control2, P3: e.Point}.BoundingBox())
			cur = e.Point
		}
	}
	return r
}

// Polyline is one flattened subpath.
type Polyline struct {
	Points []ggchart.Point
	Closed bool
}

// Flatten converts the path into polylines whose segments deviate from the
// curves by less than tolerance. A non-positive tolerance uses Tolerance.
func (p *Path) Flatten(tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	var (
		out     []Polyline
		cur     *Polyline
		current ggchart.Point
	)
	flush := func() {
		if cur != nil && len(cur.Points) > 0 {
			out = append(out, *cur)
		}
		cur = nil
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			cur = &Polyline{Points: []ggchart.Point{e.Point}}
			current = e.Point
		case LineTo:
			cur.Points = append(cur.Points, e.Point)
			current = e.Point
		case CubicTo:
			flattenCubicRec(current, e.Control1, e.Control2, e.Point, tolerance, 0, &cur.Points)
			current = e.Point
		case Close:
			cur.Closed = true
			current = cur.Points[0]
			flush()
			// A segment after Close continues from the subpath start.
			cur = &Polyline{Points: []ggchart.Point{current}}
		}
	}
	flush()
	return dropSingletons(out)
}

func dropSingletons(lines []Polyline) []Polyline {
	out := lines[:0]
	for _, l := range lines {
		if len(l.Points) > 1 || l.Closed {
			out = append(out, l)
		}
	}
	return out
}

const maxFlattenDepth = 16

func flattenCubicRec(p0, p1, p2, p3 ggchart.Point, tolerance float64, depth int, points *[]ggchart.Point) {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if dist < tolerance || depth >= maxFlattenDepth || !p0.IsFinite() || !p3.IsFinite() {
		*points = append(*points, p3)
		return
	}

	// de Casteljau at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToLine is the distance from p to the segment a-b.
func distanceToLine(p, a, b ggchart.Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < 1e-10 {
		return p.Sub(a).Length()
	}

	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / (abLen * abLen)
	switch {
	case t < 0:
		return p.Sub(a).Length()
	case t > 1:
		return p.Sub(b).Length()
	}
	return p.Sub(a.Add(ab.Mul(t))).Length()
}

// rayOrigin is a point assumed to lie outside any path, the far end of the
// ray cast by IsPointInPath.
var rayOrigin = ggchart.Pt(-10000, -10000)

// edge is one drawn piece of a path, a line unless cubic is set.
type edge struct {
	line  ggchart.Line
	curve ggchart.CubicBez
	cubic bool
}

func lineEdge(a, b ggchart.Point) edge {
	return edge{line: ggchart.Line{P0: a, P1: b}}
}

// edges calls fn for every segment of the path. Close adds the segment
// back to the subpath start; closeOpen adds it for subpaths left open too.
func (p *Path) edges(closeOpen bool, fn func(edge)) {
	var start, cur ggchart.Point
	open := false
	finish := func() {
		if open && closeOpen && cur != start {
			fn(lineEdge(cur, start))
		}
		open = false
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			finish()
			start, cur, open = e.Point, e.Point, true
		case LineTo:
			fn(lineEdge(cur, e.Point))
			cur, open = e.Point, true
		case CubicTo:
			fn(edge{curve: ggchart.CubicBez{P0: cur, P1: e.Control1, P2: e.Control2, P3: e.Point}, cubic: true})
			cur, open = e.Point, true
		case Close:
			if cur != start {
				fn(lineEdge(cur, start))
			}
			cur, open = start, false
		}
	}
	finish()
}

// IsPointInPath reports whether pt is inside the path under the even-odd
// rule, counting crossings of a ray cast from far outside. Open subpaths
// are treated as closed.
func (p *Path) IsPointInPath(pt ggchart.Point) bool {
	ray := ggchart.Line{P0: rayOrigin, P1: pt}
	crossings := 0
	p.edges(true, func(e edge) {
		if e.cubic {
			crossings += len(ggchart.CubicLineIntersections(e.curve, ray))
			return
		}
		if _, ok := ggchart.LinesIntersection(e.line, ray); ok {
			crossings++
		}
	})
	return crossings%2 == 1
}

// IsPointOnPath reports whether pt lies on a drawn segment of the path,
// within the tolerances of PointOnLine and PointOnCubic. Open subpaths
// are not closed.
func (p *Path) IsPointOnPath(pt ggchart.Point) bool {
	on := false
	p.edges(false, func(e edge) {
		if on {
			return
		}
		if e.cubic {
			on = ggchart.PointOnCubic(e.curve, pt)
		} else {
			on = ggchart.PointOnLine(e.line, pt)
		}
	})
	return on
}

// LineIntersections returns the points where segment l crosses the drawn
// segments of the path.
func (p *Path) LineIntersections(l ggchart.Line) []ggchart.Point {
	var out []ggchart.Point
	p.edges(false, func(e edge) {
		out = append(out, e.crossLine(l)...)
	})
	return out
}

// Intersections returns the points where the drawn segments of p and
// other cross. Cubic against cubic crossings are approximate; see
// ggchart.CubicsIntersections.
func (p *Path) Intersections(other *Path) []ggchart.Point {
	var out []ggchart.Point
	p.edges(false, func(a edge) {
		other.edges(false, func(b edge) {
			switch {
			case !a.cubic:
				out = append(out, b.crossLine(a.line)...)
			case !b.cubic:
				out = append(out, a.crossLine(b.line)...)
			default:
				out = append(out, ggchart.CubicsIntersections(a.curve, b.curve)...)
			}
		})
	})
	return out
}

func (e edge) crossLine(l ggchart.Line) []ggchart.Point {
	if e.cubic {
		return ggchart.CubicLineIntersections(e.curve, l)
	}
	if pt, ok := ggchart.LinesIntersection(e.line, l); ok {
		return []ggchart.Point{pt}
	}
	return nil
}
