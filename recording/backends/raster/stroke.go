package raster

import (
	"math"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/recording"
)

// circleSegments is the polygon resolution for round caps and joins.
const circleSegments = 16

// strokeOutline converts polylines into polygons whose union is the
// stroke. Every polygon is emitted with the same orientation so that the
// rasterizer's coverage accumulation never cancels overlaps.
func strokeOutline(lines []recording.Polyline, paint recording.Paint) [][]ggchart.Point {
	hw := paint.LineWidth / 2
	var out [][]ggchart.Point
	add := func(poly []ggchart.Point) {
		if len(poly) >= 3 {
			out = append(out, orient(poly))
		}
	}

	for _, line := range lines {
		pts := dedupe(line.Points)
		if line.Closed && len(pts) > 1 && pts[0] != pts[len(pts)-1] {
			pts = append(pts, pts[0])
		}
		if len(pts) == 1 {
			if paint.LineCap == recording.LineCapRound {
				add(circle(pts[0], hw))
			}
			continue
		}

		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			first, last := i == 1, i == len(pts)-1
			if !line.Closed && paint.LineCap == recording.LineCapSquare {
				d := unit(b.Sub(a)).Mul(hw)
				if first {
					a = a.Sub(d)
				}
				if last {
					b = b.Add(d)
				}
			}
			add(segmentQuad(a, b, hw))
		}

		n := len(pts)
		for i := 1; i < n-1; i++ {
			add(join(pts[i-1], pts[i], pts[i+1], hw, paint))
		}
		if line.Closed && n > 2 {
			add(join(pts[n-2], pts[0], pts[1], hw, paint))
		}
		if !line.Closed && paint.LineCap == recording.LineCapRound {
			add(circle(pts[0], hw))
			add(circle(pts[n-1], hw))
		}
	}
	return out
}

func segmentQuad(a, b ggchart.Point, hw float64) []ggchart.Point {
	n := normal(b.Sub(a)).Mul(hw)
	return []ggchart.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

// join fills the wedge between two segments meeting at p.
func join(prev, p, next ggchart.Point, hw float64, paint recording.Paint) []ggchart.Point {
	if paint.LineJoin == recording.LineJoinRound {
		return circle(p, hw)
	}
	d0, d1 := unit(p.Sub(prev)), unit(next.Sub(p))
	cross := d0.X*d1.Y - d0.Y*d1.X
	if math.Abs(cross) < 1e-12 {
		return nil
	}
	// The outer side is opposite the turn direction.
	side := -1.0
	if cross < 0 {
		side = 1
	}
	n0 := normal(d0).Mul(hw * side)
	n1 := normal(d1).Mul(hw * side)
	a, b := p.Add(n0), p.Add(n1)

	if paint.LineJoin == recording.LineJoinMiter {
		cosHalf := math.Sqrt((1 + d0.X*d1.X + d0.Y*d1.Y) / 2)
		if cosHalf > 1e-9 && 1/cosHalf <= paint.MiterLimit {
			bisector := unit(n0.Add(n1))
			tip := p.Add(bisector.Mul(hw / cosHalf))
			return []ggchart.Point{p, a, tip, b}
		}
	}
	return []ggchart.Point{p, a, b}
}

func circle(c ggchart.Point, r float64) []ggchart.Point {
	pts := make([]ggchart.Point, circleSegments)
	for i := range pts {
		pts[i] = ggchart.Polar(c, 2*math.Pi*float64(i)/circleSegments, r)
	}
	return pts
}

// orient returns poly with negative signed area, reversing it if needed.
func orient(poly []ggchart.Point) []ggchart.Point {
	area := 0.0
	for i := range poly {
		j := (i + 1) % len(poly)
		area += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	if area > 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	return poly
}

func dedupe(pts []ggchart.Point) []ggchart.Point {
	out := make([]ggchart.Point, 0, len(pts))
	for _, p := range pts {
		if !p.IsFinite() {
			continue
		}
		if len(out) > 0 && p.Sub(out[len(out)-1]).Length() < 1e-9 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func unit(v ggchart.Point) ggchart.Point {
	l := v.Length()
	if l == 0 {
		return ggchart.Point{}
	}
	return v.Mul(1 / l)
}

func normal(v ggchart.Point) ggchart.Point {
	u := unit(v)
	return ggchart.Pt(-u.Y, u.X)
}

// dash splits polylines into the "on" intervals of pattern. An odd-length
// pattern is repeated to make it even. Patterns with no positive length
// leave the lines unchanged.
func dash(lines []recording.Polyline, pattern []float64, offset float64) []recording.Polyline {
	pat := make([]float64, 0, 2*len(pattern))
	total := 0.0
	for _, v := range pattern {
		v = math.Abs(v)
		pat = append(pat, v)
		total += v
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return lines
	}
	if len(pat)%2 == 1 {
		pat = append(pat, pat...)
		total *= 2
	}

	var out []recording.Polyline
	for _, line := range lines {
		pts := line.Points
		if line.Closed && len(pts) > 1 {
			pts = append(append([]ggchart.Point(nil), pts...), pts[0])
		}

		idx, rem := 0, pat[0]
		if offset != 0 {
			o := math.Mod(offset, total)
			if o < 0 {
				o += total
			}
			for o > 0 {
				if o < rem {
					rem -= o
					break
				}
				o -= rem
				idx = (idx + 1) % len(pat)
				rem = pat[idx]
			}
		}

		var cur []ggchart.Point
		on := idx%2 == 0
		if on && len(pts) > 0 {
			cur = []ggchart.Point{pts[0]}
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := b.Sub(a).Length()
			pos := 0.0
			for segLen-pos > rem {
				pos += rem
				p := a.Lerp(b, pos/segLen)
				if on {
					cur = append(cur, p)
					out = append(out, recording.Polyline{Points: cur})
					cur = nil
				} else {
					cur = []ggchart.Point{p}
				}
				on = !on
				idx = (idx + 1) % len(pat)
				rem = pat[idx]
			}
			rem -= segLen - pos
			if on {
				cur = append(cur, b)
			}
		}
		if on && len(cur) > 1 {
			out = append(out, recording.Polyline{Points: cur})
		}
	}
	return out
}
