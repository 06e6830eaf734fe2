package ggchart

import "math"

// ArcCubics approximates the circle arc of radius r around center from
// angle start sweeping by delta radians (positive is the direction of
// increasing angle). Each cubic spans at most a quarter turn.
func ArcCubics(center Point, r, start, delta float64) []CubicBez {
	return ellipseCubics(center, r, r, 0, start, delta)
}

// EndpointArc converts an SVG-style endpoint arc into cubics.
//
// The ellipse has radii rx, ry rotated by phi radians. Of the four arcs
// joining from and to, largeArc picks the one spanning more than π and
// sweep picks the one drawn with increasing angle. Radii too small to
// reach are scaled up; a zero radius degrades to a straight segment and
// coincident endpoints draw nothing.
func EndpointArc(from Point, rx, ry, phi float64, largeArc, sweep bool, to Point) []CubicBez {
	if from == to {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return []CubicBez{{P0: from, P1: from.Lerp(to, 1.0/3), P2: from.Lerp(to, 2.0/3), P3: to}}
	}

	sinPhi, cosPhi := math.Sincos(phi)
	hx := (from.X - to.X) / 2
	hy := (from.Y - to.Y) / 2
	x1 := cosPhi*hx + sinPhi*hy
	y1 := -sinPhi*hx + cosPhi*hy

	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(math.Max(0, num/den))
	if largeArc == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	center := Point{
		X: cosPhi*cx1 - sinPhi*cy1 + (from.X+to.X)/2,
		Y: sinPhi*cx1 + cosPhi*cy1 + (from.Y+to.Y)/2,
	}

	u := Point{X: (x1 - cx1) / rx, Y: (y1 - cy1) / ry}
	v := Point{X: (-x1 - cx1) / rx, Y: (-y1 - cy1) / ry}
	start := u.Angle()
	delta := math.Atan2(u.X*v.Y-u.Y*v.X, u.X*v.X+u.Y*v.Y)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	cubics := ellipseCubics(center, rx, ry, phi, start, delta)
	if n := len(cubics); n > 0 {
		cubics[0].P0 = from
		cubics[n-1].P3 = to
	}
	return cubics
}

func ellipseCubics(center Point, rx, ry, phi, start, delta float64) []CubicBez {
	if delta == 0 {
		return nil
	}
	const maxAngle = math.Pi / 2
	n := int(math.Ceil(math.Abs(delta) / maxAngle))
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	m := Translate(center.X, center.Y).Multiply(Rotate(phi)).Multiply(Scale(rx, ry))
	out := make([]CubicBez, 0, n)
	for i := 0; i < n; i++ {
		a1 := start + float64(i)*step
		a2 := a1 + step
		s1, c1 := math.Sincos(a1)
		s2, c2 := math.Sincos(a2)
		out = append(out, CubicBez{
			P0: m.TransformPoint(Pt(c1, s1)),
			P1: m.TransformPoint(Pt(c1-k*s1, s1+k*c1)),
			P2: m.TransformPoint(Pt(c2+k*s2, s2-k*c2)),
			P3: m.TransformPoint(Pt(c2, s2)),
		})
	}
	return out
}
