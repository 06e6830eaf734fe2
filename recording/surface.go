package recording

import "github.com/gogpu/ggchart"

// Surface is the drawing target sprites render to. It follows the HTML
// canvas model: path points are mapped through the transform current at
// the time they are added, and Fill and Stroke use the current Paint.
type Surface interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	// ArcTo adds an SVG-style elliptical arc from the current point.
	ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64)
	ClosePath()
	Fill()
	Stroke()

	Save()
	Restore()
	SetPaint(p Paint)
	Paint() Paint
	SetTransform(m ggchart.Matrix)
	Transform() ggchart.Matrix
}

// TextSurface is a Surface that can also draw text. Labels are only drawn
// on surfaces that implement it.
type TextSurface interface {
	Surface
	// FillText draws s with its baseline-left origin at (x, y), rotated
	// by rotation radians about that origin.
	FillText(s string, x, y, rotation float64)
}
