package recording

import (
	"fmt"
	"slices"

	"github.com/gogpu/ggchart"
)

// LineCap specifies the shape of stroke endpoints.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

var lineCapNames = [...]string{"butt", "round", "square"}

// String returns the CSS name of the cap.
func (c LineCap) String() string {
	if int(c) < len(lineCapNames) {
		return lineCapNames[c]
	}
	return "unknown"
}

// ParseLineCap reads a CSS line cap name.
func ParseLineCap(s string) (LineCap, error) {
	if i := slices.Index(lineCapNames[:], s); i >= 0 {
		return LineCap(i), nil
	}
	return LineCapButt, fmt.Errorf("recording: unknown line cap %q", s)
}

// LineJoin specifies the shape of stroke corners.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

var lineJoinNames = [...]string{"miter", "round", "bevel"}

// String returns the CSS name of the join.
func (j LineJoin) String() string {
	if int(j) < len(lineJoinNames) {
		return lineJoinNames[j]
	}
	return "unknown"
}

// ParseLineJoin reads a CSS line join name.
func ParseLineJoin(s string) (LineJoin, error) {
	if i := slices.Index(lineJoinNames[:], s); i >= 0 {
		return LineJoin(i), nil
	}
	return LineJoinMiter, fmt.Errorf("recording: unknown line join %q", s)
}

// Paint is the surface paint state used by Fill, Stroke and FillText.
type Paint struct {
	FillColor     ggchart.RGBA
	StrokeColor   ggchart.RGBA
	FillOpacity   float64
	StrokeOpacity float64
	GlobalAlpha   float64
	LineWidth     float64
	LineCap       LineCap
	LineJoin      LineJoin
	MiterLimit    float64
	Dash          []float64
	DashOffset    float64
	FontSize      float64
}

// DefaultPaint mirrors the initial state of an HTML canvas: black fill and
// stroke, 1px butt-capped mitered lines.
func DefaultPaint() Paint {
	return Paint{
		FillColor:     ggchart.Black,
		StrokeColor:   ggchart.Black,
		FillOpacity:   1,
		StrokeOpacity: 1,
		GlobalAlpha:   1,
		LineWidth:     1,
		MiterLimit:    10,
		FontSize:      13,
	}
}

// Fill returns the fill color with both opacities applied.
func (p Paint) Fill() ggchart.RGBA {
	return p.FillColor.WithAlpha(p.FillOpacity * p.GlobalAlpha)
}

// Stroke returns the stroke color with both opacities applied.
func (p Paint) Stroke() ggchart.RGBA {
	return p.StrokeColor.WithAlpha(p.StrokeOpacity * p.GlobalAlpha)
}

// Clone returns a copy that does not share the dash slice.
func (p Paint) Clone() Paint {
	p.Dash = slices.Clone(p.Dash)
	return p
}
