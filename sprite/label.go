package sprite

import (
	"math"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/attr"
)

// MarkerKind names a family of bound markers.
type MarkerKind string

// Marker families a shape can emit.
const (
	KindMarkers MarkerKind = "markers"
	KindLabels  MarkerKind = "labels"
)

// Placement is where a marker or label goes, in surface coordinates.
type Placement struct {
	X, Y         float64
	RotationRads float64
	Text         string

	// Callout is set for labels drawn outside a sector. The line runs from
	// CalloutStart to CalloutEnd; the label sits at CalloutEnd.
	Callout      bool
	CalloutStart ggchart.Point
	CalloutEnd   ggchart.Point

	Alpha  float64
	Hidden bool
	Style  attr.Changes
}

// MarkerSink receives marker and label placements from a rendering shape.
type MarkerSink interface {
	PutMarker(kind MarkerKind, p Placement, index int)
}

// MarkerFunc adapts a function to MarkerSink.
type MarkerFunc func(kind MarkerKind, p Placement, index int)

// PutMarker calls f.
func (f MarkerFunc) PutMarker(kind MarkerKind, p Placement, index int) { f(kind, p, index) }

// Measurer returns the bounding box of a label in its own unrotated space.
type Measurer interface {
	Measure(text string) ggchart.Rect
}

// LabelDisplay selects where a label is put relative to its anchor.
type LabelDisplay string

// Label display modes. Line labels use over, under and rotate; sector
// labels use inside, outside, rotate and auto.
const (
	DisplayOver    LabelDisplay = "over"
	DisplayUnder   LabelDisplay = "under"
	DisplayRotate  LabelDisplay = "rotate"
	DisplayInside  LabelDisplay = "inside"
	DisplayOutside LabelDisplay = "outside"
	DisplayAuto    LabelDisplay = "auto"
	DisplayNone    LabelDisplay = "none"
)

// LabelPlacer computes label anchors. A nil Measurer measures every label
// as an empty box.
type LabelPlacer struct {
	Measurer Measurer
	Display  LabelDisplay
}

func (lp *LabelPlacer) measure(text string) ggchart.Rect {
	if lp == nil || lp.Measurer == nil {
		return ggchart.Rect{}
	}
	return lp.Measurer.Measure(text)
}

func (lp *LabelPlacer) display(fallback LabelDisplay) LabelDisplay {
	if lp == nil || lp.Display == "" {
		return fallback
	}
	return lp.Display
}

// PlaceLineLabel positions the label of a line point. x and y are in the
// line's local space; surface maps them to surface coordinates. Local y
// grows upwards, so "over" adds to it.
func (lp *LabelPlacer) PlaceLineLabel(text string, x, y, padding float64, flipXY bool, surface ggchart.Matrix) Placement {
	p := Placement{Text: text, Alpha: 1}
	if flipXY {
		p.RotationRads = math.Pi / 2
	}
	half := lp.measure(text).Height() / 2
	switch lp.display(DisplayOver) {
	case DisplayUnder:
		y -= half + padding
	case DisplayRotate:
		x += padding
		y -= padding
		p.RotationRads = -math.Pi / 4
	default:
		y += half + padding
	}
	at := surface.TransformPoint(ggchart.Pt(x, y))
	p.X, p.Y = at.X, at.Y
	return p
}

// PlaceSectorLabel positions the label of a sector. The anchor is the
// middle of the band; outside labels move to the callout tip.
func (lp *LabelPlacer) PlaceSectorLabel(text string, spec SectorSpec, orientation string, callout, padding float64, surface ggchart.Matrix) Placement {
	spec = spec.normalize()
	mid := spec.MidAngle()
	center := ggchart.Pt(spec.CenterX, spec.CenterY)
	anchor := surface.TransformPoint(ggchart.Polar(center, mid, spec.MidRadius()))
	p := Placement{Text: text, X: anchor.X, Y: anchor.Y, Alpha: 1}

	surfaceAngle := surface.TransformVector(ggchart.Pt(1, 0)).Angle()
	switch orientation {
	case "horizontal":
		p.RotationRads = mid + surfaceAngle + math.Pi/2
		if upsideDown(p.RotationRads) {
			p.RotationRads += math.Pi
		}
	case "vertical":
		p.RotationRads = mid + surfaceAngle
	}

	display := lp.display(DisplayInside)
	if display == DisplayRotate {
		display = DisplayInside
	}
	fits := SliceContainsLabel(spec, lp.measure(text), padding)
	switch display {
	case DisplayOutside:
		p.Callout = true
	case DisplayAuto:
		p.Callout = fits == 0
	case DisplayNone:
		p.Hidden = true
	default:
		p.Alpha = fits
	}
	if p.Callout {
		p.CalloutStart = surface.TransformPoint(ggchart.Polar(center, mid, spec.EndRadius))
		p.CalloutEnd = surface.TransformPoint(ggchart.Polar(center, mid, spec.EndRadius+callout))
		p.X, p.Y = p.CalloutEnd.X, p.CalloutEnd.Y
		p.RotationRads = 0
		p.Alpha = 1
	}
	return p
}

// upsideDown reports whether text rotated by a reads upside down.
func upsideDown(a float64) bool {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a > math.Pi/2 && a < 3*math.Pi/2
}

// SliceContainsLabel returns 1 if a label of the given box fits inside the
// band of spec with padding on every side, otherwise 0. A negative padding
// lets labels overlap and always fits.
func SliceContainsLabel(spec SectorSpec, box ggchart.Rect, padding float64) float64 {
	if padding < 0 {
		return 1
	}
	spec = spec.normalize()
	w, h := box.Width(), box.Height()
	band := spec.EndRadius - spec.StartRadius
	if w+2*padding > band {
		return 0
	}
	middle := spec.MidRadius()
	outer := middle + (w+padding)/2
	inner := middle - (w+padding)/2
	r2 := spec.EndRadius * spec.EndRadius
	l1 := math.Sqrt(math.Max(0, r2-outer*outer))
	l2 := math.Sqrt(math.Max(0, r2-inner*inner))
	span := spec.EndAngle - spec.StartAngle
	l3 := inner
	if span <= math.Pi/2 {
		l3 = math.Abs(math.Tan(span/2)) * inner
	}
	if h+2*padding > 2*min(l1, l2, l3) {
		return 0
	}
	return 1
}

// LabelProvider decides the label text of a data item and may adjust its
// placement afterwards.
type LabelProvider interface {
	CreateLabel(index int, value float64, text string) (string, bool)
	PlaceLabel(p *Placement, index int)
}

// NopLabelProvider labels every item with the text it was given.
type NopLabelProvider struct{}

// CreateLabel returns text; empty text means no label.
func (NopLabelProvider) CreateLabel(_ int, _ float64, text string) (string, bool) {
	return text, text != ""
}

// PlaceLabel leaves p unchanged.
func (NopLabelProvider) PlaceLabel(*Placement, int) {}

// SeriesKind identifies the series a shape belongs to.
type SeriesKind uint8

// Series kinds with their own label behavior.
const (
	KindLine SeriesKind = iota
	KindPie
	KindGauge
)

// pieLabels hides the labels of empty slices.
type pieLabels struct{ NopLabelProvider }

func (pieLabels) CreateLabel(_ int, value float64, text string) (string, bool) {
	return text, text != "" && value != 0
}

// gaugeLabels shows only the value sector's label.
type gaugeLabels struct{ NopLabelProvider }

func (gaugeLabels) CreateLabel(index int, _ float64, text string) (string, bool) {
	return text, index == 0 && text != ""
}

func (gaugeLabels) PlaceLabel(p *Placement, _ int) {
	p.RotationRads = 0
}

// LabelProviderFor returns the label provider for a series kind.
func LabelProviderFor(kind SeriesKind) LabelProvider {
	switch kind {
	case KindPie:
		return pieLabels{}
	case KindGauge:
		return gaugeLabels{}
	}
	return NopLabelProvider{}
}
