package sprite

import (
	"math"
	"sync"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/attr"
	"github.com/gogpu/ggchart/recording"
)

// Sector attribute names.
const (
	AttrCenterX              = "centerX"
	AttrCenterY              = "centerY"
	AttrStartAngle           = "startAngle"
	AttrEndAngle             = "endAngle"
	AttrStartRho             = "startRho"
	AttrEndRho               = "endRho"
	AttrMargin               = "margin"
	AttrLabel                = "label"
	AttrLabelOrientation     = "labelOrientation"
	AttrCalloutLength        = "calloutLength"
	AttrLabelOverflowPadding = "labelOverflowPadding"
)

const sectorEpsilon = 1e-6

// SectorSpec is the geometry of a pie or gauge sector. Angles are in
// radians.
type SectorSpec struct {
	CenterX, CenterY     float64
	StartAngle, EndAngle float64
	StartRadius          float64
	EndRadius            float64
	Margin               float64
}

// normalize orders the angle and radius pairs.
func (s SectorSpec) normalize() SectorSpec {
	if s.StartAngle > s.EndAngle {
		s.StartAngle, s.EndAngle = s.EndAngle, s.StartAngle
	}
	if s.StartRadius > s.EndRadius {
		s.StartRadius, s.EndRadius = s.EndRadius, s.StartRadius
	}
	return s
}

// MidAngle returns the angle halfway through the sector.
func (s SectorSpec) MidAngle() float64 { return (s.StartAngle + s.EndAngle) / 2 }

// MidRadius returns the radius halfway through the band.
func (s SectorSpec) MidRadius() float64 { return (s.StartRadius + s.EndRadius) / 2 }

// SectorPath emits the outline of spec as one closed subpath.
//
// The outer arc sweeps positively and the inner one returns; a sector
// spanning more than π sets the large-arc flag on both. An inner radius of
// ~0 collapses the sector to a wedge and a full turn is drawn as two half
// arcs per ring. A zero-span sector keeps its inner radius, so its outline
// is the radial segment from the inner ring to the outer one.
func SectorPath(s recording.Surface, spec SectorSpec) {
	spec = spec.normalize()
	mid := spec.MidAngle()
	center := ggchart.Pt(
		spec.CenterX+spec.Margin*math.Cos(mid),
		spec.CenterY+spec.Margin*math.Sin(mid),
	)
	start, end := spec.StartAngle, spec.EndAngle
	r0, r1 := spec.StartRadius, spec.EndRadius
	span := end - start
	large := span > math.Pi

	innerStart := ggchart.Polar(center, start, r0)
	innerEnd := ggchart.Polar(center, end, r0)
	outerStart := ggchart.Polar(center, start, r1)
	outerEnd := ggchart.Polar(center, end, r1)
	wedge := r0 < sectorEpsilon

	if span >= 2*math.Pi-sectorEpsilon {
		half := start + math.Pi
		outerHalf := ggchart.Polar(center, half, r1)
		s.MoveTo(outerStart.X, outerStart.Y)
		s.ArcTo(r1, r1, 0, false, true, outerHalf.X, outerHalf.Y)
		s.ArcTo(r1, r1, 0, false, true, outerStart.X, outerStart.Y)
		s.ClosePath()
		if r0 < sectorEpsilon {
			return
		}
		innerHalf := ggchart.Polar(center, half, r0)
		s.MoveTo(innerStart.X, innerStart.Y)
		s.ArcTo(r0, r0, 0, false, false, innerHalf.X, innerHalf.Y)
		s.ArcTo(r0, r0, 0, false, false, innerStart.X, innerStart.Y)
		s.ClosePath()
		return
	}

	if wedge {
		s.MoveTo(center.X, center.Y)
		s.LineTo(outerStart.X, outerStart.Y)
		s.ArcTo(r1, r1, 0, large, true, outerEnd.X, outerEnd.Y)
		s.ClosePath()
		return
	}
	s.MoveTo(innerStart.X, innerStart.Y)
	s.LineTo(outerStart.X, outerStart.Y)
	s.ArcTo(r1, r1, 0, large, true, outerEnd.X, outerEnd.Y)
	s.LineTo(innerEnd.X, innerEnd.Y)
	s.ArcTo(r0, r0, 0, large, false, innerStart.X, innerStart.Y)
	s.ClosePath()
}

var sectorSchema = sync.OnceValue(func() *attr.Schema {
	return attr.MustSchema(baseDefinition(), attr.Definition{
		Processors: map[string]attr.Processor{
			AttrCenterX:              attr.Number(),
			AttrCenterY:              attr.Number(),
			AttrStartAngle:           attr.Number(),
			AttrEndAngle:             attr.Number(),
			AttrStartRho:             attr.Number(),
			AttrEndRho:               attr.Number(),
			AttrMargin:               attr.Number(),
			AttrLabel:                attr.Text(),
			AttrLabelOrientation:     attr.Enum("horizontal", "vertical", ""),
			AttrCalloutLength:        attr.Number(),
			AttrLabelOverflowPadding: attr.Number(),
		},
		Aliases: map[string]string{
			"rho":         AttrEndRho,
			"startRadius": AttrStartRho,
			"endRadius":   AttrEndRho,
		},
		Defaults: attr.Changes{
			AttrCenterX:              0,
			AttrCenterY:              0,
			AttrStartAngle:           0,
			AttrEndAngle:             0,
			AttrStartRho:             0,
			AttrEndRho:               150,
			AttrMargin:               0,
			AttrLabel:                "",
			AttrLabelOrientation:     "",
			AttrCalloutLength:        40,
			AttrLabelOverflowPadding: 5,
		},
		Triggers: map[string][]string{
			AttrCenterX:    {updaterBBox},
			AttrCenterY:    {updaterBBox},
			AttrStartAngle: {updaterBBox},
			AttrEndAngle:   {updaterBBox},
			AttrStartRho:   {updaterBBox},
			AttrEndRho:     {updaterBBox},
			AttrMargin:     {updaterBBox},
			AttrLabel:      {attr.UpdaterCanvas},
		},
	})
})

// SectorSchema returns the shared schema of sector shapes.
func SectorSchema() *attr.Schema { return sectorSchema() }

// SectorOption configures a Sector.
type SectorOption func(*Sector)

// WithSectorMarkers binds a sink for the sector label.
func WithSectorMarkers(sink MarkerSink) SectorOption {
	return func(s *Sector) { s.sink = sink }
}

// WithSectorLabelPlacer sets the placer used for the sector label.
func WithSectorLabelPlacer(lp *LabelPlacer) SectorOption {
	return func(s *Sector) { s.placer = lp }
}

// WithSectorLabelProvider sets the label provider.
func WithSectorLabelProvider(p LabelProvider) SectorOption {
	return func(s *Sector) { s.provider = p }
}

// WithIndex sets the data index reported with the sector label.
func WithIndex(i int) SectorOption {
	return func(s *Sector) { s.index = i }
}

// WithValue sets the data value the label provider is asked about.
func WithValue(v float64) SectorOption {
	return func(s *Sector) { s.value = v }
}

// Sector is a pie or gauge slice.
type Sector struct {
	Shape

	sink     MarkerSink
	placer   *LabelPlacer
	provider LabelProvider
	index    int
	value    float64
}

// NewSector returns a sector with changes applied over the defaults.
func NewSector(changes attr.Changes, opts ...SectorOption) (*Sector, error) {
	s := &Sector{provider: NopLabelProvider{}}
	s.init(sectorSchema(), s)
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Apply(changes); err != nil {
		return nil, err
	}
	return s, nil
}

// Spec returns the current sector geometry.
func (s *Sector) Spec() SectorSpec {
	a := s.attrs
	return SectorSpec{
		CenterX:     a.Float(AttrCenterX),
		CenterY:     a.Float(AttrCenterY),
		StartAngle:  a.Float(AttrStartAngle),
		EndAngle:    a.Float(AttrEndAngle),
		StartRadius: a.Float(AttrStartRho),
		EndRadius:   a.Float(AttrEndRho),
		Margin:      a.Float(AttrMargin),
	}
}

// PlainBBox returns the square around the sector's outer circle.
func (s *Sector) PlainBBox() ggchart.Rect {
	spec := s.Spec().normalize()
	mid := spec.MidAngle()
	c := ggchart.Polar(ggchart.Pt(spec.CenterX, spec.CenterY), mid, spec.Margin)
	r := spec.EndRadius
	return ggchart.NewRect(ggchart.Pt(c.X-r, c.Y-r), ggchart.Pt(c.X+r, c.Y+r))
}

// BBox returns PlainBBox mapped by the shape matrix.
func (s *Sector) BBox() ggchart.Rect { return s.transformedBBox(s.PlainBBox) }

// Render draws the sector and places its label.
func (s *Sector) Render(surface recording.Surface) error {
	outer := surface.Transform()
	paint := s.Paint()

	surface.Save()
	surface.SetTransform(outer.Multiply(s.Matrix()))
	surface.SetPaint(paint)
	surface.BeginPath()
	SectorPath(surface, s.Spec())
	if !s.attrs.Bool(AttrTransformFillStroke) {
		// The path is already mapped; stroke widths stay in surface units.
		surface.SetTransform(outer)
	}
	if !paint.Fill().IsTransparent() {
		surface.Fill()
	}
	if !paint.Stroke().IsTransparent() && paint.LineWidth > 0 {
		surface.Stroke()
	}
	surface.Restore()

	s.placeLabel(outer.Multiply(s.Matrix()))
	s.attrs.ClearDirty()
	return nil
}

func (s *Sector) placeLabel(m ggchart.Matrix) {
	if s.sink == nil {
		return
	}
	text, ok := s.provider.CreateLabel(s.index, s.value, s.attrs.Text(AttrLabel))
	if !ok {
		return
	}
	p := s.placer.PlaceSectorLabel(text, s.Spec(),
		s.attrs.Text(AttrLabelOrientation),
		s.attrs.Float(AttrCalloutLength),
		s.attrs.Float(AttrLabelOverflowPadding), m)
	s.provider.PlaceLabel(&p, s.index)
	s.sink.PutMarker(KindLabels, p, s.index)
}
