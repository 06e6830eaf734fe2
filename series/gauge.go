package series

import (
	"fmt"
	"maps"
	"math"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/attr"
	"github.com/gogpu/ggchart/sprite"
)

// Band is a colored range of a gauge. A NaN Start continues from the
// previous band and a NaN End runs to the maximum. A Threshold band only
// carries its End; when it is the last band a trailing band up to the
// maximum is added.
type Band struct {
	Start, End float64
	Threshold  bool
	// Color is taken from the palette when fully transparent.
	Color ggchart.RGBA
	Label string
	Style attr.Changes
}

// Thresholds returns one threshold band per value.
func Thresholds(values ...float64) []Band {
	out := make([]Band, len(values))
	for i, v := range values {
		out[i] = Band{Start: math.NaN(), End: v, Threshold: true}
	}
	return out
}

// NormalizeBands resolves the start and end of every band within
// [lo, hi]. Without bands a single band spans the whole range.
func NormalizeBands(bands []Band, lo, hi float64) []Band {
	if len(bands) == 0 {
		return []Band{{Start: lo, End: hi}}
	}
	out := make([]Band, 0, len(bands)+1)
	for i, b := range bands {
		prev := lo
		if i > 0 {
			prev = out[i-1].End
		}
		if b.Threshold {
			b.Start, b.End = prev, math.Min(b.End, hi)
			out = append(out, b)
			if i == len(bands)-1 && b.End < hi {
				out = append(out, Band{Start: b.End, End: hi})
			}
			continue
		}
		if math.IsNaN(b.Start) {
			b.Start = prev
		} else {
			b.Start = math.Max(b.Start, lo)
		}
		if math.IsNaN(b.End) {
			b.End = hi
		} else {
			b.End = math.Min(b.End, hi)
		}
		out = append(out, b)
	}
	return out
}

// Gauge describes a gauge chart: a value drawn over colored bands. Use
// DefaultGauge for the usual starting values.
type Gauge struct {
	Value            float64
	Minimum, Maximum float64

	// Needle draws the value as a line instead of a filled sector.
	Needle bool
	// NeedleLength is a percentage of the radius.
	NeedleLength float64
	NeedleWidth  float64
	// Donut is the inner radius as a percentage of the radius.
	Donut float64

	Rotation   float64
	TotalAngle float64
	WholeDisk  bool

	Bands []Band
	// Colors[0] paints the value; bands cycle through the rest.
	Colors []ggchart.RGBA
	Rect   ggchart.Rect

	Formatter *Formatter
}

// DefaultGauge returns a quarter-circle gauge over [0, 100].
func DefaultGauge() Gauge {
	return Gauge{
		Maximum:      100,
		NeedleLength: 90,
		NeedleWidth:  4,
		Donut:        30,
		TotalAngle:   math.Pi / 2,
	}
}

// Clamp limits v to [Minimum, Maximum].
func (g *Gauge) Clamp(v float64) float64 {
	return math.Min(g.Maximum, math.Max(v, g.Minimum))
}

// ValueToAngle maps a clamped value to its angle from the gauge start.
// An empty range maps everything to 0.
func (g *Gauge) ValueToAngle(v float64) float64 {
	span := g.Maximum - g.Minimum
	if span == 0 {
		return 0
	}
	return g.TotalAngle * (g.Clamp(v) - g.Minimum) / span
}

// Fit returns the largest radius that fits the gauge into Rect and the
// matching center.
func (g *Gauge) Fit() (center ggchart.Point, radius float64) {
	half := g.TotalAngle / 2
	if g.WholeDisk {
		half = math.Pi
	}
	donut := g.Donut / 100
	var w, h float64
	if half <= math.Pi/2 {
		w = 2 * math.Sin(half)
		h = 1 - donut*math.Cos(half)
	} else {
		w = 2
		h = 1 - math.Cos(half)
	}
	rw, rh := g.Rect.Width(), g.Rect.Height()
	radius = math.Min(rw/w, rh/h)
	center = ggchart.Pt(g.Rect.Min.X+rw/2, g.Rect.Min.Y+radius+(rh-h*radius)/2)
	return center, radius
}

// Sprites builds the value sector (index 0) followed by one sector per
// normalized band.
func (g *Gauge) Sprites(opts ...sprite.SectorOption) ([]*sprite.Sector, error) {
	center, radius := g.Fit()
	base := attr.Changes{
		sprite.AttrCenterX:      center.X,
		sprite.AttrCenterY:      center.Y,
		sprite.AttrStartRho:     radius * g.Donut / 100,
		attr.KeyRotationRads:    g.Rotation - (g.TotalAngle+math.Pi)/2,
		attr.KeyRotationCenterX: center.X,
		attr.KeyRotationCenterY: center.Y,
	}

	angle := g.ValueToAngle(g.Value)
	value := maps.Clone(base)
	maps.Copy(value, attr.Changes{
		sprite.AttrStartAngle:    0.0,
		sprite.AttrEndAngle:      angle,
		sprite.AttrEndRho:        radius * g.NeedleLength / 100,
		sprite.AttrFillStyle:     pick(g.Colors, 0),
		sprite.AttrStrokeStyle:   pick(g.Colors, 0),
		sprite.AttrStrokeOpacity: 0.0,
		sprite.AttrLineWidth:     0.0,
		sprite.AttrZIndex:        10.0,
		sprite.AttrLabel:         g.Formatter.Decimal(g.Clamp(g.Value)),
	})
	if g.Needle {
		maps.Copy(value, attr.Changes{
			sprite.AttrStartAngle:    angle,
			sprite.AttrStrokeOpacity: 1.0,
			sprite.AttrLineWidth:     g.NeedleWidth,
		})
	}

	bands := NormalizeBands(g.Bands, g.Minimum, g.Maximum)
	out := make([]*sprite.Sector, 0, len(bands)+1)
	sec, err := g.sector(value, 0, opts)
	if err != nil {
		return nil, err
	}
	out = append(out, sec)

	for i, b := range bands {
		color := b.Color
		if color.IsTransparent() {
			color = pick(g.Colors, i+1)
		}
		changes := maps.Clone(base)
		maps.Copy(changes, attr.Changes{
			sprite.AttrStartAngle:           g.ValueToAngle(b.Start),
			sprite.AttrEndAngle:             g.ValueToAngle(b.End),
			sprite.AttrEndRho:               radius,
			sprite.AttrFillStyle:            color,
			sprite.AttrStrokeOpacity:        0.0,
			sprite.AttrLabel:                b.Label,
			sprite.AttrLabelOverflowPadding: -1.0,
		})
		maps.Copy(changes, b.Style)
		sec, err := g.sector(changes, i+1, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, nil
}

func (g *Gauge) sector(changes attr.Changes, index int, opts []sprite.SectorOption) (*sprite.Sector, error) {
	all := append([]sprite.SectorOption{
		sprite.WithIndex(index),
		sprite.WithValue(g.Value),
		sprite.WithSectorLabelProvider(sprite.LabelProviderFor(sprite.KindGauge)),
	}, opts...)
	sec, err := sprite.NewSector(changes, all...)
	if err != nil {
		return nil, fmt.Errorf("series: gauge sector %d: %w", index, err)
	}
	return sec, nil
}
