package series

import (
	"fmt"
	"maps"
	"math"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/attr"
	"github.com/gogpu/ggchart/sprite"
)

// rotationOffset turns angle 0 from three o'clock to twelve o'clock.
const rotationOffset = -math.Pi / 2

// Pie describes a pie or donut chart. Use DefaultPie for the usual
// starting values.
type Pie struct {
	Values []float64
	// Lengths optionally scales each slice's radial length by its share of
	// the largest visible length.
	Lengths []float64
	Labels  []string
	Hidden  []bool
	Colors  []ggchart.RGBA

	Center ggchart.Point
	Radius float64
	// Donut and RadiusFactor are percentages of Radius.
	Donut        float64
	RadiusFactor float64

	Rotation   float64
	Clockwise  bool
	TotalAngle float64

	// Style is applied to every slice after the layout attributes.
	Style     attr.Changes
	Formatter *Formatter
}

// DefaultPie returns a full clockwise pie.
func DefaultPie() Pie {
	return Pie{
		RadiusFactor: 100,
		Clockwise:    true,
		TotalAngle:   2 * math.Pi,
	}
}

// Slice is the layout of one pie value.
type Slice struct {
	Index                int
	StartAngle, EndAngle float64
	StartRho, EndRho     float64
	Hidden               bool
}

func (p *Pie) hidden(i int) bool { return i < len(p.Hidden) && p.Hidden[i] }

func (p *Pie) length(i int) float64 {
	if i >= len(p.Lengths) {
		return 0
	}
	return absOrZero(p.Lengths[i])
}

func absOrZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Abs(v)
}

// Layout returns the slice angles. Angles accumulate absolute values over
// TotalAngle; hidden slices collapse to zero span.
func (p *Pie) Layout() []Slice {
	n := len(p.Values)
	sums := make([]float64, n)
	var total, maxLen float64
	for i := range n {
		if !p.hidden(i) {
			total += absOrZero(p.Values[i])
			maxLen = math.Max(maxLen, p.length(i))
		}
		sums[i] = total
	}
	var unit float64
	if total != 0 {
		unit = p.TotalAngle / total
	}
	dir := 1.0
	if !p.Clockwise {
		dir = -1
	}
	startRho := p.Radius * p.Donut / 100
	endRho := p.Radius * p.RadiusFactor / 100

	out := make([]Slice, n)
	last := 0.0
	for i := range n {
		s := Slice{
			Index:      i,
			StartAngle: last,
			EndAngle:   dir * sums[i] * unit,
			StartRho:   startRho,
			EndRho:     endRho,
			Hidden:     p.hidden(i),
		}
		if maxLen > 0 {
			s.EndRho = startRho + (endRho-startRho)*p.length(i)/maxLen
		}
		out[i] = s
		last = s.EndAngle
	}
	return out
}

func (p *Pie) label(i int) string {
	if i < len(p.Labels) {
		return p.Labels[i]
	}
	return p.Formatter.Decimal(p.Values[i])
}

// Sprites builds one sector per value. opts are applied after the pie's
// own index, value and label provider options.
func (p *Pie) Sprites(opts ...sprite.SectorOption) ([]*sprite.Sector, error) {
	slices := p.Layout()
	out := make([]*sprite.Sector, 0, len(slices))
	for _, s := range slices {
		changes := attr.Changes{
			sprite.AttrCenterX:          p.Center.X,
			sprite.AttrCenterY:          p.Center.Y,
			sprite.AttrStartAngle:       s.StartAngle,
			sprite.AttrEndAngle:         s.EndAngle,
			sprite.AttrStartRho:         s.StartRho,
			sprite.AttrEndRho:           s.EndRho,
			sprite.AttrFillStyle:        pick(p.Colors, s.Index),
			sprite.AttrLabel:            p.label(s.Index),
			sprite.AttrLabelOrientation: "vertical",
			sprite.AttrHidden:           s.Hidden,
			attr.KeyRotationRads:        p.Rotation + rotationOffset,
			attr.KeyRotationCenterX:     p.Center.X,
			attr.KeyRotationCenterY:     p.Center.Y,
		}
		maps.Copy(changes, p.Style)
		all := append([]sprite.SectorOption{
			sprite.WithIndex(s.Index),
			sprite.WithValue(p.Values[s.Index]),
			sprite.WithSectorLabelProvider(sprite.LabelProviderFor(sprite.KindPie)),
		}, opts...)
		sec, err := sprite.NewSector(changes, all...)
		if err != nil {
			return nil, fmt.Errorf("series: pie slice %d: %w", s.Index, err)
		}
		out = append(out, sec)
	}
	ggchart.Logger().Debug("series: pie laid out", "slices", len(out))
	return out, nil
}

// ItemForAngle returns the visible slice spanning angle, measured in
// layout space.
func (p *Pie) ItemForAngle(angle float64) (int, bool) {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	for _, s := range p.Layout() {
		if s.Hidden {
			continue
		}
		lo, hi := math.Min(s.StartAngle, s.EndAngle), math.Max(s.StartAngle, s.EndAngle)
		if lo <= angle && angle <= hi {
			return s.Index, true
		}
	}
	return 0, false
}

// ItemForPoint returns the visible slice under the surface point (x, y).
func (p *Pie) ItemForPoint(x, y float64) (int, bool) {
	dx, dy := x-p.Center.X, y-p.Center.Y
	direction := math.Atan2(dy, dx) - p.Rotation
	r := math.Hypot(dx, dy)
	inner := p.Radius * p.Donut / 100
	for _, s := range p.Layout() {
		if s.Hidden || r < inner || r > s.EndRho {
			continue
		}
		if p.betweenAngle(direction, s.StartAngle, s.EndAngle) {
			return s.Index, true
		}
	}
	return 0, false
}

// betweenAngle reports whether direction x lies within the slice [a, b)
// once the slice is rotated into surface space.
func (p *Pie) betweenAngle(x, a, b float64) bool {
	const full = 2 * math.Pi
	if math.Abs(b-a) >= full-1e-9 {
		return true
	}
	if p.Clockwise {
		a += rotationOffset
		b += rotationOffset
	} else {
		x, a, b = -x, -a-rotationOffset, -b-rotationOffset
	}
	b -= a
	x -= a
	x = math.Mod(math.Mod(x, full)+full, full)
	b = math.Mod(math.Mod(b, full)+full, full)
	return x < b
}
