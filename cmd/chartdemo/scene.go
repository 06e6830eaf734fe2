package main

import (
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/attr"
	"github.com/gogpu/ggchart/series"
)

// box is a rectangle written as [x, y, width, height] in y-down pixels.
type box [4]float64

func (b box) rect() ggchart.Rect { return ggchart.XYWH(b[0], b[1], b[2], b[3]) }

type scene struct {
	Background string      `yaml:"background"`
	Line       *lineScene  `yaml:"line"`
	Pie        *pieScene   `yaml:"pie"`
	Gauge      *gaugeScene `yaml:"gauge"`
}

// lineScene draws X and Y, or a damped wave of Samples points when both
// are empty.
type lineScene struct {
	Box     box            `yaml:"box"`
	X       []float64      `yaml:"x"`
	Y       []float64      `yaml:"y"`
	Samples int            `yaml:"samples"`
	Labels  bool           `yaml:"labels"`
	Style   map[string]any `yaml:"style"`
}

type pieScene struct {
	Box      box            `yaml:"box"`
	Values   []float64      `yaml:"values"`
	Labels   []string       `yaml:"labels"`
	Hidden   []bool         `yaml:"hidden"`
	Donut    float64        `yaml:"donut"`
	Rotation float64        `yaml:"rotation"`
	Display  string         `yaml:"display"`
	Style    map[string]any `yaml:"style"`
}

type gaugeScene struct {
	Box        box      `yaml:"box"`
	Value      float64  `yaml:"value"`
	Minimum    float64  `yaml:"minimum"`
	Maximum    *float64 `yaml:"maximum"`
	Needle     bool     `yaml:"needle"`
	TotalAngle *float64 `yaml:"totalAngle"`
	Donut      *float64 `yaml:"donut"`
	Bands      []band   `yaml:"bands"`
}

// band decodes either a bare threshold number or a mapping with optional
// start, end, color and label.
type band struct {
	series.Band
}

func (b *band) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var end float64
		if err := n.Decode(&end); err != nil {
			return err
		}
		b.Band = series.Thresholds(end)[0]
		return nil
	}
	var raw struct {
		Start *float64 `yaml:"start"`
		End   *float64 `yaml:"end"`
		Color string   `yaml:"color"`
		Label string   `yaml:"label"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	b.Band = series.Band{Start: math.NaN(), End: math.NaN(), Label: raw.Label}
	if raw.Start != nil {
		b.Start = *raw.Start
	}
	if raw.End != nil {
		b.End = *raw.End
	}
	if raw.Color != "" {
		c, err := ggchart.ParseColor(raw.Color)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		b.Color = c
	}
	return nil
}

func loadScene(r io.Reader) (*scene, error) {
	var s scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &s, nil
}

func (l *lineScene) data() (x, y []float64) {
	if len(l.X) > 0 {
		return l.X, l.Y
	}
	n := max(l.Samples, 2)
	x, y = make([]float64, n), make([]float64, n)
	for i := range n {
		t := float64(i) / float64(n-1)
		x[i] = t * 100
		y[i] = 50 + 40*math.Exp(-2*t)*math.Sin(t*8*math.Pi)
	}
	return x, y
}

func (p *pieScene) pie() series.Pie {
	out := series.DefaultPie()
	r := p.Box.rect()
	out.Values = p.Values
	out.Labels = p.Labels
	out.Hidden = p.Hidden
	out.Donut = p.Donut
	out.Rotation = p.Rotation
	out.Center = r.Center()
	out.Radius = math.Min(r.Width(), r.Height()) / 2
	out.Style = attr.Changes(p.Style)
	return out
}

func (g *gaugeScene) gauge() series.Gauge {
	out := series.DefaultGauge()
	out.Value = g.Value
	out.Minimum = g.Minimum
	if g.Maximum != nil {
		out.Maximum = *g.Maximum
	}
	if g.TotalAngle != nil {
		out.TotalAngle = *g.TotalAngle
	}
	if g.Donut != nil {
		out.Donut = *g.Donut
	}
	out.Needle = g.Needle
	out.Rect = g.Box.rect()
	for _, b := range g.Bands {
		out.Bands = append(out.Bands, b.Band)
	}
	return out
}
