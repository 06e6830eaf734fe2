package main

import (
	"errors"
	"math"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/attr"
	"github.com/gogpu/ggchart/recording"
	"github.com/gogpu/ggchart/series"
	"github.com/gogpu/ggchart/sprite"
)

// labelSink collects visible label placements for drawing after the
// sprites.
type labelSink struct {
	placed []sprite.Placement
}

func (l *labelSink) PutMarker(kind sprite.MarkerKind, p sprite.Placement, _ int) {
	if kind == sprite.KindLabels && !p.Hidden {
		l.placed = append(l.placed, p)
	}
}

func draw(sc *scene, width, height int, m sprite.Measurer) (*recording.Recording, error) {
	rec := recording.NewRecorder(width, height)
	bg := ggchart.White
	var errs []error
	if sc.Background != "" {
		c, err := ggchart.ParseColor(sc.Background)
		if err != nil {
			errs = append(errs, err)
		} else {
			bg = c
		}
	}
	fillRect(rec, ggchart.XYWH(0, 0, float64(width), float64(height)), bg)

	sink := &labelSink{}
	if sc.Line != nil {
		errs = append(errs, drawLine(rec, sc.Line, float64(height), sink, m))
	}
	if sc.Pie != nil {
		p := sc.Pie.pie()
		placer := &sprite.LabelPlacer{Measurer: m, Display: sprite.LabelDisplay(sc.Pie.Display)}
		secs, err := p.Sprites(sprite.WithSectorMarkers(sink), sprite.WithSectorLabelPlacer(placer))
		errs = append(errs, err, sprite.RenderAll(rec, renderers(secs)...))
	}
	if sc.Gauge != nil {
		g := sc.Gauge.gauge()
		placer := &sprite.LabelPlacer{Measurer: m}
		secs, err := g.Sprites(sprite.WithSectorMarkers(sink), sprite.WithSectorLabelPlacer(placer))
		errs = append(errs, err, sprite.RenderAll(rec, renderers(secs)...))
	}
	drawLabels(rec, sink.placed, m)
	return rec.FinishRecording(), errors.Join(errs...)
}

func renderers(secs []*sprite.Sector) []sprite.Renderer {
	out := make([]sprite.Renderer, len(secs))
	for i, s := range secs {
		out[i] = s
	}
	return out
}

func fillRect(rec *recording.Recorder, r ggchart.Rect, c ggchart.RGBA) {
	p := recording.DefaultPaint()
	p.FillColor = c
	rec.SetPaint(p)
	rec.BeginPath()
	rec.MoveTo(r.Min.X, r.Min.Y)
	rec.LineTo(r.Max.X, r.Min.Y)
	rec.LineTo(r.Max.X, r.Max.Y)
	rec.LineTo(r.Min.X, r.Max.Y)
	rec.ClosePath()
	rec.Fill()
}

// drawLine renders the line in a y-up frame so larger values sit higher.
func drawLine(rec *recording.Recorder, ls *lineScene, height float64, sink sprite.MarkerSink, m sprite.Measurer) error {
	x, y := ls.data()
	var opts []sprite.LineOption
	if ls.Labels {
		opts = append(opts,
			sprite.WithMarkers(sink),
			sprite.WithLabelPlacer(&sprite.LabelPlacer{Measurer: m}))
	}
	line, err := series.NewLine(x, y, attr.Changes(ls.Style), opts...)
	if err != nil {
		return err
	}

	r := ls.Box.rect()
	view := series.View{Rect: ggchart.XYWH(r.Min.X, height-r.Max.Y, r.Width(), r.Height())}
	view.MinX, view.MaxX = extent(x)
	view.MinY, view.MaxY = extent(y)

	rec.Save()
	defer rec.Restore()
	rec.SetTransform(ggchart.Translate(0, height).Multiply(ggchart.Scale(1, -1)))
	return line.Render(rec, view)
}

// extent returns the finite range of v, widened to be non-empty.
func extent(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, f := range v {
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			lo, hi = math.Min(lo, f), math.Max(hi, f)
		}
	}
	if lo > hi {
		return 0, 1
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

// drawLabels centers each label on its anchor along its rotation.
func drawLabels(rec *recording.Recorder, placed []sprite.Placement, m sprite.Measurer) {
	for _, p := range placed {
		paint := recording.DefaultPaint()
		paint.GlobalAlpha = p.Alpha
		rec.SetPaint(paint)
		if p.Callout {
			rec.BeginPath()
			rec.MoveTo(p.CalloutStart.X, p.CalloutStart.Y)
			rec.LineTo(p.CalloutEnd.X, p.CalloutEnd.Y)
			rec.Stroke()
		}
		box := m.Measure(p.Text)
		dx, dy := -box.Width()/2, box.Height()/3
		sin, cos := math.Sincos(p.RotationRads)
		rec.FillText(p.Text, p.X+dx*cos-dy*sin, p.Y+dx*sin+dy*cos, p.RotationRads)
	}
}
