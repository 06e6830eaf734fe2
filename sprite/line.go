package sprite

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/attr"
	"github.com/gogpu/ggchart/recording"
)

// Line attribute names.
const (
	AttrDataX         = "dataX"
	AttrDataY         = "dataY"
	AttrLabels        = "labels"
	AttrSmooth        = "smooth"
	AttrFillArea      = "fillArea"
	AttrStep          = "step"
	AttrPreciseStroke = "preciseStroke"
	AttrFlipXY        = "flipXY"
	AttrXAxis         = "xAxis"
	AttrYCap          = "yCap"
)

const (
	updaterData   = "data"
	updaterSmooth = "smooth"
)

// DefaultYCap bounds the magnitude of stroked y coordinates.
const DefaultYCap = 1 << 20

// XAxis describes the axis the area under a line is closed against.
type XAxis struct {
	Vertical   bool
	Floating   bool
	FloatingAt float64
}

func toXAxis(v any) (any, error) {
	switch a := v.(type) {
	case XAxis:
		return a, nil
	case *XAxis:
		if a == nil {
			return nil, fmt.Errorf("nil axis")
		}
		return *a, nil
	case map[string]any:
		var out XAxis
		if s, ok := a["alignment"].(string); ok {
			out.Vertical = s == "vertical"
		}
		if f, ok := a["floatingAt"]; ok {
			x, err := attr.Number().Process(f)
			if err != nil {
				return nil, err
			}
			out.Floating, out.FloatingAt = true, x.(float64)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported axis %T", v)
}

func toLabels(v any) (any, error) {
	switch l := v.(type) {
	case []string:
		return append([]string(nil), l...), nil
	case []any:
		out := make([]string, len(l))
		for i, e := range l {
			if e != nil {
				out[i] = fmt.Sprint(e)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported labels %T", v)
}

var lineSchema = sync.OnceValue(func() *attr.Schema {
	return attr.MustSchema(baseDefinition(), attr.Definition{
		Processors: map[string]attr.Processor{
			AttrDataX:                attr.Series(),
			AttrDataY:                attr.Series(),
			AttrLabels:               attr.Custom(toLabels),
			AttrSmooth:               attr.Bool(),
			AttrFillArea:             attr.Bool(),
			AttrStep:                 attr.Bool(),
			AttrPreciseStroke:        attr.Bool(),
			AttrFlipXY:               attr.Bool(),
			AttrXAxis:                attr.Custom(toXAxis),
			AttrYCap:                 attr.Number(),
			AttrLabelOverflowPadding: attr.Number(),
		},
		Defaults: attr.Changes{
			AttrDataX:                []float64{},
			AttrDataY:                []float64{},
			AttrLabels:               []string{},
			AttrSmooth:               false,
			AttrFillArea:             false,
			AttrStep:                 false,
			AttrPreciseStroke:        true,
			AttrFlipXY:               false,
			AttrYCap:                 DefaultYCap,
			AttrLabelOverflowPadding: 5,
		},
		Triggers: map[string][]string{
			AttrDataX:         {updaterData, updaterBBox, updaterSmooth},
			AttrDataY:         {updaterData, updaterBBox, updaterSmooth},
			AttrSmooth:        {updaterSmooth},
			AttrFillArea:      {attr.UpdaterCanvas},
			AttrStep:          {attr.UpdaterCanvas},
			AttrPreciseStroke: {attr.UpdaterCanvas},
			AttrLabels:        {attr.UpdaterCanvas},
		},
		Updaters: []attr.Updater{
			{Name: updaterData, Fn: updateData},
			{Name: updaterSmooth, Fn: updateSmooth},
		},
		Animation: map[string]attr.Interpolator{
			AttrYCap: attr.Step,
		},
	})
})

// LineSchema returns the shared schema of line shapes.
func LineSchema() *attr.Schema { return lineSchema() }

// Segment is one straight or curved piece of a line, in local
// coordinates. Index is the list position of its end point.
type Segment struct {
	From, To ggchart.Point
	Smooth   bool
	Index    int
}

// SegmentRenderer returns style changes for one segment. Non-empty changes
// end the current strip, which is drawn with them applied.
type SegmentRenderer func(seg Segment) attr.Changes

// LineOption configures a Line.
type LineOption func(*Line)

// WithMarkers binds a sink for point markers and labels.
func WithMarkers(sink MarkerSink) LineOption {
	return func(l *Line) { l.sink = sink }
}

// WithLabelPlacer sets the placer for point labels.
func WithLabelPlacer(lp *LabelPlacer) LineOption {
	return func(l *Line) { l.placer = lp }
}

// WithLabelProvider sets the label provider.
func WithLabelProvider(p LabelProvider) LineOption {
	return func(l *Line) { l.provider = p }
}

// WithSegmentRenderer installs a per-segment style hook.
func WithSegmentRenderer(fn SegmentRenderer) LineOption {
	return func(l *Line) { l.renderer = fn }
}

// WithRect sets the plot rectangle used to place the x axis origin.
func WithRect(r ggchart.Rect) LineOption {
	return func(l *Line) { l.rect = r }
}

// Line is a series line rebuilt from min/max aggregates.
type Line struct {
	Shape

	sink     MarkerSink
	placer   *LabelPlacer
	provider LabelProvider
	renderer SegmentRenderer
	rect     ggchart.Rect

	dataMinX, dataMaxX float64
	dataMinY, dataMaxY float64
	smoothX, smoothY   []float64
}

// NewLine returns a line with changes applied over the defaults.
func NewLine(changes attr.Changes, opts ...LineOption) (*Line, error) {
	l := &Line{provider: NopLabelProvider{}}
	l.init(lineSchema(), l)
	for _, opt := range opts {
		opt(l)
	}
	if err := l.Apply(changes); err != nil {
		return nil, err
	}
	return l, nil
}

func updateData(s *attr.Set, _ []string) error {
	l, ok := s.Owner().(*Line)
	if !ok {
		return nil
	}
	l.dataMinX, l.dataMaxX = bounds(s.Floats(AttrDataX))
	l.dataMinY, l.dataMaxY = bounds(s.Floats(AttrDataY))
	return nil
}

func bounds(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

func updateSmooth(s *attr.Set, _ []string) error {
	l, ok := s.Owner().(*Line)
	if !ok {
		return nil
	}
	x, y := s.Floats(AttrDataX), s.Floats(AttrDataY)
	if s.Bool(AttrSmooth) && len(x) > 2 && len(y) > 2 {
		l.smoothX, l.smoothY = ggchart.Spline(x), ggchart.Spline(y)
	} else {
		l.smoothX, l.smoothY = nil, nil
	}
	return nil
}

// PlainBBox returns the data bounds, always including y = 0.
func (l *Line) PlainBBox() ggchart.Rect {
	return ggchart.NewRect(
		ggchart.Pt(l.dataMinX, math.Min(0, l.dataMinY)),
		ggchart.Pt(l.dataMaxX, math.Max(0, l.dataMaxY)),
	)
}

// BBox returns PlainBBox mapped by the shape matrix.
func (l *Line) BBox() ggchart.Rect { return l.transformedBBox(l.PlainBBox) }

// Render draws the full-resolution data.
func (l *Line) Render(s recording.Surface) error {
	lvl := FullLevel(l.attrs.Floats(AttrDataX), l.attrs.Floats(AttrDataY))
	return l.RenderAggregates(s, lvl, 0, lvl.Len(), l.rect)
}

// RenderLOD draws the coarsest of levels that still has a bucket per
// pixel. Without levels it draws the full data.
func (l *Line) RenderLOD(s recording.Surface, levels []AggregateLevel, pixels float64) error {
	i := SelectLevel(levels, pixels)
	if i < 0 {
		return l.Render(s)
	}
	return l.RenderAggregates(s, levels[i], 0, levels[i].Len(), l.rect)
}

type linePoint struct {
	x, y  float64
	index int
}

func (p linePoint) finite() bool {
	return !math.IsNaN(p.x+p.y) && !math.IsInf(p.x+p.y, 0)
}

// RenderAggregates draws buckets [start, end) of lvl.
//
// Bucket coordinates are mapped by the shape matrix. Non-finite points
// split the line into strips, each filled and stroked on its own; with
// smoothing on that is an error and nothing is drawn.
func (l *Line) RenderAggregates(s recording.Surface, lvl AggregateLevel, start, end int, rect ggchart.Rect) error {
	start, end = max(start, 0), min(end, lvl.Len())
	if start >= end {
		return nil
	}
	m := l.Matrix()
	xx, yy, dx, dy := m.A, m.E, m.C, m.F

	list := make([]linePoint, 0, 2*(end-start))
	for i := start; i < end; i++ {
		minX, maxX := lvl.MinX[i], lvl.MaxX[i]
		minY, maxY := lvl.MinY[i], lvl.MaxY[i]
		idx := lvl.Index[i]
		switch {
		case minX < maxX:
			list = append(list,
				linePoint{minX*xx + dx, minY*yy + dy, idx},
				linePoint{maxX*xx + dx, maxY*yy + dy, idx})
		case minX > maxX:
			list = append(list,
				linePoint{maxX*xx + dx, maxY*yy + dy, idx},
				linePoint{minX*xx + dx, minY*yy + dy, idx})
		default:
			list = append(list, linePoint{maxX*xx + dx, maxY*yy + dy, idx})
		}
	}

	smooth := l.attrs.Bool(AttrSmooth) && l.smoothX != nil && l.smoothY != nil
	if smooth {
		for _, p := range list {
			if !p.finite() {
				return ErrSmoothGaps
			}
		}
	}

	l.placeMarkers(s.Transform(), list)

	yCap := l.attrs.Float(AttrYCap)
	for i := range list {
		list[i].y = math.Max(-yCap, math.Min(yCap, list[i].y))
	}

	paint := l.Paint()
	w := stripWriter{
		s:       s,
		paint:   paint,
		fill:    l.attrs.Bool(AttrFillArea),
		axis:    l.xAxisOrigin(rect),
		precise: l.attrs.Bool(AttrPreciseStroke),
	}
	if l.attrs.Bool(AttrTransformFillStroke) {
		sm := s.Transform().Multiply(m)
		w.strokeMatrix = &sm
	}
	s.Save()
	s.SetPaint(paint)
	if smooth {
		l.walkSmooth(&w, list, xx, yy, dx, dy)
	} else {
		l.walkStraight(&w, list)
	}
	w.flush(nil)
	s.Restore()
	l.attrs.ClearDirty()
	return nil
}

func (l *Line) walkStraight(w *stripWriter, list []linePoint) {
	step := l.attrs.Bool(AttrStep)
	for i, p := range list {
		if !p.finite() {
			w.flush(nil)
			continue
		}
		if len(w.strip) == 0 {
			w.start(p)
			continue
		}
		prev := w.last
		if step {
			w.lineTo(ggchart.Pt(p.x, prev.Y))
		}
		w.lineTo(ggchart.Pt(p.x, p.y))
		l.styleSegment(w, Segment{From: prev, To: ggchart.Pt(p.x, p.y), Index: i}, p)
	}
}

func (l *Line) walkSmooth(w *stripWriter, list []linePoint, xx, yy, dx, dy float64) {
	sx, sy := l.smoothX, l.smoothY
	control := func(k int) ggchart.Point {
		return ggchart.Pt(sx[k]*xx+dx, sy[k]*yy+dy)
	}
	for i, p := range list {
		if i == 0 {
			w.start(p)
			continue
		}
		a, b := list[i-1].index, p.index
		to := ggchart.Pt(p.x, p.y)
		if b > a && 3*b < len(sx) {
			w.cubicTo(control(3*a+1), control(3*(b-1)+2), to)
		} else {
			w.lineTo(to)
		}
		l.styleSegment(w, Segment{From: ggchart.Pt(list[i-1].x, list[i-1].y), To: to, Smooth: true, Index: i}, p)
	}
}

// styleSegment asks the segment renderer for changes and, if there are
// any, ends the strip at p drawn with them.
func (l *Line) styleSegment(w *stripWriter, seg Segment, p linePoint) {
	if l.renderer == nil {
		return
	}
	changes := l.renderer(seg)
	if len(changes) == 0 {
		return
	}
	vals, err := l.attrs.Schema().Normalize(changes, false)
	if err != nil || len(vals) == 0 {
		return
	}
	paint := w.paint.Clone()
	applyPaint(&paint, vals)
	w.flush(&paint)
	w.start(p)
}

func (l *Line) xAxisOrigin(rect ggchart.Rect) float64 {
	v, ok := l.attrs.Get(AttrXAxis)
	axis, isAxis := v.(XAxis)
	if !ok || !isAxis {
		if l.attrs.Bool(AttrFlipXY) {
			return rect.Min.X
		}
		return rect.Min.Y
	}
	switch {
	case axis.Floating && axis.Vertical:
		return rect.Width() - axis.FloatingAt
	case axis.Floating:
		return rect.Height() - axis.FloatingAt
	case axis.Vertical:
		return rect.Min.X
	}
	return rect.Min.Y
}

// placeMarkers reports every finite point to the bound sink, with labels
// for points that have label text.
func (l *Line) placeMarkers(surface ggchart.Matrix, list []linePoint) {
	if l.sink == nil {
		return
	}
	labels, _ := l.attrs.Get(AttrLabels)
	texts, _ := labels.([]string)
	dataY := l.attrs.Floats(AttrDataY)
	padding := l.attrs.Float(AttrLabelOverflowPadding)
	flip := l.attrs.Bool(AttrFlipXY)

	for _, p := range list {
		if !p.finite() {
			continue
		}
		at := surface.TransformPoint(ggchart.Pt(p.x, p.y))
		l.sink.PutMarker(KindMarkers, Placement{X: at.X, Y: at.Y, Alpha: 1}, p.index)

		if p.index < 0 || p.index >= len(texts) {
			continue
		}
		value := math.NaN()
		if p.index < len(dataY) {
			value = dataY[p.index]
		}
		text, ok := l.provider.CreateLabel(p.index, value, texts[p.index])
		if !ok {
			continue
		}
		pl := l.placer.PlaceLineLabel(text, p.x, p.y, padding, flip, surface)
		l.provider.PlaceLabel(&pl, p.index)
		l.sink.PutMarker(KindLabels, pl, p.index)
	}
}

type stripElem struct {
	c1, c2, to ggchart.Point
	cubic      bool
}

// stripWriter accumulates one continuous strip and draws it on flush.
type stripWriter struct {
	s     recording.Surface
	paint recording.Paint
	fill  bool
	axis  float64

	// precise strokes the line as its own path. Otherwise the filled
	// area outline is stroked, axis edges included.
	precise bool
	// strokeMatrix, when set, is the transform in effect for Stroke, so
	// line widths scale with the shape.
	strokeMatrix *ggchart.Matrix

	first ggchart.Point
	last  ggchart.Point
	strip []stripElem
}

func (w *stripWriter) start(p linePoint) {
	w.first = ggchart.Pt(p.x, p.y)
	w.last = w.first
	w.strip = append(w.strip[:0], stripElem{to: w.first})
}

func (w *stripWriter) lineTo(p ggchart.Point) {
	w.strip = append(w.strip, stripElem{to: p})
	w.last = p
}

func (w *stripWriter) cubicTo(c1, c2, p ggchart.Point) {
	w.strip = append(w.strip, stripElem{c1: c1, c2: c2, to: p, cubic: true})
	w.last = p
}

func (w *stripWriter) walk() {
	for i, e := range w.strip {
		switch {
		case i == 0:
			w.s.MoveTo(e.to.X, e.to.Y)
		case e.cubic:
			w.s.CubicTo(e.c1.X, e.c1.Y, e.c2.X, e.c2.Y, e.to.X, e.to.Y)
		default:
			w.s.LineTo(e.to.X, e.to.Y)
		}
	}
}

// flush draws the pending strip, optionally with its own paint, and
// clears it.
func (w *stripWriter) flush(paint *recording.Paint) {
	if len(w.strip) == 0 {
		return
	}
	if paint != nil {
		w.s.Save()
		w.s.SetPaint(*paint)
	}
	area := w.fill && len(w.strip) > 1
	if area {
		w.s.BeginPath()
		w.walk()
		w.s.LineTo(w.last.X, w.axis)
		w.s.LineTo(w.first.X, w.axis)
		w.s.ClosePath()
		w.s.Fill()
	}
	if w.precise || !area {
		w.s.BeginPath()
		w.walk()
	}
	w.stroke()
	if paint != nil {
		w.s.Restore()
	}
	w.strip = w.strip[:0]
}

func (w *stripWriter) stroke() {
	if w.strokeMatrix == nil {
		w.s.Stroke()
		return
	}
	w.s.Save()
	w.s.SetTransform(*w.strokeMatrix)
	w.s.Stroke()
	w.s.Restore()
}
