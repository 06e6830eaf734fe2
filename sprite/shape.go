package sprite

import (
	"github.com/google/uuid"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/attr"
	"github.com/gogpu/ggchart/recording"
)

// Base attribute names shared by every shape.
const (
	AttrStrokeStyle         = "strokeStyle"
	AttrFillStyle           = "fillStyle"
	AttrStrokeOpacity       = "strokeOpacity"
	AttrFillOpacity         = "fillOpacity"
	AttrGlobalAlpha         = "globalAlpha"
	AttrLineWidth           = "lineWidth"
	AttrLineCap             = "lineCap"
	AttrLineJoin            = "lineJoin"
	AttrLineDash            = "lineDash"
	AttrLineDashOffset      = "lineDashOffset"
	AttrMiterLimit          = "miterLimit"
	AttrHidden              = "hidden"
	AttrZIndex              = "zIndex"
	AttrTransformFillStroke = "transformFillStroke"
)

const (
	updaterTransform = "transform"
	updaterZIndex    = "zIndex"
	updaterBBox      = "bbox"
)

var paintKeys = []string{
	AttrStrokeStyle, AttrFillStyle, AttrStrokeOpacity, AttrFillOpacity,
	AttrGlobalAlpha, AttrLineWidth, AttrLineCap, AttrLineJoin, AttrLineDash,
	AttrLineDashOffset, AttrMiterLimit, AttrHidden, AttrTransformFillStroke,
}

var transformKeys = []string{
	attr.KeyTranslationX, attr.KeyTranslationY,
	attr.KeyScalingX, attr.KeyScalingY, attr.KeyScalingCenterX, attr.KeyScalingCenterY,
	attr.KeyRotationRads, attr.KeyRotationCenterX, attr.KeyRotationCenterY,
	attr.KeyMatrix,
}

// baseDefinition is the schema layer every shape kind starts from.
func baseDefinition() attr.Definition {
	procs := attr.TransformProcessors()
	procs[AttrStrokeStyle] = attr.Color()
	procs[AttrFillStyle] = attr.Color()
	procs[AttrStrokeOpacity] = attr.Clamped(0, 1)
	procs[AttrFillOpacity] = attr.Clamped(0, 1)
	procs[AttrGlobalAlpha] = attr.Clamped(0, 1)
	procs[AttrLineWidth] = attr.Number()
	procs[AttrLineCap] = attr.Enum("butt", "round", "square")
	procs[AttrLineJoin] = attr.Enum("round", "bevel", "miter")
	procs[AttrLineDash] = attr.Series()
	procs[AttrLineDashOffset] = attr.Number()
	procs[AttrMiterLimit] = attr.Number()
	procs[AttrHidden] = attr.Bool()
	procs[AttrZIndex] = attr.Number()
	procs[AttrTransformFillStroke] = attr.Bool()

	triggers := make(map[string][]string)
	for _, k := range paintKeys {
		triggers[k] = []string{attr.UpdaterCanvas}
	}
	for _, k := range transformKeys {
		triggers[k] = []string{updaterTransform, updaterBBox}
	}
	triggers[AttrZIndex] = []string{updaterZIndex}

	return attr.Definition{
		Processors: procs,
		Aliases: map[string]string{
			"stroke":            AttrStrokeStyle,
			"fill":              AttrFillStyle,
			"color":             AttrFillStyle,
			"stroke-width":      AttrLineWidth,
			"stroke-linecap":    AttrLineCap,
			"stroke-linejoin":   AttrLineJoin,
			"stroke-miterlimit": AttrMiterLimit,
			"opacity":           AttrGlobalAlpha,

			"translateX":    attr.KeyTranslationX,
			"translateY":    attr.KeyTranslationY,
			"rotateRads":    attr.KeyRotationRads,
			"rotateCenterX": attr.KeyRotationCenterX,
			"rotateCenterY": attr.KeyRotationCenterY,
			"scaleX":        attr.KeyScalingX,
			"scaleY":        attr.KeyScalingY,
			"scaleCenterX":  attr.KeyScalingCenterX,
			"scaleCenterY":  attr.KeyScalingCenterY,
		},
		Defaults: attr.Changes{
			AttrHidden:              false,
			AttrZIndex:              0,
			AttrStrokeStyle:         "none",
			AttrFillStyle:           "none",
			AttrLineWidth:           1,
			AttrLineDash:            []float64{},
			AttrLineDashOffset:      0,
			AttrLineCap:             "butt",
			AttrLineJoin:            "miter",
			AttrMiterLimit:          10,
			AttrGlobalAlpha:         1,
			AttrStrokeOpacity:       1,
			AttrFillOpacity:         1,
			AttrTransformFillStroke: false,
		},
		Triggers: triggers,
		Updaters: []attr.Updater{
			{Name: updaterTransform, Fn: updateTransform},
			{Name: updaterZIndex, Fn: updateZIndex},
			{Name: updaterBBox, Fn: updateBBox},
		},
	}
}

// Renderer is implemented by every shape.
type Renderer interface {
	ID() uuid.UUID
	Render(s recording.Surface) error
}

// Shape is the state common to all shapes. It is embedded by Line and
// Sector and is not used on its own.
type Shape struct {
	id      uuid.UUID
	attrs   *attr.Set
	inverse ggchart.Matrix
	zIndex  float64
	bbox    *ggchart.Rect
}

type shaper interface {
	base() *Shape
}

func (sh *Shape) base() *Shape { return sh }

func (sh *Shape) init(schema *attr.Schema, owner shaper) {
	sh.id = uuid.New()
	sh.attrs = attr.NewSet(schema, owner)
	sh.inverse = sh.attrs.Matrix().Invert()
	sh.zIndex = sh.attrs.Float(AttrZIndex)
}

// ID returns the shape's unique identifier.
func (sh *Shape) ID() uuid.UUID { return sh.id }

// Attrs returns the live attribute set.
func (sh *Shape) Attrs() *attr.Set { return sh.attrs }

// Apply changes attributes. See attr.Set.Apply.
func (sh *Shape) Apply(changes attr.Changes) error {
	return sh.attrs.Apply(changes)
}

// Hidden reports whether the shape is skipped when rendering.
func (sh *Shape) Hidden() bool { return sh.attrs.Bool(AttrHidden) }

// ZIndex returns the stacking order; higher renders later.
func (sh *Shape) ZIndex() float64 { return sh.zIndex }

// Matrix returns the shape matrix.
func (sh *Shape) Matrix() ggchart.Matrix { return sh.attrs.Matrix() }

// InverseMatrix returns the inverse of the shape matrix, or the identity
// when the matrix is singular.
func (sh *Shape) InverseMatrix() ggchart.Matrix { return sh.inverse }

// Paint returns the surface paint described by the paint attributes.
func (sh *Shape) Paint() recording.Paint {
	p := recording.DefaultPaint()
	p.FillColor, p.StrokeColor = ggchart.Transparent, ggchart.Transparent
	applyPaint(&p, sh.attrs.Values())
	return p
}

// transformedBBox returns plain mapped by the shape matrix, cached until a
// bbox trigger fires.
func (sh *Shape) transformedBBox(plain func() ggchart.Rect) ggchart.Rect {
	if sh.bbox != nil {
		return *sh.bbox
	}
	r := plain()
	m := sh.Matrix()
	out := ggchart.NewRect(m.TransformPoint(r.Min), m.TransformPoint(r.Max))
	for _, c := range []ggchart.Point{{X: r.Min.X, Y: r.Max.Y}, {X: r.Max.X, Y: r.Min.Y}} {
		c = m.TransformPoint(c)
		out = out.Union(ggchart.Rect{Min: c, Max: c})
	}
	sh.bbox = &out
	return out
}

// applyPaint copies the paint attributes present in vals onto p.
func applyPaint(p *recording.Paint, vals attr.Values) {
	for k, v := range vals {
		switch k {
		case AttrStrokeStyle:
			p.StrokeColor, _ = v.(ggchart.RGBA)
		case AttrFillStyle:
			p.FillColor, _ = v.(ggchart.RGBA)
		case AttrStrokeOpacity:
			p.StrokeOpacity = asFloat(v, p.StrokeOpacity)
		case AttrFillOpacity:
			p.FillOpacity = asFloat(v, p.FillOpacity)
		case AttrGlobalAlpha:
			p.GlobalAlpha = asFloat(v, p.GlobalAlpha)
		case AttrLineWidth:
			p.LineWidth = asFloat(v, p.LineWidth)
		case AttrLineCap:
			if s, ok := v.(string); ok {
				if c, err := recording.ParseLineCap(s); err == nil {
					p.LineCap = c
				}
			}
		case AttrLineJoin:
			if s, ok := v.(string); ok {
				if j, err := recording.ParseLineJoin(s); err == nil {
					p.LineJoin = j
				}
			}
		case AttrLineDash:
			if d, ok := v.([]float64); ok {
				p.Dash = append([]float64(nil), d...)
			}
		case AttrLineDashOffset:
			p.DashOffset = asFloat(v, p.DashOffset)
		case AttrMiterLimit:
			p.MiterLimit = asFloat(v, p.MiterLimit)
		}
	}
}

func asFloat(v any, fallback float64) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return fallback
}

func ownerOf(s *attr.Set) *Shape {
	if o, ok := s.Owner().(shaper); ok {
		return o.base()
	}
	return nil
}

func updateTransform(s *attr.Set, _ []string) error {
	if sh := ownerOf(s); sh != nil {
		sh.inverse = s.Matrix().Invert()
	}
	return nil
}

func updateZIndex(s *attr.Set, _ []string) error {
	if sh := ownerOf(s); sh != nil {
		sh.zIndex = s.Float(AttrZIndex)
	}
	return nil
}

func updateBBox(s *attr.Set, _ []string) error {
	if sh := ownerOf(s); sh != nil {
		sh.bbox = nil
	}
	return nil
}
