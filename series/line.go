package series

import (
	"fmt"
	"maps"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/aggregate"
	"github.com/gogpu/ggchart/attr"
	"github.com/gogpu/ggchart/recording"
	"github.com/gogpu/ggchart/sprite"
)

// View is the visible data window and the rectangle it maps onto. The
// rectangle is in a y-up frame; callers drawing to a y-down surface flip
// it first.
type View struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Rect       ggchart.Rect
}

func (v View) empty() bool {
	return v.Rect.Width() <= 0 || v.Rect.Height() <= 0 || v.MaxX <= v.MinX || v.MaxY <= v.MinY
}

// Line is a line series backed by an aggregate tree.
type Line struct {
	tree   *aggregate.Tree
	sprite *sprite.Line
}

// NewLine builds the aggregate tree for the data and a line sprite with
// changes applied.
func NewLine(dataX, dataY []float64, changes attr.Changes, opts ...sprite.LineOption) (*Line, error) {
	tree, err := aggregate.New(dataX, dataY)
	if err != nil {
		return nil, fmt.Errorf("series: line: %w", err)
	}
	c := maps.Clone(changes)
	if c == nil {
		c = attr.Changes{}
	}
	c[sprite.AttrDataX] = dataX
	c[sprite.AttrDataY] = dataY
	sp, err := sprite.NewLine(c, opts...)
	if err != nil {
		return nil, fmt.Errorf("series: line: %w", err)
	}
	return &Line{tree: tree, sprite: sp}, nil
}

// Sprite returns the line sprite.
func (l *Line) Sprite() *sprite.Line { return l.sprite }

// Tree returns the aggregate tree.
func (l *Line) Tree() *aggregate.Tree { return l.tree }

// Render draws the data inside the view using the coarsest aggregation
// level that still has a bucket per pixel.
func (l *Line) Render(s recording.Surface, v View) error {
	if v.empty() {
		return ErrEmptyView
	}
	sx := v.Rect.Width() / (v.MaxX - v.MinX)
	sy := v.Rect.Height() / (v.MaxY - v.MinY)
	err := l.sprite.Apply(attr.Changes{
		attr.KeyScalingX:     sx,
		attr.KeyScalingY:     sy,
		attr.KeyTranslationX: v.Rect.Min.X - v.MinX*sx,
		attr.KeyTranslationY: v.Rect.Min.Y - v.MinY*sy,
	})
	if err != nil {
		return fmt.Errorf("series: line view: %w", err)
	}
	res, ok := l.tree.Aggregation(v.MinX, v.MaxX, (v.MaxX-v.MinX)/v.Rect.Width())
	if !ok {
		return nil
	}
	ggchart.Logger().Debug("series: line aggregation",
		"level", res.LevelIndex, "start", res.Start, "end", res.End)
	return l.sprite.RenderAggregates(s, res.Level, res.Start, res.End, v.Rect)
}
