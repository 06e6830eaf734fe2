package measure

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/gogpu/ggchart"
)

// Face measures labels with a fixed font.Face. A Face must not be used
// from several goroutines at once unless the underlying face allows it.
type Face struct {
	face font.Face
}

// NewFace returns a measurer for f. A nil face selects basicfont.Face7x13.
func NewFace(f font.Face) *Face {
	if f == nil {
		f = basicfont.Face7x13
	}
	return &Face{face: f}
}

// Measure returns the advance width and line height of text.
func (f *Face) Measure(text string) ggchart.Rect {
	w := font.MeasureString(f.face, text)
	h := f.face.Metrics().Height
	return ggchart.XYWH(0, 0, fixedToFloat(w), fixedToFloat(h))
}
