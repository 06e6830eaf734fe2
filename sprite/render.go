package sprite

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/recording"
)

// Layered is implemented by shapes with a stacking order.
type Layered interface {
	ZIndex() float64
	Hidden() bool
}

// RenderAll renders shapes onto s in ascending z-index order, skipping
// hidden ones. Each shape is recorded first and replayed only if it
// rendered without error, so a failing shape leaves nothing behind. The
// failures are logged and returned joined.
func RenderAll(s recording.Surface, shapes ...Renderer) error {
	ordered := slices.Clone(shapes)
	slices.SortStableFunc(ordered, func(a, b Renderer) int {
		return cmp.Compare(zIndex(a), zIndex(b))
	})

	var errs []error
	for _, sh := range ordered {
		if l, ok := sh.(Layered); ok && l.Hidden() {
			continue
		}
		rec := recording.NewRecorder(0, 0)
		rec.Inherit(s)
		if err := sh.Render(rec); err != nil {
			ggchart.Logger().Warn("sprite skipped", "id", sh.ID(), "err", err)
			errs = append(errs, fmt.Errorf("sprite %s: %w", sh.ID(), err))
			continue
		}
		rec.FinishRecording().Replay(s)
	}
	return errors.Join(errs...)
}

func zIndex(r Renderer) float64 {
	if l, ok := r.(Layered); ok {
		return l.ZIndex()
	}
	return 0
}
