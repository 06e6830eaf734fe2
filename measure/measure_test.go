package measure

import (
	"sync"
	"testing"

	"github.com/go-text/typesetting/di"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/sprite"
)

var (
	_ sprite.Measurer = (*Face)(nil)
	_ sprite.Measurer = (*Shaped)(nil)
	_ sprite.Measurer = (*Cached)(nil)
)

func TestFaceMeasure(t *testing.T) {
	m := NewFace(nil)
	tests := []struct {
		text string
		want ggchart.Rect
	}{
		{"", ggchart.XYWH(0, 0, 0, 13)},
		{"a", ggchart.XYWH(0, 0, 7, 13)},
		{"42.5%", ggchart.XYWH(0, 0, 35, 13)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			require.Equal(t, tt.want, m.Measure(tt.text))
		})
	}
	require.Equal(t, m.Measure("x"), NewFace(basicfont.Face7x13).Measure("x"))
}

func newShaped(t *testing.T) *Shaped {
	t.Helper()
	s, err := NewShaped(goregular.TTF, 16)
	require.NoError(t, err)
	return s
}

func TestShapedMeasure(t *testing.T) {
	s := newShaped(t)
	require.Equal(t, 16.0, s.Size())

	short := s.Measure("1")
	long := s.Measure("1000")
	require.Greater(t, short.Width(), 0.0)
	require.Greater(t, long.Width(), short.Width())
	require.Greater(t, short.Height(), 0.0)
	require.InDelta(t, short.Height(), long.Height(), 1e-9)
	require.Equal(t, ggchart.Rect{}, s.Measure(""))
}

func TestShapedConcurrent(t *testing.T) {
	s := newShaped(t)
	want := s.Measure("label")
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				if got := s.Measure("label"); got != want {
					t.Errorf("Measure = %v, want %v", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewShapedErrors(t *testing.T) {
	_, err := NewShaped(goregular.TTF, 0)
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewShaped([]byte("not a font"), 12)
	require.Error(t, err)
}

func TestDirection(t *testing.T) {
	require.Equal(t, di.DirectionLTR, direction("Sales"))
	require.Equal(t, di.DirectionRTL, direction("שלום"))
}

type countingMeasurer struct {
	mu    sync.Mutex
	calls int
}

func (c *countingMeasurer) Measure(text string) ggchart.Rect {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return ggchart.XYWH(0, 0, float64(len(text)), 1)
}

func TestCached(t *testing.T) {
	inner := &countingMeasurer{}
	c := NewCached(inner, WithCapacity(4))

	require.Equal(t, ggchart.XYWH(0, 0, 3, 1), c.Measure("abc"))
	require.Equal(t, ggchart.XYWH(0, 0, 3, 1), c.Measure("abc"))
	require.Equal(t, ggchart.XYWH(0, 0, 2, 1), c.Measure("de"))
	require.Equal(t, 2, inner.calls)

	st := c.Stats()
	require.Equal(t, uint64(1), st.Hits)
	require.Equal(t, uint64(2), st.Misses)
	require.Equal(t, 2, st.Len)
}

func TestCachedWithPlacer(t *testing.T) {
	lp := &sprite.LabelPlacer{Measurer: NewCached(NewFace(nil))}
	p := lp.PlaceLineLabel("10", 0, 0, 5, false, ggchart.Identity())
	require.Equal(t, "10", p.Text)
	require.InDelta(t, 13.0/2+5, p.Y, 1e-9)
}
