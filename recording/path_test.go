package recording

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/ggchart"
)

func TestPathLineToWithoutMoveTo(t *testing.T) {
	p := NewPath()
	p.LineTo(ggchart.Pt(5, 5))
	p.LineTo(ggchart.Pt(10, 5))

	want := []PathElement{MoveTo{Point: ggchart.Pt(5, 5)}, LineTo{Point: ggchart.Pt(10, 5)}}
	if diff := cmp.Diff(want, p.Elements()); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestPathCloseResetsCurrentPoint(t *testing.T) {
	p := NewPath()
	p.MoveTo(ggchart.Pt(1, 1))
	p.LineTo(ggchart.Pt(4, 1))
	p.Close()
	if got := p.CurrentPoint(); got != ggchart.Pt(1, 1) {
		t.Errorf("CurrentPoint after Close = %v, want (1,1)", got)
	}
}

func TestPathArcTo(t *testing.T) {
	p := NewPath()
	p.MoveTo(ggchart.Pt(10, 0))
	p.ArcTo(10, 10, 0, false, true, ggchart.Pt(-10, 0))

	elems := p.Elements()
	if len(elems) < 3 {
		t.Fatalf("half circle produced %d elements, want at least 3", len(elems))
	}
	last, ok := elems[len(elems)-1].(CubicTo)
	if !ok {
		t.Fatalf("last element is %T, want CubicTo", elems[len(elems)-1])
	}
	if last.Point != ggchart.Pt(-10, 0) {
		t.Errorf("arc ends at %v, want (-10,0)", last.Point)
	}

	b := p.Bounds()
	if math.Abs(b.Max.Y-10) > 0.01 || math.Abs(b.Min.Y) > 1e-9 {
		t.Errorf("half circle bounds = %+v, want y in [0,10]", b)
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath()
	p.MoveTo(ggchart.Pt(0, 0))
	p.LineTo(ggchart.Pt(1, 2))
	got := p.Transform(ggchart.Translate(10, 20))

	want := []PathElement{MoveTo{Point: ggchart.Pt(10, 20)}, LineTo{Point: ggchart.Pt(11, 22)}}
	if diff := cmp.Diff(want, got.Elements()); diff != "" {
		t.Errorf("transformed elements mismatch (-want +got):\n%s", diff)
	}
}

func TestPathFlatten(t *testing.T) {
	t.Run("lines kept verbatim", func(t *testing.T) {
		p := NewPath()
		p.MoveTo(ggchart.Pt(0, 0))
		p.LineTo(ggchart.Pt(10, 0))
		p.LineTo(ggchart.Pt(10, 10))
		p.Close()

		got := p.Flatten(0)
		want := []Polyline{{
			Points: []ggchart.Point{ggchart.Pt(0, 0), ggchart.Pt(10, 0), ggchart.Pt(10, 10)},
			Closed: true,
		}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("curve within tolerance", func(t *testing.T) {
		c := ggchart.CubicBez{P0: ggchart.Pt(0, 0), P1: ggchart.Pt(0, 100), P2: ggchart.Pt(100, 100), P3: ggchart.Pt(100, 0)}
		p := NewPath()
		p.MoveTo(c.P0)
		p.CubicTo(c.P1, c.P2, c.P3)

		lines := p.Flatten(0.1)
		if len(lines) != 1 {
			t.Fatalf("got %d polylines, want 1", len(lines))
		}
		pts := lines[0].Points
		if len(pts) < 10 {
			t.Errorf("curve flattened to only %d points", len(pts))
		}
		if diff := cmp.Diff(c.P3, pts[len(pts)-1], cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("last point mismatch (-want +got):\n%s", diff)
		}
		// The apex of this curve is (50, 75).
		best := math.Inf(1)
		for _, q := range pts {
			best = math.Min(best, q.Sub(ggchart.Pt(50, 75)).Length())
		}
		if best > 1 {
			t.Errorf("no flattened point near the apex, closest %v", best)
		}
	})

	t.Run("lone move dropped", func(t *testing.T) {
		p := NewPath()
		p.MoveTo(ggchart.Pt(3, 3))
		p.MoveTo(ggchart.Pt(0, 0))
		p.LineTo(ggchart.Pt(1, 1))
		if got := len(p.Flatten(0)); got != 1 {
			t.Errorf("got %d polylines, want 1", got)
		}
	})
}

func square(closed bool) *Path {
	p := NewPath()
	p.MoveTo(ggchart.Pt(0, 0))
	p.LineTo(ggchart.Pt(10, 0))
	p.LineTo(ggchart.Pt(10, 10))
	p.LineTo(ggchart.Pt(0, 10))
	if closed {
		p.Close()
	}
	return p
}

func circle(r float64) *Path {
	p := NewPath()
	p.MoveTo(ggchart.Pt(r, 0))
	p.ArcTo(r, r, 0, false, true, ggchart.Pt(-r, 0))
	p.ArcTo(r, r, 0, false, true, ggchart.Pt(r, 0))
	p.Close()
	return p
}

func diagonal(x0, y0, x1, y1 float64) *Path {
	p := NewPath()
	p.MoveTo(ggchart.Pt(x0, y0))
	p.LineTo(ggchart.Pt(x1, y1))
	return p
}

// arch is a single cubic rising from (0,0) to y=7.5 and back down to (10,0).
func arch() *Path {
	p := NewPath()
	p.MoveTo(ggchart.Pt(0, 0))
	p.CubicTo(ggchart.Pt(0, 10), ggchart.Pt(10, 10), ggchart.Pt(10, 0))
	return p
}

func TestPathIsPointInPath(t *testing.T) {
	tests := []struct {
		name string
		path *Path
		pt   ggchart.Point
		want bool
	}{
		{"square inside", square(true), ggchart.Pt(3, 6), true},
		{"square outside", square(true), ggchart.Pt(15, 6), false},
		{"open square is closed for filling", square(false), ggchart.Pt(3, 6), true},
		{"circle inside", circle(10), ggchart.Pt(1, 2), true},
		{"circle outside, ray crosses twice", circle(10), ggchart.Pt(15, 15), false},
		{"circle outside, ray misses", circle(10), ggchart.Pt(20, 3), false},
		{"empty path", NewPath(), ggchart.Pt(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.IsPointInPath(tt.pt); got != tt.want {
				t.Errorf("IsPointInPath(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestPathIsPointOnPath(t *testing.T) {
	tests := []struct {
		name string
		path *Path
		pt   ggchart.Point
		want bool
	}{
		{"near an edge", square(true), ggchart.Pt(5, 1), true},
		{"center", square(true), ggchart.Pt(5, 5), false},
		{"closing edge", square(true), ggchart.Pt(0, 5), true},
		{"open subpath has no closing edge", square(false), ggchart.Pt(0, 5), false},
		{"on cubic", arch(), ggchart.Pt(1.5625, 5.625), true},
		{"under cubic", arch(), ggchart.Pt(5, 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.IsPointOnPath(tt.pt); got != tt.want {
				t.Errorf("IsPointOnPath(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestPathIntersections(t *testing.T) {
	byX := cmpopts.SortSlices(func(a, b ggchart.Point) bool { return a.X < b.X })
	approx := cmpopts.EquateApprox(0, 1e-6)

	horizontal := diagonal(-5, 5, 15, 5)

	tests := []struct {
		name string
		a, b *Path
		want []ggchart.Point
	}{
		{"line through square", square(true), horizontal, []ggchart.Point{{X: 0, Y: 5}, {X: 10, Y: 5}}},
		{"square against line", horizontal, square(true), []ggchart.Point{{X: 0, Y: 5}, {X: 10, Y: 5}}},
		{"crossing diagonals", diagonal(0, 0, 10, 10), diagonal(0, 10, 10, 0), []ggchart.Point{{X: 5, Y: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersections(tt.b)
			if diff := cmp.Diff(tt.want, got, byX, approx); diff != "" {
				t.Errorf("Intersections (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("cubic and line", func(t *testing.T) {
		got := arch().LineIntersections(ggchart.Line{P0: ggchart.Pt(-1, 5.625), P1: ggchart.Pt(11, 5.625)})
		want := []ggchart.Point{{X: 1.5625, Y: 5.625}, {X: 8.4375, Y: 5.625}}
		if diff := cmp.Diff(want, got, byX, approx); diff != "" {
			t.Errorf("LineIntersections (-want +got):\n%s", diff)
		}
	})

	t.Run("two cubics", func(t *testing.T) {
		mirror := NewPath()
		mirror.MoveTo(ggchart.Pt(0, 7.5))
		mirror.CubicTo(ggchart.Pt(0, -2.5), ggchart.Pt(10, -2.5), ggchart.Pt(10, 7.5))
		got := arch().Intersections(mirror)
		if len(got) == 0 {
			t.Fatal("no intersections between crossing arches")
		}
		for _, p := range got {
			if math.Abs(p.Y-3.75) > 1 {
				t.Errorf("intersection %v is not near y=3.75", p)
			}
		}
	})
}
