package series

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/attr"
	"github.com/gogpu/ggchart/sprite"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func newPie(values ...float64) Pie {
	p := DefaultPie()
	p.Values = values
	p.Radius = 100
	return p
}

type span struct{ Start, End float64 }

func spans(slices []Slice) []span {
	out := make([]span, len(slices))
	for i, s := range slices {
		out[i] = span{s.StartAngle, s.EndAngle}
	}
	return out
}

func TestPieLayoutAngles(t *testing.T) {
	tests := []struct {
		name   string
		pie    func() Pie
		want   []span
		hidden []bool
	}{
		{
			name: "clockwise",
			pie:  func() Pie { return newPie(1, 1, 2) },
			want: []span{{0, math.Pi / 2}, {math.Pi / 2, math.Pi}, {math.Pi, 2 * math.Pi}},
		},
		{
			name: "counter clockwise",
			pie: func() Pie {
				p := newPie(1, 1, 2)
				p.Clockwise = false
				return p
			},
			want: []span{{0, -math.Pi / 2}, {-math.Pi / 2, -math.Pi}, {-math.Pi, -2 * math.Pi}},
		},
		{
			name: "hidden slice collapses",
			pie: func() Pie {
				p := newPie(1, 1, 2)
				p.Hidden = []bool{false, true}
				return p
			},
			want:   []span{{0, 2 * math.Pi / 3}, {2 * math.Pi / 3, 2 * math.Pi / 3}, {2 * math.Pi / 3, 2 * math.Pi}},
			hidden: []bool{false, true, false},
		},
		{
			name: "negative and NaN values",
			pie:  func() Pie { return newPie(-1, math.NaN(), 1) },
			want: []span{{0, math.Pi}, {math.Pi, math.Pi}, {math.Pi, 2 * math.Pi}},
		},
		{
			name: "all zero",
			pie:  func() Pie { return newPie(0, 0) },
			want: []span{{0, 0}, {0, 0}},
		},
		{
			name: "half total angle",
			pie: func() Pie {
				p := newPie(1, 1)
				p.TotalAngle = math.Pi
				return p
			},
			want: []span{{0, math.Pi / 2}, {math.Pi / 2, math.Pi}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.pie()
			got := p.Layout()
			if diff := cmp.Diff(tt.want, spans(got), approx); diff != "" {
				t.Errorf("Layout() angles mismatch (-want +got):\n%s", diff)
			}
			for i, h := range tt.hidden {
				require.Equal(t, h, got[i].Hidden, "slice %d", i)
			}
		})
	}
}

func TestPieLayoutRadii(t *testing.T) {
	p := newPie(1, 1, 1)
	p.Donut = 50
	p.Lengths = []float64{1, 2}

	got := p.Layout()
	require.InDelta(t, 50, got[0].StartRho, 1e-9)
	require.InDelta(t, 75, got[0].EndRho, 1e-9)
	require.InDelta(t, 100, got[1].EndRho, 1e-9)
	require.InDelta(t, 50, got[2].EndRho, 1e-9, "missing length has no radial extent")

	p.Lengths = nil
	p.RadiusFactor = 80
	for _, s := range p.Layout() {
		require.InDelta(t, 80, s.EndRho, 1e-9)
	}
}

func TestPieSprites(t *testing.T) {
	p := newPie(1234.5, 0, 2)
	p.Center = ggchart.Pt(10, 20)
	p.Hidden = []bool{false, false, true}
	p.Style = attr.Changes{sprite.AttrStrokeStyle: "white"}

	secs, err := p.Sprites()
	require.NoError(t, err)
	require.Len(t, secs, 3)

	spec := secs[0].Spec()
	require.InDelta(t, 10, spec.CenterX, 1e-9)
	require.InDelta(t, 20, spec.CenterY, 1e-9)
	require.InDelta(t, 2*math.Pi, spec.EndAngle, 1e-9)
	require.Equal(t, "1,234.5", secs[0].Attrs().Text(sprite.AttrLabel))
	require.Equal(t, "vertical", secs[0].Attrs().Text(sprite.AttrLabelOrientation))
	require.Equal(t, DefaultColors[1], secs[1].Attrs().Color(sprite.AttrFillStyle))
	require.Equal(t, ggchart.White, secs[1].Attrs().Color(sprite.AttrStrokeStyle))
	require.True(t, secs[2].Hidden())
	require.InDelta(t, -math.Pi/2, secs[0].Attrs().Transform().RotationRads, 1e-9)
}

func TestPieSpritesLabels(t *testing.T) {
	p := newPie(1, 2)
	p.Labels = []string{"north", "south"}
	secs, err := p.Sprites()
	require.NoError(t, err)
	require.Equal(t, "south", secs[1].Attrs().Text(sprite.AttrLabel))
}

func TestPieItemForPoint(t *testing.T) {
	p := newPie(1, 1, 2)
	p.Donut = 20
	tests := []struct {
		name   string
		x, y   float64
		want   int
		wantOK bool
	}{
		{"top", 0, -50, 0, true},
		{"right", 50, 0, 1, true},
		{"bottom", 0, 50, 2, true},
		{"left", -50, 0, 2, true},
		{"outside radius", 0, -150, 0, false},
		{"inside donut hole", 0, -10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.ItemForPoint(tt.x, tt.y)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPieItemForPointCounterClockwise(t *testing.T) {
	p := newPie(1, 1, 2)
	p.Clockwise = false
	got, ok := p.ItemForPoint(-50, -1)
	require.True(t, ok)
	require.Equal(t, 0, got)
}

func TestPieItemForPointSingleSlice(t *testing.T) {
	p := newPie(5)
	got, ok := p.ItemForPoint(30, 30)
	require.True(t, ok)
	require.Equal(t, 0, got)
}

func TestPieItemForAngle(t *testing.T) {
	p := newPie(1, 1, 2)
	tests := []struct {
		angle float64
		want  int
	}{
		{math.Pi / 4, 0},
		{3 * math.Pi / 4, 1},
		{3 * math.Pi / 2, 2},
		{-math.Pi / 4, 2},
	}
	for _, tt := range tests {
		got, ok := p.ItemForAngle(tt.angle)
		require.True(t, ok)
		require.Equal(t, tt.want, got, "angle %v", tt.angle)
	}

	p.Hidden = []bool{true, true, true}
	_, ok := p.ItemForAngle(1)
	require.False(t, ok)
}
