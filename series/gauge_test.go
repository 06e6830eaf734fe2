package series

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/recording"
	"github.com/gogpu/ggchart/sprite"
)

func TestGaugeValueToAngle(t *testing.T) {
	g := DefaultGauge()
	tests := []struct {
		value, want float64
	}{
		{0, 0},
		{50, math.Pi / 4},
		{100, math.Pi / 2},
		{150, math.Pi / 2},
		{-5, 0},
	}
	for _, tt := range tests {
		require.InDelta(t, tt.want, g.ValueToAngle(tt.value), 1e-12, "value %v", tt.value)
	}

	g.Maximum = 0
	require.Zero(t, g.ValueToAngle(10))
}

func TestNormalizeBands(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name  string
		bands []Band
		want  []span
	}{
		{"default", nil, []span{{0, 100}}},
		{"thresholds", Thresholds(30, 70), []span{{0, 30}, {30, 70}, {70, 100}}},
		{"threshold at maximum", Thresholds(30, 120), []span{{0, 30}, {30, 100}}},
		{
			"open ends",
			[]Band{{Start: nan, End: 40}, {Start: 60, End: nan}},
			[]span{{0, 40}, {60, 100}},
		},
		{"clamped", []Band{{Start: -10, End: 200}}, []span{{0, 100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBands(tt.bands, 0, 100)
			ranges := make([]span, len(got))
			for i, b := range got {
				ranges[i] = span{b.Start, b.End}
			}
			if diff := cmp.Diff(tt.want, ranges); diff != "" {
				t.Errorf("NormalizeBands mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGaugeFit(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		wholeDisk  bool
		rect       ggchart.Rect
		wantCenter ggchart.Point
		wantRadius float64
	}{
		{"half circle", math.Pi, false, ggchart.XYWH(0, 0, 200, 100), ggchart.Pt(100, 100), 100},
		{"offset rect", math.Pi, false, ggchart.XYWH(10, 20, 200, 100), ggchart.Pt(110, 120), 100},
		{"whole disk", math.Pi, true, ggchart.XYWH(0, 0, 200, 100), ggchart.Pt(100, 50), 50},
		{"narrow rect", math.Pi, false, ggchart.XYWH(0, 0, 100, 100), ggchart.Pt(50, 75), 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DefaultGauge()
			g.TotalAngle = tt.total
			g.WholeDisk = tt.wholeDisk
			g.Rect = tt.rect
			c, r := g.Fit()
			require.InDelta(t, tt.wantRadius, r, 1e-9)
			require.InDelta(t, tt.wantCenter.X, c.X, 1e-9)
			require.InDelta(t, tt.wantCenter.Y, c.Y, 1e-9)
		})
	}
}

func newGauge() Gauge {
	g := DefaultGauge()
	g.TotalAngle = math.Pi
	g.Rect = ggchart.XYWH(0, 0, 200, 100)
	g.Value = 50
	g.Bands = Thresholds(30, 70)
	return g
}

func TestGaugeSprites(t *testing.T) {
	g := newGauge()
	red := ggchart.RGB(1, 0, 0)
	g.Bands[1].Color = red

	secs, err := g.Sprites()
	require.NoError(t, err)
	require.Len(t, secs, 4)

	value := secs[0]
	spec := value.Spec()
	require.InDelta(t, 0, spec.StartAngle, 1e-12)
	require.InDelta(t, math.Pi/2, spec.EndAngle, 1e-12)
	require.InDelta(t, 90, spec.EndRadius, 1e-9)
	require.InDelta(t, 30, spec.StartRadius, 1e-9)
	require.InDelta(t, 10, value.ZIndex(), 1e-12)
	require.Equal(t, "50", value.Attrs().Text(sprite.AttrLabel))
	require.InDelta(t, -math.Pi, value.Attrs().Transform().RotationRads, 1e-12)

	require.InDelta(t, 0.3*math.Pi, secs[1].Spec().EndAngle, 1e-12)
	require.InDelta(t, 100, secs[1].Spec().EndRadius, 1e-9)
	require.Equal(t, DefaultColors[1], secs[1].Attrs().Color(sprite.AttrFillStyle))
	require.Equal(t, red, secs[2].Attrs().Color(sprite.AttrFillStyle))
	require.Equal(t, DefaultColors[3], secs[3].Attrs().Color(sprite.AttrFillStyle))
}

func TestGaugeNeedle(t *testing.T) {
	g := newGauge()
	g.Needle = true

	secs, err := g.Sprites()
	require.NoError(t, err)
	spec := secs[0].Spec()
	require.InDelta(t, spec.StartAngle, spec.EndAngle, 1e-12)
	require.InDelta(t, 4, secs[0].Paint().LineWidth, 1e-12)

	rec := recording.NewRecorder(200, 100)
	require.NoError(t, sprite.RenderAll(rec, secs[0]))
	r := rec.FinishRecording()
	require.Equal(t, 1, r.Count(recording.CmdStroke))
}

func TestGaugeLabelsOnlyValue(t *testing.T) {
	g := newGauge()
	g.Bands[0].Label = "low"

	var got []sprite.Placement
	sink := sprite.MarkerFunc(func(kind sprite.MarkerKind, p sprite.Placement, _ int) {
		if kind == sprite.KindLabels {
			got = append(got, p)
		}
	})
	secs, err := g.Sprites(sprite.WithSectorMarkers(sink))
	require.NoError(t, err)

	rec := recording.NewRecorder(200, 100)
	shapes := make([]sprite.Renderer, len(secs))
	for i, s := range secs {
		shapes[i] = s
	}
	require.NoError(t, sprite.RenderAll(rec, shapes...))
	require.Len(t, got, 1)
	require.Equal(t, "50", got[0].Text)
	require.Zero(t, got[0].RotationRads)
}
