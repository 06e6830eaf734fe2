package sprite

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/attr"
	"github.com/gogpu/ggchart/recording"
)

func sectorCommands(t *testing.T, spec SectorSpec) []recording.Command {
	t.Helper()
	rec := recording.NewRecorder(200, 200)
	SectorPath(rec, spec)
	return rec.FinishRecording().Commands()
}

func arcs(cmds []recording.Command) []recording.ArcToCommand {
	var out []recording.ArcToCommand
	for _, c := range cmds {
		if a, ok := c.(recording.ArcToCommand); ok {
			out = append(out, a)
		}
	}
	return out
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestSectorPathLargeArc(t *testing.T) {
	tests := []struct {
		name  string
		end   float64
		large bool
	}{
		{"quarter", math.Pi / 2, false},
		{"three quarters", 3 * math.Pi / 2, true},
		{"exactly half", math.Pi, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := arcs(sectorCommands(t, SectorSpec{EndAngle: tt.end, StartRadius: 20, EndRadius: 50}))
			if len(got) != 2 {
				t.Fatalf("got %d arcs, want 2", len(got))
			}
			outer, inner := got[0], got[1]
			if outer.LargeArc != tt.large || inner.LargeArc != tt.large {
				t.Errorf("large-arc flags = %v/%v, want %v", outer.LargeArc, inner.LargeArc, tt.large)
			}
			if !outer.Sweep || inner.Sweep {
				t.Errorf("sweep flags = %v/%v, want true/false", outer.Sweep, inner.Sweep)
			}
			if outer.RX != 50 || inner.RX != 20 {
				t.Errorf("radii = %v/%v, want 50/20", outer.RX, inner.RX)
			}
		})
	}
}

func TestSectorPathOutline(t *testing.T) {
	got := sectorCommands(t, SectorSpec{CenterX: 100, CenterY: 100, EndAngle: math.Pi / 2, StartRadius: 10, EndRadius: 50})
	want := []recording.Command{
		recording.MoveToCommand{Point: ggchart.Pt(110, 100)},
		recording.LineToCommand{Point: ggchart.Pt(150, 100)},
		recording.ArcToCommand{RX: 50, RY: 50, Sweep: true, Point: ggchart.Pt(100, 150)},
		recording.LineToCommand{Point: ggchart.Pt(100, 110)},
		recording.ArcToCommand{RX: 10, RY: 10, Point: ggchart.Pt(110, 100)},
		recording.ClosePathCommand{},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("outline (-want +got):\n%s", diff)
	}
}

func TestSectorPathDeclarationOrder(t *testing.T) {
	a := sectorCommands(t, SectorSpec{StartAngle: 0, EndAngle: 2, StartRadius: 5, EndRadius: 30})
	b := sectorCommands(t, SectorSpec{StartAngle: 2, EndAngle: 0, StartRadius: 30, EndRadius: 5})
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("reversed spec differs (-a +b):\n%s", diff)
	}
}

func TestSectorPathWedge(t *testing.T) {
	got := sectorCommands(t, SectorSpec{
		CenterX: 50, CenterY: 50,
		StartAngle: -math.Pi / 4, EndAngle: math.Pi / 4,
		EndRadius: 40, Margin: 10,
	})
	if len(got) != 4 {
		t.Fatalf("got %d commands, want 4: %v", len(got), got)
	}
	if diff := cmp.Diff(recording.MoveToCommand{Point: ggchart.Pt(60, 50)}, got[0], approx); diff != "" {
		t.Errorf("wedge apex (-want +got):\n%s", diff)
	}
	if n := len(arcs(got)); n != 1 {
		t.Errorf("wedge has %d arcs, want 1", n)
	}
}

func TestSectorPathZeroSpan(t *testing.T) {
	got := sectorCommands(t, SectorSpec{StartAngle: 0, EndAngle: 0, StartRadius: 20, EndRadius: 50})
	want := []recording.Command{
		recording.MoveToCommand{Point: ggchart.Pt(20, 0)},
		recording.LineToCommand{Point: ggchart.Pt(50, 0)},
	}
	if len(got) < 2 {
		t.Fatalf("got %d commands, want at least 2", len(got))
	}
	if diff := cmp.Diff(want, got[:2], approx); diff != "" {
		t.Errorf("needle outline (-want +got):\n%s", diff)
	}
}

func TestSectorPathFullCircle(t *testing.T) {
	tests := []struct {
		name             string
		inner            float64
		moves, arcs, cls int
	}{
		{"disc", 0, 1, 2, 1},
		{"ring", 10, 2, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recording.NewRecorder(100, 100)
			SectorPath(rec, SectorSpec{EndAngle: 2 * math.Pi, StartRadius: tt.inner, EndRadius: 30})
			r := rec.FinishRecording()
			if got := r.Count(recording.CmdMoveTo); got != tt.moves {
				t.Errorf("MoveTo = %d, want %d", got, tt.moves)
			}
			if got := r.Count(recording.CmdArcTo); got != tt.arcs {
				t.Errorf("ArcTo = %d, want %d", got, tt.arcs)
			}
			if got := r.Count(recording.CmdClosePath); got != tt.cls {
				t.Errorf("ClosePath = %d, want %d", got, tt.cls)
			}
		})
	}
}

func TestSectorRender(t *testing.T) {
	s, err := NewSector(attr.Changes{
		AttrEndAngle: 3 * math.Pi / 2,
		AttrStartRho: 20,
		"rho":        50,
		"fill":       "red",
		"translateX": 100,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Spec().EndRadius; got != 50 {
		t.Errorf("EndRadius = %v, want 50", got)
	}

	rec := recording.NewRecorder(200, 200)
	if err := s.Render(rec); err != nil {
		t.Fatal(err)
	}
	r := rec.FinishRecording()
	if r.Count(recording.CmdFill) != 1 || r.Count(recording.CmdStroke) != 0 {
		t.Errorf("fill/stroke = %d/%d, want 1/0", r.Count(recording.CmdFill), r.Count(recording.CmdStroke))
	}
	var m ggchart.Matrix
	for _, c := range r.Commands() {
		if c, ok := c.(recording.SetTransformCommand); ok {
			m = c.Matrix
			break
		}
	}
	if diff := cmp.Diff(ggchart.Translate(100, 0), m); diff != "" {
		t.Errorf("shape transform (-want +got):\n%s", diff)
	}
	if !rec.Transform().IsIdentity() {
		t.Error("transform not restored after Render")
	}
	for _, a := range arcs(r.Commands()) {
		if !a.LargeArc {
			t.Errorf("arc %+v: large-arc flag not set for a 270° sector", a)
		}
	}
}

func TestSectorLabel(t *testing.T) {
	var got []Placement
	sink := MarkerFunc(func(_ MarkerKind, p Placement, _ int) { got = append(got, p) })

	s, err := NewSector(attr.Changes{
		AttrEndAngle: math.Pi / 2,
		AttrEndRho:   50,
		AttrLabel:    "A",
	}, WithSectorMarkers(sink), WithSectorLabelPlacer(&LabelPlacer{Display: DisplayOutside}), WithIndex(3))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Render(recording.NewRecorder(100, 100)); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d placements, want 1", len(got))
	}
	d := 90 * math.Sqrt2 / 2
	want := Placement{
		X: d, Y: d, Text: "A", Alpha: 1,
		Callout:      true,
		CalloutStart: ggchart.Pt(50*math.Sqrt2/2, 50*math.Sqrt2/2),
		CalloutEnd:   ggchart.Pt(d, d),
	}
	if diff := cmp.Diff(want, got[0], approx); diff != "" {
		t.Errorf("placement (-want +got):\n%s", diff)
	}
}

func TestGaugeLabelOnlyFirst(t *testing.T) {
	var n int
	sink := MarkerFunc(func(MarkerKind, Placement, int) { n++ })
	for i := range 3 {
		s, err := NewSector(attr.Changes{AttrEndAngle: 1, AttrLabel: "v"},
			WithSectorMarkers(sink), WithSectorLabelProvider(LabelProviderFor(KindGauge)), WithIndex(i))
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Render(recording.NewRecorder(10, 10)); err != nil {
			t.Fatal(err)
		}
	}
	if n != 1 {
		t.Errorf("gauge placed %d labels, want 1", n)
	}
}

func TestSectorTransformFillStroke(t *testing.T) {
	tests := []struct {
		transform bool
		want      float64
	}{
		{false, 2},
		{true, 6},
	}
	for _, tt := range tests {
		s, err := NewSector(attr.Changes{
			AttrEndAngle:            math.Pi / 2,
			AttrEndRho:              50,
			"stroke":                "red",
			"lineWidth":             2,
			"scaling":               3,
			AttrTransformFillStroke: tt.transform,
		})
		if err != nil {
			t.Fatal(err)
		}
		got := playbackWidths(t, s)
		if diff := cmp.Diff([]float64{tt.want}, got, approx); diff != "" {
			t.Errorf("transformFillStroke=%v widths (-want +got):\n%s", tt.transform, diff)
		}
	}
}
