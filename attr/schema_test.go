package attr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/ggchart"
)

func TestNewSchema_UnknownUpdater(t *testing.T) {
	_, err := NewSchema(paintDefinition(), Definition{
		Triggers: map[string][]string{"lineWidth": {"bbox", "missing"}},
		Updaters: []Updater{{Name: "bbox", Fn: func(*Set, []string) error { return nil }}},
	})
	if !errors.Is(err, ErrUnknownUpdater) {
		t.Errorf("error = %v, want ErrUnknownUpdater", err)
	}
}

func TestNewSchema_CanvasNeedsNoUpdater(t *testing.T) {
	_, err := NewSchema(paintDefinition(), Definition{
		Triggers: map[string][]string{"strokeStyle": {UpdaterCanvas}},
	})
	if err != nil {
		t.Errorf("NewSchema: %v", err)
	}
}

func TestNewSchema_LayerOverride(t *testing.T) {
	noop := func(*Set, []string) error { return nil }
	s, err := NewSchema(
		paintDefinition(),
		Definition{
			Updaters: []Updater{{Name: "transform", Fn: noop}, {Name: "bbox", Fn: noop}},
			Defaults: Changes{"lineWidth": 1},
		},
		Definition{
			Processors: map[string]Processor{"lineWidth": Clamped(0, 10)},
			Updaters:   []Updater{{Name: "smooth", Fn: noop}, {Name: "transform", Fn: noop}},
			Defaults:   Changes{"lineWidth": 40},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"transform", "bbox", "smooth"}, s.Updaters()); diff != "" {
		t.Errorf("updater order mismatch (-want +got):\n%s", diff)
	}
	if got := s.Defaults()["lineWidth"]; got != 10.0 {
		t.Errorf("default lineWidth = %v, want clamped 10", got)
	}
}

func TestNewSchema_InvalidDefault(t *testing.T) {
	_, err := NewSchema(paintDefinition(), Definition{Defaults: Changes{"lineCap": "flat"}})
	if !errors.Is(err, ErrRejected) {
		t.Errorf("error = %v, want ErrRejected", err)
	}
}

func TestMustSchema_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustSchema did not panic")
		}
	}()
	MustSchema(Definition{Triggers: map[string][]string{"x": {"nope"}}})
}

func TestSchema_Interpolator(t *testing.T) {
	s := testSchema(t, Definition{
		Processors: map[string]Processor{"label": Text()},
		Animation:  map[string]Interpolator{"lineWidth": Step},
	})
	tests := []struct {
		name     string
		from, to any
		want     any
	}{
		{"globalAlpha", 0.0, 1.0, 0.5},
		{"lineWidth", 1.0, 3.0, 1.0},
		{"strokeStyle", ggchart.Black, ggchart.White, ggchart.RGB(0.5, 0.5, 0.5)},
		{"dataY", []float64{0, 10}, []float64{10, 20, 30}, []float64{5, 15, 30}},
		{"label", "a", "b", "a"},
		{"undeclared", 1.0, 2.0, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Interpolator(tt.name)(tt.from, tt.to, 0.5)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("interpolation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStep(t *testing.T) {
	if Step("a", "b", 0.99) != "a" || Step("a", "b", 1) != "b" {
		t.Error("Step should switch only at t=1")
	}
}

func TestTween_SkipsMatrix(t *testing.T) {
	s := testSchema(t)
	from := Values{KeyTranslationX: 0.0, KeyMatrix: ggchart.Identity()}
	to := Values{KeyTranslationX: 10.0, KeyMatrix: ggchart.Translate(10, 0), "lineWidth": 2.0}
	got := Tween(s, from, to, 0.25)
	want := Values{KeyTranslationX: 2.5, "lineWidth": 2.0}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Tween mismatch (-want +got):\n%s", diff)
	}
}
