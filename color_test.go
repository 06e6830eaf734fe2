package ggchart

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#f00", RGB(1, 0, 0)},
		{"#00ff00", RGB(0, 1, 0)},
		{"#0000ff80", RGBA{B: 1, A: 128.0 / 255}},
		{"rgb(255, 0, 0)", RGB(1, 0, 0)},
		{"rgba(0,0,255,0.5)", RGBA{B: 1, A: 0.5}},
		{"RGB(100%, 0%, 0%)", RGB(1, 0, 0)},
		{"white", White},
		{"steelblue", RGBA{R: 70.0 / 255, G: 130.0 / 255, B: 180.0 / 255, A: 1}},
		{"none", Transparent},
		{"hsl(120, 100%, 50%)", RGB(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("ParseColor(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#ggg", "rgb(1,2)", "rgb(a,b,c)", "notacolor"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestRGBA_String(t *testing.T) {
	for _, c := range []RGBA{RGB(1, 0.5, 0), {R: 0.2, G: 0.4, B: 0.6, A: 0.25}} {
		back, err := ParseColor(c.String())
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", c.String(), err)
		}
		if diff := cmp.Diff(c, back, cmpApprox(1.0/255)); diff != "" {
			t.Errorf("String round trip mismatch:\n%s", diff)
		}
	}
}

func TestRGBA_Lerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	if diff := cmp.Diff(RGB(0.5, 0.5, 0.5), got, approx); diff != "" {
		t.Errorf("Lerp mismatch:\n%s", diff)
	}
}
