package ggchart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for unrecognized input.
var ErrInvalidColor = errors.New("ggchart: invalid color")

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A *= a
	return c
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// IsTransparent reports whether painting c has no visible effect.
func (c RGBA) IsTransparent() bool {
	return c.A <= 0
}

// String formats c the way ParseColor reads it back.
func (c RGBA) String() string {
	n := c.Color().(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", n.R, n.G, n.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA{}
)

// ParseColor reads a CSS-style color: "#rgb", "#rgba", "#rrggbb",
// "#rrggbbaa", "rgb(r,g,b)", "rgba(r,g,b,a)", "hsl(h,s%,l%)", an SVG
// color keyword, or "none"/"transparent".
func ParseColor(s string) (RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "none" || s == "transparent":
		return Transparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "hsl("):
		return parseHSLFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return FromColor(c), nil
	}
	return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(hex string) (RGBA, error) {
	digit := func(i, n int) (float64, error) {
		v, err := strconv.ParseUint(hex[i:i+n], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
		}
		if n == 1 {
			v *= 17
		}
		return float64(v) / 255, nil
	}

	var width int
	switch len(hex) {
	case 3, 4:
		width = 1
	case 6, 8:
		width = 2
	default:
		return RGBA{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
	}
	vals := []float64{0, 0, 0, 1}
	for i := 0; i*width < len(hex); i++ {
		v, err := digit(i*width, width)
		if err != nil {
			return RGBA{}, err
		}
		vals[i] = v
	}
	return RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

func funcArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

func parseRGBFunc(s string) (RGBA, error) {
	args, ok := funcArgs(s)
	if !ok || len(args) < 3 || len(args) > 4 {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c := RGBA{A: 1}
	dst := []*float64{&c.R, &c.G, &c.B, &c.A}
	for i, a := range args {
		pct := strings.HasSuffix(a, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		switch {
		case pct:
			v /= 100
		case i < 3:
			v /= 255
		}
		*dst[i] = math.Max(0, math.Min(1, v))
	}
	return c, nil
}

func parseHSLFunc(s string) (RGBA, error) {
	args, ok := funcArgs(s)
	if !ok || len(args) != 3 {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var v [3]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v[i] = f
	}
	return HSL(v[0], v[1]/100, v[2]/100), nil
}

// HSL creates a color from HSL values.
// h is hue [0, 360), s is saturation [0, 1], l is lightness [0, 1].
func HSL(h, s, l float64) RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB(r+m, g+m, b+m)
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	return math.Max(0, math.Min(255, math.Round(x)))
}
