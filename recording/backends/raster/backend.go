// Package raster renders recordings to an RGBA image.
//
// Fills are scan-converted with golang.org/x/image/vector using its
// accumulated-coverage rule, which matches non-zero winding for the
// shapes charts produce. Strokes are converted to filled outlines first.
// Text is drawn with the fixed 7x13 face from golang.org/x/image/font/basicfont.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/ggchart/recording/backends/raster"
//
//	backend, _ := recording.NewBackend("raster")
//	if err := r.Playback(backend); err != nil {
//	    return err
//	}
//	backend.(recording.FileBackend).SaveToFile("chart.png")
package raster

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/recording"
)

func init() {
	recording.Register("raster", func() recording.Backend {
		return New()
	})
}

// Option configures a Backend.
type Option func(*Backend)

// WithBackground fills the canvas with c on Begin.
func WithBackground(c ggchart.RGBA) Option {
	return func(b *Backend) {
		b.background = c
	}
}

// WithTolerance sets the curve flattening tolerance used for strokes.
func WithTolerance(tol float64) Option {
	return func(b *Backend) {
		b.tolerance = tol
	}
}

// Backend rasterizes paths onto an *image.RGBA.
type Backend struct {
	img        *image.RGBA
	rast       *vector.Rasterizer
	face       font.Face
	background ggchart.RGBA
	tolerance  float64

	transform ggchart.Matrix
	stack     []ggchart.Matrix
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
	_ recording.ImageBackend  = (*Backend)(nil)
)

// New creates a raster backend. It must be initialized with Begin.
func New(opts ...Option) *Backend {
	b := &Backend{
		face:      basicfont.Face7x13,
		tolerance: recording.Tolerance,
		transform: ggchart.Identity(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Begin allocates a width x height canvas.
func (b *Backend) Begin(width, height int) error {
	width, height = max(width, 1), max(height, 1)
	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
	b.rast = vector.NewRasterizer(width, height)
	b.transform = ggchart.Identity()
	b.stack = b.stack[:0]
	if !b.background.IsTransparent() {
		draw.Draw(b.img, b.img.Bounds(), image.NewUniform(b.background.Color()), image.Point{}, draw.Src)
	}
	return nil
}

// End finalizes the rendering.
func (b *Backend) End() error {
	return nil
}

// Save pushes the transform.
func (b *Backend) Save() {
	b.stack = append(b.stack, b.transform)
}

// Restore pops the transform.
func (b *Backend) Restore() {
	if len(b.stack) == 0 {
		return
	}
	b.transform = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
}

// SetTransform records the current transform.
func (b *Backend) SetTransform(m ggchart.Matrix) {
	b.transform = m
}

// FillPath fills path with paint.Fill().
func (b *Backend) FillPath(path *recording.Path, paint recording.Paint) {
	c := paint.Fill()
	if b.img == nil || path == nil || c.IsTransparent() {
		return
	}
	b.rast.Reset(b.img.Bounds().Dx(), b.img.Bounds().Dy())
	open := false
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case recording.MoveTo:
			if open {
				b.rast.ClosePath()
			}
			b.rast.MoveTo(f32(e.Point.X), f32(e.Point.Y))
			open = true
		case recording.LineTo:
			b.rast.LineTo(f32(e.Point.X), f32(e.Point.Y))
		case recording.CubicTo:
			b.rast.CubeTo(
				f32(e.Control1.X), f32(e.Control1.Y),
				f32(e.Control2.X), f32(e.Control2.Y),
				f32(e.Point.X), f32(e.Point.Y))
		case recording.Close:
			b.rast.ClosePath()
			open = false
		}
	}
	if open {
		b.rast.ClosePath()
	}
	b.draw(c)
}

// StrokePath outlines path using the paint's line style and fills the
// outline with paint.Stroke().
func (b *Backend) StrokePath(path *recording.Path, paint recording.Paint) {
	c := paint.Stroke()
	if b.img == nil || path == nil || c.IsTransparent() || !(paint.LineWidth > 0) {
		return
	}
	lines := path.Flatten(b.tolerance)
	if len(paint.Dash) > 0 {
		lines = dash(lines, paint.Dash, paint.DashOffset)
	}
	polys := strokeOutline(lines, paint)
	if len(polys) == 0 {
		return
	}
	b.rast.Reset(b.img.Bounds().Dx(), b.img.Bounds().Dy())
	for _, poly := range polys {
		b.rast.MoveTo(f32(poly[0].X), f32(poly[0].Y))
		for _, p := range poly[1:] {
			b.rast.LineTo(f32(p.X), f32(p.Y))
		}
		b.rast.ClosePath()
	}
	b.draw(c)
}

func (b *Backend) draw(c ggchart.RGBA) {
	b.rast.DrawOp = draw.Over
	b.rast.Draw(b.img, b.img.Bounds(), image.NewUniform(c.Color()), image.Point{})
}

// FillText draws s along a baseline starting at the given point. Rotated
// text keeps glyphs upright and steps along the rotated baseline.
func (b *Backend) FillText(s string, at ggchart.Point, rotation float64, paint recording.Paint) {
	c := paint.Fill()
	if b.img == nil || s == "" || c.IsTransparent() || !at.IsFinite() {
		return
	}
	d := &font.Drawer{Dst: b.img, Src: image.NewUniform(c.Color()), Face: b.face}
	if math.Abs(rotation) < 1e-9 {
		d.Dot = toFixed(at)
		d.DrawString(s)
		return
	}
	dir := ggchart.Pt(math.Cos(rotation), math.Sin(rotation))
	pen := at
	for _, r := range s {
		d.Dot = toFixed(pen)
		d.DrawString(string(r))
		adv, ok := b.face.GlyphAdvance(r)
		if !ok {
			continue
		}
		pen = pen.Add(dir.Mul(float64(adv) / 64))
	}
}

// WriteTo encodes the canvas as PNG.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SaveToFile writes the canvas as a PNG file.
func (b *Backend) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// SavePNG is an alias for SaveToFile.
func (b *Backend) SavePNG(path string) error {
	return b.SaveToFile(path)
}

// Image returns the canvas.
func (b *Backend) Image() *image.RGBA {
	return b.img
}

func f32(v float64) float32 {
	return float32(v)
}

func toFixed(p ggchart.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(p.X * 64)),
		Y: fixed.Int26_6(math.Round(p.Y * 64)),
	}
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
