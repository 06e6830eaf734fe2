package raster

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/gogpu/ggchart"
	"github.com/gogpu/ggchart/recording"
)

func TestBackendRegistration(t *testing.T) {
	if !recording.IsRegistered("raster") {
		t.Fatal("raster backend not registered")
	}
	backend, err := recording.NewBackend("raster")
	if err != nil {
		t.Fatalf("failed to create raster backend: %v", err)
	}
	if _, ok := backend.(*Backend); !ok {
		t.Fatalf("backend is %T, want *raster.Backend", backend)
	}
}

func TestBackendLifecycle(t *testing.T) {
	backend := New(WithBackground(ggchart.White))
	if backend.Image() != nil {
		t.Error("Image before Begin should be nil")
	}
	if err := backend.Begin(100, 50); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := backend.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	img := backend.Image()
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("Image bounds = %v, want 100x50", b)
	}
	if px := img.RGBAAt(10, 10); px.R != 255 || px.A != 255 {
		t.Errorf("background pixel = %v, want white", px)
	}
}

func square(x, y, size float64) *recording.Path {
	p := recording.NewPath()
	p.MoveTo(ggchart.Pt(x, y))
	p.LineTo(ggchart.Pt(x+size, y))
	p.LineTo(ggchart.Pt(x+size, y+size))
	p.LineTo(ggchart.Pt(x, y+size))
	p.Close()
	return p
}

func TestBackendFillPath(t *testing.T) {
	backend := New()
	if err := backend.Begin(100, 100); err != nil {
		t.Fatal(err)
	}
	paint := recording.DefaultPaint()
	paint.FillColor = ggchart.RGB(1, 0, 0)
	backend.FillPath(square(20, 20, 60), paint)

	img := backend.Image()
	if px := img.RGBAAt(50, 50); px.R < 250 || px.G != 0 || px.A < 250 {
		t.Errorf("inside pixel = %v, want opaque red", px)
	}
	if px := img.RGBAAt(5, 5); px.A != 0 {
		t.Errorf("outside pixel = %v, want transparent", px)
	}
}

func TestBackendFillTransparentIsNoop(t *testing.T) {
	backend := New()
	if err := backend.Begin(20, 20); err != nil {
		t.Fatal(err)
	}
	paint := recording.DefaultPaint()
	paint.FillOpacity = 0
	backend.FillPath(square(0, 0, 20), paint)
	if px := backend.Image().RGBAAt(10, 10); px.A != 0 {
		t.Errorf("pixel = %v, want untouched", px)
	}
}

func TestBackendStrokePath(t *testing.T) {
	tests := []struct {
		name string
		cap  recording.LineCap
		join recording.LineJoin
	}{
		{"butt miter", recording.LineCapButt, recording.LineJoinMiter},
		{"round round", recording.LineCapRound, recording.LineJoinRound},
		{"square bevel", recording.LineCapSquare, recording.LineJoinBevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := New()
			if err := backend.Begin(100, 100); err != nil {
				t.Fatal(err)
			}
			paint := recording.DefaultPaint()
			paint.StrokeColor = ggchart.RGB(0, 0, 1)
			paint.LineWidth = 6
			paint.LineCap = tt.cap
			paint.LineJoin = tt.join

			p := recording.NewPath()
			p.MoveTo(ggchart.Pt(10, 50))
			p.LineTo(ggchart.Pt(90, 50))
			p.LineTo(ggchart.Pt(90, 90))
			backend.StrokePath(p, paint)

			img := backend.Image()
			if px := img.RGBAAt(50, 50); px.B < 250 || px.A < 250 {
				t.Errorf("on-line pixel = %v, want opaque blue", px)
			}
			if px := img.RGBAAt(50, 40); px.A != 0 {
				t.Errorf("off-line pixel = %v, want transparent", px)
			}
			// The corner is covered regardless of join.
			if px := img.RGBAAt(90, 50); px.A == 0 {
				t.Errorf("corner pixel = %v, want covered", px)
			}
		})
	}
}

func TestStrokeOutlineOrientation(t *testing.T) {
	lines := []recording.Polyline{{Points: []ggchart.Point{
		ggchart.Pt(0, 0), ggchart.Pt(10, 0), ggchart.Pt(10, 10), ggchart.Pt(0, 10),
	}, Closed: true}}
	paint := recording.DefaultPaint()
	paint.LineWidth = 2
	paint.LineJoin = recording.LineJoinRound

	for i, poly := range strokeOutline(lines, paint) {
		area := 0.0
		for j := range poly {
			k := (j + 1) % len(poly)
			area += poly[j].X*poly[k].Y - poly[k].X*poly[j].Y
		}
		if area > 0 {
			t.Errorf("polygon %d has positive area %v", i, area)
		}
	}
}

func TestDash(t *testing.T) {
	line := []recording.Polyline{{Points: []ggchart.Point{ggchart.Pt(0, 0), ggchart.Pt(10, 0)}}}

	t.Run("even pattern", func(t *testing.T) {
		got := dash(line, []float64{2, 3}, 0)
		// on [0,2], [5,7]
		if len(got) != 2 {
			t.Fatalf("got %d dashes, want 2: %v", len(got), got)
		}
		if got[1].Points[0].X != 5 || got[1].Points[1].X != 7 {
			t.Errorf("second dash = %v, want 5..7", got[1].Points)
		}
	})

	t.Run("odd pattern doubles", func(t *testing.T) {
		got := dash(line, []float64{4}, 0)
		// on [0,4], [8,10]
		if len(got) != 2 {
			t.Fatalf("got %d dashes, want 2: %v", len(got), got)
		}
	})

	t.Run("offset", func(t *testing.T) {
		got := dash(line, []float64{2, 3}, 1)
		if len(got) == 0 || got[0].Points[1].X != 1 {
			t.Errorf("first dash = %v, want to end at x=1", got)
		}
	})

	t.Run("zero pattern ignored", func(t *testing.T) {
		if got := dash(line, []float64{0, 0}, 0); len(got) != 1 {
			t.Errorf("got %d lines, want the input unchanged", len(got))
		}
	})
}

func TestBackendFillText(t *testing.T) {
	backend := New()
	if err := backend.Begin(120, 40); err != nil {
		t.Fatal(err)
	}
	backend.FillText("Hello", ggchart.Pt(5, 20), 0, recording.DefaultPaint())
	backend.FillText("rotated", ggchart.Pt(60, 35), -math.Pi/4, recording.DefaultPaint())

	inked := 0
	img := backend.Image()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Error("no pixels were drawn for text")
	}
}

func TestRecordingPlayback(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	p := recording.DefaultPaint()
	p.FillColor = ggchart.RGB(0, 1, 0)
	rec.SetPaint(p)
	rec.BeginPath()
	rec.MoveTo(80, 50)
	rec.ArcTo(30, 30, 0, false, true, 20, 50)
	rec.ArcTo(30, 30, 0, false, true, 80, 50)
	rec.ClosePath()
	rec.Fill()

	backend, err := recording.NewBackend("raster")
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	if err := rec.FinishRecording().Playback(backend); err != nil {
		t.Fatalf("Playback failed: %v", err)
	}

	img := backend.(recording.ImageBackend).Image()
	if px := img.RGBAAt(50, 50); px.G < 250 {
		t.Errorf("center pixel = %v, want green", px)
	}
	if px := img.RGBAAt(5, 5); px.A != 0 {
		t.Errorf("corner pixel = %v, want transparent", px)
	}
}

func TestBackendWriteTo(t *testing.T) {
	backend := New(WithBackground(ggchart.Black))
	if err := backend.Begin(16, 8); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n, err := backend.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo returned %d, buffer has %d bytes", n, buf.Len())
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("decoded bounds = %v, want 16x8", b)
	}
}

func TestBackendSaveRestore(t *testing.T) {
	backend := New()
	if err := backend.Begin(10, 10); err != nil {
		t.Fatal(err)
	}
	backend.Save()
	backend.SetTransform(ggchart.Translate(3, 3))
	backend.Restore()
	backend.Restore() // empty stack
	if !backend.transform.IsIdentity() {
		t.Errorf("transform after Restore = %+v, want identity", backend.transform)
	}
}
