package recording

import (
	"image"
	"io"

	"github.com/gogpu/ggchart"
)

// Backend turns a Recording into output. Playback hands it device-space
// paths together with the paint in effect when Fill or Stroke was
// recorded.
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Handle all Backend methods (even if no-op for some)
//  3. Manage its own state stack for Save/Restore
//
// # Example Backend Registration
//
//	func init() {
//	    recording.Register("raster", func() recording.Backend {
//	        return New()
//	    })
//	}
type Backend interface {
	// Begin initializes the backend for a canvas of the given size.
	Begin(width, height int) error

	// End finalizes the output. After End, output methods can be used.
	End() error

	// Save and Restore bracket transform changes. Restore on an empty
	// stack is a no-op.
	Save()
	Restore()

	// SetTransform reports the current user-to-device transform. Paths
	// are already mapped; backends need it only for their own metrics.
	SetTransform(m ggchart.Matrix)

	// FillPath fills path with paint.Fill() using the non-zero rule.
	FillPath(path *Path, paint Paint)

	// StrokePath strokes path with paint.Stroke() and its line style.
	StrokePath(path *Path, paint Paint)

	// FillText draws s with its baseline origin at the device point,
	// rotated by rotation radians.
	FillText(s string, at ggchart.Point, rotation float64, paint Paint)
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content. Only valid after End.
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output directly to a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the rendered content. Only valid after End.
	SaveToFile(path string) error
}

// ImageBackend exposes the rendered pixels of raster backends.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before Begin.
	Image() *image.RGBA
}
