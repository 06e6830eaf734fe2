// Package recording captures the draw-operation stream that sprites emit.
//
// Sprites never touch pixels. They drive a [Surface]: begin a path, move,
// line, cubic and arc to points, close, fill, stroke, and save or restore
// paint state. A [Recorder] is a Surface that stores each call as a typed
// command. The resulting [Recording] can be inspected in tests, replayed
// onto another Surface, or played back to a [Backend] that produces
// output.
//
// # Architecture
//
//   - Surface: the abstract drawing target sprites render to
//   - Recorder: a Surface that records commands
//   - Recording: an immutable command list
//   - Backend: consumes device-space paths during Playback
//
// # Basic Usage
//
//	rec := recording.NewRecorder(800, 600)
//	line.Render(rec)
//	r := rec.FinishRecording()
//
//	backend, _ := recording.NewBackend("raster")
//	if err := r.Playback(backend); err != nil {
//	    return err
//	}
//
// # Backend Registration
//
// Backends register themselves in init, following the database/sql driver
// pattern:
//
//	import _ "github.com/gogpu/ggchart/recording/backends/raster"
//
// The Recorder is not safe for concurrent use. The registry is.
package recording
