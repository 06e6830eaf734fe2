package recording

import (
	"math"

	"github.com/gogpu/ggchart"
)

// Recorder is a TextSurface that captures every call as a Command.
// Use FinishRecording to obtain the Recording.
//
// Example:
//
//	rec := recording.NewRecorder(800, 600)
//	rec.BeginPath()
//	rec.MoveTo(10, 10)
//	rec.LineTo(100, 100)
//	rec.Stroke()
//	r := rec.FinishRecording()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command

	paint      Paint
	transform  ggchart.Matrix
	stateStack []recorderState
}

type recorderState struct {
	paint     Paint
	transform ggchart.Matrix
}

// NewRecorder creates a Recorder for a canvas of the given size, starting
// with DefaultPaint and the identity transform.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:      width,
		height:     height,
		commands:   make([]Command, 0, 256),
		paint:      DefaultPaint(),
		transform:  ggchart.Identity(),
		stateStack: make([]recorderState, 0, 8),
	}
}

// Inherit copies the paint and transform of s without recording them, so
// that commands recorded afterwards replay correctly onto s.
func (r *Recorder) Inherit(s Surface) {
	r.paint = s.Paint()
	r.transform = s.Transform()
}

// Width returns the width of the recording canvas.
func (r *Recorder) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recorder) Height() int {
	return r.height
}

// FinishRecording returns the commands recorded so far. The Recorder
// should not be used afterwards.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		width:    r.width,
		height:   r.height,
		commands: r.commands,
	}
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.commands)
}

func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

// BeginPath implements Surface.
func (r *Recorder) BeginPath() { r.record(BeginPathCommand{}) }

// MoveTo implements Surface.
func (r *Recorder) MoveTo(x, y float64) {
	r.record(MoveToCommand{Point: ggchart.Pt(x, y)})
}

// LineTo implements Surface.
func (r *Recorder) LineTo(x, y float64) {
	r.record(LineToCommand{Point: ggchart.Pt(x, y)})
}

// CubicTo implements Surface.
func (r *Recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.record(CubicToCommand{
		Control1: ggchart.Pt(c1x, c1y),
		Control2: ggchart.Pt(c2x, c2y),
		Point:    ggchart.Pt(x, y),
	})
}

// ArcTo implements Surface.
func (r *Recorder) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) {
	r.record(ArcToCommand{
		RX: rx, RY: ry, Rotation: rotation,
		LargeArc: largeArc, Sweep: sweep,
		Point: ggchart.Pt(x, y),
	})
}

// ClosePath implements Surface.
func (r *Recorder) ClosePath() { r.record(ClosePathCommand{}) }

// Fill implements Surface.
func (r *Recorder) Fill() { r.record(FillCommand{}) }

// Stroke implements Surface.
func (r *Recorder) Stroke() { r.record(StrokeCommand{}) }

// FillText implements TextSurface.
func (r *Recorder) FillText(s string, x, y, rotation float64) {
	r.record(FillTextCommand{Text: s, X: x, Y: y, Rotation: rotation})
}

// Save pushes the paint and transform.
func (r *Recorder) Save() {
	r.stateStack = append(r.stateStack, recorderState{paint: r.paint.Clone(), transform: r.transform})
	r.record(SaveCommand{})
}

// Restore pops the paint and transform. Unbalanced calls are ignored.
func (r *Recorder) Restore() {
	if len(r.stateStack) == 0 {
		return
	}
	s := r.stateStack[len(r.stateStack)-1]
	r.stateStack = r.stateStack[:len(r.stateStack)-1]
	r.paint = s.paint
	r.transform = s.transform
	r.record(RestoreCommand{})
}

// SetPaint implements Surface.
func (r *Recorder) SetPaint(p Paint) {
	r.paint = p.Clone()
	r.record(SetPaintCommand{Paint: r.paint})
}

// Paint returns the current paint.
func (r *Recorder) Paint() Paint {
	return r.paint.Clone()
}

// SetTransform implements Surface.
func (r *Recorder) SetTransform(m ggchart.Matrix) {
	r.transform = m
	r.record(SetTransformCommand{Matrix: m})
}

// Transform returns the current transform.
func (r *Recorder) Transform() ggchart.Matrix {
	return r.transform
}

// Recording is an immutable list of recorded commands.
type Recording struct {
	width, height int
	commands      []Command
}

// Width returns the width of the recording canvas.
func (r *Recording) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recording) Height() int {
	return r.height
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Count returns how many commands have one of the given types.
func (r *Recording) Count(types ...CommandType) int {
	n := 0
	for _, c := range r.commands {
		for _, t := range types {
			if c.Type() == t {
				n++
				break
			}
		}
	}
	return n
}

// Replay issues the recorded commands on s. FillText is skipped unless s
// is a TextSurface.
func (r *Recording) Replay(s Surface) {
	ts, _ := s.(TextSurface)
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case BeginPathCommand:
			s.BeginPath()
		case MoveToCommand:
			s.MoveTo(c.Point.X, c.Point.Y)
		case LineToCommand:
			s.LineTo(c.Point.X, c.Point.Y)
		case CubicToCommand:
			s.CubicTo(c.Control1.X, c.Control1.Y, c.Control2.X, c.Control2.Y, c.Point.X, c.Point.Y)
		case ArcToCommand:
			s.ArcTo(c.RX, c.RY, c.Rotation, c.LargeArc, c.Sweep, c.Point.X, c.Point.Y)
		case ClosePathCommand:
			s.ClosePath()
		case FillCommand:
			s.Fill()
		case StrokeCommand:
			s.Stroke()
		case FillTextCommand:
			if ts != nil {
				ts.FillText(c.Text, c.X, c.Y, c.Rotation)
			}
		case SaveCommand:
			s.Save()
		case RestoreCommand:
			s.Restore()
		case SetPaintCommand:
			s.SetPaint(c.Paint)
		case SetTransformCommand:
			s.SetTransform(c.Matrix)
		}
	}
}

// Playback builds device-space paths from the recording and hands them to
// backend. Path points are mapped through the transform current when they
// were added.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.width, r.height); err != nil {
		return err
	}

	var (
		path  = NewPath()
		state = recorderState{paint: DefaultPaint(), transform: ggchart.Identity()}
		stack []recorderState
	)
	// Arc radii live in user space; the arc is expanded before mapping.
	arcTo := func(c ArcToCommand) {
		inv := state.transform.Invert()
		from := inv.TransformPoint(path.CurrentPoint())
		if path.Empty() {
			path.MoveTo(state.transform.TransformPoint(c.Point))
			return
		}
		for _, bez := range ggchart.EndpointArc(from, c.RX, c.RY, c.Rotation, c.LargeArc, c.Sweep, c.Point) {
			m := state.transform
			path.CubicTo(m.TransformPoint(bez.P1), m.TransformPoint(bez.P2), m.TransformPoint(bez.P3))
		}
	}

	for _, cmd := range r.commands {
		m := state.transform
		switch c := cmd.(type) {
		case BeginPathCommand:
			path.Reset()
		case MoveToCommand:
			path.MoveTo(m.TransformPoint(c.Point))
		case LineToCommand:
			path.LineTo(m.TransformPoint(c.Point))
		case CubicToCommand:
			path.CubicTo(m.TransformPoint(c.Control1), m.TransformPoint(c.Control2), m.TransformPoint(c.Point))
		case ArcToCommand:
			arcTo(c)
		case ClosePathCommand:
			path.Close()
		case FillCommand:
			if !path.Empty() {
				backend.FillPath(path, state.paint)
			}
		case StrokeCommand:
			if !path.Empty() {
				p := state.paint
				p.LineWidth *= strokeScale(m)
				backend.StrokePath(path, p)
			}
		case FillTextCommand:
			backend.FillText(c.Text, m.TransformPoint(ggchart.Pt(c.X, c.Y)), c.Rotation+m.Angle(), state.paint)
		case SaveCommand:
			stack = append(stack, state)
			backend.Save()
		case RestoreCommand:
			if len(stack) > 0 {
				state = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				backend.Restore()
				backend.SetTransform(state.transform)
			}
		case SetPaintCommand:
			state.paint = c.Paint
		case SetTransformCommand:
			state.transform = c.Matrix
			backend.SetTransform(c.Matrix)
		}
	}

	return backend.End()
}

// strokeScale approximates how m scales line widths.
func strokeScale(m ggchart.Matrix) float64 {
	d := m.Determinant()
	if d < 0 {
		d = -d
	}
	if d == 0 {
		return 1
	}
	return math.Sqrt(d)
}
