package recording

import "github.com/gogpu/ggchart"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Path commands
	CmdBeginPath CommandType = iota
	CmdMoveTo
	CmdLineTo
	CmdCubicTo
	CmdArcTo
	CmdClosePath

	// Drawing commands
	CmdFill
	CmdStroke
	CmdFillText

	// State commands
	CmdSave
	CmdRestore
	CmdSetPaint
	CmdSetTransform
)

var commandTypeNames = [...]string{
	CmdBeginPath:    "BeginPath",
	CmdMoveTo:       "MoveTo",
	CmdLineTo:       "LineTo",
	CmdCubicTo:      "CubicTo",
	CmdArcTo:        "ArcTo",
	CmdClosePath:    "ClosePath",
	CmdFill:         "Fill",
	CmdStroke:       "Stroke",
	CmdFillText:     "FillText",
	CmdSave:         "Save",
	CmdRestore:      "Restore",
	CmdSetPaint:     "SetPaint",
	CmdSetTransform: "SetTransform",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all recorded operations.
type Command interface {
	Type() CommandType
}

// BeginPathCommand discards the current path.
type BeginPathCommand struct{}

// Type implements Command.
func (BeginPathCommand) Type() CommandType { return CmdBeginPath }

// MoveToCommand starts a new subpath.
type MoveToCommand struct {
	Point ggchart.Point
}

// Type implements Command.
func (MoveToCommand) Type() CommandType { return CmdMoveTo }

// LineToCommand adds a straight segment.
type LineToCommand struct {
	Point ggchart.Point
}

// Type implements Command.
func (LineToCommand) Type() CommandType { return CmdLineTo }

// CubicToCommand adds a cubic Bezier segment.
type CubicToCommand struct {
	Control1, Control2, Point ggchart.Point
}

// Type implements Command.
func (CubicToCommand) Type() CommandType { return CmdCubicTo }

// ArcToCommand adds an elliptical arc in SVG endpoint form.
type ArcToCommand struct {
	RX, RY   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	Point    ggchart.Point
}

// Type implements Command.
func (ArcToCommand) Type() CommandType { return CmdArcTo }

// ClosePathCommand closes the current subpath.
type ClosePathCommand struct{}

// Type implements Command.
func (ClosePathCommand) Type() CommandType { return CmdClosePath }

// FillCommand fills the current path.
type FillCommand struct{}

// Type implements Command.
func (FillCommand) Type() CommandType { return CmdFill }

// StrokeCommand strokes the current path.
type StrokeCommand struct{}

// Type implements Command.
func (StrokeCommand) Type() CommandType { return CmdStroke }

// FillTextCommand draws a string.
type FillTextCommand struct {
	Text     string
	X, Y     float64
	Rotation float64
}

// Type implements Command.
func (FillTextCommand) Type() CommandType { return CmdFillText }

// SaveCommand pushes paint and transform.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand pops paint and transform.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// SetPaintCommand replaces the paint state.
type SetPaintCommand struct {
	Paint Paint
}

// Type implements Command.
func (SetPaintCommand) Type() CommandType { return CmdSetPaint }

// SetTransformCommand replaces the current transform.
type SetTransformCommand struct {
	Matrix ggchart.Matrix
}

// Type implements Command.
func (SetTransformCommand) Type() CommandType { return CmdSetTransform }
