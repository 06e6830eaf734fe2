package recording

import (
	"testing"

	"github.com/gogpu/ggchart"
)

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want string
	}{
		{CmdBeginPath, "BeginPath"},
		{CmdMoveTo, "MoveTo"},
		{CmdLineTo, "LineTo"},
		{CmdCubicTo, "CubicTo"},
		{CmdArcTo, "ArcTo"},
		{CmdClosePath, "ClosePath"},
		{CmdFill, "Fill"},
		{CmdStroke, "Stroke"},
		{CmdFillText, "FillText"},
		{CmdSave, "Save"},
		{CmdRestore, "Restore"},
		{CmdSetPaint, "SetPaint"},
		{CmdSetTransform, "SetTransform"},
		{CommandType(254), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("CommandType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandInterface(t *testing.T) {
	commands := []Command{
		BeginPathCommand{},
		MoveToCommand{Point: ggchart.Pt(1, 2)},
		LineToCommand{Point: ggchart.Pt(3, 4)},
		CubicToCommand{},
		ArcToCommand{RX: 1, RY: 1},
		ClosePathCommand{},
		FillCommand{},
		StrokeCommand{},
		FillTextCommand{Text: "a"},
		SaveCommand{},
		RestoreCommand{},
		SetPaintCommand{Paint: DefaultPaint()},
		SetTransformCommand{Matrix: ggchart.Identity()},
	}
	for i, c := range commands {
		if got := c.Type(); got != CommandType(i) {
			t.Errorf("%T.Type() = %v, want %v", c, got, CommandType(i))
		}
	}
}
