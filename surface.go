package yule

import "fmt"

// Surface is an immediate-mode 2D drawing target. Coordinates are logical
// pixels with the origin at the top-left. Colors are straight alpha.
//
// Glow state set by SetGlow applies to every following fill until ResetGlow.
type Surface interface {
	Clear()
	SetBlendMode(mode BlendMode)
	StrokeLine(x0, y0, x1, y1, width float64, c Color, lineCap LineCap)
	FillCircle(cx, cy, r float64, c Color)
	SetGlow(radius float64, c Color)
	ResetGlow()
}

// CommandType identifies a recorded drawing command.
type CommandType uint8

const (
	CommandClear CommandType = iota
	CommandBlend
	CommandLine
	CommandCircle
	CommandGlow
	CommandResetGlow
)

func (t CommandType) String() string {
	switch t {
	case CommandClear:
		return "clear"
	case CommandBlend:
		return "blend"
	case CommandLine:
		return "line"
	case CommandCircle:
		return "circle"
	case CommandGlow:
		return "glow"
	case CommandResetGlow:
		return "reset-glow"
	}
	return fmt.Sprintf("CommandType(%d)", uint8(t))
}

// Command is one recorded drawing call. Only the fields relevant to Type
// are set.
type Command struct {
	Type  CommandType
	Blend BlendMode
	// Line endpoints, or circle center in X0/Y0.
	X0, Y0, X1, Y1 float64
	// Width for lines, radius for circles and glows.
	Width float64
	Color Color
	Cap   LineCap
}

// Recorder is a Surface that stores commands instead of drawing them. Clear
// discards everything recorded so far, so after a frame Commands holds that
// frame only.
type Recorder struct {
	Commands []Command
}

func (r *Recorder) Clear() {
	r.Commands = append(r.Commands[:0], Command{Type: CommandClear})
}

func (r *Recorder) SetBlendMode(mode BlendMode) {
	r.Commands = append(r.Commands, Command{Type: CommandBlend, Blend: mode})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c Color, lineCap LineCap) {
	r.Commands = append(r.Commands, Command{
		Type: CommandLine,
		X0:   x0, Y0: y0, X1: x1, Y1: y1,
		Width: width,
		Color: c,
		Cap:   lineCap,
	})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c Color) {
	r.Commands = append(r.Commands, Command{Type: CommandCircle, X0: cx, Y0: cy, Width: radius, Color: c})
}

func (r *Recorder) SetGlow(radius float64, c Color) {
	r.Commands = append(r.Commands, Command{Type: CommandGlow, Width: radius, Color: c})
}

func (r *Recorder) ResetGlow() {
	r.Commands = append(r.Commands, Command{Type: CommandResetGlow})
}

// Count returns how many recorded commands have type t.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for i := range r.Commands {
		if r.Commands[i].Type == t {
			n++
		}
	}
	return n
}

// Filter returns the recorded commands of type t, in order.
func (r *Recorder) Filter(t CommandType) []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}
