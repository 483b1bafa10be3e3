package surface

import "unicode/utf8"

// Op names recorded by Recorder.
const (
	OpClear = "clear"
	OpRect  = "rect"
	OpLine  = "line"
	OpText  = "text"
)

// Call is one recorded drawing operation.
type Call struct {
	Op     string
	X, Y   int
	X2, Y2 int
	W, H   int
	Color  Color
	Text   string
	Font   Font
}

// Recorder is a Surface that records every call. Text measures as
// CharWidth per rune by LineHeight.
type Recorder struct {
	Width, Height int
	CharWidth     int
	LineHeight    int
	Calls         []Call
}

// NewRecorder returns a recorder with an 8x16 text cell.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height, CharWidth: 8, LineHeight: 16}
}

func (r *Recorder) Size() Size { return Size{Width: r.Width, Height: r.Height} }

func (r *Recorder) Clear(c Color) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Color: c})
}

func (r *Recorder) DrawRect(x, y, w, h int, c Color) {
	r.Calls = append(r.Calls, Call{Op: OpRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 int, c Color) {
	r.Calls = append(r.Calls, Call{Op: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Color: c})
}

func (r *Recorder) DrawText(text string, x, y int, c Color, font Font) {
	r.Calls = append(r.Calls, Call{Op: OpText, X: x, Y: y, Color: c, Text: text, Font: font})
}

func (r *Recorder) MeasureText(text string) Size {
	return Size{Width: utf8.RuneCountInString(text) * r.CharWidth, Height: r.LineHeight}
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Texts returns the strings drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == OpText {
			out = append(out, c.Text)
		}
	}
	return out
}

// Filter returns the calls with the given op, in order.
func (r *Recorder) Filter(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}
