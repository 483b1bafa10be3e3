package widget

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

// Widget is a UI element that paints into a rectangle and reacts to input.
// Pointer coordinates in events passed to HandleEvent are relative to the
// widget's own top-left corner.
type Widget interface {
	Draw(s surface.Surface, r surface.Rect)
	// HandleEvent reports whether the event was consumed.
	HandleEvent(e event.Event) bool
	MinSize() surface.Size
	PreferredSize() surface.Size
}

// Resizer is implemented by widgets that need to know their extent before
// they are next drawn, e.g. for hit-testing.
type Resizer interface {
	Resize(size surface.Size)
}

// Focusable is implemented by widgets that hold keyboard focus.
type Focusable interface {
	SetFocused(focused bool)
	Focused() bool
}

// bounds remembers the extent a leaf widget was last given.
type bounds struct {
	size surface.Size
}

// Resize records the widget's extent.
func (b *bounds) Resize(size surface.Size) {
	b.size = size
}

// Size returns the extent last given to the widget.
func (b *bounds) Size() surface.Size {
	return b.size
}

func (b *bounds) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size.Width && y < b.size.Height
}

// baseline returns the y of text vertically centred in a box of height h.
func baseline(top, h int) int {
	return top + h/2 + 5
}

func outline(s surface.Surface, r surface.Rect, c surface.Color) {
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	s.DrawLine(r.X, r.Y, right, r.Y, c)
	s.DrawLine(right, r.Y, right, bottom, c)
	s.DrawLine(right, bottom, r.X, bottom, c)
	s.DrawLine(r.X, bottom, r.X, r.Y, c)
}
