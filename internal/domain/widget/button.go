package widget

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

var (
	buttonColor        = surface.MustHex("#E0E0E0")
	buttonHoverColor   = surface.MustHex("#CCCCCC")
	buttonPressedColor = surface.MustHex("#AAAAAA")
	borderColor        = surface.MustHex("#999999")
	inkColor           = surface.MustHex("#000000")
)

// Button is a labelled push button. The click callback fires on release
// over the button after a press on it.
type Button struct {
	bounds

	label   string
	onClick func()
	font    surface.Font

	hovered bool
	pressed bool
}

// NewButton returns a button; onClick may be nil.
func NewButton(label string, onClick func()) *Button {
	return &Button{label: label, onClick: onClick, font: surface.SansFont}
}

func (b *Button) Label() string         { return b.label }
func (b *Button) SetLabel(label string) { b.label = label }
func (b *Button) SetOnClick(fn func())  { b.onClick = fn }
func (b *Button) Hovered() bool         { return b.hovered }
func (b *Button) Pressed() bool         { return b.pressed }

func (b *Button) Draw(s surface.Surface, r surface.Rect) {
	b.Resize(surface.Size{Width: r.Width, Height: r.Height})

	bg := buttonColor
	switch {
	case b.pressed:
		bg = buttonPressedColor
	case b.hovered:
		bg = buttonHoverColor
	}
	s.DrawRect(r.X, r.Y, r.Width, r.Height, bg)
	outline(s, r, borderColor)

	w := s.MeasureText(b.label).Width
	s.DrawText(b.label, r.X+(r.Width-w)/2, baseline(r.Y, r.Height), inkColor, b.font)
}

func (b *Button) HandleEvent(e event.Event) bool {
	x, y, ok := e.Position()
	if !ok {
		return false
	}
	inside := b.inside(x, y)

	switch e.Type {
	case event.MouseMove:
		b.hovered = inside
		return inside
	case event.MouseDown:
		if !inside {
			return false
		}
		b.pressed = true
		return true
	case event.MouseUp:
		wasPressed := b.pressed
		b.pressed = false
		if wasPressed && inside && b.onClick != nil {
			b.onClick()
		}
		return inside
	}
	return false
}

func (b *Button) MinSize() surface.Size       { return surface.Size{Width: 80, Height: 30} }
func (b *Button) PreferredSize() surface.Size { return surface.Size{Width: 120, Height: 40} }
