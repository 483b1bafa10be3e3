package widget

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

const (
	checkboxBox    = 16
	checkboxGap    = 8
	checkmarkInset = 3
)

var checkboxFill = surface.MustHex("#FFFFFF")

// Checkbox toggles on press and reports the new state through onChange.
type Checkbox struct {
	bounds

	label    string
	checked  bool
	hovered  bool
	onChange func(checked bool)
	font     surface.Font
}

// NewCheckbox returns an unchecked checkbox; onChange may be nil.
func NewCheckbox(label string, onChange func(checked bool)) *Checkbox {
	return &Checkbox{label: label, onChange: onChange, font: surface.SansFont}
}

func (c *Checkbox) Label() string { return c.label }
func (c *Checkbox) Checked() bool { return c.checked }
func (c *Checkbox) Hovered() bool { return c.hovered }

// SetChecked sets the state and notifies onChange.
func (c *Checkbox) SetChecked(checked bool) {
	c.checked = checked
	if c.onChange != nil {
		c.onChange(checked)
	}
}

func (c *Checkbox) Draw(s surface.Surface, r surface.Rect) {
	c.Resize(surface.Size{Width: r.Width, Height: r.Height})

	boxY := r.Y + (r.Height-checkboxBox)/2
	box := surface.Rect{X: r.X, Y: boxY, Width: checkboxBox, Height: checkboxBox}
	s.DrawRect(box.X, box.Y, box.Width, box.Height, checkboxFill)
	outline(s, box, borderColor)

	if c.checked {
		mid := checkboxBox / 2
		s.DrawLine(r.X+checkmarkInset, boxY+mid, r.X+mid, boxY+checkboxBox-checkmarkInset, inkColor)
		s.DrawLine(r.X+mid, boxY+checkboxBox-checkmarkInset, r.X+checkboxBox-checkmarkInset, boxY+checkmarkInset, inkColor)
	}

	s.DrawText(c.label, r.X+checkboxBox+checkboxGap, baseline(r.Y, r.Height), inkColor, c.font)
}

func (c *Checkbox) HandleEvent(e event.Event) bool {
	x, y, ok := e.Position()
	if !ok {
		return false
	}
	inside := c.inside(x, y)

	switch e.Type {
	case event.MouseDown:
		if !inside {
			return false
		}
		c.SetChecked(!c.checked)
		return true
	case event.MouseMove:
		c.hovered = inside
		return inside
	}
	return false
}

func (c *Checkbox) MinSize() surface.Size {
	return surface.Size{Width: checkboxBox + checkboxGap + 80, Height: max(20, checkboxBox)}
}

func (c *Checkbox) PreferredSize() surface.Size {
	return surface.Size{Width: checkboxBox + checkboxGap + 150, Height: 30}
}
