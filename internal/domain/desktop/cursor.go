package desktop

import (
	"math"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

var (
	cursorOutline = surface.MustHex("#000000")
	cursorFill    = surface.MustHex("#FFFFFF")
	cursorCore    = surface.MustHex("#3355AA")
)

// Cursor follows the pointer. The desktop paints it after everything else.
type Cursor struct {
	source input.Source
	token  event.Token
	x, y   int
}

// NewCursor subscribes to pointer moves on src.
func NewCursor(src input.Source) *Cursor {
	c := &Cursor{source: src}
	c.x, c.y = src.Position()
	c.token = src.OnPointerMove(func(x, y int) { c.x, c.y = x, y })
	return c
}

// Position returns the last pointer position seen.
func (c *Cursor) Position() (x, y int) { return c.x, c.y }

func (c *Cursor) Draw(s surface.Surface) {
	s.DrawRect(c.x-1, c.y-1, 12, 12, cursorOutline)
	s.DrawRect(c.x, c.y, 10, 10, cursorFill)
	s.DrawRect(c.x+2, c.y+2, 6, 6, cursorCore)
}

func (c *Cursor) ZIndex() int { return math.MaxInt }

// Close stops tracking the pointer.
func (c *Cursor) Close() {
	c.source.Unsubscribe(c.token)
}
