package desktop

import (
	"time"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

// Position is an applet paint band.
type Position int

const (
	AlwaysBottom Position = 0
	Normal       Position = 100
	AlwaysTop    Position = 200
)

func (p Position) String() string {
	switch {
	case p < Normal:
		return "bottom"
	case p < AlwaysTop:
		return "normal"
	}
	return "top"
}

// Applet is a desktop decoration painted every frame. Applets receive no
// window input.
type Applet interface {
	Draw(s surface.Surface)
	// ZIndex orders applets; zero means "use the band it was added in".
	ZIndex() int
}

// Updater is implemented by applets that change state between frames.
type Updater interface {
	Update(now time.Time)
}

type entry struct {
	applet Applet
	z      int
}
