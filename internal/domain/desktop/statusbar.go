package desktop

import (
	"time"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/wm"
)

const (
	StatusBarHeight = 20

	clockInterval = time.Second
	clockLayout   = "15:04:05"
)

var (
	statusBarColor   = surface.MustHex("#444444")
	statusLineColor  = surface.MustHex("#333333")
	statusTextColor  = surface.MustHex("#FFFFFF")
	chipFocusedColor = surface.MustHex("#77a")
	chipColor        = surface.MustHex("#555")
)

// WindowLister is the read side of the window manager the status bar needs.
type WindowLister interface {
	Windows() []*wm.Window
}

// StatusBar is a strip along the top of the screen with one chip per
// window and a clock on the right.
type StatusBar struct {
	windows  WindowLister
	clock    string
	lastTick time.Time
}

// NewStatusBar returns a status bar listing the windows from w.
func NewStatusBar(w WindowLister) *StatusBar {
	return &StatusBar{windows: w}
}

// Clock returns the time currently shown.
func (b *StatusBar) Clock() string { return b.clock }

// Update refreshes the clock at most once per second.
func (b *StatusBar) Update(now time.Time) {
	if b.clock != "" && now.Sub(b.lastTick) < clockInterval {
		return
	}
	b.clock = now.Format(clockLayout)
	b.lastTick = now
}

func (b *StatusBar) Draw(s surface.Surface) {
	width := s.Size().Width
	textY := StatusBarHeight/2 + 3

	s.DrawRect(0, 0, width, StatusBarHeight, statusBarColor)
	s.DrawRect(0, StatusBarHeight-1, width, 1, statusLineColor)

	if b.clock != "" {
		x := width - s.MeasureText(b.clock).Width - 10
		s.DrawText(b.clock, x, textY, statusTextColor, surface.DefaultFont)
	}

	x := 0
	for _, w := range b.windows.Windows() {
		chip := s.MeasureText(w.Title()).Width + 20
		bg := chipColor
		if w.IsFocused() {
			bg = chipFocusedColor
		}
		s.DrawRect(x, 0, chip, StatusBarHeight, bg)
		s.DrawText(w.Title(), x+10, textY, statusTextColor, surface.DefaultFont)
		x += chip
	}
}

func (b *StatusBar) ZIndex() int { return int(AlwaysTop) }
