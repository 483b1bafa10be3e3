package widget

import (
	"strings"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

const (
	textLineHeight     = 16
	textPadding        = 5
	scrollbarWidth     = 8
	minScrollbarHandle = 30
)

var (
	scrollTrackColor  = surface.MustHex("#DDDDDD")
	scrollHandleColor = surface.MustHex("#999999")
)

// Text shows multi-line text and scrolls a line per wheel step.
type Text struct {
	bounds

	text       string
	lines      []string
	color      surface.Color
	background surface.Color
	font       surface.Font

	scroll    int
	maxScroll int
}

// NewText returns a text widget showing text.
func NewText(text string) *Text {
	t := &Text{
		color:      surface.MustHex("#000000"),
		background: surface.MustHex("#FFFFFF"),
		font:       surface.DefaultFont,
	}
	t.SetText(text)
	return t
}

// SetText replaces the content and clamps the scroll offset.
func (t *Text) SetText(text string) {
	t.text = text
	t.lines = strings.Split(text, "\n")
	t.updateScroll()
}

// Text returns the content.
func (t *Text) Text() string { return t.text }

func (t *Text) SetTextColor(c surface.Color)       { t.color = c }
func (t *Text) SetBackgroundColor(c surface.Color) { t.background = c }
func (t *Text) SetFont(f surface.Font)             { t.font = f }

// ScrollOffset returns the index of the first visible line.
func (t *Text) ScrollOffset() int { return t.scroll }

// MaxScrollOffset returns the largest valid scroll offset for the last
// known height.
func (t *Text) MaxScrollOffset() int { return t.maxScroll }

// SetScrollOffset moves the view, clamped to [0, MaxScrollOffset].
func (t *Text) SetScrollOffset(offset int) {
	t.scroll = max(0, min(t.maxScroll, offset))
}

// Resize records the extent and recomputes the scroll range.
func (t *Text) Resize(size surface.Size) {
	t.bounds.Resize(size)
	t.updateScroll()
}

func (t *Text) visibleLines() int {
	n := (t.size.Height - 2*textPadding) / textLineHeight
	return max(0, n)
}

func (t *Text) updateScroll() {
	t.maxScroll = max(0, len(t.lines)-t.visibleLines())
	t.SetScrollOffset(t.scroll)
}

func (t *Text) Draw(s surface.Surface, r surface.Rect) {
	t.Resize(surface.Size{Width: r.Width, Height: r.Height})

	s.DrawRect(r.X, r.Y, r.Width, r.Height, t.background)

	visible := t.visibleLines()
	for i := 0; i < visible; i++ {
		idx := t.scroll + i
		if idx >= len(t.lines) {
			break
		}
		s.DrawText(t.lines[idx], r.X+textPadding, r.Y+textPadding+(i+1)*textLineHeight, t.color, t.font)
	}

	if t.maxScroll > 0 {
		handle := min(r.Height, max(minScrollbarHandle, r.Height*visible/len(t.lines)))
		offset := (r.Height - handle) * t.scroll / t.maxScroll
		s.DrawRect(r.X+r.Width-scrollbarWidth-2, r.Y, scrollbarWidth+2, r.Height, scrollTrackColor)
		s.DrawRect(r.X+r.Width-scrollbarWidth, r.Y+offset, scrollbarWidth-2, handle, scrollHandleColor)
	}
}

func (t *Text) HandleEvent(e event.Event) bool {
	if e.Type == event.MouseWheel && e.Wheel != nil && e.Wheel.Delta != 0 {
		t.SetScrollOffset(t.scroll + e.Wheel.Delta)
		return true
	}
	return false
}

func (t *Text) MinSize() surface.Size {
	return surface.Size{Width: 100, Height: textLineHeight + 2*textPadding}
}

func (t *Text) PreferredSize() surface.Size {
	return surface.Size{Width: 300, Height: 200}
}
