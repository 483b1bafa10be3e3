package widget

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

// Orientation is the axis a Layout partitions along.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

type item struct {
	widget Widget
	flex   int
	rect   surface.Rect // relative to the layout origin
}

// Layout splits its rectangle among its children along one axis in
// proportion to their flex weights, and routes input to the child under
// the pointer.
type Layout struct {
	orientation Orientation
	padding     int
	items       []item
	size        surface.Size

	// children that must see the end of a gesture they started
	hover   Widget
	capture Widget
}

// NewLayout returns an empty layout.
func NewLayout(o Orientation) *Layout {
	return &Layout{orientation: o}
}

// Orientation returns the layout axis.
func (l *Layout) Orientation() Orientation { return l.orientation }

// Add appends w with flex weight 1.
func (l *Layout) Add(w Widget) {
	l.AddWidget(w, 1)
}

// AddWidget appends w with the given flex weight. Negative weights count
// as zero.
func (l *Layout) AddWidget(w Widget, flex int) {
	if flex < 0 {
		flex = 0
	}
	l.items = append(l.items, item{widget: w, flex: flex})
	l.arrange()
}

// RemoveWidget removes the first occurrence of w.
func (l *Layout) RemoveWidget(w Widget) bool {
	for i, it := range l.items {
		if it.widget == w {
			l.items = append(l.items[:i], l.items[i+1:]...)
			if l.hover == w {
				l.hover = nil
			}
			if l.capture == w {
				l.capture = nil
			}
			l.arrange()
			return true
		}
	}
	return false
}

// SetPadding sets the gap between adjacent children.
func (l *Layout) SetPadding(px int) {
	if px < 0 {
		px = 0
	}
	l.padding = px
	l.arrange()
}

// Padding returns the gap between adjacent children.
func (l *Layout) Padding() int { return l.padding }

// Children returns the child widgets in order.
func (l *Layout) Children() []Widget {
	out := make([]Widget, len(l.items))
	for i, it := range l.items {
		out[i] = it.widget
	}
	return out
}

// Len returns the number of children.
func (l *Layout) Len() int { return len(l.items) }

// ChildRects returns each child's rectangle relative to the layout origin,
// as of the last Resize or Draw.
func (l *Layout) ChildRects() []surface.Rect {
	out := make([]surface.Rect, len(l.items))
	for i, it := range l.items {
		out[i] = it.rect
	}
	return out
}

// Resize partitions size among the children.
func (l *Layout) Resize(size surface.Size) {
	l.size = size
	l.arrange()
}

func (l *Layout) arrange() {
	total := 0
	for _, it := range l.items {
		total += it.flex
	}
	if len(l.items) == 0 || total == 0 {
		for i := range l.items {
			l.items[i].rect = surface.Rect{}
		}
		return
	}

	primary, cross := l.size.Height, l.size.Width
	if l.orientation == Horizontal {
		primary, cross = l.size.Width, l.size.Height
	}
	available := primary - l.padding*(len(l.items)-1)
	if available < 0 {
		available = 0
	}
	if cross < 0 {
		cross = 0
	}

	pos := 0
	for i := range l.items {
		it := &l.items[i]
		extent := available * it.flex / total
		if l.orientation == Horizontal {
			it.rect = surface.Rect{X: pos, Y: 0, Width: extent, Height: cross}
		} else {
			it.rect = surface.Rect{X: 0, Y: pos, Width: cross, Height: extent}
		}
		pos += extent + l.padding

		if r, ok := it.widget.(Resizer); ok {
			r.Resize(surface.Size{Width: it.rect.Width, Height: it.rect.Height})
		}
	}
}

// Draw lays the children out inside r and paints them in order.
func (l *Layout) Draw(s surface.Surface, r surface.Rect) {
	l.Resize(surface.Size{Width: r.Width, Height: r.Height})
	if len(l.items) == 0 {
		return
	}
	for _, it := range l.items {
		if it.rect.Empty() {
			continue
		}
		child := it.rect
		child.X += r.X
		child.Y += r.Y
		it.widget.Draw(s, child)
	}
}

// HandleEvent routes positional events to the child under the pointer,
// translated into that child's coordinates. Non-positional events are
// offered to each child in turn until one consumes them.
func (l *Layout) HandleEvent(e event.Event) bool {
	x, y, ok := e.Position()
	if !ok {
		for _, it := range l.items {
			if it.widget.HandleEvent(e) {
				return true
			}
		}
		return false
	}

	hit := l.childAt(x, y)

	switch e.Type {
	case event.MouseMove:
		if l.hover != nil && (hit == nil || l.hover != hit.widget) {
			l.forward(l.hover, e)
		}
		l.hover = nil
		if hit != nil {
			l.hover = hit.widget
		}
	case event.MouseDown:
		l.capture = nil
		if hit != nil {
			l.capture = hit.widget
			l.blurSiblings(hit.widget)
		}
	case event.MouseUp:
		captured := l.capture
		l.capture = nil
		if captured != nil && (hit == nil || captured != hit.widget) {
			l.forward(captured, e)
		}
	}

	if hit == nil {
		return false
	}
	return hit.widget.HandleEvent(e.Translated(hit.rect.X, hit.rect.Y))
}

// Engaged reports whether a child, at any depth, holds hover or a press
// and still needs to see the move or release that ends it.
func (l *Layout) Engaged() bool {
	return l.hover != nil || l.capture != nil
}

// forward delivers e to w in w's coordinates even when the pointer is
// outside it, so it can drop hover or pressed state.
func (l *Layout) forward(w Widget, e event.Event) {
	for _, it := range l.items {
		if it.widget == w {
			w.HandleEvent(e.Translated(it.rect.X, it.rect.Y))
			return
		}
	}
}

func (l *Layout) childAt(x, y int) *item {
	for i := range l.items {
		if l.items[i].rect.Contains(x, y) {
			return &l.items[i]
		}
	}
	return nil
}

func (l *Layout) blurSiblings(target Widget) {
	for _, it := range l.items {
		if it.widget == target {
			continue
		}
		if f, ok := it.widget.(Focusable); ok && f.Focused() {
			f.SetFocused(false)
		}
		if nested, ok := it.widget.(*Layout); ok {
			nested.blurSiblings(nil)
		}
	}
}

// MinSize sums child minimums along the layout axis and takes the largest
// across it.
func (l *Layout) MinSize() surface.Size {
	return l.measure(Widget.MinSize)
}

// PreferredSize is MinSize for preferred extents.
func (l *Layout) PreferredSize() surface.Size {
	return l.measure(Widget.PreferredSize)
}

func (l *Layout) measure(size func(Widget) surface.Size) surface.Size {
	var out surface.Size
	for i, it := range l.items {
		s := size(it.widget)
		gap := 0
		if i > 0 {
			gap = l.padding
		}
		if l.orientation == Horizontal {
			out.Width += s.Width + gap
			out.Height = max(out.Height, s.Height)
		} else {
			out.Height += s.Height + gap
			out.Width = max(out.Width, s.Width)
		}
	}
	return out
}
