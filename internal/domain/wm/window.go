package wm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/widget"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
)

// Window chrome geometry. Drawing and hit-testing both use these.
const (
	TitleBarHeight   = 20
	CloseButtonSize  = 16
	CloseButtonInset = 2
)

var (
	frameColor          = surface.MustHex("#DDDDDD")
	titleFocusedColor   = surface.MustHex("#3355AA")
	titleUnfocusedColor = surface.MustHex("#555555")
	titleTextColor      = surface.MustHex("#FFFFFF")
	closeButtonColor    = surface.MustHex("#FF3333")
	contentColor        = surface.MustHex("#FFFFFF")
)

// Listener handles one window event. A returned error is logged; it does
// not stop the remaining listeners.
type Listener func(e event.Event) error

// Window is a movable, titled rectangle hosting one root widget.
type Window struct {
	id      ID
	manager *Manager
	logger  *zap.Logger

	title               string
	x, y, width, height int
	visible             bool

	dragging     bool
	dragX, dragY int

	content widget.Widget
	root    *widget.Layout

	seq       id.Sequence
	listeners map[event.Type]*event.Registry[Listener]
}

func newWindow(windowID ID, m *Manager, title string, x, y, w, h int) *Window {
	win := &Window{
		id:        windowID,
		manager:   m,
		logger:    m.logger.Named("Window").With(zap.Int("window_id", int(windowID))),
		title:     title,
		x:         x,
		y:         y,
		width:     w,
		height:    h,
		visible:   true,
		root:      widget.NewLayout(widget.Vertical),
		listeners: make(map[event.Type]*event.Registry[Listener], len(event.Types)),
	}
	for _, t := range event.Types {
		win.listeners[t] = event.NewRegistry[Listener](&win.seq)
	}
	return win
}

func (w *Window) ID() ID            { return w.id }
func (w *Window) Title() string     { return w.title }
func (w *Window) Visible() bool     { return w.visible }
func (w *Window) Dragging() bool    { return w.dragging }
func (w *Window) SetTitle(t string) { w.title = t }

// SetVisible shows or hides the window. Hidden windows are not drawn and
// receive no pointer input.
func (w *Window) SetVisible(v bool) { w.visible = v }

// Position returns the window's top-left corner in screen coordinates.
func (w *Window) Position() (x, y int) { return w.x, w.y }

// Size returns the outer window size including the title bar.
func (w *Window) Size() (width, height int) { return w.width, w.height }

// Bounds returns the outer window rectangle.
func (w *Window) Bounds() surface.Rect {
	return surface.Rect{X: w.x, Y: w.y, Width: w.width, Height: w.height}
}

// ContentRect returns the area below the title bar.
func (w *Window) ContentRect() surface.Rect {
	return surface.Rect{X: w.x, Y: w.y + TitleBarHeight, Width: w.width, Height: max(0, w.height-TitleBarHeight)}
}

func (w *Window) SetPosition(x, y int) {
	w.x, w.y = x, y
}

func (w *Window) SetSize(width, height int) {
	w.width, w.height = width, height
	w.layout()
}

// SetDragging sets the drag flag. The grab offset is updated only when
// both offset values are given.
func (w *Window) SetDragging(dragging bool, offset ...int) {
	w.dragging = dragging
	if len(offset) >= 2 {
		w.dragX, w.dragY = offset[0], offset[1]
	}
}

// DragOffset returns the grab point relative to the window origin.
func (w *Window) DragOffset() (x, y int) { return w.dragX, w.dragY }

// IsFocused asks the manager; the window keeps no focus flag of its own.
func (w *Window) IsFocused() bool {
	focused, ok := w.manager.FocusedWindowID()
	return ok && focused == w.id
}

// Focus raises and focuses the window.
func (w *Window) Focus() {
	if !w.IsFocused() {
		w.manager.FocusWindow(w.id)
	}
}

// Unfocus clears focus if this window holds it. Z-order is unchanged.
func (w *Window) Unfocus() {
	if w.IsFocused() {
		w.manager.clearFocus()
	}
}

// SetContentWidget replaces the root widget. It is wrapped in a fresh
// single-child layout sized to the content area.
func (w *Window) SetContentWidget(c widget.Widget) {
	w.content = c
	w.root = widget.NewLayout(widget.Vertical)
	if c != nil {
		w.root.Add(c)
	}
	w.layout()
}

// ContentWidget returns the root widget, or nil.
func (w *Window) ContentWidget() widget.Widget { return w.content }

func (w *Window) layout() {
	r := w.ContentRect()
	w.root.Resize(surface.Size{Width: r.Width, Height: r.Height})
}

// OnEvent registers a listener for t. Listeners of one type run in
// registration order.
func (w *Window) OnEvent(t event.Type, l Listener) event.Token {
	reg, ok := w.listeners[t]
	if !ok {
		w.logger.Warn("Ignoring listener for unknown event type", zap.String("type", string(t)))
		return 0
	}
	return reg.Add(l)
}

// RemoveEventListener unregisters the listener behind tok.
func (w *Window) RemoveEventListener(tok event.Token) bool {
	for _, reg := range w.listeners {
		if reg.Remove(tok) {
			return true
		}
	}
	return false
}

// ListenerCount returns how many listeners are registered for t.
func (w *Window) ListenerCount(t event.Type) int {
	if reg, ok := w.listeners[t]; ok {
		return reg.Len()
	}
	return 0
}

// DispatchEvent runs the listeners for e.Type, then forwards the event to
// the content widget. Pointer coordinates in e are window-local; the
// content widget receives them relative to the content area. Keys, wheel
// steps and ticks are offered to the content widget as they are.
func (w *Window) DispatchEvent(e event.Event) {
	w.manager.metrics.EventDispatched(string(e.Type))

	if reg, ok := w.listeners[e.Type]; ok {
		for _, l := range reg.Snapshot() {
			w.invoke(l, e)
		}
	}
	w.forwardToContent(e)
}

// forwardToContent hands e to the content layout. A positional event is
// forwarded when its point is in the content area, or when it is a move or
// release and a child still holds hover or a press, so the child can end
// its gesture wherever the pointer went.
func (w *Window) forwardToContent(e event.Event) {
	if w.content == nil {
		return
	}
	x, y, ok := e.Position()
	if !ok {
		w.root.HandleEvent(e)
		return
	}
	inside := w.PointInContentArea(w.x+x, w.y+y)
	ending := (e.Type == event.MouseMove || e.Type == event.MouseUp) && w.root.Engaged()
	if inside || ending {
		w.root.HandleEvent(e.Translated(0, TitleBarHeight))
	}
}

func (w *Window) invoke(l Listener, e event.Event) {
	defer func() {
		if r := recover(); r != nil {
			w.fault(e, fmt.Errorf("listener panic: %v", r))
		}
	}()
	if err := l(e); err != nil {
		w.fault(e, err)
	}
}

func (w *Window) fault(e event.Event, err error) {
	w.manager.metrics.ListenerFault(string(e.Type))
	w.logger.Error("Window listener failed",
		zap.String("event", string(e.Type)),
		zap.Error(err))
}

// Draw paints the chrome and content. Hidden windows draw nothing.
func (w *Window) Draw(s surface.Surface) {
	if !w.visible {
		return
	}

	s.DrawRect(w.x, w.y, w.width, w.height, frameColor)

	bar := titleUnfocusedColor
	if w.IsFocused() {
		bar = titleFocusedColor
	}
	s.DrawRect(w.x, w.y, w.width, TitleBarHeight, bar)
	s.DrawText(w.title, w.x+5, w.y+15, titleTextColor, surface.DefaultFont)

	cb := w.closeButton()
	s.DrawRect(cb.X, cb.Y, cb.Width, cb.Height, closeButtonColor)
	s.DrawText("X", cb.X+5, w.y+15, titleTextColor, surface.DefaultFont)

	content := w.ContentRect()
	s.DrawRect(content.X, content.Y, content.Width, content.Height, contentColor)
	if w.content != nil {
		w.root.Draw(s, content)
	}
}

func (w *Window) closeButton() surface.Rect {
	return surface.Rect{
		X:      w.x + w.width - CloseButtonSize - CloseButtonInset,
		Y:      w.y + CloseButtonInset,
		Width:  CloseButtonSize,
		Height: CloseButtonSize,
	}
}

// ContainsPoint reports whether the screen point is inside the window.
func (w *Window) ContainsPoint(x, y int) bool {
	return w.Bounds().Contains(x, y)
}

// PointInTitleBar reports whether the screen point is on the title bar.
func (w *Window) PointInTitleBar(x, y int) bool {
	bar := surface.Rect{X: w.x, Y: w.y, Width: w.width, Height: TitleBarHeight}
	return bar.Contains(x, y)
}

// PointInCloseButton reports whether the screen point is on the close box.
func (w *Window) PointInCloseButton(x, y int) bool {
	return w.closeButton().Contains(x, y)
}

// PointInContentArea reports whether the screen point is below the title
// bar and inside the window.
func (w *Window) PointInContentArea(x, y int) bool {
	return w.ContentRect().Contains(x, y)
}
