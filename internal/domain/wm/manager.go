package wm

import (
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
)

// ID identifies a window. IDs start at 1 and are never reused.
type ID int

// Metrics receives window manager events.
type Metrics interface {
	WindowCreated(active int)
	WindowDestroyed(active int)
	FocusChanged()
	EventDispatched(eventType string)
	ListenerFault(eventType string)
}

type nopMetrics struct{}

func (nopMetrics) WindowCreated(int)      {}
func (nopMetrics) WindowDestroyed(int)    {}
func (nopMetrics) FocusChanged()          {}
func (nopMetrics) EventDispatched(string) {}
func (nopMetrics) ListenerFault(string)   {}

// Manager owns the windows, their z-order and keyboard focus, and routes
// raw input to them. It is not safe for concurrent use; run it on the
// desktop loop.
type Manager struct {
	surface surface.Surface
	source  input.Source
	logger  *zap.Logger
	metrics Metrics

	// z-order, bottom first
	windows []*Window
	byID    map[ID]*Window
	nextID  ID
	focused ID
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(metrics Metrics) Option {
	return func(m *Manager) {
		if metrics != nil {
			m.metrics = metrics
		}
	}
}

// NewManager creates a manager that paints onto s and subscribes once to
// each stream of src.
func NewManager(s surface.Surface, src input.Source, opts ...Option) *Manager {
	m := &Manager{
		surface: s,
		source:  src,
		logger:  zap.NewNop(),
		metrics: nopMetrics{},
		byID:    make(map[ID]*Window),
		nextID:  1,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("WindowManager")

	if src != nil {
		src.OnPointerMove(m.handlePointerMove)
		src.OnPointerDown(m.handlePointerDown)
		src.OnPointerUp(m.handlePointerUp)
		src.OnWheel(m.handleWheel)
		src.OnKey(m.handleKey)
	}
	return m
}

// CreateWindow adds a window on top of the stack and focuses it.
func (m *Manager) CreateWindow(title string, x, y, width, height int) (ID, *Window) {
	windowID := m.nextID
	m.nextID++

	w := newWindow(windowID, m, title, x, y, width, height)
	m.windows = append(m.windows, w)
	m.byID[windowID] = w
	m.FocusWindow(windowID)

	m.metrics.WindowCreated(len(m.windows))
	m.logger.Info("Created window",
		zap.Int("window_id", int(windowID)),
		zap.String("title", title))
	return windowID, w
}

// DestroyWindow removes a window. Focus is cleared, not passed on, when the
// focused window goes away.
func (m *Manager) DestroyWindow(windowID ID) bool {
	w, ok := m.byID[windowID]
	if !ok {
		return false
	}
	if m.focused == windowID {
		m.clearFocus()
	}
	delete(m.byID, windowID)
	m.windows = removeWindow(m.windows, w)

	m.metrics.WindowDestroyed(len(m.windows))
	m.logger.Info("Destroyed window", zap.Int("window_id", int(windowID)))
	return true
}

// FocusWindow raises the window to the top and focuses it.
func (m *Manager) FocusWindow(windowID ID) bool {
	w, ok := m.byID[windowID]
	if !ok {
		return false
	}
	if m.focused == windowID {
		return true
	}
	m.windows = append(removeWindow(m.windows, w), w)
	m.focused = windowID
	m.metrics.FocusChanged()
	m.logger.Debug("Focused window", zap.Int("window_id", int(windowID)))
	return true
}

func (m *Manager) clearFocus() {
	if m.focused != 0 {
		m.focused = 0
		m.metrics.FocusChanged()
	}
}

// Window looks a window up by id.
func (m *Manager) Window(windowID ID) (*Window, bool) {
	w, ok := m.byID[windowID]
	return w, ok
}

// WindowExists reports whether the id names a live window.
func (m *Manager) WindowExists(windowID ID) bool {
	_, ok := m.byID[windowID]
	return ok
}

// Windows returns the live windows bottom to top.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, len(m.windows))
	copy(out, m.windows)
	return out
}

// Len returns the number of live windows.
func (m *Manager) Len() int { return len(m.windows) }

// FocusedWindowID returns the focused window, if any.
func (m *Manager) FocusedWindowID() (ID, bool) {
	return m.focused, m.focused != 0
}

// RedrawAll paints every window bottom to top.
func (m *Manager) RedrawAll() {
	for _, w := range m.Windows() {
		w.Draw(m.surface)
	}
}

// Tick sends a tick event to every window.
func (m *Manager) Tick(now time.Time, elapsed time.Duration) {
	e := event.NewTick(now, elapsed)
	for _, w := range m.Windows() {
		w.DispatchEvent(e)
	}
}

func (m *Manager) pointerButton() int {
	if m.source != nil && m.source.ButtonPressed(input.ButtonLeft) {
		return input.ButtonLeft
	}
	return event.NoButton
}

func (m *Manager) handlePointerMove(x, y int) {
	button := m.pointerButton()
	for _, w := range m.Windows() {
		if w.dragging {
			w.SetPosition(x-w.dragX, y-w.dragY)
		}
		e := event.NewPointer(event.MouseMove, x-w.x, y-w.y, button)
		if w.visible && w.ContainsPoint(x, y) {
			w.DispatchEvent(e)
		} else {
			w.forwardToContent(e)
		}
	}
}

func (m *Manager) handlePointerDown(x, y, button int) {
	if button != input.ButtonLeft {
		return
	}
	stack := m.Windows()
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		if !w.visible || !w.ContainsPoint(x, y) {
			continue
		}
		if w.PointInCloseButton(x, y) {
			m.DestroyWindow(w.id)
			return
		}

		w.DispatchEvent(event.NewPointer(event.MouseDown, x-w.x, y-w.y, button))
		if w.PointInTitleBar(x, y) {
			w.SetDragging(true, x-w.x, y-w.y)
			m.FocusWindow(w.id)
		}
		return
	}
}

func (m *Manager) handlePointerUp(x, y, button int) {
	for _, w := range m.Windows() {
		w.SetDragging(false)
		e := event.NewPointer(event.MouseUp, x-w.x, y-w.y, button)
		if w.visible && w.ContainsPoint(x, y) {
			w.DispatchEvent(e)
		} else {
			w.forwardToContent(e)
		}
	}
}

func (m *Manager) handleWheel(delta int) {
	if w, ok := m.focusedWindow(); ok {
		w.DispatchEvent(event.NewWheel(delta))
	}
}

func (m *Manager) handleKey(key string) {
	if w, ok := m.focusedWindow(); ok {
		w.DispatchEvent(event.NewKey(key))
	}
}

func (m *Manager) focusedWindow() (*Window, bool) {
	if m.focused == 0 {
		return nil, false
	}
	return m.Window(m.focused)
}

func removeWindow(stack []*Window, w *Window) []*Window {
	for i, cur := range stack {
		if cur == w {
			return append(stack[:i], stack[i+1:]...)
		}
	}
	return stack
}
