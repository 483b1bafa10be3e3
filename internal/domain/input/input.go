package input

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
)

// Button numbers follow the DOM convention.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2

	maxButtons = 8
)

type (
	MoveHandler   func(x, y int)
	ButtonHandler func(x, y, button int)
	WheelHandler  func(delta int)
	KeyHandler    func(key string)
)

// Source is the raw input stream consumed by the window manager and by
// applets that track the pointer.
type Source interface {
	OnPointerMove(h MoveHandler) event.Token
	OnPointerDown(h ButtonHandler) event.Token
	OnPointerUp(h ButtonHandler) event.Token
	OnWheel(h WheelHandler) event.Token
	OnKey(h KeyHandler) event.Token
	Unsubscribe(tok event.Token) bool

	Position() (x, y int)
	ButtonPressed(button int) bool
}

// Sink is the side drivers feed. Calls must come from the desktop's loop
// goroutine.
type Sink interface {
	Move(x, y int)
	Down(x, y, button int)
	Up(x, y, button int)
	Wheel(delta int)
	Key(key string)
}

// Bus is an in-memory Source and Sink. Drivers (terminal, websocket, tests)
// push raw events into it and it fans them out to subscribers in
// registration order.
type Bus struct {
	x, y    int
	buttons [maxButtons]bool

	move  *event.Registry[MoveHandler]
	down  *event.Registry[ButtonHandler]
	up    *event.Registry[ButtonHandler]
	wheel *event.Registry[WheelHandler]
	key   *event.Registry[KeyHandler]
}

// NewBus returns a bus with the pointer at the origin and no buttons held.
func NewBus() *Bus {
	seq := &id.Sequence{}
	return &Bus{
		move:  event.NewRegistry[MoveHandler](seq),
		down:  event.NewRegistry[ButtonHandler](seq),
		up:    event.NewRegistry[ButtonHandler](seq),
		wheel: event.NewRegistry[WheelHandler](seq),
		key:   event.NewRegistry[KeyHandler](seq),
	}
}

func (b *Bus) OnPointerMove(h MoveHandler) event.Token   { return b.move.Add(h) }
func (b *Bus) OnPointerDown(h ButtonHandler) event.Token { return b.down.Add(h) }
func (b *Bus) OnPointerUp(h ButtonHandler) event.Token   { return b.up.Add(h) }
func (b *Bus) OnWheel(h WheelHandler) event.Token        { return b.wheel.Add(h) }
func (b *Bus) OnKey(h KeyHandler) event.Token            { return b.key.Add(h) }

// Unsubscribe removes a handler from whichever stream it was registered on.
func (b *Bus) Unsubscribe(tok event.Token) bool {
	return b.move.Remove(tok) ||
		b.down.Remove(tok) ||
		b.up.Remove(tok) ||
		b.wheel.Remove(tok) ||
		b.key.Remove(tok)
}

// Position returns the last known pointer position.
func (b *Bus) Position() (x, y int) {
	return b.x, b.y
}

// ButtonPressed reports whether button is currently held.
func (b *Bus) ButtonPressed(button int) bool {
	if button < 0 || button >= maxButtons {
		return false
	}
	return b.buttons[button]
}

// Move records the pointer position and notifies move subscribers.
func (b *Bus) Move(x, y int) {
	b.x, b.y = x, y
	for _, h := range b.move.Snapshot() {
		h(x, y)
	}
}

// Down presses button at (x, y).
func (b *Bus) Down(x, y, button int) {
	b.x, b.y = x, y
	b.setButton(button, true)
	for _, h := range b.down.Snapshot() {
		h(x, y, button)
	}
}

// Up releases button at (x, y).
func (b *Bus) Up(x, y, button int) {
	b.x, b.y = x, y
	b.setButton(button, false)
	for _, h := range b.up.Snapshot() {
		h(x, y, button)
	}
}

// Wheel forwards a signed scroll step.
func (b *Bus) Wheel(delta int) {
	for _, h := range b.wheel.Snapshot() {
		h(delta)
	}
}

// Key forwards a key token.
func (b *Bus) Key(key string) {
	for _, h := range b.key.Snapshot() {
		h(key)
	}
}

func (b *Bus) setButton(button int, pressed bool) {
	if button >= 0 && button < maxButtons {
		b.buttons[button] = pressed
	}
}

// Sign collapses a raw scroll amount to -1, 0 or 1.
func Sign(delta float64) int {
	switch {
	case delta > 0:
		return 1
	case delta < 0:
		return -1
	}
	return 0
}
