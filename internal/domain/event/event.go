package event

import (
	"fmt"
	"time"
)

// Type names a window/widget event.
type Type string

const (
	Tick       Type = "tick"
	KeyPress   Type = "keypress"
	MouseDown  Type = "mousedown"
	MouseUp    Type = "mouseup"
	MouseMove  Type = "mousemove"
	MouseWheel Type = "mousewheel"
)

// Types lists every event type in a stable order.
var Types = []Type{Tick, KeyPress, MouseDown, MouseUp, MouseMove, MouseWheel}

// NoButton marks a pointer event that carries no pressed button.
const NoButton = -1

// Valid reports whether t is one of the known event types.
func (t Type) Valid() bool {
	switch t {
	case Tick, KeyPress, MouseDown, MouseUp, MouseMove, MouseWheel:
		return true
	}
	return false
}

// ParseType converts a wire name into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown event type %q", s)
	}
	return t, nil
}

// PointerData is the payload of mousedown, mouseup and mousemove. X and Y
// are in the receiver's local coordinate space.
type PointerData struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Button int `json:"button"`
}

// KeyData is the payload of keypress. Key follows DOM key naming:
// printable characters are single runes; named keys are "Backspace",
// "ArrowLeft", "Enter" and so on.
type KeyData struct {
	Key string `json:"key"`
}

// WheelData is the payload of mousewheel. Delta is a signed step count.
type WheelData struct {
	Delta int `json:"delta"`
}

// TickData is the payload of tick.
type TickData struct {
	Now     time.Time     `json:"now"`
	Elapsed time.Duration `json:"elapsed"`
}

// Event is a tagged record: Type selects which payload is set.
type Event struct {
	Type    Type         `json:"type"`
	Pointer *PointerData `json:"pointer,omitempty"`
	Key     *KeyData     `json:"key,omitempty"`
	Wheel   *WheelData   `json:"wheel,omitempty"`
	Tick    *TickData    `json:"tick,omitempty"`
}

// NewPointer builds a positional event.
func NewPointer(t Type, x, y, button int) Event {
	return Event{Type: t, Pointer: &PointerData{X: x, Y: y, Button: button}}
}

// NewKey builds a keypress event.
func NewKey(key string) Event {
	return Event{Type: KeyPress, Key: &KeyData{Key: key}}
}

// NewWheel builds a mousewheel event.
func NewWheel(delta int) Event {
	return Event{Type: MouseWheel, Wheel: &WheelData{Delta: delta}}
}

// NewTick builds a tick event.
func NewTick(now time.Time, elapsed time.Duration) Event {
	return Event{Type: Tick, Tick: &TickData{Now: now, Elapsed: elapsed}}
}

// Position returns the pointer coordinates when the event is positional.
func (e Event) Position() (x, y int, ok bool) {
	if e.Pointer == nil {
		return 0, 0, false
	}
	return e.Pointer.X, e.Pointer.Y, true
}

// Positional reports whether the event carries pointer coordinates.
func (e Event) Positional() bool {
	return e.Pointer != nil
}

// Translated returns a copy of e with its pointer shifted by (-dx, -dy),
// i.e. expressed relative to an origin at (dx, dy). Non-positional events
// are returned unchanged.
func (e Event) Translated(dx, dy int) Event {
	if e.Pointer == nil {
		return e
	}
	p := *e.Pointer
	p.X -= dx
	p.Y -= dy
	e.Pointer = &p
	return e
}
