package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
)

// Poster runs fn on the desktop loop.
type Poster func(fn func()) error

// Driver turns tcell key and mouse events into raw desktop input.
// Terminal cells are mapped to the logical pixel at the cell centre.
type Driver struct {
	screen       tcell.Screen
	sink         input.Sink
	post         Poster
	cellW, cellH int
	logger       *zap.Logger
	onQuit       func()
	onResize     func()

	buttons tcell.ButtonMask
	x, y    int
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithQuit sets the callback for Ctrl+C.
func WithQuit(fn func()) Option {
	return func(d *Driver) { d.onQuit = fn }
}

// WithResize sets a callback run on the loop after the terminal is resized.
func WithResize(fn func()) Option {
	return func(d *Driver) { d.onResize = fn }
}

// New creates a driver reading from screen and writing to sink through post.
func New(screen tcell.Screen, sink input.Sink, post Poster, cellW, cellH int, opts ...Option) *Driver {
	d := &Driver{
		screen: screen,
		sink:   sink,
		post:   post,
		cellW:  cellW,
		cellH:  cellH,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.Named("TerminalInput")
	return d
}

// Run polls the screen until it is finalised or ctx ends.
func (d *Driver) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ev := d.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := d.Handle(ev); err != nil {
			return fmt.Errorf("deliver terminal input: %w", err)
		}
	}
}

// Handle translates one tcell event.
func (d *Driver) Handle(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return d.handleKey(e)
	case *tcell.EventMouse:
		return d.handleMouse(e)
	case *tcell.EventResize:
		d.screen.Sync()
		if d.onResize != nil {
			return d.post(d.onResize)
		}
	}
	return nil
}

func (d *Driver) handleKey(e *tcell.EventKey) error {
	if e.Key() == tcell.KeyCtrlC {
		if d.onQuit != nil {
			d.onQuit()
		}
		return nil
	}
	key, ok := KeyName(e)
	if !ok {
		d.logger.Debug("Dropping unmapped key", zap.String("key", e.Name()))
		return nil
	}
	return d.post(func() { d.sink.Key(key) })
}

var buttonMap = []struct {
	mask   tcell.ButtonMask
	button int
}{
	{tcell.Button1, input.ButtonLeft},
	{tcell.Button2, input.ButtonRight},
	{tcell.Button3, input.ButtonMiddle},
}

func (d *Driver) handleMouse(e *tcell.EventMouse) error {
	col, row := e.Position()
	x, y := col*d.cellW+d.cellW/2, row*d.cellH+d.cellH/2
	buttons := e.Buttons()
	prev := d.buttons
	moved := x != d.x || y != d.y
	d.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	d.x, d.y = x, y

	return d.post(func() {
		if moved {
			d.sink.Move(x, y)
		}
		for _, b := range buttonMap {
			was, is := prev&b.mask != 0, buttons&b.mask != 0
			switch {
			case is && !was:
				d.sink.Down(x, y, b.button)
			case was && !is:
				d.sink.Up(x, y, b.button)
			}
		}
		switch {
		case buttons&tcell.WheelUp != 0:
			d.sink.Wheel(-1)
		case buttons&tcell.WheelDown != 0:
			d.sink.Wheel(1)
		}
	})
}

var namedKeys = map[tcell.Key]string{
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyInsert:     "Insert",
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyEscape:     "Escape",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// KeyName returns the DOM key name for a tcell key event.
func KeyName(e *tcell.EventKey) (string, bool) {
	if e.Key() == tcell.KeyRune {
		return string(e.Rune()), true
	}
	name, ok := namedKeys[e.Key()]
	return name, ok
}
