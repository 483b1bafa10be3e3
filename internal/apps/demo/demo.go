package demo

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/event"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/widget"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/wm"
)

// Window sizes.
const (
	DummyWidth  = 500
	DummyHeight = 400
	AboutWidth  = 360
	AboutHeight = 120
)

const greeting = "Hello, world!"

// Dummy is the sample window: a vertical stack of every widget kind.
type Dummy struct {
	ID     wm.ID
	Window *wm.Window

	Text     *widget.Text
	Button   *widget.Button
	Input    *widget.TextInput
	Checkbox *widget.Checkbox

	clicks int
	keys   int
}

// Option configures a demo window.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	message *desktop.MessageBox
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMessageBox lets the Dummy button open a dialog.
func WithMessageBox(m *desktop.MessageBox) Option {
	return func(o *options) { o.message = m }
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewDummy opens the Dummy window at (x, y). Must run on the loop goroutine.
func NewDummy(m *wm.Manager, x, y int, opts ...Option) *Dummy {
	o := buildOptions(opts)
	logger := o.logger.Named("Dummy")

	d := &Dummy{}
	d.ID, d.Window = m.CreateWindow("Dummy", x, y, DummyWidth, DummyHeight)

	d.Text = widget.NewText(greeting)
	d.Button = widget.NewButton("Button", func() {
		d.clicks++
		d.refresh()
		if o.message != nil {
			o.message.Show("Dummy", fmt.Sprintf("Button clicked %d time(s)", d.clicks))
		}
	})
	d.Input = widget.NewTextInput("Input", func(text string) {
		d.refresh()
	})
	d.Checkbox = widget.NewCheckbox("Checkbox", func(checked bool) {
		logger.Debug("Checkbox toggled", zap.Bool("checked", checked))
		d.refresh()
	})

	root := widget.NewLayout(widget.Vertical)
	root.AddWidget(d.Text, 3)
	root.Add(d.Button)
	root.Add(d.Input)
	root.Add(d.Checkbox)
	d.Window.SetContentWidget(root)

	d.Window.OnEvent(event.KeyPress, func(e event.Event) error {
		d.keys++
		return nil
	})

	logger.Info("Opened", zap.Int("window_id", int(d.ID)))
	return d
}

// Clicks returns how many times the button fired.
func (d *Dummy) Clicks() int { return d.clicks }

// Keys returns how many key presses reached the window.
func (d *Dummy) Keys() int { return d.keys }

func (d *Dummy) refresh() {
	text := greeting
	if d.clicks > 0 {
		text += fmt.Sprintf("\nButton clicks: %d", d.clicks)
	}
	if v := d.Input.Text(); v != "" {
		text += "\nInput: " + v
	}
	if d.Checkbox.Checked() {
		text += "\nCheckbox is checked"
	}
	d.Text.SetText(text)
}

// About is a small horizontal window with a description and a close button.
type About struct {
	ID     wm.ID
	Window *wm.Window
	Text   *widget.Text
	Close  *widget.Button
}

// NewAbout opens the About window at (x, y). Must run on the loop goroutine.
func NewAbout(m *wm.Manager, x, y int, opts ...Option) *About {
	o := buildOptions(opts)

	a := &About{}
	a.ID, a.Window = m.CreateWindow("About", x, y, AboutWidth, AboutHeight)
	a.Text = widget.NewText("Simulated desktop\nDrag title bars to move")
	a.Close = widget.NewButton("Close", func() {
		m.DestroyWindow(a.ID)
	})

	root := widget.NewLayout(widget.Horizontal)
	root.AddWidget(a.Text, 2)
	root.Add(a.Close)
	a.Window.SetContentWidget(root)

	o.logger.Named("About").Info("Opened", zap.Int("window_id", int(a.ID)))
	return a
}

// Apps groups the windows Launch opens.
type Apps struct {
	Dummy *Dummy
	About *About
}

// Launch opens both demo windows, leaving Dummy focused.
func Launch(m *wm.Manager, opts ...Option) *Apps {
	about := NewAbout(m, 400, 60, opts...)
	dummy := NewDummy(m, 50, 50, opts...)
	return &Apps{Dummy: dummy, About: about}
}
