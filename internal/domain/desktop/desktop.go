package desktop

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/wm"
)

// DefaultFPS is the target frame rate.
const DefaultFPS = 60

var backgroundColor = surface.MustHex("#333333")

// ErrFrameFault wraps a panic raised while producing a frame.
var ErrFrameFault = errors.New("frame fault")

// FrameScheduler delivers one-shot frame callbacks.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time))
	Now() time.Time
}

// FrameGuard decides whether a frame may run and records how it went.
type FrameGuard interface {
	Do(fn func() error) error
}

type unguarded struct{}

func (unguarded) Do(fn func() error) error { return fn() }

// Metrics receives compositor events.
type Metrics interface {
	FrameRendered(d time.Duration)
	FrameFailed()
	TickSkipped()
}

type nopMetrics struct{}

func (nopMetrics) FrameRendered(time.Duration) {}
func (nopMetrics) FrameFailed()                {}
func (nopMetrics) TickSkipped()                {}

// Desktop is the compositor. Each frame it paints the background, the
// bottom and normal applet bands, the windows, the top band and finally
// the cursor.
type Desktop struct {
	surface   surface.Surface
	windows   *wm.Manager
	scheduler FrameScheduler
	cursor    Applet
	guard     FrameGuard
	logger    *zap.Logger
	metrics   Metrics

	period     time.Duration
	background surface.Color

	applets []entry

	running    bool
	generation int
	last       time.Time
	frames     uint64
}

// Option configures a Desktop.
type Option func(*Desktop)

func WithLogger(l *zap.Logger) Option {
	return func(d *Desktop) {
		if l != nil {
			d.logger = l
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(d *Desktop) {
		if m != nil {
			d.metrics = m
		}
	}
}

// WithFPS sets the target frame rate. Non-positive values are ignored.
func WithFPS(fps int) Option {
	return func(d *Desktop) {
		if fps > 0 {
			d.period = time.Second / time.Duration(fps)
		}
	}
}

// WithCursor sets the applet painted after everything else.
func WithCursor(c Applet) Option {
	return func(d *Desktop) { d.cursor = c }
}

// WithFrameGuard runs every frame through g. Without one a faulting frame
// is still dropped, but the next frame always runs.
func WithFrameGuard(g FrameGuard) Option {
	return func(d *Desktop) {
		if g != nil {
			d.guard = g
		}
	}
}

// WithBackground sets the clear colour.
func WithBackground(c surface.Color) Option {
	return func(d *Desktop) { d.background = c }
}

// New creates a stopped desktop.
func New(s surface.Surface, windows *wm.Manager, scheduler FrameScheduler, opts ...Option) *Desktop {
	d := &Desktop{
		surface:    s,
		windows:    windows,
		scheduler:  scheduler,
		guard:      unguarded{},
		logger:     zap.NewNop(),
		metrics:    nopMetrics{},
		period:     time.Second / DefaultFPS,
		background: backgroundColor,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.Named("Desktop")
	d.logger.Info("Desktop environment initialized", zap.Duration("frame_period", d.period))
	return d
}

// WindowManager returns the manager whose windows this desktop paints.
func (d *Desktop) WindowManager() *wm.Manager { return d.windows }

// Surface returns the drawing target.
func (d *Desktop) Surface() surface.Surface { return d.surface }

// FramePeriod returns the minimum time between rendered frames.
func (d *Desktop) FramePeriod() time.Duration { return d.period }

// Frames returns how many frames the tick loop has rendered.
func (d *Desktop) Frames() uint64 { return d.frames }

// Running reports whether the tick loop is active.
func (d *Desktop) Running() bool { return d.running }

// Start begins requesting frames. Calling it while running does nothing.
func (d *Desktop) Start() {
	if d.running {
		return
	}
	d.running = true
	d.generation++
	d.last = d.scheduler.Now()
	d.schedule()
	d.logger.Info("Desktop environment started")
}

// Stop ends the tick loop after any frame already in progress. Calling it
// while stopped does nothing.
func (d *Desktop) Stop() {
	if !d.running {
		return
	}
	d.running = false
	d.logger.Info("Desktop environment stopped", zap.Uint64("frames", d.frames))
}

func (d *Desktop) schedule() {
	gen := d.generation
	d.scheduler.RequestFrame(func(now time.Time) {
		if gen != d.generation {
			return
		}
		d.tick(now)
	})
}

func (d *Desktop) tick(now time.Time) {
	if !d.running {
		return
	}

	elapsed := now.Sub(d.last)
	if elapsed >= d.period {
		d.last = now.Add(-(elapsed % d.period))

		err := d.guard.Do(func() error { return d.frame(now, elapsed) })
		switch {
		case err == nil:
			d.frames++
		case errors.Is(err, ErrFrameFault):
			d.metrics.FrameFailed()
			d.logger.Error("Frame dropped", zap.Error(err))
		default:
			d.metrics.TickSkipped()
			d.logger.Debug("Frame held back", zap.Error(err))
		}
	} else {
		d.metrics.TickSkipped()
	}

	if d.running {
		d.schedule()
	}
}

// frame updates applets, ticks windows and renders. A panic anywhere in
// it becomes an ErrFrameFault.
func (d *Desktop) frame(now time.Time, elapsed time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFrameFault, r)
		}
	}()

	for _, e := range d.applets {
		if u, ok := e.applet.(Updater); ok {
			u.Update(now)
		}
	}
	d.windows.Tick(now, elapsed)
	d.Render()
	return nil
}

// Render paints one frame.
func (d *Desktop) Render() {
	start := time.Now()

	d.surface.Clear(d.background)

	sorted := make([]entry, len(d.applets))
	copy(sorted, d.applets)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].z < sorted[j].z })

	for _, e := range sorted {
		if e.z < int(Normal) {
			e.applet.Draw(d.surface)
		}
	}
	for _, e := range sorted {
		if e.z >= int(Normal) && e.z < int(AlwaysTop) {
			e.applet.Draw(d.surface)
		}
	}

	d.windows.RedrawAll()

	for _, e := range sorted {
		if e.z >= int(AlwaysTop) {
			e.applet.Draw(d.surface)
		}
	}

	if d.cursor != nil {
		d.cursor.Draw(d.surface)
	}

	if p, ok := d.surface.(surface.Presenter); ok {
		p.Present()
	}
	d.metrics.FrameRendered(time.Since(start))
}

// AddApplet registers a. Its own ZIndex wins unless it is zero, in which
// case the band's value is used.
func (d *Desktop) AddApplet(a Applet, pos Position) {
	z := a.ZIndex()
	if z == 0 {
		z = int(pos)
	}
	d.applets = append(d.applets, entry{applet: a, z: z})
	d.logger.Info("Added applet", zap.Int("z_index", z), zap.Stringer("band", Position(z)))
}

// RemoveApplet unregisters a.
func (d *Desktop) RemoveApplet(a Applet) bool {
	for i, e := range d.applets {
		if e.applet == a {
			d.applets = append(d.applets[:i], d.applets[i+1:]...)
			d.logger.Info("Removed applet", zap.Int("z_index", e.z))
			return true
		}
	}
	return false
}

// Applets returns the registered applets in registration order.
func (d *Desktop) Applets() []Applet {
	out := make([]Applet, len(d.applets))
	for i, e := range d.applets {
		out[i] = e.applet
	}
	return out
}

// ZIndexOf returns the effective z-index of a registered applet.
func (d *Desktop) ZIndexOf(a Applet) (int, bool) {
	for _, e := range d.applets {
		if e.applet == a {
			return e.z, true
		}
	}
	return 0, false
}
