package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrStopped is returned when work is posted to a loop that has exited.
var ErrStopped = errors.New("loop stopped")

const (
	defaultQueueSize     = 256
	defaultFrameInterval = 4 * time.Millisecond
)

// FrameFunc is a one-shot frame callback.
type FrameFunc func(now time.Time)

// Loop serialises all desktop work onto one goroutine. Drivers and API
// handlers Post closures; frame callbacks requested with RequestFrame fire
// on the same goroutine at the frame interval.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	pending []FrameFunc
	running bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithFrameInterval sets how often pending frame callbacks are flushed.
func WithFrameInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithQueueSize sets the task buffer size.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.tasks = make(chan func(), n)
		}
	}
}

// New creates a loop. It does nothing until Run is called.
func New(logger *zap.Logger, opts ...Option) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loop{
		tasks:    make(chan func(), defaultQueueSize),
		done:     make(chan struct{}),
		interval: defaultFrameInterval,
		logger:   logger.Named("Loop"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues fn for the loop goroutine. It blocks while the queue is full
// and fails once the loop has exited.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Call runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}
}

// RequestFrame schedules fn for the next frame.
func (l *Loop) RequestFrame(fn func(now time.Time)) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
}

// Now reports wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run processes tasks and frames until ctx ends. It may be called once.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return errors.New("loop already running")
	}
	l.running = true
	l.mu.Unlock()

	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("Event loop started", zap.Duration("frame_interval", l.interval))

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("Event loop stopped")
			return ctx.Err()
		case fn := <-l.tasks:
			l.run("task", func() { fn() })
		case now := <-ticker.C:
			l.flushFrames(now)
		}
	}
}

func (l *Loop) flushFrames(now time.Time) {
	l.mu.Lock()
	frames := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range frames {
		l.run("frame", func() { fn(now) })
	}
}

func (l *Loop) run(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Recovered panic in loop",
				zap.String("kind", kind),
				zap.Error(fmt.Errorf("%v", r)))
		}
	}()
	fn()
}
