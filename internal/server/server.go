package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/AgentOS/desktop/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/apps/demo"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/loop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/surface"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/wm"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
)

const (
	shutdownTimeout = 5 * time.Second

	// A surface that faults this many frames in a row gets a rest.
	frameFaultLimit = 3
	frameCooldown   = time.Second
)

// ErrNoSnapshot is returned when the surface cannot be saved to a file.
var ErrNoSnapshot = errors.New("surface does not support snapshots")

type pngSaver interface {
	SavePNG(path string) error
}

// Server owns one desktop and everything that feeds it: the event loop,
// the input bus, the demo windows and the optional HTTP API.
type Server struct {
	config   *config.Config
	logger   *logging.Logger
	registry *prometheus.Registry
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	session  id.SessionID

	loop    *loop.Loop
	bus     *input.Bus
	windows *wm.Manager
	desktop *desktop.Desktop
	cursor  *desktop.Cursor
	message *desktop.MessageBox
	apps    *demo.Apps

	router *gin.Engine
	http   *http.Server
}

type options struct {
	logger *logging.Logger
	demo   bool
}

// Option configures a Server.
type Option func(*options)

// WithLogger sets the logger instead of building one from the config.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDemo controls whether the demo windows open at startup.
func WithDemo(enabled bool) Option {
	return func(o *options) { o.demo = enabled }
}

// New wires a desktop onto s. Nothing runs until Run.
func New(cfg *config.Config, s surface.Surface, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{demo: true}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = newLogger(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	srv := &Server{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		session:  id.NewSessionID(),
	}
	srv.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	srv.metrics = monitoring.NewMetrics(srv.registry)

	logger.Info("Initializing desktop",
		zap.String("session", srv.session.String()),
		zap.Int("width", cfg.Screen.Width),
		zap.Int("height", cfg.Screen.Height),
		zap.Int("fps", cfg.Screen.FPS),
		zap.String("backend", cfg.Backend.Kind),
	)

	srv.loop = loop.New(logger.Logger)
	srv.bus = input.NewBus()
	srv.windows = wm.NewManager(s, srv.bus,
		wm.WithLogger(logger.Logger),
		wm.WithMetrics(srv.metrics),
	)
	srv.cursor = desktop.NewCursor(srv.bus)
	srv.desktop = desktop.New(s, srv.windows, srv.loop,
		desktop.WithLogger(logger.Logger),
		desktop.WithMetrics(srv.metrics),
		desktop.WithFPS(cfg.Screen.FPS),
		desktop.WithCursor(srv.cursor),
		desktop.WithFrameGuard(srv.newFrameGuard()),
	)

	srv.desktop.AddApplet(desktop.NewStatusBar(srv.windows), desktop.AlwaysTop)
	srv.message = desktop.NewMessageBox(s.Size(), srv.bus)
	srv.desktop.AddApplet(srv.message, desktop.AlwaysTop)

	if o.demo {
		srv.apps = demo.Launch(srv.windows,
			demo.WithLogger(logger.Logger),
			demo.WithMessageBox(srv.message),
		)
	}

	srv.tracer = tracing.New("desktop-api", logger.Logger)
	srv.router = srv.newRouter()
	if cfg.Server.Enabled {
		srv.http = &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           srv.router,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	logger.Info("Desktop initialized", zap.Int("windows", srv.windows.Len()))
	return srv, nil
}

func (s *Server) newFrameGuard() *resilience.Breaker {
	return resilience.New("frames", resilience.Settings{
		Timeout: frameCooldown,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= frameFaultLimit
		},
		OnStateChange: func(name string, from, to resilience.State) {
			s.logger.Warn("Frame guard changed state",
				zap.String("guard", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
		Now: s.loop.Now,
	})
}

func newLogger(cfg config.LogConfig) (*logging.Logger, error) {
	lc := logging.Config{
		Level:       cfg.Level,
		Development: cfg.Development,
	}
	if cfg.File != "" {
		lc.OutputPaths = []string{cfg.File}
	}
	return logging.New(lc)
}

func (s *Server) newRouter() *gin.Engine {
	if !s.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(s.tracer))
	router.Use(monitoring.Middleware(s.metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if s.config.RateLimit.Enabled {
		s.logger.Info("Rate limiting enabled",
			zap.Int("rps", s.config.RateLimit.RequestsPerSecond),
			zap.Int("burst", s.config.RateLimit.Burst),
		)
		limit := middleware.DefaultRateLimitConfig()
		limit.RequestsPerSecond = s.config.RateLimit.RequestsPerSecond
		limit.Burst = s.config.RateLimit.Burst
		router.Use(middleware.RateLimit(limit))
	}

	handlers := apihttp.NewHandlers(s.loop, s.desktop, s.bus,
		apihttp.WithLogger(s.logger.Logger),
		apihttp.WithSnapshots(s.metrics),
		apihttp.WithSession(s.session),
	)
	handlers.Register(router)

	wsHandler := ws.NewHandler(s.bus, s.loop.Post,
		ws.WithLogger(s.logger.Logger),
		ws.WithMetrics(s.metrics),
		ws.WithSession(s.session),
	)
	router.GET("/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	return router
}

// Run starts the frame loop and, when enabled, the HTTP API. It returns
// when ctx ends or either of them fails. The loop outlives the HTTP server
// so in-flight requests can finish their loop calls.
func (s *Server) Run(ctx context.Context) error {
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()

	errCh := make(chan error, 2)
	go func() {
		errCh <- s.loop.Run(loopCtx)
	}()
	if err := s.loop.Post(s.desktop.Start); err != nil {
		return fmt.Errorf("failed to start desktop: %w", err)
	}

	if s.http != nil {
		go func() {
			s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
			if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			runErr = err
		}
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if s.http != nil {
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP shutdown failed", zap.Error(err))
		}
	}

	stopLoop()
	<-s.loop.Done()

	s.logger.Info("Desktop stopped", zap.Uint64("frames", s.desktop.Frames()))
	return runErr
}

// Call runs fn on the desktop loop and waits for it.
func (s *Server) Call(ctx context.Context, fn func()) error {
	return s.loop.Call(ctx, fn)
}

// WaitFrames blocks until at least n frames have been rendered.
func (s *Server) WaitFrames(ctx context.Context, n uint64) error {
	ticker := time.NewTicker(s.desktop.FramePeriod())
	defer ticker.Stop()
	for {
		var frames uint64
		if err := s.loop.Call(ctx, func() { frames = s.desktop.Frames() }); err != nil {
			return err
		}
		if frames >= n {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SaveSnapshot writes the current frame to path as PNG.
func (s *Server) SaveSnapshot(ctx context.Context, path string) error {
	saver, ok := s.desktop.Surface().(pngSaver)
	if !ok {
		return ErrNoSnapshot
	}
	var err error
	if callErr := s.loop.Call(ctx, func() { err = saver.SavePNG(path) }); callErr != nil {
		return callErr
	}
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.logger.Info("Saved snapshot", zap.String("path", path))
	return nil
}

// Close releases resources. Call it after Run returns.
func (s *Server) Close() error {
	s.logger.Info("Shutting down desktop...")
	s.cursor.Close()
	s.tracer.Close()
	_ = s.logger.Sync()
	return nil
}

// Session returns the desktop session id.
func (s *Server) Session() id.SessionID { return s.session }

// Loop returns the event loop.
func (s *Server) Loop() *loop.Loop { return s.loop }

// Sink returns where input drivers deliver events.
func (s *Server) Sink() input.Sink { return s.bus }

// Desktop returns the desktop. Use it only from the loop goroutine.
func (s *Server) Desktop() *desktop.Desktop { return s.desktop }

// Apps returns the demo windows, or nil when the demo is disabled.
func (s *Server) Apps() *demo.Apps { return s.apps }

// Handler returns the HTTP API handler.
func (s *Server) Handler() http.Handler { return s.router }
