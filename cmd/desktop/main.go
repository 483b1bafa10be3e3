package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	inputterm "github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/input/terminal"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/surface/raster"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/surface/terminal"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/server"
)

const snapshotTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "desktop: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags default to the environment, so a set flag wins.
	flag.IntVar(&cfg.Screen.Width, "width", cfg.Screen.Width, "Screen width in logical pixels (headless)")
	flag.IntVar(&cfg.Screen.Height, "height", cfg.Screen.Height, "Screen height in logical pixels (headless)")
	flag.IntVar(&cfg.Screen.FPS, "fps", cfg.Screen.FPS, "Target frames per second")
	flag.StringVar(&cfg.Backend.Kind, "backend", cfg.Backend.Kind, "Backend: terminal or headless")
	flag.StringVar(&cfg.Backend.Snapshot, "snapshot", cfg.Backend.Snapshot, "PNG path written by the headless backend")
	flag.IntVar(&cfg.Backend.Frames, "frames", cfg.Backend.Frames, "Frames to render before the headless snapshot")
	flag.BoolVar(&cfg.Server.Enabled, "http", cfg.Server.Enabled, "Serve the JSON API and input WebSocket")
	flag.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "API port")
	flag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "Development logging (console, debug)")
	flag.StringVar(&cfg.Logging.File, "log-file", cfg.Logging.File, "Log file (the terminal backend logs nowhere without one)")
	flag.Parse()

	if cfg.Logging.Development {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Backend.Kind {
	case config.BackendHeadless:
		return runHeadless(ctx, cfg, logger)
	default:
		return runTerminal(ctx, cfg, logger)
	}
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	lc := logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	}
	switch {
	case cfg.Logging.File != "":
		lc.OutputPaths = []string{cfg.Logging.File}
	case cfg.Backend.Kind == config.BackendTerminal:
		// stdout belongs to the screen
		return logging.NewNop(), nil
	}
	logger, err := logging.New(lc)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func runTerminal(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	surf, err := terminal.Open(cfg.Screen.CellWidth, cfg.Screen.CellHeight)
	if err != nil {
		return err
	}
	defer surf.Close()

	srv, err := server.New(cfg, surf, server.WithLogger(logger))
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	driver := inputterm.New(surf.Screen(), srv.Sink(), srv.Loop().Post,
		cfg.Screen.CellWidth, cfg.Screen.CellHeight,
		inputterm.WithLogger(logger.Logger),
		inputterm.WithQuit(cancel),
		inputterm.WithResize(surf.Sync),
	)
	go func() {
		if err := driver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Terminal input stopped", zap.Error(err))
			cancel()
		}
	}()

	// The driver blocks in PollEvent; finalising the screen releases it.
	return srv.Run(ctx)
}

func runHeadless(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	srv, err := server.New(cfg, raster.New(cfg.Screen.Width, cfg.Screen.Height), server.WithLogger(logger))
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	if err := snapshot(ctx, srv, cfg); err != nil {
		cancel()
		<-done
		return err
	}

	if !cfg.Server.Enabled {
		cancel()
	}
	return <-done
}

func snapshot(ctx context.Context, srv *server.Server, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	frames := cfg.Backend.Frames
	if frames < 1 {
		frames = 1
	}
	if err := srv.WaitFrames(ctx, uint64(frames)); err != nil {
		return fmt.Errorf("waiting for %d frames: %w", frames, err)
	}
	return srv.SaveSnapshot(ctx, cfg.Backend.Snapshot)
}
