// Package server assembles a running desktop.
//
// It builds, in order:
//   - the zap logger and a Prometheus registry with the desktop metrics
//   - the event loop, the input bus and the window manager
//   - the desktop with its cursor, status bar and message box applets,
//     and a circuit breaker that pauses rendering after repeated frame
//     faults
//   - the demo windows
//   - the Gin router (tracing, metrics, CORS, rate limiting) serving the
//     JSON API, the input WebSocket at /stream and /metrics
//
// The caller supplies the drawing surface and any input driver; drivers
// deliver into Sink through Loop().Post.
//
//	srv, err := server.New(cfg, surface)
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//	return srv.Run(ctx)
package server
