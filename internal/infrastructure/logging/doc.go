// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// When the terminal backend owns stdout, point OutputPaths at a file so log
// lines do not tear the rendered frame.
//
// Every desktop component receives a named child logger:
//
//	logger := logging.NewDefault()
//	wmLog := logger.Component("WindowManager")
//	wmLog.Info("Created window", zap.Int("window_id", 1), zap.String("title", "Dummy"))
package logging
