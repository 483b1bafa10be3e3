// Package config provides 12-factor configuration management for the desktop.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags in cmd/desktop override environment variables.
//
// Configuration Sections:
//   - Screen: logical resolution, frame rate and terminal cell size
//   - Backend: terminal or headless presentation, snapshot output
//   - Server: optional inspection API (HTTP + WebSocket input)
//   - Logging: log level, output format and file
//   - RateLimit: API rate limiting
//
// Environment Variables:
//   - DESKTOP_WIDTH, DESKTOP_HEIGHT, DESKTOP_FPS, DESKTOP_CELL_WIDTH, DESKTOP_CELL_HEIGHT
//   - DESKTOP_BACKEND, DESKTOP_SNAPSHOT, DESKTOP_FRAMES
//   - HTTP_ENABLED, HTTP_HOST, HTTP_PORT
//   - LOG_LEVEL, LOG_DEV, LOG_FILE
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
