// Package main is the entry point for the simulated desktop.
//
// The desktop paints overlapping windows, a status bar and a cursor onto a
// drawing surface and routes pointer and keyboard input to them.
//
// Backends:
//   - terminal: draws into the terminal with tcell; mouse and keys drive
//     the windows directly
//   - headless: draws into an in-memory image, renders a number of frames
//     and writes a PNG snapshot
//
// Either backend can expose the JSON API and input WebSocket with -http.
//
// Configuration:
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Interactive, in the current terminal
//	./desktop
//
//	# Render five frames to a PNG and exit
//	./desktop -backend headless -frames 5 -snapshot frame.png
//
//	# Headless with the API on :8070
//	./desktop -backend headless -http -port 8070
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
