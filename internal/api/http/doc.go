// Package http exposes a running desktop over a small JSON API.
//
// Routes:
//
//	GET    /health              loop state, session, window count, frames
//	GET    /stats               metric counters
//	GET    /screenshot          current frame as PNG (raster surfaces only)
//	GET    /windows             stack, bottom to top, and the focused id
//	POST   /windows             create and focus a window
//	GET    /windows/:id         one window
//	PATCH  /windows/:id         move, resize, rename, show or hide
//	DELETE /windows/:id         destroy
//	POST   /windows/:id/focus   raise and focus
//	POST   /input               inject one input event
//
// Handlers never touch desktop state directly; each request runs a closure
// on the desktop loop and waits for it.
package http
