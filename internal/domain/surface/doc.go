// Package surface defines the drawing target consumed by windows, widgets
// and the compositor, along with the small geometry and colour types they
// share.
//
// Concrete surfaces live under internal/infrastructure/surface (a tcell
// terminal surface and an image-backed raster surface). Recorder is an
// in-memory surface for tests.
package surface
