// Package raster is an off-screen Surface backed by an RGBA image, used
// for the headless backend and for PNG snapshots of a frame.
package raster
