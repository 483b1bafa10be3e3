// Package input carries raw pointer and keyboard events from drivers to the
// desktop. Drivers write into a Sink; the window manager and pointer-aware
// applets subscribe to a Source. Bus implements both.
package input
