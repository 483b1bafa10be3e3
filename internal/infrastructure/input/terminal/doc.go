// Package terminal drives desktop input from a tcell screen: mouse
// motion, button transitions and wheel steps, and keys translated to DOM
// key names. Events are posted to the desktop loop rather than applied on
// the polling goroutine.
package terminal
