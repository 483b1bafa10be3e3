// Package loop provides the single goroutine every desktop mutation runs
// on, plus the frame scheduling used by the compositor.
//
// Loop is the production scheduler: tasks posted from other goroutines
// (terminal input, HTTP handlers, websocket readers) and frame callbacks run
// strictly one at a time. ManualClock implements the same frame contract
// for deterministic tests.
package loop
