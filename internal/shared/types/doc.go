// Package types provides the data structures exchanged over the desktop API.
//
// Core Types:
//   - WindowInfo: snapshot of one window's geometry and state
//   - WindowList: the stack, bottom to top, plus the focused id
//   - CreateWindowRequest, UpdateWindowRequest: window mutations
//   - InputMessage: one injected input event (HTTP or WebSocket)
//   - Health: desktop liveness summary
//
// Example Usage:
//
//	msg := types.InputMessage{Type: types.InputDown, X: 120, Y: 40}
//	if err := msg.Validate(); err != nil {
//	    return err
//	}
package types
