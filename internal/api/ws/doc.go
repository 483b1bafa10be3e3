// Package ws accepts remote input over a WebSocket.
//
// Each connection receives a welcome message and then sends JSON input
// messages:
//
//	{"type": "move", "x": 120, "y": 40}
//	{"type": "down", "x": 120, "y": 40, "button": 0}
//	{"type": "key", "key": "Enter"}
//
// Messages are validated on the connection goroutine and applied on the
// desktop loop. Invalid messages get an error reply and the connection
// stays open.
package ws
