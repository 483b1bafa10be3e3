package types

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/utils"
)

// InputType names an injected input event
type InputType string

const (
	InputMove  InputType = "move"
	InputDown  InputType = "down"
	InputUp    InputType = "up"
	InputWheel InputType = "wheel"
	InputKey   InputType = "key"
	InputPing  InputType = "ping"
)

// InputMessage is one input event sent by a remote client
type InputMessage struct {
	Type   InputType `json:"type"`
	X      int       `json:"x,omitempty"`
	Y      int       `json:"y,omitempty"`
	Button int       `json:"button,omitempty"`
	Delta  int       `json:"delta,omitempty"`
	Key    string    `json:"key,omitempty"`
}

// Validate checks the fields the message type depends on
func (m InputMessage) Validate() error {
	switch m.Type {
	case InputMove, InputPing:
		return nil
	case InputDown, InputUp:
		return utils.ValidateButton(m.Button)
	case InputWheel:
		if m.Delta == 0 {
			return fmt.Errorf("wheel delta must be non-zero")
		}
		return nil
	case InputKey:
		return utils.ValidateKey(m.Key)
	default:
		return fmt.Errorf("unknown input type %q", m.Type)
	}
}

// ServerMessage is sent from the desktop to a WebSocket client
type ServerMessage struct {
	Type      string `json:"type"`
	Message   string `json:"message,omitempty"`
	Session   string `json:"session,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
