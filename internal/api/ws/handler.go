package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/utils"
)

// Poster runs fn on the desktop loop.
type Poster func(fn func()) error

// Metrics records WebSocket activity.
type Metrics interface {
	RecordWSMessage(msgType string)
	IncWSConnections()
	DecWSConnections()
}

type nopMetrics struct{}

func (nopMetrics) RecordWSMessage(string) {}
func (nopMetrics) IncWSConnections()      {}
func (nopMetrics) DecWSConnections()      {}

// Handler streams remote input into the desktop
type Handler struct {
	sink     input.Sink
	post     Poster
	session  id.SessionID
	logger   *zap.Logger
	metrics  Metrics
	upgrader websocket.Upgrader
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(h *Handler) {
		if m != nil {
			h.metrics = m
		}
	}
}

// WithSession tags the welcome message with the desktop session.
func WithSession(s id.SessionID) Option {
	return func(h *Handler) { h.session = s }
}

// NewHandler creates a new WebSocket handler delivering into sink through post
func NewHandler(sink input.Sink, post Poster, opts ...Option) *Handler {
	h := &Handler{
		sink:    sink,
		post:    post,
		logger:  zap.NewNop(),
		metrics: nopMetrics{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.Named("ws")
	return h
}

// HandleConnection upgrades the request and reads input messages until the
// client goes away or the desktop loop stops
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(utils.MaxMessageSize)

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	h.send(conn, types.ServerMessage{
		Type:    "system",
		Message: "connected",
		Session: h.session.String(),
	})

	for {
		var msg types.InputMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		if err := msg.Validate(); err != nil {
			h.sendError(conn, err.Error())
			continue
		}
		h.metrics.RecordWSMessage(string(msg.Type))

		if msg.Type == types.InputPing {
			h.send(conn, types.ServerMessage{Type: "pong"})
			continue
		}

		if err := h.post(func() { Inject(h.sink, msg) }); err != nil {
			h.sendError(conn, "desktop is not running")
			return
		}
	}
}

// Inject delivers a validated message to sink. It must run on the loop
// goroutine.
func Inject(sink input.Sink, msg types.InputMessage) {
	switch msg.Type {
	case types.InputMove:
		sink.Move(msg.X, msg.Y)
	case types.InputDown:
		sink.Down(msg.X, msg.Y, msg.Button)
	case types.InputUp:
		sink.Up(msg.X, msg.Y, msg.Button)
	case types.InputWheel:
		sink.Wheel(input.Sign(float64(msg.Delta)))
	case types.InputKey:
		sink.Key(msg.Key)
	}
}

func (h *Handler) send(conn *websocket.Conn, msg types.ServerMessage) {
	msg.Timestamp = time.Now().Unix()
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
	}
}

func (h *Handler) sendError(conn *websocket.Conn, message string) {
	h.send(conn, types.ServerMessage{Type: "error", Message: message})
}
