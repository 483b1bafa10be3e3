package ws

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

type recordingSink struct {
	mu    sync.Mutex
	calls []string
}

func (s *recordingSink) record(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *recordingSink) Move(x, y int)         { s.record("move %d,%d", x, y) }
func (s *recordingSink) Down(x, y, button int) { s.record("down %d,%d b%d", x, y, button) }
func (s *recordingSink) Up(x, y, button int)   { s.record("up %d,%d b%d", x, y, button) }
func (s *recordingSink) Wheel(delta int)       { s.record("wheel %d", delta) }
func (s *recordingSink) Key(key string)        { s.record("key %s", key) }

func (s *recordingSink) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

type countingMetrics struct {
	mu       sync.Mutex
	messages map[string]int
	open     int
}

func (m *countingMetrics) RecordWSMessage(t string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[t]++
}

func (m *countingMetrics) IncWSConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open++
}

func (m *countingMetrics) DecWSConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open--
}

func syncPost(fn func()) error {
	fn()
	return nil
}

func dial(t *testing.T, h *Handler) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/stream", h.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var welcome types.ServerMessage
	require.NoError(t, conn.ReadJSON(&welcome))
	require.Equal(t, "system", welcome.Type)
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(types.InputMessage{Type: types.InputPing}))
	var reply types.ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, "pong", reply.Type)
}

func TestMessagesReachSinkInOrder(t *testing.T) {
	sink := &recordingSink{}
	conn := dial(t, NewHandler(sink, syncPost))

	for _, msg := range []types.InputMessage{
		{Type: types.InputMove, X: 10, Y: 20},
		{Type: types.InputDown, X: 10, Y: 20, Button: 0},
		{Type: types.InputUp, X: 12, Y: 22, Button: 0},
		{Type: types.InputWheel, Delta: -120},
		{Type: types.InputKey, Key: "Enter"},
	} {
		require.NoError(t, conn.WriteJSON(msg))
	}
	roundTrip(t, conn)

	assert.Equal(t, []string{
		"move 10,20",
		"down 10,20 b0",
		"up 12,22 b0",
		"wheel -1",
		"key Enter",
	}, sink.Calls())
}

func TestInvalidMessageKeepsConnection(t *testing.T) {
	sink := &recordingSink{}
	conn := dial(t, NewHandler(sink, syncPost))

	require.NoError(t, conn.WriteJSON(types.InputMessage{Type: types.InputKey}))
	var reply types.ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)

	require.NoError(t, conn.WriteJSON(types.InputMessage{Type: types.InputKey, Key: "a"}))
	roundTrip(t, conn)
	assert.Equal(t, []string{"key a"}, sink.Calls())
}

func TestStoppedLoopClosesConnection(t *testing.T) {
	stopped := func(func()) error { return errors.New("stopped") }
	conn := dial(t, NewHandler(&recordingSink{}, stopped))

	require.NoError(t, conn.WriteJSON(types.InputMessage{Type: types.InputMove, X: 1, Y: 1}))
	var reply types.ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)

	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestMetricsTrackMessages(t *testing.T) {
	metrics := &countingMetrics{messages: map[string]int{}}
	conn := dial(t, NewHandler(&recordingSink{}, syncPost, WithMetrics(metrics)))

	require.NoError(t, conn.WriteJSON(types.InputMessage{Type: types.InputMove}))
	roundTrip(t, conn)

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, 1, metrics.open)
	assert.Equal(t, 1, metrics.messages["move"])
	assert.Equal(t, 1, metrics.messages["ping"])
}
