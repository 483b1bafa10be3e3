package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/loop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/wm"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/surface/raster"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

type directCaller struct{ err error }

func (d directCaller) Call(_ context.Context, fn func()) error {
	if d.err != nil {
		return d.err
	}
	fn()
	return nil
}

// lateCaller queues fn and gives up when ctx expires, leaving the closure
// to run afterwards as a busy loop would.
type lateCaller struct{ queued *[]func() }

func (l lateCaller) Call(ctx context.Context, fn func()) error {
	*l.queued = append(*l.queued, fn)
	<-ctx.Done()
	return ctx.Err()
}

type fixture struct {
	router  *gin.Engine
	desktop *desktop.Desktop
	windows *wm.Manager
}

func newFixture(t *testing.T, caller Caller, opts ...Option) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := raster.New(400, 300)
	bus := input.NewBus()
	windows := wm.NewManager(s, bus)
	d := desktop.New(s, windows, loop.NewManualClock(time.Unix(0, 0)))

	router := gin.New()
	NewHandlers(caller, d, bus, opts...).Register(router)
	return &fixture{router: router, desktop: d, windows: windows}
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestCreateAndListWindows(t *testing.T) {
	f := newFixture(t, directCaller{})

	w := f.do(http.MethodPost, "/windows", types.CreateWindowRequest{Title: "A", X: 10, Y: 10, Width: 200, Height: 150})
	require.Equal(t, http.StatusCreated, w.Code)
	a := decode[types.WindowInfo](t, w)
	assert.Equal(t, 1, a.ID)
	assert.True(t, a.Focused)
	assert.True(t, a.Visible)

	w = f.do(http.MethodPost, "/windows", types.CreateWindowRequest{Title: "B", X: 50, Y: 40, Width: 200, Height: 150})
	require.Equal(t, http.StatusCreated, w.Code)

	list := decode[types.WindowList](t, f.do(http.MethodGet, "/windows", nil))
	require.Len(t, list.Windows, 2)
	assert.Equal(t, "A", list.Windows[0].Title)
	assert.Equal(t, "B", list.Windows[1].Title)
	assert.Equal(t, 1, list.Windows[1].Z)
	require.NotNil(t, list.Focused)
	assert.Equal(t, 2, *list.Focused)
}

func TestCreateWindowRejectsBadInput(t *testing.T) {
	f := newFixture(t, directCaller{})

	w := f.do(http.MethodPost, "/windows", map[string]any{"title": "", "width": 100, "height": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/windows", map[string]any{"title": "x", "width": -5, "height": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, f.windows.Len())
}

func TestFocusRaisesWindow(t *testing.T) {
	f := newFixture(t, directCaller{})
	f.windows.CreateWindow("A", 0, 0, 100, 100)
	f.windows.CreateWindow("B", 0, 0, 100, 100)

	w := f.do(http.MethodPost, "/windows/1/focus", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[types.WindowInfo](t, w)
	assert.True(t, info.Focused)
	assert.Equal(t, 1, info.Z)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/windows/9/focus", nil).Code)
}

func TestUpdateWindow(t *testing.T) {
	f := newFixture(t, directCaller{})
	f.windows.CreateWindow("A", 10, 10, 100, 100)

	x, title, visible := 70, "Renamed", false
	w := f.do(http.MethodPatch, "/windows/1", types.UpdateWindowRequest{X: &x, Title: &title, Visible: &visible})
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[types.WindowInfo](t, w)
	assert.Equal(t, 70, info.X)
	assert.Equal(t, 10, info.Y)
	assert.Equal(t, "Renamed", info.Title)
	assert.False(t, info.Visible)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPatch, "/windows/5", types.UpdateWindowRequest{X: &x}).Code)
}

func TestDestroyWindow(t *testing.T) {
	f := newFixture(t, directCaller{})
	f.windows.CreateWindow("A", 0, 0, 100, 100)

	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/windows/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/windows/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/windows/1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/windows/abc", nil).Code)
}

func TestInputDragsWindow(t *testing.T) {
	f := newFixture(t, directCaller{})
	f.windows.CreateWindow("A", 0, 0, 200, 150)

	for _, msg := range []types.InputMessage{
		{Type: types.InputDown, X: 10, Y: 5},
		{Type: types.InputMove, X: 60, Y: 45},
		{Type: types.InputUp, X: 60, Y: 45},
	} {
		require.Equal(t, http.StatusNoContent, f.do(http.MethodPost, "/input", msg).Code)
	}

	info := decode[types.WindowInfo](t, f.do(http.MethodGet, "/windows/1", nil))
	assert.Equal(t, 50, info.X)
	assert.Equal(t, 40, info.Y)
	assert.False(t, info.Dragging)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/input", types.InputMessage{Type: "warp"}).Code)
}

func TestHealthAndStats(t *testing.T) {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	f := newFixture(t, directCaller{}, WithSnapshots(metrics), WithSession("desk_test"))

	health := decode[types.Health](t, f.do(http.MethodGet, "/health", nil))
	assert.Equal(t, "stopped", health.Status)
	assert.Equal(t, "desk_test", health.Session)
	assert.False(t, health.Running)

	f.desktop.Start()
	health = decode[types.Health](t, f.do(http.MethodGet, "/health", nil))
	assert.Equal(t, "healthy", health.Status)

	metrics.WindowCreated(3)
	snap := decode[monitoring.Snapshot](t, f.do(http.MethodGet, "/stats", nil))
	assert.Equal(t, int64(3), snap.WindowsActive)
}

func TestScreenshot(t *testing.T) {
	f := newFixture(t, directCaller{})
	f.windows.CreateWindow("A", 10, 10, 100, 80)
	f.desktop.Render()

	w := f.do(http.MethodGet, "/screenshot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestLoopFailures(t *testing.T) {
	stopped := newFixture(t, directCaller{err: loop.ErrStopped})
	assert.Equal(t, http.StatusServiceUnavailable, stopped.do(http.MethodGet, "/windows", nil).Code)

	slow := newFixture(t, directCaller{err: context.DeadlineExceeded})
	assert.Equal(t, http.StatusGatewayTimeout, slow.do(http.MethodGet, "/windows", nil).Code)

	wrapped := newFixture(t, directCaller{err: errors.Join(errors.New("busy"), loop.ErrStopped)})
	assert.Equal(t, http.StatusServiceUnavailable, wrapped.do(http.MethodGet, "/health", nil).Code)
}

func TestTimedOutCallDoesNotMutateLater(t *testing.T) {
	var queued []func()
	f := newFixture(t, lateCaller{queued: &queued}, WithCallTimeout(time.Millisecond))

	w := f.do(http.MethodPost, "/windows", types.CreateWindowRequest{Title: "A", X: 10, Y: 10, Width: 200, Height: 150})
	require.Equal(t, http.StatusGatewayTimeout, w.Code)

	require.Len(t, queued, 1)
	queued[0]()
	assert.Equal(t, 0, f.windows.Len())
}
