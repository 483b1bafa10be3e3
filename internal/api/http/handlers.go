package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/wm"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/utils"
)

// DefaultCallTimeout bounds how long a request waits for the loop.
const DefaultCallTimeout = 2 * time.Second

var errWindowNotFound = errors.New("window not found")

// Caller runs fn on the desktop loop and waits for it.
type Caller interface {
	Call(ctx context.Context, fn func()) error
}

// SnapshotSource reports counters for the JSON metrics endpoint.
type SnapshotSource interface {
	GetSnapshot() monitoring.Snapshot
}

// pngWriter is implemented by surfaces that can be captured.
type pngWriter interface {
	WritePNG(w io.Writer) error
}

// Handlers contains all HTTP handlers. Every read or write of desktop
// state happens inside a loop call.
type Handlers struct {
	loop    Caller
	desktop *desktop.Desktop
	windows *wm.Manager
	sink    input.Sink
	session id.SessionID
	metrics SnapshotSource
	logger  *zap.Logger
	timeout time.Duration
}

// Option configures Handlers.
type Option func(*Handlers)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Handlers) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithSnapshots exposes metric counters at GET /stats.
func WithSnapshots(s SnapshotSource) Option {
	return func(h *Handlers) { h.metrics = s }
}

// WithSession reports s from the health endpoint.
func WithSession(s id.SessionID) Option {
	return func(h *Handlers) { h.session = s }
}

// WithCallTimeout overrides DefaultCallTimeout.
func WithCallTimeout(d time.Duration) Option {
	return func(h *Handlers) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHandlers creates a new handler set
func NewHandlers(loop Caller, d *desktop.Desktop, sink input.Sink, opts ...Option) *Handlers {
	h := &Handlers{
		loop:    loop,
		desktop: d,
		windows: d.WindowManager(),
		sink:    sink,
		logger:  zap.NewNop(),
		timeout: DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.Named("api")
	return h
}

// Register mounts the routes on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/stats", h.Stats)
	r.GET("/screenshot", h.Screenshot)

	r.GET("/windows", h.ListWindows)
	r.POST("/windows", h.CreateWindow)
	r.GET("/windows/:id", h.GetWindow)
	r.PATCH("/windows/:id", h.UpdateWindow)
	r.DELETE("/windows/:id", h.DestroyWindow)
	r.POST("/windows/:id/focus", h.FocusWindow)

	r.POST("/input", h.Input)
}

// call runs fn on the loop and writes an error response on failure.
func (h *Handlers) call(c *gin.Context, fn func()) bool {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	// A closure still queued when the request gives up must not mutate
	// the desktop behind a 504.
	err := h.loop.Call(ctx, func() {
		if ctx.Err() != nil {
			return
		}
		fn()
	})
	switch {
	case err == nil:
		return true
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "desktop loop timed out"})
	default:
		h.logger.Warn("loop call failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "desktop is not running"})
	}
	_ = c.Error(err)
	return false
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "desktop",
		"session": h.session.String(),
	})
}

// Health reports whether the frame loop is running
func (h *Handlers) Health(c *gin.Context) {
	var health types.Health
	if !h.call(c, func() {
		health = types.Health{
			Status:  "healthy",
			Session: h.session.String(),
			Running: h.desktop.Running(),
			Windows: h.windows.Len(),
			Frames:  h.desktop.Frames(),
		}
	}) {
		return
	}
	if !health.Running {
		health.Status = "stopped"
	}
	c.JSON(http.StatusOK, health)
}

// Stats returns metric counters
func (h *Handlers) Stats(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.GetSnapshot())
}

// Screenshot encodes the current frame as PNG when the surface supports it
func (h *Handlers) Screenshot(c *gin.Context) {
	capture, ok := h.desktop.Surface().(pngWriter)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "surface cannot be captured"})
		return
	}

	var (
		buf bytes.Buffer
		err error
	)
	if !h.call(c, func() { err = capture.WritePNG(&buf) }) {
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// ListWindows lists windows bottom to top
func (h *Handlers) ListWindows(c *gin.Context) {
	var list types.WindowList
	if !h.call(c, func() {
		list.Windows = make([]types.WindowInfo, 0, h.windows.Len())
		for z, w := range h.windows.Windows() {
			list.Windows = append(list.Windows, describe(w, z))
		}
		if focused, ok := h.windows.FocusedWindowID(); ok {
			v := int(focused)
			list.Focused = &v
		}
	}) {
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetWindow returns one window
func (h *Handlers) GetWindow(c *gin.Context) {
	windowID, ok := parseID(c)
	if !ok {
		return
	}

	var (
		info  types.WindowInfo
		found bool
	)
	if !h.call(c, func() { info, found = h.lookup(windowID) }) {
		return
	}
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, info)
}

// CreateWindow creates a focused window on top of the stack
func (h *Handlers) CreateWindow(c *gin.Context) {
	var req types.CreateWindowRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validateCreate(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var info types.WindowInfo
	if !h.call(c, func() {
		windowID, _ := h.windows.CreateWindow(req.Title, req.X, req.Y, req.Width, req.Height)
		info, _ = h.lookup(windowID)
	}) {
		return
	}
	c.JSON(http.StatusCreated, info)
}

// UpdateWindow moves, resizes, renames or hides a window
func (h *Handlers) UpdateWindow(c *gin.Context) {
	windowID, ok := parseID(c)
	if !ok {
		return
	}
	var req types.UpdateWindowRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validateUpdate(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		info  types.WindowInfo
		found bool
	)
	if !h.call(c, func() {
		w, exists := h.windows.Window(windowID)
		if !exists {
			return
		}
		applyUpdate(w, req)
		info, found = h.lookup(windowID)
	}) {
		return
	}
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, info)
}

// DestroyWindow removes a window
func (h *Handlers) DestroyWindow(c *gin.Context) {
	windowID, ok := parseID(c)
	if !ok {
		return
	}

	var destroyed bool
	if !h.call(c, func() { destroyed = h.windows.DestroyWindow(windowID) }) {
		return
	}
	if !destroyed {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"window_id": int(windowID),
	})
}

// FocusWindow raises and focuses a window
func (h *Handlers) FocusWindow(c *gin.Context) {
	windowID, ok := parseID(c)
	if !ok {
		return
	}

	var (
		info    types.WindowInfo
		focused bool
	)
	if !h.call(c, func() {
		if focused = h.windows.FocusWindow(windowID); focused {
			info, _ = h.lookup(windowID)
		}
	}) {
		return
	}
	if !focused {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Input injects one input event, as a WebSocket client would
func (h *Handlers) Input(c *gin.Context) {
	var msg types.InputMessage
	if !bindJSON(c, &msg) {
		return
	}
	if err := msg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg.Type == types.InputPing {
		c.JSON(http.StatusOK, gin.H{"type": "pong"})
		return
	}

	if !h.call(c, func() { ws.Inject(h.sink, msg) }) {
		return
	}
	c.Status(http.StatusNoContent)
}

// lookup must run on the loop.
func (h *Handlers) lookup(windowID wm.ID) (types.WindowInfo, bool) {
	for z, w := range h.windows.Windows() {
		if w.ID() == windowID {
			return describe(w, z), true
		}
	}
	return types.WindowInfo{}, false
}

func describe(w *wm.Window, z int) types.WindowInfo {
	x, y := w.Position()
	width, height := w.Size()
	return types.WindowInfo{
		ID:       int(w.ID()),
		Title:    w.Title(),
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		Visible:  w.Visible(),
		Focused:  w.IsFocused(),
		Dragging: w.Dragging(),
		Z:        z,
	}
}

func applyUpdate(w *wm.Window, req types.UpdateWindowRequest) {
	if req.Title != nil {
		w.SetTitle(*req.Title)
	}
	if req.X != nil || req.Y != nil {
		x, y := w.Position()
		if req.X != nil {
			x = *req.X
		}
		if req.Y != nil {
			y = *req.Y
		}
		w.SetPosition(x, y)
	}
	if req.Width != nil || req.Height != nil {
		width, height := w.Size()
		if req.Width != nil {
			width = *req.Width
		}
		if req.Height != nil {
			height = *req.Height
		}
		w.SetSize(width, height)
	}
	if req.Visible != nil {
		w.SetVisible(*req.Visible)
	}
}

func parseID(c *gin.Context) (wm.ID, bool) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "window id must be a positive integer"})
		return 0, false
	}
	return wm.ID(n), true
}

func bindJSON(c *gin.Context, v any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxJSONSize)
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": errWindowNotFound.Error()})
}

func validateCreate(req types.CreateWindowRequest) error {
	if err := utils.ValidateTitle(req.Title); err != nil {
		return err
	}
	if err := utils.ValidatePosition(req.X, req.Y); err != nil {
		return err
	}
	return utils.ValidateDimensions(req.Width, req.Height)
}

func validateUpdate(req types.UpdateWindowRequest) error {
	if req.Title != nil {
		if err := utils.ValidateTitle(*req.Title); err != nil {
			return err
		}
	}
	x, y := 0, 0
	if req.X != nil {
		x = *req.X
	}
	if req.Y != nil {
		y = *req.Y
	}
	if err := utils.ValidatePosition(x, y); err != nil {
		return err
	}
	if req.Width != nil || req.Height != nil {
		width, height := 1, 1
		if req.Width != nil {
			width = *req.Width
		}
		if req.Height != nil {
			height = *req.Height
		}
		return utils.ValidateDimensions(width, height)
	}
	return nil
}
