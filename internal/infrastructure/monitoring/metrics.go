package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Window metrics
	WindowsActive    prometheus.Gauge
	WindowsCreated   prometheus.Counter
	WindowsDestroyed prometheus.Counter
	FocusChanges     prometheus.Counter

	// Event metrics
	EventsDispatched *prometheus.CounterVec
	ListenerFaults   *prometheus.CounterVec

	// Frame metrics
	FramesRendered prometheus.Counter
	FrameDuration  prometheus.Histogram
	FramesFailed   prometheus.Counter
	TicksSkipped   prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// Snapshot for JSON API - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON API
type Snapshot struct {
	WindowsActive  int64 `json:"windows_active"`
	WindowsCreated int64 `json:"windows_created"`
	FramesRendered int64 `json:"frames_rendered"`
	FramesFailed   int64 `json:"frames_failed"`
	ListenerFaults int64 `json:"listener_faults"`
}

// NewMetrics registers the desktop metrics with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		WindowsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_windows_active",
				Help: "Number of live windows",
			},
		),
		WindowsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_windows_created_total",
				Help: "Total number of windows created",
			},
		),
		WindowsDestroyed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_windows_destroyed_total",
				Help: "Total number of windows destroyed",
			},
		),
		FocusChanges: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_focus_changes_total",
				Help: "Total number of focus transfers",
			},
		),

		EventsDispatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_events_dispatched_total",
				Help: "Window events dispatched, by type",
			},
			[]string{"type"},
		),
		ListenerFaults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_listener_faults_total",
				Help: "Window listeners that returned an error or panicked, by event type",
			},
			[]string{"type"},
		),

		FramesRendered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_frames_rendered_total",
				Help: "Total number of frames rendered",
			},
		),
		FrameDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "desktop_frame_render_seconds",
				Help:    "Time spent rendering one frame",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .016, .033, .05, .1},
			},
		),
		FramesFailed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_frames_failed_total",
				Help: "Frames dropped because rendering panicked",
			},
		),
		TicksSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_ticks_skipped_total",
				Help: "Frame callbacks that arrived before the frame period elapsed",
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_ws_connections",
				Help: "Number of active WebSocket input connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_ws_messages_total",
				Help: "Total number of WebSocket input messages",
			},
			[]string{"type"},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// WindowCreated records a new window
func (m *Metrics) WindowCreated(active int) {
	m.WindowsCreated.Inc()
	m.WindowsActive.Set(float64(active))

	m.mu.Lock()
	m.snapshot.WindowsCreated++
	m.snapshot.WindowsActive = int64(active)
	m.mu.Unlock()
}

// WindowDestroyed records a destroyed window
func (m *Metrics) WindowDestroyed(active int) {
	m.WindowsDestroyed.Inc()
	m.WindowsActive.Set(float64(active))

	m.mu.Lock()
	m.snapshot.WindowsActive = int64(active)
	m.mu.Unlock()
}

// FocusChanged records a focus transfer
func (m *Metrics) FocusChanged() {
	m.FocusChanges.Inc()
}

// EventDispatched records one window event dispatch
func (m *Metrics) EventDispatched(eventType string) {
	m.EventsDispatched.WithLabelValues(eventType).Inc()
}

// ListenerFault records a listener that failed during dispatch
func (m *Metrics) ListenerFault(eventType string) {
	m.ListenerFaults.WithLabelValues(eventType).Inc()

	m.mu.Lock()
	m.snapshot.ListenerFaults++
	m.mu.Unlock()
}

// FrameRendered records one rendered frame
func (m *Metrics) FrameRendered(duration time.Duration) {
	m.FramesRendered.Inc()
	m.FrameDuration.Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.FramesRendered++
	m.mu.Unlock()
}

// FrameFailed records a frame dropped by a fault
func (m *Metrics) FrameFailed() {
	m.FramesFailed.Inc()

	m.mu.Lock()
	m.snapshot.FramesFailed++
	m.mu.Unlock()
}

// TickSkipped records a frame callback that did not render
func (m *Metrics) TickSkipped() {
	m.TicksSkipped.Inc()
}

// RecordWSMessage records a WebSocket input message
func (m *Metrics) RecordWSMessage(msgType string) {
	m.WSMessages.WithLabelValues(msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// GetSnapshot returns the current snapshot values
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
