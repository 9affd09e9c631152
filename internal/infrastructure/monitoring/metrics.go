package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Desktop metrics
	IntentsTotal     *prometheus.CounterVec
	WindowsOpen      prometheus.Gauge
	WindowsMinimized prometheus.Gauge
	WindowsOpened    prometheus.Counter
	Notifications    prometheus.Gauge

	// Pointer metrics
	PointerListeners    prometheus.Gauge
	PointerInteractions *prometheus.CounterVec

	// Scene metrics
	ComposeDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values for the JSON API
type Snapshot struct {
	TotalRequests     int64            `json:"total_requests"`
	TotalErrors       int64            `json:"total_errors"`
	AvgDurationMs     float64          `json:"avg_duration_ms"`
	OpenWindows       int64            `json:"open_windows"`
	ActiveConnections int64            `json:"active_connections"`
	PointerListeners  int64            `json:"pointer_listeners"`
	Intents           map[string]int64 `json:"intents"`
	UptimeSeconds     float64          `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a collector backed by its own registry, with the Go
// runtime and process collectors attached
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

// New creates a metrics collector registering into reg
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),
		snapshot:  Snapshot{Intents: make(map[string]int64)},

		// HTTP metrics
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skydesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skydesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skydesk_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skydesk_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Desktop metrics
		IntentsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skydesk_intents_total",
				Help: "Total number of dispatched intents",
			},
			[]string{"kind", "changed"},
		),
		WindowsOpen: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "skydesk_windows_open",
				Help: "Number of registered windows",
			},
		),
		WindowsMinimized: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "skydesk_windows_minimized",
				Help: "Number of minimized windows",
			},
		),
		WindowsOpened: f.NewCounter(
			prometheus.CounterOpts{
				Name: "skydesk_windows_opened_total",
				Help: "Total number of windows opened",
			},
		),
		Notifications: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "skydesk_notifications",
				Help: "Number of pending notifications",
			},
		),

		// Pointer metrics
		PointerListeners: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "skydesk_pointer_listeners",
				Help: "Number of attached pointer listeners across all devices",
			},
		),
		PointerInteractions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skydesk_pointer_interactions_total",
				Help: "Total number of drag and resize interactions started",
			},
			[]string{"region"},
		),

		// Scene metrics
		ComposeDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skydesk_scene_duration_seconds",
				Help:    "Time spent composing and encoding scenes",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"stage"},
		),

		// WebSocket metrics
		WSConnections: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "skydesk_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skydesk_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	f.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "skydesk_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry the metrics live in
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// Observe implements desktop.Observer
func (m *Metrics) Observe(in desktop.Intent, before, after desktop.State) {
	changed := after.Version != before.Version
	label := "false"
	if changed {
		label = "true"
	}
	m.IntentsTotal.WithLabelValues(string(in.Kind()), label).Inc()

	if !changed {
		return
	}
	if in.Kind() == desktop.KindOpen {
		m.WindowsOpened.Inc()
	}
	stats := after.Stats()
	m.WindowsOpen.Set(float64(stats.TotalWindows))
	m.WindowsMinimized.Set(float64(stats.MinimizedWindows))
	m.Notifications.Set(float64(len(after.Notifications)))

	m.mu.Lock()
	m.snapshot.Intents[string(in.Kind())]++
	m.snapshot.OpenWindows = int64(stats.TotalWindows)
	m.mu.Unlock()
}

// AddPointerListeners adjusts the attached listener gauge by delta
func (m *Metrics) AddPointerListeners(delta int) {
	m.PointerListeners.Add(float64(delta))
	m.mu.Lock()
	m.snapshot.PointerListeners += int64(delta)
	m.mu.Unlock()
}

// RecordInteraction counts a drag or resize that started
func (m *Metrics) RecordInteraction(region string) {
	m.PointerInteractions.WithLabelValues(region).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns current values for the JSON API
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.Intents = make(map[string]int64, len(m.snapshot.Intents))
	for k, v := range m.snapshot.Intents {
		s.Intents[k] = v
	}
	if s.TotalRequests > 0 {
		s.AvgDurationMs = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
