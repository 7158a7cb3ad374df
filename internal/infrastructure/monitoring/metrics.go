package monitoring

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gonum.org/v1/gonum/stat"
)

// latencyWindow is how many recent request latencies feed the percentiles
const latencyWindow = 1024

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Desktop metrics
	DesktopsActive  prometheus.Gauge
	DesktopsCreated prometheus.Counter
	DesktopsEvicted prometheus.Counter

	// Window metrics
	WindowsOpen     prometheus.Gauge
	WindowCommands  *prometheus.CounterVec
	PresetsRejected prometheus.Counter

	// Modal metrics
	ModalsActive prometheus.Gauge
	ModalOpens   prometheus.Counter

	// Gesture metrics
	GesturesStarted *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	gatherer prometheus.Gatherer

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot
	mu       sync.RWMutex

	// Recent latencies in milliseconds, a ring of latencyWindow entries
	latencies   []float64
	latencyNext int
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests  int64   `json:"total_requests"`
	TotalErrors    int64   `json:"total_errors"`
	ActiveDesktops int64   `json:"active_desktops"`
	OpenWindows    int64   `json:"open_windows"`
	WSConnections  int64   `json:"ws_connections"`
	AvgLatencyMS   float64 `json:"avg_latency_ms"`
	P50LatencyMS   float64 `json:"p50_latency_ms"`
	P95LatencyMS   float64 `json:"p95_latency_ms"`
	P99LatencyMS   float64 `json:"p99_latency_ms"`
	UptimeSeconds  float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a collector registered with the default Prometheus registry
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewMetricsWithRegistry creates a collector on a dedicated registry.
// Tests use this to avoid duplicate registration.
func NewMetricsWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		gatherer:  gatherer,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "overlay_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "overlay_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		// Desktop metrics
		DesktopsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "overlay_desktops_active",
				Help: "Number of live desktops",
			},
		),
		DesktopsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "overlay_desktops_created_total",
				Help: "Total number of desktops created",
			},
		),
		DesktopsEvicted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "overlay_desktops_evicted_total",
				Help: "Total number of desktops evicted after idling",
			},
		),

		// Window metrics
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "overlay_windows_open",
				Help: "Number of open windows across all desktops",
			},
		),
		WindowCommands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "overlay_window_commands_total",
				Help: "Total number of window registry commands",
			},
			[]string{"command"},
		),
		PresetsRejected: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "overlay_presets_rejected_total",
				Help: "Preset opens rejected because cards were disabled",
			},
		),

		// Modal metrics
		ModalsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "overlay_modals_active",
				Help: "Number of desktops with an active global modal",
			},
		),
		ModalOpens: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "overlay_modal_opens_total",
				Help: "Total number of global modal activations",
			},
		),

		// Gesture metrics
		GesturesStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "overlay_gestures_started_total",
				Help: "Total number of drag and resize gestures started",
			},
			[]string{"kind"},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "overlay_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "overlay_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "overlay_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// Handler returns the Prometheus exposition handler for this collector's registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	ms := float64(duration) / float64(time.Millisecond)
	if len(m.latencies) < latencyWindow {
		m.latencies = append(m.latencies, ms)
	} else {
		m.latencies[m.latencyNext] = ms
		m.latencyNext = (m.latencyNext + 1) % latencyWindow
	}
	m.mu.Unlock()
}

// SetDesktopsActive sets the number of live desktops
func (m *Metrics) SetDesktopsActive(count int) {
	m.DesktopsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveDesktops = int64(count)
	m.mu.Unlock()
}

// IncDesktopsCreated increments the desktops created counter
func (m *Metrics) IncDesktopsCreated() {
	m.DesktopsCreated.Inc()
}

// AddDesktopsEvicted adds to the evicted desktops counter
func (m *Metrics) AddDesktopsEvicted(count int) {
	m.DesktopsEvicted.Add(float64(count))
}

// AddWindowsOpen adjusts the open window gauge by delta
func (m *Metrics) AddWindowsOpen(delta int) {
	m.WindowsOpen.Add(float64(delta))
	m.mu.Lock()
	m.snapshot.OpenWindows += int64(delta)
	m.mu.Unlock()
}

// RecordWindowCommand counts one registry command
func (m *Metrics) RecordWindowCommand(command string) {
	m.WindowCommands.WithLabelValues(command).Inc()
}

// IncPresetsRejected counts a preset open blocked by the modal gate
func (m *Metrics) IncPresetsRejected() {
	m.PresetsRejected.Inc()
}

// AddModalsActive adjusts the active modal gauge by delta
func (m *Metrics) AddModalsActive(delta int) {
	m.ModalsActive.Add(float64(delta))
}

// IncModalOpens counts a modal activation
func (m *Metrics) IncModalOpens() {
	m.ModalOpens.Inc()
}

// RecordGesture counts a started gesture
func (m *Metrics) RecordGesture(kind string) {
	m.GesturesStarted.WithLabelValues(kind).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.WSConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.WSConnections--
	m.mu.Unlock()
}

// Snapshot returns current values for the JSON metrics endpoint
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	if snap.TotalRequests > 0 {
		snap.AvgLatencyMS = snap.totalDuration / float64(snap.TotalRequests) * 1000
	}
	if len(m.latencies) > 0 {
		sorted := append([]float64(nil), m.latencies...)
		sort.Float64s(sorted)
		snap.P50LatencyMS = stat.Quantile(0.50, stat.Empirical, sorted, nil)
		snap.P95LatencyMS = stat.Quantile(0.95, stat.Empirical, sorted, nil)
		snap.P99LatencyMS = stat.Quantile(0.99, stat.Empirical, sorted, nil)
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
