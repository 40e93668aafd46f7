package web

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "swbrowse"

// Metrics collects http and tracker metrics on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInflight *prometheus.GaugeVec

	transitions     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	loading         *prometheus.GaugeVec

	mu     sync.Mutex
	starts map[string]loadStart // tracker name -> start of the current loading phase
}

type loadStart struct {
	seq uint64
	at  time.Time
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		starts:   make(map[string]loadStart),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method", "status"},
		),
		httpInflight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "inflight_requests",
				Help:      "In-flight HTTP requests",
			},
			[]string{"path"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "tracker",
				Name:      "transitions_total",
				Help:      "Total number of tracker phase transitions",
			},
			[]string{"tracker", "to"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "tracker",
				Name:      "request_duration_seconds",
				Help:      "Time from loading to a settled phase",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tracker", "outcome"},
		),
		loading: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "tracker",
				Name:      "loading",
				Help:      "1 while the tracker is in the loading phase",
			},
			[]string{"tracker"},
		),
	}
	m.registry.MustRegister(m.httpRequests, m.httpDuration, m.httpInflight, m.transitions, m.requestDuration, m.loading)
	return m
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns the prometheus exposition handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe records a tracker transition. the duration of a request is measured from its
// loading transition to the settled transition carrying the same sequence number.
func (m *Metrics) Observe(e Event) {
	m.transitions.WithLabelValues(e.Tracker, e.To).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	switch e.To {
	case "loading":
		m.starts[e.Tracker] = loadStart{seq: e.Seq, at: e.Timestamp}
		m.loading.WithLabelValues(e.Tracker).Set(1)
	case "failed", "succeeded":
		if st, ok := m.starts[e.Tracker]; ok && st.seq == e.Seq {
			m.requestDuration.WithLabelValues(e.Tracker, e.To).Observe(e.Timestamp.Sub(st.at).Seconds())
			delete(m.starts, e.Tracker)
		}
		m.loading.WithLabelValues(e.Tracker).Set(0)
	default:
		delete(m.starts, e.Tracker)
		m.loading.WithLabelValues(e.Tracker).Set(0)
	}
}

// Middleware instruments requests for prometheus.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)

		// route pattern is only known after routing
		path := routePatternOrPath(r)
		status := strconv.Itoa(sr.status)
		m.httpRequests.WithLabelValues(path, r.Method, status).Inc()
		m.httpDuration.WithLabelValues(path, r.Method, status).Observe(time.Since(start).Seconds())
	})
}

// Inflight tracks in-flight requests per route; mount it inside the router.
func (m *Metrics) Inflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := routePatternOrPath(r)
		m.httpInflight.WithLabelValues(path).Inc()
		defer m.httpInflight.WithLabelValues(path).Dec()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Flush passes through to the wrapped writer, required for streaming responses.
func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (sr *statusRecorder) Unwrap() http.ResponseWriter { return sr.ResponseWriter }

// routePatternOrPath returns the chi route pattern if available, otherwise
// falls back to URL path.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
