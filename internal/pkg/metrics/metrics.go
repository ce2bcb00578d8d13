// Package metrics exposes Prometheus metrics for completion scoring and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Completion sources
const (
	SourceRead      = "read"
	SourcePreview   = "preview"
	SourceRefresh   = "refresh"
	SourcePublish   = "publish"
	SourceRecompute = "recompute"
)

// Publish outcomes
const (
	PublishAccepted = "accepted"
	PublishRejected = "rejected"
)

// Manager owns every collector. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace   string
	buckets     []float64
	registry    *prometheus.Registry
	withRuntime bool

	completionComputed   *prometheus.CounterVec
	sectionContributes   *prometheus.CounterVec
	completionPercentage prometheus.Histogram
	publishAttempts      *prometheus.CounterVec
	httpRequests         *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry registers collectors on an existing registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// WithHTTPBuckets overrides the request duration buckets.
func WithHTTPBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(m *Manager) { m.withRuntime = true }
}

// NewManager creates a Manager on a private registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "scoutline",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	if m.withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)

	m.completionComputed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "completion_computed_total",
		Help:      "Completion computations by caller",
	}, []string{"source"})

	m.sectionContributes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "completion_section_contributes_total",
		Help:      "Computations in which a section earned its points",
	}, []string{"section"})

	m.completionPercentage = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "completion_percentage",
		Help:      "Distribution of computed completion percentages",
		Buckets:   prometheus.LinearBuckets(40, 10, 7),
	})

	m.publishAttempts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "publish_attempts_total",
		Help:      "Profile publish attempts by outcome",
	}, []string{"outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status",
	}, []string{"method", "route", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   m.buckets,
	}, []string{"method", "route"})

	return m
}

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveCompletion records one computation and the sections that contributed.
func (m *Manager) ObserveCompletion(source string, percentage int, contributing []string) {
	if m == nil {
		return
	}
	m.completionComputed.WithLabelValues(source).Inc()
	m.completionPercentage.Observe(float64(percentage))
	for _, section := range contributing {
		m.sectionContributes.WithLabelValues(section).Inc()
	}
}

// ObservePublish records a publish attempt.
func (m *Manager) ObservePublish(outcome string) {
	if m == nil {
		return
	}
	m.publishAttempts.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records a finished request. route is the matched pattern, never the raw path.
func (m *Manager) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
