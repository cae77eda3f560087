// Package metrics provides Prometheus collectors for the argus tracker.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Feed labels for the feed size gauge.
const (
	FeedGlobal = "global"
	FeedPlayer = "player"
)

// Manager owns the tracker collectors and the registry they live on.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	passes       *prometheus.CounterVec
	newActions   prometheus.Counter
	passDuration prometheus.Histogram
	feedEntries  *prometheus.GaugeVec
	resets       *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the latency histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers the collectors on registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates the collectors on a private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "argus",
		subsystem:        "tracker",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.passes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "passes_total",
		Help:      "Total number of tracker passes by outcome",
	}, []string{"outcome"})

	m.newActions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "new_actions_total",
		Help:      "Total number of actions admitted past deduplication",
	})

	m.passDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pass_duration_seconds",
		Help:      "Wall time of one tracker pass including the fetch",
		Buckets:   m.histogramBuckets,
	})

	m.feedEntries = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_entries",
		Help:      "Current number of entries per feed",
	}, []string{"feed"})

	m.resets = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resets_total",
		Help:      "Tracker state resets by reason",
	}, []string{"reason"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// ObservePass records one finished pass.
func (m *Manager) ObservePass(outcome string, newActions int, duration time.Duration) {
	m.passes.WithLabelValues(outcome).Inc()
	if newActions > 0 {
		m.newActions.Add(float64(newActions))
	}
	m.passDuration.Observe(duration.Seconds())
}

// SetFeedSizes updates the feed size gauges.
func (m *Manager) SetFeedSizes(global, player int) {
	m.feedEntries.WithLabelValues(FeedGlobal).Set(float64(global))
	m.feedEntries.WithLabelValues(FeedPlayer).Set(float64(player))
}

// RecordReset counts a state reset.
func (m *Manager) RecordReset(reason string) {
	m.resets.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records one served request.
func (m *Manager) RecordHTTPRequest(endpoint, method string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// Registry returns the registry the collectors are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
