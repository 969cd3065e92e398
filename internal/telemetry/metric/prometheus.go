// Package metric provides Prometheus metrics for TransGate.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "transgate"

// Registry holds all application metrics backed by a dedicated
// Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	activationsTotal *prometheus.CounterVec
	sessionsActive   prometheus.Gauge
	sweepRemoved     prometheus.Counter

	requestDuration *prometheus.HistogramVec
	upstreamTotal   *prometheus.CounterVec
}

// NewRegistry creates a metrics registry with all application metrics
// registered, plus the standard Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.activationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "activations_total",
		Help:      "Token activation attempts by outcome",
	}, []string{"outcome"})

	r.sessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "active",
		Help:      "Number of sessions currently in the registry",
	})

	r.sweepRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "sweep_removed_total",
		Help:      "Expired sessions removed by sweeps",
	})

	r.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method, route, and status",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	r.upstreamTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Requests forwarded to the translation upstream by status",
	}, []string{"status"})

	r.registry.MustRegister(
		r.activationsTotal,
		r.sessionsActive,
		r.sweepRemoved,
		r.requestDuration,
		r.upstreamTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// RecordActivation records an activation attempt with its outcome label.
func (r *Registry) RecordActivation(outcome string) {
	r.activationsTotal.WithLabelValues(outcome).Inc()
}

// SetActiveSessions records the current registry size.
func (r *Registry) SetActiveSessions(n int) {
	r.sessionsActive.Set(float64(n))
}

// RecordSweep records the number of sessions removed by a sweep.
func (r *Registry) RecordSweep(removed int) {
	r.sweepRemoved.Add(float64(removed))
}

// ObserveRequest records the latency of a handled HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordUpstreamRequest records a forwarded translation request.
func (r *Registry) RecordUpstreamRequest(status int) {
	r.upstreamTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
