// Package metric provides Prometheus metrics for TransGate.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//
// Metrics include:
//
//   - Activation counters by outcome
//   - Active session gauge
//   - Sweep removal counters
//   - Request latency histograms
//   - Upstream request counters by status
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
