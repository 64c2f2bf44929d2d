package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics for function invocations. A nil
// collector records nothing.
type Collector struct {
	registry *prometheus.Registry

	Invocations        *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	BackendFailures    *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry so several
// instances can coexist in tests.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	invocations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "function_invocations_total",
			Help:      "Total number of function invocations by outcome status",
		},
		[]string{"function", "status"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "function_duration_seconds",
			Help:      "Function invocation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"function"},
	)

	backendFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_failures_total",
			Help:      "Total number of failed identity or storage backend calls",
		},
		[]string{"backend", "status"},
	)

	registry.MustRegister(invocations, duration, backendFailures)

	return &Collector{
		registry:           registry,
		Invocations:        invocations,
		InvocationDuration: duration,
		BackendFailures:    backendFailures,
	}
}

// ObserveInvocation records one function invocation.
func (c *Collector) ObserveInvocation(function string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Invocations.WithLabelValues(function, strconv.Itoa(status)).Inc()
	c.InvocationDuration.WithLabelValues(function).Observe(elapsed.Seconds())
}

// ObserveBackendFailure records a failed backend call.
func (c *Collector) ObserveBackendFailure(backend string, status int) {
	if c == nil {
		return
	}
	c.BackendFailures.WithLabelValues(backend, strconv.Itoa(status)).Inc()
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
