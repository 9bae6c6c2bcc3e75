// Package metrics exposes Prometheus instrumentation for the application pipeline.
//
// All methods are safe to call on a nil *Metrics, so components can take an
// optional metrics dependency without branching.
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

const namespace = "candidature"

// Outcome labels for processed applications.
const (
	OutcomeSent     = "sent"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics holds the collectors registered for the service.
type Metrics struct {
	registry *prometheus.Registry

	applications     *prometheus.CounterVec
	filesReceived    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	cleanupFailures  prometheus.Counter
	sweptFiles       prometheus.Counter
	httpDuration     *prometheus.HistogramVec
}

// New creates a Metrics instance with its own registry, including Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		applications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "applications_total",
				Help:      "Total number of application submissions by outcome",
			},
			[]string{"outcome"},
		),
		filesReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_received_total",
				Help:      "Total number of uploaded files stored by role",
			},
			[]string{"role"},
		),
		dispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dispatch_duration_seconds",
				Help:      "Duration of notification email dispatch in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		cleanupFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleanup_failures_total",
				Help:      "Total number of temporary files that could not be deleted",
			},
		),
		sweptFiles: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "swept_files_total",
				Help:      "Total number of stale uploads removed by the janitor",
			},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Handler returns the Prometheus exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ApplicationProcessed counts a finished submission.
func (m *Metrics) ApplicationProcessed(outcome string) {
	if m == nil {
		return
	}
	m.applications.WithLabelValues(outcome).Inc()
}

// FileReceived counts a stored upload.
func (m *Metrics) FileReceived(role string) {
	if m == nil {
		return
	}
	m.filesReceived.WithLabelValues(role).Inc()
}

// ObserveDispatch records how long a dispatch took and whether it succeeded.
func (m *Metrics) ObserveDispatch(d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSent
	if err != nil {
		outcome = OutcomeFailed
	}
	m.dispatchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// CleanupFailed counts a temporary file that could not be removed.
func (m *Metrics) CleanupFailed() {
	if m == nil {
		return
	}
	m.cleanupFailures.Inc()
}

// FilesSwept counts stale uploads removed by the janitor.
func (m *Metrics) FilesSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sweptFiles.Add(float64(n))
}

// ObserveHTTP records an HTTP request duration.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
