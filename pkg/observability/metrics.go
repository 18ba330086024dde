package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Extraction method labels
const (
	MethodExternal = "external"
	MethodRules    = "rules"
)

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	ThoughtsCreated prometheus.Counter
	TasksCreated    prometheus.Counter

	// Extraction metrics
	Extractions        *prometheus.CounterVec
	ExtractedTasks     *prometheus.CounterVec
	ExternalFailures   *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec

	// Storage metrics
	StorageOperations *prometheus.CounterVec
}

// NewMetrics creates a collector with its own registry under the given namespace
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ThoughtsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "thoughts_created_total",
			Help:      "Total number of thoughts created",
		}),
		TasksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_created_total",
			Help:      "Total number of tasks persisted",
		}),
		Extractions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extractions_total",
				Help:      "Task extractions by the method that produced the result",
			},
			[]string{"method"},
		),
		ExtractedTasks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extracted_tasks_total",
				Help:      "Task drafts produced by extraction",
			},
			[]string{"method"},
		),
		ExternalFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "external_extraction_failures_total",
				Help:      "Remote extraction attempts that fell back to rules",
			},
			[]string{"reason"},
		),
		ExtractionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "extraction_duration_seconds",
				Help:      "Extraction duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		StorageOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_operations_total",
				Help:      "Persistence operations by entity and outcome",
			},
			[]string{"operation", "entity", "status"},
		),
	}

	registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.ThoughtsCreated,
		m.TasksCreated,
		m.Extractions,
		m.ExtractedTasks,
		m.ExternalFailures,
		m.ExtractionDuration,
		m.StorageOperations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the exposition handler for this collector
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one served request
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordExtraction records which method produced an extraction result
func (m *Metrics) RecordExtraction(method string, tasks int, duration time.Duration) {
	if m == nil {
		return
	}
	m.Extractions.WithLabelValues(method).Inc()
	m.ExtractedTasks.WithLabelValues(method).Add(float64(tasks))
	m.ExtractionDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordExternalFailure records a remote extraction that did not produce tasks
func (m *Metrics) RecordExternalFailure(reason string) {
	if m == nil {
		return
	}
	m.ExternalFailures.WithLabelValues(reason).Inc()
}

// RecordStorageOperation records a repository call
func (m *Metrics) RecordStorageOperation(operation, entity string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.StorageOperations.WithLabelValues(operation, entity, status).Inc()
}

// RecordThoughtCreated counts a stored thought
func (m *Metrics) RecordThoughtCreated() {
	if m == nil {
		return
	}
	m.ThoughtsCreated.Inc()
}

// RecordTasksCreated counts stored tasks
func (m *Metrics) RecordTasksCreated(n int) {
	if m == nil {
		return
	}
	m.TasksCreated.Add(float64(n))
}
