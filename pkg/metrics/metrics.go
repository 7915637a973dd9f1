package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec

	// Gateway metrics
	GatewayOperations *prometheus.CounterVec
	GatewayLatency    *prometheus.HistogramVec

	// Event publishing metrics
	EventsPublished *prometheus.CounterVec
	EventsConsumed  *prometheus.CounterVec
}

// New creates and registers all application metrics on reg
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		RequestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		GatewayOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "operations_total",
			Help:      "Total number of gateway operations by outcome status",
		}, []string{"resource", "operation", "status"}),
		GatewayLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "operation_duration_seconds",
			Help:      "Duration of gateway operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"resource", "operation"}),

		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of change events handed to the publisher",
		}, []string{"type", "status"}),
		EventsConsumed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "consumed_total",
			Help:      "Total number of change events handled by the consumer",
		}, []string{"type", "status"}),
	}
}

// ObserveGateway records one gateway call. A nil receiver is a no-op.
func (m *Metrics) ObserveGateway(resource, operation string, status int, started time.Time) {
	if m == nil {
		return
	}
	m.GatewayOperations.WithLabelValues(resource, operation, strconv.Itoa(status)).Inc()
	m.GatewayLatency.WithLabelValues(resource, operation).Observe(time.Since(started).Seconds())
}

// ObserveEvent records one publish attempt. A nil receiver is a no-op.
func (m *Metrics) ObserveEvent(eventType string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, status).Inc()
}

// ObserveRequest records one HTTP request. A nil receiver is a no-op.
func (m *Metrics) ObserveRequest(method, path string, status int, started time.Time) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.RequestDuration.WithLabelValues(method, path, code).Observe(time.Since(started).Seconds())
	m.RequestTotal.WithLabelValues(method, path, code).Inc()
}

// ObserveConsumed records one handled event. A nil receiver is a no-op.
func (m *Metrics) ObserveConsumed(eventType string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.EventsConsumed.WithLabelValues(eventType, status).Inc()
}
