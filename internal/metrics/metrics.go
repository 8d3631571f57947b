package metrics

import (
	"net/http"
	"strconv"
	"time"

	domainRack "datacenter-inventory/internal/domain/rack"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dcim"

// Recorder owns the service collectors and the registry they live in
type Recorder struct {
	registry *prometheus.Registry

	rackUsedUnits    *prometheus.GaugeVec
	rackUsagePercent *prometheus.GaugeVec
	rackDevices      *prometheus.GaugeVec
	operations       *prometheus.CounterVec
	failures         *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewRecorder registers every collector on a fresh registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		rackUsedUnits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rack",
			Name:      "used_units",
			Help:      "Number of occupied units in a rack.",
		}, []string{"rack", "datacenter", "room"}),

		rackUsagePercent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rack",
			Name:      "usage_percent",
			Help:      "Rack usage percentage, floored.",
		}, []string{"rack", "datacenter", "room"}),

		rackDevices: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rack",
			Name:      "devices",
			Help:      "Number of devices mounted in a rack.",
		}, []string{"rack", "datacenter", "room"}),

		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "placement",
			Name:      "operations_total",
			Help:      "Committed placement operations grouped by operation.",
		}, []string{"operation"}),

		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "placement",
			Name:      "failures_total",
			Help:      "Rejected placement operations grouped by operation and error code.",
		}, []string{"operation", "code"}),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests grouped by method, route and status.",
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.rackUsedUnits,
		r.rackUsagePercent,
		r.rackDevices,
		r.operations,
		r.failures,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

// ObserveRack refreshes the occupancy gauges of one rack
func (r *Recorder) ObserveRack(rack *domainRack.Rack) {
	if r == nil || rack == nil {
		return
	}
	stats := rack.Statistics()
	labels := prometheus.Labels{
		"rack":       rack.ID,
		"datacenter": rack.Location.DataCenterID,
		"room":       rack.Location.RoomID,
	}
	r.rackUsedUnits.With(labels).Set(float64(stats.UsedUnits))
	r.rackUsagePercent.With(labels).Set(float64(stats.UsagePercent))
	r.rackDevices.With(labels).Set(float64(stats.DeviceCount))
}

func (r *Recorder) OperationSucceeded(operation string) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(operation).Inc()
}

func (r *Recorder) OperationFailed(operation, code string) {
	if r == nil {
		return
	}
	r.failures.WithLabelValues(operation, code).Inc()
}

func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
