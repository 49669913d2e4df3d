// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Prefix string `mapstructure:"prefix"`
}

// Metrics is registered on its own registry so tests can create as many as they like.
type Metrics struct {
	reg *prometheus.Registry

	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// AllocationsTotal is labelled by bucket kind and result (ok, exhausted, failed).
	AllocationsTotal   *prometheus.CounterVec
	AllocationDuration *prometheus.HistogramVec
	CapacityAlerts     *prometheus.CounterVec

	// ValidationsTotal is labelled by validation outcome.
	ValidationsTotal *prometheus.CounterVec
	UnitsReceived    prometheus.Counter
}

func New(c Config) *Metrics {
	prefix := c.Prefix
	if prefix == "" {
		prefix = "products_manager"
	}
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		HttpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HttpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AllocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_sequence_allocations_total",
				Help: "Sequence allocations by bucket kind and result",
			},
			[]string{"kind", "result"},
		),
		AllocationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_sequence_allocation_duration_seconds",
				Help:    "Time spent waiting for and performing a sequence allocation",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"kind"},
		),
		CapacityAlerts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_sequence_capacity_alerts_total",
				Help: "Buckets that crossed the capacity alert threshold",
			},
			[]string{"kind"},
		),
		ValidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_barcode_validations_total",
				Help: "Barcode validations by outcome",
			},
			[]string{"outcome"},
		),
		UnitsReceived: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_units_received_total",
				Help: "Serialized units received",
			},
		),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HttpRequestsTotal,
		m.HttpRequestDuration,
		m.AllocationsTotal,
		m.AllocationDuration,
		m.CapacityAlerts,
		m.ValidationsTotal,
		m.UnitsReceived,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveAllocation records one allocation attempt that started at start.
func (m *Metrics) ObserveAllocation(kind, result string, start time.Time) {
	if m == nil {
		return
	}
	m.AllocationsTotal.WithLabelValues(kind, result).Inc()
	m.AllocationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveValidation(outcome string) {
	if m == nil {
		return
	}
	m.ValidationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCapacityAlert(kind string) {
	if m == nil {
		return
	}
	m.CapacityAlerts.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveUnitsReceived(n int) {
	if m == nil {
		return
	}
	m.UnitsReceived.Add(float64(n))
}

// Middleware records request counts and durations labelled with the chi route pattern,
// so path parameters such as barcodes do not explode the label space.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			path = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HttpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		m.HttpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
