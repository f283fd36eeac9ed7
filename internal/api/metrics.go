package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// Metrics holds the Prometheus collectors of one server. Each server owns its registry so
// several servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	computations *prometheus.CounterVec
	defaulted    *prometheus.CounterVec
	surcharged   *prometheus.CounterVec
	taxAmount    *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors under namespace
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "hitungpajak"
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "route"},
		),
		computations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "computations_total",
				Help:      "Tax computations by calculator and result kind",
			},
			[]string{"calculator", "kind"},
		),
		defaulted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "defaulted_lookups_total",
				Help:      "Computations that fell back to a default rate for an unknown category",
			},
			[]string{"calculator"},
		),
		surcharged: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "npwp_surcharges_total",
				Help:      "Computations that applied the no-NPWP surcharge",
			},
			[]string{"calculator"},
		),
		taxAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tax_amount_rupiah",
				Help:      "Computed tax in rupiah",
				Buckets:   prometheus.ExponentialBuckets(10_000, 10, 7),
			},
			[]string{"calculator"},
		),
	}
}

// ObserveComputation records one engine result
func (m *Metrics) ObserveComputation(calculator string, res domain.ComputationResult) {
	m.computations.WithLabelValues(calculator, string(res.Kind)).Inc()
	if len(res.Defaulted) > 0 {
		m.defaulted.WithLabelValues(calculator).Inc()
	}
	if res.Surcharged {
		m.surcharged.WithLabelValues(calculator).Inc()
	}
	tax, _ := res.Tax.Float64()
	m.taxAmount.WithLabelValues(calculator).Observe(tax)
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware returns an HTTP middleware that records request metrics by route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
