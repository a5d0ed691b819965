package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pnov"

type PrometheusCollector struct {
	registry *prometheus.Registry

	reports        *prometheus.CounterVec
	rows           prometheus.Counter
	reportDuration *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
}

// NewPrometheusCollector registers all metrics on a private registry
// together with the Go runtime and process collectors.
func NewPrometheusCollector() (*PrometheusCollector, error) {
	registry := prometheus.NewRegistry()

	reports := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Report requests by output format and outcome.",
		},
		[]string{"format", "outcome"},
	)
	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_rows_total",
		Help:      "Missort rows aggregated into successful reports.",
	})
	reportDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent parsing and building a report.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"format"},
	)
	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	cs := []prometheus.Collector{
		reports, rows, reportDuration, httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}

	return &PrometheusCollector{
		registry:       registry,
		reports:        reports,
		rows:           rows,
		reportDuration: reportDuration,
		httpRequests:   httpRequests,
	}, nil
}

func (c *PrometheusCollector) ObserveReport(format, outcome string, rows int, d time.Duration) {
	c.reports.WithLabelValues(format, outcome).Inc()
	c.reportDuration.WithLabelValues(format).Observe(d.Seconds())
	if outcome == "ok" {
		c.rows.Add(float64(rows))
	}
}

func (c *PrometheusCollector) ObserveHTTP(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (c *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}
