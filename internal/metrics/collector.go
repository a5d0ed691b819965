// Package metrics records report and HTTP counters for Prometheus scraping.
package metrics

import (
	"net/http"
	"time"
)

// Collector is implemented by PrometheusCollector and NopCollector.
type Collector interface {
	// ObserveReport records one report request. outcome is "ok" or an
	// error code such as "schema_error".
	ObserveReport(format, outcome string, rows int, d time.Duration)
	ObserveHTTP(method, route string, status int)
	// Handler serves the exposition endpoint.
	Handler() http.Handler
}

type NopCollector struct{}

func (NopCollector) ObserveReport(string, string, int, time.Duration) {}
func (NopCollector) ObserveHTTP(string, string, int)                  {}

func (NopCollector) Handler() http.Handler {
	return http.NotFoundHandler()
}
