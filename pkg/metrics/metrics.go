// Package metrics provides Prometheus metrics for the oracle script and its host tooling.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ResponsesTotal counts output entries by symbol and response code.
	ResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "script_responses_total",
			Help: "Total number of symbol responses produced, by response code",
		},
		[]string{"symbol", "code"},
	)

	// ReportsTotal counts raw validator reports seen during execution.
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "script_reports_total",
			Help: "Total number of raw validator reports processed, by outcome",
		},
		[]string{"data_source", "outcome"},
	)

	// ExecuteDuration is a histogram of execute phase durations.
	ExecuteDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "script_execute_duration_seconds",
			Help:    "Duration of the execute phase",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	// DataSourceFetchesTotal counts data source report fetches.
	DataSourceFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datasource_fetches_total",
			Help: "Total number of data source report fetches",
		},
		[]string{"data_source", "status"},
	)

	// DataSourceFetchDuration is a histogram of data source fetch latencies.
	DataSourceFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datasource_fetch_duration_seconds",
			Help:    "Data source fetch latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"data_source"},
	)

	// HTTPRequestsTotal is a counter of total HTTP requests.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"endpoint", "status"},
	)

	// HTTPRequestDuration is a histogram of HTTP request latencies.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5, 10},
		},
		[]string{"endpoint"},
	)
)

// Init registers all metrics with the default registry.
func Init() {
	prometheus.MustRegister(
		ResponsesTotal,
		ReportsTotal,
		ExecuteDuration,
		DataSourceFetchesTotal,
		DataSourceFetchDuration,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// ServeHTTP serves Prometheus metrics on the specified address and path.
func ServeHTTP(addr, path string) error {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}

// RecordResponse records one output entry.
func RecordResponse(symbol, code string) {
	ResponsesTotal.WithLabelValues(symbol, code).Inc()
}

// RecordReport records a raw report as accepted or dropped.
func RecordReport(dataSource string, accepted bool) {
	outcome := "accepted"
	if !accepted {
		outcome = "dropped"
	}
	ReportsTotal.WithLabelValues(dataSource, outcome).Inc()
}

// RecordExecute records an execute phase.
func RecordExecute(duration time.Duration) {
	ExecuteDuration.Observe(duration.Seconds())
}

// RecordDataSourceFetch records a data source fetch.
func RecordDataSourceFetch(dataSource string, ok bool, duration time.Duration) {
	status := "ok"
	if !ok {
		status = "error"
	}
	DataSourceFetchesTotal.WithLabelValues(dataSource, status).Inc()
	DataSourceFetchDuration.WithLabelValues(dataSource).Observe(duration.Seconds())
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
