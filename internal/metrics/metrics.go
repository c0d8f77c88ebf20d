package metrics

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsodoma4050/business-intelligence/internal/upstream"
)

// UpstreamRequests counts upstream calls by endpoint and outcome.
var UpstreamRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dashboard_upstream_requests_total",
		Help: "Total number of requests made to the upstream financial data API",
	},
	[]string{"endpoint", "outcome"},
)

// UpstreamLatency records upstream call latency per endpoint.
var UpstreamLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "dashboard_upstream_request_duration_seconds",
		Help:    "Latency in seconds of upstream API requests",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// HTTPRequests counts inbound requests by route and status code.
var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "Total number of inbound HTTP requests",
	},
	[]string{"route", "status"},
)

func init() {
	prometheus.MustRegister(UpstreamRequests, UpstreamLatency, HTTPRequests)
}

// ObserveUpstream is an upstream.Observer that records call metrics.
func ObserveUpstream(_ context.Context, c upstream.Call) {
	UpstreamRequests.WithLabelValues(c.Endpoint, c.Outcome()).Inc()
	UpstreamLatency.WithLabelValues(c.Endpoint).Observe(c.Duration.Seconds())
}

func ObserveHTTP(route string, status int) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
