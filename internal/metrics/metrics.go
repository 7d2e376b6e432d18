// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FetchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_fetch_requests_total",
			Help: "fetch-products requests by outcome.",
		},
		[]string{"outcome"},
	)

	Recommendations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_recommendations_total",
			Help: "Suggested prices by strategy and result.",
		},
		[]string{"strategy", "result"},
	)

	Upserts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_product_upserts_total",
			Help: "Stored product writes by outcome.",
		},
		[]string{"outcome"},
	)

	OutboundLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pricing_outbound_request_seconds",
			Help:    "Latency of calls to external APIs.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"api", "status"},
	)
)

func init() {
	prometheus.MustRegister(FetchRequests, Recommendations, Upserts, OutboundLatency)
}
