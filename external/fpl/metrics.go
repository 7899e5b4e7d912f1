package fpl

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_upstream_requests_total",
			Help: "Upstream FPL API requests by outcome",
		},
		[]string{"outcome"}, // ok, status_4xx, status_5xx, network, rejected
	)

	upstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fpl_upstream_request_duration_seconds",
			Help:    "Latency of single upstream FPL API attempts",
			Buckets: prometheus.DefBuckets,
		},
	)

	breakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fpl_upstream_circuit_open",
			Help: "1 while the upstream circuit breaker is open or half-open",
		},
	)
)
