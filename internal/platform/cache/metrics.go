package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"backend"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_misses_total",
			Help: "Total number of cache misses, including reads degraded by errors",
		},
		[]string{"backend"},
	)

	cacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fpl_cache_errors_total",
			Help: "Total number of cache operation failures",
		},
		[]string{"backend", "operation"}, // get, set, delete, exists, flush, decode, encode
	)
)
