package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Consistency manager metrics
	ScoreMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfhandicap_score_mutations_total",
		Help: "The total number of committed score mutations by operation",
	}, []string{"op"})
	HandicapRecomputesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golfhandicap_handicap_recomputes_total",
		Help: "The total number of handicap recomputations written back to the player",
	})
	HandicapRecomputeFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golfhandicap_handicap_recompute_failures_total",
		Help: "The total number of recomputations abandoned after the retry budget ran out",
	})
	HandicapRecomputeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "golfhandicap_handicap_recompute_latency_seconds",
		Help:    "Latency of the fetch, compute, persist and cache refresh cycle",
		Buckets: prometheus.DefBuckets,
	})
	StoreRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfhandicap_store_retries_total",
		Help: "The total number of retried store or cache calls by operation",
	}, []string{"op"})

	// Cache metrics
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfhandicap_cache_lookups_total",
		Help: "Player cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golfhandicap_http_requests_total",
		Help: "HTTP requests by method, route template and status code",
	}, []string{"method", "route", "status"})
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "golfhandicap_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route template",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
