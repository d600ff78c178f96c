// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cinephile"

var (
	// CacheRequestsTotal tracks cache-aside lookups.
	// Labels:
	//   - key_kind: feed, video, trending
	//   - result: hit, miss, error
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Total number of cache lookups",
		},
		[]string{"key_kind", "result"},
	)

	// StoreQueriesTotal tracks document store operations.
	// Labels:
	//   - operation: get, list, write
	//   - collection: videos, users, history, favorites
	StoreQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_queries_total",
			Help:      "Total number of document store operations",
		},
		[]string{"operation", "collection"},
	)

	// HTTPRequestsTotal tracks served requests by route pattern and
	// status class.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)
)

// Cache result constants.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Cache key kind constants.
const (
	KeyKindFeed     = "feed"
	KeyKindVideo    = "video"
	KeyKindTrending = "trending"
)

// Store operation constants.
const (
	QueryGet   = "get"
	QueryList  = "list"
	QueryWrite = "write"
)
