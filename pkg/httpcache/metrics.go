package httpcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LookupHits tracks lookups that returned a cached response.
	LookupHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "httpcache_lookup_hits_total",
			Help: "Total number of cache lookups that found a usable response",
		},
	)

	// LookupMisses tracks lookups that found no usable response, including
	// degraded hits where the entity body was gone.
	LookupMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "httpcache_lookup_misses_total",
			Help: "Total number of cache lookups that found no usable response",
		},
	)

	// Writes tracks stored responses.
	Writes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "httpcache_writes_total",
			Help: "Total number of responses written to the cache",
		},
	)

	// Invalidations tracks invalidated cache keys.
	Invalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "httpcache_invalidations_total",
			Help: "Total number of cache keys marked stale",
		},
	)

	// Purges tracks purged cache keys.
	Purges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "httpcache_purges_total",
			Help: "Total number of cache keys purged",
		},
	)

	// LockContention tracks lock attempts that found the lock already held.
	LockContention = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "httpcache_lock_contention_total",
			Help: "Total number of lock acquisitions that lost to an existing holder",
		},
	)

	// BackendErrors tracks backend I/O failures by operation.
	BackendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpcache_backend_errors_total",
			Help: "Total number of backend storage errors",
		},
		[]string{"operation"},
	)
)
