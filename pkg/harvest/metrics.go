package harvest

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector exports Prometheus metrics for requests, cache lookups and
// coercion fallbacks. A nil collector records nothing. It is safe for
// concurrent use.
type MetricsCollector struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	coercionFallbacks *prometheus.CounterVec
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(registry)

	return &MetricsCollector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvest_requests_total",
				Help: "Total number of API requests made",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "harvest_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvest_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache", "kind"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvest_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache", "kind"},
		),
		coercionFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvest_coercion_fallbacks_total",
				Help: "Total number of typed values that degraded to their zero value",
			},
			[]string{"type"},
		),
	}
}

// RecordRequest records a completed request. statusCode is 0 when no
// response was received.
func (mc *MetricsCollector) RecordRequest(method string, statusCode int, duration time.Duration) {
	if mc == nil {
		return
	}

	mc.requestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	mc.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit.
func (mc *MetricsCollector) RecordCacheHit(cache, kind string) {
	if mc == nil {
		return
	}

	mc.cacheHits.WithLabelValues(cache, kind).Inc()
}

// RecordCacheMiss records a cache miss.
func (mc *MetricsCollector) RecordCacheMiss(cache, kind string) {
	if mc == nil {
		return
	}

	mc.cacheMisses.WithLabelValues(cache, kind).Inc()
}

// RecordCoercionFallback records a value that fell back to its zero value.
func (mc *MetricsCollector) RecordCoercionFallback(typ AttrType) {
	if mc == nil {
		return
	}

	mc.coercionFallbacks.WithLabelValues(string(typ)).Inc()
}
