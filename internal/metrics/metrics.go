// Package metrics exposes Prometheus counters for the caches, the upstream
// API and the HTTP server.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/tmdb"
)

// Upstream call outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
	OutcomeUnconfigured = "unconfigured"
)

// Collector holds all Prometheus metrics for the service. Each Collector
// has its own registry, so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	CacheHits        *prometheus.CounterVec
	CacheMisses      *prometheus.CounterVec
	CacheEvictions   *prometheus.CounterVec
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// NewCollector creates a collector with metrics under namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of fresh cache hits",
			},
			[]string{"resource"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses, including expired entries",
			},
			[]string{"resource"},
		),
		CacheEvictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_evictions_total",
				Help:      "Total number of entries removed by expiry or capacity",
			},
			[]string{"resource", "reason"},
		),
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of TMDB API calls",
			},
			[]string{"resource", "outcome"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "TMDB API call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"resource"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	c.registry.MustRegister(
		c.CacheHits,
		c.CacheMisses,
		c.CacheEvictions,
		c.UpstreamRequests,
		c.UpstreamDuration,
		c.HTTPRequests,
		c.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// CacheHit records a fresh hit.
func (c *Collector) CacheHit(resource string) {
	c.CacheHits.WithLabelValues(resource).Inc()
}

// CacheMiss records a miss.
func (c *Collector) CacheMiss(resource string) {
	c.CacheMisses.WithLabelValues(resource).Inc()
}

// CacheEvicted records an expired or capacity-evicted entry.
func (c *Collector) CacheEvicted(resource string, reason cache.EvictReason) {
	c.CacheEvictions.WithLabelValues(resource, string(reason)).Inc()
}

// UpstreamCall records one TMDB call and its latency. A call that never
// left because no API key is set counts under OutcomeUnconfigured and has
// no latency.
func (c *Collector) UpstreamCall(resource string, err error, elapsed time.Duration) {
	outcome := Outcome(err)
	c.UpstreamRequests.WithLabelValues(resource, outcome).Inc()
	if outcome != OutcomeUnconfigured {
		c.UpstreamDuration.WithLabelValues(resource).Observe(elapsed.Seconds())
	}
}

// RecordHTTP records one served HTTP request.
func (c *Collector) RecordHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Outcome classifies an upstream result for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, tmdb.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, tmdb.ErrAPIKeyNotSet):
		return OutcomeUnconfigured
	default:
		return OutcomeError
	}
}
