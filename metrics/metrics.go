// Package metrics holds the Prometheus collectors for the fetch aggregator.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ytagg"

// Metrics groups every collector the aggregator reports to. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	CacheHits        *prometheus.CounterVec
	CacheMisses      *prometheus.CounterVec
	ExternalCalls    *prometheus.CounterVec
	FetchFailures    *prometheus.CounterVec
	ResolverBatches  prometheus.Histogram
	PipelineDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. Pass nil to get
// unregistered collectors, which is what tests usually want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Aggregate results served from cache, by resource kind.",
			},
			[]string{"kind"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Aggregate results not found in cache or expired, by resource kind.",
			},
			[]string{"kind"},
		),
		ExternalCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "external_calls_total",
				Help:      "Requests sent to the upstream API, by endpoint.",
			},
			[]string{"endpoint"},
		),
		FetchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_failures_total",
				Help:      "Failed fetches, by resource kind and failure kind.",
			},
			[]string{"kind", "failure"},
		),
		ResolverBatches: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolver_batches",
				Help:      "Secondary lookup calls issued per resolution.",
				Buckets:   []float64{0, 1, 2, 3, 5, 10},
			},
		),
		PipelineDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pipeline_duration_seconds",
				Help:      "Wall time of an uncached aggregate operation, by resource kind.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.CacheHits,
			m.CacheMisses,
			m.ExternalCalls,
			m.FetchFailures,
			m.ResolverBatches,
			m.PipelineDuration,
		)
	}
	return m
}

func (m *Metrics) CacheHit(kind string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(kind).Inc()
}

func (m *Metrics) CacheMiss(kind string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(kind).Inc()
}

func (m *Metrics) ExternalCall(endpoint string) {
	if m == nil {
		return
	}
	m.ExternalCalls.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) FetchFailure(kind, failure string) {
	if m == nil {
		return
	}
	m.FetchFailures.WithLabelValues(kind, failure).Inc()
}

func (m *Metrics) ObserveBatches(n int) {
	if m == nil {
		return
	}
	m.ResolverBatches.Observe(float64(n))
}

// ObservePipeline records the time elapsed since start for kind
func (m *Metrics) ObservePipeline(kind string, start time.Time) {
	if m == nil {
		return
	}
	m.PipelineDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// Handler serves the metrics gathered by g in the Prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
