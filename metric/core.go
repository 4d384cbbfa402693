// Package metric provides Prometheus-backed observability for the engine:
// resolution outcomes, extraction throughput, and graph computation timings.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all engine-level metrics (not caller-specific)
type Metrics struct {
	// Resolution metrics
	ResolutionsTotal  *prometheus.CounterVec
	CollisionWarnings prometheus.Counter

	// Extraction metrics
	MentionsExtracted  *prometheus.CounterVec
	SegmentsSkipped    prometheus.Counter
	UnresolvedMentions prometheus.Counter

	// Graph metrics
	GraphBuildDuration *prometheus.HistogramVec
	GraphNodes         prometheus.Histogram
	GraphEdges         prometheus.Histogram
	MergeDuration      prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with all engine metrics
func NewMetrics() *Metrics {
	return &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "graphhansard",
				Subsystem: "resolver",
				Name:      "resolutions_total",
				Help:      "Total number of alias resolutions by method",
			},
			[]string{"method"},
		),

		CollisionWarnings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "graphhansard",
				Subsystem: "resolver",
				Name:      "collision_warnings_total",
				Help:      "Total number of resolutions that returned a collision warning",
			},
		),

		MentionsExtracted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "graphhansard",
				Subsystem: "extractor",
				Name:      "mentions_total",
				Help:      "Total number of mention records emitted by resolution method",
			},
			[]string{"method"},
		),

		SegmentsSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "graphhansard",
				Subsystem: "extractor",
				Name:      "segments_skipped_total",
				Help:      "Total number of malformed transcript segments skipped",
			},
		),

		UnresolvedMentions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "graphhansard",
				Subsystem: "extractor",
				Name:      "unresolved_mentions_total",
				Help:      "Total number of mentions logged for human review",
			},
		),

		GraphBuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "graphhansard",
				Subsystem: "graph",
				Name:      "build_duration_seconds",
				Help:      "Session graph build duration by stage",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),

		GraphNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "graphhansard",
				Subsystem: "graph",
				Name:      "nodes",
				Help:      "Node count of built session graphs",
				Buckets:   []float64{1, 5, 10, 20, 40, 60, 100},
			},
		),

		GraphEdges: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "graphhansard",
				Subsystem: "graph",
				Name:      "edges",
				Help:      "Edge count of built session graphs",
				Buckets:   []float64{1, 10, 25, 50, 100, 250, 500},
			},
		),

		MergeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "graphhansard",
				Subsystem: "graph",
				Name:      "merge_duration_seconds",
				Help:      "Cumulative graph merge duration",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// collectors returns every core metric for bulk registration
func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ResolutionsTotal,
		m.CollisionWarnings,
		m.MentionsExtracted,
		m.SegmentsSkipped,
		m.UnresolvedMentions,
		m.GraphBuildDuration,
		m.GraphNodes,
		m.GraphEdges,
		m.MergeDuration,
	}
}
