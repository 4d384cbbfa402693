package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caribdigital/graphhansard/errors"
)

func TestNewMetricsRegistryRegistersCoreMetrics(t *testing.T) {
	registry := NewMetricsRegistry()
	require.NotNil(t, registry.CoreMetrics())

	// Core metrics are live: incrementing must not panic and must surface
	// through the prometheus registry
	registry.Metrics.ResolutionsTotal.WithLabelValues("exact").Inc()
	registry.Metrics.SegmentsSkipped.Inc()

	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["graphhansard_resolver_resolutions_total"])
	assert.True(t, names["graphhansard_extractor_segments_skipped_total"])
}

func TestRegisterCounterRejectsDuplicates(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessions_processed_total",
		Help: "test counter",
	})
	require.NoError(t, registry.RegisterCounter("runner", "sessions_processed_total", counter))

	other := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessions_processed_total",
		Help: "test counter",
	})
	err := registry.RegisterCounter("runner", "sessions_processed_total", other)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestUnregister(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "active_sessions",
		Help: "test gauge",
	})
	require.NoError(t, registry.RegisterGauge("runner", "active_sessions", gauge))

	assert.True(t, registry.Unregister("runner", "active_sessions"))
	assert.False(t, registry.Unregister("runner", "active_sessions"))

	// Re-registration after unregister succeeds
	require.NoError(t, registry.RegisterGauge("runner", "active_sessions", gauge))
}
