package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counts(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveTask("nextjs", "generate_nextjs_app", "success")
	m.ObserveTask("nextjs", "generate_nextjs_app", "success")
	m.ObserveArtifact("vue", "static")
	m.ObserveGeneration("unavailable", 20*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.tasks.WithLabelValues("nextjs", "generate_nextjs_app", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.artifacts.WithLabelValues("vue", "static")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.generation))
}

func TestMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := MustNew(reg)
	second := MustNew(reg)

	first.ObserveArtifact("react", "template")
	second.ObserveArtifact("react", "template")
	assert.InDelta(t, 2, testutil.ToFloat64(second.artifacts.WithLabelValues("react", "template")), 0)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTask("a", "b", "c")
		m.ObserveArtifact("a", "b")
		m.ObserveGeneration("success", time.Second)
	})
}
