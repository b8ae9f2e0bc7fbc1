package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordOperation(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordOperation("set", OutcomeOK)
	m.RecordOperation("set", OutcomeOK)
	m.RecordOperation("get", OutcomeNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations().WithLabelValues("set", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations().WithLabelValues("get", OutcomeNotFound)))
}

func TestMetrics_DegradedLoadsAndGauge(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordDegradedLoad("invalid JSON")
	m.SetSecretCount(4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DegradedLoads().WithLabelValues("invalid JSON")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.secrets))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordOperation("set", OutcomeOK)
		m.RecordDegradedLoad("x")
		m.SetSecretCount(1)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "m.prom")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordOperation("delete", OutcomeNoop)

	path := filepath.Join(t.TempDir(), "mkv.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mkv_operations_total{outcome="noop",verb="delete"} 1`)
	assert.Contains(t, string(data), "# HELP mkv_secrets")
}

func TestMetrics_WriteTextfileFailure(t *testing.T) {
	t.Parallel()

	m := New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "mkv.prom"))
	assert.Error(t, err)
}
