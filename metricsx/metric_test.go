package metricsx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/scalar"
	"github.com/trustmesh/engine/wrappers"
)

func TestCounterUnregisteredWorks(t *testing.T) {
	c := NewCounter("x", "x", nil, nil)
	c.Inc()
	c.Add(2)
	require.Equal(t, 3.0, c.Read())
}

func TestGaugeUnregisteredWorks(t *testing.T) {
	g := NewGauge("x", "x", nil, nil)
	g.Set(5)
	g.Add(-1)
	require.Equal(t, 4.0, g.Read())
}

func TestAveragerUnregisteredWorks(t *testing.T) {
	a := NewAverager("x", "x", nil, nil)
	require.Equal(t, 0.0, a.Read())
	a.Observe(1)
	a.Observe(3)
	require.Equal(t, 2.0, a.Read())
}

func TestCollectorRecordsInteractionsAndDetections(t *testing.T) {
	c := NewCollector(nil)
	c.OnInteraction(ids.NodeIDFromIndex(1), ids.NodeIDFromIndex(2), scalar.Score(0.8))
	c.OnInteraction(ids.NodeIDFromIndex(1), ids.NodeIDFromIndex(3), scalar.Score(0.6))
	require.Equal(t, 2.0, c.InteractionVolume.Read())
	require.InDelta(t, 0.7, c.InteractionQuality.Read(), 1e-9)

	c.RecordDetection("sybil")
	c.RecordDetection("sybil")
	c.RecordDetection("collusion")
	require.Equal(t, 2.0, c.Detections["sybil"].Read())
	require.Equal(t, 1.0, c.Detections["collusion"].Read())

	c.RecordTick()
	require.Equal(t, 1.0, c.Ticks.Read())

	c.RecordTrustSnapshot(0.55, 0.1, 3, 1)
	require.Equal(t, 0.55, c.TrustMean.Read())
	require.Equal(t, 3.0, c.HighTrustCount.Read())
	require.NoError(t, c.Errs())
}

func TestErrsAccumulates(t *testing.T) {
	var e wrappers.Errs
	require.False(t, e.Errored())
	e.Add(nil)
	require.False(t, e.Errored())
	e.Add(errors.New("first"))
	e.Add(errors.New("second"))
	require.True(t, e.Errored())
	require.EqualError(t, e.Err(), "first; second")
}
