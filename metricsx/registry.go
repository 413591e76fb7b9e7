package metricsx

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/scalar"
	"github.com/trustmesh/engine/wrappers"
)

// Collector is the simulation's metrics surface: a tick counter, an
// interaction counter and an averager over interaction quality, gauges
// for the last observed network trust mean, std-dev and high/low trust
// counts, and a counter per detected threat type.
// It is deliberately decoupled from package network (no import either
// way) — the caller wires Collector.OnInteraction into
// network.Network.OnInteraction and calls RecordTick/RecordTrustSnapshot
// itself once per Step, so network never needs to know metricsx
// exists.
type Collector struct {
	Ticks             Counter
	InteractionVolume Counter
	InteractionQuality Averager
	TrustMean         Gauge
	TrustStdDev       Gauge
	HighTrustCount    Gauge
	LowTrustCount     Gauge
	Detections        map[string]Counter

	reg  prometheus.Registerer
	errs *wrappers.Errs
}

// NewCollector builds a Collector registering every metric against reg.
// reg may be nil, in which case every metric runs unregistered
// in-memory (useful for tests that don't care about Prometheus export).
func NewCollector(reg prometheus.Registerer) *Collector {
	errs := &wrappers.Errs{}
	return &Collector{
		Ticks:              NewCounter("trustmesh_ticks_total", "simulation ticks processed", reg, errs),
		InteractionVolume:  NewCounter("trustmesh_interactions_total", "interactions applied", reg, errs),
		InteractionQuality: NewAverager("trustmesh_interaction_quality", "interaction quality score", reg, errs),
		TrustMean:          NewGauge("trustmesh_trust_mean", "network-wide mean trust", reg, errs),
		TrustStdDev:        NewGauge("trustmesh_trust_stddev", "network-wide trust standard deviation", reg, errs),
		HighTrustCount:     NewGauge("trustmesh_trust_high_count", "nodes with trust > 0.7", reg, errs),
		LowTrustCount:      NewGauge("trustmesh_trust_low_count", "nodes with trust < 0.3", reg, errs),
		Detections:         make(map[string]Counter),
		reg:                reg,
		errs:               errs,
	}
}

// Errs returns the accumulated registration errors, if any.
func (c *Collector) Errs() error {
	return c.errs.Err()
}

// OnInteraction matches network.InteractionObserver's signature without
// importing package network; pass it directly as net.OnInteraction.
func (c *Collector) OnInteraction(_, _ ids.NodeID, quality scalar.Score) {
	c.InteractionVolume.Inc()
	c.InteractionQuality.Observe(float64(quality))
}

// RecordTick should be called once per network.Step.
func (c *Collector) RecordTick() {
	c.Ticks.Inc()
}

// RecordTrustSnapshot pushes the aggregate trust statistics computed
// for the most recent tick.
func (c *Collector) RecordTrustSnapshot(mean, stdDev float64, high, low int) {
	c.TrustMean.Set(mean)
	c.TrustStdDev.Set(stdDev)
	c.HighTrustCount.Set(float64(high))
	c.LowTrustCount.Set(float64(low))
}

// RecordDetection increments the counter for threatType, creating it
// lazily on first use since the detector set isn't known up front.
func (c *Collector) RecordDetection(threatType string) {
	ctr, ok := c.Detections[threatType]
	if !ok {
		ctr = NewCounter("trustmesh_detections_"+threatType+"_total", "detections of type "+threatType, c.reg, c.errs)
		c.Detections[threatType] = ctr
	}
	ctr.Inc()
}
