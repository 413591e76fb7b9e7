// Package connection implements the Physarum-inspired reinforcement
// rule that drives a per-peer connection weight from observed
// interaction quality, reciprocity, and tone. Grounded on
// symbiont-core/src/connection.rs.
package connection

import (
	"math"
	"time"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/kernel"
	"github.com/trustmesh/engine/scalar"
)

// Connection is the per-peer relationship state a node keeps for one
// partner.
type Connection struct {
	PartnerID       ids.NodeID
	W               scalar.Weight
	R               float64 // reciprocity, unbounded in practice [-3,3]
	Q               scalar.Score
	PerCapabilityQ  map[ids.CapabilityID]scalar.Score
	Tau             scalar.SignedScore
	Pi              scalar.Score // this connection's own priming, distinct from the node's
	LastActive      time.Time
	Count           uint32
}

// New creates a lazily-instantiated connection to partner with
// neutral starting state.
func New(partner ids.NodeID, now time.Time) *Connection {
	return &Connection{
		PartnerID:      partner,
		W:              scalar.NewWeight(scalar.WInit),
		Q:              scalar.Half,
		PerCapabilityQ: make(map[ids.CapabilityID]scalar.Score),
		LastActive:     now,
	}
}

// Observation is the set of values a single interaction contributes to
// a connection update.
type Observation struct {
	Volume      float64
	ExchangeIn  float64
	ExchangeOut float64
	Quality     scalar.Score
	Tone        scalar.SignedScore
	ThreatLevel scalar.Score
	Capability  *ids.CapabilityID
	Now         time.Time
}

// updateReciprocity folds a log-ratio exchange observation, biased by
// quality, into the running reciprocity EMA.
func (c *Connection) updateReciprocity(o Observation) {
	logRatio := kernel.ExchangeRatioLog(o.ExchangeIn, o.ExchangeOut)
	biased := logRatio + kernel.Theta*(o.Quality.Value()-0.5)
	c.R = kernel.EMA(c.R, biased, kernel.Lambda)
}

func (c *Connection) updateQuality(o Observation) {
	c.Q = scalar.NewScore(kernel.EMA(c.Q.Value(), o.Quality.Value(), kernel.Lambda))
	if o.Capability == nil {
		return
	}
	current, ok := c.PerCapabilityQ[*o.Capability]
	if !ok {
		current = c.Q // fall back to global q on lookup miss
	}
	c.PerCapabilityQ[*o.Capability] = scalar.NewScore(kernel.EMA(current.Value(), o.Quality.Value(), kernel.Lambda))
}

func (c *Connection) updateTone(o Observation) {
	c.Tau = scalar.NewSignedScore(kernel.EMA(c.Tau.Value(), o.Tone.Value(), kernel.Lambda))
}

// reinforcement computes Phi = gamma * |volume|^mu * sigma(r) *
// psi(q) * phi(tau).
func (c *Connection) reinforcement(volume float64) float64 {
	sigma := kernel.ReciprocitySigmoid(c.R)
	psi := kernel.QualityMultiplier(c.Q.Value())
	phi := kernel.ToneMultiplier(c.Tau.Value())
	return kernel.Gamma * math.Pow(math.Abs(volume), kernel.Mu) * sigma * psi * phi
}

func (c *Connection) updateWeight(o Observation, dt float64) {
	reinforce := c.reinforcement(o.Volume)
	delta := dt * (reinforce - kernel.Alpha*c.W.Value() - kernel.Delta*o.ThreatLevel.Value())
	c.W = scalar.NewWeight(c.W.Value() + delta)
}

// ProcessInteraction runs the full Physarum update for one observed
// interaction: reciprocity, quality, tone, then weight, in that order,
// followed by the count/last-active bookkeeping. dt is 1.0 per
// interaction.
func (c *Connection) ProcessInteraction(o Observation) {
	c.updateReciprocity(o)
	c.updateQuality(o)
	c.updateTone(o)
	c.updateWeight(o, 1.0)
	c.Count++
	c.LastActive = o.Now
}

// IsIdle reports whether the connection has seen no activity since
// before now-threshold.
func (c *Connection) IsIdle(now time.Time, threshold time.Duration) bool {
	return now.Sub(c.LastActive) > threshold
}

// ApplyDecay applies passive weight decay for an idle connection:
// w -= alpha*w*dt. Active connections are untouched here — decay via
// interaction already happened in ProcessInteraction.
func (c *Connection) ApplyDecay(dt float64) {
	c.W = scalar.NewWeight(c.W.Value() - kernel.Alpha*c.W.Value()*dt)
}

// IncreasePriming raises this connection's own priming signal, capped
// at 1.
func (c *Connection) IncreasePriming(amount float64) {
	c.Pi = scalar.NewScore(c.Pi.Value() + amount)
}

// DecayPriming applies the per-tick priming decay factor.
func (c *Connection) DecayPriming(factor float64) {
	c.Pi = scalar.NewScore(c.Pi.Value() * factor)
}
