// Package node implements the Node aggregate: the per-participant
// bundle of connections, capability states, threat beliefs, and
// interaction history that every other subsystem (trust, defense,
// detection, routing) reads and mutates. Grounded on
// symbiont-core/src/node.rs.
package node

import (
	"time"

	"github.com/trustmesh/engine/capability"
	"github.com/trustmesh/engine/collections"
	"github.com/trustmesh/engine/connection"
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/interaction"
	"github.com/trustmesh/engine/kernel"
	"github.com/trustmesh/engine/scalar"
	"github.com/trustmesh/engine/threat"
)

// Status is a node's membership standing in the network.
type Status int

const (
	Probationary Status = iota
	Member
	Established
	Hub
	Expelled
)

func (s Status) String() string {
	switch s {
	case Probationary:
		return "probationary"
	case Member:
		return "member"
	case Established:
		return "established"
	case Hub:
		return "hub"
	case Expelled:
		return "expelled"
	default:
		return "unknown"
	}
}

// DefenseState is a node's current posture with respect to threats it
// has heard about.
type DefenseState int

const (
	Normal DefenseState = iota
	Primed
	Defending
)

func (d DefenseState) String() string {
	switch d {
	case Normal:
		return "normal"
	case Primed:
		return "primed"
	case Defending:
		return "defending"
	default:
		return "unknown"
	}
}

// Flag is a boolean condition a node can be tagged with.
type Flag int

const (
	LowDiversity Flag = iota
	QualityAnomaly
	TrustVolatility
)

// Node is the aggregate entity: it exclusively owns its connections,
// capability states, threat beliefs, and history. No cross-node
// aliasing occurs anywhere in this package.
type Node struct {
	ID             ids.NodeID
	Status         Status
	Trust          scalar.Score
	TrustCap       scalar.Score
	Confidence     scalar.Score
	Priming        scalar.Score
	Connections    map[ids.NodeID]*connection.Connection
	Capabilities   map[ids.CapabilityID]*capability.State
	ThreatBeliefs  map[ids.NodeID]threat.Belief
	DefenseState   DefenseState
	Flags          collections.Set[Flag]
	History        *interaction.History
	ProbationCount uint32
	Created        time.Time
	Load           scalar.Score
}

// New creates a node fresh from NodeJoin, starting on probation with
// swift-trust base.
func New(id ids.NodeID, now time.Time) *Node {
	return &Node{
		ID:            id,
		Status:        Probationary,
		Trust:         scalar.NewScore(kernel.SwiftTrustBase),
		TrustCap:      scalar.NewScore(kernel.TrustCapNormal),
		Confidence:    scalar.Half,
		Connections:   make(map[ids.NodeID]*connection.Connection),
		Capabilities:  make(map[ids.CapabilityID]*capability.State),
		ThreatBeliefs: make(map[ids.NodeID]threat.Belief),
		DefenseState:  Normal,
		Flags:         collections.Of[Flag](),
		History:       interaction.NewHistory(),
		Created:       now,
	}
}

func (n *Node) SetFlag(f Flag)      { n.Flags.Add(f) }
func (n *Node) ClearFlag(f Flag)    { n.Flags.Remove(f) }
func (n *Node) HasFlag(f Flag) bool { return n.Flags.Contains(f) }

// AddCapability advertises c on this node with neutral starting state,
// used by scenario setup to give nodes something routing can target.
func (n *Node) AddCapability(c capability.Capability, now time.Time) {
	n.Capabilities[c.ID] = capability.NewState(c, now)
}

// getOrCreateConnection returns the existing connection to partner or
// lazily creates one.
func (n *Node) getOrCreateConnection(partner ids.NodeID, now time.Time) *connection.Connection {
	c, ok := n.Connections[partner]
	if !ok {
		c = connection.New(partner, now)
		n.Connections[partner] = c
	}
	return c
}

func (n *Node) threatLevel(partner ids.NodeID) scalar.Score {
	b, ok := n.ThreatBeliefs[partner]
	if !ok {
		return scalar.NewScore(0)
	}
	return b.Level
}

// OutgoingExchange describes one interaction this node initiated.
type OutgoingExchange struct {
	Partner     ids.NodeID
	Volume      float64
	ExchangeIn  float64
	ExchangeOut float64
	Quality     scalar.Score
	Tone        scalar.SignedScore
	Capability  *ids.CapabilityID
	Now         time.Time
}

// HandleOutgoingInteraction runs the full §4.3 outgoing path: connection
// update, history append, and probation evaluation.
func (n *Node) HandleOutgoingInteraction(ex OutgoingExchange) {
	threatLvl := n.threatLevel(ex.Partner)
	conn := n.getOrCreateConnection(ex.Partner, ex.Now)
	conn.ProcessInteraction(connection.Observation{
		Volume:      ex.Volume,
		ExchangeIn:  ex.ExchangeIn,
		ExchangeOut: ex.ExchangeOut,
		Quality:     ex.Quality,
		Tone:        ex.Tone,
		ThreatLevel: threatLvl,
		Capability:  ex.Capability,
		Now:         ex.Now,
	})

	n.History.Add(interaction.Interaction{
		Initiator:   n.ID,
		Responder:   ex.Partner,
		Volume:      ex.Volume,
		Capability:  ex.Capability,
		Quality:     ex.Quality,
		Tone:        ex.Tone,
		ExchangeIn:  ex.ExchangeIn,
		ExchangeOut: ex.ExchangeOut,
		Timestamp:   ex.Now,
	})

	if n.Status == Probationary {
		n.evaluateProbation()
	}
}

// IncomingExchange describes one interaction a peer initiated against
// this node. ExchangeIn/Out are already swapped relative to the
// initiator's observation by the caller (the network tick), matching
// the symmetric-but-swapped contract in §4.3.
type IncomingExchange struct {
	Partner     ids.NodeID
	Volume      float64
	ExchangeIn  float64
	ExchangeOut float64
	Quality     scalar.Score
	Tone        scalar.SignedScore
	Capability  *ids.CapabilityID
	Now         time.Time
}

// HandleIncomingInteraction runs the §4.3 incoming path: identical to
// outgoing except the node's own CapabilityState.RecordUsage is invoked
// directly rather than updating the connection's per-capability map.
// Unlike the outgoing path, this never touches probation_count — §4.3
// only advances probation on interactions this node initiated.
func (n *Node) HandleIncomingInteraction(ex IncomingExchange) {
	threatLvl := n.threatLevel(ex.Partner)
	conn := n.getOrCreateConnection(ex.Partner, ex.Now)
	conn.ProcessInteraction(connection.Observation{
		Volume:      ex.Volume,
		ExchangeIn:  ex.ExchangeIn,
		ExchangeOut: ex.ExchangeOut,
		Quality:     ex.Quality,
		Tone:        ex.Tone,
		ThreatLevel: threatLvl,
		Now:         ex.Now,
	})

	if ex.Capability != nil {
		if cs, ok := n.Capabilities[*ex.Capability]; ok {
			cs.RecordUsage(ex.Quality, ex.Now)
		}
	}

	n.History.Add(interaction.Interaction{
		Initiator:   ex.Partner,
		Responder:   n.ID,
		Volume:      ex.Volume,
		Capability:  ex.Capability,
		Quality:     ex.Quality,
		Tone:        ex.Tone,
		ExchangeIn:  ex.ExchangeIn,
		ExchangeOut: ex.ExchangeOut,
		Timestamp:   ex.Now,
	})
}

// evaluateProbation implements the probation-count promotion/demotion
// rule. The failure path is an intentional no-op beyond the trust
// haircut: this repo carries forward the original's own unresolved
// expulsion TODO (see DESIGN.md) rather than inventing an expulsion
// rule the spec never pins down.
func (n *Node) evaluateProbation() {
	n.ProbationCount++
	if n.ProbationCount < kernel.ProbationCount {
		return
	}

	meanQ := n.History.MeanQuality(int(kernel.ProbationCount))
	if meanQ.Value() >= kernel.ProbationThreshold {
		n.Status = Member
		promoted := 1.5 * n.Trust.Value()
		if promoted > kernel.ProbationPromoteCap {
			promoted = kernel.ProbationPromoteCap
		}
		n.Trust = scalar.NewScore(promoted)
	} else {
		n.Trust = scalar.NewScore(0.8 * n.Trust.Value())
	}
	n.ProbationCount = 0
}

// DecayPriming applies the per-tick defense-priming decay.
func (n *Node) DecayPriming() {
	n.Priming = scalar.NewScore(n.Priming.Value() * kernel.PrimingDecay)
}

// DecayIdleConnections applies passive weight decay to idle
// connections and removes any connection whose weight has decayed to
// W_MIN.
func (n *Node) DecayIdleConnections(now time.Time) {
	for partner, c := range n.Connections {
		if !c.IsIdle(now, kernel.IdleThreshold) {
			continue
		}
		c.ApplyDecay(1.0)
		if c.W.Value() <= scalar.WMin {
			delete(n.Connections, partner)
		}
	}
}

// CheckDiversity applies the §4.4 diversity-flag and trust-cap rule
// given a freshly computed diversity ratio.
func (n *Node) CheckDiversity(diversity float64) {
	if diversity < kernel.DiversityThreshold {
		n.SetFlag(LowDiversity)
		n.TrustCap = scalar.NewScore(kernel.TrustCapLowDiversity)
	} else {
		n.ClearFlag(LowDiversity)
		n.TrustCap = scalar.NewScore(kernel.TrustCapNormal)
	}
}
