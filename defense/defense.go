// Package defense implements the signal-propagation protocol nodes use
// to warn each other about suspected adversaries: Bayesian belief
// accumulation, priming, defense-state escalation, and bounded-hop
// forwarding. Grounded on symbiont-core/src/defense.rs.
package defense

import (
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/trustmesh/engine/collections"
	"github.com/trustmesh/engine/connection"
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/kernel"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/scalar"
	"github.com/trustmesh/engine/threat"
)

// SignalType distinguishes an original detection from a forwarded copy.
type SignalType int

const (
	Original SignalType = iota
	Forwarded
)

// Signal is a warning about a suspected threat, propagated hop by hop
// with decaying confidence.
type Signal struct {
	Type       SignalType
	Sender     ids.NodeID
	Origin     ids.NodeID
	Threat     ids.NodeID
	ThreatType threat.Type
	Confidence scalar.Score
	Evidence   ids.Hash
	Hops       uint8
	Timestamp  time.Time
	Signature  ids.Signature
}

// NewSignal creates an original (hops=0, sender=origin) signal emitted
// by a detector.
func NewSignal(origin, threatNode ids.NodeID, threatType threat.Type, confidence scalar.Score, evidence ids.Hash, now time.Time) Signal {
	return Signal{
		Type:       Original,
		Sender:     origin,
		Origin:     origin,
		Threat:     threatNode,
		ThreatType: threatType,
		Confidence: confidence,
		Evidence:   evidence,
		Hops:       0,
		Timestamp:  now,
	}
}

// AffirmationType labels the positive counterpart to a defense signal.
type AffirmationType int

const (
	GoodInteraction AffirmationType = iota
)

// Affirmation is a positive signal emitted when an interaction was
// unusually good. It is not consumed by trust computation directly in
// this core; it is delivered to a pending queue the host drains
// (SPEC_FULL.md §4.5).
type Affirmation struct {
	Type      AffirmationType
	Subject   ids.NodeID
	Strength  scalar.Score
	Timestamp time.Time
}

// AffirmationThreshold gates when an interaction is good enough to
// emit one.
const (
	AffirmationQualityThreshold = 0.8
	AffirmationToneThreshold    = 0.5
)

// MaybeAffirm returns an Affirmation and true if the observed
// quality/tone clear the §4.5 thresholds.
func MaybeAffirm(subject ids.NodeID, quality scalar.Score, tone scalar.SignedScore, now time.Time) (Affirmation, bool) {
	if quality.Value() <= AffirmationQualityThreshold || tone.Value() <= AffirmationToneThreshold {
		return Affirmation{}, false
	}
	strength := scalar.NewScore((quality.Value() + tone.Value()) / 2)
	return Affirmation{
		Type:      GoodInteraction,
		Subject:   subject,
		Strength:  strength,
		Timestamp: now,
	}, true
}

// seenKey hashes (origin, threat, evidence) so a Handler can dedup a
// signal it has already folded into belief, independent of how many
// times it arrives via different propagation paths.
func seenKey(s Signal) uint64 {
	h := xxhash.New()
	h.Write(s.Origin[:])
	h.Write(s.Threat[:])
	h.Write(s.Evidence[:])
	return h.Sum64()
}

// Handler receives signals on behalf of one node and applies the §4.5
// state machine: belief update, priming, defense-state escalation, and
// bounded propagation.
type Handler struct {
	seen collections.Set[uint64]
}

// NewHandler creates a fresh per-node signal handler.
func NewHandler() *Handler {
	return &Handler{seen: collections.Of[uint64]()}
}

// Forward pairs a propagated Signal with the single peer it is bound
// for, preserving the one-to-one correspondence between a forwarded
// copy and the neighbor whose connection weight decayed its confidence.
type Forward struct {
	Peer   ids.NodeID
	Signal Signal
}

// Receive processes signal s arriving at receiver and returns any
// forwarded copies to enqueue, each addressed to exactly the peer its
// confidence was decayed against. Returns nil forwards if s is dropped
// (self-referential, already seen, or propagation doesn't qualify).
func (h *Handler) Receive(receiver *node.Node, receiverID ids.NodeID, s Signal, neighbors map[ids.NodeID]*connection.Connection, now time.Time) []Forward {
	if s.Threat == receiverID || s.Sender == receiverID {
		return nil
	}

	key := seenKey(s)
	if h.seen.Contains(key) {
		return nil
	}
	h.seen.Add(key)

	weight := 0.3
	if c, ok := receiver.Connections[s.Sender]; ok {
		weight = c.W.Value()
	}
	weight *= s.Confidence.Value()

	belief := receiver.ThreatBeliefs[s.Threat]
	belief.Level = scalar.NewScore(kernel.BayesianUpdate(belief.Level.Value(), weight))
	belief.Type = s.ThreatType
	belief.Evidence = append(belief.Evidence, s.Evidence)
	belief.UpdatedAt = now
	receiver.ThreatBeliefs[s.Threat] = belief

	receiver.Priming = scalar.NewScore(receiver.Priming.Value() + s.Confidence.Value()*kernel.PrimingSensitivity)
	if receiver.Priming.Value() > kernel.PrimingPrimedFloor {
		receiver.DefenseState = node.Primed
	}

	if belief.Level.Value() > kernel.ActionThreshold {
		receiver.DefenseState = node.Defending
		if c, ok := receiver.Connections[s.Threat]; ok {
			c.W = scalar.NewWeight(scalar.WMin)
		}
	}

	return h.propagate(receiverID, s, neighbors)
}

// propagate forwards s to every neighbor except sender, origin, and
// the accused threat, decaying confidence per hop by that neighbor's
// own connection weight and dropping copies that fall below MIN_SIGNAL
// or exceed MAX_HOPS. Each neighbor gets exactly one copy, decayed
// against its own weight — never another peer's.
func (h *Handler) propagate(receiverID ids.NodeID, s Signal, neighbors map[ids.NodeID]*connection.Connection) []Forward {
	if s.Confidence.Value() <= kernel.PropagateThreshold || s.Hops >= kernel.MaxHops {
		return nil
	}

	var out []Forward
	for peer, conn := range neighbors {
		if peer == s.Sender || peer == s.Origin || peer == s.Threat {
			continue
		}
		confidence := s.Confidence.Value() * kernel.DecayPerHop * conn.W.Value()
		if confidence < kernel.MinSignal {
			continue
		}
		out = append(out, Forward{
			Peer: peer,
			Signal: Signal{
				Type:       Forwarded,
				Sender:     receiverID,
				Origin:     s.Origin,
				Threat:     s.Threat,
				ThreatType: s.ThreatType,
				Confidence: scalar.NewScore(confidence),
				Evidence:   s.Evidence,
				Hops:       s.Hops + 1,
				Timestamp:  s.Timestamp,
			},
		})
	}
	return out
}

// DecayTick applies the per-tick priming decay and reverts defense
// state to Normal once priming has fallen below the revert floor and
// no tracked threat belief still exceeds the action threshold — the
// sticky-Defending rule this repo adopts (SPEC_FULL.md §4.5).
func DecayTick(n *node.Node) {
	n.DecayPriming()
	if n.Priming.Value() >= kernel.PrimingRevertFloor {
		return
	}
	for _, belief := range n.ThreatBeliefs {
		if belief.Level.Value() > kernel.ActionThreshold {
			return
		}
	}
	n.DefenseState = node.Normal
}
