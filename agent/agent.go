// Package agent implements the pluggable per-node behavior that drives
// the simulation: each tick, an Agent observes its own node and a
// read-only network view and produces zero or more events. Grounded on
// symbiont-sim/src/agent.rs.
package agent

import (
	"math/rand"

	"github.com/trustmesh/engine/event"
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/sampler"
	"github.com/trustmesh/engine/scalar"
)

// NetworkView is the read-only slice of network state an agent needs
// to decide whom to interact with. Defined here (not imported from
// package network) so agent has no dependency on network, letting
// network depend on agent instead.
type NetworkView interface {
	NodeIDs() []ids.NodeID
	Node(id ids.NodeID) (*node.Node, bool)
}

// Agent is a pure function of (self, network, tick, rng) to produced
// events; it holds no node state of its own.
type Agent interface {
	Act(self *node.Node, net NetworkView, tick uint64, rng *rand.Rand) []event.Event
}

// pickOne uses a Uniform sampler to select one element of candidates,
// or false if candidates is empty.
func pickOne(candidates []ids.NodeID, rng *rand.Rand) (ids.NodeID, bool) {
	if len(candidates) == 0 {
		return ids.NodeID{}, false
	}
	s := sampler.New(rng)
	if err := s.Initialize(len(candidates)); err != nil {
		return ids.NodeID{}, false
	}
	idx, ok := s.Sample(1)
	if !ok {
		return ids.NodeID{}, false
	}
	return candidates[idx[0]], true
}

// randomPartner picks a uniformly random node id other than self from
// net, or false if no other node exists.
func randomPartner(self ids.NodeID, net NetworkView, rng *rand.Rand) (ids.NodeID, bool) {
	all := net.NodeIDs()
	var candidates []ids.NodeID
	for _, id := range all {
		if id != self {
			candidates = append(candidates, id)
		}
	}
	return pickOne(candidates, rng)
}

// jitter perturbs v by up to +/-spread, then clamps into [0,1] via
// scalar.NewScore.
func jitter(rng *rand.Rand, v, spread float64) scalar.Score {
	delta := (rng.Float64()*2 - 1) * spread
	return scalar.NewScore(v + delta)
}

// jitterSigned perturbs v by up to +/-spread, then clamps into [-1,1].
func jitterSigned(rng *rand.Rand, v, spread float64) scalar.SignedScore {
	delta := (rng.Float64()*2 - 1) * spread
	return scalar.NewSignedScore(v + delta)
}
