package agent

import (
	"math/rand"

	"github.com/trustmesh/engine/event"
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/node"
)

// Sybil preferentially interacts within its own cluster, inflating
// mutual quality and tone to build the dense, isolated subgraph the
// collusion detector looks for.
type Sybil struct {
	Rate           float64
	ClusterMembers []ids.NodeID
}

func NewSybil(rate float64, clusterMembers []ids.NodeID) Sybil {
	return Sybil{Rate: rate, ClusterMembers: clusterMembers}
}

func (s Sybil) clusterPartner(self ids.NodeID, rng *rand.Rand) (ids.NodeID, bool) {
	var candidates []ids.NodeID
	for _, id := range s.ClusterMembers {
		if id != self {
			candidates = append(candidates, id)
		}
	}
	return pickOne(candidates, rng)
}

func (s Sybil) Act(self *node.Node, net NetworkView, tick uint64, rng *rand.Rand) []event.Event {
	if rng.Float64() > s.Rate {
		return nil
	}
	partner, ok := s.clusterPartner(self.ID, rng)
	if !ok {
		partner, ok = randomPartner(self.ID, net, rng)
		if !ok {
			return nil
		}
	}
	return []event.Event{event.NewInteraction(event.InteractionPayload{
		Initiator:   self.ID,
		Responder:   partner,
		Volume:      1.0,
		ExchangeIn:  1.0,
		ExchangeOut: 1.0,
		Quality:     jitter(rng, 0.97, 0.02),
		Tone:        jitterSigned(rng, 0.8, 0.05),
	})}
}
