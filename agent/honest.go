package agent

import (
	"math/rand"

	"github.com/trustmesh/engine/event"
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/node"
)

// Honest interacts at a fixed per-tick probability with a random peer,
// reporting quality and tone close to its configured targets.
type Honest struct {
	Rate       float64
	Quality    float64
	Tone       float64
	Capability *ids.CapabilityID
}

// NewHonest creates an Honest agent with the given interaction rate
// and target quality, neutral-positive tone.
func NewHonest(rate, quality float64) Honest {
	return Honest{Rate: rate, Quality: quality, Tone: 0.5}
}

func (h Honest) Act(self *node.Node, net NetworkView, tick uint64, rng *rand.Rand) []event.Event {
	if rng.Float64() > h.Rate {
		return nil
	}
	partner, ok := randomPartner(self.ID, net, rng)
	if !ok {
		return nil
	}
	return []event.Event{event.NewInteraction(event.InteractionPayload{
		Initiator:   self.ID,
		Responder:   partner,
		Volume:      1.0,
		ExchangeIn:  1.0,
		ExchangeOut: 1.0,
		Quality:     jitter(rng, h.Quality, 0.05),
		Tone:        jitterSigned(rng, h.Tone, 0.1),
		Capability:  h.Capability,
	})}
}
