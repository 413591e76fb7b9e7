package agent

import (
	"math/rand"

	"github.com/trustmesh/engine/event"
	"github.com/trustmesh/engine/node"
)

// FreeRider asks for far more than it gives: exchange_in consistently
// outweighs exchange_out, and delivered quality is mediocre.
type FreeRider struct {
	Rate float64
}

func NewFreeRider(rate float64) FreeRider { return FreeRider{Rate: rate} }

func (f FreeRider) Act(self *node.Node, net NetworkView, tick uint64, rng *rand.Rand) []event.Event {
	if rng.Float64() > f.Rate {
		return nil
	}
	partner, ok := randomPartner(self.ID, net, rng)
	if !ok {
		return nil
	}
	return []event.Event{event.NewInteraction(event.InteractionPayload{
		Initiator:   self.ID,
		Responder:   partner,
		Volume:      1.5,
		ExchangeIn:  2.0,
		ExchangeOut: 0.3,
		Quality:     jitter(rng, 0.35, 0.1),
		Tone:        jitterSigned(rng, -0.1, 0.1),
	})}
}
