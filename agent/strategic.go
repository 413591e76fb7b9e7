package agent

import (
	"math/rand"

	"github.com/trustmesh/engine/event"
	"github.com/trustmesh/engine/node"
)

// Strategic behaves honestly until DefectAtTick, then switches to
// exploiting its accumulated trust: low quality, hostile tone, and an
// exchange ratio tilted in its own favor.
type Strategic struct {
	Rate         float64
	GoodQuality  float64
	DefectAtTick uint64
	BadQuality   float64
}

// NewStrategic creates a Strategic agent that defects at defectAtTick.
func NewStrategic(rate float64, defectAtTick uint64) Strategic {
	return Strategic{Rate: rate, GoodQuality: 0.95, DefectAtTick: defectAtTick, BadQuality: 0.1}
}

func (s Strategic) Act(self *node.Node, net NetworkView, tick uint64, rng *rand.Rand) []event.Event {
	if rng.Float64() > s.Rate {
		return nil
	}
	partner, ok := randomPartner(self.ID, net, rng)
	if !ok {
		return nil
	}

	if tick < s.DefectAtTick {
		return []event.Event{event.NewInteraction(event.InteractionPayload{
			Initiator:   self.ID,
			Responder:   partner,
			Volume:      1.0,
			ExchangeIn:  1.0,
			ExchangeOut: 1.0,
			Quality:     jitter(rng, s.GoodQuality, 0.01),
			Tone:        jitterSigned(rng, 0.6, 0.05),
		})}
	}
	return []event.Event{event.NewInteraction(event.InteractionPayload{
		Initiator:   self.ID,
		Responder:   partner,
		Volume:      2.0,
		ExchangeIn:  2.0,
		ExchangeOut: 0.5,
		Quality:     jitter(rng, s.BadQuality, 0.05),
		Tone:        jitterSigned(rng, -0.4, 0.1),
	})}
}
