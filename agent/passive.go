package agent

import (
	"math/rand"

	"github.com/trustmesh/engine/event"
	"github.com/trustmesh/engine/node"
)

// Passive never initiates anything; it only ever receives. Useful as
// a baseline in scenarios that want a mix of active and idle nodes.
type Passive struct{}

func (Passive) Act(self *node.Node, net NetworkView, tick uint64, rng *rand.Rand) []event.Event {
	return nil
}
