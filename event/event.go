// Package event defines the tick-loop's event vocabulary and the
// scheduler that orders scheduled events by (at_tick, insertion_order)
// per the simulation kernel's ordering guarantees. Grounded on
// symbiont-sim/src/event.rs.
package event

import (
	"github.com/trustmesh/engine/defense"
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/scalar"
)

// Kind tags which payload an Event carries.
type Kind int

const (
	InteractionKind Kind = iota
	DefenseSignalKind
	NodeJoinKind
	NodeLeaveKind
)

// AgentType names which Agent implementation a newly joined node
// should be driven by.
type AgentType int

const (
	HonestAgentType AgentType = iota
	StrategicAgentType
	FreeRiderAgentType
	SybilAgentType
	PassiveAgentType
)

// InteractionPayload describes one exchange between two nodes.
type InteractionPayload struct {
	Initiator   ids.NodeID
	Responder   ids.NodeID
	Volume      float64
	ExchangeIn  float64
	ExchangeOut float64
	Quality     scalar.Score
	Tone        scalar.SignedScore
	Capability  *ids.CapabilityID
}

// NodeJoinPayload introduces a node, optionally attaching an agent.
// ClusterMembers carries the sibling set for a Sybil cohort; the
// network hands it to the Sybil agent it builds for the joining node.
type NodeJoinPayload struct {
	Node            ids.NodeID
	AgentType       *AgentType
	ClusterMembers  []ids.NodeID
	DefectAtTick    *uint64
}

// NodeLeavePayload removes a node and its agent.
type NodeLeavePayload struct {
	Node ids.NodeID
}

// DefenseSignalPayload addresses one copy of a propagating signal at a
// specific receiving node — the signal itself carries sender/origin/
// threat, but delivery is always to one concrete node at a time.
type DefenseSignalPayload struct {
	Receiver ids.NodeID
	Signal   defense.Signal
}

// Event is a tagged union of the four event kinds the tick loop
// understands. Exactly one payload field is populated, matching Kind.
type Event struct {
	Kind          Kind
	Interaction   *InteractionPayload
	DefenseSignal *DefenseSignalPayload
	NodeJoin      *NodeJoinPayload
	NodeLeave     *NodeLeavePayload
}

func NewInteraction(p InteractionPayload) Event {
	return Event{Kind: InteractionKind, Interaction: &p}
}

func NewDefenseSignal(receiver ids.NodeID, s defense.Signal) Event {
	return Event{Kind: DefenseSignalKind, DefenseSignal: &DefenseSignalPayload{Receiver: receiver, Signal: s}}
}

func NewNodeJoin(p NodeJoinPayload) Event {
	return Event{Kind: NodeJoinKind, NodeJoin: &p}
}

func NewNodeLeave(id ids.NodeID) Event {
	return Event{Kind: NodeLeaveKind, NodeLeave: &NodeLeavePayload{Node: id}}
}
