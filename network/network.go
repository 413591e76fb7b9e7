// Package network is the simulation coordinator: it owns the node
// map, drives the per-tick event-ordering discipline, and recomputes
// trust at the end of every tick. Grounded on symbiont-sim/src/
// network.rs.
package network

import (
	"math/rand"
	"sort"
	"time"

	"github.com/trustmesh/engine/agent"
	"github.com/trustmesh/engine/connection"
	"github.com/trustmesh/engine/defense"
	"github.com/trustmesh/engine/detect"
	"github.com/trustmesh/engine/event"
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/kernel"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/scalar"
	"github.com/trustmesh/engine/threat"
	"github.com/trustmesh/engine/trust"
)

// InteractionObserver is notified whenever an Interaction event is
// fully applied, so a metrics collector can record it without the
// network package depending on metricsx.
type InteractionObserver func(initiator, responder ids.NodeID, quality scalar.Score)

// DetectionEvent is one detector firing against a subject node at a
// given tick, recorded for later CSV export.
type DetectionEvent struct {
	Tick       uint64
	Detector   ids.NodeID
	Subject    ids.NodeID
	ThreatType threat.Type
	Confidence float64
}

// Network owns every node, the agents driving them, and the event
// scheduler. It is single-threaded by design (SPEC_FULL.md §5): all
// mutation happens inside Step.
type Network struct {
	Nodes           map[ids.NodeID]*node.Node
	agents          map[ids.NodeID]agent.Agent
	defenseHandlers map[ids.NodeID]*defense.Handler
	Scheduler       *event.Scheduler
	Tick            uint64
	rng             *rand.Rand
	Snapshots       []TrustSnapshot
	PendingAffirms  []defense.Affirmation
	DetectionLog    []DetectionEvent
	OnInteraction   InteractionObserver
}

// New creates an empty network seeded deterministically.
func New(seed int64) *Network {
	return &Network{
		Nodes:           make(map[ids.NodeID]*node.Node),
		agents:          make(map[ids.NodeID]agent.Agent),
		defenseHandlers: make(map[ids.NodeID]*defense.Handler),
		Scheduler:       event.NewScheduler(),
		rng:             rand.New(rand.NewSource(seed)),
	}
}

// NodeIDs implements agent.NetworkView.
func (n *Network) NodeIDs() []ids.NodeID {
	out := make([]ids.NodeID, 0, len(n.Nodes))
	for id := range n.Nodes {
		out = append(out, id)
	}
	return out
}

// Node implements agent.NetworkView.
func (n *Network) Node(id ids.NodeID) (*node.Node, bool) {
	nd, ok := n.Nodes[id]
	return nd, ok
}

func (n *Network) sortedNodeIDs() []ids.NodeID {
	out := n.NodeIDs()
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// AddNode inserts a fresh node and, if a is non-nil, attaches
// the corresponding agent and connects it to every existing node
// (§4.10's NodeJoin handler).
func (n *Network) AddNode(id ids.NodeID, now time.Time, a agent.Agent) *node.Node {
	nd := node.New(id, now)
	n.Nodes[id] = nd
	n.defenseHandlers[id] = defense.NewHandler()
	if a != nil {
		n.agents[id] = a
		for peer := range n.Nodes {
			if peer == id {
				continue
			}
			n.connectMutual(id, peer, now)
		}
	}
	return nd
}

func (n *Network) connectMutual(a, b ids.NodeID, now time.Time) {
	n.Nodes[a].Connections[b] = connection.New(b, now)
	n.Nodes[b].Connections[a] = connection.New(a, now)
}

// RemoveNode deletes a node and its agent (NodeLeave handler).
func (n *Network) RemoveNode(id ids.NodeID) {
	delete(n.Nodes, id)
	delete(n.agents, id)
	delete(n.defenseHandlers, id)
}

// Step runs one full tick: drain scheduled events, run agents, process
// the queue in FIFO order, run maintenance, periodically detect
// adversaries, recompute trust, and record a snapshot.
func (n *Network) Step(now time.Time) {
	queue := n.Scheduler.Drain(n.Tick)

	for _, id := range n.sortedNodeIDs() {
		a, ok := n.agents[id]
		if !ok {
			continue
		}
		queue = append(queue, a.Act(n.Nodes[id], n, n.Tick, n.rng)...)
	}

	for _, ev := range queue {
		n.apply(ev, now)
	}

	for _, id := range n.sortedNodeIDs() {
		nd := n.Nodes[id]
		defense.DecayTick(nd)
		nd.DecayIdleConnections(now)
		nd.CheckDiversity(trust.DiversityAgg(nd))
	}

	if n.Tick%kernel.AdversaryInterval == 0 {
		n.runDetection(now)
	}

	for _, id := range n.sortedNodeIDs() {
		nd := n.Nodes[id]
		nd.Trust = trust.Compute(nd).Trust
	}

	n.recordSnapshot()
	n.Tick++
}

func (n *Network) apply(ev event.Event, now time.Time) {
	switch ev.Kind {
	case event.InteractionKind:
		n.applyInteraction(*ev.Interaction, now)
	case event.DefenseSignalKind:
		n.applyDefenseSignal(*ev.DefenseSignal, now)
	case event.NodeJoinKind:
		n.applyNodeJoin(*ev.NodeJoin, now)
	case event.NodeLeaveKind:
		n.RemoveNode(ev.NodeLeave.Node)
	}
}

func (n *Network) applyInteraction(p event.InteractionPayload, now time.Time) {
	initiator, ok := n.Nodes[p.Initiator]
	if !ok {
		return
	}
	responder, ok := n.Nodes[p.Responder]
	if !ok {
		return
	}

	initiator.HandleOutgoingInteraction(node.OutgoingExchange{
		Partner:     p.Responder,
		Volume:      p.Volume,
		ExchangeIn:  p.ExchangeIn,
		ExchangeOut: p.ExchangeOut,
		Quality:     p.Quality,
		Tone:        p.Tone,
		Capability:  p.Capability,
		Now:         now,
	})
	responder.HandleIncomingInteraction(node.IncomingExchange{
		Partner:     p.Initiator,
		Volume:      p.Volume,
		ExchangeIn:  p.ExchangeOut,
		ExchangeOut: p.ExchangeIn,
		Quality:     p.Quality,
		Tone:        p.Tone,
		Capability:  p.Capability,
		Now:         now,
	})

	if n.OnInteraction != nil {
		n.OnInteraction(p.Initiator, p.Responder, p.Quality)
	}

	if aff, ok := defense.MaybeAffirm(p.Responder, p.Quality, p.Tone, now); ok {
		n.PendingAffirms = append(n.PendingAffirms, aff)
	}
}

func (n *Network) applyDefenseSignal(p event.DefenseSignalPayload, now time.Time) {
	receiver, ok := n.Nodes[p.Receiver]
	if !ok {
		return
	}
	handler := n.defenseHandlers[p.Receiver]
	forwards := handler.Receive(receiver, p.Receiver, p.Signal, receiver.Connections, now)
	for _, fwd := range forwards {
		n.Scheduler.Schedule(event.NewDefenseSignal(fwd.Peer, fwd.Signal), n.Tick+1)
	}
}

func (n *Network) applyNodeJoin(p event.NodeJoinPayload, now time.Time) {
	var a agent.Agent
	if p.AgentType != nil {
		a = buildAgent(*p.AgentType, p.ClusterMembers, p.DefectAtTick)
	}
	n.AddNode(p.Node, now, a)
}

func buildAgent(t event.AgentType, cluster []ids.NodeID, defectAt *uint64) agent.Agent {
	switch t {
	case event.HonestAgentType:
		return agent.NewHonest(0.5, 0.8)
	case event.StrategicAgentType:
		tick := uint64(100)
		if defectAt != nil {
			tick = *defectAt
		}
		return agent.NewStrategic(0.5, tick)
	case event.FreeRiderAgentType:
		return agent.NewFreeRider(0.5)
	case event.SybilAgentType:
		return agent.NewSybil(0.7, cluster)
	case event.PassiveAgentType:
		return agent.Passive{}
	default:
		return agent.Passive{}
	}
}

// runDetection executes the §4.6 detectors for every node plus the
// network-wide collusion scan, and schedules DefenseSignal deliveries
// for the following tick.
func (n *Network) runDetection(now time.Time) {
	for _, id := range n.sortedNodeIDs() {
		nd := n.Nodes[id]
		for _, r := range detect.RunAll(nd) {
			n.broadcastDetection(id, r.Subject, r.ThreatType, r.Confidence)
		}
	}

	for _, cluster := range detect.Collusion(n.Nodes) {
		for _, member := range cluster.Members {
			n.broadcastDetection(member, member, threat.Collusion, cluster.Confidence)
		}
	}
}

func (n *Network) broadcastDetection(detector, subject ids.NodeID, t threat.Type, confidence scalar.Score) {
	nd, ok := n.Nodes[detector]
	if !ok {
		return
	}
	n.DetectionLog = append(n.DetectionLog, DetectionEvent{
		Tick: n.Tick, Detector: detector, Subject: subject, ThreatType: t, Confidence: confidence.Value(),
	})
	evidence := ids.ComputeHash([]byte(subject.String()))
	sig := defense.NewSignal(detector, subject, t, confidence, evidence, time.Now())
	for peer := range nd.Connections {
		n.Scheduler.Schedule(event.NewDefenseSignal(peer, sig), n.Tick+1)
	}
}
