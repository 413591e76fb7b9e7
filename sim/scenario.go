// Package sim ties the protocol core (network, agent, routing,
// workflow) into runnable scenarios: named presets that seed a
// network and, for the workflow scenarios, build a DAG of steps to
// drive alongside it. Grounded on symbiont-sim/src/scenarios/*.rs,
// one file per scenario family there becoming one Scenario value here.
package sim

import (
	"time"

	"github.com/trustmesh/engine/agent"
	"github.com/trustmesh/engine/capability"
	"github.com/trustmesh/engine/event"
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/network"
	"github.com/trustmesh/engine/routing"
	"github.com/trustmesh/engine/workflow"
)

// Scenario seeds a network (and, for workflow scenarios, returns a
// workflow to drive tick-by-tick alongside it). A nil workflow return
// means the scenario is pure network evolution.
type Scenario interface {
	Name() string
	Setup(net *network.Network, now time.Time) *workflow.Workflow
}

func seedHonest(net *network.Network, count int, now time.Time) {
	for i := 1; i <= count; i++ {
		net.AddNode(ids.NodeIDFromIndex(uint64(i)), now, agent.NewHonest(0.5, 0.8))
	}
}

// adversaryBase derives the id range an injected cohort occupies,
// per SPEC_FULL.md §6's "base=existing_nodes+1000" rule.
func adversaryBase(existingNodes int) uint64 {
	return uint64(existingNodes) + 1000
}

// TrustEmergence attaches HonestAgent to every node in a fresh,
// adversary-free network and lets trust converge.
type TrustEmergence struct {
	NodeCount int
}

func (s TrustEmergence) Name() string { return "trust_emergence" }

func (s TrustEmergence) Setup(net *network.Network, now time.Time) *workflow.Workflow {
	seedHonest(net, s.NodeCount, now)
	return nil
}

// AdversaryStrategic seeds HonestCount honest nodes, then schedules
// AdversaryCount strategic adversaries to join at InjectAtTick and
// defect at DefectAtTick.
type AdversaryStrategic struct {
	HonestCount    int
	AdversaryCount int
	InjectAtTick   uint64
	DefectAtTick   uint64
}

func (s AdversaryStrategic) Name() string { return "adversary_strategic" }

func (s AdversaryStrategic) Setup(net *network.Network, now time.Time) *workflow.Workflow {
	seedHonest(net, s.HonestCount, now)
	base := adversaryBase(s.HonestCount)
	agentType := event.StrategicAgentType
	defectAt := s.DefectAtTick
	for i := uint64(0); i < uint64(s.AdversaryCount); i++ {
		id := ids.NodeIDFromIndex(base + i)
		payload := event.NodeJoinPayload{Node: id, AgentType: &agentType, DefectAtTick: &defectAt}
		net.Scheduler.Schedule(event.NewNodeJoin(payload), s.InjectAtTick)
	}
	return nil
}

// AdversaryFreeRider seeds HonestCount honest nodes, then schedules
// AdversaryCount free-riders to join at InjectAtTick.
type AdversaryFreeRider struct {
	HonestCount    int
	AdversaryCount int
	InjectAtTick   uint64
}

func (s AdversaryFreeRider) Name() string { return "adversary_free_rider" }

func (s AdversaryFreeRider) Setup(net *network.Network, now time.Time) *workflow.Workflow {
	seedHonest(net, s.HonestCount, now)
	base := adversaryBase(s.HonestCount)
	agentType := event.FreeRiderAgentType
	for i := uint64(0); i < uint64(s.AdversaryCount); i++ {
		id := ids.NodeIDFromIndex(base + i)
		net.Scheduler.Schedule(event.NewNodeJoin(event.NodeJoinPayload{Node: id, AgentType: &agentType}), s.InjectAtTick)
	}
	return nil
}

// AdversarySybil seeds HonestCount honest nodes, then schedules a
// cohort of AdversaryCount sybil nodes to join at InjectAtTick, all
// sharing each other as cluster members.
type AdversarySybil struct {
	HonestCount    int
	AdversaryCount int
	InjectAtTick   uint64
}

func (s AdversarySybil) Name() string { return "adversary_sybil" }

func (s AdversarySybil) Setup(net *network.Network, now time.Time) *workflow.Workflow {
	seedHonest(net, s.HonestCount, now)
	base := adversaryBase(s.HonestCount)
	cluster := make([]ids.NodeID, s.AdversaryCount)
	for i := range cluster {
		cluster[i] = ids.NodeIDFromIndex(base + uint64(i))
	}
	agentType := event.SybilAgentType
	for _, id := range cluster {
		payload := event.NodeJoinPayload{Node: id, AgentType: &agentType, ClusterMembers: cluster}
		net.Scheduler.Schedule(event.NewNodeJoin(payload), s.InjectAtTick)
	}
	return nil
}

// specializedCapabilities round-robin assigns one of three
// specialised capabilities to every seeded node, per SPEC_FULL.md §6's
// workflow scenario description.
var specializedCapabilities = []capability.Capability{
	capability.CommonAnalysis,
	capability.CommonGeneration,
	capability.CommonTransformation,
}

func seedWorkflowNodes(net *network.Network, count int, now time.Time) {
	for i := 1; i <= count; i++ {
		id := ids.NodeIDFromIndex(uint64(i))
		n := net.AddNode(id, now, agent.NewHonest(0.5, 0.8))
		cap := specializedCapabilities[(i-1)%len(specializedCapabilities)]
		n.AddCapability(cap, now)
	}
}

func taskFor(origin ids.NodeID, capID ids.CapabilityID, now time.Time) routing.Task {
	return routing.Task{
		ID:           ids.NewTaskID(),
		RequiredCaps: []ids.CapabilityID{capID},
		Origin:       origin,
		Created:      now,
	}
}

// WorkflowChain builds a Sequential workflow over StepCount steps,
// each requiring one of the three round-robin capabilities.
type WorkflowChain struct {
	NodeCount int
	StepCount int
}

func (s WorkflowChain) Name() string { return "workflow_chain" }

func (s WorkflowChain) Setup(net *network.Network, now time.Time) *workflow.Workflow {
	seedWorkflowNodes(net, s.NodeCount, now)
	origin := ids.NodeIDFromIndex(1)
	tasks := make([]routing.Task, s.StepCount)
	for i := range tasks {
		cap := specializedCapabilities[i%len(specializedCapabilities)]
		tasks[i] = taskFor(origin, cap.ID, now)
	}
	return workflow.Chain(tasks)
}

// WorkflowFanOutFanIn builds Parallel branches feeding a single merge
// step.
type WorkflowFanOutFanIn struct {
	NodeCount int
	Branches  int
}

func (s WorkflowFanOutFanIn) Name() string { return "workflow_fan_out_fan_in" }

func (s WorkflowFanOutFanIn) Setup(net *network.Network, now time.Time) *workflow.Workflow {
	seedWorkflowNodes(net, s.NodeCount, now)
	origin := ids.NodeIDFromIndex(1)
	branches := make([]routing.Task, s.Branches)
	for i := range branches {
		cap := specializedCapabilities[i%len(specializedCapabilities)]
		branches[i] = taskFor(origin, cap.ID, now)
	}
	merge := taskFor(origin, capability.CommonValidation.ID, now)
	return workflow.FanOutFanIn(branches, merge)
}

// WorkflowDag builds the diamond DAG supplemented in SPEC_FULL.md §12:
// one entry step, two parallel middle steps depending on it, and one
// exit step depending on both.
type WorkflowDag struct {
	NodeCount int
}

func (s WorkflowDag) Name() string { return "workflow_dag" }

func (s WorkflowDag) Setup(net *network.Network, now time.Time) *workflow.Workflow {
	seedWorkflowNodes(net, s.NodeCount, now)
	origin := ids.NodeIDFromIndex(1)

	entry := &workflow.Step{ID: 0, Task: taskFor(origin, capability.CommonAnalysis.ID, now)}
	left := &workflow.Step{ID: 1, Task: taskFor(origin, capability.CommonGeneration.ID, now), DependsOn: []ids.StepID{0}}
	right := &workflow.Step{ID: 2, Task: taskFor(origin, capability.CommonTransformation.ID, now), DependsOn: []ids.StepID{0}}
	exit := &workflow.Step{ID: 3, Task: taskFor(origin, capability.CommonValidation.ID, now), DependsOn: []ids.StepID{1, 2}}

	return workflow.New(workflow.Dag, []*workflow.Step{entry, left, right, exit})
}
