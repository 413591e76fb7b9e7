package sim

import (
	"time"

	"github.com/trustmesh/engine/config"
	"github.com/trustmesh/engine/handoff"
	"github.com/trustmesh/engine/metricsx"
	"github.com/trustmesh/engine/network"
	"github.com/trustmesh/engine/routing"
	"github.com/trustmesh/engine/workflow"
)

// Result is the outcome of a completed run: the final network (for
// CSV export of its Snapshots), the workflow driven alongside it (nil
// for pure network scenarios), and the metrics collector if enabled.
type Result struct {
	Network     *network.Network
	Workflow    *workflow.Workflow
	Collector   *metricsx.Collector
	Convergence float64
}

// Runner drives one Scenario for cfg.Ticks ticks.
type Runner struct {
	Config config.SimulationConfig
}

// NewRunner builds a Runner from cfg.
func NewRunner(cfg config.SimulationConfig) Runner {
	return Runner{Config: cfg}
}

// Run executes scenario start to finish.
func (r Runner) Run(scenario Scenario) Result {
	net := network.New(r.Config.Seed)
	now := time.Now()

	var collector *metricsx.Collector
	if r.Config.EnableMetrics {
		collector = metricsx.NewCollector(nil)
		net.OnInteraction = collector.OnInteraction
	}

	wf := scenario.Setup(net, now)

	detectionsSeen := 0
	for tick := uint64(0); tick < r.Config.Ticks; tick++ {
		net.Step(now)
		if collector != nil {
			collector.RecordTick()
			last := net.Snapshots[len(net.Snapshots)-1]
			collector.RecordTrustSnapshot(last.Mean, last.StdDev, last.HighTrust, last.LowTrust)
			for _, e := range net.DetectionLog[detectionsSeen:] {
				collector.RecordDetection(e.ThreatType.String())
			}
			detectionsSeen = len(net.DetectionLog)
		}
		if wf != nil {
			advanceWorkflow(wf, net, now)
		}
	}

	return Result{
		Network:     net,
		Workflow:    wf,
		Collector:   collector,
		Convergence: net.ConvergenceScore(),
	}
}

// advanceWorkflow routes and immediately executes every currently
// ready step, using the origin node's own routing view and a direct
// handoff to the chosen executor. A step that finds no eligible
// candidate or is rejected by the handoff is left Pending and retried
// on a later tick (e.g. once trust/capability state changes).
func advanceWorkflow(wf *workflow.Workflow, net *network.Network, now time.Time) {
	for _, step := range wf.ReadySteps() {
		if len(step.Task.RequiredCaps) == 0 {
			continue
		}
		from, ok := net.Nodes[step.Task.Origin]
		if !ok {
			continue
		}
		capID := step.Task.RequiredCaps[0]
		routed := routing.RouteTask(from, net.Nodes, capID, step.Task.Constraints)
		if routed.Outcome != routing.Success {
			continue
		}
		executor := net.Nodes[routed.Candidate]

		h := handoff.Handoff{
			From:      step.Task.Origin,
			To:        routed.Candidate,
			Task:      step.Task,
			Context:   handoff.ContextFrom(wf.Context),
			Timestamp: now,
		}
		res := handoff.Process(h, executor, now, handoff.DefaultMaxAgeMs)
		if !res.Success {
			continue
		}

		wf.StartStep(step.ID, routed.Candidate, now)
		cs := executor.Capabilities[capID]
		quality := cs.Quality
		cs.RecordUsage(quality, now)
		wf.CompleteStep(step.ID, workflow.StepResult{Success: true, Output: res.Output, Quality: quality}, routed.Candidate, now)
	}
}

// QuickRun builds a default TrustEmergence network with HonestAgent on
// every node and runs it, matching symbiont-sim's quick_run helper.
func QuickRun() Result {
	cfg := config.SmallConfig()
	return NewRunner(cfg).Run(TrustEmergence{NodeCount: cfg.NodeCount})
}
