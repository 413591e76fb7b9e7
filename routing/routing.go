// Package routing scores and selects candidate nodes for a task,
// combining trust, capability quality, load, connection strength, and
// threat level into a single multiplicative score. Grounded on
// symbiont-core/src/routing.rs.
package routing

import (
	"sort"
	"time"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/scalar"
)

// Priority is a task's scheduling urgency.
type Priority int

const (
	Low Priority = iota
	Normal
	High
	Critical
)

// Constraints narrows the candidate pool for a task.
type Constraints struct {
	TimeoutMs  *uint64
	Priority   Priority
	MinTrust   *scalar.Score
	MinQuality *scalar.Score
	Preferred  []ids.NodeID
	Excluded   []ids.NodeID
}

// Task is a unit of work requiring an ordered sequence of capabilities.
type Task struct {
	ID           ids.TaskID
	RequiredCaps []ids.CapabilityID
	Constraints  Constraints
	Origin       ids.NodeID
	Created      time.Time
}

// Outcome is the result of a routing attempt.
type Outcome int

const (
	Success Outcome = iota
	NoCandidates
	ConstraintsNotMet
)

// Result carries the routing decision.
type Result struct {
	Outcome   Outcome
	Candidate ids.NodeID
	Score     float64
}

// CandidateScore pairs a node with its computed routing score.
type CandidateScore struct {
	NodeID ids.NodeID
	Score  float64
}

func containsID(list []ids.NodeID, id ids.NodeID) bool {
	for _, x := range list {
		if x == id {
			return true
		}
	}
	return false
}

// score computes S = T(cand)*q_cap(cand)*(1-load(cand))*w_conn(from,cand)*
// (1-threat(from,cand))*pref.
func score(from *node.Node, candID ids.NodeID, cand *node.Node, capID ids.CapabilityID, constraints Constraints) float64 {
	capState := cand.Capabilities[capID]
	qCap := capState.Quality.Value()
	load := capState.Load.Value()

	wConn := scalar.WInit
	if c, ok := from.Connections[candID]; ok {
		wConn = c.W.Value()
	}

	threatLvl := 0.0
	if belief, ok := from.ThreatBeliefs[candID]; ok {
		threatLvl = belief.Level.Value()
	}

	pref := 1.0
	if containsID(constraints.Preferred, candID) {
		pref = 1.2
	}

	return cand.Trust.Value() * qCap * (1 - load) * wConn * (1 - threatLvl) * pref
}

// candidates filters nodes down to those eligible for capID under
// constraints, per the §4.7 ordered filter.
func candidates(fromID ids.NodeID, nodes map[ids.NodeID]*node.Node, capID ids.CapabilityID, constraints Constraints) []ids.NodeID {
	var out []ids.NodeID
	for id, n := range nodes {
		cs, ok := n.Capabilities[capID]
		if !ok || !cs.Available || cs.Load.Value() >= 0.95 {
			continue
		}
		if id == fromID {
			continue
		}
		if containsID(constraints.Excluded, id) {
			continue
		}
		if constraints.MinTrust != nil && n.Trust.Value() < constraints.MinTrust.Value() {
			continue
		}
		if constraints.MinQuality != nil && cs.Quality.Value() < constraints.MinQuality.Value() {
			continue
		}
		out = append(out, id)
	}
	// Sort by NodeId ascending before scoring so any score tie breaks
	// deterministically in encounter order (resolves the original's
	// unordered map-iteration ambiguity, see SPEC_FULL.md §4.7).
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// RouteTask scores every eligible candidate for capID and returns the
// top-scoring one. Routing performs no state mutation.
func RouteTask(from *node.Node, nodes map[ids.NodeID]*node.Node, capID ids.CapabilityID, constraints Constraints) Result {
	ranked := rank(from, nodes, capID, constraints)
	if len(ranked) == 0 {
		return Result{Outcome: NoCandidates}
	}
	best := ranked[0]
	return Result{Outcome: Success, Candidate: best.NodeID, Score: best.Score}
}

// RouteEnsemble returns the top k candidates by the same ranking.
func RouteEnsemble(from *node.Node, nodes map[ids.NodeID]*node.Node, capID ids.CapabilityID, constraints Constraints, k int) []CandidateScore {
	ranked := rank(from, nodes, capID, constraints)
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

func rank(from *node.Node, nodes map[ids.NodeID]*node.Node, capID ids.CapabilityID, constraints Constraints) []CandidateScore {
	eligible := candidates(from.ID, nodes, capID, constraints)
	ranked := make([]CandidateScore, len(eligible))
	for i, id := range eligible {
		ranked[i] = CandidateScore{NodeID: id, Score: score(from, id, nodes[id], capID, constraints)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}
