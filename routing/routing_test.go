package routing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/capability"
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/scalar"
)

func makeCandidate(idx uint64, cap capability.Capability, trust, quality float64, now time.Time) (*node.Node, ids.NodeID) {
	id := ids.NodeIDFromIndex(idx)
	n := node.New(id, now)
	n.Trust = scalar.NewScore(trust)
	cs := capability.NewState(cap, now)
	cs.Quality = scalar.NewScore(quality)
	n.Capabilities[cap.ID] = cs
	return n, id
}

func TestRouteTaskPicksHighestScore(t *testing.T) {
	now := time.Now()
	cap := capability.CommonAnalysis
	from := node.New(ids.NodeIDFromIndex(1), now)

	weak, weakID := makeCandidate(2, cap, 0.3, 0.3, now)
	strong, strongID := makeCandidate(3, cap, 0.9, 0.9, now)

	nodes := map[ids.NodeID]*node.Node{weakID: weak, strongID: strong}
	result := RouteTask(from, nodes, cap.ID, Constraints{})

	require.Equal(t, Success, result.Outcome)
	require.Equal(t, strongID, result.Candidate)
}

func TestRouteTaskNoCandidatesWhenNobodyHasCapability(t *testing.T) {
	now := time.Now()
	from := node.New(ids.NodeIDFromIndex(1), now)
	other := node.New(ids.NodeIDFromIndex(2), now)
	nodes := map[ids.NodeID]*node.Node{other.ID: other}

	result := RouteTask(from, nodes, capability.CommonAnalysis.ID, Constraints{})
	require.Equal(t, NoCandidates, result.Outcome)
}

func TestRouteTaskExcludesSelf(t *testing.T) {
	now := time.Now()
	cap := capability.CommonAnalysis
	from, fromID := makeCandidate(1, cap, 0.9, 0.9, now)
	nodes := map[ids.NodeID]*node.Node{fromID: from}

	result := RouteTask(from, nodes, cap.ID, Constraints{})
	require.Equal(t, NoCandidates, result.Outcome)
}

func TestRouteTaskTiesBreakByAscendingNodeID(t *testing.T) {
	now := time.Now()
	cap := capability.CommonAnalysis
	from := node.New(ids.NodeIDFromIndex(1), now)

	a, aID := makeCandidate(10, cap, 0.5, 0.5, now)
	b, bID := makeCandidate(5, cap, 0.5, 0.5, now)
	nodes := map[ids.NodeID]*node.Node{aID: a, bID: b}

	result := RouteTask(from, nodes, cap.ID, Constraints{})
	require.Equal(t, Success, result.Outcome)
	require.Equal(t, bID, result.Candidate) // index 5 sorts before index 10
}

func TestRouteEnsembleReturnsTopK(t *testing.T) {
	now := time.Now()
	cap := capability.CommonAnalysis
	from := node.New(ids.NodeIDFromIndex(1), now)

	nodes := map[ids.NodeID]*node.Node{}
	for i := uint64(2); i < 6; i++ {
		n, id := makeCandidate(i, cap, 0.1*float64(i), 0.5, now)
		nodes[id] = n
	}

	top := RouteEnsemble(from, nodes, cap.ID, Constraints{}, 2)
	require.Len(t, top, 2)
	require.GreaterOrEqual(t, top[0].Score, top[1].Score)
}

func TestRouteTaskRespectsMinTrust(t *testing.T) {
	now := time.Now()
	cap := capability.CommonAnalysis
	from := node.New(ids.NodeIDFromIndex(1), now)
	weak, weakID := makeCandidate(2, cap, 0.1, 0.9, now)
	nodes := map[ids.NodeID]*node.Node{weakID: weak}

	minTrust := scalar.NewScore(0.5)
	result := RouteTask(from, nodes, cap.ID, Constraints{MinTrust: &minTrust})
	require.Equal(t, NoCandidates, result.Outcome)
}
