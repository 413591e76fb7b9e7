package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/scalar"
)

func pumpHistory(n *node.Node, partner ids.NodeID, count int, quality float64, now time.Time) {
	for i := 0; i < count; i++ {
		n.HandleOutgoingInteraction(node.OutgoingExchange{
			Partner:     partner,
			Volume:      1.0,
			ExchangeIn:  1.0,
			ExchangeOut: 1.0,
			Quality:     scalar.NewScore(quality),
			Tone:        scalar.NewSignedScore(0),
			Now:         now.Add(time.Duration(i) * time.Second),
		})
	}
}

func TestQualityFraudFlagsSuspiciouslyUniformHistory(t *testing.T) {
	n := node.New(ids.NodeIDFromIndex(1), time.Now())
	pumpHistory(n, ids.NodeIDFromIndex(2), 40, 0.99, time.Now())

	r, ok := QualityFraud(n)
	require.True(t, ok)
	require.InDelta(t, 0.6, r.Confidence.Value(), 1e-9)
}

func TestQualityFraudIgnoresShortHistory(t *testing.T) {
	n := node.New(ids.NodeIDFromIndex(1), time.Now())
	pumpHistory(n, ids.NodeIDFromIndex(2), 10, 0.99, time.Now())

	_, ok := QualityFraud(n)
	require.False(t, ok)
}

func TestLowDiversityFlagsNarrowPartnerPool(t *testing.T) {
	n := node.New(ids.NodeIDFromIndex(1), time.Now())
	pumpHistory(n, ids.NodeIDFromIndex(2), 50, 0.7, time.Now())

	r, ok := LowDiversity(n)
	require.True(t, ok)
	require.Greater(t, r.Confidence.Value(), 0.5)
}

func TestStrategicFlagsImplausiblyPerfectEarlyHistory(t *testing.T) {
	n := node.New(ids.NodeIDFromIndex(1), time.Now())
	now := time.Now()
	for i := 0; i < 100; i++ {
		partner := ids.NodeIDFromIndex(uint64(2 + i%5))
		n.HandleOutgoingInteraction(node.OutgoingExchange{
			Partner:     partner,
			Volume:      1.0,
			ExchangeIn:  1.0,
			ExchangeOut: 1.0,
			Quality:     scalar.NewScore(0.99),
			Tone:        scalar.NewSignedScore(0),
			Now:         now.Add(time.Duration(i) * time.Second),
		})
	}
	r, ok := Strategic(n)
	require.True(t, ok)
	require.InDelta(t, 0.7, r.Confidence.Value(), 1e-9)
}

func TestCollusionFlagsDenseIsolatedCluster(t *testing.T) {
	now := time.Now()
	members := []ids.NodeID{ids.NodeIDFromIndex(1), ids.NodeIDFromIndex(2), ids.NodeIDFromIndex(3)}
	nodes := make(map[ids.NodeID]*node.Node, len(members))
	for _, id := range members {
		nodes[id] = node.New(id, now)
	}
	// Repeated rounds lift each connection's EMA quality above the 0.9
	// mutual-rating threshold (a single round leaves it at 0.549).
	for round := 0; round < 30; round++ {
		for _, a := range members {
			for _, b := range members {
				if a == b {
					continue
				}
				nodes[a].HandleOutgoingInteraction(node.OutgoingExchange{
					Partner:     b,
					Volume:      1.0,
					ExchangeIn:  1.0,
					ExchangeOut: 1.0,
					Quality:     scalar.NewScore(0.99),
					Tone:        scalar.NewSignedScore(0.9),
					Now:         now,
				})
			}
		}
	}

	clusters := Collusion(nodes)
	require.Len(t, clusters, 1)
	require.ElementsMatch(t, members, clusters[0].Members)
	require.Greater(t, clusters[0].Confidence.Value(), 0.0)
}

func TestCollusionIgnoresSmallOrSparseComponents(t *testing.T) {
	now := time.Now()
	a, b := ids.NodeIDFromIndex(1), ids.NodeIDFromIndex(2)
	nodes := map[ids.NodeID]*node.Node{a: node.New(a, now), b: node.New(b, now)}
	nodes[a].HandleOutgoingInteraction(node.OutgoingExchange{
		Partner: b, Volume: 1, ExchangeIn: 1, ExchangeOut: 1,
		Quality: scalar.NewScore(0.99), Tone: scalar.NewSignedScore(0.9), Now: now,
	})

	require.Empty(t, Collusion(nodes))
}
