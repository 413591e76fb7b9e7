package node

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/scalar"
)

func newTestNode() (*Node, ids.NodeID, ids.NodeID) {
	now := time.Now()
	a := ids.NodeIDFromIndex(1)
	b := ids.NodeIDFromIndex(2)
	return New(a, now), a, b
}

func TestNewNodeStartsProbationary(t *testing.T) {
	n, _, _ := newTestNode()
	require.Equal(t, Probationary, n.Status)
	require.InDelta(t, 0.4, n.Trust.Value(), 1e-9)
	require.InDelta(t, 1.0, n.TrustCap.Value(), 1e-9)
	require.InDelta(t, 0.5, n.Confidence.Value(), 1e-9)
}

func TestHandleOutgoingInteractionCreatesConnection(t *testing.T) {
	n, _, partner := newTestNode()
	n.HandleOutgoingInteraction(OutgoingExchange{
		Partner:     partner,
		Volume:      1.0,
		ExchangeIn:  1.0,
		ExchangeOut: 1.0,
		Quality:     scalar.NewScore(0.8),
		Tone:        scalar.NewSignedScore(0.5),
		Now:         time.Now(),
	})
	require.Contains(t, n.Connections, partner)
	require.Equal(t, 1, n.History.Len())
}

func TestProbationPromotesOnGoodHistory(t *testing.T) {
	n, _, partner := newTestNode()
	now := time.Now()
	for i := 0; i < 50; i++ {
		n.HandleOutgoingInteraction(OutgoingExchange{
			Partner:     partner,
			Volume:      1.0,
			ExchangeIn:  1.0,
			ExchangeOut: 1.0,
			Quality:     scalar.NewScore(0.9),
			Tone:        scalar.NewSignedScore(0.5),
			Now:         now.Add(time.Duration(i) * time.Second),
		})
	}
	require.Equal(t, Member, n.Status)
	require.Equal(t, uint32(0), n.ProbationCount)
	require.LessOrEqual(t, n.Trust.Value(), 0.8)
}

func TestProbationDemotesOnBadHistory(t *testing.T) {
	n, _, partner := newTestNode()
	now := time.Now()
	startTrust := n.Trust.Value()
	for i := 0; i < 50; i++ {
		n.HandleOutgoingInteraction(OutgoingExchange{
			Partner:     partner,
			Volume:      1.0,
			ExchangeIn:  1.0,
			ExchangeOut: 1.0,
			Quality:     scalar.NewScore(0.1),
			Tone:        scalar.NewSignedScore(-0.5),
			Now:         now.Add(time.Duration(i) * time.Second),
		})
	}
	require.Equal(t, Probationary, n.Status)
	require.Equal(t, uint32(0), n.ProbationCount)
	require.InDelta(t, 0.8*startTrust, n.Trust.Value(), 1e-9)
}

func TestCheckDiversitySetsFlagAndCap(t *testing.T) {
	n, _, _ := newTestNode()
	n.CheckDiversity(0.1)
	require.True(t, n.HasFlag(LowDiversity))
	require.InDelta(t, 0.7, n.TrustCap.Value(), 1e-9)

	n.CheckDiversity(0.9)
	require.False(t, n.HasFlag(LowDiversity))
	require.InDelta(t, 1.0, n.TrustCap.Value(), 1e-9)
}

func TestDecayIdleConnectionsRemovesWeakConnection(t *testing.T) {
	n, _, partner := newTestNode()
	old := time.Now().Add(-1000 * time.Hour)
	n.HandleOutgoingInteraction(OutgoingExchange{
		Partner:     partner,
		Volume:      1.0,
		ExchangeIn:  1.0,
		ExchangeOut: 1.0,
		Quality:     scalar.Half,
		Now:         old,
	})
	c := n.Connections[partner]
	c.W = scalar.NewWeight(scalar.WMin)
	c.LastActive = old

	n.DecayIdleConnections(time.Now())
	require.NotContains(t, n.Connections, partner)
}
