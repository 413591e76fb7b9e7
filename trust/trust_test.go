package trust

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/capability"
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/scalar"
)

func TestComputeNewNodeIsNeutral(t *testing.T) {
	n := node.New(ids.NodeIDFromIndex(1), time.Now())
	m := Compute(n)
	require.InDelta(t, 0.5, m.QualityAgg.Value(), 1e-9)
	require.InDelta(t, 0.0, m.ReciprocalAgg, 1e-9)
	require.Equal(t, Low, m.Level)
}

func TestComputeRewardsDiverseHighQualityHistory(t *testing.T) {
	n := node.New(ids.NodeIDFromIndex(1), time.Now())
	now := time.Now()
	for i := 0; i < 20; i++ {
		partner := ids.NodeIDFromIndex(uint64(100 + i))
		n.HandleOutgoingInteraction(node.OutgoingExchange{
			Partner:     partner,
			Volume:      1.0,
			ExchangeIn:  1.0,
			ExchangeOut: 1.0,
			Quality:     scalar.NewScore(0.9),
			Tone:        scalar.NewSignedScore(0.5),
			Now:         now.Add(time.Duration(i) * time.Second),
		})
	}
	cap := capability.New("analysis", capability.Analysis)
	cs := capability.NewState(cap, now)
	cs.RecordUsage(scalar.NewScore(0.9), now)
	n.Capabilities[cap.ID] = cs

	m := Compute(n)
	require.Greater(t, m.Trust.Value(), 0.3)
}

func TestComputeIsPureAndLeavesTrustCapAndFlagsUnchanged(t *testing.T) {
	n := node.New(ids.NodeIDFromIndex(1), time.Now())
	now := time.Now()
	// Sparse history (well under 30 unique partners) would trip
	// CheckDiversity's LowDiversity/trust_cap write if Compute still
	// mutated node state.
	for i := 0; i < 5; i++ {
		n.HandleOutgoingInteraction(node.OutgoingExchange{
			Partner:     ids.NodeIDFromIndex(uint64(200 + i)),
			Volume:      1.0,
			ExchangeIn:  1.0,
			ExchangeOut: 1.0,
			Quality:     scalar.NewScore(0.7),
			Tone:        scalar.NewSignedScore(0.2),
			Now:         now.Add(time.Duration(i) * time.Second),
		})
	}

	wantTrust := n.Trust
	wantTrustCap := n.TrustCap
	wantFlags := n.Flags.List()

	_ = Compute(n)

	require.Equal(t, wantTrust, n.Trust)
	require.Equal(t, wantTrustCap, n.TrustCap)
	require.ElementsMatch(t, wantFlags, n.Flags.List())
}

func TestLevelOfBuckets(t *testing.T) {
	require.Equal(t, VeryLow, LevelOf(scalar.NewScore(0.1)))
	require.Equal(t, Low, LevelOf(scalar.NewScore(0.3)))
	require.Equal(t, Medium, LevelOf(scalar.NewScore(0.5)))
	require.Equal(t, High, LevelOf(scalar.NewScore(0.7)))
	require.Equal(t, VeryHigh, LevelOf(scalar.NewScore(0.9)))
}
