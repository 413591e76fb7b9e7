package defense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/scalar"
	"github.com/trustmesh/engine/threat"
)

func TestReceiveUpdatesBeliefAndPriming(t *testing.T) {
	receiver := node.New(ids.NodeIDFromIndex(1), time.Now())
	sender := ids.NodeIDFromIndex(2)
	suspect := ids.NodeIDFromIndex(3)

	h := NewHandler()
	sig := NewSignal(sender, suspect, threat.Cheating, scalar.NewScore(0.9), ids.ComputeHash([]byte("ev")), time.Now())

	h.Receive(receiver, receiver.ID, sig, receiver.Connections, time.Now())

	belief, ok := receiver.ThreatBeliefs[suspect]
	require.True(t, ok)
	require.Greater(t, belief.Level.Value(), 0.0)
	require.Greater(t, receiver.Priming.Value(), 0.0)
}

func TestReceiveDropsSelfReferential(t *testing.T) {
	receiver := node.New(ids.NodeIDFromIndex(1), time.Now())
	sig := NewSignal(ids.NodeIDFromIndex(2), receiver.ID, threat.Sybil, scalar.NewScore(0.9), ids.ComputeHash([]byte("ev")), time.Now())

	forwards := NewHandler().Receive(receiver, receiver.ID, sig, receiver.Connections, time.Now())
	require.Nil(t, forwards)
	require.Empty(t, receiver.ThreatBeliefs)
}

func TestReceiveDedupsRepeatedSignal(t *testing.T) {
	receiver := node.New(ids.NodeIDFromIndex(1), time.Now())
	sender := ids.NodeIDFromIndex(2)
	suspect := ids.NodeIDFromIndex(3)
	h := NewHandler()
	sig := NewSignal(sender, suspect, threat.Cheating, scalar.NewScore(0.9), ids.ComputeHash([]byte("ev")), time.Now())

	h.Receive(receiver, receiver.ID, sig, receiver.Connections, time.Now())
	firstLevel := receiver.ThreatBeliefs[suspect].Level

	h.Receive(receiver, receiver.ID, sig, receiver.Connections, time.Now())
	require.Equal(t, firstLevel, receiver.ThreatBeliefs[suspect].Level)
}

func TestMaybeAffirmGatesOnThresholds(t *testing.T) {
	_, ok := MaybeAffirm(ids.NodeIDFromIndex(1), scalar.NewScore(0.5), scalar.NewSignedScore(0.1), time.Now())
	require.False(t, ok)

	a, ok := MaybeAffirm(ids.NodeIDFromIndex(1), scalar.NewScore(0.95), scalar.NewSignedScore(0.8), time.Now())
	require.True(t, ok)
	require.InDelta(t, (0.95+0.8)/2, a.Strength.Value(), 1e-9)
}

func TestDecayTickRevertsToNormalWhenNoActiveThreat(t *testing.T) {
	n := node.New(ids.NodeIDFromIndex(1), time.Now())
	n.DefenseState = node.Defending
	n.Priming = scalar.NewScore(0.05)
	DecayTick(n)
	require.Equal(t, node.Normal, n.DefenseState)
}

func TestDecayTickStaysDefendingWhileThreatActionable(t *testing.T) {
	n := node.New(ids.NodeIDFromIndex(1), time.Now())
	n.DefenseState = node.Defending
	n.Priming = scalar.NewScore(0.05)
	suspect := ids.NodeIDFromIndex(9)
	n.ThreatBeliefs[suspect] = threat.Belief{Level: scalar.NewScore(0.9)}
	DecayTick(n)
	require.Equal(t, node.Defending, n.DefenseState)
}
