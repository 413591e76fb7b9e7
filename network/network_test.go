package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/agent"
	"github.com/trustmesh/engine/ids"
)

func TestStepIsNoOpOnEmptyNetwork(t *testing.T) {
	net := New(1)
	net.Step(time.Now())
	require.Equal(t, uint64(1), net.Tick)
	require.Len(t, net.Snapshots, 1)
}

func TestStepWithHonestAgentsProducesInteractionsAndTrust(t *testing.T) {
	net := New(42)
	now := time.Now()
	for i := uint64(1); i <= 5; i++ {
		net.AddNode(ids.NodeIDFromIndex(i), now, agent.NewHonest(1.0, 0.8))
	}

	for i := 0; i < 20; i++ {
		net.Step(now)
	}

	require.Len(t, net.Snapshots, 20)
	last := net.Snapshots[len(net.Snapshots)-1]
	require.Greater(t, last.Mean, 0.0)
}

func TestStepIsDeterministicForSameSeed(t *testing.T) {
	build := func(seed int64) *Network {
		net := New(seed)
		now := time.Now()
		for i := uint64(1); i <= 6; i++ {
			net.AddNode(ids.NodeIDFromIndex(i), now, agent.NewHonest(0.6, 0.7))
		}
		for i := 0; i < 30; i++ {
			net.Step(now)
		}
		return net
	}

	a := build(7)
	b := build(7)
	require.Equal(t, len(a.Snapshots), len(b.Snapshots))
	for i := range a.Snapshots {
		require.InDelta(t, a.Snapshots[i].Mean, b.Snapshots[i].Mean, 1e-12)
	}
}

func TestRemoveNodeDropsItFromFutureTicks(t *testing.T) {
	net := New(1)
	now := time.Now()
	net.AddNode(ids.NodeIDFromIndex(1), now, agent.NewHonest(1.0, 0.8))
	net.AddNode(ids.NodeIDFromIndex(2), now, agent.NewHonest(1.0, 0.8))

	net.RemoveNode(ids.NodeIDFromIndex(2))
	require.Len(t, net.Nodes, 1)
	net.Step(now)
	require.Len(t, net.Snapshots, 1)
}
