package event

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/ids"
)

func TestDrainOrdersByTickThenInsertion(t *testing.T) {
	s := NewScheduler()
	first := NewNodeLeave(ids.NodeIDFromIndex(1))
	second := NewNodeLeave(ids.NodeIDFromIndex(2))
	third := NewNodeLeave(ids.NodeIDFromIndex(3))

	s.Schedule(second, 5)
	s.Schedule(first, 5)
	s.Schedule(third, 3)

	due := s.Drain(5)
	require.Len(t, due, 3)
	require.Equal(t, ids.NodeIDFromIndex(3), due[0].NodeLeave.Node)
	require.Equal(t, ids.NodeIDFromIndex(2), due[1].NodeLeave.Node)
	require.Equal(t, ids.NodeIDFromIndex(1), due[2].NodeLeave.Node)
}

func TestDrainLeavesFutureEventsQueued(t *testing.T) {
	s := NewScheduler()
	s.Schedule(NewNodeLeave(ids.NodeIDFromIndex(1)), 10)

	due := s.Drain(5)
	require.Empty(t, due)
	require.Equal(t, 1, s.Len())

	due = s.Drain(10)
	require.Len(t, due, 1)
	require.Equal(t, 0, s.Len())
}
