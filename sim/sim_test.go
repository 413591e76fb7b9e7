package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/config"
	"github.com/trustmesh/engine/workflow"
)

func TestTrustEmergenceRuns(t *testing.T) {
	cfg := config.SimulationConfig{Seed: 1, NodeCount: 10, Ticks: 30}
	res := NewRunner(cfg).Run(TrustEmergence{NodeCount: 10})
	require.Len(t, res.Network.Nodes, 10)
	require.Len(t, res.Network.Snapshots, 30)
	require.Nil(t, res.Workflow)
}

func TestAdversaryStrategicInjectsAtTick(t *testing.T) {
	cfg := config.SimulationConfig{Seed: 2, NodeCount: 10, Ticks: 150}
	scenario := AdversaryStrategic{HonestCount: 10, AdversaryCount: 2, InjectAtTick: 50, DefectAtTick: 100}
	res := NewRunner(cfg).Run(scenario)
	require.Len(t, res.Network.Nodes, 12)
}

func TestAdversarySybilSharesCluster(t *testing.T) {
	cfg := config.SimulationConfig{Seed: 3, NodeCount: 6, Ticks: 20}
	scenario := AdversarySybil{HonestCount: 6, AdversaryCount: 4, InjectAtTick: 5}
	res := NewRunner(cfg).Run(scenario)
	require.Len(t, res.Network.Nodes, 10)
}

func TestWorkflowChainEventuallyCompletes(t *testing.T) {
	cfg := config.SimulationConfig{Seed: 4, NodeCount: 9, Ticks: 60}
	res := NewRunner(cfg).Run(WorkflowChain{NodeCount: 9, StepCount: 6})
	require.NotNil(t, res.Workflow)
	require.Equal(t, 6, len(res.Workflow.Steps))
	require.Equal(t, workflow.WCompleted, res.Workflow.Status)
}

func TestWorkflowDagStructure(t *testing.T) {
	cfg := config.SimulationConfig{Seed: 5, NodeCount: 9, Ticks: 60}
	res := NewRunner(cfg).Run(WorkflowDag{NodeCount: 9})
	require.NotNil(t, res.Workflow)
	require.Len(t, res.Workflow.Steps, 4)
}

func TestQuickRunProducesSnapshots(t *testing.T) {
	res := QuickRun()
	require.NotEmpty(t, res.Network.Snapshots)
}

func TestNamedScenarioRegistry(t *testing.T) {
	for _, name := range Names() {
		_, ok := Named(name)
		require.True(t, ok, name)
	}
	_, ok := Named("does_not_exist")
	require.False(t, ok)
}
