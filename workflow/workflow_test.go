package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/routing"
	"github.com/trustmesh/engine/scalar"
)

func taskFixture() routing.Task {
	return routing.Task{ID: ids.NewTaskID(), Created: time.Now()}
}

func TestChainReadySteps(t *testing.T) {
	wf := Chain([]routing.Task{taskFixture(), taskFixture(), taskFixture()})
	ready := wf.ReadySteps()
	require.Len(t, ready, 1)
	require.Equal(t, ids.StepID(0), ready[0].ID)
}

func TestChainCompletionUnlocksNextStep(t *testing.T) {
	wf := Chain([]routing.Task{taskFixture(), taskFixture()})
	now := time.Now()
	executor := ids.NodeIDFromIndex(1)

	wf.StartStep(0, executor, now)
	require.Equal(t, WRunning, wf.Status)
	wf.CompleteStep(0, StepResult{Success: true, Quality: scalar.NewScore(0.8)}, executor, now)

	ready := wf.ReadySteps()
	require.Len(t, ready, 1)
	require.Equal(t, ids.StepID(1), ready[0].ID)
}

func TestFanOutFanInMergeRequiresAllParallelSteps(t *testing.T) {
	parallel := []routing.Task{taskFixture(), taskFixture(), taskFixture(), taskFixture()}
	wf := FanOutFanIn(parallel, taskFixture())

	require.Len(t, wf.Steps[4].DependsOn, 4)
	require.NotContains(t, stepIDs(wf.ReadySteps()), ids.StepID(4))

	now := time.Now()
	executor := ids.NodeIDFromIndex(1)
	for i := 0; i < 4; i++ {
		wf.StartStep(ids.StepID(i), executor, now)
		wf.CompleteStep(ids.StepID(i), StepResult{Success: true, Quality: scalar.Half}, executor, now)
	}
	require.Contains(t, stepIDs(wf.ReadySteps()), ids.StepID(4))
}

func stepIDs(steps []*Step) []ids.StepID {
	out := make([]ids.StepID, len(steps))
	for i, s := range steps {
		out[i] = s.ID
	}
	return out
}

func TestWorkflowFailsWhenAnyStepFails(t *testing.T) {
	wf := Chain([]routing.Task{taskFixture(), taskFixture()})
	now := time.Now()
	executor := ids.NodeIDFromIndex(1)

	wf.StartStep(0, executor, now)
	wf.CompleteStep(0, StepResult{Success: false}, executor, now)
	wf.Steps[1].Status = Skipped

	wf.deriveStatus(now)
	require.Equal(t, WFailed, wf.Status)
}

func TestOverallQualityMeansSuccessfulResultsOnly(t *testing.T) {
	wf := Chain([]routing.Task{taskFixture(), taskFixture()})
	now := time.Now()
	executor := ids.NodeIDFromIndex(1)

	wf.StartStep(0, executor, now)
	wf.CompleteStep(0, StepResult{Success: true, Quality: scalar.NewScore(0.6)}, executor, now)
	wf.StartStep(1, executor, now)
	wf.CompleteStep(1, StepResult{Success: false, Quality: scalar.NewScore(0.1)}, executor, now)

	require.InDelta(t, 0.6, wf.OverallQuality().Value(), 1e-9)
}

func TestLineageHasNoDuplicates(t *testing.T) {
	wf := Chain([]routing.Task{taskFixture(), taskFixture()})
	now := time.Now()
	executor := ids.NodeIDFromIndex(1)

	wf.StartStep(0, executor, now)
	wf.CompleteStep(0, StepResult{Success: true}, executor, now)
	wf.StartStep(1, executor, now)
	wf.CompleteStep(1, StepResult{Success: true}, executor, now)

	require.Equal(t, []ids.NodeID{executor}, wf.Context.Lineage)
}
