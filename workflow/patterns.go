package workflow

import (
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/routing"
)

// Chain builds a Sequential workflow where step i depends on step i-1,
// one step per task in tasks.
func Chain(tasks []routing.Task) *Workflow {
	steps := make([]*Step, len(tasks))
	for i, t := range tasks {
		s := &Step{ID: ids.StepID(i), Task: t, Status: Pending}
		if i > 0 {
			s.DependsOn = []ids.StepID{ids.StepID(i - 1)}
		}
		steps[i] = s
	}
	return New(Sequential, steps)
}

// FanOutFanIn builds a Parallel workflow: k independent steps (0..k-1)
// feeding a single merge step (index k) that depends on all of them.
func FanOutFanIn(parallelTasks []routing.Task, mergeTask routing.Task) *Workflow {
	k := len(parallelTasks)
	steps := make([]*Step, 0, k+1)
	dependsOnAll := make([]ids.StepID, k)
	for i, t := range parallelTasks {
		steps = append(steps, &Step{ID: ids.StepID(i), Task: t, Status: Pending})
		dependsOnAll[i] = ids.StepID(i)
	}
	steps = append(steps, &Step{ID: ids.StepID(k), Task: mergeTask, Status: Pending, DependsOn: dependsOnAll})
	return New(Parallel, steps)
}
