// Package workflow implements the dependency-gated multi-step
// execution engine: steps become ready once their dependencies
// complete, and a workflow's own status is derived from its steps'.
// Grounded on symbiont-core/src/workflow.rs.
package workflow

import (
	"time"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/routing"
	"github.com/trustmesh/engine/scalar"
)

// StepStatus is a single step's lifecycle state.
type StepStatus int

const (
	Pending StepStatus = iota
	Ready
	Running
	Completed
	Failed
	Skipped
)

// Status is the workflow-level lifecycle state, derived from its
// steps.
type Status int

const (
	WPending Status = iota
	WRunning
	WCompleted
	WFailed
	WCancelled
)

// Type names the canonical execution shape.
type Type int

const (
	Single Type = iota
	Sequential
	Parallel
	Dag
)

// StepResult is the outcome of executing one step.
type StepResult struct {
	Success bool
	Output  []byte
	Quality scalar.Score
}

// Step is one unit of work within a workflow.
type Step struct {
	ID         ids.StepID
	Task       routing.Task
	AssignedTo *ids.NodeID
	DependsOn  []ids.StepID
	Status     StepStatus
	Result     *StepResult
}

// Context accumulates state as a workflow's steps execute.
type Context struct {
	WorkflowID    ids.WorkflowID
	StepIndex     int
	PriorResults  []StepResult
	Data          map[string][]byte
	Lineage       []ids.NodeID
}

func (c *Context) addLineage(n ids.NodeID) {
	for _, existing := range c.Lineage {
		if existing == n {
			return
		}
	}
	c.Lineage = append(c.Lineage, n)
}

// Workflow is an explicit DAG of steps plus its accumulated execution
// context.
type Workflow struct {
	ID        ids.WorkflowID
	Type      Type
	Steps     []*Step
	Context   Context
	Status    Status
	Started   *time.Time
	Completed *time.Time
}

// New creates an empty workflow of the given type with the supplied
// steps, in Pending status.
func New(t Type, steps []*Step) *Workflow {
	id := ids.NewWorkflowID()
	return &Workflow{
		ID:     id,
		Type:   t,
		Steps:  steps,
		Status: WPending,
		Context: Context{
			WorkflowID: id,
			Data:       make(map[string][]byte),
		},
	}
}

func (w *Workflow) stepByID(id ids.StepID) *Step {
	for _, s := range w.Steps {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (w *Workflow) dependsCompleted(s *Step) bool {
	for _, depID := range s.DependsOn {
		dep := w.stepByID(depID)
		if dep == nil || dep.Status != Completed {
			return false
		}
	}
	return true
}

// ReadySteps returns every step whose status is Pending and whose
// dependencies are all Completed.
func (w *Workflow) ReadySteps() []*Step {
	var ready []*Step
	for _, s := range w.Steps {
		if s.Status == Pending && w.dependsCompleted(s) {
			ready = append(ready, s)
		}
	}
	return ready
}

// StartStep marks a step Running and assigns it to executor. The
// first call on any workflow transitions the workflow itself from
// Pending to Running.
func (w *Workflow) StartStep(id ids.StepID, executor ids.NodeID, now time.Time) {
	s := w.stepByID(id)
	if s == nil {
		return
	}
	s.Status = Running
	s.AssignedTo = &executor
	if w.Status == WPending {
		w.Status = WRunning
		w.Started = &now
	}
}

// CompleteStep records result against step id: Completed if
// result.Success, else Failed. Appends to context, extends lineage,
// advances step_index, then re-derives the workflow's own status.
func (w *Workflow) CompleteStep(id ids.StepID, result StepResult, executor ids.NodeID, now time.Time) {
	s := w.stepByID(id)
	if s == nil {
		return
	}
	if result.Success {
		s.Status = Completed
	} else {
		s.Status = Failed
	}
	s.Result = &result

	w.Context.PriorResults = append(w.Context.PriorResults, result)
	w.Context.addLineage(executor)
	w.Context.StepIndex++

	w.deriveStatus(now)
}

func (w *Workflow) deriveStatus(now time.Time) {
	allDone := true
	anyFailed := false
	for _, s := range w.Steps {
		switch s.Status {
		case Completed, Failed, Skipped:
			if s.Status == Failed {
				anyFailed = true
			}
		default:
			allDone = false
		}
	}
	if !allDone {
		return
	}
	if anyFailed {
		w.Status = WFailed
	} else {
		w.Status = WCompleted
	}
	w.Completed = &now
}

// OverallQuality returns the mean quality over successful step
// results, 0 if none succeeded.
func (w *Workflow) OverallQuality() scalar.Score {
	var sum float64
	var count int
	for _, s := range w.Steps {
		if s.Result != nil && s.Result.Success {
			sum += s.Result.Quality.Value()
			count++
		}
	}
	if count == 0 {
		return scalar.Zero
	}
	return scalar.NewScore(sum / float64(count))
}
