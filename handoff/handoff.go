// Package handoff implements direct task transfer between two nodes,
// outside the routing/workflow machinery: a sender hands a task and a
// projected context straight to a receiver, who validates expiry and
// capability fit before accepting. Grounded on
// symbiont-core/src/handoff.rs.
package handoff

import (
	"time"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/routing"
	"github.com/trustmesh/engine/workflow"
)

// DefaultMaxAgeMs is the handoff expiry window used when a caller
// doesn't override it.
const DefaultMaxAgeMs = 60_000

// Context is the slice of a workflow's context relevant to a single
// handoff: the receiver does not need the full prior-results history,
// only the most recent output plus the lineage so far.
type Context struct {
	WorkflowID   ids.WorkflowID
	StepIndex    int
	PriorOutput  []byte
	Data         map[string][]byte
	Lineage      []ids.NodeID
}

// ContextFrom projects a workflow.Context into a handoff Context,
// keeping only the last prior result's output.
func ContextFrom(wc workflow.Context) Context {
	var output []byte
	if n := len(wc.PriorResults); n > 0 {
		output = wc.PriorResults[n-1].Output
	}
	return Context{
		WorkflowID:  wc.WorkflowID,
		StepIndex:   wc.StepIndex,
		PriorOutput: output,
		Data:        wc.Data,
		Lineage:     wc.Lineage,
	}
}

// Handoff carries a task directly from one node to another.
type Handoff struct {
	From      ids.NodeID
	To        ids.NodeID
	Task      routing.Task
	Context   Context
	Timestamp time.Time
	Signature ids.Signature
}

// RejectionReason enumerates why a handoff could not be accepted.
type RejectionReason int

const (
	Expired RejectionReason = iota
	InvalidSignature
	MissingCapability
	Overloaded
)

func (r RejectionReason) String() string {
	switch r {
	case Expired:
		return "expired"
	case InvalidSignature:
		return "invalid_signature"
	case MissingCapability:
		return "missing_capability"
	case Overloaded:
		return "overloaded"
	default:
		return "unknown"
	}
}

// Result is either a success carrying output bytes, or a rejection.
type Result struct {
	Success  bool
	Output   []byte
	Rejected RejectionReason
}

// Process validates and applies a handoff against receiver. Signature
// verification is a stub in this core (SPEC_FULL.md §4.9).
func Process(h Handoff, receiver *node.Node, now time.Time, maxAgeMs int64) Result {
	if now.Sub(h.Timestamp).Milliseconds() > maxAgeMs {
		return Result{Rejected: Expired}
	}
	if len(h.Task.RequiredCaps) == 0 {
		return Result{Rejected: MissingCapability}
	}
	firstCap := h.Task.RequiredCaps[0]
	cs, ok := receiver.Capabilities[firstCap]
	if !ok {
		return Result{Rejected: MissingCapability}
	}
	if !cs.CanAcceptWork() {
		return Result{Rejected: Overloaded}
	}
	return Result{Success: true, Output: h.Context.PriorOutput}
}
