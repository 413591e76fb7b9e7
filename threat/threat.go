// Package threat defines the shared threat-belief vocabulary used by
// the node aggregate, the defense subsystem, and the detection
// pipeline. Kept separate from node to avoid a dependency cycle
// between detect and node.
package threat

import (
	"time"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/scalar"
)

// Type classifies the kind of adversarial behavior a belief concerns.
type Type int

const (
	Cheating Type = iota
	Sybil
	Collusion
	QualityFraud
	Strategic
)

func (t Type) String() string {
	switch t {
	case Cheating:
		return "cheating"
	case Sybil:
		return "sybil"
	case Collusion:
		return "collusion"
	case QualityFraud:
		return "quality_fraud"
	case Strategic:
		return "strategic"
	default:
		return "unknown"
	}
}

// Belief is one node's accumulated suspicion about another specific
// node. Level is monotonically non-decreasing under Bayesian updates
// (kernel.BayesianUpdate never lowers it).
type Belief struct {
	Level     scalar.Score
	Type      Type
	Evidence  []ids.Hash
	UpdatedAt time.Time
}
