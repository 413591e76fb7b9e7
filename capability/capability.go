// Package capability models what a node can do: a named capability
// plus per-node tracking of quality, usage volume, and load for that
// capability. Grounded on symbiont-core/src/capability.rs.
package capability

import (
	"time"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/kernel"
	"github.com/trustmesh/engine/scalar"
)

// Category classifies what kind of work a capability performs.
type Category int

const (
	Analysis Category = iota
	Generation
	Transformation
	Validation
)

func (c Category) String() string {
	switch c {
	case Analysis:
		return "analysis"
	case Generation:
		return "generation"
	case Transformation:
		return "transformation"
	case Validation:
		return "validation"
	default:
		return "unknown"
	}
}

// Capability is a declared skill a node can advertise.
type Capability struct {
	ID          ids.CapabilityID
	Name        string
	Category    Category
	Description string
}

// New creates a capability, deriving its id deterministically from
// name.
func New(name string, category Category) Capability {
	return Capability{
		ID:       ids.CapabilityIDFromName(name),
		Name:     name,
		Category: category,
	}
}

func (c Capability) WithDescription(desc string) Capability {
	c.Description = desc
	return c
}

// State tracks a single node's performance on one capability.
type State struct {
	Capability Capability
	Quality    scalar.Score
	Volume     uint32
	LastUsed   time.Time
	Available  bool
	Load       scalar.Score
}

// NewState creates capability state with neutral defaults: quality
// starts at Half (no prior evidence either way).
func NewState(c Capability, now time.Time) *State {
	return &State{
		Capability: c,
		Quality:    scalar.Half,
		Available:  true,
		LastUsed:   now,
	}
}

// CanAcceptWork reports whether this capability is available and has
// headroom.
func (s *State) CanAcceptWork() bool {
	return s.Available && s.Load.Value() < 0.95
}

// UpdateQuality folds a fresh quality observation into the running EMA.
func (s *State) UpdateQuality(observed scalar.Score) {
	s.Quality = scalar.NewScore(kernel.EMA(s.Quality.Value(), observed.Value(), kernel.Lambda))
}

// RecordUsage updates quality, bumps the usage volume, and stamps
// last-used time.
func (s *State) RecordUsage(quality scalar.Score, now time.Time) {
	s.UpdateQuality(quality)
	s.Volume++
	s.LastUsed = now
}

// DecayLoad applies periodic load decay and re-derives availability.
func (s *State) DecayLoad(factor float64) {
	s.Load = scalar.NewScore(s.Load.Value() * factor)
	s.Available = s.Load.Value() < 0.9
}

// Common capabilities used by simulation scenarios, mirroring
// symbiont-core's capability::common module.
var (
	CommonAnalysis       = New("analysis", Analysis).WithDescription("General analysis and reasoning")
	CommonGeneration     = New("generation", Generation).WithDescription("Content generation and synthesis")
	CommonTransformation = New("transformation", Transformation).WithDescription("Data transformation and conversion")
	CommonValidation     = New("validation", Validation).WithDescription("Verification and validation")
)
