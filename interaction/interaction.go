// Package interaction records individual exchanges between nodes and
// the bounded, newest-first history ring used by the trust aggregator
// and adversary detectors. Grounded on symbiont-core/src/interaction.rs.
package interaction

import (
	"time"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/scalar"
)

// Interaction is a single recorded exchange between two nodes.
type Interaction struct {
	Initiator   ids.NodeID
	Responder   ids.NodeID
	Volume      float64
	Capability  *ids.CapabilityID
	Quality     scalar.Score
	Tone        scalar.SignedScore
	ExchangeIn  float64
	ExchangeOut float64
	Timestamp   time.Time
}

// New creates an interaction with neutral defaults.
func New(initiator, responder ids.NodeID, now time.Time) Interaction {
	return Interaction{
		Initiator:   initiator,
		Responder:   responder,
		Volume:      1.0,
		Quality:     scalar.Half,
		ExchangeIn:  1.0,
		ExchangeOut: 1.0,
		Timestamp:   now,
	}
}

// History is a bounded, newest-first sequence of interactions.
// Appending prepends; once the cap is exceeded the oldest entry is
// dropped. This "most-recent-first" ordering is load-bearing for the
// strategic-adversary detector, which treats the back half of the
// slice as the older half.
type History struct {
	entries []Interaction
	maxSize int
}

// DefaultMaxSize matches the protocol's default history cap.
const DefaultMaxSize = 100

// NewHistory creates a history with the default cap.
func NewHistory() *History { return NewHistoryWithCap(DefaultMaxSize) }

// NewHistoryWithCap creates a history bounded to maxSize entries.
func NewHistoryWithCap(maxSize int) *History {
	return &History{maxSize: maxSize}
}

// Add prepends an interaction, evicting the oldest entry if the
// history is at capacity.
func (h *History) Add(i Interaction) {
	h.entries = append([]Interaction{i}, h.entries...)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[:h.maxSize]
	}
}

// Recent returns up to count of the most recent entries.
func (h *History) Recent(count int) []Interaction {
	if count > len(h.entries) {
		count = len(h.entries)
	}
	return h.entries[:count]
}

// All returns the full history, newest first.
func (h *History) All() []Interaction { return h.entries }

// Len returns the number of recorded interactions.
func (h *History) Len() int { return len(h.entries) }

// IsEmpty reports whether the history holds no interactions.
func (h *History) IsEmpty() bool { return len(h.entries) == 0 }

// MeanQuality returns the mean quality over the most recent count
// entries, Half if none exist.
func (h *History) MeanQuality(count int) scalar.Score {
	recent := h.Recent(count)
	if len(recent) == 0 {
		return scalar.Half
	}
	sum := 0.0
	for _, i := range recent {
		sum += i.Quality.Value()
	}
	return scalar.NewScore(sum / float64(len(recent)))
}

// QualityVariance returns the population variance of quality over the
// most recent count entries, 0 if fewer than two exist.
func (h *History) QualityVariance(count int) float64 {
	recent := h.Recent(count)
	if len(recent) < 2 {
		return 0
	}
	mean := h.MeanQuality(count).Value()
	sum := 0.0
	for _, i := range recent {
		d := i.Quality.Value() - mean
		sum += d * d
	}
	return sum / float64(len(recent))
}

// UniquePartners counts distinct responders among the most recent
// count entries.
func (h *History) UniquePartners(count int) int {
	recent := h.Recent(count)
	seen := make(map[ids.NodeID]struct{}, len(recent))
	for _, i := range recent {
		seen[i.Responder] = struct{}{}
	}
	return len(seen)
}
