// Package detect implements the per-node and network-wide adversary
// detectors that run every ADVERSARY_INTERVAL ticks: strategic
// behavior, low diversity, quality fraud, and collusion clusters.
// Grounded on symbiont-core/src/detect.rs.
package detect

import (
	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/interaction"
	"github.com/trustmesh/engine/kernel"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/scalar"
	"github.com/trustmesh/engine/threat"
)

// Result is a single positive detection, ready to be turned into a
// defense.Signal by the caller (kept decoupled from package defense to
// avoid a dependency cycle: defense does not need to know about
// detectors, only about signals).
type Result struct {
	Subject    ids.NodeID
	ThreatType threat.Type
	Confidence scalar.Score
	Reason     string
}

const detectionThreshold = 0.5

// Strategic flags nodes whose early (older) half of history is
// implausibly perfect and stable, or whose trust is high while recent
// quality has fallen more than AdversaryDrop below the early window.
func Strategic(n *node.Node) (Result, bool) {
	if n.History.Len() < kernel.StrategicMinHistory {
		return Result{}, false
	}

	all := n.History.All()
	mid := len(all) / 2
	recentQs := qualitiesOf(all[:mid])
	earlyQs := qualitiesOf(all[mid:])

	earlyMean := kernel.Mean(earlyQs, 0)
	earlyVar := kernel.Variance(earlyQs)
	recentMean := kernel.Mean(recentQs, 0)

	if earlyMean > 0.95 && earlyVar < 0.01 {
		return result(n.ID, threat.Strategic, 0.7, "implausibly perfect and stable early history"), true
	}

	drop := earlyMean - recentMean
	if n.Trust.Value() > 0.7 && drop > kernel.AdversaryDrop {
		confidence := drop / 0.5
		if confidence > 1 {
			confidence = 1
		}
		return result(n.ID, threat.Strategic, confidence, "quality dropped after high-trust early window"), true
	}
	return Result{}, false
}

func qualitiesOf(entries []interaction.Interaction) []float64 {
	qs := make([]float64, len(entries))
	for i, e := range entries {
		qs[i] = e.Quality.Value()
	}
	return qs
}

// LowDiversity flags nodes whose recent partner pool is too narrow to
// trust their self-reported quality.
func LowDiversity(n *node.Node) (Result, bool) {
	unique := n.History.UniquePartners(100)
	if unique > 100 {
		unique = 100
	}
	d := float64(unique) / 100.0
	if d >= kernel.DiversityThreshold {
		return Result{}, false
	}
	confidence := 0.5 + 0.3*(1-d/kernel.DiversityThreshold)
	return result(n.ID, threat.Sybil, confidence, "partner diversity below threshold"), true
}

// QualityFraud flags nodes reporting suspiciously uniform near-perfect
// quality.
func QualityFraud(n *node.Node) (Result, bool) {
	if n.History.Len() <= kernel.QualityFraudMinHist {
		return Result{}, false
	}
	variance := n.History.QualityVariance(50)
	mean := n.History.MeanQuality(50)
	if variance < 0.001 && mean.Value() > 0.95 {
		return result(n.ID, threat.QualityFraud, 0.6, "quality variance too low to be organic"), true
	}
	return Result{}, false
}

func result(subject ids.NodeID, t threat.Type, confidence float64, reason string) Result {
	return Result{
		Subject:    subject,
		ThreatType: t,
		Confidence: scalar.NewScore(confidence),
		Reason:     reason,
	}
}

// RunAll runs the three per-node detectors and returns every positive
// detection (confidence > detectionThreshold).
func RunAll(n *node.Node) []Result {
	var out []Result
	for _, fn := range []func(*node.Node) (Result, bool){Strategic, LowDiversity, QualityFraud} {
		if r, ok := fn(n); ok && r.Confidence.Value() > detectionThreshold {
			out = append(out, r)
		}
	}
	return out
}
