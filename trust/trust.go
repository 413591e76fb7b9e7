// Package trust computes the aggregate trust score for a node from
// its capability qualities, connection reciprocity/quality, and
// partner diversity. Grounded on symbiont-core/src/trust.rs.
package trust

import (
	"github.com/trustmesh/engine/kernel"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/scalar"
)

// Level buckets a trust score for reporting and dashboards.
type Level int

const (
	VeryLow Level = iota
	Low
	Medium
	High
	VeryHigh
)

func (l Level) String() string {
	switch l {
	case VeryLow:
		return "very_low"
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case VeryHigh:
		return "very_high"
	default:
		return "unknown"
	}
}

// LevelOf buckets a raw trust score per §4.4's reporting thresholds.
func LevelOf(t scalar.Score) Level {
	v := t.Value()
	switch {
	case v < 0.2:
		return VeryLow
	case v < 0.4:
		return Low
	case v < 0.6:
		return Medium
	case v < 0.8:
		return High
	default:
		return VeryHigh
	}
}

// Metrics is the intermediate aggregate breakdown compute_trust
// derives before weighting it into a single trust score, surfaced for
// export/diagnostics.
type Metrics struct {
	QualityAgg    scalar.Score
	ReciprocalAgg float64
	SocialAgg     scalar.Score
	DiversityAgg  float64
	Trust         scalar.Score
	Level         Level
}

// qualityAgg computes the volume-weighted mean of capability
// qualities, Half if the node has never logged any usage.
func qualityAgg(n *node.Node) scalar.Score {
	var weightedSum, totalWeight float64
	for _, cs := range n.Capabilities {
		w := float64(cs.Volume)
		weightedSum += cs.Quality.Value() * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return scalar.Half
	}
	return scalar.NewScore(weightedSum / totalWeight)
}

func reciprocalAgg(n *node.Node) float64 {
	if len(n.Connections) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range n.Connections {
		sum += c.R
	}
	return sum / float64(len(n.Connections))
}

func socialAgg(n *node.Node) scalar.Score {
	if len(n.Connections) == 0 {
		return scalar.Zero
	}
	sum := 0.0
	for _, c := range n.Connections {
		sum += c.Q.Value()
	}
	return scalar.NewScore(sum / float64(len(n.Connections)))
}

func diversityAgg(n *node.Node) float64 {
	unique := n.History.UniquePartners(100)
	if unique > 100 {
		unique = 100
	}
	return float64(unique) / 100.0
}

// DiversityAgg exposes the unique-partner ratio a node's diversity
// flag/trust_cap maintenance step (node.CheckDiversity) gates on,
// without computing the rest of the §4.4 pipeline.
func DiversityAgg(n *node.Node) float64 {
	return diversityAgg(n)
}

// Compute runs the full §4.4 pipeline: aggregate the four components,
// weight them into a trust score, and apply the diversity and trust
// caps. Pure — it only reads n (spec.md §8: "compute_trust(node) is a
// pure function of node state"); it never writes n.Trust, n.TrustCap,
// or n.Flags. The diversity flag/trust_cap refresh is a distinct
// maintenance-phase step (node.CheckDiversity, called from
// network.Step before trust is recomputed), matching trust.rs taking
// an immutable &Node and node.rs's own separate check_diversity().
func Compute(n *node.Node) Metrics {
	q := qualityAgg(n)
	r := reciprocalAgg(n)
	s := socialAgg(n)
	d := diversityAgg(n)

	sumWeights := kernel.TrustWeightQuality + kernel.TrustWeightReciprocal +
		kernel.TrustWeightSocial + kernel.TrustWeightDiversity

	raw := (kernel.TrustWeightQuality*q.Value() +
		kernel.TrustWeightReciprocal*kernel.Sigmoid(r) +
		kernel.TrustWeightSocial*s.Value() +
		kernel.TrustWeightDiversity*d) / sumWeights

	diversityCapped := raw
	if cap := d + kernel.DiversityCapBonus; diversityCapped > cap {
		diversityCapped = cap
	}
	if diversityCapped > n.TrustCap.Value() {
		diversityCapped = n.TrustCap.Value()
	}

	t := scalar.NewScore(diversityCapped)

	return Metrics{
		QualityAgg:    q,
		ReciprocalAgg: r,
		SocialAgg:     s,
		DiversityAgg:  d,
		Trust:         t,
		Level:         LevelOf(t),
	}
}
